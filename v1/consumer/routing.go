package consumer

import "regexp"

var routingKeyPattern = regexp.MustCompile(`^(\w+|\*|#)(\.(\w+|\*|#))*$`)

// IsValidRoutingKey reports whether key is a well-formed topic routing key or
// binding pattern: one or more dot-separated segments, each a run of word
// characters, "*" or "#".
//
//	IsValidRoutingKey("a.b.c") // true
//	IsValidRoutingKey("*.b")   // true
//	IsValidRoutingKey("a..b")  // false
func IsValidRoutingKey(key string) bool {
	return routingKeyPattern.MatchString(key)
}
