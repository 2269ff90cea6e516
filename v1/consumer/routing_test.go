package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRoutingKey(t *testing.T) {
	valid := []string{"a", "a.b.c", "*.b", "#", "orders.*.created", "logs.#", "user_1.event"}
	for _, key := range valid {
		assert.True(t, IsValidRoutingKey(key), key)
	}

	invalid := []string{"", "a..b", ".a", "a.", "a.$", "a b", "a.**", "a#"}
	for _, key := range invalid {
		assert.False(t, IsValidRoutingKey(key), key)
	}
}
