package consumer

// ConnectionState is the lifecycle state of a Consumer.
type ConnectionState int32

const (
	StateInit ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateClosing
	StateClosed
)

func (s ConnectionState) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateReconnecting:
		return "Reconnecting"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// allowedTransitions lists every legal edge of the lifecycle. Closed is
// terminal.
var allowedTransitions = map[ConnectionState][]ConnectionState{
	StateInit:         {StateConnecting},
	StateConnecting:   {StateConnected, StateClosed},
	StateConnected:    {StateReconnecting, StateClosing, StateClosed},
	StateReconnecting: {StateConnected, StateClosing},
	StateClosing:      {StateClosed},
}

func (s ConnectionState) canTransitionTo(to ConnectionState) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
