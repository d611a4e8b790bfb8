package operation

type State int

const (
	StateValidating State = iota
	StateResolvingKey
	StateReadingPayload
	StateReadingSignature
	StateDispatching
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateValidating:       "VALIDATING",
	StateResolvingKey:     "RESOLVING_KEY",
	StateReadingPayload:   "READING_PAYLOAD",
	StateReadingSignature: "READING_SIGNATURE",
	StateDispatching:      "DISPATCHING",
	StateDone:             "DONE",
	StateFailed:           "FAILED",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}
