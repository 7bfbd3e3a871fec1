package traverse

// State is a phase of a walk.
type State int

const (
	Seeking State = iota
	Visiting
	Exhausted
	CycleDetected
	Error
)

var stateNames = [...]string{
	Seeking:       "seeking",
	Visiting:      "visiting",
	Exhausted:     "exhausted",
	CycleDetected: "cycle-detected",
	Error:         "error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the walk has ended.
func (s State) Terminal() bool {
	return s == Exhausted || s == CycleDetected || s == Error
}

// Succeeded reports whether the walk ended with a usable mapping.
func (s State) Succeeded() bool {
	return s == Exhausted || s == CycleDetected
}
