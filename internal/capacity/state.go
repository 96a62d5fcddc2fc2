package capacity

import "fmt"

// State is the verdict that gates rebar sizing and cost estimation.
//
//	Unverified --Analyze--> Safe | Blocked
//
// Every recompute starts from Unverified; only Safe lets the
// downstream stages run.
type State int

const (
	Unverified State = iota
	Safe
	Blocked
)

func (s State) String() string {
	switch s {
	case Safe:
		return "safe"
	case Blocked:
		return "blocked"
	default:
		return "unverified"
	}
}

// MarshalText serializes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unverified":
		*s = Unverified
	case "safe":
		*s = Safe
	case "blocked":
		*s = Blocked
	default:
		return fmt.Errorf("unknown verdict state %q", text)
	}
	return nil
}
