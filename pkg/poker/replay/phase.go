package replay

import (
	"encoding/json"
	"fmt"
)

// Phase is a street of a Texas Hold'em hand
type Phase string

// phase constants, in the order they are played
const (
	PreFlop  Phase = "preflop"
	Flop     Phase = "flop"
	Turn     Phase = "turn"
	River    Phase = "river"
	Showdown Phase = "showdown"
)

var phaseOrder = map[Phase]int{
	PreFlop:  0,
	Flop:     1,
	Turn:     2,
	River:    3,
	Showdown: 4,
}

// PhaseFromString returns a phase for the given string
func PhaseFromString(s string) (Phase, error) {
	if _, ok := phaseOrder[Phase(s)]; ok {
		return Phase(s), nil
	}

	return "", fmt.Errorf("%w: unknown phase: %s", ErrInvalidAction, s)
}

// IsValid returns true if the phase is known
func (p Phase) IsValid() bool {
	_, ok := phaseOrder[p]
	return ok
}

// Before returns true if p is played before o
func (p Phase) Before(o Phase) bool {
	return phaseOrder[p] < phaseOrder[o]
}

// BoardCards returns how many community cards are visible during the phase
func (p Phase) BoardCards() int {
	switch p {
	case PreFlop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	}

	panic(fmt.Sprintf("unknown phase: %s", string(p)))
}

// String returns a display name, i.e., "Flop"
func (p Phase) String() string {
	switch p {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	}

	return string(p)
}

// UnmarshalJSON rejects unknown phases
func (p *Phase) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	phase, err := PhaseFromString(s)
	if err != nil {
		return err
	}

	*p = phase
	return nil
}
