package replay

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionType represents an action recorded in a hand's log
type ActionType string

// action type constants
const (
	Fold  ActionType = "fold"
	Check ActionType = "check"
	Call  ActionType = "call"
	Bet   ActionType = "bet"
	Raise ActionType = "raise"
	AllIn ActionType = "all-in"

	// blinds are synthesized when seeding a replay, they never appear in a log
	PostSmallBlind ActionType = "post-small-blind"
	PostBigBlind   ActionType = "post-big-blind"
)

var allowedActions = map[ActionType]bool{
	Fold:           true,
	Check:          true,
	Call:           true,
	Bet:            true,
	Raise:          true,
	AllIn:          true,
	PostSmallBlind: true,
	PostBigBlind:   true,
}

// ActionFromString returns an action type for the given string
func ActionFromString(s string) (ActionType, error) {
	if _, ok := allowedActions[ActionType(s)]; ok {
		return ActionType(s), nil
	}

	return "", fmt.Errorf("%w: unknown action for identifier: %s", ErrInvalidAction, s)
}

func (a ActionType) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	case AllIn:
		return "All-in"
	case PostSmallBlind:
		return "Post small blind"
	case PostBigBlind:
		return "Post big blind"
	}

	panic("unknown action")
}

// IsValid returns true if the action type is known
func (a ActionType) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// isBlind returns true for the synthesized blind postings
func (a ActionType) isBlind() bool {
	return a == PostSmallBlind || a == PostBigBlind
}

// MarshalJSON encodes the action type into JSON
func (a ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// UnmarshalJSON accepts either the identifier string or the {id,name} object
func (a *ActionType) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		var obj struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}

		id = obj.ID
	}

	at, err := ActionFromString(id)
	if err != nil {
		return err
	}

	*a = at
	return nil
}

// LogMessage returns a message formatted for a hand history
func (a ActionType) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folds"
	case Check:
		return "checks"
	case Call:
		return fmt.Sprintf("calls %d", amount)
	case Bet:
		return fmt.Sprintf("bets %d", amount)
	case Raise:
		return fmt.Sprintf("raises to %d", amount)
	case AllIn:
		return fmt.Sprintf("is all-in for %d", amount)
	case PostSmallBlind:
		return fmt.Sprintf("posts small blind %d", amount)
	case PostBigBlind:
		return fmt.Sprintf("posts big blind %d", amount)
	}

	return ""
}

// Action is a single entry of a hand's action log
// Amount is the player's total bet on the street after the action, not the increment
type Action struct {
	Phase     Phase      `json:"phase"`
	PlayerID  string     `json:"playerId"`
	Type      ActionType `json:"type"`
	Amount    *int       `json:"amount,omitempty"`
	PotAfter  int        `json:"potAfter"`
	Timestamp time.Time  `json:"timestamp"`
}

// Amount is a helper for building actions
func Amount(v int) *int {
	return &v
}

func (a Action) clone() *Action {
	cp := a
	if a.Amount != nil {
		cp.Amount = Amount(*a.Amount)
	}

	return &cp
}
