package handanalyzer

import (
	"encoding/json"
	"fmt"
)

// Hand is a poker hand category, i.e., royal flush
type Hand int

// Constants for hand
const (
	HighCard Hand = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand
func (h Hand) String() string {
	switch h {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// ID returns a stable identifier for the hand category
func (h Hand) ID() string {
	switch h {
	case HighCard:
		return "high-card"
	case OnePair:
		return "one-pair"
	case TwoPair:
		return "two-pair"
	case ThreeOfAKind:
		return "three-of-a-kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full-house"
	case FourOfAKind:
		return "four-of-a-kind"
	case StraightFlush:
		return "straight-flush"
	case RoyalFlush:
		return "royal-flush"
	default:
		panic(fmt.Sprintf("unknown hand: %d", h))
	}
}

// MarshalJSON encodes the hand into JSON
func (h Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Rank int    `json:"rank"`
	}{
		ID:   h.ID(),
		Name: h.String(),
		Rank: int(h),
	})
}

// HandFromID returns the hand category for an identifier returned by ID()
func HandFromID(id string) (Hand, error) {
	for h := HighCard; h <= RoyalFlush; h++ {
		if h.ID() == id {
			return h, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidHand, id)
}

// UnmarshalJSON decodes a category from its ID, either bare or as the object MarshalJSON writes
func (h *Hand) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		var obj struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidHand, string(b))
		}

		id = obj.ID
	}

	hand, err := HandFromID(id)
	if err != nil {
		return err
	}

	*h = hand
	return nil
}
