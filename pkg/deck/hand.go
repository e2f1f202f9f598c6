package deck

import (
	"encoding/json"
	"sort"
)

// Hand represents a collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	return h[i].Compare(h[j]) < 0
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// SortedByRank returns a copy of the hand, highest rank first
func (h Hand) SortedByRank() Hand {
	cp := h.Clone()
	sort.Sort(sort.Reverse(cp))
	return cp
}

func (h Hand) String() string {
	return CardsToString(h)
}

// MarshalJSON always encodes an array, even for a nil hand
func (h Hand) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]Card(h))
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}

	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
