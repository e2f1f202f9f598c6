package deck

import "math/bits"

// CardSet is a bitset of cards keyed by Card.Index()
type CardSet uint64

// NewCardSet returns a set containing the provided cards
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s = s.Add(c)
	}

	return s
}

// Add returns a new set with the card added
func (s CardSet) Add(c Card) CardSet {
	return s | 1<<uint(c.Index())
}

// AddAll returns a new set with all the cards added
func (s CardSet) AddAll(cards []Card) CardSet {
	for _, c := range cards {
		s = s.Add(c)
	}

	return s
}

// Union returns the union of two sets
func (s CardSet) Union(o CardSet) CardSet {
	return s | o
}

// Has returns true if the card is in the set
func (s CardSet) Has(c Card) bool {
	return s&(1<<uint(c.Index())) != 0
}

// Len returns the number of cards in the set
func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Cards returns the cards in canonical deck order
func (s CardSet) Cards() []Card {
	cards := make([]Card, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		cards = append(cards, CardFromIndex(bits.TrailingZeros64(v)))
	}

	return cards
}
