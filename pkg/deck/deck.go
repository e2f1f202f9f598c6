package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"pokercore/internal/rng"
)

// ErrInsufficientCards is an error when a deal requests more cards than the deck holds
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// ErrInsufficientDeck is an error when too few cards remain after excluding known and dead cards
var ErrInsufficientDeck = errors.New("insufficient cards remaining after exclusions")

// Deck represents an ordered playing deck
// A Deck is never mutated. Every operation returns a new Deck, and the caller owns the result
type Deck struct {
	cards []Card
}

// New returns a new deck of cards in canonical order (clubs, diamonds, hearts, spades; 2 through A).
// Important! this deck is unshuffled. You must call Shuffle() to shuffle the cards
func New() Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	return Deck{cards: cards}
}

// FromCards returns a deck in the order provided
// The cards must be valid and pairwise distinct
func FromCards(cards []Card) (Deck, error) {
	if len(cards) > 52 {
		return Deck{}, fmt.Errorf("%w: %d cards", ErrInvalidCard, len(cards))
	}

	if err := CheckDistinct(cards); err != nil {
		return Deck{}, err
	}

	cp := make([]Card, len(cards))
	copy(cp, cards)
	return Deck{cards: cp}, nil
}

// Shuffle returns a shuffled copy of the deck
// Production callers must provide a cryptographically secure generator (rng.Crypto)
func Shuffle(d Deck, g rng.Generator) Deck {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)

	for j := len(cards) - 1; j > 0; j-- {
		i := g.Intn(j + 1)

		cards[i], cards[j] = cards[j], cards[i]
	}

	return Deck{cards: cards}
}

// Len returns the number of cards left in the deck
func (d Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the cards in deck order
func (d Deck) Cards() []Card {
	cp := make([]Card, len(d.cards))
	copy(cp, d.cards)
	return cp
}

// CanDeal returns true if there are {want} cards left in the deck
func (d Deck) CanDeal(want int) bool {
	return len(d.cards) >= want
}

// Deal takes n cards from the front of the deck
// If there are not enough cards, ErrInsufficientCards is returned
func (d Deck) Deal(n int) ([]Card, Deck, error) {
	if n < 0 || n > len(d.cards) {
		return nil, d, fmt.Errorf("%w: want %d, have %d", ErrInsufficientCards, n, len(d.cards))
	}

	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])

	// the remaining deck shares the backing array, which is safe because nothing writes to it
	return dealt, Deck{cards: d.cards[n:]}, nil
}

// DealToPlayers deals cardsPerPlayer cards to each player, one card per player per round, the
// way a dealer pitches cards around the table. Player 0 receives the first card of each round
func (d Deck) DealToPlayers(playerCount, cardsPerPlayer int) ([][]Card, Deck, error) {
	if playerCount < 0 || cardsPerPlayer < 0 {
		return nil, d, fmt.Errorf("%w: negative deal", ErrInsufficientCards)
	}

	need := playerCount * cardsPerPlayer
	dealt, remaining, err := d.Deal(need)
	if err != nil {
		return nil, d, err
	}

	hands := make([][]Card, playerCount)
	for p := range hands {
		hands[p] = make([]Card, cardsPerPlayer)
		for round := 0; round < cardsPerPlayer; round++ {
			hands[p][round] = dealt[round*playerCount+p]
		}
	}

	return hands, remaining, nil
}

// Without returns a new deck with the excluded cards removed, preserving order
func (d Deck) Without(excluded CardSet) Deck {
	cards := make([]Card, 0, len(d.cards))
	for _, c := range d.cards {
		if !excluded.Has(c) {
			cards = append(cards, c)
		}
	}

	return Deck{cards: cards}
}

// Remaining returns the canonical deck without the excluded cards
// If fewer than need cards remain, ErrInsufficientDeck is returned
func Remaining(excluded CardSet, need int) (Deck, error) {
	d := New().Without(excluded)
	if d.Len() < need {
		return Deck{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientDeck, need, d.Len())
	}

	return d, nil
}

// HashCode returns a SHA1 hash code of the deck.
func (d Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

func (d Deck) String() string {
	return CardsToString(d.cards)
}
