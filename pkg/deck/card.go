package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is an error when a card string or value is malformed
var ErrInvalidCard = errors.New("invalid card")

// ErrDuplicateCard is an error when the same card appears more than once
var ErrDuplicateCard = errors.New("duplicate card")

// Suit represents a card suit
type Suit uint8

// suit constants, in canonical order
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits is every suit in canonical order
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// Char returns the canonical one-character suit
func (s Suit) Char() byte {
	switch s {
	case Clubs:
		return 'c'
	case Diamonds:
		return 'd'
	case Hearts:
		return 'h'
	case Spades:
		return 's'
	}

	panic(fmt.Sprintf("unknown suit: %d", s))
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	}

	panic(fmt.Sprintf("unknown suit: %d", s))
}

func (s Suit) symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♢"
	case Hearts:
		return "♡"
	case Spades:
		return "♠"
	}

	panic(fmt.Sprintf("unknown suit: %d", s))
}

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

// Card is an individual playing card
// Cards are values, two cards are equal iff rank and suit match
type Card struct {
	Rank int
	Suit Suit
}

// NewCard returns a card after validating the rank and suit
func NewCard(rank int, suit Suit) (Card, error) {
	if rank < 2 || rank > Ace {
		return Card{}, fmt.Errorf("%w: rank %d out of range", ErrInvalidCard, rank)
	}

	if suit > Spades {
		return Card{}, fmt.Errorf("%w: suit %d out of range", ErrInvalidCard, suit)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// Valid returns true if the rank and suit are in range
func (c Card) Valid() bool {
	return c.Rank >= 2 && c.Rank <= Ace && c.Suit <= Spades
}

// Index returns a unique index in [0, 52) following the canonical deck order
func (c Card) Index() int {
	return int(c.Suit)*13 + c.Rank - 2
}

// CardFromIndex is the inverse of Index
func CardFromIndex(i int) Card {
	return Card{Rank: i%13 + 2, Suit: Suit(i / 13)}
}

// Compare orders cards by rank, then by suit
func (c Card) Compare(o Card) int {
	if c.Rank != o.Rank {
		if c.Rank < o.Rank {
			return -1
		}
		return 1
	}

	if c.Suit != o.Suit {
		if c.Suit < o.Suit {
			return -1
		}
		return 1
	}

	return 0
}

// AceLowRank return the rank where Ace is considered low instead of high
func (c Card) AceLowRank() int {
	if c.Rank == Ace {
		return LowAce
	}

	return c.Rank
}

// RankChar returns the canonical rank character (T for ten)
func RankChar(rank int) byte {
	switch rank {
	case 10:
		return 'T'
	case Jack:
		return 'J'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	case Ace, LowAce:
		return 'A'
	}

	if rank >= 2 && rank <= 9 {
		return byte('0' + rank)
	}

	panic(fmt.Sprintf("unknown rank: %d", rank))
}

// String returns the canonical form, i.e., As, Td, 2c
func (c Card) String() string {
	return string([]byte{RankChar(c.Rank), c.Suit.Char()})
}

// Pretty returns a display form, i.e., 10♡
func (c Card) Pretty() string {
	rank := string(RankChar(c.Rank))
	if c.Rank == 10 {
		rank = "10"
	}

	return rank + c.Suit.symbol()
}

// MarshalJSON encodes the card as its canonical string
func (c Card) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidCard, c.Rank, c.Suit)
	}

	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a canonical card string
func (c *Card) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCard, string(b))
	}

	card, err := ParseCard(s)
	if err != nil {
		return err
	}

	*c = card
	return nil
}

func parseRank(s string) (int, bool) {
	if s == "10" {
		return 10, true
	}

	if len(s) != 1 {
		return 0, false
	}

	switch ch := s[0]; ch {
	case 'T', 't':
		return 10, true
	case 'J', 'j':
		return Jack, true
	case 'Q', 'q':
		return Queen, true
	case 'K', 'k':
		return King, true
	case 'A', 'a':
		return Ace, true
	default:
		if ch >= '2' && ch <= '9' {
			return int(ch - '0'), true
		}
	}

	return 0, false
}

func parseSuit(ch byte) (Suit, bool) {
	switch ch {
	case 'c', 'C':
		return Clubs, true
	case 'd', 'D':
		return Diamonds, true
	case 'h', 'H':
		return Hearts, true
	case 's', 'S':
		return Spades, true
	}

	return 0, false
}

// ParseCard returns a Card from the string.
// The string must be in the format of <rank><suit> where rank is one of 2-9,T,J,Q,K,A (10 is accepted
// as an alias of T) and suit in [cdhs]
func ParseCard(s string) (Card, error) {
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank, ok := parseRank(s[:len(s)-1])
	if !ok {
		return Card{}, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}

	suit, ok := parseSuit(s[len(s)-1])
	if !ok {
		return Card{}, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, s)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCard is like ParseCard, but panics on error
// This is intended for tests and fixtures
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return c
}

// ParseCards parses a list of cards separated by commas or whitespace ("As,Kd" or "As Kd"),
// or concatenated ("AsKd")
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	cards := make([]Card, 0, len(fields))
	for _, field := range fields {
		if len(field) <= 3 {
			card, err := ParseCard(field)
			if err != nil {
				return nil, err
			}

			cards = append(cards, card)
			continue
		}

		if len(field)%2 != 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCard, field)
		}

		for i := 0; i < len(field); i += 2 {
			card, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}

			cards = append(cards, card)
		}
	}

	return cards, nil
}

// MustParseCards is like ParseCards, but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}

	return cards
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, ",")
}

// CheckDistinct returns ErrDuplicateCard if any card appears twice, or ErrInvalidCard if a card is out
// of range
func CheckDistinct(cards ...[]Card) error {
	var seen CardSet
	for _, group := range cards {
		for _, card := range group {
			if !card.Valid() {
				return fmt.Errorf("%w: %d/%d", ErrInvalidCard, card.Rank, card.Suit)
			}

			if seen.Has(card) {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, card)
			}

			seen = seen.Add(card)
		}
	}

	return nil
}
