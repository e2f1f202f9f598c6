package handanalyzer

import (
	"errors"
	"fmt"
	"sort"

	"pokercore/pkg/deck"
)

// ErrInvalidHand is an error when the evaluator is given duplicate cards or the wrong number of cards
var ErrInvalidHand = errors.New("invalid hand")

// minimum and maximum number of cards the evaluator accepts
const (
	MinCards = 5
	MaxCards = 7
)

// strength packing base, every tiebreak rank fits in a single digit
const base = 15

var pow15 = [6]int{1, base, base * base, base * base * base, base * base * base * base, base * base * base * base * base}

// HandEvaluation is the best five-card hand that can be made from 5 to 7 cards
type HandEvaluation struct {
	Category Hand      `json:"category"`
	Score    int       `json:"score"`
	BestFive deck.Hand `json:"bestFive"`
}

// Description returns a human readable description, i.e., "Full house, Kings full of Twos"
func (e HandEvaluation) Description() string {
	tb := tiebreaks(e.Score)

	switch e.Category {
	case HighCard:
		return fmt.Sprintf("High card %s", rankName(tb[0]))
	case OnePair:
		return fmt.Sprintf("Pair of %s", rankPlural(tb[0]))
	case TwoPair:
		return fmt.Sprintf("Two pair, %s and %s", rankPlural(tb[0]), rankPlural(tb[1]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a kind, %s", rankPlural(tb[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankName(tb[0]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankName(tb[0]))
	case FullHouse:
		return fmt.Sprintf("Full house, %s full of %s", rankPlural(tb[0]), rankPlural(tb[1]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a kind, %s", rankPlural(tb[0]))
	case StraightFlush:
		return fmt.Sprintf("Straight flush, %s high", rankName(tb[0]))
	case RoyalFlush:
		return "Royal flush"
	}

	return e.Category.String()
}

// Evaluate returns the best five-card hand that the cards can make
// Every five-card subset is scored and the highest score wins
func Evaluate(cards []deck.Card) (HandEvaluation, error) {
	n := len(cards)
	if n < MinCards || n > MaxCards {
		return HandEvaluation{}, fmt.Errorf("%w: need %d to %d cards, got %d", ErrInvalidHand, MinCards, MaxCards, n)
	}

	if err := deck.CheckDistinct(cards); err != nil {
		return HandEvaluation{}, fmt.Errorf("%w: %v", ErrInvalidHand, err)
	}

	bestScore := -1
	var best [5]deck.Card
	var five [5]deck.Card
	for _, combo := range combinations[n] {
		for i, idx := range combo {
			five[i] = cards[idx]
		}

		if s := scoreFive(&five); s > bestScore {
			bestScore = s
			best = five
		}
	}

	category := Hand(bestScore / pow15[5])
	return HandEvaluation{
		Category: category,
		Score:    bestScore,
		BestFive: orderBestFive(best, category),
	}, nil
}

// MustEvaluate is like Evaluate, but panics on error
func MustEvaluate(cards []deck.Card) HandEvaluation {
	e, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}

	return e
}

// Strength returns only the score of the best five-card hand
// The caller guarantees 5 to 7 distinct valid cards. This is the hot path of the equity engine
func Strength(cards []deck.Card) int {
	bestScore := -1
	var five [5]deck.Card
	for _, combo := range combinations[len(cards)] {
		for i, idx := range combo {
			five[i] = cards[idx]
		}

		if s := scoreFive(&five); s > bestScore {
			bestScore = s
		}
	}

	return bestScore
}

// CategoryOf returns the hand category packed in a score
func CategoryOf(score int) Hand {
	return Hand(score / pow15[5])
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 for a split
func Compare(a, b HandEvaluation) int {
	switch {
	case a.Score > b.Score:
		return 1
	case a.Score < b.Score:
		return -1
	}

	return 0
}

// combinations[n] holds every 5-element index subset of n cards
var combinations = map[int][][5]int{
	5: buildCombinations(5),
	6: buildCombinations(6),
	7: buildCombinations(7),
}

func buildCombinations(n int) [][5]int {
	combos := make([][5]int, 0, 21)
	var c [5]int
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == 5 {
			combos = append(combos, c)
			return
		}

		for i := start; i <= n-(5-depth); i++ {
			c[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)

	return combos
}

// scoreFive scores exactly five cards
func scoreFive(cards *[5]deck.Card) int {
	// ranks sorted highest first
	var ranks [5]int
	flush := true
	for i, c := range cards {
		r := c.Rank
		j := i
		for j > 0 && ranks[j-1] < r {
			ranks[j] = ranks[j-1]
			j--
		}
		ranks[j] = r

		if c.Suit != cards[0].Suit {
			flush = false
		}
	}

	// group by rank: counts[i] cards of rank groupRanks[i], most cards first then highest rank
	var groupRanks, counts [5]int
	groups := 0
	for i := 0; i < 5; i++ {
		if i > 0 && ranks[i] == ranks[i-1] {
			counts[groups-1]++
			continue
		}

		groupRanks[groups] = ranks[i]
		counts[groups] = 1
		groups++
	}

	for i := 1; i < groups; i++ {
		for j := i; j > 0 && counts[j] > counts[j-1]; j-- {
			counts[j], counts[j-1] = counts[j-1], counts[j]
			groupRanks[j], groupRanks[j-1] = groupRanks[j-1], groupRanks[j]
		}
	}

	straightHigh := 0
	if groups == 5 {
		if ranks[0]-ranks[4] == 4 {
			straightHigh = ranks[0]
		} else if ranks[0] == deck.Ace && ranks[1] == 5 {
			// the wheel, A-2-3-4-5
			straightHigh = 5
		}
	}

	var tb [5]int
	var hand Hand
	switch {
	case straightHigh > 0 && flush:
		hand = StraightFlush
		if straightHigh == deck.Ace {
			hand = RoyalFlush
		}
		tb[0] = straightHigh
	case counts[0] == 4:
		hand = FourOfAKind
		tb[0], tb[1] = groupRanks[0], groupRanks[1]
	case counts[0] == 3 && counts[1] == 2:
		hand = FullHouse
		tb[0], tb[1] = groupRanks[0], groupRanks[1]
	case flush:
		hand = Flush
		tb = ranks
	case straightHigh > 0:
		hand = Straight
		tb[0] = straightHigh
	case counts[0] == 3:
		hand = ThreeOfAKind
		tb[0], tb[1], tb[2] = groupRanks[0], groupRanks[1], groupRanks[2]
	case counts[0] == 2 && counts[1] == 2:
		hand = TwoPair
		tb[0], tb[1], tb[2] = groupRanks[0], groupRanks[1], groupRanks[2]
	case counts[0] == 2:
		hand = OnePair
		tb[0], tb[1], tb[2], tb[3] = groupRanks[0], groupRanks[1], groupRanks[2], groupRanks[3]
	default:
		hand = HighCard
		tb = ranks
	}

	return calculateStrength(hand, tb)
}

// calculateStrength packs the category and up to five tiebreak ranks into a single comparable integer
func calculateStrength(hand Hand, tb [5]int) int {
	strength := pow15[5] * int(hand)
	for i := 0; i < 5; i++ {
		strength += pow15[4-i] * tb[i]
	}

	return strength
}

func tiebreaks(score int) [5]int {
	var tb [5]int
	for i := 0; i < 5; i++ {
		tb[i] = (score / pow15[4-i]) % base
	}

	return tb
}

// orderBestFive orders the cards by significance: larger groups first, then rank
func orderBestFive(cards [5]deck.Card, hand Hand) deck.Hand {
	counts := make(map[int]int, 5)
	for _, c := range cards {
		counts[c.Rank]++
	}

	out := deck.Hand(cards[:])
	out = out.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := counts[out[i].Rank], counts[out[j].Rank]
		if ci != cj {
			return ci > cj
		}

		return out[i].Compare(out[j]) > 0
	})

	// the wheel plays the ace low
	if (hand == Straight || hand == StraightFlush) && out[0].Rank == deck.Ace && out[1].Rank == 5 {
		out = append(out[1:], out[0])
	}

	return out
}

var rankNames = map[int]string{
	2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six", 7: "Seven", 8: "Eight",
	9: "Nine", 10: "Ten", 11: "Jack", 12: "Queen", 13: "King", 14: "Ace",
}

func rankName(rank int) string {
	return rankNames[rank]
}

func rankPlural(rank int) string {
	if rank == 6 {
		return "Sixes"
	}

	return rankNames[rank] + "s"
}
