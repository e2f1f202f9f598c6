package outcome

import (
	"fmt"

	"pokercore/internal/rng"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// RabbitHuntRequest asks what the rest of the board would have been after a hand ended early
// WinnerHole is optional, without it only the folded hand is evaluated
type RabbitHuntRequest struct {
	FoldedHole deck.Hand `json:"foldedHole"`
	WinnerHole deck.Hand `json:"winnerHole"`
	Board      deck.Hand `json:"board"`
	UsedCards  deck.Hand `json:"usedCards"`
}

// RabbitHuntResult is a single reveal of the undealt board
type RabbitHuntResult struct {
	Revealed      deck.Hand                    `json:"revealed"`
	Board         deck.Hand                    `json:"board"`
	FoldedHand    handanalyzer.HandEvaluation  `json:"foldedHand"`
	WinnerHand    *handanalyzer.HandEvaluation `json:"winnerHand,omitempty"`
	BestHand      handanalyzer.Hand            `json:"bestHand"`
	WouldHaveWon  bool                         `json:"wouldHaveWon"`
	WouldHaveTied bool                         `json:"wouldHaveTied"`
}

// RabbitHuntDistribution is the outcome over every possible completion of the board
// Categories counts the folded hand's category by its ID, i.e., "full-house"
type RabbitHuntDistribution struct {
	Completions int64            `json:"completions"`
	Wins        int64            `json:"wins"`
	Ties        int64            `json:"ties"`
	Losses      int64            `json:"losses"`
	WinRate     float64          `json:"winProbability"`
	Categories  map[string]int64 `json:"categories"`
}

// validate returns the undealt cards and how many need to be revealed
func (r RabbitHuntRequest) validate() (deck.Deck, int, error) {
	if len(r.FoldedHole) != 2 {
		return deck.Deck{}, 0, fmt.Errorf("%w: folded hand has %d cards", handanalyzer.ErrInvalidHand, len(r.FoldedHole))
	}

	if len(r.WinnerHole) != 0 && len(r.WinnerHole) != 2 {
		return deck.Deck{}, 0, fmt.Errorf("%w: winning hand has %d cards", handanalyzer.ErrInvalidHand, len(r.WinnerHole))
	}

	if len(r.Board) > 5 {
		return deck.Deck{}, 0, fmt.Errorf("%w: board has %d cards", handanalyzer.ErrInvalidHand, len(r.Board))
	}

	if err := deck.CheckDistinct(r.FoldedHole, r.WinnerHole, r.Board); err != nil {
		return deck.Deck{}, 0, fmt.Errorf("%w: %v", handanalyzer.ErrInvalidHand, err)
	}

	for _, c := range r.UsedCards {
		if !c.Valid() {
			return deck.Deck{}, 0, fmt.Errorf("%w: used card %d/%d", deck.ErrInvalidCard, c.Rank, c.Suit)
		}
	}

	need := 5 - len(r.Board)
	used := deck.NewCardSet(r.UsedCards...).AddAll(r.FoldedHole).AddAll(r.WinnerHole).AddAll(r.Board)
	remaining, err := deck.Remaining(used, need)
	if err != nil {
		return deck.Deck{}, 0, err
	}

	return remaining, need, nil
}

// RabbitHunt deals the rest of the board once from the cards nobody has seen
func RabbitHunt(r RabbitHuntRequest, g rng.Generator) (RabbitHuntResult, error) {
	remaining, need, err := r.validate()
	if err != nil {
		return RabbitHuntResult{}, err
	}

	revealed, _, err := deck.Shuffle(remaining, g).Deal(need)
	if err != nil {
		return RabbitHuntResult{}, err
	}

	board := append(r.Board.Clone(), revealed...)
	folded, err := handanalyzer.Evaluate(append(r.FoldedHole.Clone(), board...))
	if err != nil {
		return RabbitHuntResult{}, err
	}

	result := RabbitHuntResult{
		Revealed:   deck.Hand(revealed),
		Board:      board,
		FoldedHand: folded,
		BestHand:   folded.Category,
	}

	if len(r.WinnerHole) == 2 {
		winner, err := handanalyzer.Evaluate(append(r.WinnerHole.Clone(), board...))
		if err != nil {
			return RabbitHuntResult{}, err
		}

		result.WinnerHand = &winner
		cmp := handanalyzer.Compare(folded, winner)
		result.WouldHaveWon = cmp > 0
		result.WouldHaveTied = cmp == 0
	}

	return result, nil
}

// RabbitHuntOdds enumerates every completion of the board
func RabbitHuntOdds(r RabbitHuntRequest) (RabbitHuntDistribution, error) {
	remaining, need, err := r.validate()
	if err != nil {
		return RabbitHuntDistribution{}, err
	}

	odds := RabbitHuntDistribution{
		Categories: make(map[string]int64),
	}

	cards := remaining.Cards()
	folded := make([]deck.Card, 7)
	copy(folded, r.FoldedHole)
	copy(folded[2:], r.Board)

	var winner []deck.Card
	if len(r.WinnerHole) == 2 {
		winner = make([]deck.Card, 7)
		copy(winner, r.WinnerHole)
		copy(winner[2:], r.Board)
	}

	fixed := 2 + len(r.Board)
	forEachCombination(len(cards), need, func(idx []int) {
		for i, j := range idx {
			folded[fixed+i] = cards[j]
			if winner != nil {
				winner[fixed+i] = cards[j]
			}
		}

		s := handanalyzer.Strength(folded)
		odds.Completions++
		odds.Categories[handanalyzer.CategoryOf(s).ID()]++

		if winner == nil {
			return
		}

		switch w := handanalyzer.Strength(winner); {
		case s > w:
			odds.Wins++
		case s == w:
			odds.Ties++
		default:
			odds.Losses++
		}
	})

	if odds.Completions > 0 {
		odds.WinRate = float64(odds.Wins) / float64(odds.Completions)
	}

	return odds, nil
}

// forEachCombination calls fn with every k-subset of 0..n-1 in lexicographic order
func forEachCombination(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idx)
			return
		}

		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}

	rec(0, 0)
}
