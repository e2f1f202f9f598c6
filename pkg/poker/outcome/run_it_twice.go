package outcome

import (
	"fmt"

	"pokercore/internal/rng"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// CombinedResult summarizes both runs
type CombinedResult string

// combined result constants
const (
	// Sweep is one player winning both runs outright
	Sweep CombinedResult = "sweep"
	Split CombinedResult = "split"
)

// Run is one completion of the board
type Run struct {
	Board       deck.Hand                              `json:"board"`
	Amount      int                                    `json:"amount"`
	Winners     []string                               `json:"winners"`
	Payouts     map[string]int                         `json:"payouts"`
	Evaluations map[string]handanalyzer.HandEvaluation `json:"evaluations"`
}

// RunItTwiceResult is the outcome of dealing the rest of the board twice
type RunItTwiceResult struct {
	Runs           [2]Run         `json:"runs"`
	Totals         map[string]int `json:"totals"`
	CombinedResult CombinedResult `json:"combinedResult"`
}

// RunItTwice deals the rest of the board twice and splits the pot between the runs
// Both runs come off one shuffle of the unseen cards, so no card can appear in both. Run one
// plays for the larger half of an odd pot. Tied winners split a run, odd chips go to the earliest seat
func RunItTwice(s AllInScenario, g rng.Generator) (RunItTwiceResult, error) {
	if err := s.Validate(); err != nil {
		return RunItTwiceResult{}, err
	}

	if len(s.Board) > 5 {
		return RunItTwiceResult{}, fmt.Errorf("%w: board has %d cards", handanalyzer.ErrInvalidHand, len(s.Board))
	}

	known := [][]deck.Card{s.Board}
	for _, p := range s.Players {
		if len(p.Hole) != 2 {
			return RunItTwiceResult{}, fmt.Errorf("%w: %s has no known hand", ErrInvalidScenario, p.ID)
		}

		known = append(known, p.Hole)
	}

	if err := deck.CheckDistinct(known...); err != nil {
		return RunItTwiceResult{}, fmt.Errorf("%w: %v", handanalyzer.ErrInvalidHand, err)
	}

	excluded := deck.NewCardSet(s.Dead...)
	for _, k := range known {
		excluded = excluded.AddAll(k)
	}

	need := 5 - len(s.Board)
	remaining, err := deck.Remaining(excluded, 2*need)
	if err != nil {
		return RunItTwiceResult{}, err
	}

	shuffled := deck.Shuffle(remaining, g)
	first, rest, err := shuffled.Deal(need)
	if err != nil {
		return RunItTwiceResult{}, err
	}

	second, _, err := rest.Deal(need)
	if err != nil {
		return RunItTwiceResult{}, err
	}

	result := RunItTwiceResult{
		Totals: make(map[string]int, len(s.Players)),
	}

	half := s.Pot / 2
	result.Runs[0], err = resolveRun(s, first, s.Pot-half)
	if err != nil {
		return RunItTwiceResult{}, err
	}

	result.Runs[1], err = resolveRun(s, second, half)
	if err != nil {
		return RunItTwiceResult{}, err
	}

	for _, run := range result.Runs {
		for id, amount := range run.Payouts {
			result.Totals[id] += amount
		}
	}

	result.CombinedResult = Split
	w1, w2 := result.Runs[0].Winners, result.Runs[1].Winners
	if len(w1) == 1 && len(w2) == 1 && w1[0] == w2[0] {
		result.CombinedResult = Sweep
	}

	return result, nil
}

func resolveRun(s AllInScenario, drawn []deck.Card, amount int) (Run, error) {
	board := append(s.Board.Clone(), drawn...)
	run := Run{
		Board:       board,
		Amount:      amount,
		Payouts:     make(map[string]int),
		Evaluations: make(map[string]handanalyzer.HandEvaluation, len(s.Players)),
	}

	var ranking handanalyzer.Ranking
	for _, p := range s.Players {
		e, err := handanalyzer.Evaluate(append(p.Hole.Clone(), board...))
		if err != nil {
			return Run{}, err
		}

		run.Evaluations[p.ID] = e
		ranking.Add(p.ID, e)
	}

	run.Winners = ranking.Winners()
	for id, v := range splitChips(amount, run.Winners) {
		run.Payouts[id] = v
	}

	return run, nil
}

// splitChips divides amount evenly, the remainder is paid one chip at a time from the first winner
func splitChips(amount int, winners []string) map[string]int {
	out := make(map[string]int, len(winners))
	if len(winners) == 0 {
		return out
	}

	share := amount / len(winners)
	odd := amount % len(winners)
	for i, id := range winners {
		out[id] = share
		if i < odd {
			out[id]++
		}
	}

	return out
}
