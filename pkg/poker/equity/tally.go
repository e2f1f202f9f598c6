package equity

import (
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// tally holds one worker's private counters
type tally struct {
	runOuts int64
	wins    []int64
	ties    []int64
	losses  []int64
	shares  []int64

	// scratch space, owned by the worker
	scores []int
	seven  [7]deck.Card
}

func newTally(players int) *tally {
	return &tally{
		wins:   make([]int64, players),
		ties:   make([]int64, players),
		losses: make([]int64, players),
		shares: make([]int64, players),
		scores: make([]int, players),
	}
}

// record scores a single run-out, board must have five cards
func (t *tally) record(hands [][]deck.Card, board []deck.Card) {
	copy(t.seven[2:], board)

	best := -1
	tied := 0
	for i, hand := range hands {
		t.seven[0], t.seven[1] = hand[0], hand[1]
		s := handanalyzer.Strength(t.seven[:])
		t.scores[i] = s

		switch {
		case s > best:
			best = s
			tied = 1
		case s == best:
			tied++
		}
	}

	for i, s := range t.scores {
		switch {
		case s != best:
			t.losses[i]++
		case tied == 1:
			t.wins[i]++
		default:
			t.ties[i]++
			t.shares[i] += int64(tieUnit / tied)
		}
	}

	t.runOuts++
}

// merge adds another tally into this one
func (t *tally) merge(o *tally) {
	t.runOuts += o.runOuts
	for i := range t.wins {
		t.wins[i] += o.wins[i]
		t.ties[i] += o.ties[i]
		t.losses[i] += o.losses[i]
		t.shares[i] += o.shares[i]
	}
}

func (t *tally) result(mode Mode) *Result {
	players := make([]PlayerEquity, len(t.wins))
	n := float64(t.runOuts)
	for i := range players {
		if n == 0 {
			continue
		}

		players[i] = PlayerEquity{
			Win:    float64(t.wins[i]) / n,
			Tie:    float64(t.ties[i]) / n,
			Lose:   float64(t.losses[i]) / n,
			Equity: (float64(t.wins[i])*tieUnit + float64(t.shares[i])) / (n * tieUnit),
		}
	}

	return &Result{
		Players: players,
		SampleSpace: SampleSpace{
			Mode:    mode,
			RunOuts: t.runOuts,
		},
	}
}
