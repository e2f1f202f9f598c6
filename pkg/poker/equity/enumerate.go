package equity

import (
	"context"

	"golang.org/x/sync/errgroup"
	"pokercore/pkg/deck"
)

// how often workers look at the context
const checkEvery = 1024

// enumerate visits every board completion exactly once
// Work is split by the index of the first drawn card, worker w takes indexes w, w+workers, ...
// Tallies are merged in worker order, so the result does not depend on scheduling
func (c *Calculator) enumerate(ctx context.Context, p *problem) (*tally, error) {
	if p.needBoard == 0 {
		t := newTally(len(p.hands))
		t.record(p.hands, p.board)
		return t, nil
	}

	workers := c.workers
	if n := len(p.remaining) - p.needBoard + 1; workers > n {
		workers = n
	}

	tallies := make([]*tally, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		t := newTally(len(p.hands))
		tallies[w] = t

		g.Go(func() error {
			return enumerateWorker(ctx, p, w, workers, t)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally(len(p.hands))
	for _, t := range tallies {
		total.merge(t)
	}

	return total, nil
}

func enumerateWorker(ctx context.Context, p *problem, w, workers int, t *tally) error {
	board := make([]deck.Card, 5)
	copy(board, p.board)
	fixed := len(p.board)
	n := len(p.remaining)
	k := p.needBoard

	var err error
	var rec func(start, depth int) bool
	rec = func(start, depth int) bool {
		if depth == k {
			t.record(p.hands, board)
			if t.runOuts%checkEvery == 0 {
				if err = ctx.Err(); err != nil {
					return false
				}
			}

			return true
		}

		for i := start; i <= n-(k-depth); i++ {
			board[fixed+depth] = p.remaining[i]
			if !rec(i+1, depth+1) {
				return false
			}
		}

		return true
	}

	for first := w; first <= n-k; first += workers {
		board[fixed] = p.remaining[first]
		if !rec(first+1, 1) {
			return err
		}
	}

	return ctx.Err()
}
