package equity

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"pokercore/internal/rng"
	"pokercore/pkg/deck"
)

// chunkSize is the number of samples drawn from one random stream
const chunkSize = 4096

// sample draws random completions of the board and the unknown hands
// Samples are cut into fixed chunks, chunk i drawing from its own stream seeded seed+i,
// so a seeded result does not depend on the worker count
func (c *Calculator) sample(ctx context.Context, p *problem) (*tally, error) {
	chunks := (c.samples + chunkSize - 1) / chunkSize
	workers := c.workers
	if workers > chunks {
		workers = chunks
	}

	tallies := make([]*tally, chunks)
	var next int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(atomic.AddInt64(&next, 1) - 1)
				if i >= chunks {
					return nil
				}

				n := chunkSize
				if i == chunks-1 {
					n = c.samples - i*chunkSize
				}

				t := newTally(len(p.hands))
				if err := sampleChunk(ctx, p, c.chunkStream(i), n, t); err != nil {
					return err
				}

				tallies[i] = t
			}
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

// sampleChunk draws samples run-outs from one stream over a fresh copy of the remaining cards
func sampleChunk(ctx context.Context, p *problem, g rng.Generator, samples int, t *tally) error {
	pool := append([]deck.Card{}, p.remaining...)
	need := p.need()
	fixed := len(p.board)

	board := make([]deck.Card, 5)
	copy(board, p.board)

	hands := make([][]deck.Card, len(p.hands))
	copy(hands, p.hands)

	for s := 0; s < samples; s++ {
		if s%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		// partial Fisher-Yates, the first need cards of pool become a uniform draw
		for i := 0; i < need; i++ {
			j := i + g.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}

		copy(board[fixed:], pool[:p.needBoard])
		next := p.needBoard
		for _, idx := range p.unknown {
			hands[idx] = pool[next : next+2]
			next += 2
		}

		t.record(hands, board)
	}

	return nil
}
