// Package equity computes each hand's win, tie, and loss probability over the remaining run-outs of a
// Texas Hold'em board, either by exhaustive enumeration or by Monte-Carlo sampling.
package equity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"pokercore/internal/rng"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// ErrInvalidHands is an error when the hands cannot be used for an equity calculation
var ErrInvalidHands = errors.New("invalid hands")

// ErrUnknownHandsExhaustive is an error when exhaustive mode is requested with unknown hole cards
var ErrUnknownHandsExhaustive = errors.New("exhaustive enumeration requires every hand to be known")

// MaxHands is the most hands a single calculation accepts
const MaxHands = 10

// tieUnit is divisible by every tie size up to MaxHands, so tie shares are tallied as exact integers
const tieUnit = 2520

// Mode is how run-outs are produced
type Mode string

// mode constants
const (
	Auto       Mode = "auto"
	Exhaustive Mode = "exhaustive"
	MonteCarlo Mode = "monte-carlo"
)

// ModeFromString returns a mode for the given string, the empty string means Auto
func ModeFromString(s string) (Mode, error) {
	switch Mode(s) {
	case "", Auto:
		return Auto, nil
	case Exhaustive:
		return Exhaustive, nil
	case MonteCarlo:
		return MonteCarlo, nil
	}

	return "", fmt.Errorf("unknown equity mode: %s", s)
}

// PlayerEquity is the outcome distribution of a single hand
// Win + Tie + Lose is 1. Equity is Win plus each tie split 1/k between the k tying hands
// Tie is the frequency of run-outs ending in a tie, not the player's share of them
type PlayerEquity struct {
	Win    float64 `json:"winProbability"`
	Tie    float64 `json:"tieProbability"`
	Lose   float64 `json:"loseProbability"`
	Equity float64 `json:"equity"`
}

// SampleSpace describes the run-outs a result was computed over
type SampleSpace struct {
	Mode      Mode      `json:"mode"`
	RunOuts   int64     `json:"runOuts"`
	DeadCards deck.Hand `json:"deadCards"`
}

// Result is the outcome of an equity calculation, one entry per hand in input order
type Result struct {
	Players     []PlayerEquity `json:"players"`
	SampleSpace SampleSpace    `json:"sampleSpace"`
	Duration    time.Duration  `json:"duration"`
}

// ConfidenceInterval returns the 95% confidence interval of a hand's equity
// Exhaustive results are exact, so the interval collapses to the equity itself
func (r *Result) ConfidenceInterval(i int) (lower, upper float64) {
	eq := r.Players[i].Equity
	n := float64(r.SampleSpace.RunOuts)
	if r.SampleSpace.Mode == Exhaustive || n == 0 {
		return eq, eq
	}

	margin := 1.96 * math.Sqrt(eq*(1-eq)/n)
	return math.Max(0, eq-margin), math.Min(1, eq+margin)
}

// Calculator performs equity calculations
type Calculator struct {
	samples         int
	workers         int
	seed            int64
	seeded          bool
	mode            Mode
	exhaustiveLimit int64
	logger          logrus.FieldLogger
}

// Option is a functional option for configuring the Calculator
type Option func(*Calculator)

// WithSamples sets the number of Monte-Carlo samples
func WithSamples(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.samples = n
		}
	}
}

// WithWorkers sets the number of parallel workers
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeed makes Monte-Carlo results reproducible on any machine and worker count
func WithSeed(seed int64) Option {
	return func(c *Calculator) {
		c.seed = seed
		c.seeded = true
	}
}

// WithMode forces a mode instead of choosing automatically
func WithMode(mode Mode) Option {
	return func(c *Calculator) {
		c.mode = mode
	}
}

// WithExhaustiveLimit sets the largest number of run-outs Auto mode will enumerate
func WithExhaustiveLimit(n int64) Option {
	return func(c *Calculator) {
		c.exhaustiveLimit = n
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// default calculator settings
const (
	DefaultSamples         = 100000
	DefaultExhaustiveLimit = 2000000
)

// NewCalculator creates a new equity calculator with the given options
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		samples:         DefaultSamples,
		workers:         runtime.NumCPU(),
		mode:            Auto,
		exhaustiveLimit: DefaultExhaustiveLimit,
		logger:          logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// problem is a validated calculation
type problem struct {
	hands     [][]deck.Card
	unknown   []int
	board     []deck.Card
	needBoard int
	remaining []deck.Card
	dead      deck.Hand
}

func (p *problem) need() int {
	return p.needBoard + 2*len(p.unknown)
}

func newProblem(hands [][]deck.Card, board []deck.Card, dead []deck.Card) (*problem, error) {
	if len(hands) < 2 || len(hands) > MaxHands {
		return nil, fmt.Errorf("%w: need 2 to %d hands, got %d", ErrInvalidHands, MaxHands, len(hands))
	}

	if len(board) > 5 {
		return nil, fmt.Errorf("%w: board has %d cards", handanalyzer.ErrInvalidHand, len(board))
	}

	p := &problem{
		hands:     make([][]deck.Card, len(hands)),
		board:     append([]deck.Card{}, board...),
		needBoard: 5 - len(board),
	}

	known := []([]deck.Card){board}
	for i, h := range hands {
		switch len(h) {
		case 0:
			p.unknown = append(p.unknown, i)
		case 2:
			p.hands[i] = append([]deck.Card{}, h...)
			known = append(known, h)
		default:
			return nil, fmt.Errorf("%w: hand %d has %d cards", ErrInvalidHands, i, len(h))
		}
	}

	if err := deck.CheckDistinct(known...); err != nil {
		return nil, fmt.Errorf("%w: %v", handanalyzer.ErrInvalidHand, err)
	}

	for _, c := range dead {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: dead card %d/%d", deck.ErrInvalidCard, c.Rank, c.Suit)
		}
	}

	excluded := deck.NewCardSet(dead...)
	for _, k := range known {
		excluded = excluded.AddAll(k)
	}

	remaining, err := deck.Remaining(excluded, p.needBoard+2*len(p.unknown))
	if err != nil {
		return nil, err
	}

	p.remaining = remaining.Cards()
	p.dead = deck.NewCardSet(dead...).Cards()
	return p, nil
}

// Calculate computes the equity of each hand
// An empty hand is an unknown placeholder, its cards are drawn with the board. Dead cards can never
// appear in a run-out. A canceled context stops the calculation at the next sample boundary
func (c *Calculator) Calculate(ctx context.Context, hands [][]deck.Card, board []deck.Card, dead []deck.Card) (*Result, error) {
	start := time.Now()

	p, err := newProblem(hands, board, dead)
	if err != nil {
		return nil, err
	}

	mode, err := c.selectMode(p)
	if err != nil {
		return nil, err
	}

	var t *tally
	switch mode {
	case Exhaustive:
		t, err = c.enumerate(ctx, p)
	case MonteCarlo:
		t, err = c.sample(ctx, p)
	default:
		return nil, fmt.Errorf("unknown equity mode: %s", mode)
	}

	if err != nil {
		return nil, err
	}

	result := t.result(mode)
	result.SampleSpace.DeadCards = p.dead
	result.Duration = time.Since(start)

	c.logger.WithFields(logrus.Fields{
		"mode":     mode,
		"hands":    len(p.hands),
		"runOuts":  result.SampleSpace.RunOuts,
		"duration": result.Duration,
	}).Debug("calculated equity")

	return result, nil
}

func (c *Calculator) selectMode(p *problem) (Mode, error) {
	switch c.mode {
	case Exhaustive:
		if len(p.unknown) > 0 {
			return "", ErrUnknownHandsExhaustive
		}
		return Exhaustive, nil
	case MonteCarlo:
		return MonteCarlo, nil
	case Auto, "":
		if len(p.unknown) > 0 {
			return MonteCarlo, nil
		}

		if Combinations(len(p.remaining), p.needBoard) <= c.exhaustiveLimit {
			return Exhaustive, nil
		}

		return MonteCarlo, nil
	}

	return "", fmt.Errorf("unknown equity mode: %s", c.mode)
}

// Combinations returns C(n, k)
func Combinations(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}

	if k > n-k {
		k = n - k
	}

	r := int64(1)
	for i := 1; i <= k; i++ {
		r = r * int64(n-k+i) / int64(i)
	}

	return r
}

// chunkStream returns the random stream of a sample chunk
func (c *Calculator) chunkStream(chunk int) rng.Generator {
	if !c.seeded {
		return rng.NewSeeded(rng.Crypto{}.Seed())
	}

	return rng.NewSeeded(c.seed + int64(chunk))
}
