// Package outcome prices and resolves all-in situations: cashout offers, all-in insurance, rabbit hunts,
// running the board twice, and bad-beat jackpot payouts. Every calculator is a pure function of its
// inputs, randomness is always passed in.
package outcome

import (
	"errors"
	"fmt"

	"pokercore/pkg/deck"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/replay"
)

// ErrInvalidScenario is an error when an all-in scenario is inconsistent
var ErrInvalidScenario = errors.New("invalid scenario")

// ScenarioPlayer is a player involved in an all-in
type ScenarioPlayer struct {
	ID           string    `json:"id"`
	Hole         deck.Hand `json:"hole"`
	Contribution int       `json:"contribution"`
}

// AllInScenario is the state of a hand once every remaining player is all-in
type AllInScenario struct {
	Players []ScenarioPlayer `json:"players"`
	Pot     int              `json:"pot"`
	Board   deck.Hand        `json:"board"`
	Dead    deck.Hand        `json:"dead"`
	Phase   replay.Phase     `json:"phase"`
}

// Validate checks the scenario is usable
func (s AllInScenario) Validate() error {
	if len(s.Players) < 2 {
		return fmt.Errorf("%w: need at least 2 players", ErrInvalidScenario)
	}

	if s.Pot < 0 {
		return fmt.Errorf("%w: negative pot", ErrInvalidScenario)
	}

	total := 0
	for _, p := range s.Players {
		if p.Contribution < 0 {
			return fmt.Errorf("%w: negative contribution for %s", ErrInvalidScenario, p.ID)
		}

		if len(p.Hole) != 0 && len(p.Hole) != 2 {
			return fmt.Errorf("%w: %s has %d hole cards", ErrInvalidScenario, p.ID, len(p.Hole))
		}

		total += p.Contribution
	}

	if total == 0 {
		return fmt.Errorf("%w: nobody contributed to the pot", ErrInvalidScenario)
	}

	return nil
}

// Hands returns the hole cards of every player, in seat order, in the shape the equity engine takes
func (s AllInScenario) Hands() [][]deck.Card {
	hands := make([][]deck.Card, len(s.Players))
	for i, p := range s.Players {
		hands[i] = p.Hole
	}

	return hands
}

// PotShare returns the part of the pot a player is contesting, in proportion to their contribution
func (s AllInScenario) PotShare(i int) float64 {
	total := 0
	for _, p := range s.Players {
		total += p.Contribution
	}

	if total == 0 {
		return 0
	}

	return float64(s.Pot) * float64(s.Players[i].Contribution) / float64(total)
}

func (s AllInScenario) checkEquity(eq *equity.Result) error {
	if eq == nil || len(eq.Players) != len(s.Players) {
		return fmt.Errorf("%w: equity does not match the players", ErrInvalidScenario)
	}

	return nil
}
