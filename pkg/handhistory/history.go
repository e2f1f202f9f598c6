// Package handhistory archives finished hands, exports them as plaintext or JSON, and stores them
package handhistory

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"pokercore/pkg/poker/outcome"
	"pokercore/pkg/poker/replay"
)

// ErrNotFound is returned when a hand history does not exist
var ErrNotFound = errors.New("hand history not found")

// ErrNotSettled is returned when a hand ended without a single pot winner
var ErrNotSettled = errors.New("hand cannot be settled from its log")

// Winner is a player who collected chips at the end of the hand
type Winner struct {
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
	Hand     string `json:"hand,omitempty"`
}

// History is a complete record of a hand
type History struct {
	ID        uuid.UUID       `json:"id"`
	Table     string          `json:"table"`
	StartedAt time.Time       `json:"startedAt"`
	Setup     replay.Setup    `json:"setup"`
	Actions   []replay.Action `json:"actions"`
	Pot       int             `json:"pot"`
	Rake      int             `json:"rake"`
	Winners   []Winner        `json:"winners"`
}

// New returns a settled history of a hand
func New(table string, startedAt time.Time, setup replay.Setup, actions []replay.Action, settings outcome.Settings) (*History, error) {
	h := &History{
		ID:        uuid.New(),
		Table:     table,
		StartedAt: startedAt.UTC(),
		Setup:     setup,
		Actions:   append([]replay.Action{}, actions...),
	}

	if err := h.settle(settings); err != nil {
		return nil, err
	}

	return h, nil
}

// Final returns the table state after the last action
func (h *History) Final() (replay.Snapshot, error) {
	return replay.Reconstruct(h.Setup, h.Actions, len(h.Actions)-1)
}

// settle awards the raked pot to the showdown winners, or to the last player standing
func (h *History) settle(settings outcome.Settings) error {
	final, err := h.Final()
	if err != nil {
		return err
	}

	h.Pot = final.Pot
	h.Rake = settings.Rake(final.Pot)
	h.Winners = nil

	var ids []string
	hands := make(map[string]string)
	for _, sh := range final.Showdown {
		if sh.Winner {
			ids = append(ids, sh.PlayerID)
			hands[sh.PlayerID] = sh.Evaluation.Description()
		}
	}

	if len(ids) == 0 {
		for _, p := range final.Players {
			if !p.Folded {
				ids = append(ids, p.ID)
			}
		}

		if len(ids) != 1 {
			return fmt.Errorf("%w: %d players remain without a showdown", ErrNotSettled, len(ids))
		}
	}

	amount := h.Pot - h.Rake
	share := amount / len(ids)
	odd := amount % len(ids)
	for i, id := range ids {
		w := Winner{
			PlayerID: id,
			Amount:   share,
			Hand:     hands[id],
		}

		if i < odd {
			w.Amount++
		}

		h.Winners = append(h.Winners, w)
	}

	return nil
}
