package outcome

import (
	"fmt"

	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// BadBeatRequest describes a hand that may trigger the bad-beat jackpot
// TablePlayers is everyone seated, the loser and winner may be included
type BadBeatRequest struct {
	LoserID      string    `json:"loserId"`
	WinnerID     string    `json:"winnerId"`
	LoserHole    deck.Hand `json:"loserHole"`
	WinnerHole   deck.Hand `json:"winnerHole"`
	Board        deck.Hand `json:"board"`
	TablePlayers []string  `json:"tablePlayers"`
	Jackpot      int       `json:"jackpot"`
}

// BadBeatPayout is how a jackpot is distributed
// Loser gets 50%, Winner 25%, and the other seated players split 25%. Every amount is floored and
// whatever is left over, including the table share at an otherwise empty table, goes to the house
type BadBeatPayout struct {
	Qualified  bool                        `json:"qualified"`
	LoserHand  handanalyzer.HandEvaluation `json:"loserHand"`
	WinnerHand handanalyzer.HandEvaluation `json:"winnerHand"`
	Loser      int                         `json:"loser"`
	Winner     int                         `json:"winner"`
	Table      map[string]int              `json:"table"`
	House      int                         `json:"house"`
	Total      int                         `json:"total"`
}

// BadBeat decides whether the hand qualifies and, if so, distributes the jackpot
func BadBeat(r BadBeatRequest, settings Settings) (BadBeatPayout, error) {
	minimum, err := settings.badBeatMinimum()
	if err != nil {
		return BadBeatPayout{}, err
	}

	if r.Jackpot < 0 {
		return BadBeatPayout{}, fmt.Errorf("%w: negative jackpot", ErrInvalidScenario)
	}

	if r.LoserID == "" || r.WinnerID == "" || r.LoserID == r.WinnerID {
		return BadBeatPayout{}, fmt.Errorf("%w: loser and winner must be different players", ErrInvalidScenario)
	}

	if len(r.LoserHole) != 2 || len(r.WinnerHole) != 2 || len(r.Board) != 5 {
		return BadBeatPayout{}, fmt.Errorf("%w: bad beats need two known hands and a full board", handanalyzer.ErrInvalidHand)
	}

	if err := deck.CheckDistinct(r.LoserHole, r.WinnerHole, r.Board); err != nil {
		return BadBeatPayout{}, fmt.Errorf("%w: %v", handanalyzer.ErrInvalidHand, err)
	}

	loser, err := handanalyzer.Evaluate(append(r.LoserHole.Clone(), r.Board...))
	if err != nil {
		return BadBeatPayout{}, err
	}

	winner, err := handanalyzer.Evaluate(append(r.WinnerHole.Clone(), r.Board...))
	if err != nil {
		return BadBeatPayout{}, err
	}

	payout := BadBeatPayout{
		LoserHand:  loser,
		WinnerHand: winner,
		Table:      make(map[string]int),
	}

	if loser.Score < minimum.Score || handanalyzer.Compare(winner, loser) <= 0 {
		return payout, nil
	}

	payout.Qualified = true
	payout.Total = r.Jackpot
	payout.Loser = r.Jackpot / 2
	payout.Winner = r.Jackpot / 4

	others := otherPlayers(r)
	tableShare := r.Jackpot / 4
	paid := payout.Loser + payout.Winner
	if len(others) > 0 {
		each := tableShare / len(others)
		for _, id := range others {
			payout.Table[id] = each
			paid += each
		}
	}

	payout.House = r.Jackpot - paid
	return payout, nil
}

// otherPlayers returns the seated players besides the loser and winner, once each, in seat order
func otherPlayers(r BadBeatRequest) []string {
	seen := map[string]bool{r.LoserID: true, r.WinnerID: true}
	var others []string
	for _, id := range r.TablePlayers {
		if id == "" || seen[id] {
			continue
		}

		seen[id] = true
		others = append(others, id)
	}

	return others
}
