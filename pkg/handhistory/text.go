package handhistory

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pokercore/pkg/deck"
	"pokercore/pkg/poker/replay"
)

const timeFormat = "2006-01-02 15:04:05 MST"

func bracket(cards []deck.Card) string {
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = c.String()
	}

	return "[" + strings.Join(s, " ") + "]"
}

// streetHeader returns the line announcing a new street, or "" when the board was never dealt that far
func streetHeader(p replay.Phase, board deck.Hand) string {
	n := p.BoardCards()
	if p == replay.Showdown {
		return "*** SHOW DOWN ***"
	}

	if n > len(board) {
		return ""
	}

	switch p {
	case replay.Flop:
		return "*** FLOP *** " + bracket(board[:3])
	case replay.Turn:
		return "*** TURN *** " + bracket(board[:3]) + " " + bracket(board[3:4])
	case replay.River:
		return "*** RIVER *** " + bracket(board[:4]) + " " + bracket(board[4:5])
	}

	return ""
}

var streets = []replay.Phase{replay.PreFlop, replay.Flop, replay.Turn, replay.River, replay.Showdown}

// WriteText writes the hand in the plaintext format card rooms use
func WriteText(w io.Writer, h *History) error {
	snapshots, err := replay.Snapshots(h.Setup, h.Actions)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	line := func(format string, args ...interface{}) {
		_, _ = fmt.Fprintf(bw, format+"\n", args...)
	}

	setup := h.Setup
	line("Hand #%s: Hold'em No Limit (%d/%d) - %s", h.ID, setup.SmallBlind, setup.BigBlind, h.StartedAt.UTC().Format(timeFormat))
	line("Table '%s'", h.Table)
	for i, p := range setup.Players {
		line("Seat %d: %s (%d in chips)", i+1, p.ID, p.Stack)
	}

	seed := snapshots[0]
	sb, bb := setup.Players[setup.SmallBlindSeat].ID, setup.Players[setup.BigBlindSeat].ID
	if p, _ := seed.Player(sb); p.Bet > 0 {
		line("%s: %s", sb, replay.PostSmallBlind.LogMessage(p.Bet))
	}
	if p, _ := seed.Player(bb); p.Bet > 0 {
		line("%s: %s", bb, replay.PostBigBlind.LogMessage(p.Bet))
	}

	line("*** HOLE CARDS ***")
	for _, p := range setup.Players {
		if hole, ok := setup.HoleCards[p.ID]; ok {
			line("Dealt to %s %s", p.ID, bracket(hole))
		}
	}

	street := 0
	for i, action := range h.Actions {
		for street < len(streets)-1 && streets[street] != action.Phase {
			street++
			if header := streetHeader(streets[street], setup.Board); header != "" {
				line(header)
			}
		}

		prev, next := snapshots[i], snapshots[i+1]
		line("%s: %s", action.PlayerID, actionMessage(action, prev, next))
	}

	final := snapshots[len(snapshots)-1]
	for _, sh := range final.Showdown {
		line("%s: shows %s (%s)", sh.PlayerID, bracket(setup.HoleCards[sh.PlayerID]), sh.Evaluation.Description())
	}

	for _, winner := range h.Winners {
		line("%s collected %d from pot", winner.PlayerID, winner.Amount)
	}

	line("*** SUMMARY ***")
	line("Total pot %d | Rake %d", h.Pot, h.Rake)
	if len(final.CommunityCards) > 0 {
		line("Board %s", bracket(final.CommunityCards))
	}

	won := make(map[string]Winner, len(h.Winners))
	for _, winner := range h.Winners {
		won[winner.PlayerID] = winner
	}

	shown := make(map[string]string, len(final.Showdown))
	for _, sh := range final.Showdown {
		shown[sh.PlayerID] = sh.Evaluation.Description()
	}

	for i, p := range final.Players {
		winner, isWinner := won[p.ID]
		desc, showed := shown[p.ID]
		switch {
		case p.Folded:
			line("Seat %d: %s folded", i+1, p.ID)
		case showed && isWinner:
			line("Seat %d: %s showed %s and won (%d) with %s", i+1, p.ID, bracket(setup.HoleCards[p.ID]), winner.Amount, desc)
		case showed:
			line("Seat %d: %s showed %s and lost with %s", i+1, p.ID, bracket(setup.HoleCards[p.ID]), desc)
		case isWinner:
			line("Seat %d: %s collected (%d)", i+1, p.ID, winner.Amount)
		default:
			line("Seat %d: %s mucked", i+1, p.ID)
		}
	}

	return bw.Flush()
}

// actionMessage describes an action with the chip amounts it moved
func actionMessage(action replay.Action, prev, next replay.Snapshot) string {
	before, _ := prev.Player(action.PlayerID)
	after, _ := next.Player(action.PlayerID)

	// a new street clears the previous bet
	if action.Phase != prev.Phase {
		before.Bet = 0
	}

	switch action.Type {
	case replay.Call:
		return action.Type.LogMessage(after.Bet - before.Bet)
	case replay.Bet, replay.Raise, replay.AllIn:
		return action.Type.LogMessage(after.Bet)
	}

	return action.Type.LogMessage(0)
}
