package main

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/handanalyzer"
	"pokercore/pkg/poker/outcome"
	"pokercore/pkg/poker/replay"
)

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func renderEquity(hands [][]deck.Card, result *equity.Result) error {
	data := pterm.TableData{{"Hand", "Win", "Tie", "Lose", "Equity", "95% interval"}}
	for i, p := range result.Players {
		label := deck.CardsToString(hands[i])
		if label == "" {
			label = pterm.Gray("unknown")
		}

		lower, upper := result.ConfidenceInterval(i)
		data = append(data, []string{
			label,
			percent(p.Win),
			percent(p.Tie),
			percent(p.Lose),
			pterm.LightGreen(percent(p.Equity)),
			fmt.Sprintf("%s - %s", percent(lower), percent(upper)),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

func renderRabbitHunt(result outcome.RabbitHuntResult, odds outcome.RabbitHuntDistribution) error {
	verdict := result.FoldedHand.Description()
	switch {
	case result.WinnerHand == nil:
	case result.WouldHaveWon:
		verdict = pterm.LightGreen("would have won with " + verdict)
	case result.WouldHaveTied:
		verdict = pterm.LightYellow("would have tied with " + verdict)
	default:
		verdict = pterm.LightRed("would have lost with " + verdict)
	}

	pterm.DefaultBox.WithTitle(pterm.LightYellow("|RABBIT HUNT|")).WithTitleTopCenter().Println(
		pterm.Sprintfln("Revealed %s", deck.CardsToString(result.Revealed)) +
			pterm.Sprintfln("Board %s", deck.CardsToString(result.Board)) +
			verdict,
	)

	data := pterm.TableData{{"Category", "Completions"}}
	for _, c := range sortedCategories(odds.Categories) {
		data = append(data, []string{c, fmt.Sprintf("%d", odds.Categories[c])})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	if result.WinnerHand != nil {
		pterm.Info.Printfln("%s of %d completions win, %d tie", percent(odds.WinRate), odds.Completions, odds.Ties)
	}

	return nil
}

// sortedCategories returns the category IDs strongest first
func sortedCategories(categories map[string]int64) []string {
	ids := make([]string, 0, len(categories))
	for id := range categories {
		ids = append(ids, id)
	}

	rank := func(id string) int {
		h, err := handanalyzer.HandFromID(id)
		if err != nil {
			return -1
		}

		return int(h)
	}

	sort.Slice(ids, func(i, j int) bool {
		return rank(ids[i]) > rank(ids[j])
	})

	return ids
}

func renderSnapshot(s replay.Snapshot) error {
	title := fmt.Sprintf("|STEP %d - %s|", s.Step, s.Phase)
	if s.LastAction != nil {
		pterm.DefaultSection.Println(fmt.Sprintf("%s %s %s", title, s.LastAction.PlayerID, describeAction(*s.LastAction)))
	} else {
		pterm.DefaultSection.Println(title)
	}

	pterm.Info.Printfln("Board %s | Pot %d | Next %s", deck.CardsToString(s.CommunityCards), s.Pot, s.NextToAct)

	data := pterm.TableData{{"Player", "Stack", "Bet", "Committed", "Status"}}
	for _, p := range s.Players {
		status := pterm.LightGreen("active")
		switch {
		case p.Folded:
			status = pterm.LightRed("folded")
		case p.AllIn:
			status = pterm.LightYellow("all-in")
		}

		data = append(data, []string{p.ID, fmt.Sprintf("%d", p.Stack), fmt.Sprintf("%d", p.Bet), fmt.Sprintf("%d", p.Committed), status})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	for _, sh := range s.Showdown {
		line := fmt.Sprintf("%s shows %s", sh.PlayerID, sh.Evaluation.Description())
		if sh.Winner {
			pterm.Success.Println(line)
		} else {
			pterm.Info.Println(line)
		}
	}

	return nil
}

func describeAction(a replay.Action) string {
	amount := 0
	if a.Amount != nil {
		amount = *a.Amount
	}

	return a.Type.LogMessage(amount)
}
