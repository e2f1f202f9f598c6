package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"pokercore/internal/rng"
	"pokercore/pkg/deck"
	"pokercore/pkg/handhistory"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/handanalyzer"
	"pokercore/pkg/poker/outcome"
	"pokercore/pkg/poker/replay"
)

var command = flag.String("c", "evaluate", "specifies the command (evaluate, equity, rabbit, replay, history)")

var (
	cardsFlag   = flag.String("cards", "", "cards to evaluate, i.e., As,Kd,Qh,Jc,Ts")
	handsFlag   = flag.String("hands", "", "hole cards separated by |, an empty hand is unknown, i.e., AhKh|QsQd|")
	boardFlag   = flag.String("board", "", "community cards")
	deadFlag    = flag.String("dead", "", "cards that cannot be dealt")
	modeFlag    = flag.String("mode", "auto", "equity mode (auto, exhaustive, monte-carlo)")
	samplesFlag = flag.Int("samples", equity.DefaultSamples, "Monte-Carlo samples")
	seedFlag    = flag.Int64("seed", 0, "seed for reproducible results, 0 is random")
	foldedFlag  = flag.String("folded", "", "hole cards of the folded player")
	winnerFlag  = flag.String("winner", "", "hole cards of the player who won")
	fileFlag    = flag.String("file", "", "JSON file with {setup, actions}")
	stepFlag    = flag.Int("step", -2, "replay step, -1 is before any action, omitted prints every step")
	verboseFlag = flag.Bool("v", false, "verbose logging")
)

func main() {
	flag.Parse()
	if *verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var err error
	switch *command {
	case "evaluate":
		err = evaluate()
	case "equity":
		err = calculateEquity()
	case "rabbit":
		err = rabbitHunt()
	case "replay":
		err = replayHand()
	case "history":
		err = printHistory()
	default:
		err = fmt.Errorf("unknown command: %s", *command)
	}

	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// parseCards returns nil for an empty flag so an empty hand stays unknown
func parseCards(s string) ([]deck.Card, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	return deck.ParseCards(s)
}

func evaluate() error {
	cards, err := parseCards(*cardsFlag)
	if err != nil {
		return err
	}

	eval, err := handanalyzer.Evaluate(cards)
	if err != nil {
		return err
	}

	return pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Hand", "Best five", "Score"},
		{eval.Description(), deck.CardsToString(eval.BestFive), fmt.Sprintf("%d", eval.Score)},
	}).Render()
}

func calculateEquity() error {
	var hands [][]deck.Card
	for _, h := range strings.Split(*handsFlag, "|") {
		cards, err := parseCards(h)
		if err != nil {
			return err
		}

		hands = append(hands, cards)
	}

	board, err := parseCards(*boardFlag)
	if err != nil {
		return err
	}

	dead, err := parseCards(*deadFlag)
	if err != nil {
		return err
	}

	mode, err := equity.ModeFromString(*modeFlag)
	if err != nil {
		return err
	}

	opts := []equity.Option{
		equity.WithMode(mode),
		equity.WithSamples(*samplesFlag),
		equity.WithLogger(logrus.StandardLogger()),
	}

	if *seedFlag != 0 {
		opts = append(opts, equity.WithSeed(*seedFlag))
	}

	spinner, _ := pterm.DefaultSpinner.Start("calculating equity")
	result, err := equity.NewCalculator(opts...).Calculate(context.Background(), hands, board, dead)
	if err != nil {
		_ = spinner.Stop()
		return err
	}
	spinner.Success(fmt.Sprintf("%d run-outs (%s) in %s", result.SampleSpace.RunOuts, result.SampleSpace.Mode, result.Duration.Round(time.Millisecond)))

	return renderEquity(hands, result)
}

func rabbitHunt() error {
	folded, err := parseCards(*foldedFlag)
	if err != nil {
		return err
	}

	winner, err := parseCards(*winnerFlag)
	if err != nil {
		return err
	}

	board, err := parseCards(*boardFlag)
	if err != nil {
		return err
	}

	req := outcome.RabbitHuntRequest{FoldedHole: folded, WinnerHole: winner, Board: board}

	var g rng.Generator = rng.Crypto{}
	if *seedFlag != 0 {
		g = rng.NewSeeded(*seedFlag)
	}

	result, err := outcome.RabbitHunt(req, g)
	if err != nil {
		return err
	}

	odds, err := outcome.RabbitHuntOdds(req)
	if err != nil {
		return err
	}

	return renderRabbitHunt(result, odds)
}

type handFile struct {
	Table   string          `json:"table"`
	Setup   replay.Setup    `json:"setup"`
	Actions []replay.Action `json:"actions"`
}

func readHandFile() (handFile, error) {
	var hf handFile

	f, err := os.Open(*fileFlag)
	if err != nil {
		return hf, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&hf); err != nil {
		return hf, err
	}

	return hf, nil
}

func replayHand() error {
	hf, err := readHandFile()
	if err != nil {
		return err
	}

	if *stepFlag >= -1 {
		snapshot, err := replay.Reconstruct(hf.Setup, hf.Actions, *stepFlag)
		if err != nil {
			return err
		}

		return renderSnapshot(snapshot)
	}

	snapshots, err := replay.Snapshots(hf.Setup, hf.Actions)
	if err != nil {
		return err
	}

	for _, s := range snapshots {
		if err := renderSnapshot(s); err != nil {
			return err
		}
	}

	return nil
}

func printHistory() error {
	hf, err := readHandFile()
	if err != nil {
		return err
	}

	h, err := handhistory.New(hf.Table, time.Now(), hf.Setup, hf.Actions, outcome.DefaultSettings())
	if err != nil {
		return err
	}

	buf := &strings.Builder{}
	if err := handhistory.WriteText(buf, h); err != nil {
		return err
	}

	pterm.DefaultBox.WithTitle(pterm.LightYellow("|HAND HISTORY|")).WithTitleTopCenter().Println(buf.String())
	return nil
}
