package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
	"pokercore/pkg/poker/outcome"
	"pokercore/pkg/poker/replay"
)

func turnScenario() outcome.AllInScenario {
	return outcome.AllInScenario{
		Players: []outcome.ScenarioPlayer{
			{ID: "alice", Hole: deck.MustParseCards("Ah,Kh"), Contribution: 500},
			{ID: "bob", Hole: deck.MustParseCards("Qs,Qd"), Contribution: 500},
		},
		Pot:   1000,
		Board: deck.MustParseCards("2h,7h,9c,Js"),
		Phase: replay.Turn,
	}
}

func Test_postCashout(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	var resp cashoutResponse
	assertPost(t, ts, "/cashout", scenarioPayload{Scenario: turnScenario()}, &resp, 200)
	if a.Len(resp.Offers, 2) {
		a.Equal("alice", resp.Offers[0].PlayerID)
		a.Equal(161, resp.Offers[0].Amount)
		a.Equal(outcome.Accept, resp.Offers[0].Recommendation)

		a.Equal("bob", resp.Offers[1].PlayerID)
		a.Equal(313, resp.Offers[1].Amount)
		a.Equal(outcome.Decline, resp.Offers[1].Recommendation)
	}
	a.Equal(int64(44), resp.Equity.SampleSpace.RunOuts)

	s := turnScenario()
	s.Players = s.Players[:1]
	var errObj errorResponse
	assertPost(t, ts, "/cashout", scenarioPayload{Scenario: s}, &errObj, 400)
	a.Contains(errObj.Message, "invalid scenario")
}

func Test_postInsurance(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	var resp insuranceResponse
	assertPost(t, ts, "/insurance", scenarioPayload{Scenario: turnScenario()}, &resp, 200)
	a.Len(resp.Options, 6)
	for _, o := range resp.Options {
		a.GreaterOrEqual(float64(o.Premium), o.FairPremium-1e-9)
		a.LessOrEqual(o.EV, 1e-9)
	}
}

func Test_postRabbitHunt(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	payload := map[string]interface{}{
		"foldedHole": []string{"2c", "7d"},
		"winnerHole": []string{"Ah", "Ad"},
		"board":      []string{"Kh", "9s", "4c"},
		"seed":       11,
	}

	var first, second outcome.RabbitHuntResult
	assertPost(t, ts, "/rabbit-hunt", payload, &first, 200)
	assertPost(t, ts, "/rabbit-hunt", payload, &second, 200)
	a.Len(first.Revealed, 2)
	a.Len(first.Board, 5)
	a.Equal(first.Revealed, second.Revealed)
	a.NotNil(first.WinnerHand)

	payload["exhaustive"] = true
	var odds outcome.RabbitHuntDistribution
	assertPost(t, ts, "/rabbit-hunt", payload, &odds, 200)
	a.Equal(int64(990), odds.Completions)
	a.Equal(odds.Completions, odds.Wins+odds.Ties+odds.Losses)

	var errObj errorResponse
	assertPost(t, ts, "/rabbit-hunt", `{"foldedHole":["2c","2c"],"board":["Kh","9s","4c"]}`, &errObj, 400)
}

func Test_postRunItTwice(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	s := turnScenario()
	s.Pot = 1001

	var seed int64 = 4
	var first, second outcome.RunItTwiceResult
	assertPost(t, ts, "/run-it-twice", scenarioPayload{Scenario: s, Seed: &seed}, &first, 200)
	assertPost(t, ts, "/run-it-twice", scenarioPayload{Scenario: s, Seed: &seed}, &second, 200)
	a.Equal(first.Runs[0].Board, second.Runs[0].Board)
	a.Equal(first.Runs[1].Board, second.Runs[1].Board)

	a.Equal(501, first.Runs[0].Amount)
	a.Equal(500, first.Runs[1].Amount)
	a.Equal(1001, first.Totals["alice"]+first.Totals["bob"])
	a.Contains([]outcome.CombinedResult{outcome.Sweep, outcome.Split}, first.CombinedResult)

	// unseeded requests use the server's generator
	var r outcome.RunItTwiceResult
	assertPost(t, ts, "/run-it-twice", scenarioPayload{Scenario: s}, &r, 200)
	a.Len(r.Runs[1].Board, 5)
}

func Test_postBadBeat(t *testing.T) {
	a := assert.New(t)
	ts, _ := newTestServer(t)

	req := outcome.BadBeatRequest{
		LoserID:      "alice",
		WinnerID:     "bob",
		LoserHole:    deck.MustParseCards("Jh,Jc"),
		WinnerHole:   deck.MustParseCards("As,Ts"),
		Board:        deck.MustParseCards("Js,Jd,Qs,Ks,2h"),
		TablePlayers: []string{"alice", "bob", "carol", "dave", "erin"},
		Jackpot:      1003,
	}

	var payout outcome.BadBeatPayout
	assertPost(t, ts, "/bad-beat", req, &payout, 200)
	a.True(payout.Qualified)
	a.Equal(handanalyzer.FourOfAKind, payout.LoserHand.Category)
	a.Equal(501, payout.Loser)
	a.Equal(250, payout.Winner)
	a.Equal(map[string]int{"carol": 83, "dave": 83, "erin": 83}, payout.Table)
	a.Equal(3, payout.House)

	req.LoserHole = deck.MustParseCards("Jh,9c")
	payout = outcome.BadBeatPayout{}
	assertPost(t, ts, "/bad-beat", req, &payout, 200)
	a.False(payout.Qualified)
}
