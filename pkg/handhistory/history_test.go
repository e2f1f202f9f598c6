package handhistory

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/outcome"
	"pokercore/pkg/poker/replay"
	"pokercore/pkg/snapshot"
)

var startedAt = time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)

func testSetup() replay.Setup {
	return replay.Setup{
		Players: []replay.Seat{
			{ID: "alice", Stack: 1000},
			{ID: "bob", Stack: 1000},
			{ID: "carol", Stack: 1000},
		},
		SmallBlind:     5,
		BigBlind:       10,
		SmallBlindSeat: 1,
		BigBlindSeat:   2,
		Board:          deck.MustParseCards("Ah,Kd,7c,2s,9h"),
		HoleCards: map[string][]deck.Card{
			"alice": deck.MustParseCards("As,Ad"),
			"carol": deck.MustParseCards("Kh,Ks"),
		},
	}
}

func showdownLog() []replay.Action {
	return []replay.Action{
		{Phase: replay.PreFlop, PlayerID: "alice", Type: replay.Raise, Amount: replay.Amount(30), PotAfter: 45},
		{Phase: replay.PreFlop, PlayerID: "bob", Type: replay.Fold, PotAfter: 45},
		{Phase: replay.PreFlop, PlayerID: "carol", Type: replay.Call, PotAfter: 65},
		{Phase: replay.Flop, PlayerID: "carol", Type: replay.Check, PotAfter: 65},
		{Phase: replay.Flop, PlayerID: "alice", Type: replay.Bet, Amount: replay.Amount(50), PotAfter: 115},
		{Phase: replay.Flop, PlayerID: "carol", Type: replay.Raise, Amount: replay.Amount(150), PotAfter: 265},
		{Phase: replay.Flop, PlayerID: "alice", Type: replay.AllIn, PotAfter: 1185},
		{Phase: replay.Flop, PlayerID: "carol", Type: replay.Call, PotAfter: 2005},
		{Phase: replay.Showdown, PlayerID: "alice", Type: replay.Check, PotAfter: 2005},
	}
}

func newHistory(t *testing.T, actions []replay.Action) *History {
	t.Helper()
	h, err := New("Main", startedAt, testSetup(), actions, outcome.DefaultSettings())
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	h.ID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return h
}

func TestNew_showdown(t *testing.T) {
	a := assert.New(t)

	h := newHistory(t, showdownLog())
	a.Equal(2005, h.Pot)
	a.Equal(100, h.Rake)
	a.Equal([]Winner{{PlayerID: "alice", Amount: 1905, Hand: "Three of a kind, Aces"}}, h.Winners)
	a.Equal("Main", h.Table)

	snapshot.ValidateSnapshot(t, h)
}

func TestNew_everyoneFolds(t *testing.T) {
	a := assert.New(t)

	h := newHistory(t, []replay.Action{
		{Phase: replay.PreFlop, PlayerID: "alice", Type: replay.Raise, Amount: replay.Amount(30), PotAfter: 45},
		{Phase: replay.PreFlop, PlayerID: "bob", Type: replay.Fold, PotAfter: 45},
		{Phase: replay.PreFlop, PlayerID: "carol", Type: replay.Fold, PotAfter: 45},
	})

	a.Equal(2, h.Rake)
	a.Equal([]Winner{{PlayerID: "alice", Amount: 43}}, h.Winners)

	buf := &bytes.Buffer{}
	a.NoError(WriteText(buf, h))
	a.Contains(buf.String(), "Seat 1: alice collected (43)\n")
	a.Contains(buf.String(), "Seat 3: carol folded\n")
	a.NotContains(buf.String(), "*** FLOP ***")
	a.NotContains(buf.String(), "Board [")
}

func TestNew_errors(t *testing.T) {
	a := assert.New(t)

	_, err := New("Main", startedAt, testSetup(), []replay.Action{
		{Phase: replay.PreFlop, PlayerID: "alice", Type: replay.Call, PotAfter: 25},
	}, outcome.DefaultSettings())
	a.ErrorIs(err, ErrNotSettled)

	_, err = New("Main", startedAt, testSetup(), []replay.Action{
		{Phase: replay.PreFlop, PlayerID: "zed", Type: replay.Call, PotAfter: 25},
	}, outcome.DefaultSettings())
	a.ErrorIs(err, replay.ErrUnknownPlayer)
}

func TestWriteText(t *testing.T) {
	a := assert.New(t)

	expected := strings.Join([]string{
		"Hand #6ba7b810-9dad-11d1-80b4-00c04fd430c8: Hold'em No Limit (5/10) - 2026-10-14 18:30:00 UTC",
		"Table 'Main'",
		"Seat 1: alice (1000 in chips)",
		"Seat 2: bob (1000 in chips)",
		"Seat 3: carol (1000 in chips)",
		"bob: posts small blind 5",
		"carol: posts big blind 10",
		"*** HOLE CARDS ***",
		"Dealt to alice [As Ad]",
		"Dealt to carol [Kh Ks]",
		"alice: raises to 30",
		"bob: folds",
		"carol: calls 20",
		"*** FLOP *** [Ah Kd 7c]",
		"carol: checks",
		"alice: bets 50",
		"carol: raises to 150",
		"alice: is all-in for 970",
		"carol: calls 820",
		"*** TURN *** [Ah Kd 7c] [2s]",
		"*** RIVER *** [Ah Kd 7c 2s] [9h]",
		"*** SHOW DOWN ***",
		"alice: checks",
		"alice: shows [As Ad] (Three of a kind, Aces)",
		"carol: shows [Kh Ks] (Three of a kind, Kings)",
		"alice collected 1905 from pot",
		"*** SUMMARY ***",
		"Total pot 2005 | Rake 100",
		"Board [Ah Kd 7c 2s 9h]",
		"Seat 1: alice showed [As Ad] and won (1905) with Three of a kind, Aces",
		"Seat 2: bob folded",
		"Seat 3: carol showed [Kh Ks] and lost with Three of a kind, Kings",
		"",
	}, "\n")

	buf := &bytes.Buffer{}
	a.NoError(WriteText(buf, newHistory(t, showdownLog())))
	a.Equal(expected, buf.String())
}

func TestMemoryRepository(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	repo := NewMemoryRepository()

	h := newHistory(t, showdownLog())
	a.NoError(repo.Save(ctx, h))

	got, err := repo.Get(ctx, h.ID)
	a.NoError(err)
	a.Equal(h, got)

	// saved records are copies
	got.Table = "Other"
	again, err := repo.Get(ctx, h.ID)
	a.NoError(err)
	a.Equal("Main", again.Table)

	_, err = repo.Get(ctx, uuid.New())
	a.ErrorIs(err, ErrNotFound)

	h2, err := New("Main", startedAt.Add(time.Minute), testSetup(), showdownLog(), outcome.DefaultSettings())
	a.NoError(err)
	a.NoError(repo.Save(ctx, h2))
	h3, err := New("Side", startedAt, testSetup(), showdownLog(), outcome.DefaultSettings())
	a.NoError(err)
	a.NoError(repo.Save(ctx, h3))

	list, err := repo.ListByTable(ctx, "Main", 0)
	a.NoError(err)
	if a.Len(list, 2) {
		a.Equal(h2.ID, list[0].ID)
		a.Equal(h.ID, list[1].ID)
	}

	list, err = repo.ListByTable(ctx, "Main", 1)
	a.NoError(err)
	a.Len(list, 1)
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("PCORE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("PCORE_TEST_PG_DSN is not set")
	}

	a := assert.New(t)
	ctx := context.Background()

	dbh, err := sql.Open("postgres", dsn)
	if !a.NoError(err) {
		return
	}
	defer dbh.Close()

	repo := NewPostgresRepository(dbh)
	h, err := New(uuid.New().String(), startedAt, testSetup(), showdownLog(), outcome.DefaultSettings())
	a.NoError(err)
	a.NoError(repo.Save(ctx, h))
	a.NoError(repo.Save(ctx, h))

	got, err := repo.Get(ctx, h.ID)
	a.NoError(err)
	a.Equal(h, got)

	list, err := repo.ListByTable(ctx, h.Table, 10)
	a.NoError(err)
	a.Len(list, 1)

	_, err = repo.Get(ctx, uuid.New())
	a.ErrorIs(err, ErrNotFound)
}
