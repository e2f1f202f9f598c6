package replay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
	"pokercore/pkg/snapshot"
)

func testSetup() Setup {
	return Setup{
		Players: []Seat{
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

func testLog() []Action {
	return []Action{
		{Phase: PreFlop, PlayerID: "alice", Type: Raise, Amount: Amount(30), PotAfter: 45},
		{Phase: PreFlop, PlayerID: "bob", Type: Fold, PotAfter: 45},
		{Phase: PreFlop, PlayerID: "carol", Type: Call, PotAfter: 65},
		{Phase: Flop, PlayerID: "carol", Type: Check, PotAfter: 65},
		{Phase: Flop, PlayerID: "alice", Type: Bet, Amount: Amount(50), PotAfter: 115},
		{Phase: Flop, PlayerID: "carol", Type: Raise, Amount: Amount(150), PotAfter: 265},
		{Phase: Flop, PlayerID: "alice", Type: AllIn, PotAfter: 1185},
		{Phase: Flop, PlayerID: "carol", Type: Call, PotAfter: 2005},
		{Phase: Showdown, PlayerID: "alice", Type: Check, PotAfter: 2005},
	}
}

func player(t *testing.T, s Snapshot, id string) PlayerState {
	t.Helper()
	p, ok := s.Player(id)
	if !assert.True(t, ok, id) {
		t.FailNow()
	}

	return p
}

func TestInitial(t *testing.T) {
	a := assert.New(t)

	s, err := Initial(testSetup())
	a.NoError(err)
	a.Equal(-1, s.Step)
	a.Equal(PreFlop, s.Phase)
	a.Equal(15, s.Pot)
	a.Equal("alice", s.NextToAct)
	a.Empty(s.CommunityCards)
	a.Nil(s.LastAction)

	a.Equal(PlayerState{ID: "bob", Stack: 995, Bet: 5, Committed: 5}, player(t, s, "bob"))
	a.Equal(PlayerState{ID: "carol", Stack: 990, Bet: 10, Committed: 10}, player(t, s, "carol"))
	a.Equal(PlayerState{ID: "alice", Stack: 1000}, player(t, s, "alice"))
}

func TestInitial_shortStackedBlind(t *testing.T) {
	a := assert.New(t)

	setup := testSetup()
	setup.Players[2].Stack = 4
	s, err := Initial(setup)
	a.NoError(err)

	carol := player(t, s, "carol")
	a.Equal(0, carol.Stack)
	a.Equal(4, carol.Bet)
	a.True(carol.AllIn)
	a.Equal(9, s.Pot)
}

func TestReconstruct_walkthrough(t *testing.T) {
	a := assert.New(t)
	setup, log := testSetup(), testLog()

	s, err := Reconstruct(setup, log, 0)
	a.NoError(err)
	a.Equal(970, player(t, s, "alice").Stack)
	a.Equal(30, player(t, s, "alice").Bet)
	a.Equal(45, s.Pot)
	a.Equal("bob", s.NextToAct)

	s, err = Reconstruct(setup, log, 1)
	a.NoError(err)
	a.True(player(t, s, "bob").Folded)
	a.Equal([]string{"bob"}, s.FoldedPlayers)
	a.Equal(995, player(t, s, "bob").Stack)
	a.Equal("carol", s.NextToAct)

	// a call without an amount matches the street's highest bet
	s, err = Reconstruct(setup, log, 2)
	a.NoError(err)
	a.Equal(PlayerState{ID: "carol", Stack: 970, Bet: 30, Committed: 30}, player(t, s, "carol"))
	a.Equal(65, s.Pot)
	a.Equal("alice", s.NextToAct)
	a.Empty(s.CommunityCards)

	// a new street clears the bets and reveals the flop
	s, err = Reconstruct(setup, log, 3)
	a.NoError(err)
	a.Equal(Flop, s.Phase)
	a.Equal("Ah,Kd,7c", s.CommunityCards.String())
	for _, p := range s.Players {
		a.Equal(0, p.Bet, p.ID)
	}
	a.Equal(30, player(t, s, "carol").Committed)

	s, err = Reconstruct(setup, log, 5)
	a.NoError(err)
	a.Equal(PlayerState{ID: "carol", Stack: 820, Bet: 150, Committed: 180}, player(t, s, "carol"))
	a.Equal(PlayerState{ID: "alice", Stack: 920, Bet: 50, Committed: 80}, player(t, s, "alice"))

	s, err = Reconstruct(setup, log, 6)
	a.NoError(err)
	a.Equal(PlayerState{ID: "alice", Stack: 0, Bet: 970, Committed: 1000, AllIn: true}, player(t, s, "alice"))
	a.Equal("carol", s.NextToAct)
	a.Equal(1185, s.Pot)

	s, err = Reconstruct(setup, log, 7)
	a.NoError(err)
	a.True(player(t, s, "carol").AllIn)
	a.Equal(1000, player(t, s, "carol").Committed)
	a.Equal("", s.NextToAct)
	a.Equal(2005, s.Pot)
	a.Nil(s.Showdown)

	s, err = Reconstruct(setup, log, 8)
	a.NoError(err)
	a.Equal(Showdown, s.Phase)
	a.Equal("Ah,Kd,7c,2s,9h", s.CommunityCards.String())
	a.Equal("", s.NextToAct)
	if a.Len(s.Showdown, 2) {
		a.Equal("alice", s.Showdown[0].PlayerID)
		a.Equal(handanalyzer.ThreeOfAKind, s.Showdown[0].Evaluation.Category)
		a.True(s.Showdown[0].Winner)
		a.Equal("carol", s.Showdown[1].PlayerID)
		a.False(s.Showdown[1].Winner)
	}
	if a.NotNil(s.LastAction) {
		a.Equal(Check, s.LastAction.Type)
	}
}

func TestReconstruct_idempotent(t *testing.T) {
	a := assert.New(t)
	setup, log := testSetup(), testLog()

	snapshots, err := Snapshots(setup, log)
	a.NoError(err)
	a.Len(snapshots, len(log)+1)

	for step := -1; step < len(log); step++ {
		s1, err := Reconstruct(setup, log, step)
		a.NoError(err)
		s2, err := Reconstruct(setup, log, step)
		a.NoError(err)

		a.Equal(s1, s2, "step %d", step)
		a.Equal(snapshots[step+1], s1, "step %d", step)
		a.Equal(step, s1.Step)
	}
}

func TestSnapshots_independent(t *testing.T) {
	a := assert.New(t)
	setup, log := testSetup(), testLog()

	snapshots, err := Snapshots(setup, log)
	a.NoError(err)

	snapshots[1].Players[0].Stack = -1
	snapshots[1].CommunityCards = append(snapshots[1].CommunityCards, deck.MustParseCard("2c"))
	*snapshots[1].LastAction.Amount = 999

	a.Equal(970, snapshots[2].Players[0].Stack)

	s, err := Reconstruct(setup, log, 0)
	a.NoError(err)
	a.Equal(970, s.Players[0].Stack)
	a.Equal(30, *s.LastAction.Amount)
	a.Empty(s.CommunityCards)

	// the caller's log is never modified
	a.Equal(30, *log[0].Amount)
}

func TestSnapshots_golden(t *testing.T) {
	snapshots, err := Snapshots(testSetup(), testLog())
	assert.NoError(t, err)
	snapshot.ValidateSnapshot(t, snapshots[len(snapshots)-1])
}

func TestApply_errors(t *testing.T) {
	setup := testSetup()
	seed, err := Initial(setup)
	assert.NoError(t, err)

	folded, err := Apply(seed, Action{Phase: PreFlop, PlayerID: "alice", Type: Fold, PotAfter: 15}, setup)
	assert.NoError(t, err)

	tests := []struct {
		name   string
		prev   Snapshot
		action Action
		err    error
	}{
		{"unknown player", seed, Action{Phase: PreFlop, PlayerID: "dave", Type: Check}, ErrUnknownPlayer},
		{"unknown action", seed, Action{Phase: PreFlop, PlayerID: "alice", Type: "straddle"}, ErrInvalidAction},
		{"blind in log", seed, Action{Phase: PreFlop, PlayerID: "alice", Type: PostBigBlind, Amount: Amount(10)}, ErrInvalidAction},
		{"unknown phase", seed, Action{Phase: "fourth-street", PlayerID: "alice", Type: Check}, ErrInvalidAction},
		{"missing amount", seed, Action{Phase: PreFlop, PlayerID: "alice", Type: Raise}, ErrMissingAmount},
		{"below bet", seed, Action{Phase: PreFlop, PlayerID: "carol", Type: Raise, Amount: Amount(5)}, ErrAmountBelowBet},
		{"exceeds stack", seed, Action{Phase: PreFlop, PlayerID: "alice", Type: Bet, Amount: Amount(1001)}, ErrStackExceeded},
		{"acts after folding", folded, Action{Phase: PreFlop, PlayerID: "alice", Type: Check}, ErrPlayerFolded},
	}

	for _, test := range tests {
		_, err := Apply(test.prev, test.action, setup)
		assert.ErrorIs(t, err, test.err, test.name)
	}

	flop, err := Apply(seed, Action{Phase: Flop, PlayerID: "bob", Type: Check, PotAfter: 15}, setup)
	assert.NoError(t, err)
	_, err = Apply(flop, Action{Phase: PreFlop, PlayerID: "carol", Type: Check, PotAfter: 15}, setup)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestReconstruct_errors(t *testing.T) {
	a := assert.New(t)
	setup, log := testSetup(), testLog()

	_, err := Reconstruct(setup, log, -2)
	a.ErrorIs(err, ErrStepOutOfRange)
	_, err = Reconstruct(setup, log, len(log))
	a.ErrorIs(err, ErrStepOutOfRange)

	bad := append([]Action{}, log...)
	bad[3] = Action{Phase: Flop, PlayerID: "bob", Type: Check, PotAfter: 65}
	_, err = Reconstruct(setup, bad, 3)
	a.ErrorIs(err, ErrPlayerFolded)
	_, err = Snapshots(setup, bad)
	a.ErrorIs(err, ErrPlayerFolded)

	setup.Players = setup.Players[:1]
	_, err = Initial(setup)
	a.ErrorIs(err, ErrInvalidSetup)
}

func TestSetup_Validate(t *testing.T) {
	a := assert.New(t)

	s := testSetup()
	s.Players[1].ID = "alice"
	a.ErrorIs(s.Validate(), ErrInvalidSetup)

	s = testSetup()
	s.BigBlindSeat = 3
	a.ErrorIs(s.Validate(), ErrInvalidSetup)

	s = testSetup()
	s.BigBlindSeat = s.SmallBlindSeat
	a.ErrorIs(s.Validate(), ErrInvalidSetup)

	s = testSetup()
	s.HoleCards["carol"] = deck.MustParseCards("Ah,Qs")
	a.ErrorIs(s.Validate(), ErrInvalidSetup)

	s = testSetup()
	s.HoleCards["dave"] = deck.MustParseCards("Qh,Qs")
	a.ErrorIs(s.Validate(), ErrUnknownPlayer)

	a.NoError(testSetup().Validate())
}

func TestReconstruct_boardClippedToRecorded(t *testing.T) {
	a := assert.New(t)

	setup := testSetup()
	setup.Board = deck.MustParseCards("Ah,Kd,7c")
	log := []Action{
		{Phase: PreFlop, PlayerID: "alice", Type: Call, PotAfter: 25},
		{Phase: River, PlayerID: "bob", Type: Check, PotAfter: 25},
		{Phase: Showdown, PlayerID: "bob", Type: Check, PotAfter: 25},
	}

	s, err := Reconstruct(setup, log, 1)
	a.NoError(err)
	a.Equal("Ah,Kd,7c", s.CommunityCards.String())

	// no showdown ranks without a complete board
	s, err = Reconstruct(setup, log, 2)
	a.NoError(err)
	a.Nil(s.Showdown)
}

func TestActionType_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(AllIn)
	a.NoError(err)
	a.Equal(`{"id":"all-in","name":"All-in"}`, string(b))

	var at ActionType
	a.NoError(json.Unmarshal([]byte(`"raise"`), &at))
	a.Equal(Raise, at)
	a.NoError(json.Unmarshal([]byte(`{"id":"fold","name":"Fold"}`), &at))
	a.Equal(Fold, at)
	a.ErrorIs(json.Unmarshal([]byte(`"straddle"`), &at), ErrInvalidAction)

	var action Action
	a.NoError(json.Unmarshal([]byte(`{"phase":"turn","playerId":"bob","type":"bet","amount":40,"potAfter":100}`), &action))
	a.Equal(Turn, action.Phase)
	a.Equal(40, *action.Amount)

	a.ErrorIs(json.Unmarshal([]byte(`{"phase":"fifth","playerId":"bob","type":"bet"}`), &action), ErrInvalidAction)
}

func TestActionType_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folds", Fold.LogMessage(0))
	a.Equal("raises to 30", Raise.LogMessage(30))
	a.Equal("posts big blind 10", PostBigBlind.LogMessage(10))
	a.Equal("Post small blind", PostSmallBlind.String())
	a.Panics(func() {
		_ = ActionType("straddle").String()
	})
}

func TestPhase(t *testing.T) {
	a := assert.New(t)
	a.True(PreFlop.Before(Flop))
	a.False(River.Before(Turn))
	a.Equal(4, Turn.BoardCards())
	a.Equal(5, Showdown.BoardCards())
	a.Equal("Pre-flop", PreFlop.String())

	p, err := PhaseFromString("river")
	a.NoError(err)
	a.Equal(River, p)

	_, err = PhaseFromString("fifth")
	a.ErrorIs(err, ErrInvalidAction)
}
