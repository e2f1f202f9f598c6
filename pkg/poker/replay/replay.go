// Package replay reconstructs the table state at any point of a Texas Hold'em hand from its action log.
// Every snapshot is a pure fold over the log, so computing step i twice, or stepping to it one action at
// a time, produces identical results.
package replay

import (
	"errors"
	"fmt"

	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// replay errors
var (
	ErrInvalidSetup   = errors.New("invalid setup")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrInvalidAction  = errors.New("invalid action")
	ErrMissingAmount  = errors.New("action requires an amount")
	ErrAmountBelowBet = errors.New("amount is below the player's current bet")
	ErrStackExceeded  = errors.New("amount exceeds the player's stack")
	ErrPlayerFolded   = errors.New("player has already folded")
	ErrStepOutOfRange = errors.New("step is out of range")
)

// Seat is a player and their starting stack
type Seat struct {
	ID    string `json:"id"`
	Stack int    `json:"stack"`
}

// Setup is everything known about a hand before the first logged action
// Board is every community card that was dealt, HoleCards holds whatever hands were shown
type Setup struct {
	Players        []Seat                 `json:"players"`
	SmallBlind     int                    `json:"smallBlind"`
	BigBlind       int                    `json:"bigBlind"`
	SmallBlindSeat int                    `json:"smallBlindSeat"`
	BigBlindSeat   int                    `json:"bigBlindSeat"`
	Board          deck.Hand              `json:"board"`
	HoleCards      map[string][]deck.Card `json:"holeCards,omitempty"`
}

// Validate checks the setup can seed a replay
func (s Setup) Validate() error {
	if len(s.Players) < 2 {
		return fmt.Errorf("%w: need at least 2 players", ErrInvalidSetup)
	}

	seen := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if p.ID == "" {
			return fmt.Errorf("%w: player without an id", ErrInvalidSetup)
		}

		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate player %s", ErrInvalidSetup, p.ID)
		}

		if p.Stack < 0 {
			return fmt.Errorf("%w: negative stack for %s", ErrInvalidSetup, p.ID)
		}

		seen[p.ID] = true
	}

	if s.SmallBlind < 0 || s.BigBlind < 0 {
		return fmt.Errorf("%w: negative blind", ErrInvalidSetup)
	}

	n := len(s.Players)
	if s.SmallBlindSeat < 0 || s.SmallBlindSeat >= n || s.BigBlindSeat < 0 || s.BigBlindSeat >= n {
		return fmt.Errorf("%w: blind seat out of range", ErrInvalidSetup)
	}

	if s.SmallBlindSeat == s.BigBlindSeat {
		return fmt.Errorf("%w: small and big blind on the same seat", ErrInvalidSetup)
	}

	if len(s.Board) > 5 {
		return fmt.Errorf("%w: board has %d cards", ErrInvalidSetup, len(s.Board))
	}

	known := [][]deck.Card{s.Board}
	for id, hole := range s.HoleCards {
		if !seen[id] {
			return fmt.Errorf("%w: hole cards for %s", ErrUnknownPlayer, id)
		}

		if len(hole) != 2 {
			return fmt.Errorf("%w: %s has %d hole cards", ErrInvalidSetup, id, len(hole))
		}

		known = append(known, hole)
	}

	if err := deck.CheckDistinct(known...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetup, err)
	}

	return nil
}

func (s Setup) seatOf(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}

	return -1
}

// PlayerState is a player's position after a step
// Bet is the amount put in on the current street, Committed is the total for the hand
type PlayerState struct {
	ID        string `json:"id"`
	Stack     int    `json:"stack"`
	Bet       int    `json:"bet"`
	Committed int    `json:"committed"`
	Folded    bool   `json:"folded"`
	AllIn     bool   `json:"allIn"`
}

// ShowdownHand is a hand revealed at showdown
type ShowdownHand struct {
	PlayerID   string                      `json:"playerId"`
	Evaluation handanalyzer.HandEvaluation `json:"evaluation"`
	Winner     bool                        `json:"winner"`
}

// Snapshot is the table state after a step, step -1 is the state before the first logged action
type Snapshot struct {
	Step           int            `json:"step"`
	Phase          Phase          `json:"phase"`
	CommunityCards deck.Hand      `json:"communityCards"`
	Pot            int            `json:"pot"`
	Players        []PlayerState  `json:"players"`
	FoldedPlayers  []string       `json:"foldedPlayers"`
	LastAction     *Action        `json:"lastAction"`
	NextToAct      string         `json:"nextToAct,omitempty"`
	Showdown       []ShowdownHand `json:"showdown,omitempty"`
}

// Player returns the state of a player by ID
func (s Snapshot) Player(id string) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}

	return PlayerState{}, false
}

// clone returns a deep copy, snapshots never share backing arrays
func (s Snapshot) clone() Snapshot {
	cp := s
	cp.CommunityCards = append(deck.Hand{}, s.CommunityCards...)
	cp.Players = append([]PlayerState{}, s.Players...)
	cp.FoldedPlayers = append([]string{}, s.FoldedPlayers...)
	if s.LastAction != nil {
		cp.LastAction = s.LastAction.clone()
	}

	if s.Showdown != nil {
		cp.Showdown = make([]ShowdownHand, len(s.Showdown))
		for i, h := range s.Showdown {
			h.Evaluation.BestFive = h.Evaluation.BestFive.Clone()
			cp.Showdown[i] = h
		}
	}

	return cp
}

// Initial returns the state before the first logged action, with both blinds posted
func Initial(setup Setup) (Snapshot, error) {
	if err := setup.Validate(); err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		Step:           -1,
		Phase:          PreFlop,
		CommunityCards: deck.Hand{},
		Players:        make([]PlayerState, len(setup.Players)),
		FoldedPlayers:  []string{},
	}

	for i, p := range setup.Players {
		s.Players[i] = PlayerState{
			ID:    p.ID,
			Stack: p.Stack,
		}
	}

	s.postBlind(setup.SmallBlindSeat, setup.SmallBlind)
	s.postBlind(setup.BigBlindSeat, setup.BigBlind)
	s.NextToAct = s.nextToAct(setup.BigBlindSeat)

	return s, nil
}

// postBlind posts up to the player's stack
func (s *Snapshot) postBlind(seat, amount int) {
	p := &s.Players[seat]
	if amount > p.Stack {
		amount = p.Stack
	}

	p.Stack -= amount
	p.Bet += amount
	p.Committed += amount
	p.AllIn = p.Stack == 0
	s.Pot += amount
}

// maxBet returns the largest bet of the street
func (s Snapshot) maxBet() int {
	highest := 0
	for _, p := range s.Players {
		if p.Bet > highest {
			highest = p.Bet
		}
	}

	return highest
}

// nextToAct returns the first player after seat who can still act
func (s Snapshot) nextToAct(seat int) string {
	n := len(s.Players)
	for i := 1; i < n; i++ {
		p := s.Players[(seat+i)%n]
		if !p.Folded && !p.AllIn {
			return p.ID
		}
	}

	return ""
}

// Apply returns the state after action is applied to prev, prev is not modified
func Apply(prev Snapshot, action Action, setup Setup) (Snapshot, error) {
	if !action.Type.IsValid() || action.Type.isBlind() {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidAction, string(action.Type))
	}

	if !action.Phase.IsValid() {
		return Snapshot{}, fmt.Errorf("%w: unknown phase %s", ErrInvalidAction, string(action.Phase))
	}

	if action.Phase.Before(prev.Phase) {
		return Snapshot{}, fmt.Errorf("%w: %s after %s", ErrInvalidAction, string(action.Phase), string(prev.Phase))
	}

	seat := setup.seatOf(action.PlayerID)
	if seat < 0 || seat >= len(prev.Players) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, action.PlayerID)
	}

	if prev.Players[seat].Folded {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrPlayerFolded, action.PlayerID)
	}

	s := prev.clone()
	s.Step = prev.Step + 1

	if action.Phase != s.Phase {
		for i := range s.Players {
			s.Players[i].Bet = 0
		}

		s.Phase = action.Phase
	}

	p := &s.Players[seat]
	switch action.Type {
	case Fold:
		p.Folded = true
		s.FoldedPlayers = append(s.FoldedPlayers, p.ID)
	case Check:
	case Call, Bet, Raise, AllIn:
		amount, err := resolveAmount(s, *p, action)
		if err != nil {
			return Snapshot{}, err
		}

		if amount < p.Bet {
			return Snapshot{}, fmt.Errorf("%w: %s bet %d, has %d in", ErrAmountBelowBet, p.ID, amount, p.Bet)
		}

		delta := amount - p.Bet
		if delta > p.Stack {
			return Snapshot{}, fmt.Errorf("%w: %s needs %d, has %d", ErrStackExceeded, p.ID, delta, p.Stack)
		}

		p.Stack -= delta
		p.Committed += delta
		p.Bet = amount
		p.AllIn = p.Stack == 0
	}

	s.Pot = action.PotAfter

	n := s.Phase.BoardCards()
	if n > len(setup.Board) {
		n = len(setup.Board)
	}
	s.CommunityCards = append(deck.Hand{}, setup.Board[:n]...)

	s.LastAction = action.clone()

	s.Showdown = nil
	if s.Phase == Showdown {
		s.NextToAct = ""
		s.Showdown = showdown(s, setup)
	} else {
		s.NextToAct = s.nextToAct(seat)
	}

	return s, nil
}

// resolveAmount returns the street bet the action brings the player to
func resolveAmount(s Snapshot, p PlayerState, action Action) (int, error) {
	if action.Amount != nil {
		return *action.Amount, nil
	}

	switch action.Type {
	case Call:
		amount := s.maxBet()
		if amount > p.Bet+p.Stack {
			amount = p.Bet + p.Stack
		}

		return amount, nil
	case AllIn:
		return p.Bet + p.Stack, nil
	}

	return 0, fmt.Errorf("%w: %s by %s", ErrMissingAmount, string(action.Type), action.PlayerID)
}

// showdown evaluates every live hand that was shown, given a complete board
func showdown(s Snapshot, setup Setup) []ShowdownHand {
	if len(setup.Board) != 5 {
		return nil
	}

	var ranking handanalyzer.Ranking
	var hands []ShowdownHand
	for _, p := range s.Players {
		hole, ok := setup.HoleCards[p.ID]
		if p.Folded || !ok {
			continue
		}

		cards := append(append([]deck.Card{}, hole...), setup.Board...)
		eval, err := handanalyzer.Evaluate(cards)
		if err != nil {
			continue
		}

		ranking.Add(p.ID, eval)
		hands = append(hands, ShowdownHand{
			PlayerID:   p.ID,
			Evaluation: eval,
		})
	}

	winners := make(map[string]bool)
	for _, id := range ranking.Winners() {
		winners[id] = true
	}

	for i := range hands {
		hands[i].Winner = winners[hands[i].PlayerID]
	}

	return hands
}

// Reconstruct returns the state after the given step of the log, -1 is the state before any action
func Reconstruct(setup Setup, log []Action, step int) (Snapshot, error) {
	if step < -1 || step >= len(log) {
		return Snapshot{}, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, step, len(log))
	}

	s, err := Initial(setup)
	if err != nil {
		return Snapshot{}, err
	}

	for i := 0; i <= step; i++ {
		if s, err = Apply(s, log[i], setup); err != nil {
			return Snapshot{}, fmt.Errorf("step %d: %w", i, err)
		}
	}

	return s, nil
}

// Snapshots returns the state before the first action followed by the state after each action
// The snapshot for step i is at index i+1
func Snapshots(setup Setup, log []Action) ([]Snapshot, error) {
	s, err := Initial(setup)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, 0, len(log)+1)
	snapshots = append(snapshots, s)
	for i, action := range log {
		if s, err = Apply(s, action, setup); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		snapshots = append(snapshots, s)
	}

	return snapshots, nil
}
