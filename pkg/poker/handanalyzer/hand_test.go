package handanalyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"pokercore/pkg/deck"
)

func TestHand_String(t *testing.T) {
	assert.PanicsWithValue(t, "unknown hand: -1", func() {
		_ = Hand(-1).String()
	})

	assert.Equal(t, "Royal flush", RoyalFlush.String())
	assert.Equal(t, "two-pair", TwoPair.ID())
}

func TestHand_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(FullHouse)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"full-house","name":"Full house","rank":6}`, string(b))
}

func TestHand_UnmarshalJSON(t *testing.T) {
	a := assert.New(t)

	var h Hand
	a.NoError(json.Unmarshal([]byte(`{"id":"full-house","name":"Full house","rank":6}`), &h))
	a.Equal(FullHouse, h)

	a.NoError(json.Unmarshal([]byte(`"royal-flush"`), &h))
	a.Equal(RoyalFlush, h)

	a.ErrorIs(json.Unmarshal([]byte(`"five-of-a-kind"`), &h), ErrInvalidHand)
	a.ErrorIs(json.Unmarshal([]byte(`12`), &h), ErrInvalidHand)

	eval := MustEvaluate(deck.MustParseCards("Ks,Kd,Kh,2c,2d"))
	b, err := json.Marshal(eval)
	a.NoError(err)

	var decoded HandEvaluation
	a.NoError(json.Unmarshal(b, &decoded))
	a.Equal(eval.Category, decoded.Category)
	a.Equal(eval.Score, decoded.Score)
	a.Equal(eval.BestFive, decoded.BestFive)
}
