package outcome

import (
	"math"

	"pokercore/pkg/poker/equity"
)

// Recommendation is advice on whether to take a cashout
type Recommendation string

// recommendation constants
const (
	Accept  Recommendation = "accept"
	Neutral Recommendation = "neutral"
	Decline Recommendation = "decline"
)

// CashoutOffer is the amount offered to a player to leave an all-in before the board is dealt
type CashoutOffer struct {
	PlayerID       string         `json:"playerId"`
	Equity         float64        `json:"equity"`
	PotShare       float64        `json:"potShare"`
	FeeRate        float64        `json:"feeRate"`
	Amount         int            `json:"cashoutAmount"`
	Recommendation Recommendation `json:"recommendation"`
}

// CashoutOffers returns an offer for every player in the scenario
// The amount is floor(potShare * equity * (1 - fee)), so it never exceeds the pot share
func CashoutOffers(s AllInScenario, eq *equity.Result, settings Settings) ([]CashoutOffer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkEquity(eq); err != nil {
		return nil, err
	}

	offers := make([]CashoutOffer, len(s.Players))
	for i, p := range s.Players {
		e := eq.Players[i].Equity
		share := s.PotShare(i)

		offers[i] = CashoutOffer{
			PlayerID:       p.ID,
			Equity:         e,
			PotShare:       share,
			FeeRate:        settings.CashoutFeeRate,
			Amount:         int(math.Floor(share * e * (1 - settings.CashoutFeeRate))),
			Recommendation: recommend(e, settings),
		}
	}

	return offers, nil
}

func recommend(e float64, settings Settings) Recommendation {
	switch {
	case e < settings.CashoutAcceptBelow:
		return Accept
	case e > settings.CashoutDeclineAbove:
		return Decline
	}

	return Neutral
}
