package outcome

import (
	"math"

	"pokercore/pkg/poker/equity"
)

// float noise below this is ignored when rounding premiums up
const roundingSlack = 1e-9

// InsuranceOption prices insuring part of a player's pot share against losing the all-in
type InsuranceOption struct {
	PlayerID    string  `json:"playerId"`
	Coverage    float64 `json:"coverage"`
	Equity      float64 `json:"equity"`
	Payout      float64 `json:"payout"`
	FairPremium float64 `json:"fairPremium"`
	Premium     int     `json:"premium"`

	// EV is the buyer's expected value, the insurer's is its negative
	EV float64 `json:"ev"`
}

// InsuranceOptions returns an option for every player and every configured coverage
// The premium is the fair price (1 - equity) * payout plus the margin, rounded up, and never below the fair price
func InsuranceOptions(s AllInScenario, eq *equity.Result, settings Settings) ([]InsuranceOption, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkEquity(eq); err != nil {
		return nil, err
	}

	options := make([]InsuranceOption, 0, len(s.Players)*len(settings.InsuranceCoverages))
	for i, p := range s.Players {
		e := eq.Players[i].Equity
		share := s.PotShare(i)

		for _, coverage := range settings.InsuranceCoverages {
			payout := coverage * share
			fair := (1 - e) * payout
			premium := int(math.Ceil(fair*(1+settings.InsuranceMargin) - roundingSlack))
			if float64(premium) < fair {
				premium = int(math.Ceil(fair))
			}

			options = append(options, InsuranceOption{
				PlayerID:    p.ID,
				Coverage:    coverage,
				Equity:      e,
				Payout:      payout,
				FairPremium: fair,
				Premium:     premium,
				EV:          fair - float64(premium),
			})
		}
	}

	return options, nil
}
