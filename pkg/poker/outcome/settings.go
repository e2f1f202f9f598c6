package outcome

import (
	"errors"
	"fmt"
	"math"

	"pokercore/pkg/deck"
	"pokercore/pkg/poker/handanalyzer"
)

// ErrInvalidSettings is an error when table settings are out of range
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the table constants the calculators are priced with
type Settings struct {
	CashoutFeeRate      float64   `json:"cashoutFeeRate" yaml:"cashoutFeeRate"`
	CashoutAcceptBelow  float64   `json:"cashoutAcceptBelow" yaml:"cashoutAcceptBelow"`
	CashoutDeclineAbove float64   `json:"cashoutDeclineAbove" yaml:"cashoutDeclineAbove"`
	InsuranceMargin     float64   `json:"insuranceMargin" yaml:"insuranceMargin"`
	InsuranceCoverages  []float64 `json:"insuranceCoverages" yaml:"insuranceCoverages"`

	// BadBeatMinimum is the weakest five cards that can lose a qualifying bad beat
	BadBeatMinimum string `json:"badBeatMinimum" yaml:"badBeatMinimum"`

	RakeRate float64 `json:"rakeRate" yaml:"rakeRate"`
	RakeCap  int     `json:"rakeCap" yaml:"rakeCap"`
}

// DefaultSettings returns the default table settings
func DefaultSettings() Settings {
	return Settings{
		CashoutFeeRate:      0.05,
		CashoutAcceptBelow:  0.40,
		CashoutDeclineAbove: 0.60,
		InsuranceMargin:     0.10,
		InsuranceCoverages:  []float64{0.25, 0.50, 1.0},
		BadBeatMinimum:      "Js,Jh,Jd,Jc,2c",
		RakeRate:            0.05,
		RakeCap:             300,
	}
}

// Validate checks every setting is in range
func (s Settings) Validate() error {
	if s.CashoutFeeRate < 0 || s.CashoutFeeRate > 1 || math.IsNaN(s.CashoutFeeRate) {
		return fmt.Errorf("%w: cashout fee rate %v is outside [0, 1]", ErrInvalidSettings, s.CashoutFeeRate)
	}

	if s.CashoutAcceptBelow < 0 || s.CashoutDeclineAbove > 1 || s.CashoutAcceptBelow > s.CashoutDeclineAbove {
		return fmt.Errorf("%w: cashout thresholds %v and %v", ErrInvalidSettings, s.CashoutAcceptBelow, s.CashoutDeclineAbove)
	}

	if s.InsuranceMargin < 0 {
		return fmt.Errorf("%w: negative insurance margin", ErrInvalidSettings)
	}

	for _, c := range s.InsuranceCoverages {
		if c <= 0 || c > 1 {
			return fmt.Errorf("%w: insurance coverage %v is outside (0, 1]", ErrInvalidSettings, c)
		}
	}

	if _, err := s.badBeatMinimum(); err != nil {
		return err
	}

	if s.RakeRate < 0 || s.RakeRate > 1 || s.RakeCap < 0 {
		return fmt.Errorf("%w: rake %v capped at %d", ErrInvalidSettings, s.RakeRate, s.RakeCap)
	}

	return nil
}

func (s Settings) badBeatMinimum() (handanalyzer.HandEvaluation, error) {
	cards, err := deck.ParseCards(s.BadBeatMinimum)
	if err != nil {
		return handanalyzer.HandEvaluation{}, fmt.Errorf("%w: bad beat minimum: %v", ErrInvalidSettings, err)
	}

	if len(cards) != 5 {
		return handanalyzer.HandEvaluation{}, fmt.Errorf("%w: bad beat minimum needs 5 cards, got %d", ErrInvalidSettings, len(cards))
	}

	e, err := handanalyzer.Evaluate(cards)
	if err != nil {
		return handanalyzer.HandEvaluation{}, fmt.Errorf("%w: bad beat minimum: %v", ErrInvalidSettings, err)
	}

	return e, nil
}

// Rake returns the house's cut of a pot, floored and capped
// A zero cap means the rake is uncapped
func (s Settings) Rake(pot int) int {
	if pot <= 0 {
		return 0
	}

	rake := int(math.Floor(float64(pot) * s.RakeRate))
	if s.RakeCap > 0 && rake > s.RakeCap {
		rake = s.RakeCap
	}

	return rake
}
