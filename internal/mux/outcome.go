package mux

import (
	"net/http"

	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/outcome"
)

type scenarioPayload struct {
	Scenario outcome.AllInScenario `json:"scenario"`
	Mode     string                `json:"mode"`
	Samples  int                   `json:"samples"`
	Seed     *int64                `json:"seed"`
}

// scenarioEquity validates the scenario and prices it with the server side calculator
func (m *Mux) scenarioEquity(w http.ResponseWriter, r *http.Request, payload scenarioPayload) (*equity.Result, bool) {
	if err := payload.Scenario.Validate(); err != nil {
		writeError(w, err)
		return nil, false
	}

	opts, err := postEquityPayload{Mode: payload.Mode, Samples: payload.Samples, Seed: payload.Seed}.options()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return nil, false
	}

	s := payload.Scenario
	eq, err := m.calculator(opts...).Calculate(r.Context(), s.Hands(), s.Board, s.Dead)
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	return eq, true
}

type cashoutResponse struct {
	Equity *equity.Result         `json:"equity"`
	Offers []outcome.CashoutOffer `json:"offers"`
}

func (m *Mux) postCashout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload scenarioPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		eq, ok := m.scenarioEquity(w, r, payload)
		if !ok {
			return
		}

		offers, err := outcome.CashoutOffers(payload.Scenario, eq, m.settings)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, cashoutResponse{Equity: eq, Offers: offers})
	}
}

type insuranceResponse struct {
	Equity  *equity.Result            `json:"equity"`
	Options []outcome.InsuranceOption `json:"options"`
}

func (m *Mux) postInsurance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload scenarioPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		eq, ok := m.scenarioEquity(w, r, payload)
		if !ok {
			return
		}

		options, err := outcome.InsuranceOptions(payload.Scenario, eq, m.settings)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, insuranceResponse{Equity: eq, Options: options})
	}
}

type postRabbitHuntPayload struct {
	outcome.RabbitHuntRequest

	// Exhaustive returns the distribution over every completion instead of a single deal
	Exhaustive bool   `json:"exhaustive"`
	Seed       *int64 `json:"seed"`
}

func (m *Mux) postRabbitHunt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postRabbitHuntPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Exhaustive {
			odds, err := outcome.RabbitHuntOdds(payload.RabbitHuntRequest)
			if err != nil {
				writeError(w, err)
				return
			}

			writeJSON(w, http.StatusOK, odds)
			return
		}

		result, err := outcome.RabbitHunt(payload.RabbitHuntRequest, m.generator(payload.Seed))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (m *Mux) postRunItTwice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload scenarioPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		result, err := outcome.RunItTwice(payload.Scenario, m.generator(payload.Seed))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (m *Mux) postBadBeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload outcome.BadBeatRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		payout, err := outcome.BadBeat(payload, m.settings)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, payout)
	}
}
