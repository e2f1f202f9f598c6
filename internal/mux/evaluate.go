package mux

import (
	"fmt"
	"net/http"

	"pokercore/pkg/deck"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/handanalyzer"
)

type postEvaluatePayload struct {
	Cards deck.Hand `json:"cards"`
}

func (m *Mux) postEvaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postEvaluatePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		eval, err := handanalyzer.Evaluate(payload.Cards)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, eval)
	}
}

// maxSamples bounds the Monte-Carlo samples a single request may ask for
const maxSamples = 2000000

type postEquityPayload struct {
	Hands   []deck.Hand `json:"hands"`
	Board   deck.Hand   `json:"board"`
	Dead    deck.Hand   `json:"dead"`
	Mode    string      `json:"mode"`
	Samples int         `json:"samples"`
	Seed    *int64      `json:"seed"`
}

func (p postEquityPayload) options() ([]equity.Option, error) {
	mode, err := equity.ModeFromString(p.Mode)
	if err != nil {
		return nil, err
	}

	if p.Samples < 0 || p.Samples > maxSamples {
		return nil, fmt.Errorf("samples must be between 1 and %d", maxSamples)
	}

	opts := []equity.Option{equity.WithMode(mode)}
	if p.Samples > 0 {
		opts = append(opts, equity.WithSamples(p.Samples))
	}

	if p.Seed != nil {
		opts = append(opts, equity.WithSeed(*p.Seed))
	}

	return opts, nil
}

func (m *Mux) postEquity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postEquityPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		opts, err := payload.options()
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		hands := make([][]deck.Card, len(payload.Hands))
		for i, h := range payload.Hands {
			hands[i] = h
		}

		result, err := m.calculator(opts...).Calculate(r.Context(), hands, payload.Board, payload.Dead)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
