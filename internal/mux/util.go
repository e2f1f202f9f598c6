package mux

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"pokercore/pkg/deck"
	"pokercore/pkg/handhistory"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/handanalyzer"
	"pokercore/pkg/poker/outcome"
	"pokercore/pkg/poker/replay"
)

const maxRows = 100
const defaultRows = 25

func parseRows(r *http.Request) (int, error) {
	rowsStr := r.FormValue("rows")
	if rowsStr == "" {
		return defaultRows, nil
	}

	val, err := strconv.Atoi(rowsStr)
	if err != nil {
		return 0, err
	}

	if val <= 0 {
		return 0, errors.New("rows must be greater than zero")
	}

	if val > maxRows {
		return 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
	}

	return val, nil
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// badRequestErrors are the caller's fault, everything else is a 500
var badRequestErrors = []error{
	deck.ErrInvalidCard,
	deck.ErrDuplicateCard,
	deck.ErrInsufficientCards,
	deck.ErrInsufficientDeck,
	handanalyzer.ErrInvalidHand,
	equity.ErrInvalidHands,
	equity.ErrUnknownHandsExhaustive,
	replay.ErrInvalidSetup,
	replay.ErrUnknownPlayer,
	replay.ErrInvalidAction,
	replay.ErrMissingAmount,
	replay.ErrAmountBelowBet,
	replay.ErrStackExceeded,
	replay.ErrPlayerFolded,
	replay.ErrStepOutOfRange,
	outcome.ErrInvalidScenario,
	outcome.ErrInvalidSettings,
	handhistory.ErrNotSettled,
}

func statusCodeOf(err error) int {
	if errors.Is(err, handhistory.ErrNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// writeError maps err to a status code and writes it
func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusCodeOf(err), err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
