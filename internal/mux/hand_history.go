package mux

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	gmux "github.com/gorilla/mux"
	"pokercore/internal/util"
	"pokercore/pkg/handhistory"
	"pokercore/pkg/poker/replay"
)

type postHandHistoryPayload struct {
	Table     string          `json:"table"`
	StartedAt time.Time       `json:"startedAt"`
	Setup     replay.Setup    `json:"setup"`
	Actions   []replay.Action `json:"actions"`
}

func (m *Mux) postHandHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postHandHistoryPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Table == "" {
			payload.Table = util.RandomTableName()
		}

		if payload.StartedAt.IsZero() {
			payload.StartedAt = time.Now()
		}

		h, err := handhistory.New(payload.Table, payload.StartedAt, payload.Setup, payload.Actions, m.settings)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := m.histories.Save(r.Context(), h); err != nil {
			writeError(w, err)
			return
		}

		m.logger.WithField("id", h.ID).WithField("table", h.Table).Info("saved hand history")
		writeJSON(w, http.StatusCreated, h)
	}
}

func (m *Mux) getHandHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := r.FormValue("table")
		if table == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("table is required"))
			return
		}

		rows, err := parseRows(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		histories, err := m.histories.ListByTable(r.Context(), table, rows)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, histories)
	}
}

func (m *Mux) getHandHistoryUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(gmux.Vars(r)["uuid"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		h, err := m.histories.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		switch r.FormValue("format") {
		case "", "json":
			writeJSON(w, http.StatusOK, h)
		case "text":
			buf := &bytes.Buffer{}
			if err := handhistory.WriteText(buf, h); err != nil {
				writeError(w, err)
				return
			}

			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = buf.WriteTo(w)
		default:
			writeJSONError(w, http.StatusBadRequest, errors.New("format must be json or text"))
		}
	}
}
