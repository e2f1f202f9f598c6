package mux

import (
	"net/http"

	"pokercore/pkg/poker/replay"
)

type postReplayPayload struct {
	Setup   replay.Setup    `json:"setup"`
	Actions []replay.Action `json:"actions"`

	// Step is the index of the last applied action, -1 is the table before any action
	// When omitted every snapshot is returned
	Step *int `json:"step"`
}

func (m *Mux) postReplay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postReplayPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Step == nil {
			snapshots, err := replay.Snapshots(payload.Setup, payload.Actions)
			if err != nil {
				writeError(w, err)
				return
			}

			writeJSON(w, http.StatusOK, snapshots)
			return
		}

		snapshot, err := replay.Reconstruct(payload.Setup, payload.Actions, *payload.Step)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
