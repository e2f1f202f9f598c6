package mux

import (
	"net/http"

	"pokercore/pkg/handhistory"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`

	// Storage is where hand histories are kept, memory or postgres
	Storage string `json:"storage"`
}

func (m *Mux) storage() string {
	if _, ok := m.histories.(*handhistory.PostgresRepository); ok {
		return "postgres"
	}

	return "memory"
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			Storage: m.storage(),
		})
	}
}
