package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"pokercore/internal/config"
	"pokercore/internal/rng"
	"pokercore/pkg/handhistory"
	"pokercore/pkg/poker/equity"
	"pokercore/pkg/poker/outcome"
)

const uuidPattern = "{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version       string
	settings      outcome.Settings
	equityOptions []equity.Option
	histories     handhistory.Repository
	logger        logrus.FieldLogger

	// random deals unseeded rabbit hunts and run it twice boards
	random rng.Generator
}

// NewMux returns a new HTTP mux
// Hand histories are saved to histories, table settings and equity limits come from the configuration
func NewMux(version string, histories handhistory.Repository) *Mux {
	cfg := config.Instance()

	this := &Mux{
		Router:        gmux.NewRouter(),
		version:       version,
		settings:      cfg.Table,
		equityOptions: cfg.Options(),
		histories:     histories,
		logger:        logrus.StandardLogger(),
		random:        rng.Crypto{},
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	r.Methods(http.MethodPost).Path("/evaluate").Handler(this.postEvaluate())
	r.Methods(http.MethodPost).Path("/equity").Handler(this.postEquity())

	r.Methods(http.MethodPost).Path("/replay").Handler(this.postReplay())
	r.Methods(http.MethodGet).Path("/replay/ws").Handler(this.getReplayWS())

	r.Methods(http.MethodPost).Path("/cashout").Handler(this.postCashout())
	r.Methods(http.MethodPost).Path("/insurance").Handler(this.postInsurance())
	r.Methods(http.MethodPost).Path("/rabbit-hunt").Handler(this.postRabbitHunt())
	r.Methods(http.MethodPost).Path("/run-it-twice").Handler(this.postRunItTwice())
	r.Methods(http.MethodPost).Path("/bad-beat").Handler(this.postBadBeat())

	r.Methods(http.MethodPost).Path("/hand-history").Handler(this.postHandHistory())
	r.Methods(http.MethodGet).Path("/hand-history").Handler(this.getHandHistory())
	r.Methods(http.MethodGet).Path("/hand-history/" + uuidPattern).Handler(this.getHandHistoryUUID())

	return this
}

// calculator returns an equity calculator with the configured limits and the request's overrides
func (m *Mux) calculator(opts ...equity.Option) *equity.Calculator {
	all := make([]equity.Option, 0, len(m.equityOptions)+len(opts)+1)
	all = append(all, m.equityOptions...)
	all = append(all, equity.WithLogger(m.logger))
	all = append(all, opts...)

	return equity.NewCalculator(all...)
}

// generator returns a seeded generator when the request asks for a reproducible deal
func (m *Mux) generator(seed *int64) rng.Generator {
	if seed != nil {
		return rng.NewSeeded(*seed)
	}

	return m.random
}
