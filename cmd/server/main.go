package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"pokercore/internal/config"
	"pokercore/internal/mux"
	"pokercore/pkg/db"
	"pokercore/pkg/handhistory"
)

const readTimeout = time.Second * 5

// equity requests can enumerate millions of run-outs
const writeTimeout = time.Second * 60

// Version is the server version
var Version = "v0.0.0-dev"

func main() {
	setupLogger()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         config.Instance().ListenAddr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, histories()))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).WithField("version", Version).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// histories returns the Postgres repository when a database is configured
func histories() handhistory.Repository {
	if !db.Configured() {
		logrus.Warn("no database configured, hand histories are kept in memory")
		return handhistory.NewMemoryRepository()
	}

	// run the db migrations
	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not migrate the database")
	}

	return handhistory.NewPostgresRepository(db.Instance())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
