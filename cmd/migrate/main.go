package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"pokercore/pkg/db"
)

func main() {
	if !db.Configured() {
		logrus.Fatal("PCORE_PG_DSN is not set")
	}

	waitForDB()
	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB() {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			err := db.LoadInstance()
			if err == nil {
				return
			}

			logrus.WithError(err).Debug("waiting for database")
			time.Sleep(time.Millisecond * 500)
		}
	}
}
