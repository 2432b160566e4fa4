package main

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/bingo-server/internal/config"
	"github.com/vancomm/bingo-server/internal/database"
	"github.com/vancomm/bingo-server/migrations"
)

func main() {
	logger, err := config.NewLogger()
	if err != nil {
		panic(err)
	}

	migrator, err := database.Migrate(migrations.FS)
	if err != nil {
		logger.WithError(err).Fatal("failed to migrate db")
	}
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		logger.WithError(err).Error("failed to check migration version")
		return
	}
	logger.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
