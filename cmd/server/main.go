package main

import (
	"animal-chess/internal/cli"
	"animal-chess/internal/config"

	"github.com/sirupsen/logrus"
)

// @title Animal Chess API
// @version 1.0
// @description REST API for face-down animal chess with an automated opponent (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	logrus.SetLevel(cfg.Level())

	if err := cli.Serve(cfg); err != nil {
		logrus.Fatal(err)
	}
}
