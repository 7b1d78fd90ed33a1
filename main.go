package main

import (
	"os"

	"animal-chess/internal/cli"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	root := cli.Root()
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
