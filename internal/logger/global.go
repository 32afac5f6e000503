// Package logger exposes a process-wide logrus logger used by background
// workers and the refresh scheduler. Request-path logging stays on the
// fiber logger middleware.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	initLogger()
}

func initLogger() {
	Logger = logrus.New()
	Logger.SetLevel(logrus.InfoLevel)
	if os.Getenv("LOG_LEVEL") == "debug" {
		Logger.SetLevel(logrus.DebugLevel)
	}
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Logger.SetOutput(os.Stdout)
}

func GetLogger() *logrus.Logger {
	return Logger
}
