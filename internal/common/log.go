package common

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logrus logger used across the WM. Level is taken from
// FOOTWM_LOG_LEVEL (debug, info, warn, error), defaulting to info.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(os.Getenv("FOOTWM_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
