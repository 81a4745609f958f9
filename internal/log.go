package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger for w. Only warnings and errors are shown
// unless verbose is set.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
	})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
