// Package logging configures the process logger. Logs go to stderr so stdout carries only reports.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"abtest/internal/errors"
)

// New creates a text logger writing to out at the named level
func New(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid log level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return logger, nil
}
