package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Unknown levels fall back to info.
func New(level, format string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, format)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(out io.Writer, level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.Out = out

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	}
	return logger
}
