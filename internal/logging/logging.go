package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger.
// If filename is empty, logs go to stderr; otherwise they are appended to
// that file and cleanup closes it.
func Setup(level logrus.Level, filename string) (cleanup func(), err error) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if filename == "" {
		logrus.SetOutput(os.Stderr)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(f)

	cleanup = func() {
		logrus.SetOutput(os.Stderr)
		f.Close()
	}
	return cleanup, nil
}
