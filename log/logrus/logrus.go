package logrus

import (
	"github.com/sirupsen/logrus"

	sessionstore "github.com/rahil-p/connect-redis-session"
)

// Logger adapts a logrus.Entry to the store's Logger interface.
type Logger struct{ E *logrus.Entry }

var _ sessionstore.Logger = Logger{}

func (l Logger) Debug(msg string, f sessionstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}

func (l Logger) Info(msg string, f sessionstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}

func (l Logger) Warn(msg string, f sessionstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}

func (l Logger) Error(msg string, f sessionstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
