package zap

import (
	"go.uber.org/zap"

	sessionstore "github.com/rahil-p/connect-redis-session"
)

// Logger adapts a zap.Logger to the store's Logger interface.
type Logger struct{ L *zap.Logger }

var _ sessionstore.Logger = Logger{}

func (z Logger) Debug(msg string, f sessionstore.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f sessionstore.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f sessionstore.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f sessionstore.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f sessionstore.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
