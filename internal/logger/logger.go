package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the logger every binary uses. WHEELIO_ENV=development switches
// to the human-readable console encoder.
func New(service string) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if os.Getenv("WHEELIO_ENV") == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		// zap's constructors only fail on bad config; fall back to a no-op
		// logger rather than refuse to start.
		return zap.NewNop()
	}
	return log.With(zap.String("service", service))
}
