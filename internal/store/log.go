package store

import "go.uber.org/zap"

// LogEvents logs every store event at debug level until cancelled.
func LogEvents(s Store, logger *zap.Logger) (cancel func()) {
	return s.Subscribe(func(ev Event) {
		logger.Debug("store event",
			zap.String("kind", string(ev.Kind)),
			zap.String("id", ev.ID),
			zap.Time("at", ev.At),
		)
	})
}
