package bus

import (
	"time"

	"github.com/zeusync/physics2d/internal/core/observability/log"
)

type logObserver struct {
	logger log.Log
}

// NewLogObserver logs every delivery at debug level. Registering it also
// turns on Metrics.
func NewLogObserver(logger log.Log) Observer {
	return logObserver{logger: logger.Named("bus")}
}

func (logObserver) OnPublish(Event) {}

func (o logObserver) OnDelivered(eventType string, handlers int, err error, took time.Duration) {
	o.logger.Debug("Event delivered",
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Bool("failed", err != nil),
		log.Duration("took", took),
	)
}
