package engine

import (
	"github.com/rs/zerolog"

	"quayside/internal/events"
)

// LoggingObserver writes every event to a zerolog.Logger at debug level.
// It is the engine-side analog of the teacher's zerolog-based request
// logging, just driven by book events instead of network requests.
type LoggingObserver struct {
	log zerolog.Logger
}

// NewLoggingObserver wraps log as an events.Observer.
func NewLoggingObserver(log zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{log: log}
}

func (o *LoggingObserver) OnNewOrder(evt events.NewOrderEvent) {
	o.log.Debug().Str("event", evt.String()).Msg("new order")
}

func (o *LoggingObserver) OnOrderCancelled(evt events.CancelEvent) {
	o.log.Debug().Str("event", evt.String()).Msg("order cancelled")
}

func (o *LoggingObserver) OnOrderMatched(evt events.MatchEvent) {
	o.log.Debug().Str("event", evt.String()).Msg("order matched")
}
