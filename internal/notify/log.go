package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes notifications to the log instead of sending them. Used in
// development and whenever Twilio credentials are absent.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info().
		Str("event", string(msg.Event)).
		Str("to", msg.To).
		Str("body", Render(msg)).
		Msg("notification (log only)")
	return nil
}
