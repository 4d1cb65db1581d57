package audit

import "github.com/rs/zerolog"

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Dispatcher records audit events off the request path. A full queue drops
// the event; auditing never blocks or fails a state transition.
type Dispatcher struct {
	sink  *Logger
	queue chan Event
	log   zerolog.Logger
}

func NewDispatcher(sink *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Record(ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit record failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
