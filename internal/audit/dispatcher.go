package audit

import (
	"log"
	"sync"
)

const (
	ActionReservationCreated   = "reservation_created"
	ActionReservationCancelled = "reservation_cancelled"
	ActionReservationDeleted   = "reservation_deleted"
	ActionPresenceToggled      = "presence_toggled"
	ActionSlotCreated          = "slot_created"
	ActionSlotUpdated          = "slot_updated"
	ActionSlotDeleted          = "slot_deleted"
	ActionWasherCreated        = "washer_created"
	ActionWasherUpdated        = "washer_updated"
	ActionWasherDeleted        = "washer_deleted"
	ActionUserCreated          = "user_created"
	ActionUserUpdated          = "user_updated"
	ActionUserDeleted          = "user_deleted"
	ActionLogin                = "login"
	ActionLogout               = "logout"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher persists events on a background worker. A nil Dispatcher
// drops every event.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia: o audit nunca pode quebrar a API
		log.Println("audit queue full, dropping event")
	}
}

// Close drains the queue and waits for the worker. Dispatch must not be
// called afterwards.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}

// ID returns a pointer to id for the optional Event fields.
func ID(id uint) *uint {
	return &id
}
