package db

import (
	"context"
	"errors"

	"github.com/leadchoose/waitlistd/db/tables"
	"github.com/leadchoose/waitlistd/events"
	"github.com/leadchoose/waitlistd/events/event"
	"go.uber.org/zap"
)

// Auditor is a way to write audit log events into a persistent store
type Auditor interface {
	addToAuditLog(event string, payload tables.MapStructure) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor, log *zap.Logger) []events.EventListener {
	return []events.EventListener{
		&waitlistSignupListener{
			log:   log,
			store: store,
		},
		&waitlistConfirmedListener{
			log:   log,
			store: store,
		},
		&demoRequestedListener{
			log:   log,
			store: store,
		},
		&emailConfirmSentListener{
			log:   log,
			store: store,
		},
		&emailWaitlistWelcomeSentListener{
			log:   log,
			store: store,
		},
		&expiredEntriesSweptListener{
			log:   log,
			store: store,
		},
	}
}

type waitlistSignupListener struct {
	log   *zap.Logger
	store Auditor
}

func (*waitlistSignupListener) ForEvent() events.EventName {
	return event.WaitlistSignupEvent
}

func (l *waitlistSignupListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.WaitlistSignup)
	if !ok {
		return errors.New("listener got wrong event type")
	}
	return l.store.addToAuditLog(string(ev.Name()), tables.MapStructure{
		"pending_id": e.PendingID.String(),
		"email":      e.Email,
		"name":       e.DisplayName,
		"expires_at": e.ExpiresAt,
	})
}

type waitlistConfirmedListener struct {
	log   *zap.Logger
	store Auditor
}

func (*waitlistConfirmedListener) ForEvent() events.EventName {
	return event.WaitlistConfirmedEvent
}

func (l *waitlistConfirmedListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.WaitlistConfirmed)
	if !ok {
		return errors.New("listener got wrong event type")
	}
	return l.store.addToAuditLog(string(ev.Name()), tables.MapStructure{
		"id":    e.ID.String(),
		"email": e.Email,
	})
}

type demoRequestedListener struct {
	log   *zap.Logger
	store Auditor
}

func (*demoRequestedListener) ForEvent() events.EventName {
	return event.DemoRequestedEvent
}

func (l *demoRequestedListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.DemoRequested)
	if !ok {
		return errors.New("listener got wrong event type")
	}
	payload := tables.MapStructure{
		"email": e.Email,
	}
	if e.Company != nil {
		payload["company"] = *e.Company
	}
	if e.Message != nil {
		payload["message"] = *e.Message
	}
	return l.store.addToAuditLog(string(ev.Name()), payload)
}

type emailConfirmSentListener struct {
	log   *zap.Logger
	store Auditor
}

func (*emailConfirmSentListener) ForEvent() events.EventName {
	return event.EmailConfirmSentEvent
}

func (l *emailConfirmSentListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.EmailConfirmSent)
	if !ok {
		return errors.New("listener got wrong event type")
	}
	return l.store.addToAuditLog(string(ev.Name()), tables.MapStructure{
		"email": e.Email,
		"sent":  e.Sent,
	})
}

type emailWaitlistWelcomeSentListener struct {
	log   *zap.Logger
	store Auditor
}

func (*emailWaitlistWelcomeSentListener) ForEvent() events.EventName {
	return event.EmailWaitlistWelcomeSentEvent
}

func (l *emailWaitlistWelcomeSentListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.EmailWaitlistWelcomeSent)
	if !ok {
		return errors.New("listener got wrong event type")
	}
	return l.store.addToAuditLog(string(ev.Name()), tables.MapStructure{
		"email": e.Email,
		"sent":  e.Sent,
	})
}

type expiredEntriesSweptListener struct {
	log   *zap.Logger
	store Auditor
}

func (*expiredEntriesSweptListener) ForEvent() events.EventName {
	return event.ExpiredEntriesSweptEvent
}

func (l *expiredEntriesSweptListener) Handle(ctx context.Context, ev events.Event) error {
	e, ok := ev.(*event.ExpiredEntriesSwept)
	if !ok {
		return errors.New("listener got wrong event type")
	}
	return l.store.addToAuditLog(string(ev.Name()), tables.MapStructure{
		"removed": e.Removed,
		"swept":   e.Swept,
	})
}
