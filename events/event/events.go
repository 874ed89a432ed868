package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadchoose/waitlistd/events"
)

const (
	WaitlistSignupEvent    events.EventName = "waitlist_signup"
	WaitlistConfirmedEvent events.EventName = "waitlist_confirmed"
	DemoRequestedEvent     events.EventName = "demo_requested"

	EmailConfirmSentEvent         events.EventName = "email_confirm_sent"
	EmailWaitlistWelcomeSentEvent events.EventName = "email_waitlist_welcome_sent"

	ExpiredEntriesSweptEvent events.EventName = "expired_entries_swept"
)

// WaitlistSignup is raised once a pending entry has been created
type WaitlistSignup struct {
	PendingID   uuid.UUID
	Email       string
	DisplayName string
	Company     *string
	ExpiresAt   time.Time
}

func (*WaitlistSignup) Name() events.EventName {
	return WaitlistSignupEvent
}

// WaitlistConfirmed is raised once a pending entry became a confirmed one
type WaitlistConfirmed struct {
	ID    uuid.UUID
	Email string
}

func (*WaitlistConfirmed) Name() events.EventName {
	return WaitlistConfirmedEvent
}

// DemoRequested is raised for detailed form submissions
type DemoRequested struct {
	Email   string
	Company *string
	Message *string
}

func (*DemoRequested) Name() events.EventName {
	return DemoRequestedEvent
}

// EmailConfirmSent is raised after the confirmation mail went out
type EmailConfirmSent struct {
	Email        string
	ConfirmToken string
	Sent         time.Time
}

func (*EmailConfirmSent) Name() events.EventName {
	return EmailConfirmSentEvent
}

// EmailWaitlistWelcomeSent is raised after the post-confirmation welcome mail went out
type EmailWaitlistWelcomeSent struct {
	Email string
	Sent  time.Time
}

func (*EmailWaitlistWelcomeSent) Name() events.EventName {
	return EmailWaitlistWelcomeSentEvent
}

// ExpiredEntriesSwept is raised whenever the expiry sweep ran
type ExpiredEntriesSwept struct {
	Removed int64
	Swept   time.Time
}

func (*ExpiredEntriesSwept) Name() events.EventName {
	return ExpiredEntriesSweptEvent
}
