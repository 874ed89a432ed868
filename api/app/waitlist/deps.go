package waitlist

import (
	"context"

	"github.com/leadchoose/waitlistd/db/tables"
)

// Service is the waitlist business service consumed by the resource
type Service interface {
	Join(ctx context.Context, email string) error
	RequestDemo(
		ctx context.Context,
		email string,
		name string,
		company *string,
		message *string,
	) error
	Confirm(ctx context.Context, token string) (*tables.WaitlistTable, error)
	CleanupExpired(ctx context.Context) (int64, error)
}

// TestMailer sends the smtp verification mail
type TestMailer interface {
	SendTestEmail(email string) error
}
