package tables

import (
	"time"

	"github.com/google/uuid"
)

// PendingWaitlistTable represents the pending_waitlist table,
// rows live here until they are confirmed or swept
type PendingWaitlistTable struct {
	ID                uuid.UUID `db:"id"`
	Email             string    `db:"email"`
	Name              string    `db:"name"`
	Company           *string   `db:"company"`
	ConfirmationToken string    `db:"confirmation_token" json:"-"`
	ExpiresAt         time.Time `db:"expires_at"`
	CreatedAt         time.Time `db:"created_at"`
}
