package tables

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistTable represents the waitlist table holding confirmed entries
type WaitlistTable struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Company   *string   `db:"company"`
	CreatedAt time.Time `db:"created_at"`
}
