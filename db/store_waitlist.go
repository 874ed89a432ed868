package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/leadchoose/waitlistd/db/tables"
	"go.uber.org/zap"
)

// IsRegistered checks if the email is present in either the pending or the confirmed set
func (d *DataStore) IsRegistered(ctx context.Context, email string) (bool, error) {
	pending, err := d.exists(ctx, "pending_waitlist", "email = ?", email)
	if err != nil {
		return false, err
	}
	if pending {
		return true, nil
	}
	return d.exists(ctx, "waitlist", "email = ?", email)
}

// ConfirmationTokenExists checks if the supplied token is already taken
func (d *DataStore) ConfirmationTokenExists(ctx context.Context, token string) (bool, error) {
	return d.exists(ctx, "pending_waitlist", "confirmation_token = ?", token)
}

// InsertPendingEntry creates a pending waitlist row, the unique constraints on
// email and confirmation_token back up the explicit registration check
func (d *DataStore) InsertPendingEntry(
	ctx context.Context,
	email string,
	name string,
	company *string,
	confirmationToken string,
	expiresAt time.Time,
) (*tables.PendingWaitlistTable, error) {
	registered, err := d.IsRegistered(ctx, email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, ErrAlreadyExists
	}
	entry := &tables.PendingWaitlistTable{
		ID:                uuid.New(),
		Email:             email,
		Name:              name,
		Company:           company,
		ConfirmationToken: confirmationToken,
		ExpiresAt:         expiresAt,
		CreatedAt:         time.Now().UTC(),
	}
	insert := sq.Insert("pending_waitlist").
		Columns("id", "email", "name", "company", "confirmation_token", "expires_at", "created_at").
		Values(entry.ID, entry.Email, entry.Name, entry.Company,
			entry.ConfirmationToken, entry.ExpiresAt, entry.CreatedAt)
	_, err = d.insertStatement(ctx, insert, nil)
	if err != nil {
		if duplicateKey(err) {
			return nil, ErrAlreadyExists
		}
		d.log.Error("could not insert pending entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// PendingEntryByToken loads a pending row by its confirmation token
func (d *DataStore) PendingEntryByToken(
	ctx context.Context,
	token string,
) (*tables.PendingWaitlistTable, error) {
	var entry tables.PendingWaitlistTable
	q := sq.Select("*").From("pending_waitlist").Where(sq.Eq{"confirmation_token": token})
	err := d.getStatement(ctx, &entry, q, nil)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ConfirmEntry atomically turns a pending row into a confirmed one.
// Unknown tokens return ErrNotFound, expired rows are deleted and also
// report ErrNotFound so callers can not tell the two apart. The insert
// and delete share one transaction, a failed insert keeps the pending
// row so the confirmation can be retried.
func (d *DataStore) ConfirmEntry(
	ctx context.Context,
	token string,
) (*tables.WaitlistTable, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	var pending tables.PendingWaitlistTable
	q := sq.Select("*").From("pending_waitlist").Where(sq.Eq{"confirmation_token": token})
	err = d.getStatement(ctx, &pending, q, tx)
	if errors.Is(err, sql.ErrNoRows) {
		d.rollback(tx)
		return nil, ErrNotFound
	}
	if err != nil {
		d.rollback(tx)
		return nil, err
	}

	del := sq.Delete("pending_waitlist").Where(sq.Eq{"confirmation_token": token})

	if pending.ExpiresAt.Before(time.Now().UTC()) {
		if _, err := d.deleteStatement(ctx, del, tx); err != nil {
			d.rollback(tx)
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	confirmed := &tables.WaitlistTable{
		ID:        uuid.New(),
		Email:     pending.Email,
		Name:      pending.Name,
		Company:   pending.Company,
		CreatedAt: time.Now().UTC(),
	}
	insert := sq.Insert("waitlist").
		Columns("id", "email", "name", "company", "created_at").
		Values(confirmed.ID, confirmed.Email, confirmed.Name, confirmed.Company, confirmed.CreatedAt)
	if _, err := d.insertStatement(ctx, insert, tx); err != nil {
		d.rollback(tx)
		if duplicateKey(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	if _, err := d.deleteStatement(ctx, del, tx); err != nil {
		d.rollback(tx)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// ConfirmedEntries returns all confirmed waitlist rows, newest first
func (d *DataStore) ConfirmedEntries(ctx context.Context) ([]*tables.WaitlistTable, error) {
	var entries []*tables.WaitlistTable
	q := sq.Select("*").From("waitlist").OrderBy("created_at DESC")
	err := d.selectStatement(ctx, &entries, q, nil)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteExpiredEntries removes every pending row whose expiry is at or before now
func (d *DataStore) DeleteExpiredEntries(ctx context.Context, now time.Time) (int64, error) {
	del := sq.Delete("pending_waitlist").Where(sq.LtOrEq{"expires_at": now})
	rs, err := d.deleteStatement(ctx, del, nil)
	if err != nil {
		return 0, err
	}
	return rs.RowsAffected()
}

func (d *DataStore) rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil {
		d.log.Error("couldnt rollback", zap.Error(err))
	}
}
