//go:build integration
// +build integration

package db

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/leadchoose/waitlistd/config"
	"github.com/leadchoose/waitlistd/events/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DatabaseIntegrationTestSuite struct {
	suite.Suite
	dataStore *DataStore
	dbType    string
	dsn       string
}

func (s *DatabaseIntegrationTestSuite) SetupTest() {
	//reset to clean state
	switch s.dbType {
	case "pg":
		s.dataStore.db.MustExec("DROP SCHEMA IF EXISTS public CASCADE;")
		s.dataStore.db.MustExec("CREATE SCHEMA public;")
	case "mysql":
		s.dataStore.db.MustExec("DROP DATABASE IF EXISTS waitlistd;")
		s.dataStore.db.MustExec("CREATE DATABASE waitlistd;")
		s.dataStore.db.MustExec("USE waitlistd;")
	default:
		//just reopen for :memory:
		dataStore, err := NewSqliteStore(zap.NewNop(), &config.DatabaseConfiguration{
			Type: "sqlite",
			DSN:  s.dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	}

	err := s.dataStore.EnsureUsable()
	assert.NoError(s.T(), err)
}

func (s *DatabaseIntegrationTestSuite) pending(email string, expiresAt time.Time) string {
	token := "token-" + email
	_, err := s.dataStore.InsertPendingEntry(
		context.Background(),
		email,
		"tester",
		nil,
		token,
		expiresAt,
	)
	assert.NoError(s.T(), err)
	return token
}

func (s *DatabaseIntegrationTestSuite) TestInsertPendingEntry() {
	entry, err := s.dataStore.InsertPendingEntry(
		context.Background(),
		"new@example.com",
		"tester",
		nil,
		"sometoken",
		time.Now().UTC().Add(time.Hour),
	)
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), entry) {
		assert.Equal(s.T(), "new@example.com", entry.Email)
	}
	registered, err := s.dataStore.IsRegistered(context.Background(), "new@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), registered)
}

func (s *DatabaseIntegrationTestSuite) TestInsertPendingEntryTwice() {
	s.pending("dup@example.com", time.Now().UTC().Add(time.Hour))
	_, err := s.dataStore.InsertPendingEntry(
		context.Background(),
		"dup@example.com",
		"tester",
		nil,
		"othertoken",
		time.Now().UTC().Add(time.Hour),
	)
	assert.ErrorIs(s.T(), err, ErrAlreadyExists)
}

func (s *DatabaseIntegrationTestSuite) TestInsertPendingEntryForConfirmedEmail() {
	token := s.pending("confirmed@example.com", time.Now().UTC().Add(time.Hour))
	_, err := s.dataStore.ConfirmEntry(context.Background(), token)
	assert.NoError(s.T(), err)

	_, err = s.dataStore.InsertPendingEntry(
		context.Background(),
		"confirmed@example.com",
		"tester",
		nil,
		"freshtoken",
		time.Now().UTC().Add(time.Hour),
	)
	assert.ErrorIs(s.T(), err, ErrAlreadyExists)
}

func (s *DatabaseIntegrationTestSuite) TestConfirmationTokenExists() {
	token := s.pending("exists@example.com", time.Now().UTC().Add(time.Hour))
	exists, err := s.dataStore.ConfirmationTokenExists(context.Background(), token)
	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)
	exists, err = s.dataStore.ConfirmationTokenExists(context.Background(), "nope")
	assert.NoError(s.T(), err)
	assert.False(s.T(), exists)
}

func (s *DatabaseIntegrationTestSuite) TestConfirmEntry() {
	token := s.pending("confirm@example.com", time.Now().UTC().Add(time.Hour))
	confirmed, err := s.dataStore.ConfirmEntry(context.Background(), token)
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), confirmed) {
		assert.Equal(s.T(), "confirm@example.com", confirmed.Email)
		assert.Equal(s.T(), "tester", confirmed.Name)
	}

	//pending row is gone, token can not be reused
	_, err = s.dataStore.PendingEntryByToken(context.Background(), token)
	assert.ErrorIs(s.T(), err, ErrNotFound)
	_, err = s.dataStore.ConfirmEntry(context.Background(), token)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	entries, err := s.dataStore.ConfirmedEntries(context.Background())
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), entries, 1) {
		assert.Equal(s.T(), "confirm@example.com", entries[0].Email)
	}
}

func (s *DatabaseIntegrationTestSuite) TestConfirmEntryUnknownToken() {
	_, err := s.dataStore.ConfirmEntry(context.Background(), "unknown")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestConfirmEntryEmptyToken() {
	_, err := s.dataStore.ConfirmEntry(context.Background(), "")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestConfirmEntryExpiredToken() {
	token := s.pending("late@example.com", time.Now().UTC().Add(-time.Hour))
	_, err := s.dataStore.ConfirmEntry(context.Background(), token)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	//the expired row got removed, the email is free again
	registered, err := s.dataStore.IsRegistered(context.Background(), "late@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), registered)
}

func (s *DatabaseIntegrationTestSuite) TestDeleteExpiredEntries() {
	s.pending("gone@example.com", time.Now().UTC().Add(-time.Hour))
	s.pending("kept@example.com", time.Now().UTC().Add(time.Hour))

	removed, err := s.dataStore.DeleteExpiredEntries(context.Background(), time.Now().UTC())
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), removed)

	registered, err := s.dataStore.IsRegistered(context.Background(), "kept@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), registered)
}

func (s *DatabaseIntegrationTestSuite) TestAuditListeners() {
	listeners := BootstrapListeners(s.dataStore.Auditor(), zap.NewNop())
	assert.Len(s.T(), listeners, 6)
	for _, l := range listeners {
		if l.ForEvent() == event.ExpiredEntriesSweptEvent {
			err := l.Handle(context.Background(), &event.ExpiredEntriesSwept{
				Removed: 2,
				Swept:   time.Now().UTC(),
			})
			assert.NoError(s.T(), err)
		}
	}
}

func TestDatabaseSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database integration tests")
	}
	s := &DatabaseIntegrationTestSuite{}
	logger := zaptest.NewLogger(t)
	dbType := os.Getenv("INTEGRATION_TEST_DB_TYPE")
	dsn := os.Getenv("INTEGRATION_TEST_DB_DSN")
	switch dbType {
	case "mysql":
		dataStore, err := NewMysqlStore(logger, &config.DatabaseConfiguration{
			Type: dbType,
			DSN:  dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	case "pg":
		dataStore, err := NewPostgrestore(logger, &config.DatabaseConfiguration{
			Type: dbType,
			DSN:  dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	default:
		dbType = "sqlite"
		if dsn == "" {
			dsn = ":memory:"
		}
		dataStore, err := NewSqliteStore(logger, &config.DatabaseConfiguration{
			Type: dbType,
			DSN:  dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	}
	s.dbType = dbType
	s.dsn = dsn
	suite.Run(t, s)
}
