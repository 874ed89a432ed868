package waitlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/leadchoose/waitlistd/config"
	"github.com/leadchoose/waitlistd/db"
	"github.com/leadchoose/waitlistd/db/tables"
	"github.com/leadchoose/waitlistd/events"
	"github.com/leadchoose/waitlistd/events/event"
	"github.com/leadchoose/waitlistd/generator"
	"go.uber.org/zap"
)

const maxIterationCycles = 100

var (
	// ErrTokenGenTimeout signals no unique token could be generated within the cycle bound
	ErrTokenGenTimeout = errors.New("could not generate a token within given cycles")
	// ErrEntityAlreadyExists signals the email is already on the pending or confirmed list
	ErrEntityAlreadyExists = errors.New("entity already exists in system")
	// ErrEntityDoesNotExist signals an unknown, consumed or expired confirmation token
	ErrEntityDoesNotExist = errors.New("entity does not exist in system")
)

// Storer is the persistence the waitlist service runs against
type Storer interface {
	IsRegistered(ctx context.Context, email string) (bool, error)
	ConfirmationTokenExists(ctx context.Context, token string) (bool, error)
	InsertPendingEntry(
		ctx context.Context,
		email string,
		name string,
		company *string,
		confirmationToken string,
		expiresAt time.Time,
	) (*tables.PendingWaitlistTable, error)
	ConfirmEntry(ctx context.Context, token string) (*tables.WaitlistTable, error)
	ConfirmedEntries(ctx context.Context) ([]*tables.WaitlistTable, error)
	DeleteExpiredEntries(ctx context.Context, now time.Time) (int64, error)
}

// Mailer delivers the transactional mails the waitlist flows need
type Mailer interface {
	SendConfirmationMail(email string, name string, token string) error
	SendWaitlistWelcomeMail(email string, name string) error
	SendDemoNotificationMail(name string, email string, company *string, message *string) error
}

// Dispatcher relays domain events to whoever listens for them
type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Event)
}

func New(store Storer,
	logger *zap.Logger,
	cfg *config.Configuration,
	mailer Mailer,
	dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		log:        logger,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

type Service struct {
	store      Storer
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     Mailer
	dispatcher Dispatcher
}

// nameFromEmail derives a display name from the local part of the address
func nameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	if local == "" {
		return "Anonymous"
	}
	return local
}

// Join registers a quick signup that only carries an email address, the
// display name is derived from the local part and the configured default
// company is recorded
func (g *Service) Join(ctx context.Context, email string) error {
	company := g.cfg.Behaviour.DefaultCompany
	return g.signup(ctx, email, nameFromEmail(email), &company)
}

// RequestDemo registers a detailed signup and additionally notifies the
// configured operator address about the submission
func (g *Service) RequestDemo(
	ctx context.Context,
	email string,
	name string,
	company *string,
	message *string,
) error {
	if name == "" {
		name = nameFromEmail(email)
	}
	err := g.signup(ctx, email, name, company)
	if err != nil {
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.DemoRequested{
		Email:   email,
		Company: company,
		Message: message,
	})
	err = g.mailer.SendDemoNotificationMail(name, email, company, message)
	if err != nil {
		g.log.Error("demo notification mail could not be sent",
			zap.String("email", email),
			zap.Error(err))
		return err
	}
	return nil
}

// shared signup boilerplate
func (g *Service) signup(ctx context.Context, email string, name string, company *string) error {
	token, err := g.freshToken(ctx)
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(g.cfg.Behaviour.PendingTTL)
	entry, err := g.store.InsertPendingEntry(ctx, email, name, company, token, expiresAt)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return ErrEntityAlreadyExists
		}
		g.log.Error("could not create pending entry",
			zap.String("email", email),
			zap.Error(err))
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.WaitlistSignup{
		PendingID:   entry.ID,
		Email:       entry.Email,
		DisplayName: entry.Name,
		Company:     entry.Company,
		ExpiresAt:   entry.ExpiresAt,
	})
	err = g.mailer.SendConfirmationMail(email, name, token)
	if err != nil {
		// the pending row stays behind on purpose, the expiry sweep collects it
		g.log.Error("confirmation mail could not be sent",
			zap.String("email", email),
			zap.Error(err))
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.EmailConfirmSent{
		Email:        email,
		ConfirmToken: token,
		Sent:         time.Now(),
	})
	return nil
}

// freshToken generates a confirmation token that is not in use yet
func (g *Service) freshToken(ctx context.Context) (string, error) {
	gen := generator.New()
	for cycle := 0; cycle < maxIterationCycles; cycle++ {
		token := string(gen.CreateSecureToken())
		exists, err := g.store.ConfirmationTokenExists(ctx, token)
		if err != nil {
			g.log.Error("could not check if confirmation token already exists", zap.Error(err))
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return "", ErrTokenGenTimeout
}

// Confirm consumes the supplied token and moves the pending entry onto the
// confirmed waitlist. The welcome mail afterwards is best effort, its failure
// never undoes the confirmation.
func (g *Service) Confirm(ctx context.Context, token string) (*tables.WaitlistTable, error) {
	entry, err := g.store.ConfirmEntry(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEntityDoesNotExist
		}
		g.log.Error("could not confirm in data store",
			zap.String("token", token),
			zap.Error(err))
		return nil, err
	}
	g.dispatcher.Dispatch(ctx, &event.WaitlistConfirmed{
		ID:    entry.ID,
		Email: entry.Email,
	})
	err = g.mailer.SendWaitlistWelcomeMail(entry.Email, entry.Name)
	if err != nil {
		g.log.Error("waitlist welcome mail could not be sent",
			zap.String("email", entry.Email),
			zap.Error(err))
	} else {
		g.dispatcher.Dispatch(ctx, &event.EmailWaitlistWelcomeSent{
			Email: entry.Email,
			Sent:  time.Now(),
		})
	}
	return entry, nil
}

// Registered reports if the email is present on the pending or confirmed list
func (g *Service) Registered(ctx context.Context, email string) (bool, error) {
	registered, err := g.store.IsRegistered(ctx, email)
	if err != nil {
		g.log.Error("could not check registration in data store",
			zap.String("email", email),
			zap.Error(err))
		return false, err
	}
	return registered, nil
}

// ConfirmedEntries lists the confirmed waitlist, newest first
func (g *Service) ConfirmedEntries(ctx context.Context) ([]*tables.WaitlistTable, error) {
	return g.store.ConfirmedEntries(ctx)
}

// CleanupExpired removes every pending entry past its expiry
func (g *Service) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := g.store.DeleteExpiredEntries(ctx, time.Now().UTC())
	if err != nil {
		g.log.Error("could not sweep expired entries", zap.Error(err))
		return 0, err
	}
	g.dispatcher.Dispatch(ctx, &event.ExpiredEntriesSwept{
		Removed: removed,
		Swept:   time.Now(),
	})
	return removed, nil
}
