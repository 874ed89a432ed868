package waitlist

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leadchoose/waitlistd/config"
	"github.com/leadchoose/waitlistd/db/tables"
	svc "github.com/leadchoose/waitlistd/waitlist"
	"github.com/steinfletcher/apitest"
	"go.uber.org/zap"
)

type stubService struct {
	joinErr    error
	demoErr    error
	confirmErr error
	cleanupErr error
	removed    int64
}

func (s *stubService) Join(_ context.Context, _ string) error {
	return s.joinErr
}

func (s *stubService) RequestDemo(
	_ context.Context,
	_ string,
	_ string,
	_ *string,
	_ *string,
) error {
	return s.demoErr
}

func (s *stubService) Confirm(_ context.Context, _ string) (*tables.WaitlistTable, error) {
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return &tables.WaitlistTable{
		ID:        uuid.New(),
		Email:     "test@example.com",
		Name:      "test",
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *stubService) CleanupExpired(_ context.Context) (int64, error) {
	return s.removed, s.cleanupErr
}

type stubMailer struct {
	err  error
	sent []string
}

func (s *stubMailer) SendTestEmail(email string) error {
	s.sent = append(s.sent, email)
	return s.err
}

func newTestRessource(service Service, mailer TestMailer) *WaitlistRessource {
	bcfg := &config.BehaviourConfiguration{
		Name:            "LeadChoose",
		OperatorAddress: "demo@leadchoose.com",
	}
	return NewWaitlistRessource(zap.NewNop(), bcfg, service, mailer, validator.New())
}

func TestJoin(t *testing.T) {
	wl := newTestRessource(&stubService{}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.join).
		Post("/join").
		Body(`{"email":"test@example.com"}`).
		Expect(t).
		Body(`{"success":true,"message":"Please check your email to confirm your waitlist spot!"}`).
		Status(http.StatusOK).
		End()
}

func TestJoinDuplicate(t *testing.T) {
	wl := newTestRessource(&stubService{joinErr: svc.ErrEntityAlreadyExists}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.join).
		Post("/join").
		Body(`{"email":"taken@example.com"}`).
		Expect(t).
		Body(`{"success":false,"message":"This email is already registered. Please check your inbox for the confirmation email."}`).
		Status(http.StatusOK).
		End()
}

func TestJoinInvalidEmail(t *testing.T) {
	wl := newTestRessource(&stubService{}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.join).
		Post("/join").
		Body(`{"email":"not-an-email"}`).
		Expect(t).
		Body(`{"success":false,"message":"Invalid email address"}`).
		Status(http.StatusOK).
		End()
}

func TestJoinServerError(t *testing.T) {
	wl := newTestRessource(&stubService{joinErr: errors.New("dummy")}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.join).
		Post("/join").
		Body(`{"email":"test@example.com"}`).
		Expect(t).
		Body(`{"success":false,"message":"Server error. Please try again later."}`).
		Status(http.StatusInternalServerError).
		End()
}

func TestRequestDemo(t *testing.T) {
	wl := newTestRessource(&stubService{}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.requestDemo).
		Post("/request-demo").
		Body(`{"email":"test@example.com","name":"Jane Broker","company":"Example Realty"}`).
		Expect(t).
		Body(`{"success":true,"message":"Please check your email to confirm your waitlist spot!"}`).
		Status(http.StatusOK).
		End()
}

func TestRequestDemoMissingName(t *testing.T) {
	wl := newTestRessource(&stubService{}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.requestDemo).
		Post("/request-demo").
		Body(`{"email":"test@example.com"}`).
		Expect(t).
		Body(`{"success":false,"message":"Invalid email address"}`).
		Status(http.StatusOK).
		End()
}

func TestConfirm(t *testing.T) {
	wl := newTestRessource(&stubService{}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.confirm).
		Get("/confirm").
		Query("token", "sometoken").
		Expect(t).
		Body(`{"success":true,"message":"Email confirmed successfully! Welcome to LeadChoose."}`).
		Status(http.StatusOK).
		End()
}

func TestConfirmMissingToken(t *testing.T) {
	wl := newTestRessource(&stubService{}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.confirm).
		Get("/confirm").
		Expect(t).
		Body(`{"success":false,"message":"Invalid confirmation token"}`).
		Status(http.StatusBadRequest).
		End()
}

func TestConfirmUnknownToken(t *testing.T) {
	wl := newTestRessource(&stubService{confirmErr: svc.ErrEntityDoesNotExist}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.confirm).
		Get("/confirm").
		Query("token", "unknown").
		Expect(t).
		Body(`{"success":false,"message":"Invalid or expired confirmation token. Please sign up again."}`).
		Status(http.StatusBadRequest).
		End()
}

func TestCleanup(t *testing.T) {
	wl := newTestRessource(&stubService{removed: 3}, &stubMailer{})
	apitest.New().
		HandlerFunc(wl.cleanup).
		Post("/cleanup").
		Expect(t).
		Body(`{"success":true,"message":"Successfully cleaned up expired entries"}`).
		Status(http.StatusOK).
		End()
}

func TestTestEmailFallsBackToOperatorAddress(t *testing.T) {
	mailer := &stubMailer{}
	wl := newTestRessource(&stubService{}, mailer)
	apitest.New().
		HandlerFunc(wl.testEmail).
		Post("/test-email").
		Expect(t).
		Body(`{"success":true,"message":"Test email sent to demo@leadchoose.com. Please check your inbox."}`).
		Status(http.StatusOK).
		End()
	if len(mailer.sent) != 1 || mailer.sent[0] != "demo@leadchoose.com" {
		t.Fatalf("expected test mail to operator address, got %v", mailer.sent)
	}
}
