package mailing

import (
	"errors"
	"html/template"
	"os"
	"testing"
	"time"

	"github.com/go-mail/mail"
	"github.com/leadchoose/waitlistd/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type stubDialer struct {
	failures int
	calls    int
}

func (s *stubDialer) DialAndSend(m ...*mail.Message) error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("dial tcp: connection refused")
	}
	return nil
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		SMTP: &config.SMTPConfiguration{
			Enabled:     true,
			Address:     "no-reply@leadchoose.com",
			DisplayName: "LeadChoose",
		},
		Behaviour: &config.BehaviourConfiguration{
			Name:            "LeadChoose",
			Site:            "https://leadchoose.com",
			ServiceDomain:   "https://app.leadchoose.com",
			OperatorAddress: "demo@leadchoose.com",
		},
	}
}

func testTemplate(t *testing.T) *template.Template {
	tmpl, err := template.ParseFS(os.DirFS("../templates/email"), "template.html")
	if err != nil {
		t.Fatalf("unable to parse email template: %s", err)
	}
	return tmpl
}

func testMailer(t *testing.T, client *stubDialer) *Mailer {
	return &Mailer{
		client:        client,
		log:           zaptest.NewLogger(t),
		cfg:           testConfig(),
		emailTemplate: testTemplate(t),
		retryDelay:    time.Millisecond,
	}
}

func TestSendConfirmationMailSingleAttempt(t *testing.T) {
	assert := assert.New(t)
	client := &stubDialer{}
	m := testMailer(t, client)
	err := m.SendConfirmationMail("test@example.com", "test", "deadbeef")
	assert.Nil(err)
	assert.Equal(1, client.calls)
}

func TestSendRetriesAfterTransportFailure(t *testing.T) {
	assert := assert.New(t)
	client := &stubDialer{failures: 2}
	m := testMailer(t, client)
	err := m.SendConfirmationMail("test@example.com", "test", "deadbeef")
	assert.Nil(err)
	assert.Equal(3, client.calls)
}

func TestSendGivesUpAfterThreeAttempts(t *testing.T) {
	assert := assert.New(t)
	client := &stubDialer{failures: 100}
	m := testMailer(t, client)
	err := m.SendConfirmationMail("test@example.com", "test", "deadbeef")
	assert.ErrorIs(err, ErrDeliveryFailed)
	assert.Equal(3, client.calls)
}

func TestSendWaitlistWelcomeMail(t *testing.T) {
	assert := assert.New(t)
	client := &stubDialer{}
	m := testMailer(t, client)
	err := m.SendWaitlistWelcomeMail("test@example.com", "test")
	assert.Nil(err)
	assert.Equal(1, client.calls)
}

func TestSendDemoNotificationMailWithoutOperatorAddress(t *testing.T) {
	assert := assert.New(t)
	client := &stubDialer{}
	m := testMailer(t, client)
	m.cfg.Behaviour.OperatorAddress = ""
	err := m.SendDemoNotificationMail("test", "test@example.com", nil, nil)
	assert.Nil(err)
	assert.Equal(0, client.calls)
}

func TestNoopMailerSkipsDelivery(t *testing.T) {
	assert := assert.New(t)
	client := &stubDialer{}
	m := testMailer(t, client)
	m.noop = true
	err := m.SendConfirmationMail("test@example.com", "test", "deadbeef")
	assert.Nil(err)
	assert.Equal(0, client.calls)
}
