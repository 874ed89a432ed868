package mailing

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"html/template"

	"github.com/go-mail/mail"
	"github.com/jaytaylor/html2text"
	"github.com/leadchoose/waitlistd/config"
	"go.uber.org/zap"
)

// sendAttempts is the total amount of delivery attempts per message
const sendAttempts = 3

// ErrDeliveryFailed is returned once all delivery attempts have been used up
var ErrDeliveryFailed = errors.New("failed to send email after multiple attempts")

// dialer is the transport the mailer delivers through, satisfied by *mail.Dialer
type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type detailRow struct {
	Label string
	Value string
}

type Mailer struct {
	noop          bool
	client        dialer
	log           *zap.Logger
	cfg           *config.Configuration
	emailTemplate *template.Template
	retryDelay    time.Duration
}

func (m *Mailer) baseModel(title string, message string) map[string]interface{} {
	b := make(map[string]interface{})
	b["service_name"] = m.cfg.Behaviour.Name
	b["date"] = time.Now().Format("2006-01-02 15:04")
	b["site"] = m.cfg.Behaviour.Site
	b["title"] = title
	b["message"] = message
	return b
}

// SendConfirmationMail delivers the double-opt-in mail carrying the confirmation link
func (m *Mailer) SendConfirmationMail(email string, name string, token string) error {
	if m.noop {
		m.log.Info("skipping email `Confirmation` because noop is configured", zap.String("token", token))
		return nil
	}
	subject := fmt.Sprintf("Welcome to %s - Please Confirm Your Email", m.cfg.Behaviour.Name)
	base := m.baseModel(
		fmt.Sprintf("Welcome to %s!", m.cfg.Behaviour.Name),
		"Thank you for joining our waitlist! We're excited to have you on board. Please confirm your email address to secure your spot.",
	)
	base["name"] = name
	base["link"] = fmt.Sprintf("%s/confirm?token=%s", m.cfg.Behaviour.ServiceDomain, token)
	base["link_text"] = "Confirm Email"
	base["link_hint"] = "Or copy and paste this link into your browser:"
	return m.send(email, subject, base)
}

// SendDemoRequestMail acknowledges a demo request towards the requester
func (m *Mailer) SendDemoRequestMail(email string, name string) error {
	if m.noop {
		m.log.Info("skipping email `DemoRequest` because noop is configured")
		return nil
	}
	subject := fmt.Sprintf("%s Demo Request Received", m.cfg.Behaviour.Name)
	base := m.baseModel(
		"Thank You for Your Interest!",
		fmt.Sprintf("Thank you for requesting a demo of %s. Our team will review your request and reach out within 24 hours to schedule your personalized demo.", m.cfg.Behaviour.Name),
	)
	base["name"] = name
	return m.send(email, subject, base)
}

// SendWelcomeMail delivers the generic welcome mail
func (m *Mailer) SendWelcomeMail(email string, name string) error {
	if m.noop {
		m.log.Info("skipping email `Welcome` because noop is configured")
		return nil
	}
	subject := fmt.Sprintf("Welcome to %s!", m.cfg.Behaviour.Name)
	base := m.baseModel(
		fmt.Sprintf("Welcome to the %s Family!", m.cfg.Behaviour.Name),
		"We're thrilled to have you join our community of successful real estate professionals. Complete your profile, import your first leads and explore the automation features.",
	)
	base["name"] = name
	return m.send(email, subject, base)
}

// SendNewsletterMail delivers a newsletter issue with the supplied content
func (m *Mailer) SendNewsletterMail(email string, name string, content string) error {
	if m.noop {
		m.log.Info("skipping email `Newsletter` because noop is configured")
		return nil
	}
	subject := fmt.Sprintf("%s Newsletter", m.cfg.Behaviour.Name)
	base := m.baseModel(fmt.Sprintf("%s Newsletter", m.cfg.Behaviour.Name), content)
	base["name"] = name
	base["footnote"] = "Stay tuned for more updates and tips on maximizing your real estate success!"
	return m.send(email, subject, base)
}

// SendPasswordResetMail delivers the password reset link
func (m *Mailer) SendPasswordResetMail(email string, name string, token string) error {
	if m.noop {
		m.log.Info("skipping email `PasswordReset` because noop is configured", zap.String("token", token))
		return nil
	}
	subject := fmt.Sprintf("Reset Your %s Password", m.cfg.Behaviour.Name)
	base := m.baseModel(
		"Reset Your Password",
		"We received a request to reset your password. Use the link below to create a new one. If you didn't request this change, please ignore this email or contact support.",
	)
	base["name"] = name
	base["link"] = fmt.Sprintf("%s/reset-password?token=%s", m.cfg.Behaviour.ServiceDomain, token)
	base["link_text"] = "Reset Password"
	base["link_hint"] = "Or copy and paste this link into your browser:"
	return m.send(email, subject, base)
}

// SendWaitlistWelcomeMail delivers the welcome mail after a successful confirmation
func (m *Mailer) SendWaitlistWelcomeMail(email string, name string) error {
	if m.noop {
		m.log.Info("skipping email `WaitlistWelcome` because noop is configured")
		return nil
	}
	subject := fmt.Sprintf("You're In! Welcome to the %s Waitlist", m.cfg.Behaviour.Name)
	base := m.baseModel(
		fmt.Sprintf("You're In! Welcome to the %s Waitlist", m.cfg.Behaviour.Name),
		fmt.Sprintf("Thanks for signing up! You're now officially on the %s waitlist. We're building a platform that automates lead nurturing across Email, SMS and Voice so you can focus on closing deals.", m.cfg.Behaviour.Name),
	)
	base["name"] = name
	base["benefits"] = []string{
		"Priority Access to our private beta",
		fmt.Sprintf("Free use of %s during the initial launch", m.cfg.Behaviour.Name),
		"50% lifetime discount as a founding user",
	}
	if m.cfg.Behaviour.Site != "" {
		base["link"] = m.cfg.Behaviour.Site
		base["link_text"] = fmt.Sprintf("Learn More About %s", m.cfg.Behaviour.Name)
	}
	return m.send(email, subject, base)
}

// SendDemoNotificationMail informs the operator address about a demo request submission
func (m *Mailer) SendDemoNotificationMail(name string, email string, company *string, message *string) error {
	if m.cfg.Behaviour.OperatorAddress == "" {
		m.log.Warn("no operator address configured, dropping demo notification")
		return nil
	}
	if m.noop {
		m.log.Info("skipping email `DemoNotification` because noop is configured")
		return nil
	}
	notAvailable := func(s *string) string {
		if s == nil || *s == "" {
			return "N/A"
		}
		return *s
	}
	base := m.baseModel(
		"New Request Demo Submission",
		"A new demo request has been submitted through the website.",
	)
	base["details"] = []detailRow{
		{Label: "Name", Value: name},
		{Label: "Email", Value: email},
		{Label: "Company", Value: notAvailable(company)},
		{Label: "Message", Value: notAvailable(message)},
	}
	return m.send(m.cfg.Behaviour.OperatorAddress, "New Request Demo Submission", base)
}

// SendTestEmail sends a canned mail to verify the smtp settings
func (m *Mailer) SendTestEmail(email string) error {
	base := m.baseModel("This is a test", "hey your email configuration seems to be fine.")
	return m.send(email, "Your test email is here!", base)
}

func (m *Mailer) send(email string, subject string, viewModel map[string]interface{}) error {
	buffer := new(strings.Builder)
	err := m.emailTemplate.Execute(buffer, viewModel)
	if err != nil {
		return err
	}
	html := buffer.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.SMTP.Address, m.cfg.SMTP.DisplayName)
	msg.SetAddressHeader("To", email, "")
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	for attempt := 1; attempt <= sendAttempts; attempt++ {
		err = m.client.DialAndSend(msg)
		if err == nil {
			return nil
		}
		m.log.Warn("email delivery attempt failed",
			zap.Int("attempt", attempt),
			zap.String("subject", subject),
			zap.Error(err))
		if attempt < sendAttempts {
			time.Sleep(m.retryDelay)
		}
	}
	m.log.Error("giving up on email delivery",
		zap.Int("attempts", sendAttempts),
		zap.String("subject", subject))
	return ErrDeliveryFailed
}

func NewMailer(
	log *zap.Logger,
	cfg *config.Configuration,
	files fs.FS,
) (*Mailer, error) {
	t, err := template.ParseFS(files, "template.html")
	if err != nil {
		return nil, err
	}
	s := &Mailer{
		noop:          !cfg.SMTP.Enabled,
		log:           log,
		emailTemplate: t,
		cfg:           cfg,
		retryDelay:    time.Second,
	}
	if !s.noop {
		s.client = mail.NewDialer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}
	return s, nil
}

func NewNoOpMailer() *Mailer {
	s := &Mailer{
		noop: true,
		log:  zap.NewNop(),
	}
	return s
}
