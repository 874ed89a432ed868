package config

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// ServerConfiguration contains the http server settings
type ServerConfiguration struct {
	Port     int
	ProdPort int `mapstructure:"prod-port"`
	Address  string
}

// ListenPort returns the port the server binds to,
// prod-port wins when LC_ENV=production is set
func (s *ServerConfiguration) ListenPort() int {
	if os.Getenv("LC_ENV") == "production" && s.ProdPort > 0 {
		return s.ProdPort
	}
	return s.Port
}

// SMTPConfiguration contains the email relay settings
type SMTPConfiguration struct {
	Enabled  bool `mapstructure:"enable"`
	Host     string
	Port     int
	Username string
	Password string `json:"-"`
	// DisplayName will be displayed as email sender
	DisplayName string `mapstructure:"display-name"`
	// Address is the sender address
	Address string
}

// DatabaseConfiguration contains the settings required to connect to a database
type DatabaseConfiguration struct {
	Type string
	DSN  string `json:"-"`
}

// BehaviourConfiguration configures how the waitlist behaves
type BehaviourConfiguration struct {
	// Name of the product, used in email copy
	Name string
	// Site is where unknown routes redirect to
	Site string
	// ServiceDomain is the base url confirmation links are built from
	ServiceDomain string `mapstructure:"service-domain"`
	// OperatorAddress receives the internal demo request notifications
	OperatorAddress string `mapstructure:"operator-address"`
	// DefaultCompany is stored for quick signups that carry no company
	DefaultCompany string        `mapstructure:"default-company"`
	PendingTTL     time.Duration `mapstructure:"pending-ttl"`
	SweepInterval  time.Duration `mapstructure:"sweep-interval"`
}

// FileSystems contains the used file systems
type FileSystems struct {
	Email fs.FS
}

// Configuration habours the entire waitlistd configuration
type Configuration struct {
	Server    *ServerConfiguration    `mapstructure:"server"`
	SMTP      *SMTPConfiguration      `mapstructure:"smtp"`
	Database  *DatabaseConfiguration  `mapstructure:"database"`
	Behaviour *BehaviourConfiguration `mapstructure:"behaviour"`
}

// Validate does some basic validation of the config file and tries to be helpful on missconfiguration
func (c *Configuration) Validate() error {
	if c.Database == nil {
		return errors.New("no database configuration found")
	}
	if c.Database.Type == "" || c.Database.DSN == "" {
		return errors.New("database.type and database.dsn are required")
	}
	if c.SMTP == nil {
		return errors.New("no SMTP configuration found")
	}
	if c.SMTP.Enabled {
		if c.SMTP.Host == "" {
			return errors.New("smtp.enable requires smtp.host to be set")
		}
		if c.SMTP.Address == "" {
			return errors.New("smtp.enable requires a sender smtp.address")
		}
	}
	if c.Behaviour == nil {
		return errors.New("no behaviour configuration found")
	}
	if c.Behaviour.ServiceDomain == "" {
		return errors.New(
			"behaviour.service-domain is required, confirmation links can not be built without it",
		)
	}
	if c.Behaviour.PendingTTL <= 0 {
		return errors.New("behaviour.pending-ttl needs to be a positive duration")
	}
	if c.Server == nil {
		return errors.New("no server configuration found")
	}
	return nil
}

// DebugMode returns true if the LC_DEBUG_MODE variable is set
func (*Configuration) DebugMode() bool {
	if r := os.Getenv("LC_DEBUG_MODE"); r == "true" {
		return true
	}
	return false
}
