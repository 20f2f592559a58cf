package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/Temutjin2k/geo-attendance/pkg/configparser"
)

// Flags
var (
	modeFlag = flag.String("mode", "", "application mode")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrNoAdminPassword = errors.New("admin password or password hash must be set")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode

		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		HTTP     HTTPConfig
		Admin    AdminConfig
		Ticket   TicketConfig
		Log      LogConfig
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"attendance_user"`
		Password string `env:"DATABASE_PASSWORD" default:"attendance_pass"`
		Database string `env:"DATABASE_DATABASE" default:"attendance_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED" default:"false"`
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	HTTPConfig struct {
		Port      string `env:"HTTP_PORT" default:"7860"`
		StaticDir string `env:"HTTP_STATIC_DIR" default:"web/static"`
	}

	// AdminConfig holds Basic auth credentials for the lecturer pages.
	// PasswordHash is a bcrypt hash and takes precedence over Password.
	AdminConfig struct {
		Username     string `env:"ADMIN_USERNAME" default:"radmin"`
		Password     string `env:"ADMIN_PASSWORD"`
		PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	}

	TicketConfig struct {
		Secret string        `env:"TICKET_SECRET" default:"attendance_secret_v1"`
		TTL    time.Duration `env:"TICKET_TTL" default:"30m"`
	}

	LogConfig struct {
		Level string `env:"LOG_LEVEL" default:"DEBUG"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)

	return nil
}

func (c *Config) validate() error {
	if c.Mode == types.AttendanceService && c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return ErrNoAdminPassword
	}
	return nil
}

func (c DatabaseConfig) PoolLimits() (int32, int32, time.Duration, time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}
