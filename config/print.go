package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	FprintConfig(os.Stdout, cfg)
}

func FprintConfig(w io.Writer, cfg *Config) {
	var b strings.Builder

	b.WriteString("Configuration:\n")
	fmt.Fprintf(&b, "  mode: %s\n", cfg.Mode)
	fmt.Fprintf(&b, "  database: %s@%s:%s/%s (pool %d..%d)\n",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database,
		cfg.Database.MinConns, cfg.Database.MaxConns)
	fmt.Fprintf(&b, "  rabbitmq: enabled=%t %s@%s:%s\n",
		cfg.RabbitMQ.Enabled, cfg.RabbitMQ.User, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	fmt.Fprintf(&b, "  http: port=%s static=%s\n", cfg.HTTP.Port, cfg.HTTP.StaticDir)
	fmt.Fprintf(&b, "  admin: user=%s password=%s\n", cfg.Admin.Username, mask(cfg.Admin.Password+cfg.Admin.PasswordHash))
	fmt.Fprintf(&b, "  ticket: ttl=%s secret=%s\n", cfg.Ticket.TTL, mask(cfg.Ticket.Secret))
	fmt.Fprintf(&b, "  log: level=%s\n", cfg.Log.Level)

	fmt.Fprint(w, b.String())
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "********"
}
