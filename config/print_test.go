package config

import (
	"bytes"
	"testing"

	"github.com/Temutjin2k/geo-attendance/internal/domain/types"
	"github.com/stretchr/testify/assert"
)

func TestFprintConfig_MasksSecrets(t *testing.T) {
	cfg := &Config{
		Mode:   types.AttendanceService,
		Admin:  AdminConfig{Username: "radmin", Password: "radmin@radmin"},
		Ticket: TicketConfig{Secret: "top-secret"},
	}

	var buf bytes.Buffer
	FprintConfig(&buf, cfg)

	out := buf.String()
	assert.Contains(t, out, "mode: attendance-service")
	assert.Contains(t, out, "user=radmin")
	assert.NotContains(t, out, "radmin@radmin")
	assert.NotContains(t, out, "top-secret")
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "5432", Database: "d"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", c.GetDSN())
}

func TestValidate_RequiresAdminSecret(t *testing.T) {
	cfg := &Config{Mode: types.AttendanceService}
	assert.ErrorIs(t, cfg.validate(), ErrNoAdminPassword)

	cfg.Admin.PasswordHash = "$2a$10$abc"
	assert.NoError(t, cfg.validate())
}
