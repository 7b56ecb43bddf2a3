package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigRetentionDays(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		LoadConfig()
		assert.Equal(t, 180, AuditRetentionDays)
	})

	t.Run("valid value", func(t *testing.T) {
		t.Setenv("AUDIT_RETENTION_DAYS", "30")
		LoadConfig()
		assert.Equal(t, 30, AuditRetentionDays)
	})

	t.Run("malformed value falls back to the default", func(t *testing.T) {
		t.Setenv("AUDIT_RETENTION_DAYS", "thirty")
		LoadConfig()
		assert.Equal(t, 180, AuditRetentionDays)
	})
}
