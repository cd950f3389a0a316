package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		PublicChannelID:   "C0PUBLIC",
		InternalChannelID: "C0INTERNAL",
		RotationRule:      "FREQ=WEEKLY;BYDAY=MO",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		PublicChannelID:   "C0PUBLIC",
		InternalChannelID: "C0INTERNAL",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		PublicChannelID: "C0PUBLIC",
		// Missing InternalChannelID
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRotationRule(t *testing.T) {
	cfg := &Config{
		PublicChannelID:   "C0PUBLIC",
		InternalChannelID: "C0INTERNAL",
		RotationRule:      "EVERY=MONDAY",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rotationRule")
}

func TestLoadFromPath(t *testing.T) {
	content := `publicChannelID: C0PUBLIC
internalChannelID: C0INTERNAL
rotationRule: FREQ=WEEKLY;BYDAY=WE
`
	path := filepath.Join(t.TempDir(), "chief_rota_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "C0PUBLIC", cfg.PublicChannelID)
	assert.Equal(t, "C0INTERNAL", cfg.InternalChannelID)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=WE", cfg.RotationRule)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
