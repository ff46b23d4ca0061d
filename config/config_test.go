package config

import (
	"encoding/base64"
	"testing"

	"aidanwoods.dev/go-paseto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setKeyEnv(t *testing.T) {
	t.Helper()

	secretKey := paseto.NewV4AsymmetricSecretKey()
	publicKey := secretKey.Public()

	t.Setenv("PASETO_PRIVATE_KEY", base64.StdEncoding.EncodeToString(secretKey.ExportBytes()))
	t.Setenv("PASETO_PUBLIC_KEY", base64.StdEncoding.EncodeToString(publicKey.ExportBytes()))
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	setKeyEnv(t)

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "archetype", cfg.Database.DBName)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.GeminiModel)
	assert.Equal(t, "whisper-large-v3-turbo", cfg.AI.GroqModel)
	assert.False(t, cfg.Storage.Enabled)
	assert.NotEmpty(t, cfg.Security.SecretKey)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWithOptions_MissingKeys(t *testing.T) {
	t.Setenv("PASETO_PRIVATE_KEY", "")
	t.Setenv("PASETO_PUBLIC_KEY", "")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASETO_PRIVATE_KEY")
}

func TestLoadWithOptions_InvalidKey(t *testing.T) {
	t.Setenv("PASETO_PRIVATE_KEY", "not-base64!!!")
	t.Setenv("PASETO_PUBLIC_KEY", "not-base64!!!")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
}

func TestAdminEmails(t *testing.T) {
	setKeyEnv(t)
	t.Setenv("ADMIN_EMAILS", "Admin@Example.com , second@example.com,")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"admin@example.com", "second@example.com"}, cfg.AdminEmails)
	assert.True(t, cfg.IsAdminEmail("admin@example.com"))
	assert.True(t, cfg.IsAdminEmail("ADMIN@example.com"))
	assert.False(t, cfg.IsAdminEmail("nobody@example.com"))
}

func TestStorageEnabled(t *testing.T) {
	setKeyEnv(t)
	t.Setenv("S3_BUCKET", "archetype-media")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "archetype-media", cfg.Storage.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Storage.Region)
}
