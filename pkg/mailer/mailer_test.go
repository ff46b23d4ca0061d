package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "user",
		SMTPPassword: "pass",
		FromEmail:    "studio@example.com",
		FromName:     "Archetype",
		AppBaseURL:   "https://app.example.com",
	}
}

func TestSMTPMailer_TestMode(t *testing.T) {
	m := NewTestSMTPMailer(testConfig())

	require.NoError(t, m.SendMagicCode("op@example.com", "123456"))
	require.NoError(t, m.SendShowroomInvite("client@example.com", "Acme", "https://app.example.com/showroom/tok"))
	require.NoError(t, m.SendInterestNotification("op@example.com", InterestNotification{
		ClientEmail:  "client@example.com",
		ClientPhone:  "+33600000000",
		Message:      "Looks great",
		CompanyName:  "Acme",
		ActionType:   "signed",
		DesignTitle:  "Minimal",
		FinalPrice:   1275,
		DiscountUsed: true,
	}))
	require.NoError(t, m.SendSelectionConfirmation("client@example.com", "Minimal", "quote_request", 1500))
}

func TestSMTPMailer_InvalidRecipient(t *testing.T) {
	m := NewTestSMTPMailer(testConfig())

	err := m.SendMagicCode("not-an-email", "123456")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "recipient")
}

func TestSMTPMailer_CreateClient(t *testing.T) {
	m := NewSMTPMailer(testConfig())
	client, err := m.createSMTPClient()
	require.NoError(t, err)
	assert.NotNil(t, client)

	// Without credentials the client is still created (unauthenticated relay)
	cfg := testConfig()
	cfg.SMTPUsername = ""
	cfg.SMTPPassword = ""
	m = NewSMTPMailer(cfg)
	client, err = m.createSMTPClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestConsoleMailer(t *testing.T) {
	m := NewConsoleMailer()

	require.NoError(t, m.SendMagicCode("op@example.com", "123456"))
	require.NoError(t, m.SendShowroomInvite("client@example.com", "Acme", "https://app.example.com/showroom/tok"))
	require.NoError(t, m.SendInterestNotification("op@example.com", InterestNotification{}))
	require.NoError(t, m.SendSelectionConfirmation("client@example.com", "Minimal", "signed", 850))
}
