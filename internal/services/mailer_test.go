package services

import (
	"testing"

	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationEmailBody(t *testing.T) {
	m, err := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com"}, 3)
	require.NoError(t, err)

	body, err := m.render("4821")
	require.NoError(t, err)
	assert.Contains(t, body, "4821")
	assert.Contains(t, body, "3분간 유효합니다")
}
