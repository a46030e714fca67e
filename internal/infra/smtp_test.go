package infra

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"comanda/internal/config"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_SendRecibo(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "smtp.local", SMTPPort: 2525, SMTPUser: "recibos@local"}, nil)
	var got *email.Email
	var addr string
	m.send = func(e *email.Email, a string, _ smtp.Auth) error {
		got, addr = e, a
		return nil
	}

	require.NoError(t, m.SendRecibo("ana@example.com", "Tu recibo", "Gracias", ""))
	assert.Equal(t, "smtp.local:2525", addr)
	assert.Equal(t, []string{"ana@example.com"}, got.To)
	assert.Equal(t, "recibos@local", got.From)
	assert.True(t, m.Configured())
}

func TestMailer_BreakerOpensOnRelayFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Hour})
	m := NewMailer(&config.Config{SMTPHost: "smtp.local", SMTPPort: 25}, cb)
	calls := 0
	m.send = func(*email.Email, string, smtp.Auth) error {
		calls++
		return errors.New("connection refused")
	}

	for i := 0; i < 2; i++ {
		assert.Error(t, m.SendRecibo("a@b.c", "s", "b", ""))
	}
	assert.ErrorIs(t, m.SendRecibo("a@b.c", "s", "b", ""), ErrCircuitOpen)
	assert.Equal(t, 2, calls)
}

func TestMailer_MissingAttachment(t *testing.T) {
	m := NewMailer(&config.Config{}, nil)
	m.send = func(*email.Email, string, smtp.Auth) error { return nil }

	err := m.SendRecibo("a@b.c", "s", "b", "/no/existe.pdf")
	assert.Error(t, err)
	assert.False(t, m.Configured())
}
