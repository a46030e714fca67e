package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmailSintetico(t *testing.T) {
	tenant := uuid.MustParse("6f1c2a8e-0d7b-4c55-9a3e-2a1b3c4d5e6f")

	assert.Equal(t, "1155550000@tenant6f1c2a8e-0d7b-4c55-9a3e-2a1b3c4d5e6f.local", EmailSintetico(tenant, ptr(" 1155550000 ")))

	sinTelefono := EmailSintetico(tenant, nil)
	local, dominio, ok := strings.Cut(sinTelefono, "@")
	assert.True(t, ok)
	_, err := uuid.Parse(local)
	assert.NoError(t, err, "sin telefono se genera un uuid")
	assert.Equal(t, "tenant"+tenant.String()+".local", dominio)

	assert.NotEqual(t, sinTelefono, EmailSintetico(tenant, ptr("")), "cada walk-in sin telefono es distinto")
}

func TestEsEmailSintetico(t *testing.T) {
	cases := map[string]bool{
		EmailSintetico(uuid.New(), ptr("123")): true,
		"ana@example.com":                      false,
		"tenant.local":                         false,
		"x@tenantfoo.com":                      false,
	}
	for email, want := range cases {
		assert.Equal(t, want, EsEmailSintetico(email), email)
	}
}
