package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	id := Identity{UserID: "u-1", Role: "vendedor", StoreID: "s-1"}
	tok, err := Generate(secret, "textil-api", id, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(secret, "textil-api", Identity{UserID: "u-1", Role: "admin"}, -1)
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(secret, "textil-api", Identity{UserID: "u-1", Role: "admin"}, 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "textil-api", Identity{UserID: "u-1"}, 60)
	assert.Error(t, err)
}
