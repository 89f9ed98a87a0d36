package auth

import (
	"testing"
	"time"

	"github.com/DragonsUnit/AeroCommerce/pkg/config"
	"github.com/DragonsUnit/AeroCommerce/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "aerocommerce-test",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)
	return issuer
}

func TestMintAndParse(t *testing.T) {
	issuer := testIssuer(t)
	userID := uuid.New()

	token, accessID, err := issuer.Mint(userID, "buyer@example.com", enums.MembershipPlanPlus)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, accessID)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, enums.MembershipPlanPlus, claims.Plan)
	assert.Equal(t, accessID, claims.ID)
	assert.Equal(t, "aerocommerce-test", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := testIssuer(t)
	other, err := NewTokenIssuer(config.JWTConfig{
		Secret:            "a-completely-different-secret-value",
		Issuer:            "aerocommerce-test",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)

	token, _, err := issuer.Mint(uuid.New(), "buyer@example.com", enums.MembershipPlanFree)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	issuer := testIssuer(t)
	other, err := NewTokenIssuer(config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "someone-else",
		ExpirationMinutes: 15,
	})
	require.NoError(t, err)

	token, _, err := other.Mint(uuid.New(), "buyer@example.com", enums.MembershipPlanFree)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := testIssuer(t)
	_, err := issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuerValidation(t *testing.T) {
	_, err := NewTokenIssuer(config.JWTConfig{Issuer: "x", ExpirationMinutes: 5})
	assert.Error(t, err)

	_, err = NewTokenIssuer(config.JWTConfig{Secret: "x", Issuer: "x"})
	assert.Error(t, err)
}

func TestLifetime(t *testing.T) {
	issuer := testIssuer(t)
	assert.Equal(t, 15*time.Minute, issuer.Lifetime())
}
