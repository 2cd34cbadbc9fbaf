package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"payroll-api/internal/domain"
)

func newTestJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "payroll-test", TTL: ttl}
}

func testUser() *domain.User {
	return &domain.User{
		ID:          "u-1",
		Email:       "olena@example.com",
		Name:        "Olena",
		Role:        domain.RoleAccountant,
		FixedSalary: 18000,
	}
}

func TestIssueParseRoundtrip(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UID)
	require.Equal(t, "accountant", claims.Role)
	require.Equal(t, "olena@example.com", claims.Email)
	require.Equal(t, "Olena", claims.Name)
	require.Equal(t, 18000.0, claims.FixedSalary)
}

func TestParseExpired(t *testing.T) {
	t.Parallel()

	// Negative TTL puts exp in the past; the role claim must not matter.
	j := newTestJWTer(-time.Minute)
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseTampered(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	_, err = j.Parse(tok + "x")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "payroll-test", TTL: time.Hour}
	_, err = other.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongIssuer(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(time.Hour)
	tok, err := j.Issue(testUser())
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = other.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
