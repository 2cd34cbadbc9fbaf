package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"payroll-api/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the token payload the dashboards decode: enough to render a
// profile without another round trip.
type Claims struct {
	UID         string  `json:"userId"`
	Role        string  `json:"role"`
	Email       string  `json:"email,omitempty"`
	Name        string  `json:"name,omitempty"`
	FixedSalary float64 `json:"fixedSalary,omitempty"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issue signs an HS256 token for u valid for the configured TTL.
func (j *JWTer) Issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:         u.ID,
		Role:        u.Role.String(),
		Email:       u.Email,
		Name:        u.Name,
		FixedSalary: u.FixedSalary,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// Parse verifies tokenStr and returns its claims. A token past its expiry is
// rejected outright; there is no refresh path and no partial trust.
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}
