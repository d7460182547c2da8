package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// RoleAdmin represents admin role
// RoleUser represents user role
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Claims represents the authorization claims transmitted via a JWT
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// NewClaims constructs a Claims value for the identified user
func NewClaims(subject string, roles []string, now time.Time, expires time.Duration) *Claims {
	return &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expires)),
		},
	}
}

// HasRole returns true if the claims has at least one of the provided roles.
func (c *Claims) HasRole(roles ...string) bool {
	for _, has := range c.Roles {
		for _, want := range roles {
			if has == want {
				return true
			}
		}
	}
	return false
}

// Authenticator is used to sign and verify access tokens
type Authenticator struct {
	secret    []byte
	algorithm string
	JWTConfig echojwt.Config
}

// NewAuthenticator creates an *Authenticator for use
func NewAuthenticator(secret, algorithm string) (*Authenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth secret is not specified")
	}
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	if jwt.GetSigningMethod(algorithm) == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}

	a := &Authenticator{
		secret:    []byte(secret),
		algorithm: algorithm,
	}
	a.JWTConfig = echojwt.Config{
		SigningKey:    a.secret,
		SigningMethod: algorithm,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
	}

	return a, nil
}

// GenerateToken signs claims into a token string
func (a *Authenticator) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.algorithm)

	token, err := jwt.NewWithClaims(method, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("can't sign token: %w", err)
	}

	return token, nil
}

// ParseClaims extracts the Claims of a signed token string
func (a *Authenticator) ParseClaims(tokenString string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != a.algorithm {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
