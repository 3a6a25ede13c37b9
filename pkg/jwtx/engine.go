package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Temp tokens only bridge the gap between a successful
// challenge and the two-factor step, so they are the shortest lived.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	DefaultTempTokenTTL    = 5 * time.Minute
)

var (
	ErrTokenInvalid = errors.New("jwtx: invalid token")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Claims is the signed content of every token the service issues:
// issuer, subject user id and the issue/expiry instants. Authorization
// beyond "this is user X" is decided against the live user record,
// never from the token.
type Claims struct {
	jwt.RegisteredClaims

	// User is the authenticated user's id.
	User string `json:"user"`
}

// Policy is the signing secret and lifetime for one token class.
type Policy struct {
	Secret []byte
	TTL    time.Duration
}

// Engine issues and verifies the three token classes. Each class has its
// own HMAC secret so a leaked secret compromises exactly one class and a
// token minted for one purpose can never verify as another.
//
// The Engine is immutable configuration: construct it once at startup and
// share it across requests.
type Engine struct {
	Issuer  string
	Access  Policy
	Refresh Policy
	Temp    Policy

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// Validate checks the engine is usable: all secrets present, all TTLs
// positive, and temp < access < refresh as lifetimes.
func (e *Engine) Validate() error {
	for _, p := range []struct {
		name   string
		policy Policy
	}{
		{"access", e.Access},
		{"refresh", e.Refresh},
		{"temp", e.Temp},
	} {
		if len(p.policy.Secret) == 0 {
			return fmt.Errorf("jwtx: %s secret is empty", p.name)
		}
		if p.policy.TTL <= 0 {
			return fmt.Errorf("jwtx: %s TTL must be positive", p.name)
		}
	}
	if e.Temp.TTL >= e.Access.TTL || e.Access.TTL >= e.Refresh.TTL {
		return errors.New("jwtx: TTLs must satisfy temp < access < refresh")
	}
	return nil
}

// IssueAccess signs a short-lived access token for the user.
func (e *Engine) IssueAccess(userID string) (string, error) {
	return e.issue(e.Access, userID)
}

// IssueRefresh signs a long-lived refresh token for the user.
func (e *Engine) IssueRefresh(userID string) (string, error) {
	return e.issue(e.Refresh, userID)
}

// IssueTemp signs a temporary token proving "challenge passed, two-factor
// pending". It is valid only to complete the two-factor step.
func (e *Engine) IssueTemp(userID string) (string, error) {
	return e.issue(e.Temp, userID)
}

// VerifyAccess validates an access token. It soft-fails: any problem
// (signature, expiry, wrong class) yields ok=false, never an error,
// so callers can distinguish "unauthenticated" from "server error".
func (e *Engine) VerifyAccess(token string) (Claims, bool) {
	claims, err := e.verify(e.Access, token)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}

// VerifyRefresh validates a refresh token. It hard-fails with
// ErrTokenExpired or ErrTokenInvalid; refresh starts a privileged flow
// and there is no softer outcome meaningful to the caller.
func (e *Engine) VerifyRefresh(token string) (Claims, error) {
	return e.verify(e.Refresh, token)
}

// VerifyTemp validates a temporary token with the same hard-fail contract
// as VerifyRefresh.
func (e *Engine) VerifyTemp(token string) (Claims, error) {
	return e.verify(e.Temp, token)
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) issue(p Policy, userID string) (string, error) {
	if userID == "" {
		return "", errors.New("jwtx: user id is empty")
	}

	// NumericDate marshals with whole-second precision (JWT convention).
	now := e.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    e.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.TTL)),
		},
		User: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}
	return signed, nil
}

func (e *Engine) verify(p Policy, token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return p.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(e.Issuer),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(e.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if claims.User == "" {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
