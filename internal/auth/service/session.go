package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pengkiwi/pengauth/internal/auth/domain"
	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/pkg/jwtx"
)

// SigninResult is the outcome of a successful challenge proof. When the
// account has two-factor enabled only TempToken is set and the caller must
// follow up with VerifyTwoFactor.
type SigninResult struct {
	User              domain.User
	Tokens            domain.TokenPair
	TempToken         string
	TwoFactorRequired bool
}

type SessionService struct {
	Store     store.Store
	Tokens    *jwtx.Engine
	TwoFactor *TwoFactorService
}

// Signin consumes the presented challenge and, on a valid proof, issues
// tokens. The consume is a compare-and-swap in the store, so a replayed or
// concurrent proof of the same challenge loses.
func (s *SessionService) Signin(ctx context.Context, username, challenge string) (SigninResult, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Distinct from a failed proof: the client must be able to tell
			// a bad identifier apart from a stale challenge.
			return SigninResult{}, ErrUnknownUser
		}
		return SigninResult{}, err
	}

	ok, err := s.Store.Users().ConsumeSigninChallenge(ctx, user.ID, challenge, uuid.NewString())
	if err != nil {
		return SigninResult{}, fmt.Errorf("consume signin challenge: %w", err)
	}
	if !ok {
		return SigninResult{}, ErrInvalidChallenge
	}

	if user.TwoFactorEnabled {
		// Pair is withheld until a code verifies; drop the checked flag so
		// the pending state is visible on the account.
		if err := s.Store.Users().SetTwoFactorChecked(ctx, user.ID, false); err != nil {
			return SigninResult{}, err
		}
		temp, err := s.Tokens.IssueTemp(user.ID)
		if err != nil {
			return SigninResult{}, fmt.Errorf("issue temp token: %w", err)
		}
		return SigninResult{User: user, TempToken: temp, TwoFactorRequired: true}, nil
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return SigninResult{}, err
	}
	return SigninResult{User: user, Tokens: pair}, nil
}

// VerifyTwoFactor trades a temp token plus a valid TOTP code for the full
// token pair that Signin withheld.
func (s *SessionService) VerifyTwoFactor(ctx context.Context, tempToken, code string) (SigninResult, error) {
	claims, err := s.Tokens.VerifyTemp(tempToken)
	if err != nil {
		return SigninResult{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.userForClaims(ctx, claims)
	if err != nil {
		return SigninResult{}, err
	}
	if !user.TwoFactorEnabled {
		return SigninResult{}, ErrTwoFactorNotEnabled
	}

	if err := s.TwoFactor.VerifyCode(user, code); err != nil {
		return SigninResult{}, err
	}

	if err := s.Store.Users().SetTwoFactorChecked(ctx, user.ID, true); err != nil {
		return SigninResult{}, err
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return SigninResult{}, err
	}
	return SigninResult{User: user, Tokens: pair}, nil
}

// Refresh exchanges a refresh token for a new pair. Refresh tokens are not
// rotated; the watermark is the only revocation primitive.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (SigninResult, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return SigninResult{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.userForClaims(ctx, claims)
	if err != nil {
		return SigninResult{}, err
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return SigninResult{}, err
	}
	return SigninResult{User: user, Tokens: pair}, nil
}

// LogoutEverywhere moves the revocation watermark to now, invalidating every
// token issued before this call regardless of class.
func (s *SessionService) LogoutEverywhere(ctx context.Context, userID string) (domain.User, error) {
	if err := s.Store.Users().SetTokenValidFrom(ctx, userID, time.Now().UTC()); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

// AuthenticateAccessToken verifies an access token and enforces the
// watermark against the account it names. Returns the user id on success.
func (s *SessionService) AuthenticateAccessToken(ctx context.Context, token string) (string, error) {
	claims, ok := s.Tokens.VerifyAccess(token)
	if !ok {
		return "", ErrInvalidToken
	}

	if _, err := s.userForClaims(ctx, claims); err != nil {
		return "", err
	}
	return claims.User, nil
}

// userForClaims loads the claimed account and rejects tokens older than the
// watermark. Comparison is in whole seconds, matching iat precision.
func (s *SessionService) userForClaims(ctx context.Context, claims jwtx.Claims) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, claims.User)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidToken
		}
		return domain.User{}, err
	}

	if claims.IssuedAt == nil || claims.IssuedAt.Unix() < user.TokenValidFrom.Unix() {
		return domain.User{}, ErrTokenRevoked
	}
	return user, nil
}

func (s *SessionService) issuePair(userID string) (domain.TokenPair, error) {
	access, err := s.Tokens.IssueAccess(userID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.Tokens.IssueRefresh(userID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.Tokens.Access.TTL / time.Second),
	}, nil
}
