package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pengkiwi/pengauth/internal/auth/domain"
	"github.com/pengkiwi/pengauth/internal/auth/service"
	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pengkiwi/pengauth/pkg/slogx"
)

// writeServiceError maps service and store errors onto the wire taxonomy.
// Anything unmapped is logged and masked as UNKNOWN.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var cryptoErr *cryptox.CryptoError

	switch {
	case errors.Is(err, service.ErrInvalidIdentifier):
		authapi.WriteError(w, authapi.ErrInvalidIdentifier)
	case errors.Is(err, store.ErrAlreadyExists):
		authapi.WriteError(w, authapi.ErrAlreadyExists)
	case errors.Is(err, store.ErrNotFound):
		authapi.WriteError(w, authapi.ErrNotFound)
	case errors.Is(err, service.ErrInvalidChallenge),
		errors.Is(err, service.ErrInvalidTwoFactorCode):
		authapi.WriteError(w, authapi.ErrForbidden)
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked):
		authapi.WriteError(w, authapi.ErrUnauthorized)
	case errors.Is(err, service.ErrUnknownUser),
		errors.Is(err, service.ErrInvalidPublicKey),
		errors.Is(err, service.ErrTwoFactorEnabled),
		errors.Is(err, service.ErrTwoFactorNotEnabled),
		errors.Is(err, service.ErrTwoFactorNotEnrolled):
		authapi.WriteError(w, authapi.ErrBadRequest)
	case errors.As(err, &cryptoErr):
		authapi.WriteError(w, authapi.ErrCrypto)
	default:
		slogx.FromContext(ctx).Error("unhandled service error", "err", err)
		authapi.WriteError(w, authapi.ErrUnknown)
	}
}

// mapUser shapes the authenticated self view. The two-factor secret never
// leaves the service, even enrolled-but-disabled.
func mapUser(u domain.User, backendPublicKey string) authapi.UserResponse {
	return authapi.UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		PublicKey:           u.PublicKey,
		EncryptedPrivateKey: u.EncryptedPrivateKey,
		TwoFactorEnabled:    u.TwoFactorEnabled,
		TwoFactorChecked:    u.TwoFactorChecked,
		BackendPublicKey:    backendPublicKey,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func mapTokens(result service.SigninResult) authapi.TokenResponse {
	if result.TwoFactorRequired {
		return authapi.TokenResponse{
			ID:                result.User.ID,
			TempToken:         result.TempToken,
			TwoFactorRequired: true,
		}
	}
	return authapi.TokenResponse{
		ID:           result.User.ID,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresIn:    result.Tokens.ExpiresIn,
	}
}

// bearerToken pulls the raw token out of an Authorization header, for
// endpoints that authenticate with something other than an access token.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
