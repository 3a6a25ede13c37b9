package http

import (
	"net/http"

	"github.com/pengkiwi/pengauth/internal/auth/service"
	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pengkiwi/pengauth/pkg/httpx"
	"github.com/pengkiwi/pengauth/pkg/slogx"
)

// SessionHandler covers the signin state machine and token lifecycle.
type SessionHandler struct {
	Sessions         *service.SessionService
	BackendPublicKey string
}

// HandleSignin handles POST /v1/sign-in
//
//	@Summary		Sign in with a decrypted challenge
//	@Description	Submits the challenge recovered from the public profile. A correct proof
//	@Description	consumes the challenge and returns a token pair, or a temp token when
//	@Description	the account requires a two-factor code first.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.SigninRequest	true	"Username and decrypted challenge"
//	@Success		200		{object}	authapi.TokenResponse	"Token pair, or temp token when 2FA is pending"
//	@Failure		403		{object}	authapi.APIError		"Challenge proof failed"
//	@Router			/v1/sign-in [post].
func (h *SessionHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.SigninRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.WriteError(w, authapi.ErrBadRequest)
		return
	}

	result, err := h.Sessions.Signin(ctx, req.Username, req.SigninChallenge)
	if err != nil {
		// Hash the identifier so failed attempts are correlatable without
		// putting usernames in the logs.
		log.Warn("signin rejected", "username_hash", cryptox.Hash(req.Username), "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	if result.TwoFactorRequired {
		log.Info("signin pending two-factor", "user_id", result.User.ID)
	} else {
		log.Info("signin complete", "user_id", result.User.ID)
	}
	httpx.WriteJSON(w, http.StatusOK, mapTokens(result))
}

// HandleVerifyTwoFactor handles POST /v1/sign-in/2fa
//
//	@Summary		Complete a two-factor signin
//	@Description	Trades the temp token from sign-in plus a valid TOTP code for the full
//	@Description	token pair.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.TwoFactorVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	authapi.TokenResponse			"Token pair"
//	@Failure		401		{object}	authapi.APIError				"Invalid or expired temp token"
//	@Failure		403		{object}	authapi.APIError				"Invalid code"
//	@Router			/v1/sign-in/2fa [post].
func (h *SessionHandler) HandleVerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := bearerToken(r)
	if token == "" {
		authapi.WriteError(w, authapi.ErrUnauthorized)
		return
	}

	var req authapi.TwoFactorVerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.WriteError(w, authapi.ErrBadRequest)
		return
	}

	result, err := h.Sessions.VerifyTwoFactor(ctx, token, req.Code)
	if err != nil {
		log.Warn("two-factor verification rejected", "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("signin complete", "user_id", result.User.ID)
	httpx.WriteJSON(w, http.StatusOK, mapTokens(result))
}

// HandleRefresh handles POST /v1/sign-in/refresh
//
//	@Summary		Refresh a token pair
//	@Description	Exchanges a valid refresh token for a fresh pair. The watermark applies:
//	@Description	refresh tokens issued before a logout-everywhere or key rotation are dead.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authapi.TokenResponse	"New token pair"
//	@Failure		401		{object}	authapi.APIError		"Invalid, expired or revoked refresh token"
//	@Router			/v1/sign-in/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authapi.RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.WriteError(w, authapi.ErrBadRequest)
		return
	}

	result, err := h.Sessions.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapTokens(result))
}

// HandleLogoutEverywhere handles POST /v1/log-out-all
//
//	@Summary		Invalidate every outstanding token
//	@Description	Moves the account's revocation watermark to now. Access, refresh and temp
//	@Description	tokens issued before this call all stop verifying.
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authapi.UserResponse	"Updated account"
//	@Failure		401	{object}	authapi.APIError		"Invalid or missing access token"
//	@Router			/v1/log-out-all [post].
func (h *SessionHandler) HandleLogoutEverywhere(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	user, err := h.Sessions.LogoutEverywhere(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("logged out everywhere", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, mapUser(user, h.BackendPublicKey))
}
