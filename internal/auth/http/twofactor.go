package http

import (
	"context"
	"net/http"

	"github.com/pengkiwi/pengauth/internal/auth/domain"
	"github.com/pengkiwi/pengauth/internal/auth/service"
	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/pengkiwi/pengauth/pkg/httpx"
	"github.com/pengkiwi/pengauth/pkg/slogx"
)

// TwoFactorHandler covers TOTP enrolment, activation and removal.
type TwoFactorHandler struct {
	Users            *service.UserService
	TwoFactor        *service.TwoFactorService
	BackendPublicKey string
}

// HandleEnroll handles POST /v1/2fa/secret
//
//	@Summary		Enroll in two-factor authentication
//	@Description	Generates a TOTP secret and returns its provisioning URI. Two-factor is
//	@Description	not active until a code is verified via the enable endpoint. The URI is
//	@Description	returned exactly once.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authapi.TwoFactorEnrollResponse	"Provisioning URI"
//	@Failure		400	{object}	authapi.APIError				"Already enabled"
//	@Failure		401	{object}	authapi.APIError				"Invalid or missing access token"
//	@Router			/v1/2fa/secret [post].
func (h *TwoFactorHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	user, err := h.Users.GetSelf(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	uri, err := h.TwoFactor.Enroll(ctx, user)
	if err != nil {
		log.Warn("two-factor enrolment rejected", "user_id", userID, "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("two-factor enrolled", "user_id", userID)
	httpx.WriteJSON(w, http.StatusOK, authapi.TwoFactorEnrollResponse{URI: uri})
}

// HandleEnable handles POST /v1/2fa/enable
//
//	@Summary		Activate two-factor authentication
//	@Description	Verifies a code from the enrolled authenticator and turns two-factor on.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.TwoFactorVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	authapi.UserResponse			"Updated account"
//	@Failure		400		{object}	authapi.APIError				"Not enrolled or already enabled"
//	@Failure		403		{object}	authapi.APIError				"Invalid code"
//	@Router			/v1/2fa/enable [post].
func (h *TwoFactorHandler) HandleEnable(w http.ResponseWriter, r *http.Request) {
	h.verifyAndApply(w, r, "two-factor enabled", h.TwoFactor.Enable)
}

// HandleDisable handles POST /v1/2fa/disable
//
//	@Summary		Deactivate two-factor authentication
//	@Description	Verifies a final code and removes two-factor. The stored secret is wiped.
//	@Tags			TwoFactor
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.TwoFactorVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	authapi.UserResponse			"Updated account"
//	@Failure		400		{object}	authapi.APIError				"Not enabled"
//	@Failure		403		{object}	authapi.APIError				"Invalid code"
//	@Router			/v1/2fa/disable [post].
func (h *TwoFactorHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	h.verifyAndApply(w, r, "two-factor disabled", h.TwoFactor.Disable)
}

func (h *TwoFactorHandler) verifyAndApply(
	w http.ResponseWriter,
	r *http.Request,
	logMsg string,
	apply func(ctx context.Context, user domain.User, code string) error,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req authapi.TwoFactorVerifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.WriteError(w, authapi.ErrBadRequest)
		return
	}

	user, err := h.Users.GetSelf(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	if err := apply(ctx, user, req.Code); err != nil {
		log.Warn("two-factor change rejected", "user_id", userID, "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	user, err = h.Users.GetSelf(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info(logMsg, "user_id", userID)
	httpx.WriteJSON(w, http.StatusOK, mapUser(user, h.BackendPublicKey))
}
