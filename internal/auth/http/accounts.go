package http

import (
	"net/http"

	"github.com/pengkiwi/pengauth/internal/auth/service"
	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/pengkiwi/pengauth/pkg/httpx"
	"github.com/pengkiwi/pengauth/pkg/slogx"
)

// AccountHandler covers account lifecycle: signup, profile views, credential
// rotation and deletion.
type AccountHandler struct {
	Users            *service.UserService
	BackendPublicKey string
}

// HandleSignup handles POST /v1/sign-up
//
//	@Summary		Register a new account
//	@Description	Creates an account bound to the supplied RSA public key. The private key
//	@Description	arrives already encrypted client-side and is stored as an opaque blob.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.SignupRequest	true	"Account details"
//	@Success		201		{object}	authapi.SignupResponse	"Created account"
//	@Failure		400		{object}	authapi.APIError		"Invalid identifier or key"
//	@Failure		409		{object}	authapi.APIError		"Username taken"
//	@Router			/v1/sign-up [post].
func (h *AccountHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.WriteError(w, authapi.ErrBadRequest)
		return
	}

	user, err := h.Users.Signup(ctx, req.Username, req.PublicKey, req.EncryptedPrivateKey)
	if err != nil {
		log.Warn("signup rejected", "username", req.Username, "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("account created", "user_id", user.ID, "username", user.Username)
	httpx.WriteJSON(w, http.StatusCreated, authapi.SignupResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// HandleProfile handles GET /v1/me-public/{username}
//
//	@Summary		Fetch a public profile
//	@Description	Returns the account's public key, encrypted private key and the current
//	@Description	signin challenge sealed under the public key. Only the keyholder can
//	@Description	recover the challenge, so the response is safe to serve unauthenticated.
//	@Tags			Accounts
//	@Produce		json
//	@Param			username	path		string							true	"Account username"
//	@Success		200			{object}	authapi.PublicProfileResponse	"Public profile"
//	@Failure		404			{object}	authapi.APIError				"Unknown account"
//	@Router			/v1/me-public/{username} [get].
func (h *AccountHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, encrypted, err := h.Users.PublicProfile(ctx, r.PathValue("username"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authapi.PublicProfileResponse{
		ID:                  user.ID,
		Username:            user.Username,
		PublicKey:           user.PublicKey,
		EncryptedPrivateKey: user.EncryptedPrivateKey,
		EncryptedChallenge:  encrypted,
	})
}

// HandleMe handles GET /v1/me
//
//	@Summary		Fetch the authenticated account
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authapi.UserResponse	"Account"
//	@Failure		401	{object}	authapi.APIError		"Invalid or missing access token"
//	@Router			/v1/me [get].
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.Users.GetSelf(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapUser(user, h.BackendPublicKey))
}

// HandleRotateKey handles POST /v1/me/private-key
//
//	@Summary		Replace the stored encrypted private key
//	@Description	Swaps the encrypted private key blob after the decrypted challenge
//	@Description	re-proves possession of the current key. All previously issued tokens
//	@Description	are invalidated.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authapi.ChangeKeyRequest	true	"New key blob and challenge proof"
//	@Success		200		{object}	authapi.UserResponse		"Updated account"
//	@Failure		401		{object}	authapi.APIError			"Invalid or missing access token"
//	@Failure		403		{object}	authapi.APIError			"Challenge proof failed"
//	@Router			/v1/me/private-key [post].
func (h *AccountHandler) HandleRotateKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req authapi.ChangeKeyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authapi.WriteError(w, authapi.ErrBadRequest)
		return
	}

	user, err := h.Users.RotateCredential(ctx, userID, req.SigninChallenge, req.EncryptedPrivateKey)
	if err != nil {
		log.Warn("credential rotation rejected", "user_id", userID, "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("credential rotated", "user_id", userID)
	httpx.WriteJSON(w, http.StatusOK, mapUser(user, h.BackendPublicKey))
}

// HandleDelete handles DELETE /v1/me
//
//	@Summary		Delete the authenticated account
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authapi.DeleteResponse	"Deleted account id"
//	@Failure		401	{object}	authapi.APIError		"Invalid or missing access token"
//	@Router			/v1/me [delete].
func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	if err := h.Users.Delete(ctx, userID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	log.Info("account deleted", "user_id", userID)
	httpx.WriteJSON(w, http.StatusOK, authapi.DeleteResponse{ID: userID})
}
