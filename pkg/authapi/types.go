package authapi

import "time"

// SignupRequest registers a new account. The private key arrives already
// encrypted by the client; the server never sees it in cleartext.
type SignupRequest struct {
	Username            string `json:"username"`
	PublicKey           string `json:"publicKey"`
	EncryptedPrivateKey string `json:"encryptedPrivateKey"`
}

// SignupResponse acknowledges a created account.
type SignupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PublicProfileResponse is the pre-signin view of an account. The
// EncryptedChallenge is sealed under the account's public key and must be
// decrypted client-side to complete a signin.
type PublicProfileResponse struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	PublicKey           string `json:"publicKey"`
	EncryptedPrivateKey string `json:"encryptedPrivateKey"`
	EncryptedChallenge  string `json:"encryptedChallenge"`
}

// SigninRequest presents the decrypted challenge as proof of key possession.
type SigninRequest struct {
	Username        string `json:"username"`
	SigninChallenge string `json:"signinChallenge"`
}

// TokenResponse is returned by sign-in, 2FA verification and refresh. When
// the account has two-factor enabled, sign-in returns only TempToken and
// TwoFactorRequired; the full pair arrives after the code is verified.
type TokenResponse struct {
	ID                string `json:"id"`
	AccessToken       string `json:"accessToken,omitempty"`
	RefreshToken      string `json:"refreshToken,omitempty"`
	TempToken         string `json:"tempToken,omitempty"`
	ExpiresIn         int64  `json:"expiresIn,omitempty"`
	TwoFactorRequired bool   `json:"twoFactorRequired,omitempty"`
}

// TwoFactorVerifyRequest carries the 6-digit TOTP code. Delivered with the
// temp token during signin, or with an access token for enable/disable.
type TwoFactorVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFactorEnrollResponse exposes the provisioning URI exactly once, at
// enrollment time. It is never returned by any other endpoint.
type TwoFactorEnrollResponse struct {
	URI string `json:"uri"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangeKeyRequest replaces the stored encrypted private key. The decrypted
// challenge re-proves possession of the current key before the swap.
type ChangeKeyRequest struct {
	EncryptedPrivateKey string `json:"encryptedPrivateKey"`
	SigninChallenge     string `json:"signinChallenge"`
}

// UserResponse is the authenticated self view of an account.
type UserResponse struct {
	ID                  string    `json:"id"`
	Username            string    `json:"username"`
	PublicKey           string    `json:"publicKey"`
	EncryptedPrivateKey string    `json:"encryptedPrivateKey"`
	TwoFactorEnabled    bool      `json:"twoFactorEnabled"`
	TwoFactorChecked    bool      `json:"twoFactorChecked"`
	BackendPublicKey    string    `json:"backendPublicKey,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DeleteResponse acknowledges an account deletion.
type DeleteResponse struct {
	ID string `json:"id"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
