package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is a thin HTTP client for the authentication API. It is safe for
// concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client targeting baseURL with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var out SignupResponse
	err := c.do(ctx, http.MethodPost, "/v1/sign-up", "", req, &out)
	return out, err
}

// PublicProfile fetches the pre-signin view of an account, including a fresh
// challenge encrypted under the account's public key.
func (c *Client) PublicProfile(ctx context.Context, username string) (PublicProfileResponse, error) {
	var out PublicProfileResponse
	err := c.do(ctx, http.MethodGet, "/v1/me-public/"+url.PathEscape(username), "", nil, &out)
	return out, err
}

// SignIn submits the decrypted challenge. Accounts with two-factor enabled
// receive a temp token instead of a full pair.
func (c *Client) SignIn(ctx context.Context, req SigninRequest) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/sign-in", "", req, &out)
	return out, err
}

// VerifyTwoFactor trades a temp token plus a valid TOTP code for a full
// token pair.
func (c *Client) VerifyTwoFactor(ctx context.Context, tempToken, code string) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/sign-in/2fa", tempToken, TwoFactorVerifyRequest{Code: code}, &out)
	return out, err
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/sign-in/refresh", "", RefreshRequest{RefreshToken: refreshToken}, &out)
	return out, err
}

// Me fetches the authenticated self view.
func (c *Client) Me(ctx context.Context, accessToken string) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodGet, "/v1/me", accessToken, nil, &out)
	return out, err
}

// ChangePrivateKey replaces the stored encrypted private key after
// re-proving possession of the current one.
func (c *Client) ChangePrivateKey(ctx context.Context, accessToken string, req ChangeKeyRequest) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/v1/me/private-key", accessToken, req, &out)
	return out, err
}

// EnrollTwoFactor provisions a new TOTP secret and returns its URI.
func (c *Client) EnrollTwoFactor(ctx context.Context, accessToken string) (TwoFactorEnrollResponse, error) {
	var out TwoFactorEnrollResponse
	err := c.do(ctx, http.MethodPost, "/v1/2fa/secret", accessToken, nil, &out)
	return out, err
}

// EnableTwoFactor activates the enrolled secret once a valid code proves the
// authenticator is set up.
func (c *Client) EnableTwoFactor(ctx context.Context, accessToken, code string) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/v1/2fa/enable", accessToken, TwoFactorVerifyRequest{Code: code}, &out)
	return out, err
}

// DisableTwoFactor deactivates two-factor after a final valid code.
func (c *Client) DisableTwoFactor(ctx context.Context, accessToken, code string) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/v1/2fa/disable", accessToken, TwoFactorVerifyRequest{Code: code}, &out)
	return out, err
}

// LogoutEverywhere invalidates every token issued before now.
func (c *Client) LogoutEverywhere(ctx context.Context, accessToken string) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/v1/log-out-all", accessToken, nil, &out)
	return out, err
}

// DeleteAccount removes the account and all of its records.
func (c *Client) DeleteAccount(ctx context.Context, accessToken string) (DeleteResponse, error) {
	var out DeleteResponse
	err := c.do(ctx, http.MethodDelete, "/v1/me", accessToken, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "UNKNOWN"}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Description = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
