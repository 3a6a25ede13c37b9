package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	httpapi "github.com/pengkiwi/pengauth/internal/auth/http"
	"github.com/pengkiwi/pengauth/internal/auth/service"
	"github.com/pengkiwi/pengauth/internal/auth/store/drivers/sqlite"
	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pengkiwi/pengauth/pkg/jwtx"
	"github.com/pengkiwi/pengauth/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for end-to-end tests. The whole service runs in-process
 * behind httptest, exercised through the public API client only.
 */

const testIssuer = "peng.kiwi"

// nextIP hands every test client its own source address so one test cannot
// exhaust another's per-IP rate budget.
var nextIP atomic.Int64

// setupAuthServer starts the full service stack in-process and returns its
// base URL. Database and keys are scoped to the test.
func setupAuthServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())

	logger := slogx.New(slogx.Config{
		Service: "pengauth",
		Version: "test",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	engine := &jwtx.Engine{
		Issuer:  testIssuer,
		Access:  jwtx.Policy{Secret: []byte(cryptox.MustGenerateToken(cryptox.TokenSize256)), TTL: jwtx.DefaultAccessTokenTTL},
		Refresh: jwtx.Policy{Secret: []byte(cryptox.MustGenerateToken(cryptox.TokenSize256)), TTL: jwtx.DefaultRefreshTokenTTL},
		Temp:    jwtx.Policy{Secret: []byte(cryptox.MustGenerateToken(cryptox.TokenSize256)), TTL: jwtx.DefaultTempTokenTTL},
	}
	require.NoError(t, engine.Validate())

	cipher, err := cryptox.NewSecretCipher([]byte(cryptox.MustGenerateToken(cryptox.TokenSize256)))
	require.NoError(t, err)

	backendPublic, _, err := cryptox.GenerateKeyPair(2048)
	require.NoError(t, err)

	twoFactor := &service.TwoFactorService{Store: st, Cipher: cipher, Issuer: testIssuer}
	users := &service.UserService{Store: st}
	sessions := &service.SessionService{Store: st, Tokens: engine, TwoFactor: twoFactor}

	router := httpapi.NewRouter("test", st, logger)
	router.Users = users
	router.Sessions = sessions
	router.TwoFactor = twoFactor
	router.BackendPublicKey = backendPublic
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = st.Close()
	})

	return srv.URL
}

// sourceIPTransport stamps every request with a fixed X-Forwarded-For so the
// per-IP rate limiter buckets it under that address.
type sourceIPTransport struct {
	ip string
}

func (tr sourceIPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Forwarded-For", tr.ip)
	return http.DefaultTransport.RoundTrip(req)
}

// newTestClient returns an API client with a unique source address.
func newTestClient(baseURL string) *authapi.Client {
	n := nextIP.Add(1)
	client := authapi.NewClient(baseURL)
	client.HTTPClient = &http.Client{
		Timeout:   10 * time.Second,
		Transport: sourceIPTransport{ip: fmt.Sprintf("10.42.%d.%d", n/250, n%250+1)},
	}
	return client
}

type account struct {
	ID         string
	Username   string
	PublicKey  string
	PrivateKey string
}

// signupAccount generates a client-side keypair and registers an account.
func signupAccount(t *testing.T, client *authapi.Client, username string) account {
	t.Helper()

	pubPEM, privPEM, err := cryptox.GenerateKeyPair(2048)
	require.NoError(t, err)

	resp, err := client.SignUp(context.Background(), authapi.SignupRequest{
		Username:            username,
		PublicKey:           pubPEM,
		EncryptedPrivateKey: "client-side-ciphertext",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	return account{
		ID:         resp.ID,
		Username:   username,
		PublicKey:  pubPEM,
		PrivateKey: privPEM,
	}
}

// solveChallenge fetches the public profile and decrypts the challenge.
func solveChallenge(t *testing.T, client *authapi.Client, acct account) string {
	t.Helper()

	profile, err := client.PublicProfile(context.Background(), acct.Username)
	require.NoError(t, err)
	require.NotEmpty(t, profile.EncryptedChallenge)

	challenge, err := cryptox.DecryptMessage(acct.PrivateKey, profile.EncryptedChallenge)
	require.NoError(t, err)

	return challenge
}

// signin performs a full challenge-response signin for an account without
// two-factor enabled.
func signin(t *testing.T, client *authapi.Client, acct account) authapi.TokenResponse {
	t.Helper()

	tokens, err := client.SignIn(context.Background(), authapi.SigninRequest{
		Username:        acct.Username,
		SigninChallenge: solveChallenge(t, client, acct),
	})
	require.NoError(t, err)
	require.False(t, tokens.TwoFactorRequired)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	return tokens
}

// codeFromURI derives the current TOTP code from a provisioning URI, the way
// an authenticator app would.
func codeFromURI(t *testing.T, uri string) string {
	t.Helper()

	key, err := otp.NewKeyFromURL(uri)
	require.NoError(t, err)

	code, err := totp.GenerateCode(key.Secret(), time.Now().UTC())
	require.NoError(t, err)
	return code
}

// requireAPIError asserts err is an API error with the given code.
func requireAPIError(t *testing.T, err error, code string) {
	t.Helper()

	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}
