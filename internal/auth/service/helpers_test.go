package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pengkiwi/pengauth/internal/auth/domain"
	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/internal/auth/store/drivers/sqlite"
	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pengkiwi/pengauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func newTestEngine() *jwtx.Engine {
	return &jwtx.Engine{
		Issuer:  "peng.kiwi",
		Access:  jwtx.Policy{Secret: []byte("access-secret-for-tests"), TTL: jwtx.DefaultAccessTokenTTL},
		Refresh: jwtx.Policy{Secret: []byte("refresh-secret-for-tests"), TTL: jwtx.DefaultRefreshTokenTTL},
		Temp:    jwtx.Policy{Secret: []byte("temp-secret-for-tests"), TTL: jwtx.DefaultTempTokenTTL},
	}
}

func newTestCipher(t *testing.T) *cryptox.SecretCipher {
	t.Helper()

	cipher, err := cryptox.NewSecretCipher([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	return cipher
}

type testEnv struct {
	Store     store.Store
	Users     *UserService
	Sessions  *SessionService
	TwoFactor *TwoFactorService
	Tokens    *jwtx.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := newTestStore(t)
	eng := newTestEngine()
	tfa := &TwoFactorService{Store: st, Cipher: newTestCipher(t), Issuer: "peng.kiwi"}

	return &testEnv{
		Store:     st,
		Users:     &UserService{Store: st},
		Sessions:  &SessionService{Store: st, Tokens: eng, TwoFactor: tfa},
		TwoFactor: tfa,
		Tokens:    eng,
	}
}

// signupUser registers an account and returns it with the private key PEM
// needed to solve challenges.
func signupUser(t *testing.T, env *testEnv, username string) (domain.User, string) {
	t.Helper()

	pubPEM, privPEM, err := cryptox.GenerateKeyPair(2048)
	require.NoError(t, err)

	user, err := env.Users.Signup(context.Background(), username, pubPEM, "client-side-ciphertext")
	require.NoError(t, err)

	return user, privPEM
}

// solveChallenge fetches the public profile and decrypts the challenge the
// way a real client would.
func solveChallenge(t *testing.T, env *testEnv, username, privPEM string) string {
	t.Helper()

	_, encrypted, err := env.Users.PublicProfile(context.Background(), username)
	require.NoError(t, err)

	challenge, err := cryptox.DecryptMessage(privPEM, encrypted)
	require.NoError(t, err)

	return challenge
}

// backdate shifts the token engine's clock so freshly issued tokens carry an
// iat in the past. Watermark moves are second-granular, so tests that revoke
// need issuance to happen strictly earlier.
func backdate(env *testEnv, d time.Duration) {
	env.Tokens.Now = func() time.Time { return time.Now().Add(-d) }
}
