package auth_test

import (
	"context"
	"testing"

	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/stretchr/testify/require"
)

func TestTwoFactorLifecycle(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)
	ctx := context.Background()

	acct := signupAccount(t, client, "penguin")
	tokens := signin(t, client, acct)

	// Enroll: URI comes back once, two-factor not active yet.
	enroll, err := client.EnrollTwoFactor(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, enroll.URI)

	me, err := client.Me(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.False(t, me.TwoFactorEnabled)

	// Enable with a wrong code fails, right code succeeds.
	_, err = client.EnableTwoFactor(ctx, tokens.AccessToken, "000000")
	requireAPIError(t, err, "FORBIDDEN")

	me, err = client.EnableTwoFactor(ctx, tokens.AccessToken, codeFromURI(t, enroll.URI))
	require.NoError(t, err)
	require.True(t, me.TwoFactorEnabled)
	require.True(t, me.TwoFactorChecked)

	// Signin now stops at the two-factor gate.
	pending, err := client.SignIn(ctx, authapi.SigninRequest{
		Username:        acct.Username,
		SigninChallenge: solveChallenge(t, client, acct),
	})
	require.NoError(t, err)
	require.True(t, pending.TwoFactorRequired)
	require.NotEmpty(t, pending.TempToken)
	require.Empty(t, pending.AccessToken)
	require.Empty(t, pending.RefreshToken)

	// The temp token is not an access token.
	_, err = client.Me(ctx, pending.TempToken)
	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)

	// A wrong code is rejected, the right one completes the signin.
	_, err = client.VerifyTwoFactor(ctx, pending.TempToken, "000000")
	requireAPIError(t, err, "FORBIDDEN")

	full, err := client.VerifyTwoFactor(ctx, pending.TempToken, codeFromURI(t, enroll.URI))
	require.NoError(t, err)
	require.NotEmpty(t, full.AccessToken)
	require.NotEmpty(t, full.RefreshToken)

	me, err = client.Me(ctx, full.AccessToken)
	require.NoError(t, err)
	require.True(t, me.TwoFactorChecked)

	// Disable wipes the secret; the next signin is single-factor again.
	me, err = client.DisableTwoFactor(ctx, full.AccessToken, codeFromURI(t, enroll.URI))
	require.NoError(t, err)
	require.False(t, me.TwoFactorEnabled)

	signin(t, client, acct)
}

func TestTwoFactorEnable_NotEnrolled(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)

	acct := signupAccount(t, client, "penguin")
	tokens := signin(t, client, acct)

	_, err := client.EnableTwoFactor(context.Background(), tokens.AccessToken, "123456")
	requireAPIError(t, err, "BAD_REQUEST")
}

func TestVerifyTwoFactor_RequiresTempToken(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)
	ctx := context.Background()

	acct := signupAccount(t, client, "penguin")
	tokens := signin(t, client, acct)

	enroll, err := client.EnrollTwoFactor(ctx, tokens.AccessToken)
	require.NoError(t, err)
	_, err = client.EnableTwoFactor(ctx, tokens.AccessToken, codeFromURI(t, enroll.URI))
	require.NoError(t, err)

	// An access token cannot complete the two-factor step.
	_, err = client.VerifyTwoFactor(ctx, tokens.AccessToken, codeFromURI(t, enroll.URI))
	requireAPIError(t, err, "UNAUTHORIZED")
}
