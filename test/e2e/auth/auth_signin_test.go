package auth_test

import (
	"context"
	"testing"

	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/stretchr/testify/require"
)

func TestSigninFlow(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)
	ctx := context.Background()

	acct := signupAccount(t, client, "penguin")
	tokens := signin(t, client, acct)

	me, err := client.Me(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, acct.ID, me.ID)
	require.Equal(t, acct.Username, me.Username)
	require.NotEmpty(t, me.BackendPublicKey)
	require.False(t, me.TwoFactorEnabled)
}

func TestSignin_WrongChallenge(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)

	acct := signupAccount(t, client, "penguin")

	_, err := client.SignIn(context.Background(), authapi.SigninRequest{
		Username:        acct.Username,
		SigninChallenge: "not-the-challenge",
	})
	requireAPIError(t, err, "FORBIDDEN")
}

func TestSignin_UnknownUsername(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)

	_, err := client.SignIn(context.Background(), authapi.SigninRequest{
		Username:        "nobody",
		SigninChallenge: "whatever",
	})
	requireAPIError(t, err, "BAD_REQUEST")
}

func TestSignin_ChallengeRotates(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)
	ctx := context.Background()

	acct := signupAccount(t, client, "penguin")
	challenge := solveChallenge(t, client, acct)

	_, err := client.SignIn(ctx, authapi.SigninRequest{
		Username:        acct.Username,
		SigninChallenge: challenge,
	})
	require.NoError(t, err)

	// The consumed proof cannot be replayed.
	_, err = client.SignIn(ctx, authapi.SigninRequest{
		Username:        acct.Username,
		SigninChallenge: challenge,
	})
	requireAPIError(t, err, "FORBIDDEN")
}

func TestRefreshFlow(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)
	ctx := context.Background()

	acct := signupAccount(t, client, "penguin")
	tokens := signin(t, client, acct)

	refreshed, err := client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEmpty(t, refreshed.RefreshToken)

	me, err := client.Me(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	require.Equal(t, acct.ID, me.ID)
}

func TestRefresh_GarbageToken(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)

	_, err := client.Refresh(context.Background(), "not-a-token")
	requireAPIError(t, err, "UNAUTHORIZED")
}

func TestMe_MissingToken(t *testing.T) {
	baseURL := setupAuthServer(t)
	client := newTestClient(baseURL)

	_, err := client.Me(context.Background(), "")
	var apiErr *authapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}
