package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupAuthServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(baseURL + path)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var health authapi.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
			require.Equal(t, "ok", health.Status)
			require.Equal(t, "test", health.Version)
			require.NotEmpty(t, health.Uptime)
		})
	}
}

func TestSwaggerServed(t *testing.T) {
	baseURL := setupAuthServer(t)

	resp, err := http.Get(baseURL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Contains(t, doc, "paths")
}
