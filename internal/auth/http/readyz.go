package http

import (
	"net/http"
	"time"

	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/pkg/authapi"
	"github.com/pengkiwi/pengauth/pkg/httpx"
	"github.com/pengkiwi/pengauth/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe verifying the service can actually serve traffic,
//	@Description	which for this service means the database answers a ping
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authapi.HealthResponse	"status, uptime, version"
//	@Failure		503	{object}	authapi.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := authapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Error("readiness ping failed", "err", err)
			response.Status = "unavailable"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
