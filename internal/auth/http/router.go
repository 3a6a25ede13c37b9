package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pengkiwi/pengauth/internal/auth/service"
	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/pkg/httpx"
	"github.com/pengkiwi/pengauth/pkg/slogx"

	_ "github.com/pengkiwi/pengauth/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	Users     *service.UserService
	Sessions  *service.SessionService
	TwoFactor *service.TwoFactorService

	// BackendPublicKey is surfaced on the self profile so clients can
	// encrypt payloads destined for the service.
	BackendPublicKey string
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerSessions()
	r.registerTwoFactor()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pengauth API
//	@version		0.1.0
//	@description	Passwordless authentication service. Accounts are bound to an RSA keypair;
//	@description	signin proves possession of the private key by decrypting a single-use
//	@description	challenge, and sessions are carried by HS256-signed JWTs.
//
//	@contact.name				PengKiwi Team
//	@contact.url				https://github.com/pengkiwi/pengauth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	h := &AccountHandler{
		Users:            r.Users,
		BackendPublicKey: r.BackendPublicKey,
	}

	// POST /sign-up - strict rate limit by IP (public write endpoint)
	r.Mux.Handle("POST /v1/sign-up",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /me-public/{username} - moderate rate limit by IP; every fetch
	// hands out an encrypted challenge, so it must not be free to hammer
	r.Mux.Handle("GET /v1/me-public/{username}",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	authn := httpx.AuthnMiddleware(r.Sessions)

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /me/private-key - strict limit, each attempt burns a challenge proof
	r.Mux.Handle("POST /v1/me/private-key",
		httpx.Chain(http.HandlerFunc(h.HandleRotateKey),
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/me",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSessions() {
	h := &SessionHandler{
		Sessions:         r.Sessions,
		BackendPublicKey: r.BackendPublicKey,
	}

	// POST /sign-in - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /v1/sign-in",
		httpx.Chain(http.HandlerFunc(h.HandleSignin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /sign-in/2fa - strict rate limit by IP (prevent code brute force)
	r.Mux.Handle("POST /v1/sign-in/2fa",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyTwoFactor),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /sign-in/refresh - moderate rate limit by IP
	r.Mux.Handle("POST /v1/sign-in/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/log-out-all",
		httpx.Chain(http.HandlerFunc(h.HandleLogoutEverywhere),
			httpx.AuthnMiddleware(r.Sessions),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{
		Users:            r.Users,
		TwoFactor:        r.TwoFactor,
		BackendPublicKey: r.BackendPublicKey,
	}

	authn := httpx.AuthnMiddleware(r.Sessions)

	r.Mux.Handle("POST /v1/2fa/secret",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			authn,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Enable/disable both verify a code, so both get the strict limit
	r.Mux.Handle("POST /v1/2fa/enable",
		httpx.Chain(http.HandlerFunc(h.HandleEnable),
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/2fa/disable",
		httpx.Chain(http.HandlerFunc(h.HandleDisable),
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
