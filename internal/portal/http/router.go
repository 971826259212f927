package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"

	_ "github.com/aussiebroadwan/acsportal/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store      store.Store
	Directory  DirectoryView
	PayslipURL string

	AuthService      *service.AuthService
	Policy           *service.Policy
	TokenService     *service.TokenService
	MemberService    *service.MemberService
	IndicatorService *service.IndicatorService
	NewsService      *service.NewsService

	KeyRotationService *service.KeyRotationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMembers()
	r.registerIndicators()
	r.registerNews()
	r.registerKeys()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ACS Portal API
//	@version		0.1.0
//	@description	Membership portal for community health workers (Agentes Comunitários de Saúde).
//	@description
//	@description				Session tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/acsportal
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, r.TokenService)
}

func (r *Router) optionalAuthn() httpx.Middleware {
	return httpx.OptionalAuthn(r.verifier, r.TokenService)
}

func (r *Router) admin(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		r.authn(),
		httpx.RequireRole(string(domain.RoleAdmin)),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Auth:   r.AuthService,
		Policy: r.Policy,
		Tokens: r.TokenService,
	}

	// Login and master password are not throttled: the portal has no
	// lockout on either.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), r.optionalAuthn()),
	)
	r.Mux.Handle("POST /v1/auth/master",
		httpx.Chain(http.HandlerFunc(h.HandleMaster), r.optionalAuthn()),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleSession),
			r.optionalAuthn(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/navigation/{target}",
		httpx.Chain(http.HandlerFunc(h.HandleNavigate),
			r.optionalAuthn(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{
		Members:   r.MemberService,
		Directory: r.Directory,
	}

	// POST /register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/members/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/members", r.admin(h.HandleList))
	r.Mux.Handle("POST /v1/members", r.admin(h.HandleCreate))
	r.Mux.Handle("PUT /v1/members/{id}", r.admin(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/members/{id}", r.admin(h.HandleDelete))
	r.Mux.Handle("PUT /v1/members/{id}/role", r.admin(h.HandleSetRole))
	r.Mux.Handle("PUT /v1/members/{id}/status", r.admin(h.HandleSetStatus))

	// Self-service: the handler or service checks self vs admin.
	self := func(f http.HandlerFunc) http.Handler {
		return httpx.Chain(f, r.authn(), httpx.RateLimitByUser(httpx.LenientLimit))
	}
	r.Mux.Handle("PUT /v1/members/{id}/password", self(h.HandleSetPassword))
	r.Mux.Handle("GET /v1/members/{id}/card", self(h.HandleCard))
	r.Mux.Handle("GET /v1/me", self(h.HandleMe))
}

func (r *Router) registerIndicators() {
	h := &IndicatorsHandler{Indicators: r.IndicatorService}

	r.Mux.Handle("GET /v1/indicators",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /v1/indicators/aps/{code}", r.admin(h.HandleUpdateAPS))
	r.Mux.Handle("PUT /v1/indicators/dental/{code}", r.admin(h.HandleUpdateDental))
}

func (r *Router) registerNews() {
	// GET /news - moderate limit, a cache miss calls out to the news provider
	r.Mux.Handle("GET /v1/news",
		httpx.Chain(&NewsHandler{News: r.NewsService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/payslip",
		httpx.Chain(PayslipHandler(r.PayslipURL),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerKeys() {
	if r.KeyRotationService == nil {
		return
	}
	h := &KeysHandler{Keys: r.KeyRotationService}

	r.Mux.Handle("GET /v1/keys", r.admin(h.HandleList))
	r.Mux.Handle("POST /v1/keys/rotate", r.admin(h.HandleRotate))
	r.Mux.Handle("POST /v1/keys/{kid}/retire", r.admin(h.HandleRetire))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Directory),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
