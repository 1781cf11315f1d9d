package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alumni-connect-api/internal/application/auth"
	"github.com/alumni-connect-api/internal/application/community"
	"github.com/alumni-connect-api/internal/application/identifier"
	"github.com/alumni-connect-api/internal/application/profile"
	"github.com/alumni-connect-api/internal/application/roles"
	"github.com/alumni-connect-api/internal/config"
	"github.com/alumni-connect-api/internal/metrics"
	"github.com/alumni-connect-api/internal/transport/http/handler"
	appmiddleware "github.com/alumni-connect-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if deps.Collector != nil {
		r.Use(appmiddleware.Metrics(deps.Collector))
	}

	authMw := appmiddleware.Auth(deps.JWTProvider)
	optionalAuthMw := appmiddleware.OptionalAuth(deps.JWTProvider)

	oracle := roles.NewOracle(cfg.SuperAdminEmails, deps.AdminRepo, deps.CommunityRepo)

	authSvc := auth.NewService(deps.CASClient, deps.JWTProvider, deps.ProfileRepo, deps.IdentifierRepo, deps.Hasher)
	profileSvc := profile.NewService(deps.ProfileRepo, deps.IdentifierRepo, deps.Hasher)
	communitySvc := community.NewService(deps.CommunityRepo, deps.AdminRepo, deps.S3Store, oracle, deps.Mailer)
	verifySvc := identifier.NewService(deps.IdentifierRepo, deps.ProfileRepo, oracle, deps.Hasher)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, deps.CASClient, cfg.RedirectURL, deps.Collector)
	profileH := handler.NewProfileHandler(profileSvc)
	communityH := handler.NewCommunityHandler(communitySvc)
	adminH := handler.NewAdminHandler(communitySvc)
	verifyH := handler.NewVerifyHandler(verifySvc, deps.Collector)

	r.Handle("/metrics", metrics.Handler(prometheus.DefaultGatherer))

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		r.Get("/auth/login", authH.Login)
		r.Get("/auth/logout", authH.Logout)
		r.Get("/auth/logout/callback", authH.LogoutCallback)

		// Community listings are public; a present token adds per-caller
		// fields like user_is_admin.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuthMw)

			r.Get("/connect/communities", communityH.List)
			r.Get("/connect/communities/{id}", communityH.Get)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/auth/verify", authH.Verify)

			r.Get("/connect/profile", profileH.Me)
			r.Post("/connect/profile", profileH.RegisterIdentifiers)
			r.Post("/connect/profile/identifiers", profileH.AddIdentifier)
			r.Delete("/connect/profile/identifiers/{id}", profileH.DeleteIdentifier)
			r.Get("/connect/users/{uid}", profileH.Get)

			// Role checks live in the services; super-admin-only operations
			// return 403 there.
			r.Post("/connect/communities", communityH.Create)
			r.Put("/connect/communities/{id}", communityH.Update)
			r.Delete("/connect/communities/{id}", communityH.Delete)
			r.Post("/connect/communities/{id}/icon", communityH.UploadIcon)

			r.Post("/connect/communities/{id}/admins", adminH.Add)
			r.Get("/connect/communities/{id}/admins", adminH.List)
			r.Delete("/connect/admins/{adminID}", adminH.Remove)
			r.Get("/connect/user-roles", adminH.UserRoles)

			r.Post("/connect/verify-identifier", verifyH.Verify)
		})
	})

	return r
}
