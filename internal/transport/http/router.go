package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/raatap-waitlist/internal/application/account"
	"github.com/raatap-waitlist/internal/application/admin"
	"github.com/raatap-waitlist/internal/application/location"
	"github.com/raatap-waitlist/internal/application/otp"
	"github.com/raatap-waitlist/internal/application/waitlist"
	"github.com/raatap-waitlist/internal/config"
	"github.com/raatap-waitlist/internal/transport/http/handler"
	appmiddleware "github.com/raatap-waitlist/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		// Rewrites RemoteAddr from the proxy headers before the rate limiter reads it.
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // admin session cookie
		MaxAge:           300,
	}))

	// Applied to endpoints that send mail or check secrets.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	otpSvc, adminSvc, waitlistSvc, accountSvc, locationSvc := buildServices(cfg, deps)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc)
	adminH := handler.NewAdminHandler(adminSvc, waitlistSvc, cfg.IsProduction())
	profileH := handler.NewProfileHandler(waitlistSvc)
	authH := handler.NewAuthHandler(accountSvc)
	locationH := handler.NewLocationHandler(locationSvc)

	optionalUser := appmiddleware.OptionalUser(accountSvc)

	r.Get("/health-check/{action}", healthH.Ping)

	r.Route("/otp", func(r chi.Router) {
		r.Use(sensitiveRL.Limit, optionalUser)
		r.Post("/send", otpH.Send)
		r.Post("/verify", otpH.Verify)
	})

	r.Route("/admin", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/login", adminH.Login)
		r.Get("/verify", adminH.Verify)
		r.Post("/logout", adminH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireAdmin(adminSvc))
			r.Get("/entries", adminH.Entries)
			r.Post("/entries/export", adminH.Export)
		})
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Use(optionalUser)
		r.Post("/", profileH.Submit)
		r.Get("/{userId}", profileH.Get)
	})

	r.Route("/auth", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/google", authH.Google)
		r.With(appmiddleware.RequireUser(accountSvc)).Get("/session", authH.Session)
	})

	r.Get("/locations/search", locationH.Search)
	r.Get("/locations/reverse", locationH.Reverse)

	return r
}

func buildServices(cfg *config.Config, deps *Deps) (otp.Service, admin.Service, waitlist.Service, account.Service, location.Service) {
	otpOpts := []otp.Option{otp.WithTTL(cfg.OTPTTL)}
	adminOpts := []admin.Option{}
	waitlistOpts := []waitlist.Option{}
	accountOpts := []account.Option{account.WithSessionTTL(cfg.UserSessionTTL)}
	if deps.Now != nil {
		otpOpts = append(otpOpts, otp.WithClock(deps.Now))
		adminOpts = append(adminOpts, admin.WithClock(deps.Now))
		waitlistOpts = append(waitlistOpts, waitlist.WithClock(deps.Now))
		accountOpts = append(accountOpts, account.WithClock(deps.Now))
	}
	if deps.SMSSender != nil {
		waitlistOpts = append(waitlistOpts, waitlist.WithSMS(deps.SMSSender))
	}
	if deps.Exports != nil {
		waitlistOpts = append(waitlistOpts, waitlist.WithExports(deps.Exports))
	}

	otpSvc := otp.NewService(deps.OTPRepo, deps.Mailer, otpOpts...)
	adminSvc := admin.NewService(admin.Config{
		Email:        cfg.AdminEmail,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		SessionTTL:   cfg.AdminSessionTTL,
	}, deps.Tokens, adminOpts...)
	waitlistSvc := waitlist.NewService(deps.ProfileRepo, otpSvc, waitlistOpts...)
	accountSvc := account.NewService(deps.Google, deps.Tokens, accountOpts...)
	locationSvc := location.NewService(deps.Places, deps.Geocoder)

	return otpSvc, adminSvc, waitlistSvc, accountSvc, locationSvc
}
