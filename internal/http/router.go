// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic router setup; all dependencies injected
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/turret-landing/docs" // swagger spec registration
	"github.com/tbourn/turret-landing/internal/config"
	"github.com/tbourn/turret-landing/internal/http/handlers"
	"github.com/tbourn/turret-landing/internal/http/middleware"
	"github.com/tbourn/turret-landing/internal/repo"
	"github.com/tbourn/turret-landing/internal/services"
	"github.com/tbourn/turret-landing/internal/storage"
	"github.com/tbourn/turret-landing/internal/web"
)

// Deps are the runtime dependencies of the HTTP layer.
type Deps struct {
	DB       *gorm.DB
	Store    storage.Store
	Gate     *services.BotGate
	Notifier services.ContactNotifier
}

// corsAllowHeaders are the request headers browsers may send cross-origin.
var corsAllowHeaders = []string{
	"Origin", "Content-Type", "Accept", "Authorization",
	"X-Requested-With", middleware.HeaderIdempotencyKey,
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: the public pages and contact form, document downloads and media,
// health and metrics, optional Swagger UI, and the back-office API under
// cfg.AdminBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (form limit; the back-office has its own upload limit)
//  6. Gzip for pages, JSON and assets
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. CORS and Security headers
//
// Rate limiting is per route group: per IP on the contact form and per
// operator on the back-office API.
//
// Client IPs come from X-Forwarded-For only when the TCP peer is listed in
// cfg.TrustedProxies; otherwise the peer address is used.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid trusted proxies; trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"Cookie", "Set-Cookie"},
		SkipPaths:   []string{"/health", "/metrics"},
	}))

	// 4) Panic recovery to JSON/HTML 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body size limit for everything but the back-office uploads
	r.Use(limitBody(cfg.MaxFormBytes, cfg.AdminBasePath))

	// 6) Compression; downloads and media stream with a known length
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics", "/media/"}),
		gzip.WithExcludedPathsRegexs([]string{`^/document/\d+/download/?$`}),
	))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		func(ctx context.Context, clientKey, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, deps.DB, clientKey, key, now)
			switch {
			case errors.Is(err, repo.ErrNotFound):
				return false, nil
			case err != nil:
				return false, err
			}
			return true, nil
		},
	))

	// 9) CORS posture (safe defaults: allow all if none configured)
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	// Security headers; the CSP admits the SmartCaptcha widget
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
		EnableCSP:    true,
	}))

	// Fallbacks
	r.NoRoute(handlers.NotFound)
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Pages and assets
	r.SetHTMLTemplate(web.MustTemplates())
	r.StaticFS("/static", web.Static())
	r.GET("/media/*key", handlers.Media(deps.Store))

	// Dependency injection: services ← repo/db/store
	settingsSvc := services.NewSettingsService(deps.DB, cfg.SettingsCacheTTL)
	catalogSvc := &services.CatalogService{DB: deps.DB, Settings: settingsSvc}
	contactSvc := &services.ContactService{
		DB:             deps.DB,
		Gate:           deps.Gate,
		Notifier:       deps.Notifier,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}
	docSvc := &services.DocumentService{DB: deps.DB, Store: deps.Store}
	adminSvc := &services.AdminService{DB: deps.DB}

	// Public site
	site := handlers.New(catalogSvc, settingsSvc, contactSvc, docSvc, handlers.Options{
		CaptchaClientKey: cfg.Captcha.ClientKey,
		MediaURL:         "/media",
	})
	contactRL := middleware.NewRateLimiter(cfg.ContactRateRPS, cfg.ContactRateBurst, middleware.KeyByIP())
	site.Register(r, contactRL.Handler())

	// Back-office API
	adminRL := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByAdminOrIP())
	admin := groupWithPrefix(r, cfg.AdminBasePath)
	admin.Use(
		limitBody(cfg.MaxUploadBytes),
		middleware.SecurityHeaders(middleware.SecurityOptions{NoStore: true}),
		middleware.AdminAuth("turret-landing admin", func(ctx context.Context, username, password string) error {
			_, err := adminSvc.Authenticate(ctx, username, password)
			return err
		}),
		adminRL.Handler(),
	)
	handlers.NewAdmin(contactSvc, settingsSvc, docSvc, catalogSvc).Register(admin)
}

// corsMiddleware returns the CORS chain for the configured allowlist. With no
// allowlist every origin is accepted without credentials.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
				AllowHeaders:     corsAllowHeaders,
				ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	// Echo ACAO with the request Origin when it is in the allowlist.
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     corsAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// limitBody returns a Gin middleware that caps the request body size to
// maxBytes using http.MaxBytesReader. Paths under any of the skip prefixes
// are left alone. Requests exceeding the cap cause downstream body reads to
// error.
func limitBody(maxBytes int64, skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range skip {
			if p != "" && p != "/" && strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
