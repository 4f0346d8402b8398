// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes the landing site
// settings: server timeouts, logging, database and media storage, the
// SmartCaptcha and SMTP integrations, rate limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "turret-landing")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// StorageConfig selects where uploaded documents and media live.
type StorageConfig struct {
	Backend     string // STORAGE_BACKEND: local|s3
	MediaRoot   string // MEDIA_ROOT, local backend root directory
	S3Bucket    string // S3_BUCKET
	S3Region    string // S3_REGION
	S3Endpoint  string // S3_ENDPOINT, custom endpoint for MinIO and friends
	S3Prefix    string // S3_PREFIX, key prefix inside the bucket
	S3PathStyle bool   // S3_PATH_STYLE
}

// CaptchaConfig configures Yandex SmartCaptcha verification.
type CaptchaConfig struct {
	ClientKey  string        // SMARTCAPTCHA_CLIENT_KEY, rendered into the page
	ServerKey  string        // SMARTCAPTCHA_SERVER_KEY, empty disables verification
	URL        string        // SMARTCAPTCHA_URL
	Timeout    time.Duration // SMARTCAPTCHA_TIMEOUT
	FailClosed bool          // SMARTCAPTCHA_FAIL_CLOSED, reject on missing token or verifier errors
}

// EmailConfig configures outbound notification email.
type EmailConfig struct {
	Enabled      bool          // EMAIL_ENABLED; when false messages are only logged
	Host         string        // SMTP_HOST
	Port         int           // SMTP_PORT
	Username     string        // SMTP_USERNAME
	Password     string        // SMTP_PASSWORD
	From         string        // DEFAULT_FROM_EMAIL
	ContactEmail string        // CONTACT_EMAIL, recipient of new-lead notifications
	Timeout      time.Duration // SMTP_TIMEOUT, bounds one delivery attempt
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 60s, downloads stream through this
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	AdminBasePath  string // base path for the back-office JSON API

	// App
	DatabaseURL      string        // postgres://… or a SQLite path (optionally sqlite://)
	SettingsCacheTTL time.Duration // 0 disables the singleton cache
	MaxUploadBytes   int64         // back-office document upload limit
	MaxFormBytes     int64         // contact form body limit

	// Integrations
	Storage StorageConfig
	Captcha CaptchaConfig
	Email   EmailConfig

	// Rate limiting
	RateRPS          float64 // back-office API tokens per second (>= 0)
	RateBurst        int     // back-office API bucket size (>= 1)
	ContactRateRPS   float64 // contact submissions per second per IP (>= 0)
	ContactRateBurst int     // contact bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty means the client IP is always the TCP peer.
	TrustedProxies []string

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		AdminBasePath:  normalizeBasePath(getenv("ADMIN_BASE_PATH", "/admin/api")),

		// App
		DatabaseURL:      getenv("DATABASE_URL", "app.db"),
		SettingsCacheTTL: getdur("SETTINGS_CACHE_TTL", 30*time.Second),
		MaxUploadBytes:   int64(getint("MAX_UPLOAD_BYTES", 50<<20)),
		MaxFormBytes:     int64(getint("MAX_FORM_BYTES", 64<<10)),

		Storage: StorageConfig{
			Backend:     strings.ToLower(getenv("STORAGE_BACKEND", StorageLocal)),
			MediaRoot:   getenv("MEDIA_ROOT", "media"),
			S3Bucket:    getenv("S3_BUCKET", ""),
			S3Region:    getenv("S3_REGION", "ru-central1"),
			S3Endpoint:  getenv("S3_ENDPOINT", ""),
			S3Prefix:    strings.Trim(getenv("S3_PREFIX", ""), "/"),
			S3PathStyle: getbool("S3_PATH_STYLE", false),
		},
		Captcha: CaptchaConfig{
			ClientKey:  getenv("SMARTCAPTCHA_CLIENT_KEY", ""),
			ServerKey:  getenv("SMARTCAPTCHA_SERVER_KEY", ""),
			URL:        getenv("SMARTCAPTCHA_URL", "https://smartcaptcha.yandexcloud.net/validate"),
			Timeout:    getdur("SMARTCAPTCHA_TIMEOUT", 5*time.Second),
			FailClosed: getbool("SMARTCAPTCHA_FAIL_CLOSED", false),
		},
		Email: EmailConfig{
			Enabled:      getbool("EMAIL_ENABLED", false),
			Host:         getenv("SMTP_HOST", "smtp.mail.ru"),
			Port:         getint("SMTP_PORT", 587),
			Username:     getenv("SMTP_USERNAME", ""),
			Password:     getenv("SMTP_PASSWORD", ""),
			From:         getenv("DEFAULT_FROM_EMAIL", "noreply@npo-arsenal.ru"),
			ContactEmail: getenv("CONTACT_EMAIL", "npo.arsenal.info@mail.ru"),
			Timeout:      getdur("SMTP_TIMEOUT", 10*time.Second),
		},

		// Rate limiting
		RateRPS:          getfloat("RATE_RPS", 5.0),
		RateBurst:        getint("RATE_BURST", 10),
		ContactRateRPS:   getfloat("CONTACT_RATE_RPS", 0.2),
		ContactRateBurst: getint("CONTACT_RATE_BURST", 5),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},
		TrustedProxies: splitCSV(getenv("TRUSTED_PROXIES", "")),

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "turret-landing"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return cfg, errors.New("DATABASE_URL must not be empty")
	}
	if cfg.SettingsCacheTTL < 0 {
		return cfg, errors.New("SETTINGS_CACHE_TTL must be >= 0")
	}
	if cfg.MaxUploadBytes <= 0 || cfg.MaxFormBytes <= 0 {
		return cfg, errors.New("MAX_UPLOAD_BYTES and MAX_FORM_BYTES must be > 0")
	}
	switch cfg.Storage.Backend {
	case StorageLocal:
		if strings.TrimSpace(cfg.Storage.MediaRoot) == "" {
			return cfg, errors.New("MEDIA_ROOT must not be empty")
		}
	case StorageS3:
		if strings.TrimSpace(cfg.Storage.S3Bucket) == "" {
			return cfg, errors.New("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return cfg, errors.New("STORAGE_BACKEND must be one of: local, s3")
	}
	if cfg.Captcha.Timeout <= 0 {
		return cfg, errors.New("SMARTCAPTCHA_TIMEOUT must be > 0")
	}
	if cfg.Email.Enabled {
		if strings.TrimSpace(cfg.Email.Host) == "" || cfg.Email.Port <= 0 {
			return cfg, errors.New("SMTP_HOST and SMTP_PORT are required when EMAIL_ENABLED")
		}
		if strings.TrimSpace(cfg.Email.ContactEmail) == "" {
			return cfg, errors.New("CONTACT_EMAIL is required when EMAIL_ENABLED")
		}
		if cfg.Email.Timeout <= 0 {
			return cfg, errors.New("SMTP_TIMEOUT must be > 0")
		}
	}
	if cfg.RateRPS < 0 || cfg.ContactRateRPS < 0 {
		return cfg, errors.New("RATE_RPS and CONTACT_RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 || cfg.ContactRateBurst < 1 {
		return cfg, errors.New("RATE_BURST and CONTACT_RATE_BURST must be >= 1")
	}
	for _, p := range cfg.TrustedProxies {
		if !validProxy(p) {
			return cfg, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// CaptchaEnabled reports whether server-side SmartCaptcha verification is on.
func (c Config) CaptchaEnabled() bool { return strings.TrimSpace(c.Captcha.ServerKey) != "" }

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func validProxy(s string) bool {
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
