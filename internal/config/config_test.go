package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.AdminBasePath != "/admin/api" {
		t.Fatalf("unexpected admin base path %q", cfg.AdminBasePath)
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("ADMIN_BASE_PATH", "backoffice/") // -> "/backoffice"

	// App
	t.Setenv("DATABASE_URL", "postgres://u:p@db/site")
	t.Setenv("SETTINGS_CACHE_TTL", "0s")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	// Integrations
	t.Setenv("STORAGE_BACKEND", "S3")
	t.Setenv("S3_BUCKET", "docs")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_PREFIX", "/media/")
	t.Setenv("S3_PATH_STYLE", "true")
	t.Setenv("SMARTCAPTCHA_SERVER_KEY", "srv")
	t.Setenv("SMARTCAPTCHA_TIMEOUT", "2s")
	t.Setenv("SMARTCAPTCHA_FAIL_CLOSED", "1")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("CONTACT_EMAIL", "sales@example.com")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10
	t.Setenv("CONTACT_RATE_RPS", "1")
	t.Setenv("CONTACT_RATE_BURST", "3")

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	t.Setenv("IDEMPOTENCY_TTL", "48h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled || cfg.AdminBasePath != "/backoffice" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if cfg.DatabaseURL != "postgres://u:p@db/site" || cfg.SettingsCacheTTL != 0 || cfg.MaxUploadBytes != 1024 {
		t.Fatalf("app fields unexpected: %+v", cfg)
	}
	if cfg.Storage.Backend != StorageS3 || cfg.Storage.S3Bucket != "docs" || cfg.Storage.S3Prefix != "media" || !cfg.Storage.S3PathStyle {
		t.Fatalf("storage unexpected: %+v", cfg.Storage)
	}
	if !cfg.CaptchaEnabled() || !cfg.Captcha.FailClosed || cfg.Captcha.Timeout != 2*time.Second {
		t.Fatalf("captcha unexpected: %+v", cfg.Captcha)
	}
	if !cfg.Email.Enabled || cfg.Email.Port != 2525 || cfg.Email.ContactEmail != "sales@example.com" {
		t.Fatalf("email unexpected: %+v", cfg.Email)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 || cfg.ContactRateRPS != 1 || cfg.ContactRateBurst != 3 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Storage.Backend != StorageLocal || cfg.Storage.MediaRoot != "media" {
		t.Fatalf("storage defaults unexpected: %+v", cfg.Storage)
	}
	if cfg.CaptchaEnabled() || cfg.Captcha.FailClosed {
		t.Fatalf("captcha should be disabled and fail-open by default: %+v", cfg.Captcha)
	}
	if cfg.Captcha.URL != "https://smartcaptcha.yandexcloud.net/validate" || cfg.Captcha.Timeout != 5*time.Second {
		t.Fatalf("captcha defaults unexpected: %+v", cfg.Captcha)
	}
	if cfg.Email.Enabled {
		t.Fatalf("email should be disabled by default")
	}
	if cfg.OTEL.ServiceName != "turret-landing" {
		t.Fatalf("otel service name default unexpected: %q", cfg.OTEL.ServiceName)
	}
	if cfg.TrustedProxies != nil {
		t.Fatalf("no proxy should be trusted by default: %v", cfg.TrustedProxies)
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1,::1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []string{"10.0.0.0/8", "127.0.0.1", "::1"}
	if !reflect.DeepEqual(cfg.TrustedProxies, want) {
		t.Fatalf("TrustedProxies = %v, want %v", cfg.TrustedProxies, want)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty PORT via spaces", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"empty DATABASE_URL", map[string]string{"DATABASE_URL": "   "}, "DATABASE_URL must not be empty"},
		{"negative cache ttl", map[string]string{"SETTINGS_CACHE_TTL": "-1s"}, "SETTINGS_CACHE_TTL"},
		{"zero upload limit", map[string]string{"MAX_UPLOAD_BYTES": "0"}, "MAX_UPLOAD_BYTES"},
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "ftp"}, "STORAGE_BACKEND"},
		{"s3 without bucket", map[string]string{"STORAGE_BACKEND": "s3"}, "S3_BUCKET"},
		{"empty media root", map[string]string{"MEDIA_ROOT": " "}, "MEDIA_ROOT"},
		{"captcha timeout", map[string]string{"SMARTCAPTCHA_TIMEOUT": "0s"}, "SMARTCAPTCHA_TIMEOUT"},
		{"email without port", map[string]string{"EMAIL_ENABLED": "1", "SMTP_PORT": "0"}, "SMTP_HOST and SMTP_PORT"},
		{"smtp timeout", map[string]string{"EMAIL_ENABLED": "1", "SMTP_TIMEOUT": "0s"}, "SMTP_TIMEOUT"},
		{"rate rps negative", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"contact burst < 1", map[string]string{"CONTACT_RATE_BURST": "0"}, "CONTACT_RATE_BURST"},
		{"bad trusted proxy", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8,proxy.local"}, "TRUSTED_PROXIES"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl non-positive", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil || !containsErr(err, tc.want) {
				t.Fatalf("expected error containing %q, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", "42")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"}
	for i, v := range trueVals {
		k := "B_T_" + keySuffix(i)
		t.Setenv(k, v)
		if !getbool(k, false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	falseVals := []string{"0", "false", "FALSE", " no ", "N", "off", "Off"}
	for i, v := range falseVals {
		k := "B_F_" + keySuffix(i)
		t.Setenv(k, v)
		if getbool(k, true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	in := " a, ,b ,  c  ,"
	want := []string{"a", "b", "c"}
	if got := splitCSV(in); !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV mismatch: got %#v want %#v", got, want)
	}

	if normalizeBasePath("") != "/" {
		t.Fatalf("normalizeBasePath empty -> '/' failed")
	}
	if normalizeBasePath("v1") != "/v1" {
		t.Fatalf("normalizeBasePath missing leading slash failed")
	}
	if normalizeBasePath("/v1/") != "/v1" {
		t.Fatalf("normalizeBasePath trailing slash trim failed")
	}
	if normalizeBasePath(" / ") != "/" {
		t.Fatalf("normalizeBasePath whitespace failed")
	}
}

func keySuffix(i int) string { return string('a' + rune(i)) }

func TestMain(m *testing.M) {
	for _, k := range []string{"PORT", "DATABASE_URL", "STORAGE_BACKEND", "EMAIL_ENABLED", "SMARTCAPTCHA_SERVER_KEY", "TRUSTED_PROXIES"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
