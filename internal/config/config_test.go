package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/draft-league-dashboard/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	for _, key := range []string{
		"APP_SERVICE_NAME", "APP_HTTP_ADDR", "APP_LOG_LEVEL",
		"DRAFT_API_BASE_URL", "DRAFT_API_TIMEOUT", "DRAFT_API_USER_AGENT",
		"CACHE_ENABLED", "CACHE_TTL",
		"DASHBOARD_DEFAULT_LEAGUE_ID", "DASHBOARD_TOP_N", "DASHBOARD_HISTOGRAM_MAX_BINS",
		"UPTRACE_ENABLED", "PPROF_ENABLED", "PYROSCOPE_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "draft-league-dashboard" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.DraftAPIBaseURL != "https://draft.premierleague.com/api" {
		t.Fatalf("unexpected draft api base url: %q", cfg.DraftAPIBaseURL)
	}
	if cfg.DraftAPITimeout != 15*time.Second {
		t.Fatalf("unexpected draft api timeout: %s", cfg.DraftAPITimeout)
	}
	if !cfg.DraftAPICircuitEnabled || cfg.DraftAPICircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit defaults: enabled=%v failures=%d", cfg.DraftAPICircuitEnabled, cfg.DraftAPICircuitFailureCount)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 0 {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.DashboardDefaultLeagueID != "148968" {
		t.Fatalf("unexpected default league id: %q", cfg.DashboardDefaultLeagueID)
	}
	if cfg.DashboardTopN != 10 || cfg.DashboardHistogramMaxBins != 10 {
		t.Fatalf("unexpected dashboard defaults: top=%d bins=%d", cfg.DashboardTopN, cfg.DashboardHistogramMaxBins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-other=1, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "draft-league-dashboard-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "draft-league-dashboard-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origin list")
		}
	})
}

func TestLoad_DraftAPIConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DRAFT_API_BASE_URL", "http://localhost:9000/api")
		t.Setenv("DRAFT_API_TIMEOUT", "3s")
		t.Setenv("DRAFT_API_USER_AGENT", "dashboard-test")
		t.Setenv("DRAFT_API_CIRCUIT_ENABLED", "false")
		t.Setenv("DRAFT_API_CIRCUIT_FAILURE_COUNT", "2")
		t.Setenv("DRAFT_API_CIRCUIT_OPEN_TIMEOUT", "1m")
		t.Setenv("DRAFT_API_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DraftAPIBaseURL != "http://localhost:9000/api" {
			t.Fatalf("unexpected base url: %q", cfg.DraftAPIBaseURL)
		}
		if cfg.DraftAPITimeout != 3*time.Second {
			t.Fatalf("unexpected timeout: %s", cfg.DraftAPITimeout)
		}
		if cfg.DraftAPIUserAgent != "dashboard-test" {
			t.Fatalf("unexpected user agent: %q", cfg.DraftAPIUserAgent)
		}
		if cfg.DraftAPICircuitEnabled {
			t.Fatalf("expected circuit disabled")
		}
		if cfg.DraftAPICircuitFailureCount != 2 || cfg.DraftAPICircuitOpenTimeout != time.Minute || cfg.DraftAPICircuitHalfOpenMaxReq != 1 {
			t.Fatalf("unexpected circuit config: %+v", cfg)
		}
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "invalid timeout", key: "DRAFT_API_TIMEOUT", value: "soon"},
		{name: "zero timeout", key: "DRAFT_API_TIMEOUT", value: "0s"},
		{name: "invalid circuit flag", key: "DRAFT_API_CIRCUIT_ENABLED", value: "maybe"},
		{name: "zero failure count", key: "DRAFT_API_CIRCUIT_FAILURE_COUNT", value: "0"},
		{name: "negative open timeout", key: "DRAFT_API_CIRCUIT_OPEN_TIMEOUT", value: "-1s"},
		{name: "zero half open requests", key: "DRAFT_API_CIRCUIT_HALF_OPEN_MAX_REQ", value: "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("explicit ttl", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "false")
		t.Setenv("CACHE_TTL", "90s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CacheEnabled {
			t.Fatalf("expected cache disabled")
		}
		if cfg.CacheTTL != 90*time.Second {
			t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("negative ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "-1m")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative CACHE_TTL")
		}
	})
}

func TestLoad_DashboardConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DASHBOARD_DEFAULT_LEAGUE_ID", " 42 ")
		t.Setenv("DASHBOARD_TOP_N", "5")
		t.Setenv("DASHBOARD_HISTOGRAM_MAX_BINS", "20")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DashboardDefaultLeagueID != "42" {
			t.Fatalf("unexpected default league id: %q", cfg.DashboardDefaultLeagueID)
		}
		if cfg.DashboardTopN != 5 || cfg.DashboardHistogramMaxBins != 20 {
			t.Fatalf("unexpected dashboard config: top=%d bins=%d", cfg.DashboardTopN, cfg.DashboardHistogramMaxBins)
		}
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric league id", key: "DASHBOARD_DEFAULT_LEAGUE_ID", value: "abc"},
		{name: "signed league id", key: "DASHBOARD_DEFAULT_LEAGUE_ID", value: "-5"},
		{name: "zero top n", key: "DASHBOARD_TOP_N", value: "0"},
		{name: "invalid top n", key: "DASHBOARD_TOP_N", value: "ten"},
		{name: "negative max bins", key: "DASHBOARD_HISTOGRAM_MAX_BINS", value: "-3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: ""},
		{raw: "uptrace-dsn=https://a@b", want: "https://a@b"},
		{raw: "Uptrace-DSN='https://a@b'", want: "https://a@b"},
		{raw: "authorization=abc", want: ""},
	}
	for _, tc := range tests {
		if got := parseUptraceDSNFromOTLPHeaders(tc.raw); got != tc.want {
			t.Fatalf("parseUptraceDSNFromOTLPHeaders(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "DASHBOARD_TOP_N=7\nAPP_SERVICE_NAME=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "from-process")
	t.Setenv("DASHBOARD_TOP_N", "")
	// godotenv only fills variables that are unset, so clear the key the file
	// should provide. t.Setenv restores it afterwards.
	if err := os.Unsetenv("DASHBOARD_TOP_N"); err != nil {
		t.Fatalf("unset DASHBOARD_TOP_N: %v", err)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DashboardTopN != 7 {
		t.Fatalf("expected DASHBOARD_TOP_N from file, got %d", cfg.DashboardTopN)
	}
	if cfg.ServiceName != "from-process" {
		t.Fatalf("expected process env to win, got %q", cfg.ServiceName)
	}
}

func TestLoadDotEnv_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.env")
	if err := os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	if err := LoadDotEnv(path); err == nil {
		t.Fatalf("expected error for malformed env file")
	}
}
