package config

import (
	"testing"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/match"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ftcstats")
	t.Setenv("FTC_API_TOKEN", "dXNlcjprZXk=")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestLoad_RequiresFTCToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FTC_API_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without FTC_API_TOKEN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FTCBaseURL != "https://ftc-api.firstinspires.org/v2.0" {
		t.Fatalf("unexpected FTCBaseURL: %q", cfg.FTCBaseURL)
	}
	if cfg.FTCRequestInterval != 300*time.Millisecond {
		t.Fatalf("unexpected FTCRequestInterval: %s", cfg.FTCRequestInterval)
	}
	if cfg.SyncEventBatchSize != 25 {
		t.Fatalf("unexpected SyncEventBatchSize: %d", cfg.SyncEventBatchSize)
	}
	if cfg.DBChunkSize != 500 {
		t.Fatalf("unexpected DBChunkSize: %d", cfg.DBChunkSize)
	}
	if len(cfg.SyncSeasons) != 1 || cfg.SyncSeasons[0] != 2021 {
		t.Fatalf("unexpected SyncSeasons: %v", cfg.SyncSeasons)
	}
	if cfg.SyncInterval != 5*time.Minute {
		t.Fatalf("unexpected SyncInterval: %s", cfg.SyncInterval)
	}
	if !cfg.FTCCircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
}

func TestLoad_SeasonListParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SYNC_SEASONS", "2021, 2020,2021")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.SyncSeasons) != 2 || cfg.SyncSeasons[0] != 2021 || cfg.SyncSeasons[1] != 2020 {
		t.Fatalf("unexpected SyncSeasons: %v", cfg.SyncSeasons)
	}
}

func TestLoad_RejectsInvalidSeasons(t *testing.T) {
	setRequiredEnv(t)

	for _, value := range []string{"abc", "1017", ","} {
		t.Setenv("SYNC_SEASONS", value)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SYNC_SEASONS=%q", value)
		}
	}
}

func TestLoad_LevelOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SYNC_LEVEL_OVERRIDES", "playoff:finals, OTHER:quals")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LevelOverrides["PLAYOFF"] != match.LevelFinals {
		t.Fatalf("unexpected PLAYOFF override: %v", cfg.LevelOverrides["PLAYOFF"])
	}
	if cfg.LevelOverrides["OTHER"] != match.LevelQuals {
		t.Fatalf("unexpected OTHER override: %v", cfg.LevelOverrides["OTHER"])
	}
}

func TestLoad_RejectsMalformedLevelOverrides(t *testing.T) {
	setRequiredEnv(t)

	for _, value := range []string{"playoff", "playoff:bracket", ":finals"} {
		t.Setenv("SYNC_LEVEL_OVERRIDES", value)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SYNC_LEVEL_OVERRIDES=%q", value)
		}
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
