package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBChunkSize             int

	FTCBaseURL               string
	FTCToken                 string
	FTCTimeout               time.Duration
	FTCMaxRetries            int
	FTCRequestInterval       time.Duration
	FTCCircuitEnabled        bool
	FTCCircuitFailureCount   int
	FTCCircuitOpenTimeout    time.Duration
	FTCCircuitHalfOpenMaxReq int

	SyncSeasons        []int
	SyncEventBatchSize int
	SyncMaxWorkers     int
	SyncInterval       time.Duration
	LevelOverrides     map[string]match.TournamentLevel

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}
	dbChunkSize, err := getEnvAsInt("DB_CHUNK_SIZE", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CHUNK_SIZE: %w", err)
	}
	if dbChunkSize <= 0 {
		return Config{}, fmt.Errorf("DB_CHUNK_SIZE must be > 0")
	}

	ftcToken := strings.TrimSpace(getEnv("FTC_API_TOKEN", ""))
	if ftcToken == "" {
		return Config{}, fmt.Errorf("FTC_API_TOKEN is required")
	}
	ftcTimeout, err := time.ParseDuration(getEnv("FTC_API_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_TIMEOUT: %w", err)
	}
	ftcMaxRetries, err := getEnvAsInt("FTC_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_MAX_RETRIES: %w", err)
	}
	if ftcMaxRetries < 0 {
		return Config{}, fmt.Errorf("FTC_API_MAX_RETRIES must be >= 0")
	}
	ftcRequestInterval, err := time.ParseDuration(getEnv("FTC_API_REQUEST_INTERVAL", "300ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_REQUEST_INTERVAL: %w", err)
	}
	if ftcRequestInterval < 0 {
		return Config{}, fmt.Errorf("FTC_API_REQUEST_INTERVAL must be >= 0")
	}
	ftcCircuitEnabled, err := strconv.ParseBool(getEnv("FTC_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_CIRCUIT_ENABLED: %w", err)
	}
	ftcCircuitFailureCount, err := getEnvAsInt("FTC_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	ftcCircuitOpenTimeout, err := time.ParseDuration(getEnv("FTC_API_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	ftcCircuitHalfOpenMaxReq, err := getEnvAsInt("FTC_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FTC_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	syncSeasons, err := parseSeasonList(getEnv("SYNC_SEASONS", "2021"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_SEASONS: %w", err)
	}
	syncEventBatchSize, err := getEnvAsInt("SYNC_EVENT_BATCH_SIZE", 25)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_EVENT_BATCH_SIZE: %w", err)
	}
	if syncEventBatchSize <= 0 {
		return Config{}, fmt.Errorf("SYNC_EVENT_BATCH_SIZE must be > 0")
	}
	syncMaxWorkers, err := getEnvAsInt("SYNC_MAX_WORKERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_MAX_WORKERS: %w", err)
	}
	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_INTERVAL: %w", err)
	}
	if syncInterval <= 0 {
		return Config{}, fmt.Errorf("SYNC_INTERVAL must be > 0")
	}
	levelOverrides, err := parseLevelOverrides(getEnv("SYNC_LEVEL_OVERRIDES", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_LEVEL_OVERRIDES: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeEnabled && pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := strings.TrimSpace(getEnv("SERVICE_NAME", "ftcstats-sync"))

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             serviceName,
		ServiceVersion:          strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		DBChunkSize:             dbChunkSize,

		FTCBaseURL:               strings.TrimSpace(getEnv("FTC_API_BASE_URL", "https://ftc-api.firstinspires.org/v2.0")),
		FTCToken:                 ftcToken,
		FTCTimeout:               ftcTimeout,
		FTCMaxRetries:            ftcMaxRetries,
		FTCRequestInterval:       ftcRequestInterval,
		FTCCircuitEnabled:        ftcCircuitEnabled,
		FTCCircuitFailureCount:   ftcCircuitFailureCount,
		FTCCircuitOpenTimeout:    ftcCircuitOpenTimeout,
		FTCCircuitHalfOpenMaxReq: ftcCircuitHalfOpenMaxReq,

		SyncSeasons:        syncSeasons,
		SyncEventBatchSize: syncEventBatchSize,
		SyncMaxWorkers:     syncMaxWorkers,
		SyncInterval:       syncInterval,
		LevelOverrides:     levelOverrides,

		UptraceEnabled:     uptraceEnabled,
		UptraceDSN:         uptraceDSN,
		UptraceLogsEnabled: uptraceLogsEnabled,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// parseSeasonList parses a comma-separated list of season years.
func parseSeasonList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	seen := make(map[int]struct{}, len(parts))
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		year, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", item, err)
		}
		if year < 2019 || year > 2100 {
			return nil, fmt.Errorf("season %d out of range", year)
		}
		if _, exists := seen[year]; exists {
			continue
		}
		seen[year] = struct{}{}
		out = append(out, year)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one season is required")
	}
	return out, nil
}

// parseLevelOverrides parses "API_VALUE:level" pairs, e.g.
// "PLAYOFF:finals,OTHER:quals".
func parseLevelOverrides(raw string) (map[string]match.TournamentLevel, error) {
	out := make(map[string]match.TournamentLevel)
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid override %q, expected API_VALUE:level", item)
		}
		key := strings.ToUpper(strings.TrimSpace(segments[0]))
		if key == "" {
			return nil, fmt.Errorf("empty tournament level key in %q", item)
		}

		var level match.TournamentLevel
		switch strings.ToLower(strings.TrimSpace(segments[1])) {
		case "quals":
			level = match.LevelQuals
		case "semis":
			level = match.LevelSemis
		case "finals":
			level = match.LevelFinals
		default:
			return nil, fmt.Errorf("invalid level in %q: valid values are quals, semis, finals", item)
		}
		out[key] = level
	}
	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
