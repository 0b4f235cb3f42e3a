package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/ftcstats/ftcstats/external/ftcapi"
	"github.com/ftcstats/ftcstats/internal/config"
	"github.com/ftcstats/ftcstats/internal/domain/match"
	"github.com/ftcstats/ftcstats/internal/infrastructure/repository/postgres"
	"github.com/ftcstats/ftcstats/internal/platform/logging"
	"github.com/ftcstats/ftcstats/internal/platform/ratelimit"
	"github.com/ftcstats/ftcstats/internal/platform/resilience"
	"github.com/ftcstats/ftcstats/internal/usecase"
)

// App bundles the wired sync pipeline and the resources it owns.
type App struct {
	Runner *usecase.SyncRunner

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	client := ftcapi.NewClient(ftcapi.ClientConfig{
		BaseURL:    cfg.FTCBaseURL,
		Token:      cfg.FTCToken,
		Timeout:    cfg.FTCTimeout,
		MaxRetries: cfg.FTCMaxRetries,
		Limiter:    ratelimit.NewLimiter(cfg.FTCRequestInterval),
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FTCCircuitEnabled,
			FailureThreshold: cfg.FTCCircuitFailureCount,
			OpenTimeout:      cfg.FTCCircuitOpenTimeout,
			HalfOpenProbes:   cfg.FTCCircuitHalfOpenMaxReq,
		},
	})

	cursorRepo := postgres.NewSyncCursorRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	store := postgres.NewSyncStore(db, cfg.DBChunkSize)

	eventSync := usecase.NewEventSyncService(client, cursorRepo, store, logger)
	matchSync := usecase.NewMatchSyncService(client, cursorRepo, eventRepo, store, usecase.MatchSyncConfig{
		EventBatchSize: cfg.SyncEventBatchSize,
		LevelMapper:    match.NewLevelMapper(cfg.LevelOverrides),
	}, logger)

	return &App{
		Runner: usecase.NewSyncRunner(eventSync, matchSync),
		db:     db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
