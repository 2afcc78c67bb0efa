package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/clubkit/roster-service/internal/config"
	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/domain/member"
	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/domain/season"
	"github.com/clubkit/roster-service/internal/infrastructure/account/gatekeeper"
	cacherepo "github.com/clubkit/roster-service/internal/infrastructure/repository/cache"
	"github.com/clubkit/roster-service/internal/infrastructure/repository/memory"
	"github.com/clubkit/roster-service/internal/infrastructure/repository/postgres"
	"github.com/clubkit/roster-service/internal/interfaces/httpapi"
	"github.com/clubkit/roster-service/internal/platform/cache"
	"github.com/clubkit/roster-service/internal/platform/logging"
	"github.com/clubkit/roster-service/internal/platform/resilience"
	"github.com/clubkit/roster-service/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the HTTP surface from
// config. The returned cleanup releases infrastructure handles (currently the
// database pool) and must run on shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		cacheTTL = -1
	}
	store := cache.NewStore(cacheTTL)

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	lineupRepo := cacherepo.NewLineupRepository(repos.lineups, store)
	memberRepo := cacherepo.NewMemberRepository(repos.members, store)

	lineupSvc := usecase.NewLineupService(lineupRepo, repos.categories, repos.seasons, memberRepo, logger)
	lineupSvc.SetRepoTimeout(cfg.RepoTimeout)

	categorySvc := usecase.NewCategoryService(repos.categories, store)
	seasonSvc := usecase.NewSeasonService(repos.seasons, store)

	rolloverSvc := usecase.NewRolloverService(lineupRepo, repos.categories, repos.seasons, logger)
	rolloverSvc.SetDefaultWorkers(cfg.RolloverMaxWorkers)

	gatekeeperClient := gatekeeper.NewClient(nil, gatekeeper.Config{
		BaseURL:        cfg.GatekeeperBaseURL,
		IntrospectPath: cfg.GatekeeperIntrospectPath,
		AdminKey:       cfg.GatekeeperAdminKey,
		Timeout:        cfg.GatekeeperTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenReq,
		},
	}, logger)

	handler := httpapi.NewHandler(lineupSvc, categorySvc, seasonSvc, rolloverSvc, logger)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, httpapi.RouterConfig{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		InternalJobToken: cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	logger.Info("http server wired",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"addr", server.Addr,
	)

	return server, cleanup, nil
}

type repositories struct {
	lineups    roster.Repository
	categories category.Repository
	seasons    season.Repository
	members    member.Repository
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.AppEnv == config.EnvDev {
			if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		logger.Info("postgres storage ready", "db", dbNameFromURL(cfg.DBURL))
		return repositories{
			lineups:    postgres.NewLineupRepository(db),
			categories: postgres.NewCategoryRepository(db),
			seasons:    postgres.NewSeasonRepository(db),
			members:    postgres.NewMemberRepository(db),
		}, db.Close, nil
	default:
		return repositories{
			lineups:    memory.NewLineupRepository(memory.SeedLineups()),
			categories: memory.NewCategoryRepository(memory.SeedCategories()),
			seasons:    memory.NewSeasonRepository(memory.SeedSeasons()),
			members:    memory.NewMemberRepository(memory.SeedMembers()),
		}, func() error { return nil }, nil
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
