package cmd

import (
	"database/sql"
	"etfoverlap/api"
	"etfoverlap/internal/app"
	"etfoverlap/internal/repository"
	"etfoverlap/internal/service"
	"etfoverlap/internal/util"
	"etfoverlap/pkg/justetf"
	"fmt"
	"log"
	"net/http"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Close == nil {
		return
	}
	err := handler.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func newHoldingsCacheRepository(cfg util.Config) (repository.HoldingsCacheRepository, *sql.DB, error) {
	switch cfg.CacheBackend {
	case util.CacheBackend_Memory:
		return repository.NewMemoryHoldingsCacheRepository(cfg.CacheTTL, nil), nil, nil
	case util.CacheBackend_Postgres:
		dbConn, err := sql.Open("postgres", cfg.Db.ToConnectionStr())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		return repository.NewPostgresHoldingsCacheRepository(dbConn, cfg.CacheTTL, nil), dbConn, nil
	case util.CacheBackend_Sqlite:
		dbConn, err := repository.OpenSqliteDb(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSqliteHoldingsCacheRepository(dbConn, cfg.CacheTTL, nil), dbConn, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
}

func InitializeDependencies(cfg util.Config) (*api.ApiHandler, error) {
	cacheRepository, dbConn, err := newHoldingsCacheRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize holdings cache: %w", err)
	}

	justEtfClient := justetf.NewClient(
		&http.Client{Timeout: cfg.FetchTimeout},
		cfg.JustEtfBaseURL,
	)
	providerRepository := repository.NewJustEtfHoldingsProviderRepository(justEtfClient)

	cacheService := service.NewHoldingsCacheService(cacheRepository, cfg.CacheTTL, nil)
	overlapAnalysisApp := app.NewOverlapAnalysisApp(
		cacheService,
		providerRepository,
		cfg.FetchTimeout,
		cfg.MaxFetchAttempts,
	)

	apiHandler := &api.ApiHandler{
		OverlapAnalysisApp: overlapAnalysisApp,
	}
	if dbConn != nil {
		apiHandler.Close = dbConn.Close
	}

	return apiHandler, nil
}
