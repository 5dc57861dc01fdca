package app

import (
	"fmt"
	"net/http"

	"github.com/gridironhq/waiverwire/external/rankings"
	"github.com/gridironhq/waiverwire/external/sleeper"
	"github.com/gridironhq/waiverwire/internal/config"
	"github.com/gridironhq/waiverwire/internal/interfaces/httpapi"
	"github.com/gridironhq/waiverwire/internal/platform/cache"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
	"github.com/gridironhq/waiverwire/internal/platform/resilience"
	"github.com/gridironhq/waiverwire/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:       cfg.SleeperBaseURL,
		Timeout:       cfg.SleeperTimeout,
		MaxRetries:    cfg.SleeperMaxRetries,
		LookbackHours: cfg.SleeperTrendingLookbackHours,
		TrendingLimit: cfg.SleeperTrendingLimit,
		Logger:        logger,
		Cache:         store,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
	})

	rankingsClient := rankings.NewClient(rankings.ClientConfig{
		BaseURL: cfg.RankingsBaseURL,
		APIKey:  cfg.RankingsAPIKey,
		Timeout: cfg.RankingsTimeout,
		Format:  cfg.RankingsFormat,
		Logger:  logger,
	})
	metrics := rankings.NewMetricsProvider(rankingsClient)

	pickupsEngine := usecase.NewHotPickupsEngine(sleeperClient, sleeperClient, metrics, logger)
	leagueWaivers := usecase.NewLeagueWaiverService(sleeperClient, sleeperClient, pickupsEngine, logger)
	teamAnalysis := usecase.NewTeamAnalysisService(sleeperClient, sleeperClient)
	faabOptimizer := usecase.NewFaabOptimizerService(
		sleeperClient,
		sleeperClient,
		sleeperClient,
		sleeperClient,
		metrics,
		logger,
	)

	handler := httpapi.NewHandler(
		sleeperClient,
		pickupsEngine,
		leagueWaivers,
		teamAnalysis,
		faabOptimizer,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
