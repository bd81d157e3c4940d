package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/draft-league-dashboard/external/draftapi"
	"github.com/riskibarqy/draft-league-dashboard/internal/config"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
	detailscache "github.com/riskibarqy/draft-league-dashboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/draft-league-dashboard/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/cache"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/logging"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(
		NewDashboardService(cfg, logger),
		httpapi.HandlerConfig{DefaultLeagueID: cfg.DashboardDefaultLeagueID},
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// NewDashboardService wires the draft API client, optionally behind the
// in-process details cache, into the dashboard usecase.
func NewDashboardService(cfg config.Config, logger *logging.Logger) *usecase.DashboardService {
	client := draftapi.NewClient(draftapi.ClientConfig{
		BaseURL:   cfg.DraftAPIBaseURL,
		UserAgent: cfg.DraftAPIUserAgent,
		Timeout:   cfg.DraftAPITimeout,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.DraftAPICircuitEnabled,
			FailureThreshold: cfg.DraftAPICircuitFailureCount,
			OpenTimeout:      cfg.DraftAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.DraftAPICircuitHalfOpenMaxReq,
		},
	})

	var (
		source      draftleague.Source = client
		invalidator draftleague.Invalidator
	)
	if cfg.CacheEnabled {
		cached := detailscache.NewDetailsSource(client, cache.NewStore(cfg.CacheTTL))
		source = cached
		invalidator = cached
		logger.Info("league details cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return usecase.NewDashboardService(source, invalidator, usecase.DashboardConfig{
		TopN:             cfg.DashboardTopN,
		HistogramMaxBins: cfg.DashboardHistogramMaxBins,
	}, logger)
}

// Shutdown drains srv and then runs the observability hooks in order. The
// first error is returned after every hook has run.
func Shutdown(ctx context.Context, srv *http.Server, hooks ...func(context.Context) error) error {
	var firstErr error
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			firstErr = fmt.Errorf("shutdown http server: %w", err)
		}
	}
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
