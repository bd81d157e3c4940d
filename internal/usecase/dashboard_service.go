package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/leaguestanding"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultTopN = 10

type DashboardConfig struct {
	TopN             int
	HistogramMaxBins int
}

// Dashboard is everything the standings page renders for one league.
// Derived fields are left empty when EmptyReasons is set.
type Dashboard struct {
	LeagueID   string
	LeagueName string
	FetchedAt  time.Time
	Cached     bool
	Source     draftleague.Details

	Rows               []leaguestanding.Row
	MissingInEntries   []string
	MissingInStandings []string
	Warnings           []leaguestanding.Warning
	EmptyReasons       []string

	Leader    leaguestanding.Row
	HasLeader bool
	Totals    []leaguestanding.Point
	TopN      int
	Top       []leaguestanding.Row
	Histogram []leaguestanding.Bin
	Wins      []leaguestanding.Point
	Losses    []leaguestanding.Point
	Draws     []leaguestanding.Point
}

type DashboardService struct {
	source      draftleague.Source
	invalidator draftleague.Invalidator
	cfg         DashboardConfig
	logger      *logging.Logger
}

// NewDashboardService builds the service. invalidator may be nil when the
// source is not cached.
func NewDashboardService(
	source draftleague.Source,
	invalidator draftleague.Invalidator,
	cfg DashboardConfig,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	if cfg.HistogramMaxBins <= 0 {
		cfg.HistogramMaxBins = leaguestanding.DefaultHistogramMaxBins
	}

	return &DashboardService{
		source:      source,
		invalidator: invalidator,
		cfg:         cfg,
		logger:      logger,
	}
}

// Build fetches, reconciles and summarizes one league. On an empty
// reconciliation the returned Dashboard still carries the league header and
// warnings, and the error matches ErrEmptyResult.
func (s *DashboardService) Build(ctx context.Context, leagueID string) (_ Dashboard, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Build", attribute.String("league_id", leagueID))
	defer func() { endUsecaseSpan(span, err) }()

	snapshot, err := s.fetch(ctx, leagueID)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{
		LeagueID:   snapshot.LeagueID,
		LeagueName: snapshot.Details.League.Name,
		FetchedAt:  snapshot.FetchedAt,
		Cached:     snapshot.Cached,
		Source:     snapshot.Details,
	}

	rec, err := leaguestanding.Reconcile(snapshot.Details.LeagueEntries, snapshot.Details.Standings)
	out.MissingInEntries = rec.MissingInEntries
	out.MissingInStandings = rec.MissingInStandings
	out.Warnings = rec.Warnings
	for _, w := range rec.Warnings {
		s.logger.WarnContext(ctx, "league reconciliation warning",
			"league_id", out.LeagueID,
			"kind", string(w.Kind),
			"ids", w.IDs,
			"message", w.Message,
		)
	}
	if err != nil {
		var empty *leaguestanding.EmptyResultError
		if errors.As(err, &empty) {
			out.EmptyReasons = append([]string(nil), empty.Reasons...)
		}
		s.logger.WarnContext(ctx, "league reconciliation produced no rows",
			"league_id", out.LeagueID,
			"error", err,
		)
		return out, fmt.Errorf("reconcile league_id=%s: %w", out.LeagueID, err)
	}

	out.Rows = rec.Rows
	out.Leader, out.HasLeader = leaguestanding.Leader(rec.Rows)
	out.Totals = leaguestanding.Series(rec.Rows, leaguestanding.MetricTotal)
	out.TopN = s.cfg.TopN
	out.Top = leaguestanding.TopN(rec.Rows, s.cfg.TopN)
	out.Histogram = leaguestanding.Histogram(rec.Rows, s.cfg.HistogramMaxBins)
	out.Wins = leaguestanding.Series(rec.Rows, leaguestanding.MetricMatchesWon)
	out.Losses = leaguestanding.Series(rec.Rows, leaguestanding.MetricMatchesLost)
	out.Draws = leaguestanding.Series(rec.Rows, leaguestanding.MetricMatchesDrawn)

	span.SetAttributes(
		attribute.Int("rows", len(out.Rows)),
		attribute.Int("warnings", len(out.Warnings)),
		attribute.Bool("cached", out.Cached),
	)
	return out, nil
}

// Raw returns the details document exactly as fetched.
func (s *DashboardService) Raw(ctx context.Context, leagueID string) (_ draftleague.Snapshot, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Raw", attribute.String("league_id", leagueID))
	defer func() { endUsecaseSpan(span, err) }()

	return s.fetch(ctx, leagueID)
}

// Refresh drops any cached document for the league and rebuilds it.
func (s *DashboardService) Refresh(ctx context.Context, leagueID string) (_ Dashboard, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Refresh", attribute.String("league_id", leagueID))
	defer func() { endUsecaseSpan(span, err) }()

	leagueID, err = normalizeLeagueID(leagueID)
	if err != nil {
		return Dashboard{}, err
	}
	if s.invalidator != nil {
		dropped := s.invalidator.Invalidate(ctx, leagueID)
		s.logger.InfoContext(ctx, "league details invalidated", "league_id", leagueID, "dropped", dropped)
	}
	return s.Build(ctx, leagueID)
}

// PurgeCache drops every cached league document and reports how many were held.
func (s *DashboardService) PurgeCache(ctx context.Context) int {
	if s.invalidator == nil {
		return 0
	}
	dropped := s.invalidator.InvalidateAll(ctx)
	s.logger.InfoContext(ctx, "league details cache purged", "dropped", dropped)
	return dropped
}

func (s *DashboardService) fetch(ctx context.Context, leagueID string) (draftleague.Snapshot, error) {
	leagueID, err := normalizeLeagueID(leagueID)
	if err != nil {
		return draftleague.Snapshot{}, err
	}

	snapshot, err := s.source.FetchDetails(ctx, leagueID)
	if err != nil {
		return draftleague.Snapshot{}, fmt.Errorf("fetch league details league_id=%s: %w", leagueID, err)
	}
	if snapshot.LeagueID == "" {
		snapshot.LeagueID = leagueID
	}
	return snapshot, nil
}

func normalizeLeagueID(leagueID string) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	for _, r := range leagueID {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: league id must be numeric", ErrInvalidInput)
		}
	}
	return leagueID, nil
}
