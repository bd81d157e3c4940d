package usecase

import (
	"errors"

	"github.com/riskibarqy/draft-league-dashboard/internal/domain/leaguestanding"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrFetchFailure          = errors.New("failed to fetch league data")

	// ErrEmptyResult matches reconciliation outcomes with no rows to show.
	ErrEmptyResult = leaguestanding.ErrEmptyResult
)
