package leaguestanding

import (
	"errors"
	"strings"
	"time"
)

// Row is a standing joined with the league entry it references.
type Row struct {
	LeagueEntry     string
	EntryName       string
	ShortName       string
	PlayerFirstName string
	PlayerLastName  string
	JoinedTime      *time.Time
	Total           float64
	MatchesWon      int
	MatchesLost     int
	MatchesDrawn    int
	Rank            int
	LastRank        int
	PointsFor       int
	PointsAgainst   int
}

func (r Row) PlayerName() string {
	return strings.TrimSpace(r.PlayerFirstName + " " + r.PlayerLastName)
}

type WarningKind string

const (
	WarningMissingInEntries    WarningKind = "missing_in_entries"
	WarningMissingInStandings  WarningKind = "missing_in_standings"
	WarningBlankIdentifier     WarningKind = "blank_identifier"
	WarningDuplicateIdentifier WarningKind = "duplicate_identifier"
	WarningNumericFallback     WarningKind = "numeric_coercion_fallback"
)

// Warning is a non-fatal reconciliation finding.
type Warning struct {
	Kind    WarningKind
	IDs     []string
	Message string
}

// Reconciliation is the outcome of joining standings onto league entries.
// MissingInEntries and MissingInStandings together form the symmetric
// difference of the two identifier sets.
type Reconciliation struct {
	Rows               []Row
	MissingInEntries   []string
	MissingInStandings []string
	Warnings           []Warning
}

const (
	ReasonNoValidStandings = "no valid standings data available after filtering"
	ReasonNoValidEntries   = "no valid league entries data available after filtering"
	ReasonEmptyJoin        = "merged data is empty after attempting to merge valid entries and standings"
)

var ErrEmptyResult = errors.New("empty reconciliation result")

// EmptyResultError lists why reconciliation produced no rows. It matches
// ErrEmptyResult under errors.Is.
type EmptyResultError struct {
	Reasons []string
}

func (e *EmptyResultError) Error() string {
	if len(e.Reasons) == 0 {
		return ErrEmptyResult.Error()
	}
	return ErrEmptyResult.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmptyResult
}
