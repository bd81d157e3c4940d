package draftleague

import (
	"context"
	"time"
)

// League is the header block of a draft league details document.
type League struct {
	ID   Scalar `json:"id"`
	Name string `json:"name"`
}

// Entry is one participating team in a draft league.
type Entry struct {
	ID              Scalar     `json:"id"`
	EntryID         Scalar     `json:"entry_id"`
	EntryName       string     `json:"entry_name"`
	ShortName       string     `json:"short_name"`
	PlayerFirstName string     `json:"player_first_name"`
	PlayerLastName  string     `json:"player_last_name"`
	JoinedTime      *time.Time `json:"joined_time"`
}

// Standing is one team's aggregated score and head-to-head record.
// LeagueEntry references Entry.ID.
type Standing struct {
	LeagueEntry   Scalar `json:"league_entry"`
	Total         Scalar `json:"total"`
	MatchesWon    int    `json:"matches_won"`
	MatchesLost   int    `json:"matches_lost"`
	MatchesDrawn  int    `json:"matches_drawn"`
	Rank          int    `json:"rank"`
	LastRank      int    `json:"last_rank"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
}

// Details mirrors GET /league/{id}/details.
type Details struct {
	League        League     `json:"league"`
	LeagueEntries []Entry    `json:"league_entries"`
	Standings     []Standing `json:"standings"`
}

// Snapshot is a fetched details document and when it was fetched. Cached is
// set when the document was served from the process cache.
type Snapshot struct {
	LeagueID  string
	Details   Details
	FetchedAt time.Time
	Cached    bool
}

// Source loads league details for a league id.
type Source interface {
	FetchDetails(ctx context.Context, leagueID string) (Snapshot, error)
}

// Invalidator drops cached league details.
type Invalidator interface {
	Invalidate(ctx context.Context, leagueID string) bool
	InvalidateAll(ctx context.Context) int
}
