package httpapi

import (
	"time"

	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/leaguestanding"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
)

type standingRowDTO struct {
	LeagueEntry     string     `json:"league_entry"`
	EntryName       string     `json:"entry_name"`
	ShortName       string     `json:"short_name,omitempty"`
	PlayerFirstName string     `json:"player_first_name"`
	PlayerLastName  string     `json:"player_last_name"`
	JoinedTime      *time.Time `json:"joined_time,omitempty"`
	Total           float64    `json:"total"`
	MatchesWon      int        `json:"matches_won"`
	MatchesLost     int        `json:"matches_lost"`
	MatchesDrawn    int        `json:"matches_drawn"`
	Rank            int        `json:"rank,omitempty"`
	LastRank        int        `json:"last_rank,omitempty"`
	PointsFor       int        `json:"points_for,omitempty"`
	PointsAgainst   int        `json:"points_against,omitempty"`
}

type warningDTO struct {
	Kind    string   `json:"kind"`
	IDs     []string `json:"ids,omitempty"`
	Message string   `json:"message"`
}

type leaderDTO struct {
	LeagueEntry string  `json:"league_entry"`
	EntryName   string  `json:"entry_name"`
	PlayerName  string  `json:"player_name"`
	Total       float64 `json:"total"`
}

type binDTO struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

type pointDTO struct {
	LeagueEntry string  `json:"league_entry"`
	EntryName   string  `json:"entry_name"`
	Value       float64 `json:"value"`
}

type seriesDTO struct {
	Totals []pointDTO `json:"totals"`
	Wins   []pointDTO `json:"wins"`
	Losses []pointDTO `json:"losses"`
	Draws  []pointDTO `json:"draws"`
}

type dashboardDTO struct {
	LeagueID           string           `json:"league_id"`
	LeagueName         string           `json:"league_name"`
	FetchedAt          time.Time        `json:"fetched_at"`
	Cached             bool             `json:"cached"`
	Rows               []standingRowDTO `json:"rows"`
	MissingInEntries   []string         `json:"missing_in_entries"`
	MissingInStandings []string         `json:"missing_in_standings"`
	Warnings           []warningDTO     `json:"warnings"`
	Leader             *leaderDTO       `json:"leader"`
	Top                []standingRowDTO `json:"top"`
	Histogram          []binDTO         `json:"histogram"`
	Series             seriesDTO        `json:"series"`
	Charts             chartSpecsDTO    `json:"charts"`
}

type rawDetailsDTO struct {
	LeagueID  string              `json:"league_id"`
	FetchedAt time.Time           `json:"fetched_at"`
	Cached    bool                `json:"cached"`
	Details   draftleague.Details `json:"details"`
}

type cachePurgeDTO struct {
	Dropped int `json:"dropped"`
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	out := dashboardDTO{
		LeagueID:           d.LeagueID,
		LeagueName:         d.LeagueName,
		FetchedAt:          d.FetchedAt.UTC(),
		Cached:             d.Cached,
		Rows:               rowsToDTO(d.Rows),
		MissingInEntries:   nonNilStrings(d.MissingInEntries),
		MissingInStandings: nonNilStrings(d.MissingInStandings),
		Warnings:           warningsToDTO(d.Warnings),
		Top:                rowsToDTO(d.Top),
		Histogram:          make([]binDTO, 0, len(d.Histogram)),
		Series: seriesDTO{
			Totals: pointsToDTO(d.Totals),
			Wins:   pointsToDTO(d.Wins),
			Losses: pointsToDTO(d.Losses),
			Draws:  pointsToDTO(d.Draws),
		},
		Charts: buildChartSpecs(d),
	}
	for _, b := range d.Histogram {
		out.Histogram = append(out.Histogram, binDTO{Start: b.Start, End: b.End, Count: b.Count})
	}
	if d.HasLeader {
		out.Leader = &leaderDTO{
			LeagueEntry: d.Leader.LeagueEntry,
			EntryName:   d.Leader.EntryName,
			PlayerName:  d.Leader.PlayerName(),
			Total:       d.Leader.Total,
		}
	}
	return out
}

func rowsToDTO(rows []leaguestanding.Row) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, standingRowDTO{
			LeagueEntry:     r.LeagueEntry,
			EntryName:       r.EntryName,
			ShortName:       r.ShortName,
			PlayerFirstName: r.PlayerFirstName,
			PlayerLastName:  r.PlayerLastName,
			JoinedTime:      r.JoinedTime,
			Total:           r.Total,
			MatchesWon:      r.MatchesWon,
			MatchesLost:     r.MatchesLost,
			MatchesDrawn:    r.MatchesDrawn,
			Rank:            r.Rank,
			LastRank:        r.LastRank,
			PointsFor:       r.PointsFor,
			PointsAgainst:   r.PointsAgainst,
		})
	}
	return out
}

func warningsToDTO(items []leaguestanding.Warning) []warningDTO {
	out := make([]warningDTO, 0, len(items))
	for _, w := range items {
		out = append(out, warningDTO{Kind: string(w.Kind), IDs: w.IDs, Message: w.Message})
	}
	return out
}

func pointsToDTO(points []leaguestanding.Point) []pointDTO {
	out := make([]pointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, pointDTO{LeagueEntry: p.LeagueEntry, EntryName: p.Label, Value: p.Value})
	}
	return out
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
