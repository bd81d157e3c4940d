package leaguestanding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
)

// Reconcile joins standings onto league entries by canonical identifier.
//
// A league entry whose identifier repeats an earlier one is dropped and
// reported. Identifiers present on only one side are reported as warnings and filtered
// out before the join, so every returned row carries both standing and entry
// fields. A total that cannot be read as a number becomes 0 and is reported.
// When either filtered side or the join is empty the returned error matches
// ErrEmptyResult; the warnings gathered up to that point are still returned.
func Reconcile(entries []draftleague.Entry, standings []draftleague.Standing) (Reconciliation, error) {
	var out Reconciliation

	standingIDs := make([]string, len(standings))
	standingSet := make(map[string]struct{}, len(standings))
	blankStandings := 0
	for i, item := range standings {
		id := item.LeagueEntry.Canonical()
		standingIDs[i] = id
		if id == "" {
			blankStandings++
			continue
		}
		standingSet[id] = struct{}{}
	}

	entryIDs := make([]string, len(entries))
	entrySet := make(map[string]struct{}, len(entries))
	duplicateSet := make(map[string]struct{})
	blankEntries := 0
	for i, item := range entries {
		id := item.ID.Canonical()
		entryIDs[i] = id
		if id == "" {
			blankEntries++
			continue
		}
		if _, seen := entrySet[id]; seen {
			duplicateSet[id] = struct{}{}
		}
		entrySet[id] = struct{}{}
	}

	if blankStandings > 0 || blankEntries > 0 {
		out.Warnings = append(out.Warnings, Warning{
			Kind: WarningBlankIdentifier,
			Message: fmt.Sprintf(
				"rows without an identifier were skipped: standings=%d league_entries=%d",
				blankStandings, blankEntries,
			),
		})
	}

	if len(duplicateSet) > 0 {
		duplicates := difference(duplicateSet, nil)
		out.Warnings = append(out.Warnings, Warning{
			Kind:    WarningDuplicateIdentifier,
			IDs:     duplicates,
			Message: "duplicate league entry IDs, first occurrence kept: " + strings.Join(duplicates, ", "),
		})
	}

	out.MissingInEntries = difference(standingSet, entrySet)
	out.MissingInStandings = difference(entrySet, standingSet)
	if len(out.MissingInEntries) > 0 {
		out.Warnings = append(out.Warnings, Warning{
			Kind:    WarningMissingInEntries,
			IDs:     out.MissingInEntries,
			Message: "IDs in standings but not in league entries: " + strings.Join(out.MissingInEntries, ", "),
		})
	}
	if len(out.MissingInStandings) > 0 {
		out.Warnings = append(out.Warnings, Warning{
			Kind:    WarningMissingInStandings,
			IDs:     out.MissingInStandings,
			Message: "IDs in league entries but not in standings: " + strings.Join(out.MissingInStandings, ", "),
		})
	}

	validStandings := make([]int, 0, len(standings))
	for i, id := range standingIDs {
		if _, ok := entrySet[id]; ok {
			validStandings = append(validStandings, i)
		}
	}

	entryByID := make(map[string]draftleague.Entry, len(entries))
	for i, id := range entryIDs {
		if _, ok := standingSet[id]; !ok {
			continue
		}
		if _, seen := entryByID[id]; seen {
			continue
		}
		entryByID[id] = entries[i]
	}

	var reasons []string
	if len(validStandings) == 0 {
		reasons = append(reasons, ReasonNoValidStandings)
	}
	if len(entryByID) == 0 {
		reasons = append(reasons, ReasonNoValidEntries)
	}
	if len(reasons) > 0 {
		return out, &EmptyResultError{Reasons: reasons}
	}

	rows := make([]Row, 0, len(validStandings))
	var fallbackIDs []string
	var fallbackRaw []string
	for _, idx := range validStandings {
		id := standingIDs[idx]
		entry, ok := entryByID[id]
		if !ok {
			continue
		}
		standing := standings[idx]

		total, numeric := standing.Total.Float()
		if !numeric {
			total = 0
			fallbackIDs = append(fallbackIDs, id)
			fallbackRaw = append(fallbackRaw, id+"="+standing.Total.Raw())
		}

		rows = append(rows, Row{
			LeagueEntry:     id,
			EntryName:       entry.EntryName,
			ShortName:       entry.ShortName,
			PlayerFirstName: entry.PlayerFirstName,
			PlayerLastName:  entry.PlayerLastName,
			JoinedTime:      entry.JoinedTime,
			Total:           total,
			MatchesWon:      standing.MatchesWon,
			MatchesLost:     standing.MatchesLost,
			MatchesDrawn:    standing.MatchesDrawn,
			Rank:            standing.Rank,
			LastRank:        standing.LastRank,
			PointsFor:       standing.PointsFor,
			PointsAgainst:   standing.PointsAgainst,
		})
	}

	if len(fallbackIDs) > 0 {
		out.Warnings = append(out.Warnings, Warning{
			Kind:    WarningNumericFallback,
			IDs:     fallbackIDs,
			Message: "non-numeric total replaced with 0: " + strings.Join(fallbackRaw, ", "),
		})
	}

	if len(rows) == 0 {
		return out, &EmptyResultError{Reasons: []string{ReasonEmptyJoin}}
	}

	out.Rows = rows
	return out, nil
}

// difference returns the members of a that are not in b, ordered by SortIDs.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}
	SortIDs(out)
	return out
}

// SortIDs orders identifiers numerically when both are unsigned digit strings
// and lexically otherwise, with numeric identifiers first.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return lessID(ids[i], ids[j])
	})
}

func lessID(a, b string) bool {
	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	case aNum != bNum:
		return aNum
	default:
		return a < b
	}
}

func isDigits(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
