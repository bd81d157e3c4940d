package cache

import (
	"context"

	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
	basecache "github.com/riskibarqy/draft-league-dashboard/internal/platform/cache"
)

const detailsKeyPrefix = "league:details:"

// DetailsSource memoizes league details per league id. Failed loads are not
// stored.
type DetailsSource struct {
	next  draftleague.Source
	cache *basecache.Store
}

var (
	_ draftleague.Source      = (*DetailsSource)(nil)
	_ draftleague.Invalidator = (*DetailsSource)(nil)
)

func NewDetailsSource(next draftleague.Source, cache *basecache.Store) *DetailsSource {
	return &DetailsSource{next: next, cache: cache}
}

func (s *DetailsSource) FetchDetails(ctx context.Context, leagueID string) (draftleague.Snapshot, error) {
	entry, hit, err := s.cache.GetOrLoad(ctx, detailsKey(leagueID), func(ctx context.Context) (any, error) {
		snapshot, err := s.next.FetchDetails(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return snapshot, nil
	})
	if err != nil {
		return draftleague.Snapshot{}, err
	}

	snapshot, _ := entry.Value.(draftleague.Snapshot)
	snapshot.FetchedAt = entry.StoredAt
	snapshot.Cached = hit
	return snapshot, nil
}

func (s *DetailsSource) Invalidate(ctx context.Context, leagueID string) bool {
	return s.cache.Invalidate(ctx, detailsKey(leagueID))
}

func (s *DetailsSource) InvalidateAll(ctx context.Context) int {
	return s.cache.InvalidatePrefix(ctx, detailsKeyPrefix)
}

func detailsKey(leagueID string) string {
	return detailsKeyPrefix + leagueID
}
