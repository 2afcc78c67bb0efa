package cache

import (
	"context"
	"strconv"

	"github.com/clubkit/roster-service/internal/domain/member"
	"github.com/clubkit/roster-service/internal/domain/roster"
	basecache "github.com/clubkit/roster-service/internal/platform/cache"
)

// MemberRepository is a read-through cache over the member registry. Member
// records are owned elsewhere, so entries rely on the store TTL alone.
type MemberRepository struct {
	next  member.Repository
	cache *basecache.Store
}

func NewMemberRepository(next member.Repository, cache *basecache.Store) *MemberRepository {
	return &MemberRepository{next: next, cache: cache}
}

func (r *MemberRepository) GetByID(ctx context.Context, memberID string) (member.Member, bool, error) {
	key := "member:id:" + memberID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, memberID)
		if err != nil {
			return nil, err
		}
		return cachedMemberByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return member.Member{}, false, err
	}

	cached, _ := v.(cachedMemberByID)
	return cached.value, cached.exists, nil
}

func (r *MemberRepository) ListByCategory(ctx context.Context, categoryID string) ([]member.Member, error) {
	key := "member:list:category:" + categoryID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		return append([]member.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]member.Member)
	return append([]member.Member(nil), items...), nil
}

type cachedMemberByID struct {
	value  member.Member
	exists bool
}

// LineupRepository caches lineup reads and invalidates on every mutation.
// Mutations pass straight through to the inner repository, which stays the
// single authority for write-time roster rule checks.
type LineupRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewLineupRepository(next roster.Repository, cache *basecache.Store) *LineupRepository {
	return &LineupRepository{next: next, cache: cache}
}

func (r *LineupRepository) ListLineups(ctx context.Context, categoryID, seasonID string, activeOnly bool) ([]roster.Lineup, error) {
	key := lineupListKey(categoryID, seasonID, activeOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListLineups(ctx, categoryID, seasonID, activeOnly)
		if err != nil {
			return nil, err
		}
		return append([]roster.Lineup(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Lineup)
	return append([]roster.Lineup(nil), items...), nil
}

func (r *LineupRepository) GetLineup(ctx context.Context, lineupID string) (roster.Lineup, bool, error) {
	key := lineupByIDKey(lineupID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetLineup(ctx, lineupID)
		if err != nil {
			return nil, err
		}
		return cachedLineupByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return roster.Lineup{}, false, err
	}

	cached, _ := v.(cachedLineupByID)
	return cached.value, cached.exists, nil
}

func (r *LineupRepository) CreateLineup(ctx context.Context, item roster.Lineup) (roster.Lineup, error) {
	created, err := r.next.CreateLineup(ctx, item)
	if err != nil {
		return roster.Lineup{}, err
	}
	r.cache.DeletePrefix(ctx, lineupListPrefix)
	return created, nil
}

func (r *LineupRepository) UpdateLineup(ctx context.Context, lineupID string, update roster.LineupUpdate) (roster.Lineup, bool, error) {
	updated, exists, err := r.next.UpdateLineup(ctx, lineupID, update)
	if err != nil {
		return roster.Lineup{}, false, err
	}
	if exists {
		r.invalidateLineup(ctx, lineupID)
	}
	return updated, exists, nil
}

func (r *LineupRepository) DeleteLineup(ctx context.Context, lineupID string) (bool, error) {
	deleted, err := r.next.DeleteLineup(ctx, lineupID)
	if err != nil {
		return false, err
	}
	if deleted {
		r.invalidateLineup(ctx, lineupID)
		r.cache.Delete(ctx, lineupPlayersKey(lineupID))
		r.cache.Delete(ctx, lineupCoachesKey(lineupID))
	}
	return deleted, nil
}

func (r *LineupRepository) ListPlayers(ctx context.Context, lineupID string) ([]roster.Player, error) {
	key := lineupPlayersKey(lineupID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListPlayers(ctx, lineupID)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Player)
	return clonePlayers(items), nil
}

func (r *LineupRepository) AddPlayer(ctx context.Context, item roster.Player) (roster.Player, error) {
	added, err := r.next.AddPlayer(ctx, item)
	if err != nil {
		return roster.Player{}, err
	}
	r.cache.Delete(ctx, lineupPlayersKey(item.LineupID))
	return added, nil
}

func (r *LineupRepository) UpdatePlayer(ctx context.Context, lineupID, memberID string, update roster.PlayerUpdate) (roster.Player, bool, error) {
	updated, exists, err := r.next.UpdatePlayer(ctx, lineupID, memberID, update)
	if err != nil {
		return roster.Player{}, false, err
	}
	if exists {
		r.cache.Delete(ctx, lineupPlayersKey(lineupID))
	}
	return updated, exists, nil
}

func (r *LineupRepository) RemovePlayer(ctx context.Context, lineupID, memberID string) (bool, error) {
	removed, err := r.next.RemovePlayer(ctx, lineupID, memberID)
	if err != nil {
		return false, err
	}
	if removed {
		r.cache.Delete(ctx, lineupPlayersKey(lineupID))
	}
	return removed, nil
}

func (r *LineupRepository) ListCoaches(ctx context.Context, lineupID string) ([]roster.Coach, error) {
	key := lineupCoachesKey(lineupID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListCoaches(ctx, lineupID)
		if err != nil {
			return nil, err
		}
		return append([]roster.Coach(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Coach)
	return append([]roster.Coach(nil), items...), nil
}

func (r *LineupRepository) AddCoach(ctx context.Context, item roster.Coach) (roster.Coach, error) {
	added, err := r.next.AddCoach(ctx, item)
	if err != nil {
		return roster.Coach{}, err
	}
	r.cache.Delete(ctx, lineupCoachesKey(item.LineupID))
	return added, nil
}

func (r *LineupRepository) UpdateCoach(ctx context.Context, lineupID, memberID string, update roster.CoachUpdate) (roster.Coach, bool, error) {
	updated, exists, err := r.next.UpdateCoach(ctx, lineupID, memberID, update)
	if err != nil {
		return roster.Coach{}, false, err
	}
	if exists {
		r.cache.Delete(ctx, lineupCoachesKey(lineupID))
	}
	return updated, exists, nil
}

func (r *LineupRepository) RemoveCoach(ctx context.Context, lineupID, memberID string) (bool, error) {
	removed, err := r.next.RemoveCoach(ctx, lineupID, memberID)
	if err != nil {
		return false, err
	}
	if removed {
		r.cache.Delete(ctx, lineupCoachesKey(lineupID))
	}
	return removed, nil
}

func (r *LineupRepository) invalidateLineup(ctx context.Context, lineupID string) {
	r.cache.Delete(ctx, lineupByIDKey(lineupID))
	r.cache.DeletePrefix(ctx, lineupListPrefix)
}

type cachedLineupByID struct {
	value  roster.Lineup
	exists bool
}

// clonePlayers deep-copies the jersey pointer so cached rows never alias
// caller-held values.
func clonePlayers(items []roster.Player) []roster.Player {
	out := make([]roster.Player, 0, len(items))
	for _, item := range items {
		if item.JerseyNumber != nil {
			jersey := *item.JerseyNumber
			item.JerseyNumber = &jersey
		}
		out = append(out, item)
	}
	return out
}

const lineupListPrefix = "lineup:list:"

func lineupByIDKey(lineupID string) string {
	return "lineup:id:" + lineupID
}

func lineupListKey(categoryID, seasonID string, activeOnly bool) string {
	return lineupListPrefix + categoryID + ":" + seasonID + ":" + strconv.FormatBool(activeOnly)
}

func lineupPlayersKey(lineupID string) string {
	return "lineup:players:" + lineupID
}

func lineupCoachesKey(lineupID string) string {
	return "lineup:coaches:" + lineupID
}
