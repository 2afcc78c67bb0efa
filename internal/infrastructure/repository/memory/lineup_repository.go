package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clubkit/roster-service/internal/domain/roster"
)

// LineupRepository keeps lineups with their members and coaches in process
// memory. Rule re-checks run under the write lock so a mutation can never
// slip past a cap or uniqueness constraint, mirroring what the postgres
// implementation enforces inside its transaction.
type LineupRepository struct {
	mu      sync.RWMutex
	rules   roster.Rules
	lineups map[string]roster.Lineup
	orders  []string
	players map[string][]roster.Player
	coaches map[string][]roster.Coach
}

func NewLineupRepository(lineups []roster.Lineup) *LineupRepository {
	items := make(map[string]roster.Lineup, len(lineups))
	orders := make([]string, 0, len(lineups))
	for _, l := range lineups {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	return &LineupRepository{
		rules:   roster.DefaultRules(),
		lineups: items,
		orders:  orders,
		players: make(map[string][]roster.Player),
		coaches: make(map[string][]roster.Coach),
	}
}

func (r *LineupRepository) ListLineups(_ context.Context, categoryID, seasonID string, activeOnly bool) ([]roster.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Lineup, 0, len(r.orders))
	for _, id := range r.orders {
		l := r.lineups[id]
		if l.CategoryID != categoryID {
			continue
		}
		if seasonID != "" && l.SeasonID != seasonID {
			continue
		}
		if activeOnly && !l.IsActive {
			continue
		}
		out = append(out, l)
	}

	return out, nil
}

func (r *LineupRepository) GetLineup(_ context.Context, lineupID string) (roster.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lineups[lineupID]
	if !ok {
		return roster.Lineup{}, false, nil
	}

	return l, true, nil
}

func (r *LineupRepository) CreateLineup(_ context.Context, item roster.Lineup) (roster.Lineup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lineups[item.ID]; exists {
		return roster.Lineup{}, fmt.Errorf("lineup %s already exists", item.ID)
	}
	r.lineups[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return item, nil
}

func (r *LineupRepository) UpdateLineup(_ context.Context, lineupID string, update roster.LineupUpdate) (roster.Lineup, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lineups[lineupID]
	if !ok {
		return roster.Lineup{}, false, nil
	}

	if update.Name != nil {
		l.Name = *update.Name
	}
	if update.Description != nil {
		l.Description = *update.Description
	}
	if update.IsActive != nil {
		l.IsActive = *update.IsActive
	}
	l.UpdatedAt = time.Now().UTC()

	r.lineups[lineupID] = l
	return l, true, nil
}

func (r *LineupRepository) DeleteLineup(_ context.Context, lineupID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lineups[lineupID]; !ok {
		return false, nil
	}

	delete(r.lineups, lineupID)
	delete(r.players, lineupID)
	delete(r.coaches, lineupID)
	for i, id := range r.orders {
		if id == lineupID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}

	return true, nil
}

func (r *LineupRepository) ListPlayers(_ context.Context, lineupID string) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Player(nil), r.players[lineupID]...), nil
}

func (r *LineupRepository) AddPlayer(_ context.Context, item roster.Player) (roster.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lineups[item.LineupID]; !ok {
		return roster.Player{}, fmt.Errorf("lineup %s does not exist", item.LineupID)
	}

	check := roster.ValidateAddPlayer(r.players[item.LineupID], item, r.rules)
	if !check.Allowed {
		return roster.Player{}, ruleSentinel(check.Errors)
	}

	r.players[item.LineupID] = append(r.players[item.LineupID], item)
	return item, nil
}

func (r *LineupRepository) UpdatePlayer(_ context.Context, lineupID, memberID string, update roster.PlayerUpdate) (roster.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := r.players[lineupID]
	idx := -1
	for i, p := range players {
		if p.MemberID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return roster.Player{}, false, nil
	}

	updated := players[idx]
	if update.Position != nil {
		updated.Position = *update.Position
	}
	if update.ClearJersey {
		updated.JerseyNumber = nil
	} else if update.JerseyNumber != nil {
		updated.JerseyNumber = update.JerseyNumber
	}
	if update.IsCaptain != nil {
		updated.IsCaptain = *update.IsCaptain
	}
	if update.IsViceCaptain != nil {
		updated.IsViceCaptain = *update.IsViceCaptain
	}
	if update.IsActive != nil {
		updated.IsActive = *update.IsActive
	}

	check := roster.ValidateEditPlayer(players, memberID, updated, r.rules)
	if !check.Allowed {
		return roster.Player{}, false, ruleSentinel(check.Errors)
	}

	players[idx] = updated
	return updated, true, nil
}

func (r *LineupRepository) RemovePlayer(_ context.Context, lineupID, memberID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := r.players[lineupID]
	for i, p := range players {
		if p.MemberID == memberID {
			r.players[lineupID] = append(players[:i], players[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (r *LineupRepository) ListCoaches(_ context.Context, lineupID string) ([]roster.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.Coach(nil), r.coaches[lineupID]...), nil
}

func (r *LineupRepository) AddCoach(_ context.Context, item roster.Coach) (roster.Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lineups[item.LineupID]; !ok {
		return roster.Coach{}, fmt.Errorf("lineup %s does not exist", item.LineupID)
	}

	check := roster.ValidateAddCoach(r.coaches[item.LineupID], item, r.rules)
	if !check.Allowed {
		return roster.Coach{}, ruleSentinel(check.Errors)
	}

	r.coaches[item.LineupID] = append(r.coaches[item.LineupID], item)
	return item, nil
}

func (r *LineupRepository) UpdateCoach(_ context.Context, lineupID, memberID string, update roster.CoachUpdate) (roster.Coach, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coaches := r.coaches[lineupID]
	for i, c := range coaches {
		if c.MemberID != memberID {
			continue
		}
		if update.Role != nil {
			c.Role = *update.Role
		}
		coaches[i] = c
		return c, true, nil
	}

	return roster.Coach{}, false, nil
}

func (r *LineupRepository) RemoveCoach(_ context.Context, lineupID, memberID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coaches := r.coaches[lineupID]
	for i, c := range coaches {
		if c.MemberID == memberID {
			r.coaches[lineupID] = append(coaches[:i], coaches[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

// ruleSentinel keeps the blocking violations on the returned error so the
// caller can report the exact rule that lost the race, while errors.Is
// against the domain sentinels still works.
func ruleSentinel(violations []roster.Violation) error {
	return roster.NewRuleError(violations)
}
