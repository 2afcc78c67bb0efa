package memory

import (
	"context"
	"sync"

	"github.com/clubkit/roster-service/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  map[string]season.Season
	orders []string
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	orders := make([]string, 0, len(seasons))

	for _, s := range seasons {
		items[s.ID] = s
		orders = append(orders, s.ID)
	}

	return &SeasonRepository{
		items:  items,
		orders: orders,
	}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return s, true, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *SeasonRepository) Update(_ context.Context, seasonID string, update season.Update) (season.Season, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.IsActive != nil {
		s.IsActive = *update.IsActive
	}
	if update.IsClosed != nil {
		s.IsClosed = *update.IsClosed
	}

	r.items[seasonID] = s
	return s, true, nil
}
