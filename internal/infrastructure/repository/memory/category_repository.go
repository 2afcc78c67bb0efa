package memory

import (
	"context"
	"sync"

	"github.com/clubkit/roster-service/internal/domain/category"
)

type CategoryRepository struct {
	mu     sync.RWMutex
	items  map[string]category.Category
	orders []string
}

func NewCategoryRepository(categories []category.Category) *CategoryRepository {
	items := make(map[string]category.Category, len(categories))
	orders := make([]string, 0, len(categories))

	for _, c := range categories {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &CategoryRepository{
		items:  items,
		orders: orders,
	}
}

func (r *CategoryRepository) List(_ context.Context, activeOnly bool) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Category, 0, len(r.orders))
	for _, id := range r.orders {
		c := r.items[id]
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, categoryID string) (category.Category, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[categoryID]
	if !ok {
		return category.Category{}, false, nil
	}

	return c, true, nil
}

func (r *CategoryRepository) Create(_ context.Context, item category.Category) (category.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return item, nil
}

func (r *CategoryRepository) Update(_ context.Context, categoryID string, update category.Update) (category.Category, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[categoryID]
	if !ok {
		return category.Category{}, false, nil
	}

	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	if update.AgeGroup != nil {
		c.AgeGroup = *update.AgeGroup
	}
	if update.Gender != nil {
		c.Gender = *update.Gender
	}
	if update.IsActive != nil {
		c.IsActive = *update.IsActive
	}
	if update.SortOrder != nil {
		c.SortOrder = *update.SortOrder
	}

	r.items[categoryID] = c
	return c, true, nil
}
