package memory

import (
	"context"
	"sync"

	"github.com/clubkit/roster-service/internal/domain/member"
)

// MemberRepository is a read-only mirror of the external member registry.
type MemberRepository struct {
	mu     sync.RWMutex
	items  map[string]member.Member
	orders []string
}

func NewMemberRepository(members []member.Member) *MemberRepository {
	items := make(map[string]member.Member, len(members))
	orders := make([]string, 0, len(members))

	for _, m := range members {
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MemberRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MemberRepository) GetByID(_ context.Context, memberID string) (member.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[memberID]
	if !ok {
		return member.Member{}, false, nil
	}

	return m, true, nil
}

func (r *MemberRepository) ListByCategory(_ context.Context, categoryID string) ([]member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]member.Member, 0, len(r.orders))
	for _, id := range r.orders {
		m := r.items[id]
		if m.CategoryID != categoryID {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}
