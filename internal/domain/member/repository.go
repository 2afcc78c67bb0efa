package member

import "context"

// Repository gives read-only access to the external member registry.
type Repository interface {
	GetByID(ctx context.Context, memberID string) (Member, bool, error)
	ListByCategory(ctx context.Context, categoryID string) ([]Member, error)
}
