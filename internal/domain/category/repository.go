package category

import "context"

// Update carries partial category fields; nil means "leave unchanged".
type Update struct {
	Name        *string
	Description *string
	AgeGroup    *string
	Gender      *string
	IsActive    *bool
	SortOrder   *int
}

// Repository describes category persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Category, error)
	GetByID(ctx context.Context, categoryID string) (Category, bool, error)
	Create(ctx context.Context, item Category) (Category, error)
	Update(ctx context.Context, categoryID string, update Update) (Category, bool, error)
}
