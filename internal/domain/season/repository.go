package season

import "context"

// Update carries partial season fields; nil means "leave unchanged".
type Update struct {
	Name     *string
	IsActive *bool
	IsClosed *bool
}

// Repository describes season persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	Create(ctx context.Context, item Season) (Season, error)
	Update(ctx context.Context, seasonID string, update Update) (Season, bool, error)
}
