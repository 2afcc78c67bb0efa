package roster

import "context"

// LineupUpdate carries partial lineup fields; nil means "leave unchanged".
type LineupUpdate struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// PlayerUpdate carries partial player fields. ClearJersey removes the jersey
// number; it takes precedence over JerseyNumber.
type PlayerUpdate struct {
	Position      *Position
	JerseyNumber  *int
	ClearJersey   bool
	IsCaptain     *bool
	IsViceCaptain *bool
	IsActive      *bool
}

// CoachUpdate carries partial coach fields.
type CoachUpdate struct {
	Role *CoachRole
}

// Repository exposes lineup persistence. Implementations must keep each
// single mutation atomic with respect to its lineup and re-check composition
// rules at write time, returning the rule sentinels from rules.go when a
// concurrent writer already consumed the remaining capacity.
type Repository interface {
	ListLineups(ctx context.Context, categoryID, seasonID string, activeOnly bool) ([]Lineup, error)
	GetLineup(ctx context.Context, lineupID string) (Lineup, bool, error)
	CreateLineup(ctx context.Context, item Lineup) (Lineup, error)
	UpdateLineup(ctx context.Context, lineupID string, update LineupUpdate) (Lineup, bool, error)
	// DeleteLineup cascades to the lineup's players and coaches.
	DeleteLineup(ctx context.Context, lineupID string) (bool, error)

	ListPlayers(ctx context.Context, lineupID string) ([]Player, error)
	AddPlayer(ctx context.Context, item Player) (Player, error)
	UpdatePlayer(ctx context.Context, lineupID, memberID string, update PlayerUpdate) (Player, bool, error)
	RemovePlayer(ctx context.Context, lineupID, memberID string) (bool, error)

	ListCoaches(ctx context.Context, lineupID string) ([]Coach, error)
	AddCoach(ctx context.Context, item Coach) (Coach, error)
	UpdateCoach(ctx context.Context, lineupID, memberID string, update CoachUpdate) (Coach, bool, error)
	RemoveCoach(ctx context.Context, lineupID, memberID string) (bool, error)
}
