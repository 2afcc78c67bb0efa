package roster

import (
	"fmt"
	"time"
)

// Position classifies a lineup member for capacity rules.
type Position string

const (
	PositionGoalkeeper  Position = "goalkeeper"
	PositionFieldPlayer Position = "field_player"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper:  {},
	PositionFieldPlayer: {},
}

// CoachRole classifies coaching staff inside a lineup.
type CoachRole string

const (
	RoleHeadCoach      CoachRole = "head_coach"
	RoleAssistantCoach CoachRole = "assistant_coach"
	RoleTeamManager    CoachRole = "team_manager"
)

var AllCoachRoles = map[CoachRole]struct{}{
	RoleHeadCoach:      {},
	RoleAssistantCoach: {},
	RoleTeamManager:    {},
}

// Lineup is a named roster for one category within one season.
type Lineup struct {
	ID          string
	Name        string
	Description string
	CategoryID  string
	SeasonID    string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l Lineup) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lineup id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("lineup name is required")
	}
	if l.CategoryID == "" {
		return fmt.Errorf("lineup category id is required")
	}
	if l.SeasonID == "" {
		return fmt.Errorf("lineup season id is required")
	}

	return nil
}

// Player is a member assignment inside a lineup. JerseyNumber is nil when the
// player has no number yet; only active players with a number take part in
// jersey uniqueness checks.
type Player struct {
	ID            string
	LineupID      string
	MemberID      string
	Position      Position
	JerseyNumber  *int
	IsCaptain     bool
	IsViceCaptain bool
	IsActive      bool
	AddedAt       time.Time
	AddedBy       string
}

func (p Player) Validate() error {
	if p.LineupID == "" {
		return fmt.Errorf("player lineup id is required")
	}
	if p.MemberID == "" {
		return fmt.Errorf("player member id is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.JerseyNumber != nil && *p.JerseyNumber <= 0 {
		return fmt.Errorf("jersey number must be greater than zero")
	}

	return nil
}

// Coach is a coaching-staff assignment inside a lineup.
type Coach struct {
	ID       string
	LineupID string
	MemberID string
	Role     CoachRole
	AddedAt  time.Time
	AddedBy  string
}

func (c Coach) Validate() error {
	if c.LineupID == "" {
		return fmt.Errorf("coach lineup id is required")
	}
	if c.MemberID == "" {
		return fmt.Errorf("coach member id is required")
	}
	if _, ok := AllCoachRoles[c.Role]; !ok {
		return fmt.Errorf("invalid coach role: %s", c.Role)
	}

	return nil
}
