package postgres

import (
	"time"

	"github.com/clubkit/roster-service/internal/domain/roster"
)

type lineupTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CategoryID  string    `db:"category_id"`
	SeasonID    string    `db:"season_id"`
	IsActive    bool      `db:"is_active"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type lineupInsertModel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	CategoryID  string `db:"category_id"`
	SeasonID    string `db:"season_id"`
	IsActive    bool   `db:"is_active"`
	CreatedBy   string `db:"created_by"`
}

type lineupPlayerTableModel struct {
	ID            string    `db:"id"`
	LineupID      string    `db:"lineup_id"`
	MemberID      string    `db:"member_id"`
	Position      string    `db:"position"`
	JerseyNumber  *int      `db:"jersey_number"`
	IsCaptain     bool      `db:"is_captain"`
	IsViceCaptain bool      `db:"is_vice_captain"`
	IsActive      bool      `db:"is_active"`
	AddedAt       time.Time `db:"added_at"`
	AddedBy       string    `db:"added_by"`
}

type lineupCoachTableModel struct {
	ID       string    `db:"id"`
	LineupID string    `db:"lineup_id"`
	MemberID string    `db:"member_id"`
	Role     string    `db:"role"`
	AddedAt  time.Time `db:"added_at"`
	AddedBy  string    `db:"added_by"`
}

func lineupFromRow(row lineupTableModel) roster.Lineup {
	return roster.Lineup{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CategoryID:  row.CategoryID,
		SeasonID:    row.SeasonID,
		IsActive:    row.IsActive,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func playerFromRow(row lineupPlayerTableModel) roster.Player {
	return roster.Player{
		ID:            row.ID,
		LineupID:      row.LineupID,
		MemberID:      row.MemberID,
		Position:      roster.Position(row.Position),
		JerseyNumber:  row.JerseyNumber,
		IsCaptain:     row.IsCaptain,
		IsViceCaptain: row.IsViceCaptain,
		IsActive:      row.IsActive,
		AddedAt:       row.AddedAt,
		AddedBy:       row.AddedBy,
	}
}

func coachFromRow(row lineupCoachTableModel) roster.Coach {
	return roster.Coach{
		ID:       row.ID,
		LineupID: row.LineupID,
		MemberID: row.MemberID,
		Role:     roster.CoachRole(row.Role),
		AddedAt:  row.AddedAt,
		AddedBy:  row.AddedBy,
	}
}
