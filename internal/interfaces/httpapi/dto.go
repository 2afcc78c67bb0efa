package httpapi

import (
	"time"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/domain/season"
	"github.com/clubkit/roster-service/internal/usecase"
)

type lineupDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"categoryId"`
	SeasonID    string    `json:"seasonId"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type playerDTO struct {
	ID            string    `json:"id"`
	LineupID      string    `json:"lineupId"`
	MemberID      string    `json:"memberId"`
	Position      string    `json:"position"`
	JerseyNumber  *int      `json:"jerseyNumber,omitempty"`
	IsCaptain     bool      `json:"isCaptain"`
	IsViceCaptain bool      `json:"isViceCaptain"`
	IsActive      bool      `json:"isActive"`
	AddedAt       time.Time `json:"addedAt"`
	AddedBy       string    `json:"addedBy,omitempty"`
}

type coachDTO struct {
	ID       string    `json:"id"`
	LineupID string    `json:"lineupId"`
	MemberID string    `json:"memberId"`
	Role     string    `json:"role"`
	AddedAt  time.Time `json:"addedAt"`
	AddedBy  string    `json:"addedBy,omitempty"`
}

type summaryDTO struct {
	Goalkeepers  int  `json:"goalkeepers"`
	FieldPlayers int  `json:"fieldPlayers"`
	Coaches      int  `json:"coaches"`
	TotalPlayers int  `json:"totalPlayers"`
	IsValid      bool `json:"isValid"`
}

type violationDTO struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Current int    `json:"current"`
	Limit   int    `json:"limit"`
}

type lineupSnapshotDTO struct {
	Lineup  lineupDTO   `json:"lineup"`
	Players []playerDTO `json:"players"`
	Coaches []coachDTO  `json:"coaches"`
	Summary summaryDTO  `json:"summary"`
}

type mutationResultDTO struct {
	Applied  bool           `json:"applied"`
	Warnings []violationDTO `json:"warnings"`
	Lineup   lineupDTO      `json:"lineup"`
	Players  []playerDTO    `json:"players"`
	Coaches  []coachDTO     `json:"coaches"`
	Summary  summaryDTO     `json:"summary"`
}

type categoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	AgeGroup    string `json:"ageGroup,omitempty"`
	Gender      string `json:"gender,omitempty"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

type seasonDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	StartsOn string `json:"startsOn"`
	EndsOn   string `json:"endsOn"`
	IsActive bool   `json:"isActive"`
	IsClosed bool   `json:"isClosed"`
}

const seasonDateLayout = "2006-01-02"

func toLineupDTO(item roster.Lineup) lineupDTO {
	return lineupDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		SeasonID:    item.SeasonID,
		IsActive:    item.IsActive,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toLineupDTOs(items []roster.Lineup) []lineupDTO {
	out := make([]lineupDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toLineupDTO(item))
	}
	return out
}

func toPlayerDTO(item roster.Player) playerDTO {
	return playerDTO{
		ID:            item.ID,
		LineupID:      item.LineupID,
		MemberID:      item.MemberID,
		Position:      string(item.Position),
		JerseyNumber:  item.JerseyNumber,
		IsCaptain:     item.IsCaptain,
		IsViceCaptain: item.IsViceCaptain,
		IsActive:      item.IsActive,
		AddedAt:       item.AddedAt,
		AddedBy:       item.AddedBy,
	}
}

func toPlayerDTOs(items []roster.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toPlayerDTO(item))
	}
	return out
}

func toCoachDTO(item roster.Coach) coachDTO {
	return coachDTO{
		ID:       item.ID,
		LineupID: item.LineupID,
		MemberID: item.MemberID,
		Role:     string(item.Role),
		AddedAt:  item.AddedAt,
		AddedBy:  item.AddedBy,
	}
}

func toCoachDTOs(items []roster.Coach) []coachDTO {
	out := make([]coachDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCoachDTO(item))
	}
	return out
}

func toSummaryDTO(s roster.Summary) summaryDTO {
	return summaryDTO{
		Goalkeepers:  s.Goalkeepers,
		FieldPlayers: s.FieldPlayers,
		Coaches:      s.Coaches,
		TotalPlayers: s.TotalPlayers,
		IsValid:      s.IsValid,
	}
}

func toViolationDTOs(items []roster.Violation) []violationDTO {
	out := make([]violationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, violationDTO{
			Rule:    item.Rule,
			Message: item.Message,
			Current: item.Current,
			Limit:   item.Limit,
		})
	}
	return out
}

func toSnapshotDTO(snapshot usecase.LineupSnapshot) lineupSnapshotDTO {
	return lineupSnapshotDTO{
		Lineup:  toLineupDTO(snapshot.Lineup),
		Players: toPlayerDTOs(snapshot.Players),
		Coaches: toCoachDTOs(snapshot.Coaches),
		Summary: toSummaryDTO(snapshot.Summary),
	}
}

func toMutationResultDTO(result usecase.MutationResult) mutationResultDTO {
	return mutationResultDTO{
		Applied:  result.Applied,
		Warnings: toViolationDTOs(result.Warnings),
		Lineup:   toLineupDTO(result.Snapshot.Lineup),
		Players:  toPlayerDTOs(result.Snapshot.Players),
		Coaches:  toCoachDTOs(result.Snapshot.Coaches),
		Summary:  toSummaryDTO(result.Snapshot.Summary),
	}
}

func toCategoryDTO(item category.Category) categoryDTO {
	return categoryDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Slug:        item.Slug,
		AgeGroup:    item.AgeGroup,
		Gender:      item.Gender,
		IsActive:    item.IsActive,
		SortOrder:   item.SortOrder,
	}
}

func toCategoryDTOs(items []category.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCategoryDTO(item))
	}
	return out
}

func toSeasonDTO(item season.Season) seasonDTO {
	dto := seasonDTO{
		ID:       item.ID,
		Name:     item.Name,
		IsActive: item.IsActive,
		IsClosed: item.IsClosed,
	}
	if !item.StartsOn.IsZero() {
		dto.StartsOn = item.StartsOn.Format(seasonDateLayout)
	}
	if !item.EndsOn.IsZero() {
		dto.EndsOn = item.EndsOn.Format(seasonDateLayout)
	}
	return dto
}

func toSeasonDTOs(items []season.Season) []seasonDTO {
	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSeasonDTO(item))
	}
	return out
}
