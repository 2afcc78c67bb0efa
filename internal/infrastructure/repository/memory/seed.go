package memory

import (
	"time"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/domain/member"
	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/domain/season"
)

const (
	CategoryIDU15       = "cat-u15"
	CategoryIDU17       = "cat-u17"
	CategoryIDSeniorMen = "cat-senior-men"

	SeasonIDCurrent = "season-2025-2026"
	SeasonIDPrior   = "season-2024-2025"

	LineupIDU15First = "lineup-u15-first"
)

func SeedCategories() []category.Category {
	return []category.Category{
		{ID: CategoryIDU15, Name: "U15", Slug: "u15", AgeGroup: "U15", Gender: "mixed", IsActive: true, SortOrder: 1},
		{ID: CategoryIDU17, Name: "U17", Slug: "u17", AgeGroup: "U17", Gender: "mixed", IsActive: true, SortOrder: 2},
		{ID: CategoryIDSeniorMen, Name: "Senior Men", Slug: "senior-men", AgeGroup: "senior", Gender: "male", IsActive: true, SortOrder: 3},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:       SeasonIDCurrent,
			Name:     "2025/2026",
			StartsOn: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			EndsOn:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			IsActive: true,
		},
		{
			ID:       SeasonIDPrior,
			Name:     "2024/2025",
			StartsOn: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			EndsOn:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			IsClosed: true,
		},
	}
}

func SeedMembers() []member.Member {
	return []member.Member{
		{ID: "mem-u15-gk-01", Name: "Jonas", Surname: "Keller", RegistrationNumber: "R-1001", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-gk-02", Name: "Luca", Surname: "Brandt", RegistrationNumber: "R-1002", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-01", Name: "Milan", Surname: "Weber", RegistrationNumber: "R-1003", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-02", Name: "Timo", Surname: "Schulz", RegistrationNumber: "R-1004", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-03", Name: "Noah", Surname: "Fischer", RegistrationNumber: "R-1005", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-04", Name: "Elias", Surname: "Wagner", RegistrationNumber: "R-1006", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-05", Name: "Finn", Surname: "Becker", RegistrationNumber: "R-1007", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-06", Name: "Levi", Surname: "Hoffmann", RegistrationNumber: "R-1008", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u15-fp-07", Name: "Paul", Surname: "Koch", RegistrationNumber: "R-1009", CategoryID: CategoryIDU15, Sex: "m"},
		{ID: "mem-u17-gk-01", Name: "Erik", Surname: "Bauer", RegistrationNumber: "R-2001", CategoryID: CategoryIDU17, Sex: "m"},
		{ID: "mem-u17-fp-01", Name: "Jan", Surname: "Richter", RegistrationNumber: "R-2002", CategoryID: CategoryIDU17, Sex: "m"},
		{ID: "mem-staff-01", Name: "Stefan", Surname: "Krause", RegistrationNumber: "R-9001", CategoryID: CategoryIDSeniorMen, Sex: "m"},
		{ID: "mem-staff-02", Name: "Anna", Surname: "Vogel", RegistrationNumber: "R-9002", CategoryID: CategoryIDSeniorMen, Sex: "f"},
		{ID: "mem-staff-03", Name: "Petra", Surname: "Lang", RegistrationNumber: "R-9003", CategoryID: CategoryIDSeniorMen, Sex: "f"},
		{ID: "mem-staff-04", Name: "Karl", Surname: "Jung", RegistrationNumber: "R-9004", CategoryID: CategoryIDSeniorMen, Sex: "m"},
	}
}

func SeedLineups() []roster.Lineup {
	created := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	return []roster.Lineup{
		{
			ID:         LineupIDU15First,
			Name:       "U15 First Team",
			CategoryID: CategoryIDU15,
			SeasonID:   SeasonIDCurrent,
			IsActive:   true,
			CreatedBy:  "seed",
			CreatedAt:  created,
			UpdatedAt:  created,
		},
	}
}
