package postgres

import "time"

type categoryTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Slug        string    `db:"slug"`
	AgeGroup    string    `db:"age_group"`
	Gender      string    `db:"gender"`
	IsActive    bool      `db:"is_active"`
	SortOrder   int       `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type categoryInsertModel struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Slug        string `db:"slug"`
	AgeGroup    string `db:"age_group"`
	Gender      string `db:"gender"`
	IsActive    bool   `db:"is_active"`
	SortOrder   int    `db:"sort_order"`
}
