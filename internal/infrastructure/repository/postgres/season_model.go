package postgres

import "time"

type seasonTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	StartsOn  time.Time `db:"starts_on"`
	EndsOn    time.Time `db:"ends_on"`
	IsActive  bool      `db:"is_active"`
	IsClosed  bool      `db:"is_closed"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type seasonInsertModel struct {
	ID       string    `db:"id"`
	Name     string    `db:"name"`
	StartsOn time.Time `db:"starts_on"`
	EndsOn   time.Time `db:"ends_on"`
	IsActive bool      `db:"is_active"`
	IsClosed bool      `db:"is_closed"`
}
