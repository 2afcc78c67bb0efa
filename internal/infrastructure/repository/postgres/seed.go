package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubkit/roster-service/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the shared development fixtures into an empty
// database so a fresh postgres instance serves the same data as the memory
// driver. A database that already holds categories is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM categories`); err != nil {
		return fmt.Errorf("count categories for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedCategories() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO categories (id, name, description, slug, age_group, gender, is_active, sort_order)
VALUES (:id, :name, :description, :slug, :age_group, :gender, :is_active, :sort_order)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          c.ID,
			"name":        c.Name,
			"description": c.Description,
			"slug":        c.Slug,
			"age_group":   c.AgeGroup,
			"gender":      c.Gender,
			"is_active":   c.IsActive,
			"sort_order":  c.SortOrder,
		})
		if err != nil {
			return fmt.Errorf("bind seed category %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}

	for _, s := range memory.SeedSeasons() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO seasons (id, name, starts_on, ends_on, is_active, is_closed)
VALUES (:id, :name, :starts_on, :ends_on, :is_active, :is_closed)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        s.ID,
			"name":      s.Name,
			"starts_on": s.StartsOn.UTC(),
			"ends_on":   s.EndsOn.UTC(),
			"is_active": s.IsActive,
			"is_closed": s.IsClosed,
		})
		if err != nil {
			return fmt.Errorf("bind seed season %s query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed season %s: %w", s.ID, err)
		}
	}

	for _, m := range memory.SeedMembers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO members (id, name, surname, registration_number, category_id, sex)
VALUES (:id, :name, :surname, :registration_number, :category_id, :sex)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                  m.ID,
			"name":                m.Name,
			"surname":             m.Surname,
			"registration_number": m.RegistrationNumber,
			"category_id":         m.CategoryID,
			"sex":                 m.Sex,
		})
		if err != nil {
			return fmt.Errorf("bind seed member %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed member %s: %w", m.ID, err)
		}
	}

	for _, l := range memory.SeedLineups() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO category_lineups (id, name, description, category_id, season_id, is_active, created_by)
VALUES (:id, :name, :description, :category_id, :season_id, :is_active, :created_by)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          l.ID,
			"name":        l.Name,
			"description": l.Description,
			"category_id": l.CategoryID,
			"season_id":   l.SeasonID,
			"is_active":   l.IsActive,
			"created_by":  l.CreatedBy,
		})
		if err != nil {
			return fmt.Errorf("bind seed lineup %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed lineup %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
