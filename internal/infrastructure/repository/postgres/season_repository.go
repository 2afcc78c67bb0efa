package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubkit/roster-service/internal/domain/season"
	qb "github.com/clubkit/roster-service/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		OrderBy("starts_on DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", storageErr(err))
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", storageErr(err))
	}

	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) (season.Season, error) {
	insertModel := seasonInsertModel{
		ID:       item.ID,
		Name:     item.Name,
		StartsOn: item.StartsOn,
		EndsOn:   item.EndsOn,
		IsActive: item.IsActive,
		IsClosed: item.IsClosed,
	}

	query, args, err := qb.InsertModel("seasons", insertModel, "")
	if err != nil {
		return season.Season{}, fmt.Errorf("build insert season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return season.Season{}, fmt.Errorf("insert season: %w", storageErr(err))
	}

	return item, nil
}

func (r *SeasonRepository) Update(ctx context.Context, seasonID string, update season.Update) (season.Season, bool, error) {
	builder := qb.Update("seasons").SetExpr("updated_at", "NOW()")
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}
	if update.IsClosed != nil {
		builder = builder.Set("is_closed", *update.IsClosed)
	}

	query, args, err := builder.Where(qb.Eq("id", seasonID)).Suffix("RETURNING *").ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build update season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("update season: %w", storageErr(err))
	}

	return seasonFromRow(row), true, nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:       row.ID,
		Name:     row.Name,
		StartsOn: row.StartsOn,
		EndsOn:   row.EndsOn,
		IsActive: row.IsActive,
		IsClosed: row.IsClosed,
	}
}
