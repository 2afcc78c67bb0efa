package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubkit/roster-service/internal/domain/category"
	qb "github.com/clubkit/roster-service/internal/platform/querybuilder"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]category.Category, error) {
	builder := qb.Select("*").From("categories")
	if activeOnly {
		builder = builder.Where(qb.Eq("is_active", true))
	}
	query, args, err := builder.OrderBy("sort_order", "name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select categories query: %w", err)
	}

	var rows []categoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select categories: %w", storageErr(err))
	}

	out := make([]category.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryFromRow(row))
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	query, args, err := qb.Select("*").From("categories").
		Where(qb.Eq("id", categoryID)).
		ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build get category by id query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("get category by id: %w", storageErr(err))
	}

	return categoryFromRow(row), true, nil
}

func (r *CategoryRepository) Create(ctx context.Context, item category.Category) (category.Category, error) {
	insertModel := categoryInsertModel{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Slug:        item.Slug,
		AgeGroup:    item.AgeGroup,
		Gender:      item.Gender,
		IsActive:    item.IsActive,
		SortOrder:   item.SortOrder,
	}

	query, args, err := qb.InsertModel("categories", insertModel, "")
	if err != nil {
		return category.Category{}, fmt.Errorf("build insert category query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return category.Category{}, fmt.Errorf("insert category: %w", storageErr(err))
	}

	return item, nil
}

func (r *CategoryRepository) Update(ctx context.Context, categoryID string, update category.Update) (category.Category, bool, error) {
	builder := qb.Update("categories").SetExpr("updated_at", "NOW()")
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.AgeGroup != nil {
		builder = builder.Set("age_group", *update.AgeGroup)
	}
	if update.Gender != nil {
		builder = builder.Set("gender", *update.Gender)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}
	if update.SortOrder != nil {
		builder = builder.Set("sort_order", *update.SortOrder)
	}

	query, args, err := builder.Where(qb.Eq("id", categoryID)).Suffix("RETURNING *").ToSQL()
	if err != nil {
		return category.Category{}, false, fmt.Errorf("build update category query: %w", err)
	}

	var row categoryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return category.Category{}, false, nil
		}
		return category.Category{}, false, fmt.Errorf("update category: %w", storageErr(err))
	}

	return categoryFromRow(row), true, nil
}

func categoryFromRow(row categoryTableModel) category.Category {
	return category.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Slug:        row.Slug,
		AgeGroup:    row.AgeGroup,
		Gender:      row.Gender,
		IsActive:    row.IsActive,
		SortOrder:   row.SortOrder,
	}
}
