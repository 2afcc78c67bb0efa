package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/platform/cache"
	"github.com/clubkit/roster-service/internal/platform/id"
)

const categoryCachePrefix = "categories:"

type CreateCategoryInput struct {
	Name        string
	Description string
	AgeGroup    string
	Gender      string
	SortOrder   int
}

// CategoryService manages the club's category catalog. List reads are cached;
// any write evicts the whole prefix.
type CategoryService struct {
	repo  category.Repository
	store *cache.Store
	idGen id.Generator
}

func NewCategoryService(repo category.Repository, store *cache.Store) *CategoryService {
	return &CategoryService{
		repo:  repo,
		store: store,
		idGen: id.NewRandomGenerator(),
	}
}

func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]category.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "CategoryService.List")
	defer span.End()

	key := categoryCachePrefix + "all"
	if activeOnly {
		key = categoryCachePrefix + "active"
	}

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.repo.List(ctx, activeOnly)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]category.Category)
	if !ok {
		return nil, fmt.Errorf("unexpected cached category list type %T", value)
	}
	return items, nil
}

func (s *CategoryService) GetByID(ctx context.Context, categoryID string) (category.Category, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "CategoryService.GetByID")
	defer span.End()

	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return category.Category{}, false, fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return category.Category{}, false, fmt.Errorf("get category by id: %w", err)
	}
	return item, exists, nil
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (category.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "CategoryService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return category.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	categoryID, err := s.idGen.NewID()
	if err != nil {
		return category.Category{}, fmt.Errorf("generate category id: %w", err)
	}

	item := category.Category{
		ID:          categoryID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Slug:        slugify(input.Name),
		AgeGroup:    strings.TrimSpace(input.AgeGroup),
		Gender:      strings.TrimSpace(input.Gender),
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if err := item.Validate(); err != nil {
		return category.Category{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return category.Category{}, fmt.Errorf("create category: %w", err)
	}

	s.store.DeletePrefix(ctx, categoryCachePrefix)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, categoryID string, update category.Update) (category.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "CategoryService.Update")
	defer span.End()

	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return category.Category{}, fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return category.Category{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}

	updated, exists, err := s.repo.Update(ctx, categoryID, update)
	if err != nil {
		return category.Category{}, fmt.Errorf("update category: %w", err)
	}
	if !exists {
		return category.Category{}, fmt.Errorf("%w: category=%s", ErrNotFound, categoryID)
	}

	s.store.DeletePrefix(ctx, categoryCachePrefix)
	return updated, nil
}

// Deactivate is the delete operation for categories: lineups keep referencing
// the row, so it is never hard-deleted.
func (s *CategoryService) Deactivate(ctx context.Context, categoryID string) (category.Category, error) {
	inactive := false
	return s.Update(ctx, categoryID, category.Update{IsActive: &inactive})
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
