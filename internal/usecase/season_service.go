package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubkit/roster-service/internal/domain/season"
	"github.com/clubkit/roster-service/internal/platform/cache"
	"github.com/clubkit/roster-service/internal/platform/id"
)

const seasonCachePrefix = "seasons:"

type CreateSeasonInput struct {
	Name     string
	StartsOn time.Time
	EndsOn   time.Time
}

// SeasonService manages the season catalog. A season is closed exactly once;
// closing is irreversible through this API.
type SeasonService struct {
	repo  season.Repository
	store *cache.Store
	idGen id.Generator
}

func NewSeasonService(repo season.Repository, store *cache.Store) *SeasonService {
	return &SeasonService{
		repo:  repo,
		store: store,
		idGen: id.NewRandomGenerator(),
	}
}

func (s *SeasonService) List(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.List")
	defer span.End()

	value, err := s.store.GetOrLoad(ctx, seasonCachePrefix+"all", func(ctx context.Context) (any, error) {
		items, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list seasons: %w", err)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := value.([]season.Season)
	if !ok {
		return nil, fmt.Errorf("unexpected cached season list type %T", value)
	}
	return items, nil
}

func (s *SeasonService) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.GetByID")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, false, fmt.Errorf("%w: season_id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}
	return item, exists, nil
}

func (s *SeasonService) Create(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return season.Season{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	item := season.Season{
		ID:       seasonID,
		Name:     input.Name,
		StartsOn: input.StartsOn,
		EndsOn:   input.EndsOn,
		IsActive: true,
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}

	s.store.DeletePrefix(ctx, seasonCachePrefix)
	return created, nil
}

// Close marks the season closed and inactive. All lineup mutations for the
// season are rejected from that point on.
func (s *SeasonService) Close(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.Close")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season_id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season by id: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if item.IsClosed {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, seasonID)
	}

	closed := true
	inactive := false
	updated, exists, err := s.repo.Update(ctx, seasonID, season.Update{
		IsClosed: &closed,
		IsActive: &inactive,
	})
	if err != nil {
		return season.Season{}, fmt.Errorf("close season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	s.store.DeletePrefix(ctx, seasonCachePrefix)
	return updated, nil
}
