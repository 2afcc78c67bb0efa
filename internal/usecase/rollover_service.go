package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/domain/season"
	"github.com/clubkit/roster-service/internal/platform/id"
	"github.com/clubkit/roster-service/internal/platform/logging"
)

const (
	rolloverStatusSuccess = "success"
	rolloverStatusFailed  = "failed"
	rolloverStatusSkipped = "skipped"

	rolloverDefaultWorkers = 4
	rolloverMaxWorkers     = 16
)

type RolloverInput struct {
	SourceSeasonID string
	TargetSeasonID string
	// CategoryIDs narrows the job; empty means every active category.
	CategoryIDs []string
	MaxWorkers  int
	TriggeredBy string
	// DryRun computes counts without writing anything.
	DryRun bool
}

type RolloverResult struct {
	CategoryCount int                  `json:"category_count"`
	TaskCount     int                  `json:"task_count"`
	SuccessCount  int                  `json:"success_count"`
	FailedCount   int                  `json:"failed_count"`
	SkippedCount  int                  `json:"skipped_count"`
	WorkerCount   int                  `json:"worker_count"`
	Tasks         []RolloverTaskResult `json:"tasks"`
}

type RolloverTaskResult struct {
	CategoryID string `json:"category_id"`
	Status     string `json:"status"`
	Lineups    int    `json:"lineups"`
	Players    int    `json:"players"`
	Coaches    int    `json:"coaches"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// RolloverService copies every active lineup of a closing season into a fresh
// open season, one task per category on a worker pool.
type RolloverService struct {
	lineupRepo   roster.Repository
	categoryRepo category.Repository
	seasonRepo   season.Repository
	idGen        id.Generator
	logger       *logging.Logger
	now          func() time.Time
	// defaultWorkers applies when a run does not request a worker count.
	defaultWorkers int
}

func NewRolloverService(
	lineupRepo roster.Repository,
	categoryRepo category.Repository,
	seasonRepo season.Repository,
	logger *logging.Logger,
) *RolloverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RolloverService{
		lineupRepo:     lineupRepo,
		categoryRepo:   categoryRepo,
		seasonRepo:     seasonRepo,
		idGen:          id.NewRandomGenerator(),
		logger:         logger,
		now:            time.Now,
		defaultWorkers: rolloverDefaultWorkers,
	}
}

func (s *RolloverService) SetDefaultWorkers(workers int) {
	if workers > 0 {
		s.defaultWorkers = workers
	}
}

func (s *RolloverService) Run(ctx context.Context, input RolloverInput) (RolloverResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RolloverService.Run")
	defer span.End()

	input.SourceSeasonID = strings.TrimSpace(input.SourceSeasonID)
	input.TargetSeasonID = strings.TrimSpace(input.TargetSeasonID)
	if input.SourceSeasonID == "" || input.TargetSeasonID == "" {
		return RolloverResult{}, fmt.Errorf("%w: source_season_id and target_season_id are required", ErrInvalidInput)
	}
	if input.SourceSeasonID == input.TargetSeasonID {
		return RolloverResult{}, fmt.Errorf("%w: source and target season must differ", ErrInvalidInput)
	}

	if _, exists, err := s.seasonRepo.GetByID(ctx, input.SourceSeasonID); err != nil {
		return RolloverResult{}, fmt.Errorf("get source season: %w", err)
	} else if !exists {
		return RolloverResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, input.SourceSeasonID)
	}

	target, exists, err := s.seasonRepo.GetByID(ctx, input.TargetSeasonID)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("get target season: %w", err)
	}
	if !exists {
		return RolloverResult{}, fmt.Errorf("%w: season=%s", ErrNotFound, input.TargetSeasonID)
	}
	if target.IsClosed {
		return RolloverResult{}, fmt.Errorf("%w: season=%s", ErrSeasonClosed, target.ID)
	}

	targets, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return RolloverResult{}, err
	}

	requestedWorkers := input.MaxWorkers
	if requestedWorkers <= 0 {
		requestedWorkers = s.defaultWorkers
	}
	workerCount := normalizeRolloverWorkerCount(requestedWorkers, len(targets))
	result := RolloverResult{
		CategoryCount: len(targets),
		TaskCount:     len(targets),
		WorkerCount:   workerCount,
		Tasks:         make([]RolloverTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	results := make(chan RolloverTaskResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RolloverResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, categoryID := range targets {
		categoryID := categoryID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.rolloverCategory(ctx, categoryID, input)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case rolloverStatusSuccess:
				successCount.Add(1)
			case rolloverStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RolloverResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].CategoryID < result.Tasks[j].CategoryID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "season rollover finished",
		"source_season_id", input.SourceSeasonID,
		"target_season_id", input.TargetSeasonID,
		"categories", result.CategoryCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
		"dry_run", input.DryRun,
	)
	return result, nil
}

func (s *RolloverService) rolloverCategory(ctx context.Context, categoryID string, input RolloverInput) RolloverTaskResult {
	row := RolloverTaskResult{CategoryID: categoryID}

	lineups, err := s.lineupRepo.ListLineups(ctx, categoryID, input.SourceSeasonID, true)
	if err != nil {
		row.Status = rolloverStatusFailed
		row.Message = err.Error()
		return row
	}
	if len(lineups) == 0 {
		row.Status = rolloverStatusSkipped
		row.Message = "no active lineups in source season"
		return row
	}

	for _, src := range lineups {
		players, coaches, err := s.copyLineup(ctx, src, input)
		if err != nil {
			row.Status = rolloverStatusFailed
			row.Message = err.Error()
			return row
		}
		row.Lineups++
		row.Players += players
		row.Coaches += coaches
	}

	row.Status = rolloverStatusSuccess
	return row
}

func (s *RolloverService) copyLineup(ctx context.Context, src roster.Lineup, input RolloverInput) (int, int, error) {
	players, err := s.lineupRepo.ListPlayers(ctx, src.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("list players of %s: %w", src.ID, err)
	}
	coaches, err := s.lineupRepo.ListCoaches(ctx, src.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("list coaches of %s: %w", src.ID, err)
	}

	if input.DryRun {
		return len(players), len(coaches), nil
	}

	newLineupID, err := s.idGen.NewID()
	if err != nil {
		return 0, 0, fmt.Errorf("generate lineup id: %w", err)
	}

	now := s.now().UTC()
	created, err := s.lineupRepo.CreateLineup(ctx, roster.Lineup{
		ID:          newLineupID,
		Name:        src.Name,
		Description: src.Description,
		CategoryID:  src.CategoryID,
		SeasonID:    input.TargetSeasonID,
		IsActive:    true,
		CreatedBy:   strings.TrimSpace(input.TriggeredBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("create lineup copy of %s: %w", src.ID, err)
	}

	playerCount := 0
	for _, p := range players {
		playerID, err := s.idGen.NewID()
		if err != nil {
			return playerCount, 0, fmt.Errorf("generate player id: %w", err)
		}
		copied := p
		copied.ID = playerID
		copied.LineupID = created.ID
		copied.AddedAt = now
		copied.AddedBy = strings.TrimSpace(input.TriggeredBy)
		if _, err := s.lineupRepo.AddPlayer(ctx, copied); err != nil {
			return playerCount, 0, fmt.Errorf("copy player %s: %w", p.MemberID, err)
		}
		playerCount++
	}

	coachCount := 0
	for _, c := range coaches {
		coachID, err := s.idGen.NewID()
		if err != nil {
			return playerCount, coachCount, fmt.Errorf("generate coach id: %w", err)
		}
		copied := c
		copied.ID = coachID
		copied.LineupID = created.ID
		copied.AddedAt = now
		copied.AddedBy = strings.TrimSpace(input.TriggeredBy)
		if _, err := s.lineupRepo.AddCoach(ctx, copied); err != nil {
			return playerCount, coachCount, fmt.Errorf("copy coach %s: %w", c.MemberID, err)
		}
		coachCount++
	}

	return playerCount, coachCount, nil
}

func (s *RolloverService) resolveCategories(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		out := make([]string, 0, len(requested))
		seen := make(map[string]struct{}, len(requested))
		for _, categoryID := range requested {
			categoryID = strings.TrimSpace(categoryID)
			if categoryID == "" {
				return nil, fmt.Errorf("%w: category id cannot be empty", ErrInvalidInput)
			}
			if _, dup := seen[categoryID]; dup {
				continue
			}
			if _, exists, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
				return nil, fmt.Errorf("get category by id: %w", err)
			} else if !exists {
				return nil, fmt.Errorf("%w: category=%s", ErrNotFound, categoryID)
			}
			seen[categoryID] = struct{}{}
			out = append(out, categoryID)
		}
		return out, nil
	}

	categories, err := s.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]string, 0, len(categories))
	for _, cat := range categories {
		out = append(out, cat.ID)
	}
	return out, nil
}

func normalizeRolloverWorkerCount(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = rolloverDefaultWorkers
	}
	if workers > rolloverMaxWorkers {
		workers = rolloverMaxWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
