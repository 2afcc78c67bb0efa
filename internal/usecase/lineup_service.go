package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/domain/member"
	"github.com/clubkit/roster-service/internal/domain/roster"
	"github.com/clubkit/roster-service/internal/domain/season"
	"github.com/clubkit/roster-service/internal/platform/id"
	"github.com/clubkit/roster-service/internal/platform/logging"
)

const defaultRepoTimeout = 5 * time.Second

// LineupSnapshot is a lineup with its full membership and derived summary.
type LineupSnapshot struct {
	Lineup  roster.Lineup
	Players []roster.Player
	Coaches []roster.Coach
	Summary roster.Summary
}

// MutationResult reports the outcome of a roster mutation. When Applied is
// false the change was blocked by composition rules and nothing was persisted;
// Warnings are advisory either way.
type MutationResult struct {
	Applied  bool
	Errors   []roster.Violation
	Warnings []roster.Violation
	Snapshot LineupSnapshot
}

type CreateLineupInput struct {
	Name        string
	Description string
	CategoryID  string
	SeasonID    string
	CreatedBy   string
}

type AddPlayerInput struct {
	LineupID      string
	MemberID      string
	Position      string
	JerseyNumber  *int
	IsCaptain     bool
	IsViceCaptain bool
	AddedBy       string
}

type AddCoachInput struct {
	LineupID string
	MemberID string
	Role     string
	AddedBy  string
}

// LineupService owns lineup CRUD and roster mutations. All composition rules
// run here before anything is persisted; the repositories re-check them at
// write time so a lost race still cannot break an invariant.
type LineupService struct {
	lineupRepo   roster.Repository
	categoryRepo category.Repository
	seasonRepo   season.Repository
	memberRepo   member.Repository
	rules        roster.Rules
	idGen        id.Generator
	logger       *logging.Logger
	now          func() time.Time
	repoTimeout  time.Duration
}

func NewLineupService(
	lineupRepo roster.Repository,
	categoryRepo category.Repository,
	seasonRepo season.Repository,
	memberRepo member.Repository,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		lineupRepo:   lineupRepo,
		categoryRepo: categoryRepo,
		seasonRepo:   seasonRepo,
		memberRepo:   memberRepo,
		rules:        roster.DefaultRules(),
		idGen:        id.NewRandomGenerator(),
		logger:       logger,
		now:          time.Now,
		repoTimeout:  defaultRepoTimeout,
	}
}

func (s *LineupService) SetRepoTimeout(timeout time.Duration) {
	if timeout > 0 {
		s.repoTimeout = timeout
	}
}

func (s *LineupService) ListLineups(ctx context.Context, categoryID, seasonID string, activeOnly bool) ([]roster.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.ListLineups")
	defer span.End()

	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	}

	if _, err := s.requireCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	items, err := s.lineupRepo.ListLineups(repoCtx, categoryID, strings.TrimSpace(seasonID), activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}

	return items, nil
}

func (s *LineupService) GetLineup(ctx context.Context, lineupID string) (LineupSnapshot, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.GetLineup")
	defer span.End()

	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return LineupSnapshot{}, false, fmt.Errorf("%w: lineup_id is required", ErrInvalidInput)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	item, exists, err := s.lineupRepo.GetLineup(repoCtx, lineupID)
	if err != nil {
		return LineupSnapshot{}, false, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return LineupSnapshot{}, false, nil
	}

	snapshot, err := s.loadSnapshot(ctx, item)
	if err != nil {
		return LineupSnapshot{}, false, err
	}

	return snapshot, true, nil
}

func (s *LineupService) GetSummary(ctx context.Context, lineupID string) (roster.Summary, bool, error) {
	snapshot, exists, err := s.GetLineup(ctx, lineupID)
	if err != nil || !exists {
		return roster.Summary{}, exists, err
	}
	return snapshot.Summary, true, nil
}

func (s *LineupService) CreateLineup(ctx context.Context, input CreateLineupInput) (roster.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.CreateLineup")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.CategoryID = strings.TrimSpace(input.CategoryID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)

	if input.Name == "" {
		return roster.Lineup{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	cat, err := s.requireCategory(ctx, input.CategoryID)
	if err != nil {
		return roster.Lineup{}, err
	}
	if !cat.IsActive {
		return roster.Lineup{}, fmt.Errorf("%w: category %s is inactive", ErrInvalidInput, cat.ID)
	}
	if err := s.requireOpenSeason(ctx, input.SeasonID); err != nil {
		return roster.Lineup{}, err
	}

	lineupID, err := s.idGen.NewID()
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
	}

	now := s.now().UTC()
	item := roster.Lineup{
		ID:          lineupID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
		SeasonID:    input.SeasonID,
		IsActive:    true,
		CreatedBy:   strings.TrimSpace(input.CreatedBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return roster.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	created, err := s.lineupRepo.CreateLineup(repoCtx, item)
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("create lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup created",
		"lineup_id", created.ID,
		"category_id", created.CategoryID,
		"season_id", created.SeasonID,
	)
	return created, nil
}

func (s *LineupService) UpdateLineup(ctx context.Context, lineupID string, update roster.LineupUpdate) (roster.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.UpdateLineup")
	defer span.End()

	item, err := s.requireMutableLineup(ctx, lineupID)
	if err != nil {
		return roster.Lineup{}, err
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return roster.Lineup{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	updated, exists, err := s.lineupRepo.UpdateLineup(repoCtx, item.ID, update)
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("update lineup: %w", err)
	}
	if !exists {
		return roster.Lineup{}, fmt.Errorf("%w: lineup=%s", ErrNotFound, item.ID)
	}

	return updated, nil
}

func (s *LineupService) DeleteLineup(ctx context.Context, lineupID string) error {
	ctx, span := startUsecaseSpan(ctx, "LineupService.DeleteLineup")
	defer span.End()

	item, err := s.requireMutableLineup(ctx, lineupID)
	if err != nil {
		return err
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	deleted, err := s.lineupRepo.DeleteLineup(repoCtx, item.ID)
	if err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: lineup=%s", ErrNotFound, item.ID)
	}

	s.logger.InfoContext(ctx, "lineup deleted", "lineup_id", item.ID)
	return nil
}

func (s *LineupService) AddPlayer(ctx context.Context, input AddPlayerInput) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.AddPlayer")
	defer span.End()

	input.MemberID = strings.TrimSpace(input.MemberID)
	if input.MemberID == "" {
		return MutationResult{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}

	item, err := s.requireMutableLineup(ctx, input.LineupID)
	if err != nil {
		return MutationResult{}, err
	}
	if err := s.requireMember(ctx, input.MemberID); err != nil {
		return MutationResult{}, err
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return MutationResult{}, fmt.Errorf("generate player id: %w", err)
	}
	candidate := roster.Player{
		ID:            playerID,
		LineupID:      item.ID,
		MemberID:      input.MemberID,
		Position:      roster.Position(strings.TrimSpace(input.Position)),
		JerseyNumber:  input.JerseyNumber,
		IsCaptain:     input.IsCaptain,
		IsViceCaptain: input.IsViceCaptain,
		IsActive:      true,
		AddedAt:       s.now().UTC(),
		AddedBy:       strings.TrimSpace(input.AddedBy),
	}
	if err := candidate.Validate(); err != nil {
		return MutationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	players, err := s.listPlayers(ctx, item.ID)
	if err != nil {
		return MutationResult{}, err
	}

	check := roster.ValidateAddPlayer(players, candidate, s.rules)
	if !check.Allowed {
		return s.blockedMutation(ctx, item, check)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	if _, err := s.lineupRepo.AddPlayer(repoCtx, candidate); err != nil {
		if violations, lost := raceViolations(err); lost {
			s.logger.WarnContext(ctx, "player add lost validation race", "lineup_id", item.ID, "member_id", candidate.MemberID)
			return s.blockedMutation(ctx, item, roster.Result{Errors: violations})
		}
		return MutationResult{}, fmt.Errorf("add player: %w", err)
	}

	return s.appliedMutation(ctx, item, check.Warnings)
}

func (s *LineupService) EditPlayer(ctx context.Context, lineupID, memberID string, update roster.PlayerUpdate) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.EditPlayer")
	defer span.End()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return MutationResult{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}

	item, err := s.requireMutableLineup(ctx, lineupID)
	if err != nil {
		return MutationResult{}, err
	}

	players, err := s.listPlayers(ctx, item.ID)
	if err != nil {
		return MutationResult{}, err
	}

	current, found := findPlayer(players, memberID)
	if !found {
		return MutationResult{}, fmt.Errorf("%w: member=%s in lineup=%s", ErrNotFound, memberID, item.ID)
	}

	updated := applyPlayerUpdate(current, update)
	if err := updated.Validate(); err != nil {
		return MutationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	check := roster.ValidateEditPlayer(players, memberID, updated, s.rules)
	if !check.Allowed {
		return s.blockedMutation(ctx, item, check)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	_, exists, err := s.lineupRepo.UpdatePlayer(repoCtx, item.ID, memberID, update)
	if err != nil {
		if violations, lost := raceViolations(err); lost {
			return s.blockedMutation(ctx, item, roster.Result{Errors: violations})
		}
		return MutationResult{}, fmt.Errorf("update player: %w", err)
	}
	if !exists {
		return MutationResult{}, fmt.Errorf("%w: member=%s in lineup=%s", ErrNotFound, memberID, item.ID)
	}

	return s.appliedMutation(ctx, item, check.Warnings)
}

func (s *LineupService) RemovePlayer(ctx context.Context, lineupID, memberID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.RemovePlayer")
	defer span.End()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return MutationResult{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}

	item, err := s.requireMutableLineup(ctx, lineupID)
	if err != nil {
		return MutationResult{}, err
	}

	players, err := s.listPlayers(ctx, item.ID)
	if err != nil {
		return MutationResult{}, err
	}
	check := roster.ValidateRemovePlayer(players, memberID, s.rules)

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	removed, err := s.lineupRepo.RemovePlayer(repoCtx, item.ID, memberID)
	if err != nil {
		return MutationResult{}, fmt.Errorf("remove player: %w", err)
	}
	if !removed {
		return MutationResult{}, fmt.Errorf("%w: member=%s in lineup=%s", ErrNotFound, memberID, item.ID)
	}

	return s.appliedMutation(ctx, item, check.Warnings)
}

func (s *LineupService) AddCoach(ctx context.Context, input AddCoachInput) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.AddCoach")
	defer span.End()

	input.MemberID = strings.TrimSpace(input.MemberID)
	if input.MemberID == "" {
		return MutationResult{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}

	item, err := s.requireMutableLineup(ctx, input.LineupID)
	if err != nil {
		return MutationResult{}, err
	}
	if err := s.requireMember(ctx, input.MemberID); err != nil {
		return MutationResult{}, err
	}

	coachID, err := s.idGen.NewID()
	if err != nil {
		return MutationResult{}, fmt.Errorf("generate coach id: %w", err)
	}
	candidate := roster.Coach{
		ID:       coachID,
		LineupID: item.ID,
		MemberID: input.MemberID,
		Role:     roster.CoachRole(strings.TrimSpace(input.Role)),
		AddedAt:  s.now().UTC(),
		AddedBy:  strings.TrimSpace(input.AddedBy),
	}
	if err := candidate.Validate(); err != nil {
		return MutationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	coaches, err := s.listCoaches(ctx, item.ID)
	if err != nil {
		return MutationResult{}, err
	}

	check := roster.ValidateAddCoach(coaches, candidate, s.rules)
	if !check.Allowed {
		return s.blockedMutation(ctx, item, check)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	if _, err := s.lineupRepo.AddCoach(repoCtx, candidate); err != nil {
		if violations, lost := raceViolations(err); lost {
			return s.blockedMutation(ctx, item, roster.Result{Errors: violations})
		}
		return MutationResult{}, fmt.Errorf("add coach: %w", err)
	}

	return s.appliedMutation(ctx, item, check.Warnings)
}

func (s *LineupService) EditCoach(ctx context.Context, lineupID, memberID string, update roster.CoachUpdate) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.EditCoach")
	defer span.End()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return MutationResult{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}
	if update.Role != nil {
		if _, ok := roster.AllCoachRoles[*update.Role]; !ok {
			return MutationResult{}, fmt.Errorf("%w: invalid coach role %q", ErrInvalidInput, *update.Role)
		}
	}

	item, err := s.requireMutableLineup(ctx, lineupID)
	if err != nil {
		return MutationResult{}, err
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	_, exists, err := s.lineupRepo.UpdateCoach(repoCtx, item.ID, memberID, update)
	if err != nil {
		return MutationResult{}, fmt.Errorf("update coach: %w", err)
	}
	if !exists {
		return MutationResult{}, fmt.Errorf("%w: coach member=%s in lineup=%s", ErrNotFound, memberID, item.ID)
	}

	return s.appliedMutation(ctx, item, nil)
}

func (s *LineupService) RemoveCoach(ctx context.Context, lineupID, memberID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.RemoveCoach")
	defer span.End()

	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return MutationResult{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}

	item, err := s.requireMutableLineup(ctx, lineupID)
	if err != nil {
		return MutationResult{}, err
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	removed, err := s.lineupRepo.RemoveCoach(repoCtx, item.ID, memberID)
	if err != nil {
		return MutationResult{}, fmt.Errorf("remove coach: %w", err)
	}
	if !removed {
		return MutationResult{}, fmt.Errorf("%w: coach member=%s in lineup=%s", ErrNotFound, memberID, item.ID)
	}

	return s.appliedMutation(ctx, item, nil)
}

// loadSnapshot fetches members and coaches concurrently and derives the
// summary from the combined result.
func (s *LineupService) loadSnapshot(ctx context.Context, item roster.Lineup) (LineupSnapshot, error) {
	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()

	var (
		players    []roster.Player
		coaches    []roster.Coach
		playersErr error
		coachesErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		players, playersErr = s.lineupRepo.ListPlayers(repoCtx, item.ID)
	})
	wg.Go(func() {
		coaches, coachesErr = s.lineupRepo.ListCoaches(repoCtx, item.ID)
	})
	wg.Wait()

	if playersErr != nil {
		return LineupSnapshot{}, fmt.Errorf("list lineup players: %w", playersErr)
	}
	if coachesErr != nil {
		return LineupSnapshot{}, fmt.Errorf("list lineup coaches: %w", coachesErr)
	}

	return LineupSnapshot{
		Lineup:  item,
		Players: players,
		Coaches: coaches,
		Summary: roster.ComputeSummary(players, coaches, s.rules),
	}, nil
}

func (s *LineupService) blockedMutation(ctx context.Context, item roster.Lineup, check roster.Result) (MutationResult, error) {
	snapshot, err := s.loadSnapshot(ctx, item)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{
		Applied:  false,
		Errors:   check.Errors,
		Warnings: check.Warnings,
		Snapshot: snapshot,
	}, nil
}

func (s *LineupService) appliedMutation(ctx context.Context, item roster.Lineup, warnings []roster.Violation) (MutationResult, error) {
	snapshot, err := s.loadSnapshot(ctx, item)
	if err != nil {
		return MutationResult{}, err
	}
	return MutationResult{
		Applied:  true,
		Warnings: warnings,
		Snapshot: snapshot,
	}, nil
}

func (s *LineupService) listPlayers(ctx context.Context, lineupID string) ([]roster.Player, error) {
	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	players, err := s.lineupRepo.ListPlayers(repoCtx, lineupID)
	if err != nil {
		return nil, fmt.Errorf("list lineup players: %w", err)
	}
	return players, nil
}

func (s *LineupService) listCoaches(ctx context.Context, lineupID string) ([]roster.Coach, error) {
	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	coaches, err := s.lineupRepo.ListCoaches(repoCtx, lineupID)
	if err != nil {
		return nil, fmt.Errorf("list lineup coaches: %w", err)
	}
	return coaches, nil
}

func (s *LineupService) requireCategory(ctx context.Context, categoryID string) (category.Category, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return category.Category{}, fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	cat, exists, err := s.categoryRepo.GetByID(repoCtx, categoryID)
	if err != nil {
		return category.Category{}, fmt.Errorf("get category by id: %w", err)
	}
	if !exists {
		return category.Category{}, fmt.Errorf("%w: category=%s", ErrNotFound, categoryID)
	}

	return cat, nil
}

func (s *LineupService) requireOpenSeason(ctx context.Context, seasonID string) error {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season_id is required", ErrInvalidInput)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	sn, exists, err := s.seasonRepo.GetByID(repoCtx, seasonID)
	if err != nil {
		return fmt.Errorf("get season by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	if sn.IsClosed {
		return fmt.Errorf("%w: season=%s", ErrSeasonClosed, seasonID)
	}

	return nil
}

// requireMutableLineup resolves the lineup and rejects mutations once its
// season is closed.
func (s *LineupService) requireMutableLineup(ctx context.Context, lineupID string) (roster.Lineup, error) {
	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return roster.Lineup{}, fmt.Errorf("%w: lineup_id is required", ErrInvalidInput)
	}

	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	item, exists, err := s.lineupRepo.GetLineup(repoCtx, lineupID)
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return roster.Lineup{}, fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}

	if err := s.requireOpenSeason(ctx, item.SeasonID); err != nil {
		return roster.Lineup{}, err
	}

	return item, nil
}

func (s *LineupService) requireMember(ctx context.Context, memberID string) error {
	repoCtx, cancel := s.boundRepo(ctx)
	defer cancel()
	_, exists, err := s.memberRepo.GetByID(repoCtx, memberID)
	if err != nil {
		return fmt.Errorf("get member by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: member=%s", ErrNotFound, memberID)
	}

	return nil
}

func (s *LineupService) boundRepo(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.repoTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.repoTimeout)
}

func findPlayer(players []roster.Player, memberID string) (roster.Player, bool) {
	for _, p := range players {
		if p.MemberID == memberID {
			return p, true
		}
	}
	return roster.Player{}, false
}

func applyPlayerUpdate(current roster.Player, update roster.PlayerUpdate) roster.Player {
	out := current
	if update.Position != nil {
		out.Position = *update.Position
	}
	if update.ClearJersey {
		out.JerseyNumber = nil
	} else if update.JerseyNumber != nil {
		out.JerseyNumber = update.JerseyNumber
	}
	if update.IsCaptain != nil {
		out.IsCaptain = *update.IsCaptain
	}
	if update.IsViceCaptain != nil {
		out.IsViceCaptain = *update.IsViceCaptain
	}
	if update.IsActive != nil {
		out.IsActive = *update.IsActive
	}
	return out
}

// raceViolations maps write-time rule errors from the repository onto
// violations so a lost race surfaces as a blocked result, not a 500. A typed
// RuleError carries the exact violations from the re-check; the sentinel
// cases cover repository implementations that only wrap a sentinel.
func raceViolations(err error) ([]roster.Violation, bool) {
	var ruleErr *roster.RuleError
	if errors.As(err, &ruleErr) && len(ruleErr.Violations) > 0 {
		return append([]roster.Violation(nil), ruleErr.Violations...), true
	}

	switch {
	case errors.Is(err, roster.ErrCapacityExceeded):
		return []roster.Violation{{
			Rule:    roster.RuleFieldPlayerCap,
			Message: "roster capacity was consumed by a concurrent change",
		}}, true
	case errors.Is(err, roster.ErrDuplicateJersey):
		return []roster.Violation{{
			Rule:    roster.RuleDuplicateJersey,
			Message: "jersey number was taken by a concurrent change",
		}}, true
	case errors.Is(err, roster.ErrDuplicateCaptain):
		return []roster.Violation{{
			Rule:    roster.RuleDuplicateCaptain,
			Message: "captain was assigned by a concurrent change",
		}}, true
	case errors.Is(err, roster.ErrDuplicateMember):
		return []roster.Violation{{
			Rule:    roster.RuleDuplicateMember,
			Message: "member was assigned by a concurrent change",
		}}, true
	default:
		return nil, false
	}
}
