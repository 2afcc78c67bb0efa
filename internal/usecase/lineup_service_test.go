package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/clubkit/roster-service/internal/domain/category"
	"github.com/clubkit/roster-service/internal/domain/member"
	"github.com/clubkit/roster-service/internal/domain/roster"
	cacherepo "github.com/clubkit/roster-service/internal/infrastructure/repository/cache"
	"github.com/clubkit/roster-service/internal/infrastructure/repository/memory"
	"github.com/clubkit/roster-service/internal/platform/cache"
	"github.com/clubkit/roster-service/internal/platform/logging"
)

func newTestLineupService() (*LineupService, *memory.LineupRepository) {
	lineupRepo := memory.NewLineupRepository(memory.SeedLineups())
	svc := NewLineupService(
		lineupRepo,
		memory.NewCategoryRepository(memory.SeedCategories()),
		memory.NewSeasonRepository(memory.SeedSeasons()),
		memory.NewMemberRepository(memory.SeedMembers()),
		logging.NewNop(),
	)
	return svc, lineupRepo
}

func mustAddPlayer(t *testing.T, svc *LineupService, lineupID, memberID string, position roster.Position, jersey int, captain bool) {
	t.Helper()

	result, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID:     lineupID,
		MemberID:     memberID,
		Position:     string(position),
		JerseyNumber: &jersey,
		IsCaptain:    captain,
		AddedBy:      "coach-1",
	})
	if err != nil {
		t.Fatalf("add player %s failed: %v", memberID, err)
	}
	if !result.Applied {
		t.Fatalf("add player %s blocked: %+v", memberID, result.Errors)
	}
}

func seedCompleteLineup(t *testing.T, svc *LineupService) string {
	t.Helper()

	created, err := svc.CreateLineup(t.Context(), CreateLineupInput{
		Name:       "A-Team",
		CategoryID: memory.CategoryIDU15,
		SeasonID:   memory.SeasonIDCurrent,
		CreatedBy:  "coach-1",
	})
	if err != nil {
		t.Fatalf("create lineup failed: %v", err)
	}

	mustAddPlayer(t, svc, created.ID, "mem-u15-gk-01", roster.PositionGoalkeeper, 1, false)
	fieldPlayers := []string{"mem-u15-fp-01", "mem-u15-fp-02", "mem-u15-fp-03", "mem-u15-fp-04", "mem-u15-fp-05", "mem-u15-fp-06"}
	for i, memberID := range fieldPlayers {
		mustAddPlayer(t, svc, created.ID, memberID, roster.PositionFieldPlayer, i+2, i == 0)
	}

	return created.ID
}

func TestLineupService_CreateAndSummarize(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	summary, exists, err := svc.GetSummary(t.Context(), lineupID)
	if err != nil {
		t.Fatalf("get summary failed: %v", err)
	}
	if !exists {
		t.Fatal("expected lineup to exist")
	}

	want := roster.Summary{Goalkeepers: 1, FieldPlayers: 6, Coaches: 0, TotalPlayers: 7, IsValid: true}
	if summary != want {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}

	lineups, err := svc.ListLineups(t.Context(), memory.CategoryIDU15, memory.SeasonIDCurrent, true)
	if err != nil {
		t.Fatalf("list lineups failed: %v", err)
	}
	found := false
	for _, l := range lineups {
		if l.ID == lineupID {
			found = true
		}
	}
	if !found {
		t.Fatal("created lineup missing from list")
	}
}

func TestLineupService_AddPlayer_GoalkeeperCap(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	mustAddPlayer(t, svc, lineupID, "mem-u15-gk-02", roster.PositionGoalkeeper, 12, false)

	jersey := 13
	result, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID:     lineupID,
		MemberID:     "mem-u17-gk-01",
		Position:     string(roster.PositionGoalkeeper),
		JerseyNumber: &jersey,
	})
	if err != nil {
		t.Fatalf("add player returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected third goalkeeper to be blocked")
	}
	if result.Errors[0].Rule != roster.RuleGoalkeeperCap {
		t.Fatalf("expected goalkeeper cap violation, got %+v", result.Errors)
	}
	if result.Snapshot.Summary.Goalkeepers != 2 {
		t.Fatalf("roster changed despite block: %+v", result.Snapshot.Summary)
	}
}

func TestLineupService_AddPlayer_DuplicateJersey(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	jersey := 7
	result, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID:     lineupID,
		MemberID:     "mem-u15-fp-07",
		Position:     string(roster.PositionFieldPlayer),
		JerseyNumber: &jersey,
	})
	if err != nil {
		t.Fatalf("add player returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected duplicate jersey to be blocked")
	}
	if result.Errors[0].Rule != roster.RuleDuplicateJersey {
		t.Fatalf("expected duplicate jersey violation, got %+v", result.Errors)
	}
	if result.Snapshot.Summary.TotalPlayers != 7 {
		t.Fatalf("new record persisted despite block: %+v", result.Snapshot.Summary)
	}
}

func TestLineupService_RemovePlayer_OnlyGoalkeeperWarns(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	result, err := svc.RemovePlayer(t.Context(), lineupID, "mem-u15-gk-01")
	if err != nil {
		t.Fatalf("remove player failed: %v", err)
	}
	if !result.Applied {
		t.Fatal("removal must never be blocked")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected below-minimum warning")
	}
	if result.Snapshot.Summary.Goalkeepers != 0 || result.Snapshot.Summary.IsValid {
		t.Fatalf("summary = %+v, want 0 goalkeepers and invalid", result.Snapshot.Summary)
	}
}

func TestLineupService_RemovePlayer_AbsentMemberIsNotFound(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	_, err := svc.RemovePlayer(t.Context(), lineupID, "mem-u17-fp-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLineupService_DeleteLineup_Cascades(t *testing.T) {
	svc, lineupRepo := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	for _, staff := range []string{"mem-staff-01", "mem-staff-02"} {
		result, err := svc.AddCoach(t.Context(), AddCoachInput{
			LineupID: lineupID,
			MemberID: staff,
			Role:     string(roster.RoleAssistantCoach),
		})
		if err != nil || !result.Applied {
			t.Fatalf("add coach %s failed: err=%v result=%+v", staff, err, result)
		}
	}

	if err := svc.DeleteLineup(t.Context(), lineupID); err != nil {
		t.Fatalf("delete lineup failed: %v", err)
	}

	if _, exists, err := svc.GetLineup(t.Context(), lineupID); err != nil || exists {
		t.Fatalf("expected lineup to be gone, exists=%t err=%v", exists, err)
	}
	players, err := lineupRepo.ListPlayers(context.Background(), lineupID)
	if err != nil || len(players) != 0 {
		t.Fatalf("expected no players after cascade, got %d (err=%v)", len(players), err)
	}
	coaches, err := lineupRepo.ListCoaches(context.Background(), lineupID)
	if err != nil || len(coaches) != 0 {
		t.Fatalf("expected no coaches after cascade, got %d (err=%v)", len(coaches), err)
	}
}

func TestLineupService_EditPlayer_CaptainHandover(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	// fp-01 is captain; promoting fp-02 without demoting first must be blocked.
	promote := true
	result, err := svc.EditPlayer(t.Context(), lineupID, "mem-u15-fp-02", roster.PlayerUpdate{IsCaptain: &promote})
	if err != nil {
		t.Fatalf("edit player returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected second captain to be blocked")
	}
	if result.Errors[0].Rule != roster.RuleDuplicateCaptain {
		t.Fatalf("expected duplicate captain violation, got %+v", result.Errors)
	}

	demote := false
	result, err = svc.EditPlayer(t.Context(), lineupID, "mem-u15-fp-01", roster.PlayerUpdate{IsCaptain: &demote})
	if err != nil || !result.Applied {
		t.Fatalf("demote captain failed: err=%v result=%+v", err, result)
	}
	result, err = svc.EditPlayer(t.Context(), lineupID, "mem-u15-fp-02", roster.PlayerUpdate{IsCaptain: &promote})
	if err != nil || !result.Applied {
		t.Fatalf("promote new captain failed: err=%v result=%+v", err, result)
	}
}

func TestLineupService_ClosedSeasonRejectsMutations(t *testing.T) {
	svc, lineupRepo := newTestLineupService()

	closed := roster.Lineup{
		ID:         "lineup-prior",
		Name:       "Prior Season Team",
		CategoryID: memory.CategoryIDU15,
		SeasonID:   memory.SeasonIDPrior,
		IsActive:   true,
	}
	if _, err := lineupRepo.CreateLineup(context.Background(), closed); err != nil {
		t.Fatalf("seed prior lineup: %v", err)
	}

	_, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID: closed.ID,
		MemberID: "mem-u15-fp-01",
		Position: string(roster.PositionFieldPlayer),
	})
	if !errors.Is(err, ErrSeasonClosed) {
		t.Fatalf("expected ErrSeasonClosed, got %v", err)
	}

	if err := svc.DeleteLineup(t.Context(), closed.ID); !errors.Is(err, ErrSeasonClosed) {
		t.Fatalf("expected ErrSeasonClosed on delete, got %v", err)
	}
}

func TestLineupService_AddPlayer_UnknownMember(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	_, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID: lineupID,
		MemberID: "mem-missing",
		Position: string(roster.PositionFieldPlayer),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLineupService_AddCoach_Cap(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	staff := []string{"mem-staff-01", "mem-staff-02", "mem-staff-03"}
	for i, memberID := range staff {
		role := roster.RoleAssistantCoach
		if i == 0 {
			role = roster.RoleHeadCoach
		}
		result, err := svc.AddCoach(t.Context(), AddCoachInput{
			LineupID: lineupID,
			MemberID: memberID,
			Role:     string(role),
		})
		if err != nil || !result.Applied {
			t.Fatalf("add coach %d failed: err=%v result=%+v", i, err, result)
		}
	}

	result, err := svc.AddCoach(t.Context(), AddCoachInput{
		LineupID: lineupID,
		MemberID: "mem-staff-04",
		Role:     string(roster.RoleTeamManager),
	})
	if err != nil {
		t.Fatalf("add coach returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected fourth coach to be blocked")
	}
	if result.Errors[0].Rule != roster.RuleCoachCap {
		t.Fatalf("expected coach cap violation, got %+v", result.Errors)
	}
}

func TestLineupService_UpdateLineup_NotFound(t *testing.T) {
	svc, _ := newTestLineupService()

	name := "Renamed"
	_, err := svc.UpdateLineup(t.Context(), "lineup-missing", roster.LineupUpdate{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLineupService_CreateLineup_InactiveCategory(t *testing.T) {
	svc, _ := newTestLineupService()

	categoryRepo := memory.NewCategoryRepository(memory.SeedCategories())
	inactive := false
	if _, _, err := categoryRepo.Update(context.Background(), memory.CategoryIDU17, categoryUpdateActive(&inactive)); err != nil {
		t.Fatalf("deactivate category: %v", err)
	}
	svc.categoryRepo = categoryRepo

	_, err := svc.CreateLineup(t.Context(), CreateLineupInput{
		Name:       "Ghost Team",
		CategoryID: memory.CategoryIDU17,
		SeasonID:   memory.SeasonIDCurrent,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLineupService_ListLineups_RequiresCategory(t *testing.T) {
	svc, _ := newTestLineupService()

	if _, err := svc.ListLineups(t.Context(), "  ", "", false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ListLineups(t.Context(), "cat-missing", "", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLineupService_FullRosterCaps(t *testing.T) {
	svc, _ := newTestLineupService()
	lineupID := seedCompleteLineup(t, svc)

	// Fill the remaining field-player slots with synthetic members.
	extra := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		extra = append(extra, fmt.Sprintf("mem-extra-%02d", i))
	}
	svc.memberRepo = memory.NewMemberRepository(append(memory.SeedMembers(), extraMembers(extra)...))

	for i, memberID := range extra {
		mustAddPlayer(t, svc, lineupID, memberID, roster.PositionFieldPlayer, 20+i, false)
	}

	jersey := 40
	result, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID:     lineupID,
		MemberID:     "mem-u17-fp-01",
		Position:     string(roster.PositionFieldPlayer),
		JerseyNumber: &jersey,
	})
	if err != nil {
		t.Fatalf("add player returned error: %v", err)
	}
	if result.Applied || result.Errors[0].Rule != roster.RuleFieldPlayerCap {
		t.Fatalf("expected field player cap violation, got %+v", result)
	}
}

func TestLineupService_AddPlayer_StaleSnapshotLosesRace(t *testing.T) {
	inner := memory.NewLineupRepository(memory.SeedLineups())
	svc := NewLineupService(
		cacherepo.NewLineupRepository(inner, cache.NewStore(time.Minute)),
		memory.NewCategoryRepository(memory.SeedCategories()),
		memory.NewSeasonRepository(memory.SeedSeasons()),
		memory.NewMemberRepository(memory.SeedMembers()),
		logging.NewNop(),
	)

	lineupID := memory.LineupIDU15First
	mustAddPlayer(t, svc, lineupID, "mem-u15-gk-01", roster.PositionGoalkeeper, 1, false)

	// Warm the cached player list so the next validation reads it.
	if _, _, err := svc.GetSummary(t.Context(), lineupID); err != nil {
		t.Fatalf("get summary failed: %v", err)
	}

	// A second goalkeeper lands directly on the store, so the cached
	// snapshot still shows one.
	second := 12
	if _, err := inner.AddPlayer(t.Context(), roster.Player{
		ID:           "player-shadow-gk",
		LineupID:     lineupID,
		MemberID:     "mem-u15-gk-02",
		Position:     roster.PositionGoalkeeper,
		JerseyNumber: &second,
		IsActive:     true,
		AddedBy:      "coach-2",
	}); err != nil {
		t.Fatalf("direct add failed: %v", err)
	}

	// Validation on the stale snapshot admits a third goalkeeper; the
	// repository's write-time re-check has to block it and report the
	// exact violation, counts included.
	third := 13
	result, err := svc.AddPlayer(t.Context(), AddPlayerInput{
		LineupID:     lineupID,
		MemberID:     "mem-u17-gk-01",
		Position:     string(roster.PositionGoalkeeper),
		JerseyNumber: &third,
	})
	if err != nil {
		t.Fatalf("add player returned error: %v", err)
	}
	if result.Applied {
		t.Fatal("expected the write-time re-check to block the third goalkeeper")
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected a blocking violation")
	}
	violation := result.Errors[0]
	if violation.Rule != roster.RuleGoalkeeperCap {
		t.Fatalf("violation rule = %q, want %q", violation.Rule, roster.RuleGoalkeeperCap)
	}
	if violation.Current != 2 || violation.Limit != 2 {
		t.Fatalf("violation counts = %d/%d, want 2/2", violation.Current, violation.Limit)
	}
}

func categoryUpdateActive(active *bool) category.Update {
	return category.Update{IsActive: active}
}

func extraMembers(ids []string) []member.Member {
	out := make([]member.Member, 0, len(ids))
	for i, id := range ids {
		out = append(out, member.Member{
			ID:                 id,
			Name:               "Extra",
			Surname:            fmt.Sprintf("Player%02d", i),
			RegistrationNumber: fmt.Sprintf("R-E%02d", i),
			CategoryID:         memory.CategoryIDU15,
			Sex:                "m",
		})
	}
	return out
}
