package roster

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func basePlayers() []Player {
	return []Player{
		{ID: "lp-1", LineupID: "l1", MemberID: "m-gk-1", Position: PositionGoalkeeper, JerseyNumber: intPtr(1), IsActive: true},
		{ID: "lp-2", LineupID: "l1", MemberID: "m-fp-1", Position: PositionFieldPlayer, JerseyNumber: intPtr(2), IsActive: true, IsCaptain: true},
		{ID: "lp-3", LineupID: "l1", MemberID: "m-fp-2", Position: PositionFieldPlayer, JerseyNumber: intPtr(3), IsActive: true},
		{ID: "lp-4", LineupID: "l1", MemberID: "m-fp-3", Position: PositionFieldPlayer, IsActive: true},
	}
}

func TestValidateAddPlayer(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name         string
		players      func() []Player
		candidate    Player
		wantAllowed  bool
		wantRule     string
		wantWarnings bool
	}{
		{
			name:         "field player with free jersey",
			players:      basePlayers,
			candidate:    Player{LineupID: "l1", MemberID: "m-fp-4", Position: PositionFieldPlayer, JerseyNumber: intPtr(7), IsActive: true},
			wantAllowed:  true,
			wantWarnings: true,
		},
		{
			name: "third goalkeeper blocked",
			players: func() []Player {
				players := basePlayers()
				return append(players, Player{ID: "lp-5", LineupID: "l1", MemberID: "m-gk-2", Position: PositionGoalkeeper, IsActive: true})
			},
			candidate:   Player{LineupID: "l1", MemberID: "m-gk-3", Position: PositionGoalkeeper, IsActive: true},
			wantAllowed: false,
			wantRule:    RuleGoalkeeperCap,
		},
		{
			name: "fourteenth field player blocked",
			players: func() []Player {
				players := []Player{{LineupID: "l1", MemberID: "m-gk-1", Position: PositionGoalkeeper, IsActive: true}}
				for i := 0; i < 13; i++ {
					players = append(players, Player{LineupID: "l1", MemberID: fp(i), Position: PositionFieldPlayer, IsActive: true})
				}
				return players
			},
			candidate:   Player{LineupID: "l1", MemberID: "m-fp-extra", Position: PositionFieldPlayer, IsActive: true},
			wantAllowed: false,
			wantRule:    RuleFieldPlayerCap,
		},
		{
			name:        "duplicate jersey blocked",
			players:     basePlayers,
			candidate:   Player{LineupID: "l1", MemberID: "m-fp-5", Position: PositionFieldPlayer, JerseyNumber: intPtr(2), IsActive: true},
			wantAllowed: false,
			wantRule:    RuleDuplicateJersey,
		},
		{
			name:         "no jersey skips collision check",
			players:      basePlayers,
			candidate:    Player{LineupID: "l1", MemberID: "m-fp-5", Position: PositionFieldPlayer, IsActive: true},
			wantAllowed:  true,
			wantWarnings: true,
		},
		{
			name:        "second captain blocked",
			players:     basePlayers,
			candidate:   Player{LineupID: "l1", MemberID: "m-fp-5", Position: PositionFieldPlayer, IsCaptain: true, IsActive: true},
			wantAllowed: false,
			wantRule:    RuleDuplicateCaptain,
		},
		{
			name:        "same member twice blocked",
			players:     basePlayers,
			candidate:   Player{LineupID: "l1", MemberID: "m-fp-1", Position: PositionFieldPlayer, IsActive: true},
			wantAllowed: false,
			wantRule:    RuleDuplicateMember,
		},
		{
			name:        "unknown position blocked",
			players:     basePlayers,
			candidate:   Player{LineupID: "l1", MemberID: "m-fp-5", Position: Position("libero"), IsActive: true},
			wantAllowed: false,
			wantRule:    RuleUnknownPosition,
		},
		{
			name: "jersey held by inactive member is free",
			players: func() []Player {
				players := basePlayers()
				players[2].IsActive = false
				return players
			},
			candidate:    Player{LineupID: "l1", MemberID: "m-fp-5", Position: PositionFieldPlayer, JerseyNumber: intPtr(3), IsActive: true},
			wantAllowed:  true,
			wantWarnings: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAddPlayer(tt.players(), tt.candidate, rules)
			if result.Allowed != tt.wantAllowed {
				t.Fatalf("allowed=%t, want %t (errors=%v)", result.Allowed, tt.wantAllowed, result.Errors)
			}
			if tt.wantRule != "" {
				if !hasRule(result.Errors, tt.wantRule) {
					t.Fatalf("expected error rule %s, got %v", tt.wantRule, result.Errors)
				}
			}
			if tt.wantWarnings && len(result.Warnings) == 0 {
				t.Fatalf("expected incompleteness warnings, got none")
			}
		})
	}
}

func TestValidateAddPlayer_CapMessageCarriesCounts(t *testing.T) {
	players := []Player{
		{LineupID: "l1", MemberID: "m-gk-1", Position: PositionGoalkeeper, IsActive: true},
		{LineupID: "l1", MemberID: "m-gk-2", Position: PositionGoalkeeper, IsActive: true},
	}

	result := ValidateAddPlayer(players, Player{LineupID: "l1", MemberID: "m-gk-3", Position: PositionGoalkeeper, IsActive: true}, DefaultRules())
	if result.Allowed {
		t.Fatal("expected add to be blocked")
	}
	v := result.Errors[0]
	if v.Current != 2 || v.Limit != 2 {
		t.Fatalf("expected current=2 limit=2, got current=%d limit=%d", v.Current, v.Limit)
	}
}

func TestValidateEditPlayer(t *testing.T) {
	rules := DefaultRules()

	// Keeping your own jersey number across an edit is not a collision.
	result := ValidateEditPlayer(basePlayers(), "m-fp-1",
		Player{LineupID: "l1", MemberID: "m-fp-1", Position: PositionFieldPlayer, JerseyNumber: intPtr(2), IsCaptain: true, IsActive: true},
		rules,
	)
	if !result.Allowed {
		t.Fatalf("expected self-edit to be allowed, errors=%v", result.Errors)
	}

	// Taking someone else's number is.
	result = ValidateEditPlayer(basePlayers(), "m-fp-2",
		Player{LineupID: "l1", MemberID: "m-fp-2", Position: PositionFieldPlayer, JerseyNumber: intPtr(2), IsActive: true},
		rules,
	)
	if result.Allowed || !hasRule(result.Errors, RuleDuplicateJersey) {
		t.Fatalf("expected duplicate jersey block, got %+v", result)
	}

	result = ValidateEditPlayer(basePlayers(), "m-missing",
		Player{LineupID: "l1", MemberID: "m-missing", Position: PositionFieldPlayer, IsActive: true},
		rules,
	)
	if result.Allowed || !hasRule(result.Errors, RuleMemberNotInLineup) {
		t.Fatalf("expected member-not-in-lineup block, got %+v", result)
	}
}

func TestValidateRemovePlayer_WarnsBelowMinimum(t *testing.T) {
	result := ValidateRemovePlayer(basePlayers(), "m-gk-1", DefaultRules())
	if !result.Allowed {
		t.Fatal("removal must never be blocked")
	}
	if !hasRule(result.Warnings, RuleIncompleteLineup) {
		t.Fatalf("expected incomplete-lineup warning, got %v", result.Warnings)
	}
}

func TestValidateAddCoach(t *testing.T) {
	rules := DefaultRules()
	coaches := []Coach{
		{LineupID: "l1", MemberID: "m-c-1", Role: RoleHeadCoach},
		{LineupID: "l1", MemberID: "m-c-2", Role: RoleAssistantCoach},
	}

	result := ValidateAddCoach(coaches, Coach{LineupID: "l1", MemberID: "m-c-3", Role: RoleTeamManager}, rules)
	if !result.Allowed {
		t.Fatalf("expected third coach to be allowed, errors=%v", result.Errors)
	}

	full := append(coaches, Coach{LineupID: "l1", MemberID: "m-c-3", Role: RoleTeamManager})
	result = ValidateAddCoach(full, Coach{LineupID: "l1", MemberID: "m-c-4", Role: RoleAssistantCoach}, rules)
	if result.Allowed || !hasRule(result.Errors, RuleCoachCap) {
		t.Fatalf("expected coach cap block, got %+v", result)
	}

	result = ValidateAddCoach(coaches, Coach{LineupID: "l1", MemberID: "m-c-1", Role: RoleTeamManager}, rules)
	if result.Allowed || !hasRule(result.Errors, RuleDuplicateMember) {
		t.Fatalf("expected duplicate member block, got %+v", result)
	}

	result = ValidateAddCoach(coaches, Coach{LineupID: "l1", MemberID: "m-c-4", Role: CoachRole("kitman")}, rules)
	if result.Allowed || !hasRule(result.Errors, RuleUnknownCoachRole) {
		t.Fatalf("expected unknown coach role block, got %+v", result)
	}
}

func TestRuleError_MatchesSentinels(t *testing.T) {
	err := NewRuleError([]Violation{{
		Rule:    RuleGoalkeeperCap,
		Message: "cannot add goalkeeper: maximum of 2 already reached",
		Current: 2,
		Limit:   2,
	}})

	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatal("goalkeeper cap violation must match the capacity sentinel")
	}
	if errors.Is(err, ErrDuplicateJersey) {
		t.Fatal("goalkeeper cap violation must not match the jersey sentinel")
	}

	var ruleErr *RuleError
	if !errors.As(err, &ruleErr) {
		t.Fatal("expected RuleError to be recoverable with errors.As")
	}
	if ruleErr.Violations[0].Current != 2 || ruleErr.Violations[0].Limit != 2 {
		t.Fatalf("violation counts lost: %+v", ruleErr.Violations[0])
	}
}

func hasRule(violations []Violation, rule string) bool {
	for _, v := range violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

func fp(i int) string {
	return "m-fp-" + string(rune('a'+i))
}
