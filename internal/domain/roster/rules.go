package roster

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded  = errors.New("roster capacity exceeded")
	ErrDuplicateJersey   = errors.New("duplicate jersey number")
	ErrDuplicateCaptain  = errors.New("lineup already has a captain")
	ErrUnknownPosition   = errors.New("unknown player position")
	ErrUnknownCoachRole  = errors.New("unknown coach role")
	ErrDuplicateMember   = errors.New("member already assigned to lineup")
	ErrMemberNotInLineup = errors.New("member is not part of lineup")
)

// Rule codes carried on violations so callers can render rule-specific UI.
const (
	RuleGoalkeeperCap     = "GOALKEEPER_CAP"
	RuleFieldPlayerCap    = "FIELD_PLAYER_CAP"
	RuleCoachCap          = "COACH_CAP"
	RuleDuplicateJersey   = "DUPLICATE_JERSEY"
	RuleDuplicateCaptain  = "DUPLICATE_CAPTAIN"
	RuleDuplicateMember   = "DUPLICATE_MEMBER"
	RuleIncompleteLineup  = "INCOMPLETE_LINEUP"
	RuleUnknownPosition   = "UNKNOWN_POSITION"
	RuleUnknownCoachRole  = "UNKNOWN_COACH_ROLE"
	RuleMemberNotInLineup = "MEMBER_NOT_IN_LINEUP"
)

// RuleError is returned by repositories whose write-time re-check finds a
// change inadmissible that passed snapshot validation. It keeps the full
// violations so callers can report the exact rule and current vs limit
// counts, and matches the rule sentinels above through errors.Is.
type RuleError struct {
	Violations []Violation
}

func NewRuleError(violations []Violation) *RuleError {
	return &RuleError{Violations: violations}
}

func (e *RuleError) Error() string {
	if len(e.Violations) == 0 {
		return "roster rule violation"
	}
	return e.Violations[0].Message
}

func (e *RuleError) Is(target error) bool {
	for _, v := range e.Violations {
		if sentinelForRule(v.Rule) == target {
			return true
		}
	}
	return false
}

func sentinelForRule(rule string) error {
	switch rule {
	case RuleGoalkeeperCap, RuleFieldPlayerCap, RuleCoachCap:
		return ErrCapacityExceeded
	case RuleDuplicateJersey:
		return ErrDuplicateJersey
	case RuleDuplicateCaptain:
		return ErrDuplicateCaptain
	case RuleDuplicateMember:
		return ErrDuplicateMember
	case RuleUnknownPosition:
		return ErrUnknownPosition
	case RuleUnknownCoachRole:
		return ErrUnknownCoachRole
	case RuleMemberNotInLineup:
		return ErrMemberNotInLineup
	default:
		return nil
	}
}

// Rules stores roster composition bounds.
type Rules struct {
	MinGoalkeepers  int
	MaxGoalkeepers  int
	MinFieldPlayers int
	MaxFieldPlayers int
	MaxCoaches      int
}

func DefaultRules() Rules {
	return Rules{
		MinGoalkeepers:  1,
		MaxGoalkeepers:  2,
		MinFieldPlayers: 6,
		MaxFieldPlayers: 13,
		MaxCoaches:      3,
	}
}

// Violation describes one broken or unmet rule with the observed and allowed
// counts, so messages can show "current vs limit".
type Violation struct {
	Rule    string
	Message string
	Current int
	Limit   int
}

// Result is the outcome of validating a proposed roster change. Errors block
// the change; Warnings are advisory and never block.
type Result struct {
	Allowed  bool
	Errors   []Violation
	Warnings []Violation
}

func allowedResult(warnings []Violation) Result {
	return Result{Allowed: true, Warnings: warnings}
}

func blockedResult(errs []Violation, warnings []Violation) Result {
	return Result{Allowed: false, Errors: errs, Warnings: warnings}
}

// ValidateAddPlayer checks whether candidate may join the roster described by
// players. It is pure: neither slice is mutated.
func ValidateAddPlayer(players []Player, candidate Player, rules Rules) Result {
	var errs []Violation

	if _, ok := AllPositions[candidate.Position]; !ok {
		errs = append(errs, Violation{
			Rule:    RuleUnknownPosition,
			Message: fmt.Sprintf("unknown position %q", candidate.Position),
		})
		return blockedResult(errs, nil)
	}

	gk, fp := countActivePositions(players)

	switch candidate.Position {
	case PositionGoalkeeper:
		if gk >= rules.MaxGoalkeepers {
			errs = append(errs, Violation{
				Rule:    RuleGoalkeeperCap,
				Message: fmt.Sprintf("cannot add goalkeeper: maximum of %d already reached", rules.MaxGoalkeepers),
				Current: gk,
				Limit:   rules.MaxGoalkeepers,
			})
		}
	case PositionFieldPlayer:
		if fp >= rules.MaxFieldPlayers {
			errs = append(errs, Violation{
				Rule:    RuleFieldPlayerCap,
				Message: fmt.Sprintf("cannot add field player: maximum of %d already reached", rules.MaxFieldPlayers),
				Current: fp,
				Limit:   rules.MaxFieldPlayers,
			})
		}
	}

	for _, p := range players {
		if !p.IsActive {
			continue
		}
		if p.MemberID == candidate.MemberID {
			errs = append(errs, Violation{
				Rule:    RuleDuplicateMember,
				Message: fmt.Sprintf("member %s is already assigned to this lineup", candidate.MemberID),
			})
			break
		}
	}

	if v, ok := jerseyCollision(players, candidate); ok {
		errs = append(errs, v)
	}
	if v, ok := captainCollision(players, candidate); ok {
		errs = append(errs, v)
	}

	if len(errs) > 0 {
		return blockedResult(errs, CompletenessWarnings(players, rules))
	}

	proposed := append(append([]Player(nil), players...), candidate)
	return allowedResult(CompletenessWarnings(proposed, rules))
}

// ValidateEditPlayer treats an edit as remove-then-add: the member's current
// entry is excluded from the snapshot before the updated entry is proposed.
func ValidateEditPlayer(players []Player, memberID string, updated Player, rules Rules) Result {
	remaining := make([]Player, 0, len(players))
	found := false
	for _, p := range players {
		if p.MemberID == memberID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return blockedResult([]Violation{{
			Rule:    RuleMemberNotInLineup,
			Message: fmt.Sprintf("member %s is not part of this lineup", memberID),
		}}, nil)
	}

	return ValidateAddPlayer(remaining, updated, rules)
}

// ValidateRemovePlayer never blocks: removal cannot violate a maximum. The
// result carries warnings when the remaining roster falls below a minimum.
func ValidateRemovePlayer(players []Player, memberID string, rules Rules) Result {
	remaining := make([]Player, 0, len(players))
	for _, p := range players {
		if p.MemberID == memberID {
			continue
		}
		remaining = append(remaining, p)
	}

	return allowedResult(CompletenessWarnings(remaining, rules))
}

// ValidateAddCoach enforces the aggregate coach cap. Roles carry no individual
// multiplicity limits.
func ValidateAddCoach(coaches []Coach, candidate Coach, rules Rules) Result {
	var errs []Violation

	if _, ok := AllCoachRoles[candidate.Role]; !ok {
		errs = append(errs, Violation{
			Rule:    RuleUnknownCoachRole,
			Message: fmt.Sprintf("unknown coach role %q", candidate.Role),
		})
		return blockedResult(errs, nil)
	}

	if len(coaches) >= rules.MaxCoaches {
		errs = append(errs, Violation{
			Rule:    RuleCoachCap,
			Message: fmt.Sprintf("cannot add coach: maximum of %d already reached", rules.MaxCoaches),
			Current: len(coaches),
			Limit:   rules.MaxCoaches,
		})
	}
	for _, c := range coaches {
		if c.MemberID == candidate.MemberID {
			errs = append(errs, Violation{
				Rule:    RuleDuplicateMember,
				Message: fmt.Sprintf("member %s is already on the coaching staff", candidate.MemberID),
			})
			break
		}
	}

	if len(errs) > 0 {
		return blockedResult(errs, nil)
	}
	return allowedResult(nil)
}

// CompletenessWarnings reports below-minimum states. These never block a save;
// an incomplete roster may be persisted and finished later.
func CompletenessWarnings(players []Player, rules Rules) []Violation {
	gk, fp := countActivePositions(players)

	var warnings []Violation
	if gk < rules.MinGoalkeepers {
		warnings = append(warnings, Violation{
			Rule:    RuleIncompleteLineup,
			Message: fmt.Sprintf("roster incomplete: %d of %d goalkeepers assigned", gk, rules.MinGoalkeepers),
			Current: gk,
			Limit:   rules.MinGoalkeepers,
		})
	}
	if fp < rules.MinFieldPlayers {
		warnings = append(warnings, Violation{
			Rule:    RuleIncompleteLineup,
			Message: fmt.Sprintf("roster incomplete: %d of %d field players assigned", fp, rules.MinFieldPlayers),
			Current: fp,
			Limit:   rules.MinFieldPlayers,
		})
	}

	return warnings
}

func countActivePositions(players []Player) (goalkeepers, fieldPlayers int) {
	for _, p := range players {
		if !p.IsActive {
			continue
		}
		switch p.Position {
		case PositionGoalkeeper:
			goalkeepers++
		case PositionFieldPlayer:
			fieldPlayers++
		}
	}
	return goalkeepers, fieldPlayers
}

func jerseyCollision(players []Player, candidate Player) (Violation, bool) {
	if candidate.JerseyNumber == nil {
		return Violation{}, false
	}

	for _, p := range players {
		if !p.IsActive || p.JerseyNumber == nil {
			continue
		}
		if p.MemberID == candidate.MemberID {
			continue
		}
		if *p.JerseyNumber == *candidate.JerseyNumber {
			return Violation{
				Rule:    RuleDuplicateJersey,
				Message: fmt.Sprintf("jersey number %d is already taken by member %s", *candidate.JerseyNumber, p.MemberID),
				Current: *candidate.JerseyNumber,
			}, true
		}
	}

	return Violation{}, false
}

func captainCollision(players []Player, candidate Player) (Violation, bool) {
	if !candidate.IsCaptain {
		return Violation{}, false
	}

	for _, p := range players {
		if !p.IsActive || !p.IsCaptain {
			continue
		}
		if p.MemberID == candidate.MemberID {
			continue
		}
		return Violation{
			Rule:    RuleDuplicateCaptain,
			Message: fmt.Sprintf("member %s is already captain; clear the current captain first", p.MemberID),
			Current: 1,
			Limit:   1,
		}, true
	}

	return Violation{}, false
}
