package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubkit/roster-service/internal/domain/roster"
	qb "github.com/clubkit/roster-service/internal/platform/querybuilder"
)

// LineupRepository persists lineups with their members and coaches. Every
// roster write locks the lineup row and re-runs the composition rules inside
// the transaction, so two concurrent writers cannot together exceed a cap or
// duplicate a jersey. Partial unique indexes in the schema back this up.
type LineupRepository struct {
	db    *sqlx.DB
	rules roster.Rules
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db, rules: roster.DefaultRules()}
}

func (r *LineupRepository) ListLineups(ctx context.Context, categoryID, seasonID string, activeOnly bool) ([]roster.Lineup, error) {
	conditions := []qb.Condition{qb.Eq("category_id", categoryID)}
	if seasonID != "" {
		conditions = append(conditions, qb.Eq("season_id", seasonID))
	}
	if activeOnly {
		conditions = append(conditions, qb.Eq("is_active", true))
	}

	query, args, err := qb.Select("*").From("category_lineups").
		Where(conditions...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups: %w", storageErr(err))
	}

	out := make([]roster.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

func (r *LineupRepository) GetLineup(ctx context.Context, lineupID string) (roster.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("category_lineups").
		Where(qb.Eq("id", lineupID)).
		ToSQL()
	if err != nil {
		return roster.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Lineup{}, false, nil
		}
		return roster.Lineup{}, false, fmt.Errorf("get lineup: %w", storageErr(err))
	}

	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) CreateLineup(ctx context.Context, item roster.Lineup) (roster.Lineup, error) {
	insertModel := lineupInsertModel{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		SeasonID:    item.SeasonID,
		IsActive:    item.IsActive,
		CreatedBy:   item.CreatedBy,
	}

	query, args, err := qb.InsertModel("category_lineups", insertModel, "RETURNING *")
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("build insert lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return roster.Lineup{}, fmt.Errorf("insert lineup: %w", storageErr(err))
	}

	return lineupFromRow(row), nil
}

func (r *LineupRepository) UpdateLineup(ctx context.Context, lineupID string, update roster.LineupUpdate) (roster.Lineup, bool, error) {
	builder := qb.Update("category_lineups").SetExpr("updated_at", "NOW()")
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	query, args, err := builder.Where(qb.Eq("id", lineupID)).Suffix("RETURNING *").ToSQL()
	if err != nil {
		return roster.Lineup{}, false, fmt.Errorf("build update lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Lineup{}, false, nil
		}
		return roster.Lineup{}, false, fmt.Errorf("update lineup: %w", storageErr(err))
	}

	return lineupFromRow(row), true, nil
}

// DeleteLineup removes the lineup row; members and coaches go with it via
// the schema's ON DELETE CASCADE.
func (r *LineupRepository) DeleteLineup(ctx context.Context, lineupID string) (bool, error) {
	query, args, err := qb.DeleteFrom("category_lineups").
		Where(qb.Eq("id", lineupID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete lineup query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete lineup: %w", storageErr(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lineup rows affected: %w", storageErr(err))
	}
	return affected > 0, nil
}

func (r *LineupRepository) ListPlayers(ctx context.Context, lineupID string) ([]roster.Player, error) {
	return listPlayers(ctx, r.db, lineupID)
}

func (r *LineupRepository) AddPlayer(ctx context.Context, item roster.Player) (roster.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.Player{}, fmt.Errorf("begin tx for add player: %w", storageErr(err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockLineup(ctx, tx, item.LineupID); err != nil {
		return roster.Player{}, err
	}

	players, err := listPlayers(ctx, tx, item.LineupID)
	if err != nil {
		return roster.Player{}, err
	}

	check := roster.ValidateAddPlayer(players, item, r.rules)
	if !check.Allowed {
		return roster.Player{}, ruleSentinel(check.Errors)
	}

	insertModel := lineupPlayerTableModel{
		ID:            item.ID,
		LineupID:      item.LineupID,
		MemberID:      item.MemberID,
		Position:      string(item.Position),
		JerseyNumber:  item.JerseyNumber,
		IsCaptain:     item.IsCaptain,
		IsViceCaptain: item.IsViceCaptain,
		IsActive:      item.IsActive,
		AddedAt:       item.AddedAt,
		AddedBy:       item.AddedBy,
	}
	query, args, err := qb.InsertModel("category_lineup_members", insertModel, "")
	if err != nil {
		return roster.Player{}, fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return roster.Player{}, fmt.Errorf("insert player: %w", storageErr(err))
	}

	if err := tx.Commit(); err != nil {
		return roster.Player{}, fmt.Errorf("commit add player: %w", storageErr(err))
	}
	return item, nil
}

func (r *LineupRepository) UpdatePlayer(ctx context.Context, lineupID, memberID string, update roster.PlayerUpdate) (roster.Player, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.Player{}, false, fmt.Errorf("begin tx for update player: %w", storageErr(err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockLineup(ctx, tx, lineupID); err != nil {
		return roster.Player{}, false, err
	}

	players, err := listPlayers(ctx, tx, lineupID)
	if err != nil {
		return roster.Player{}, false, err
	}

	var current roster.Player
	found := false
	for _, p := range players {
		if p.MemberID == memberID {
			current = p
			found = true
			break
		}
	}
	if !found {
		return roster.Player{}, false, nil
	}

	updated := current
	if update.Position != nil {
		updated.Position = *update.Position
	}
	if update.ClearJersey {
		updated.JerseyNumber = nil
	} else if update.JerseyNumber != nil {
		updated.JerseyNumber = update.JerseyNumber
	}
	if update.IsCaptain != nil {
		updated.IsCaptain = *update.IsCaptain
	}
	if update.IsViceCaptain != nil {
		updated.IsViceCaptain = *update.IsViceCaptain
	}
	if update.IsActive != nil {
		updated.IsActive = *update.IsActive
	}

	check := roster.ValidateEditPlayer(players, memberID, updated, r.rules)
	if !check.Allowed {
		return roster.Player{}, false, ruleSentinel(check.Errors)
	}

	query, args, err := qb.Update("category_lineup_members").
		Set("position", string(updated.Position)).
		Set("jersey_number", nullableInt(updated.JerseyNumber)).
		Set("is_captain", updated.IsCaptain).
		Set("is_vice_captain", updated.IsViceCaptain).
		Set("is_active", updated.IsActive).
		Where(
			qb.Eq("lineup_id", lineupID),
			qb.Eq("member_id", memberID),
		).
		ToSQL()
	if err != nil {
		return roster.Player{}, false, fmt.Errorf("build update player query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return roster.Player{}, false, fmt.Errorf("update player: %w", storageErr(err))
	}

	if err := tx.Commit(); err != nil {
		return roster.Player{}, false, fmt.Errorf("commit update player: %w", storageErr(err))
	}
	return updated, true, nil
}

func (r *LineupRepository) RemovePlayer(ctx context.Context, lineupID, memberID string) (bool, error) {
	query, args, err := qb.DeleteFrom("category_lineup_members").
		Where(
			qb.Eq("lineup_id", lineupID),
			qb.Eq("member_id", memberID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build remove player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("remove player: %w", storageErr(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove player rows affected: %w", storageErr(err))
	}
	return affected > 0, nil
}

func (r *LineupRepository) ListCoaches(ctx context.Context, lineupID string) ([]roster.Coach, error) {
	return listCoaches(ctx, r.db, lineupID)
}

func (r *LineupRepository) AddCoach(ctx context.Context, item roster.Coach) (roster.Coach, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return roster.Coach{}, fmt.Errorf("begin tx for add coach: %w", storageErr(err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := lockLineup(ctx, tx, item.LineupID); err != nil {
		return roster.Coach{}, err
	}

	coaches, err := listCoaches(ctx, tx, item.LineupID)
	if err != nil {
		return roster.Coach{}, err
	}

	check := roster.ValidateAddCoach(coaches, item, r.rules)
	if !check.Allowed {
		return roster.Coach{}, ruleSentinel(check.Errors)
	}

	insertModel := lineupCoachTableModel{
		ID:       item.ID,
		LineupID: item.LineupID,
		MemberID: item.MemberID,
		Role:     string(item.Role),
		AddedAt:  item.AddedAt,
		AddedBy:  item.AddedBy,
	}
	query, args, err := qb.InsertModel("category_lineup_coaches", insertModel, "")
	if err != nil {
		return roster.Coach{}, fmt.Errorf("build insert coach query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return roster.Coach{}, fmt.Errorf("insert coach: %w", storageErr(err))
	}

	if err := tx.Commit(); err != nil {
		return roster.Coach{}, fmt.Errorf("commit add coach: %w", storageErr(err))
	}
	return item, nil
}

func (r *LineupRepository) UpdateCoach(ctx context.Context, lineupID, memberID string, update roster.CoachUpdate) (roster.Coach, bool, error) {
	if update.Role == nil {
		// Nothing to change; report the current row.
		coaches, err := listCoaches(ctx, r.db, lineupID)
		if err != nil {
			return roster.Coach{}, false, err
		}
		for _, c := range coaches {
			if c.MemberID == memberID {
				return c, true, nil
			}
		}
		return roster.Coach{}, false, nil
	}

	query, args, err := qb.Update("category_lineup_coaches").
		Set("role", string(*update.Role)).
		Where(
			qb.Eq("lineup_id", lineupID),
			qb.Eq("member_id", memberID),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return roster.Coach{}, false, fmt.Errorf("build update coach query: %w", err)
	}

	var row lineupCoachTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Coach{}, false, nil
		}
		return roster.Coach{}, false, fmt.Errorf("update coach: %w", storageErr(err))
	}

	return coachFromRow(row), true, nil
}

func (r *LineupRepository) RemoveCoach(ctx context.Context, lineupID, memberID string) (bool, error) {
	query, args, err := qb.DeleteFrom("category_lineup_coaches").
		Where(
			qb.Eq("lineup_id", lineupID),
			qb.Eq("member_id", memberID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build remove coach query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("remove coach: %w", storageErr(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove coach rows affected: %w", storageErr(err))
	}
	return affected > 0, nil
}

// lockLineup takes a row lock on the lineup for the duration of the
// transaction, serializing concurrent roster writes against it.
func lockLineup(ctx context.Context, tx *sqlx.Tx, lineupID string) error {
	var id string
	if err := tx.GetContext(ctx, &id, "SELECT id FROM category_lineups WHERE id = $1 FOR UPDATE", lineupID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("lineup %s does not exist", lineupID)
		}
		return fmt.Errorf("lock lineup: %w", storageErr(err))
	}
	return nil
}

func listPlayers(ctx context.Context, q sqlx.QueryerContext, lineupID string) ([]roster.Player, error) {
	query, args, err := qb.Select("*").From("category_lineup_members").
		Where(qb.Eq("lineup_id", lineupID)).
		OrderBy("added_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []lineupPlayerTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", storageErr(err))
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func listCoaches(ctx context.Context, q sqlx.QueryerContext, lineupID string) ([]roster.Coach, error) {
	query, args, err := qb.Select("*").From("category_lineup_coaches").
		Where(qb.Eq("lineup_id", lineupID)).
		OrderBy("added_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list coaches query: %w", err)
	}

	var rows []lineupCoachTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list coaches: %w", storageErr(err))
	}

	out := make([]roster.Coach, 0, len(rows))
	for _, row := range rows {
		out = append(out, coachFromRow(row))
	}
	return out, nil
}

// ruleSentinel keeps the blocking violations on the returned error so the
// caller can report the exact rule that lost the race, while errors.Is
// against the domain sentinels still works.
func ruleSentinel(violations []roster.Violation) error {
	return roster.NewRuleError(violations)
}
