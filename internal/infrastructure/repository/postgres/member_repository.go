package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clubkit/roster-service/internal/domain/member"
	qb "github.com/clubkit/roster-service/internal/platform/querybuilder"
)

type memberTableModel struct {
	ID                 string `db:"id"`
	Name               string `db:"name"`
	Surname            string `db:"surname"`
	RegistrationNumber string `db:"registration_number"`
	CategoryID         string `db:"category_id"`
	Sex                string `db:"sex"`
}

// MemberRepository reads the member registry. The registry is owned by the
// member-management subsystem, so this repository is read-only.
type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetByID(ctx context.Context, memberID string) (member.Member, bool, error) {
	query, args, err := qb.Select("*").From("members").
		Where(qb.Eq("id", memberID)).
		ToSQL()
	if err != nil {
		return member.Member{}, false, fmt.Errorf("build get member by id query: %w", err)
	}

	var row memberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return member.Member{}, false, nil
		}
		return member.Member{}, false, fmt.Errorf("get member by id: %w", storageErr(err))
	}

	return memberFromRow(row), true, nil
}

func (r *MemberRepository) ListByCategory(ctx context.Context, categoryID string) ([]member.Member, error) {
	query, args, err := qb.Select("*").From("members").
		Where(qb.Eq("category_id", categoryID)).
		OrderBy("surname", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members by category query: %w", err)
	}

	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members by category: %w", storageErr(err))
	}

	out := make([]member.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromRow(row))
	}
	return out, nil
}

func memberFromRow(row memberTableModel) member.Member {
	return member.Member{
		ID:                 row.ID,
		Name:               row.Name,
		Surname:            row.Surname,
		RegistrationNumber: row.RegistrationNumber,
		CategoryID:         row.CategoryID,
		Sex:                row.Sex,
	}
}
