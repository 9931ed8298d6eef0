package repos

import (
	"pinjamdesa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReturnRepo struct{ db *sqlx.DB }

func NewReturnRepo(db *sqlx.DB) *ReturnRepo { return &ReturnRepo{db: db} }

// Row used by the returns page (joins item and member names).
type ReturnRow struct {
	ID         string `db:"id"`
	LoanID     string `db:"loan_id"`
	ItemName   string `db:"item_name"`
	MemberName string `db:"member_name"`
	Qty        int    `db:"qty"`
	CreatedAt  string `db:"created_at"`
}

func (r *ReturnRepo) ByLoan(loanID string) (domain.Return, error) {
	var ret domain.Return
	err := r.db.Get(&ret, `
	  SELECT id, item_id, member_id, loan_id, created_at
	  FROM returns
	  WHERE loan_id = ?
	`, loanID)
	return ret, err
}

func (r *ReturnRepo) List() ([]ReturnRow, error) {
	var out []ReturnRow
	err := r.db.Select(&out, `
	  SELECT rt.id, rt.loan_id, i.name AS item_name, m.name AS member_name,
	         l.qty, rt.created_at
	  FROM returns rt
	  JOIN loans l   ON l.id = rt.loan_id
	  JOIN items i   ON i.id = rt.item_id
	  JOIN members m ON m.id = rt.member_id
	  ORDER BY datetime(rt.created_at) DESC
	`)
	return out, err
}

func (r *ReturnRepo) CountByLoan(loanID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM returns WHERE loan_id = ?`, loanID)
	return n, err
}
