package repos

import (
	"pinjamdesa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LoanRepo struct{ db *sqlx.DB }

func NewLoanRepo(db *sqlx.DB) *LoanRepo { return &LoanRepo{db: db} }

// Row used by the loan pages (joins item and member names).
type LoanRow struct {
	ID         string            `db:"id"`
	ItemID     string            `db:"item_id"`
	ItemName   string            `db:"item_name"`
	MemberID   string            `db:"member_id"`
	MemberName string            `db:"member_name"`
	Qty        int               `db:"qty"`
	Status     domain.LoanStatus `db:"status"`
	CreatedAt  string            `db:"created_at"`
}

// Row used by the availability dashboard.
type AvailabilityRow struct {
	domain.Item
	Available int `db:"available"`
}

// OutstandingQty sums the quantities committed to outstanding loans of
// one item.
func (r *LoanRepo) OutstandingQty(itemID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COALESCE(SUM(qty),0) FROM loans
	  WHERE item_id = ? AND status = 'OUTSTANDING'
	`, itemID)
	return n, err
}

// Availability lists every item with its derived available count
// (total stock minus outstanding loan quantities). Never stored.
func (r *LoanRepo) Availability() ([]AvailabilityRow, error) {
	var rows []AvailabilityRow
	err := r.db.Select(&rows, `
	  SELECT i.id, i.name, i.category, i.total_stock, COALESCE(i.photo,'') AS photo,
	         i.created_at, COALESCE(i.updated_at,'') AS updated_at,
	         i.total_stock - COALESCE(l.out_qty, 0) AS available
	  FROM items i
	  LEFT JOIN (
	    SELECT item_id, SUM(qty) AS out_qty
	    FROM loans
	    WHERE status = 'OUTSTANDING'
	    GROUP BY item_id
	  ) l ON l.item_id = i.id
	  ORDER BY i.name
	`)
	return rows, err
}

// CreateReserved inserts the loan only if the item still has enough
// available stock. Check and insert are one statement, so two
// concurrent creates cannot both read the same availability and both
// succeed. Returns the number of rows inserted (0 = insufficient).
func (r *LoanRepo) CreateReserved(loanID, itemID, memberID string, qty int) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO loans(id, item_id, member_id, qty, status, created_at)
	  SELECT ?, ?, ?, ?, 'OUTSTANDING', CURRENT_TIMESTAMP
	  WHERE (SELECT total_stock FROM items WHERE id = ?)
	        - COALESCE((SELECT SUM(qty) FROM loans WHERE item_id = ? AND status = 'OUTSTANDING'), 0)
	        >= ?
	`, loanID, itemID, memberID, qty, itemID, itemID, qty)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *LoanRepo) Get(id string) (domain.Loan, error) {
	var l domain.Loan
	err := r.db.Get(&l, `
	  SELECT id, item_id, member_id, qty, status, created_at
	  FROM loans
	  WHERE id = ?
	`, id)
	return l, err
}

func (r *LoanRepo) List() ([]LoanRow, error) {
	var out []LoanRow
	err := r.db.Select(&out, `
	  SELECT l.id, l.item_id, i.name AS item_name, l.member_id, m.name AS member_name,
	         l.qty, l.status, l.created_at
	  FROM loans l
	  JOIN items i   ON i.id = l.item_id
	  JOIN members m ON m.id = l.member_id
	  ORDER BY datetime(l.created_at) DESC
	`)
	return out, err
}

func (r *LoanRepo) ListByMember(memberID string) ([]LoanRow, error) {
	var out []LoanRow
	err := r.db.Select(&out, `
	  SELECT l.id, l.item_id, i.name AS item_name, l.member_id, m.name AS member_name,
	         l.qty, l.status, l.created_at
	  FROM loans l
	  JOIN items i   ON i.id = l.item_id
	  JOIN members m ON m.id = l.member_id
	  WHERE l.member_id = ?
	  ORDER BY datetime(l.created_at) DESC
	`, memberID)
	return out, err
}

// SetReturned flips OUTSTANDING -> RETURNED and writes the return
// record in the same transaction. Reports false when the loan was not
// outstanding (already returned), in which case nothing is written.
func (r *LoanRepo) SetReturned(loanID, returnID string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE loans SET status='RETURNED' WHERE id=? AND status='OUTSTANDING'`, loanID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
	  INSERT INTO returns(id, item_id, member_id, loan_id, created_at)
	  SELECT ?, item_id, member_id, id, CURRENT_TIMESTAMP
	  FROM loans WHERE id = ?
	`, returnID, loanID); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// SetOutstanding reverts RETURNED -> OUTSTANDING and deletes the
// loan's own return record (matched by loan_id) in the same
// transaction. Reports false when the loan was already outstanding.
func (r *LoanRepo) SetOutstanding(loanID string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE loans SET status='OUTSTANDING' WHERE id=? AND status='RETURNED'`, loanID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`DELETE FROM returns WHERE loan_id=?`, loanID); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// DeleteCascade removes the loan and its return record (if any) in one
// transaction.
func (r *LoanRepo) DeleteCascade(loanID string) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM returns WHERE loan_id=?`, loanID); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM loans WHERE id=?`, loanID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
