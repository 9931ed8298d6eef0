package domain

// LoanStatus is the two-state lifecycle of a loan. Form input is parsed
// into this enum once at the boundary (see validate.Status).
type LoanStatus string

const (
	StatusOutstanding LoanStatus = "OUTSTANDING"
	StatusReturned    LoanStatus = "RETURNED"
)

type Item struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Category   string `db:"category"`
	TotalStock int    `db:"total_stock"`
	Photo      string `db:"photo"` // media store filename, may be empty
	CreatedAt  string `db:"created_at"`
	UpdatedAt  string `db:"updated_at"`
}

type Loan struct {
	ID        string     `db:"id"`
	ItemID    string     `db:"item_id"`
	MemberID  string     `db:"member_id"`
	Qty       int        `db:"qty"`
	Status    LoanStatus `db:"status"`
	CreatedAt string     `db:"created_at"` // server-assigned, immutable
}

type Return struct {
	ID        string `db:"id"`
	ItemID    string `db:"item_id"`
	MemberID  string `db:"member_id"`
	LoanID    string `db:"loan_id"`
	CreatedAt string `db:"created_at"`
}
