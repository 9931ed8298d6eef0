package domain

type Member struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"` // ADMIN | MEMBER
}

func (m *Member) IsAdmin() bool { return m.Role == "ADMIN" }
