package repos

import (
	"pinjamdesa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type MemberRepo struct{ DB *sqlx.DB }

func NewMemberRepo(db *sqlx.DB) *MemberRepo { return &MemberRepo{DB: db} }

func (r *MemberRepo) ByEmail(email string) (*domain.Member, error) {
	var m domain.Member
	err := r.DB.Get(&m, `SELECT id,email,name,password_hash,role FROM members WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepo) ByID(id string) (*domain.Member, error) {
	var m domain.Member
	err := r.DB.Get(&m, `SELECT id,email,name,password_hash,role FROM members WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepo) List() ([]domain.Member, error) {
	var out []domain.Member
	err := r.DB.Select(&out, `SELECT id,email,name,password_hash,role FROM members ORDER BY email`)
	return out, err
}

func (r *MemberRepo) Create(m domain.Member) error {
	_, err := r.DB.Exec(`
	  INSERT INTO members(id,email,name,password_hash,role,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	`, m.ID, m.Email, m.Name, m.Hash, m.Role)
	return err
}

func (r *MemberRepo) Update(m domain.Member) (int64, error) {
	res, err := r.DB.Exec(`
	  UPDATE members
	  SET email = ?, name = ?, password_hash = ?, role = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, m.Email, m.Name, m.Hash, m.Role, m.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *MemberRepo) BindSession(sid, memberID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,member_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET member_id=excluded.member_id,last_seen=CURRENT_TIMESTAMP`, sid, memberID)
	return err
}

func (r *MemberRepo) SessionMember(sid string) (*domain.Member, error) {
	var m domain.Member
	err := r.DB.Get(&m, `
      SELECT m.id,m.email,m.name,m.password_hash,m.role
      FROM sessions s
      JOIN members m ON m.id=s.member_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET member_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// DeleteCascade removes the member together with everything owned by
// them, as ordered deletes in one transaction:
// returns -> loans -> sessions -> member.
func (r *MemberRepo) DeleteCascade(memberID string) (int64, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM returns WHERE member_id=?`, memberID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM loans WHERE member_id=?`, memberID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE member_id=?`, memberID); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM members WHERE id=?`, memberID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
