package services

import (
	"database/sql"
	"errors"

	"pinjamdesa/internal/domain"
	"pinjamdesa/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrMemberNotFound = errors.New("member not found")

// MemberService covers admin member management. Registration lives in
// AuthService.
type MemberService struct {
	Members *repos.MemberRepo
}

func NewMemberService(members *repos.MemberRepo) *MemberService {
	return &MemberService{Members: members}
}

func (s *MemberService) Get(id string) (*domain.Member, error) {
	m, err := s.Members.ByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func (s *MemberService) List() ([]domain.Member, error) {
	return s.Members.List()
}

// Update edits name, email, and role; a non-empty password replaces
// the credential hash.
func (s *MemberService) Update(id, name, email, password, role string) error {
	cur, err := s.Members.ByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}

	hash := cur.Hash
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return err
		}
		hash = string(h)
	}

	n, err := s.Members.Update(domain.Member{
		ID:    id,
		Email: email,
		Name:  name,
		Hash:  hash,
		Role:  role,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete cascades to the member's loans, returns, and sessions.
func (s *MemberService) Delete(id string) error {
	n, err := s.Members.DeleteCascade(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	return nil
}
