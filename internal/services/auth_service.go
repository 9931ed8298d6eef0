package services

import (
	"errors"

	"pinjamdesa/internal/authz"
	"pinjamdesa/internal/domain"
	"pinjamdesa/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Members *repos.MemberRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.Member, error) {
	m, err := s.Members.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Members.BindSession(sid, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// Register creates a MEMBER account. Role escalation only happens
// through admin member management.
func (s *AuthService) Register(name, email, password string) (*domain.Member, error) {
	if _, err := s.Members.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	m := domain.Member{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Hash:  string(hash),
		Role:  authz.RoleMember,
	}
	if err := s.Members.Create(m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Members.UnbindSession(sid)
}

func (s *AuthService) CurrentMember(sid string) (*domain.Member, error) {
	return s.Members.SessionMember(sid)
}
