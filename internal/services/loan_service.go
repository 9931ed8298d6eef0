package services

import (
	"database/sql"
	"errors"

	"pinjamdesa/internal/domain"
	"pinjamdesa/internal/metrics"
	"pinjamdesa/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrLoanNotFound    = errors.New("loan not found")
	ErrAlreadyReturned = errors.New("loan already returned")
)

// LoanService drives the loan state machine (OUTSTANDING <-> RETURNED)
// and the automatic return bookkeeping: a return record exists exactly
// when its loan is RETURNED.
type LoanService struct {
	Loans   *repos.LoanRepo
	Items   *repos.ItemRepo
	Members *repos.MemberRepo
}

func NewLoanService(loans *repos.LoanRepo, items *repos.ItemRepo, members *repos.MemberRepo) *LoanService {
	return &LoanService{Loans: loans, Items: items, Members: members}
}

// Create validates and persists a new outstanding loan. The
// availability check and the insert are a single guarded statement in
// the repo, so a concurrent create cannot over-allocate stock; a
// failed create leaves no loan row behind.
func (s *LoanService) Create(itemID, memberID string, qty int) (domain.Loan, error) {
	if qty <= 0 {
		return domain.Loan{}, ErrInvalidQuantity
	}
	if _, err := s.Items.Get(itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, ErrItemNotFound
		}
		return domain.Loan{}, err
	}
	if _, err := s.Members.ByID(memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, ErrMemberNotFound
		}
		return domain.Loan{}, err
	}

	loanID := uuid.NewString()
	n, err := s.Loans.CreateReserved(loanID, itemID, memberID, qty)
	if err != nil {
		return domain.Loan{}, err
	}
	if n == 0 {
		metrics.IncStockRejected()
		return domain.Loan{}, ErrInsufficientStock
	}

	metrics.IncLoanCreated()
	return s.Loans.Get(loanID)
}

// SetStatus moves the loan to the requested state.
//
//   - to RETURNED: writes exactly one return record; a second call is
//     rejected with ErrAlreadyReturned rather than silently ignored.
//   - to OUTSTANDING: deletes the loan's own return record. The revert
//     is allowed unconditionally; the original reservation was already
//     validated at creation, and availability is only a derived read.
//     Reverting a loan that is already outstanding is a no-op.
func (s *LoanService) SetStatus(loanID string, status domain.LoanStatus) (domain.Loan, error) {
	if _, err := s.Loans.Get(loanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, ErrLoanNotFound
		}
		return domain.Loan{}, err
	}

	switch status {
	case domain.StatusReturned:
		changed, err := s.Loans.SetReturned(loanID, uuid.NewString())
		if err != nil {
			return domain.Loan{}, err
		}
		if !changed {
			return domain.Loan{}, ErrAlreadyReturned
		}
		metrics.IncReturnRecorded()
	case domain.StatusOutstanding:
		if _, err := s.Loans.SetOutstanding(loanID); err != nil {
			return domain.Loan{}, err
		}
	}

	return s.Loans.Get(loanID)
}

// Delete removes the loan and its return record, if any.
func (s *LoanService) Delete(loanID string) error {
	n, err := s.Loans.DeleteCascade(loanID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLoanNotFound
	}
	return nil
}

func (s *LoanService) List() ([]repos.LoanRow, error) {
	return s.Loans.List()
}

func (s *LoanService) ListByMember(memberID string) ([]repos.LoanRow, error) {
	return s.Loans.ListByMember(memberID)
}
