package services

import (
	"database/sql"
	"errors"

	"pinjamdesa/internal/repos"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("not enough available stock")
)

// StockService is the stock ledger: availability is always derived
// from outstanding loans, never kept as a mutable counter, so it is
// correct by construction whenever loan status is correct.
type StockService struct {
	Items *repos.ItemRepo
	Loans *repos.LoanRepo
}

func NewStockService(items *repos.ItemRepo, loans *repos.LoanRepo) *StockService {
	return &StockService{Items: items, Loans: loans}
}

// Available returns total stock minus the quantities of all
// outstanding loans for the item. The result can be negative after an
// admin lowers total stock under open loans; only this derived read is
// exposed to that.
func (s *StockService) Available(itemID string) (int, error) {
	it, err := s.Items.Get(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrItemNotFound
		}
		return 0, err
	}
	out, err := s.Loans.OutstandingQty(itemID)
	if err != nil {
		return 0, err
	}
	return it.TotalStock - out, nil
}

// ListAvailability supports the dashboard view: every item with its
// available count.
func (s *StockService) ListAvailability() ([]repos.AvailabilityRow, error) {
	return s.Loans.Availability()
}
