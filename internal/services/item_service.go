package services

import (
	"database/sql"
	"errors"

	"pinjamdesa/internal/domain"
	"pinjamdesa/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrNameTaken    = errors.New("item name already in use")
)

type ItemService struct {
	Items *repos.ItemRepo
}

func NewItemService(items *repos.ItemRepo) *ItemService {
	return &ItemService{Items: items}
}

// Create adds an inventory item. Name uniqueness is checked here, at
// creation only; updates deliberately skip the re-check (matching the
// recorded behavior of the system this replaces).
func (s *ItemService) Create(name, category string, totalStock int, photo string) (domain.Item, error) {
	if _, err := s.Items.ByName(name); err == nil {
		return domain.Item{}, ErrNameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, err
	}

	it := domain.Item{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   category,
		TotalStock: totalStock,
		Photo:      photo,
	}
	if err := s.Items.Create(it); err != nil {
		return domain.Item{}, err
	}
	return s.Items.Get(it.ID)
}

func (s *ItemService) Get(id string) (domain.Item, error) {
	it, err := s.Items.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, ErrItemNotFound
	}
	return it, err
}

// Update replaces the item's mutable fields. When the photo changes,
// the previous filename is returned so the caller can clean up the
// media store (best effort, never blocking the record mutation).
func (s *ItemService) Update(id, name, category string, totalStock int, newPhoto string) (oldPhoto string, err error) {
	cur, err := s.Items.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrItemNotFound
		}
		return "", err
	}

	photo := cur.Photo
	if newPhoto != "" && newPhoto != cur.Photo {
		oldPhoto = cur.Photo
		photo = newPhoto
	}

	n, err := s.Items.Update(domain.Item{
		ID:         id,
		Name:       name,
		Category:   category,
		TotalStock: totalStock,
		Photo:      photo,
	})
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrItemNotFound
	}
	return oldPhoto, nil
}

// Delete cascades to the item's loans and their returns, then returns
// the photo filename for best-effort media cleanup.
func (s *ItemService) Delete(id string) (photo string, err error) {
	cur, err := s.Items.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrItemNotFound
		}
		return "", err
	}

	n, err := s.Items.DeleteCascade(id)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrItemNotFound
	}
	return cur.Photo, nil
}

func (s *ItemService) List() ([]domain.Item, error) {
	return s.Items.List()
}

func (s *ItemService) Search(q, category string) ([]domain.Item, error) {
	return s.Items.Search(q, category)
}
