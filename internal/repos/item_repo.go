package repos

import (
	"strings"

	"pinjamdesa/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

func (r *ItemRepo) Create(it domain.Item) error {
	_, err := r.db.Exec(`
	  INSERT INTO items(id,name,category,total_stock,photo,created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	`, it.ID, it.Name, it.Category, it.TotalStock, it.Photo)
	return err
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `
	  SELECT id, name, category, total_stock, COALESCE(photo,'') AS photo,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM items
	  WHERE id = ?
	`, id)
	return it, err
}

// ByName does a case-insensitive name lookup; sql.ErrNoRows means the
// name is free. Used only at creation time.
func (r *ItemRepo) ByName(name string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `
	  SELECT id, name, category, total_stock, COALESCE(photo,'') AS photo,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM items
	  WHERE LOWER(name) = LOWER(?)
	`, name)
	return it, err
}

func (r *ItemRepo) List() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT id, name, category, total_stock, COALESCE(photo,'') AS photo,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM items
	  ORDER BY name
	`)
	return out, err
}

func (r *ItemRepo) Search(q, category string) ([]domain.Item, error) {
	where := `1=1`
	args := []any{}
	if q != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(q)+"%")
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT id, name, category, total_stock, COALESCE(photo,'') AS photo,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM items
	  WHERE `+where+`
	  ORDER BY name
	`, args...)
	return out, err
}

func (r *ItemRepo) Update(it domain.Item) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE items
	  SET name = ?, category = ?, total_stock = ?, photo = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, it.Name, it.Category, it.TotalStock, it.Photo, it.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteCascade removes the item and everything that exists only in
// reference to it, as ordered deletes in one transaction:
// returns -> loans -> item.
func (r *ItemRepo) DeleteCascade(id string) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM returns WHERE item_id = ?`, id); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM loans WHERE item_id = ?`, id); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
