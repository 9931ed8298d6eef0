package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo inventory if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure accounts exist (idempotent; safe to run every start)
	if err := seedMembers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Members
CREATE TABLE IF NOT EXISTS members(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('MEMBER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_members_email ON members(LOWER(email));

-- Items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  total_stock INTEGER NOT NULL CHECK (total_stock >= 0),
  photo TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_name     ON items(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);

-- Loans
CREATE TABLE IF NOT EXISTS loans(
  id TEXT PRIMARY KEY,
  item_id   TEXT NOT NULL REFERENCES items(id),
  member_id TEXT NOT NULL REFERENCES members(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  status TEXT NOT NULL DEFAULT 'OUTSTANDING' CHECK (status IN ('OUTSTANDING','RETURNED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_loans_item   ON loans(item_id);
CREATE INDEX IF NOT EXISTS idx_loans_member ON loans(member_id);
CREATE INDEX IF NOT EXISTS idx_loans_status ON loans(item_id, status);

-- Returns (at most one per loan)
CREATE TABLE IF NOT EXISTS returns(
  id TEXT PRIMARY KEY,
  item_id   TEXT NOT NULL REFERENCES items(id),
  member_id TEXT NOT NULL REFERENCES members(id),
  loan_id   TEXT NOT NULL UNIQUE REFERENCES loans(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_returns_item   ON returns(item_id);
CREATE INDEX IF NOT EXISTS idx_returns_member ON returns(member_id);

-- Sessions
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  member_id TEXT NULL REFERENCES members(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_member ON sessions(member_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM items`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo items")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO items(id,name,category,total_stock,photo) VALUES
	  ('item-tenda','Tenda Terpal 4x6','Perlengkapan Acara',4,''),
	  ('item-kursi','Kursi Lipat','Perlengkapan Acara',120,''),
	  ('item-sound','Sound System Portabel','Elektronik',2,''),
	  ('item-cangkul','Cangkul','Alat Tani',15,'')`)

	return tx.Commit()
}

// seedMembers ensures one ADMIN and two MEMBER accounts exist (idempotent).
func seedMembers(db *sqlx.DB) error {
	type m struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) m {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return m{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	members := []m{
		mk("m-admin", "admin@pinjamdesa.test", "Admin Desa", "ADMIN", "Passw0rd!"),
		mk("m-sari", "sari@pinjamdesa.test", "Sari", "MEMBER", "Passw0rd!"),
		mk("m-budi", "budi@pinjamdesa.test", "Budi", "MEMBER", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range members {
		if _, err := tx.Exec(`
			INSERT INTO members(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
