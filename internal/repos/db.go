package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite database, ensures the schema and seeds baseline
// data. The returned handle is constructed once at startup and injected into
// every repository; callers own its shutdown.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single pooled connection also keeps
	// :memory: databases from splitting per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed dining tables, menu and staff if the DB is empty (idempotent;
	// safe to run every start)
	if err := seedTables(db); err != nil {
		return nil, err
	}
	if err := seedMenu(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Staff
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  roles TEXT NOT NULL DEFAULT 'waiter'
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

-- Menu
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  availability INTEGER NOT NULL DEFAULT 1,
  category TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  visibility INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Dining tables; id doubles as the table number on the floor
CREATE TABLE IF NOT EXISTS tables(
  id INTEGER PRIMARY KEY,
  status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available','occupied')),
  number_of_people INTEGER NOT NULL DEFAULT 0 CHECK (number_of_people >= 0)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  table_number INTEGER NOT NULL REFERENCES tables(id),
  waiter_id INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','in_progress','completed','cancelled')),
  -- flipped when the table session closes; archived orders are history and
  -- never part of a live table graph
  archived INTEGER NOT NULL DEFAULT 0 CHECK (archived IN (0,1)),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_table  ON orders(table_number, archived);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

CREATE TABLE IF NOT EXISTS order_items(
  order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  price_at_order NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

// seedTables creates the floor plan once: twelve tables, all free.
func seedTables(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM tables`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] creating dining tables 1-12")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	for i := 1; i <= 12; i++ {
		tx.MustExec(`INSERT INTO tables(id, status, number_of_people) VALUES(?, 'available', 0)`, i)
	}
	return tx.Commit()
}

func seedMenu(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo menu")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()
	tx.MustExec(`INSERT INTO products(name, price, availability, category, image_url, visibility) VALUES
	  ('Feijoada', 42.00, 1, 'mains', 'media/feijoada.jpg', 1),
	  ('Picanha na Chapa', 68.50, 1, 'mains', 'media/picanha.jpg', 1),
	  ('Pao de Queijo', 12.00, 1, 'starters', 'media/pao-de-queijo.jpg', 1),
	  ('Caipirinha', 18.00, 1, 'drinks', 'media/caipirinha.jpg', 1),
	  ('Guarana', 8.00, 1, 'drinks', 'media/guarana.jpg', 1),
	  ('Pudim', 14.00, 0, 'desserts', 'media/pudim.jpg', 1)`)
	return tx.Commit()
}

// seedUsers ensures one admin, one waiter and one cook exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		Username, Name, Roles, Raw string
	}
	users := []u{
		{"admin", "Admin", "admin", "Passw0rd!"},
		{"joao", "Joao", "waiter", "Passw0rd!"},
		{"maria", "Maria", "kitchen", "Passw0rd!"},
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		h, err := bcrypt.GenerateFromPassword([]byte(x.Raw), 12)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO users(username, name, password_hash, roles)
			VALUES(?,?,?,?)
			ON CONFLICT(username) DO NOTHING
		`, x.Username, x.Name, string(h), x.Roles); err != nil {
			return err
		}
	}

	return tx.Commit()
}
