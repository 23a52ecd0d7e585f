package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE CHECK (name IN ('beverage', 'fruit'))
);

CREATE TABLE IF NOT EXISTS recipients (
    id                INTEGER PRIMARY KEY,
    name              TEXT NOT NULL,
    kind              TEXT NOT NULL DEFAULT 'individual' CHECK (kind IN ('individual', 'organisation')),
    gender            TEXT,
    address           TEXT,
    phone             TEXT,
    email             TEXT,
    emergency_contact TEXT,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at        DATETIME
);

CREATE TABLE IF NOT EXISTS donations (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    type       TEXT NOT NULL CHECK (type IN ('emergency_food_aid', 'community_centre_collection')),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    category_id INTEGER NOT NULL REFERENCES categories(id),
    stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    photo       BLOB,
    photo_mime  TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_name_category
    ON items(name, category_id);

CREATE TABLE IF NOT EXISTS distributions (
    item_id        INTEGER NOT NULL REFERENCES items(id),
    recipient_id   INTEGER NOT NULL REFERENCES recipients(id),
    donation_id    INTEGER NOT NULL REFERENCES donations(id),
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    distributed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (item_id, recipient_id)
);
`

// seed holds idempotent seed rows applied after schema creation. Categories are
// the fixed food classification; the two donation drives mirror the ones the
// application ships with.
var seed = []string{
	`INSERT OR IGNORE INTO categories (id, name) VALUES (1, 'beverage'), (2, 'fruit')`,
	`INSERT OR IGNORE INTO donations (id, name, type) VALUES
	     (1, 'Emergency Food Aid', 'emergency_food_aid'),
	     (2, 'Community Centre Collection', 'community_centre_collection')`,
}

// EnsureSchema creates all tables and indexes if they don't already exist and
// applies the seed rows.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, s := range seed {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("applying seed %d: %w", i+1, err)
		}
	}

	return nil
}
