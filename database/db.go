package database

import (
	"database/sql"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// InitDB opens the sqlite database, applies the schema and returns the
// handle. The handle is passed to the handlers at construction so tests can
// substitute an in-memory database.
func InitDB() (*sql.DB, error) {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		if os.Getenv("FLY_APP_NAME") != "" {
			// We're running on Fly.io, use the mounted volume
			dbPath = "/data/aaponaloi.db"
		} else {
			// Local development
			dbPath = "./aaponaloi.db"
		}
	}

	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := CreateTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

// CreateTables applies the schema. The unique indexes on agreements,
// payments and coupons are the duplicate guard: a constraint violation on
// insert is reported to clients as a 409 instead of a separate
// read-before-insert check.
func CreateTables(db *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		photo TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(createUsersTable); err != nil {
		return err
	}

	createApartmentsTable := `
	CREATE TABLE IF NOT EXISTS apartments (
		id TEXT PRIMARY KEY,
		apartment_no TEXT UNIQUE NOT NULL,
		floor_no INTEGER NOT NULL DEFAULT 0,
		block_name TEXT NOT NULL DEFAULT '',
		rent REAL NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(createApartmentsTable); err != nil {
		return err
	}

	createAgreementsTable := `
	CREATE TABLE IF NOT EXISTS agreements (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		apartment_no TEXT NOT NULL,
		floor_no INTEGER NOT NULL DEFAULT 0,
		block_name TEXT NOT NULL DEFAULT '',
		rent REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		UNIQUE(email, apartment_no)
	);
	`
	if _, err := db.Exec(createAgreementsTable); err != nil {
		return err
	}

	createPaymentsTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		apartment_no TEXT NOT NULL,
		month TEXT NOT NULL,
		rent REAL NOT NULL DEFAULT 0,
		paid_at DATETIME NOT NULL,
		UNIQUE(email, apartment_no, month)
	);
	`
	if _, err := db.Exec(createPaymentsTable); err != nil {
		return err
	}

	// COLLATE NOCASE makes the code unique and retrievable case-insensitively
	createCouponsTable := `
	CREATE TABLE IF NOT EXISTS coupons (
		id TEXT PRIMARY KEY,
		code TEXT COLLATE NOCASE UNIQUE NOT NULL,
		discount REAL NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(createCouponsTable); err != nil {
		return err
	}

	createAnnouncementsTable := `
	CREATE TABLE IF NOT EXISTS announcements (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(createAnnouncementsTable); err != nil {
		return err
	}

	createAgreementEmailIndex := `
	CREATE INDEX IF NOT EXISTS idx_agreements_email ON agreements(email);
	`
	if _, err := db.Exec(createAgreementEmailIndex); err != nil {
		return err
	}

	createPaymentEmailIndex := `
	CREATE INDEX IF NOT EXISTS idx_payments_email ON payments(email);
	`
	if _, err := db.Exec(createPaymentEmailIndex); err != nil {
		return err
	}

	return nil
}
