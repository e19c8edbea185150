package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biosecret/go-tasks/config"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
)

var db *sql.DB

// GetDB returns the shared database handle.
func GetDB() *sql.DB {
	return db
}

// StartPostgreSQL opens the connection pool and bootstraps the schema.
func StartPostgreSQL(cfg *config.Config) error {
	var err error
	db, err = sql.Open("pgx", cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	err = db.PingContext(context.Background())
	if err != nil {
		return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}

	fmt.Println("Connected to PostgreSQL successfully")

	err = createTables(db)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// createTables creates the tables if they don't exist yet. The unique
// constraint on users.email is the authoritative duplicate-email guard; the
// application-level pre-check is only a fast path.
func createTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		title VARCHAR(500) NOT NULL,
		description VARCHAR(2000),
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks (user_id)
	`
	_, err := db.Exec(query)
	if err != nil {
		return err
	}

	fmt.Println("Tables created or already exist")
	return nil
}

// ClosePostgreSQL closes the database connection.
func ClosePostgreSQL() {
	if db != nil {
		err := db.Close()
		if err != nil {
			panic(err)
		}
		fmt.Println("Database connection closed")
	}
}
