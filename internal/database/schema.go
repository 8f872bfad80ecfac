package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables in dependency order: parents before children.
var Tables = []string{"departments", "professors", "students", "books"}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		description TEXT,
		building VARCHAR(50),
		phone VARCHAR(20),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS professors (
		id SERIAL PRIMARY KEY,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(20),
		department_id INTEGER REFERENCES departments(id) ON DELETE SET NULL,
		office VARCHAR(50),
		title VARCHAR(50),
		hire_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id SERIAL PRIMARY KEY,
		student_id VARCHAR(20) NOT NULL UNIQUE,
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		phone VARCHAR(20),
		department_id INTEGER REFERENCES departments(id) ON DELETE SET NULL,
		enrollment_date DATE,
		graduation_date DATE,
		gpa NUMERIC(3,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id SERIAL PRIMARY KEY,
		isbn VARCHAR(20) NOT NULL UNIQUE,
		title VARCHAR(200) NOT NULL,
		author VARCHAR(100) NOT NULL,
		publisher VARCHAR(100),
		publication_year INTEGER,
		edition INTEGER,
		price NUMERIC(10,2),
		quantity INTEGER DEFAULT 1,
		department_id INTEGER REFERENCES departments(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE OR REPLACE FUNCTION set_updated_at() RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = CURRENT_TIMESTAMP;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
}

// triggerStatements keeps updated_at current on every table.
func triggerStatements(table string) []string {
	name := table + "_set_updated_at"
	return []string{
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, name, table),
		fmt.Sprintf(`CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION set_updated_at()`, name, table),
	}
}

// EnsureSchema creates the tables and triggers if they do not exist.
// Running it again leaves existing rows untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := append([]string{}, schemaStatements...)
	for _, table := range Tables {
		stmts = append(stmts, triggerStatements(table)...)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
