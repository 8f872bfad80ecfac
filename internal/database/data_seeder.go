package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/logger"
)

//go:embed seed_data.yaml
var seedDataYAML []byte

type professorSeed struct {
	domain.ProfessorInput `yaml:",inline"`
	Department            string `yaml:"department"`
}

type studentSeed struct {
	domain.StudentInput `yaml:",inline"`
	Department          string `yaml:"department"`
}

type bookSeed struct {
	domain.BookInput `yaml:",inline"`
	Department       string `yaml:"department"`
}

// SeedData is the fixed sample set inserted at bootstrap.
type SeedData struct {
	Departments []domain.DepartmentInput `yaml:"departments"`
	Professors  []professorSeed          `yaml:"professors"`
	Students    []studentSeed            `yaml:"students"`
	Books       []bookSeed               `yaml:"books"`
}

// SeedStats counts the rows actually inserted per table.
type SeedStats map[string]int64

// LoadSeedData decodes the embedded sample set.
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(seedDataYAML, &data); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &data, nil
}

// Rows that collide with an existing unique key are skipped, which makes
// seeding safe to repeat. Dependents look up their department by name.
const (
	insertDepartmentSQL = `
		INSERT INTO departments (name, description, building, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`
	insertProfessorSQL = `
		INSERT INTO professors (first_name, last_name, email, phone, department_id, office, title, hire_date)
		VALUES ($1, $2, $3, $4, (SELECT id FROM departments WHERE name = $5), $6, $7, $8)
		ON CONFLICT DO NOTHING`
	insertStudentSQL = `
		INSERT INTO students (student_id, first_name, last_name, email, phone, department_id, enrollment_date, graduation_date, gpa)
		VALUES ($1, $2, $3, $4, $5, (SELECT id FROM departments WHERE name = $6), $7, $8, $9)
		ON CONFLICT DO NOTHING`
	insertBookSQL = `
		INSERT INTO books (isbn, title, author, publisher, publication_year, edition, price, quantity, department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, (SELECT id FROM departments WHERE name = $9))
		ON CONFLICT DO NOTHING`
)

type DataSeeder struct {
	db *sql.DB
}

func NewDataSeeder(db *sql.DB) *DataSeeder {
	return &DataSeeder{db: db}
}

// SeedData inserts the sample set in one transaction.
func (ds *DataSeeder) SeedData(ctx context.Context, data *SeedData) (SeedStats, error) {
	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stats := SeedStats{}

	var rows [][]interface{}
	for _, d := range data.Departments {
		rows = append(rows, []interface{}{d.Name, d.Description, d.Building, d.Phone})
	}
	if stats["departments"], err = insertAll(ctx, tx, insertDepartmentSQL, rows); err != nil {
		return nil, fmt.Errorf("failed to insert departments: %w", err)
	}

	rows = nil
	for _, p := range data.Professors {
		rows = append(rows, []interface{}{p.FirstName, p.LastName, p.Email, p.Phone, p.Department, p.Office, p.Title, p.HireDate})
	}
	if stats["professors"], err = insertAll(ctx, tx, insertProfessorSQL, rows); err != nil {
		return nil, fmt.Errorf("failed to insert professors: %w", err)
	}

	rows = nil
	for _, s := range data.Students {
		rows = append(rows, []interface{}{s.StudentID, s.FirstName, s.LastName, s.Email, s.Phone, s.Department, s.EnrollmentDate, s.GraduationDate, s.GPA})
	}
	if stats["students"], err = insertAll(ctx, tx, insertStudentSQL, rows); err != nil {
		return nil, fmt.Errorf("failed to insert students: %w", err)
	}

	rows = nil
	for _, b := range data.Books {
		rows = append(rows, []interface{}{b.ISBN, b.Title, b.Author, b.Publisher, b.PublicationYear, b.Edition, b.Price, b.Quantity, b.Department})
	}
	if stats["books"], err = insertAll(ctx, tx, insertBookSQL, rows); err != nil {
		return nil, fmt.Errorf("failed to insert books: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logger.InfoLog(ctx, "Seeded sample data: %d departments, %d professors, %d students, %d books",
		stats["departments"], stats["professors"], stats["students"], stats["books"])
	return stats, nil
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, rows [][]interface{}) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, args := range rows {
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += n
	}
	return inserted, nil
}

// ClearData removes every row and restarts the id sequences.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	if _, err := ds.db.ExecContext(ctx, "TRUNCATE books, students, professors, departments RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	logger.InfoLog(ctx, "Cleared all academic records")
	return nil
}
