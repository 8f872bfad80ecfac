package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/repository/builder"
)

var professorColumns = []string{
	"p.id", "p.first_name", "p.last_name", "p.email", "p.phone", "p.department_id",
	"p.office", "p.title", "to_char(p.hire_date, 'YYYY-MM-DD')",
	"p.created_at", "p.updated_at", "d.name AS department_name",
}

type professorRepository struct {
	db *sql.DB
}

// NewProfessorRepository creates a new instance of ProfessorRepository
func NewProfessorRepository(db *sql.DB) domain.ProfessorRepository {
	return &professorRepository{db: db}
}

func scanProfessor(row rowScanner) (domain.Professor, error) {
	var p domain.Professor
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DepartmentID,
		&p.Office, &p.Title, &p.HireDate, &p.CreatedAt, &p.UpdatedAt, &p.DepartmentName)
	return p, err
}

func (r *professorRepository) selectJoined() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select(professorColumns...).
		From("professors p").
		LeftJoin("departments d", "p.department_id = d.id")
}

func (r *professorRepository) List(ctx context.Context) ([]domain.Professor, error) {
	return queryList(ctx, r.db, r.selectJoined().OrderBy("p.last_name", "p.first_name"), scanProfessor)
}

func (r *professorRepository) GetByID(ctx context.Context, id int64) (*domain.Professor, error) {
	return queryOne(ctx, r.db, r.selectJoined().Where("p.id = ?", id), scanProfessor)
}

func (r *professorRepository) Create(ctx context.Context, in *domain.ProfessorInput) (int64, error) {
	b := builder.NewSQLBuilder().
		Insert("professors", "first_name", "last_name", "email", "phone", "department_id", "office", "title", "hire_date").
		Values(in.FirstName, in.LastName, in.Email, in.Phone, in.DepartmentID, in.Office, in.Title, in.HireDate)
	return insertReturningID(ctx, r.db, b)
}

func (r *professorRepository) Update(ctx context.Context, id int64, in *domain.ProfessorInput) error {
	b := builder.NewSQLBuilder().
		Update("professors").
		Set("first_name", in.FirstName).
		Set("last_name", in.LastName).
		Set("email", in.Email).
		Set("phone", in.Phone).
		Set("department_id", in.DepartmentID).
		Set("office", in.Office).
		Set("title", in.Title).
		Set("hire_date", in.HireDate).
		Where("id = ?", id)
	return execOne(ctx, r.db, b)
}

func (r *professorRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, builder.NewSQLBuilder().Delete("professors").Where("id = ?", id))
}
