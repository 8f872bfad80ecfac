package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/repository/builder"
)

var departmentColumns = []string{"id", "name", "description", "building", "phone", "created_at", "updated_at"}

type departmentRepository struct {
	db *sql.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository
func NewDepartmentRepository(db *sql.DB) domain.DepartmentRepository {
	return &departmentRepository{db: db}
}

func scanDepartment(row rowScanner) (domain.Department, error) {
	var d domain.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Building, &d.Phone, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	b := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From("departments").
		OrderBy("name")
	return queryList(ctx, r.db, b, scanDepartment)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	b := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From("departments").
		Where("id = ?", id)
	return queryOne(ctx, r.db, b, scanDepartment)
}

func (r *departmentRepository) Create(ctx context.Context, in *domain.DepartmentInput) (int64, error) {
	b := builder.NewSQLBuilder().
		Insert("departments", "name", "description", "building", "phone").
		Values(in.Name, in.Description, in.Building, in.Phone)
	return insertReturningID(ctx, r.db, b)
}

func (r *departmentRepository) Update(ctx context.Context, id int64, in *domain.DepartmentInput) error {
	b := builder.NewSQLBuilder().
		Update("departments").
		Set("name", in.Name).
		Set("description", in.Description).
		Set("building", in.Building).
		Set("phone", in.Phone).
		Where("id = ?", id)
	return execOne(ctx, r.db, b)
}

// Delete removes a department. Dependents keep their rows; the foreign
// keys are declared ON DELETE SET NULL.
func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	b := builder.NewSQLBuilder().
		Delete("departments").
		Where("id = ?", id)
	return execOne(ctx, r.db, b)
}
