package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/repository/builder"
)

var studentColumns = []string{
	"s.id", "s.student_id", "s.first_name", "s.last_name", "s.email", "s.phone", "s.department_id",
	"to_char(s.enrollment_date, 'YYYY-MM-DD')", "to_char(s.graduation_date, 'YYYY-MM-DD')", "s.gpa",
	"s.created_at", "s.updated_at", "d.name AS department_name",
}

type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new instance of StudentRepository
func NewStudentRepository(db *sql.DB) domain.StudentRepository {
	return &studentRepository{db: db}
}

func scanStudent(row rowScanner) (domain.Student, error) {
	var s domain.Student
	err := row.Scan(&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.DepartmentID,
		&s.EnrollmentDate, &s.GraduationDate, &s.GPA, &s.CreatedAt, &s.UpdatedAt, &s.DepartmentName)
	return s, err
}

func (r *studentRepository) selectJoined() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select(studentColumns...).
		From("students s").
		LeftJoin("departments d", "s.department_id = d.id")
}

func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	return queryList(ctx, r.db, r.selectJoined().OrderBy("s.last_name", "s.first_name"), scanStudent)
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	return queryOne(ctx, r.db, r.selectJoined().Where("s.id = ?", id), scanStudent)
}

func (r *studentRepository) Create(ctx context.Context, in *domain.StudentInput) (int64, error) {
	b := builder.NewSQLBuilder().
		Insert("students", "student_id", "first_name", "last_name", "email", "phone", "department_id",
			"enrollment_date", "graduation_date", "gpa").
		Values(in.StudentID, in.FirstName, in.LastName, in.Email, in.Phone, in.DepartmentID,
			in.EnrollmentDate, in.GraduationDate, in.GPA)
	return insertReturningID(ctx, r.db, b)
}

func (r *studentRepository) Update(ctx context.Context, id int64, in *domain.StudentInput) error {
	b := builder.NewSQLBuilder().
		Update("students").
		Set("student_id", in.StudentID).
		Set("first_name", in.FirstName).
		Set("last_name", in.LastName).
		Set("email", in.Email).
		Set("phone", in.Phone).
		Set("department_id", in.DepartmentID).
		Set("enrollment_date", in.EnrollmentDate).
		Set("graduation_date", in.GraduationDate).
		Set("gpa", in.GPA).
		Where("id = ?", id)
	return execOne(ctx, r.db, b)
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, builder.NewSQLBuilder().Delete("students").Where("id = ?", id))
}
