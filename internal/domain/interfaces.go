package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("not found")

// CRUDRepository is the data access contract shared by every entity.
// R is the read model, W the write model.
type CRUDRepository[R any, W any] interface {
	List(ctx context.Context) ([]R, error)
	GetByID(ctx context.Context, id int64) (*R, error)
	Create(ctx context.Context, in *W) (int64, error)
	Update(ctx context.Context, id int64, in *W) error
	Delete(ctx context.Context, id int64) error
}

type DepartmentRepository interface {
	CRUDRepository[Department, DepartmentInput]
}

type ProfessorRepository interface {
	CRUDRepository[Professor, ProfessorInput]
}

type StudentRepository interface {
	CRUDRepository[Student, StudentInput]
}

type BookRepository interface {
	CRUDRepository[Book, BookInput]
}
