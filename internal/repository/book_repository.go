package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/repository/builder"
)

var bookColumns = []string{
	"b.id", "b.isbn", "b.title", "b.author", "b.publisher", "b.publication_year", "b.edition",
	"b.price", "b.quantity", "b.department_id", "b.created_at", "b.updated_at", "d.name AS department_name",
}

type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new instance of BookRepository
func NewBookRepository(db *sql.DB) domain.BookRepository {
	return &bookRepository{db: db}
}

func scanBook(row rowScanner) (domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Publisher, &b.PublicationYear, &b.Edition,
		&b.Price, &b.Quantity, &b.DepartmentID, &b.CreatedAt, &b.UpdatedAt, &b.DepartmentName)
	return b, err
}

func (r *bookRepository) selectJoined() *builder.SQLBuilder {
	return builder.NewSQLBuilder().
		Select(bookColumns...).
		From("books b").
		LeftJoin("departments d", "b.department_id = d.id")
}

func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	return queryList(ctx, r.db, r.selectJoined().OrderBy("b.title"), scanBook)
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	return queryOne(ctx, r.db, r.selectJoined().Where("b.id = ?", id), scanBook)
}

func (r *bookRepository) Create(ctx context.Context, in *domain.BookInput) (int64, error) {
	b := builder.NewSQLBuilder().
		Insert("books", "isbn", "title", "author", "publisher", "publication_year", "edition",
			"price", "quantity", "department_id").
		Values(in.ISBN, in.Title, in.Author, in.Publisher, in.PublicationYear, in.Edition,
			in.Price, in.Quantity, in.DepartmentID)
	return insertReturningID(ctx, r.db, b)
}

func (r *bookRepository) Update(ctx context.Context, id int64, in *domain.BookInput) error {
	b := builder.NewSQLBuilder().
		Update("books").
		Set("isbn", in.ISBN).
		Set("title", in.Title).
		Set("author", in.Author).
		Set("publisher", in.Publisher).
		Set("publication_year", in.PublicationYear).
		Set("edition", in.Edition).
		Set("price", in.Price).
		Set("quantity", in.Quantity).
		Set("department_id", in.DepartmentID).
		Where("id = ?", id)
	return execOne(ctx, r.db, b)
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, builder.NewSQLBuilder().Delete("books").Where("id = ?", id))
}
