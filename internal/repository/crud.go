package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/repository/builder"
)

// Store errors are returned as they come from the driver so that the
// API can forward their message untouched.

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryList runs a SELECT and scans every row. It never returns a nil
// slice, so an empty table serializes as [].
func queryList[T any](ctx context.Context, db *sql.DB, b *builder.SQLBuilder, scan func(rowScanner) (T, error)) ([]T, error) {
	query, args, err := b.BuildSafe()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// queryOne runs a SELECT expected to match at most one row.
func queryOne[T any](ctx context.Context, db *sql.DB, b *builder.SQLBuilder, scan func(rowScanner) (T, error)) (*T, error) {
	query, args, err := b.BuildSafe()
	if err != nil {
		return nil, err
	}

	item, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// insertReturningID runs an INSERT ... RETURNING id.
func insertReturningID(ctx context.Context, db *sql.DB, b *builder.SQLBuilder) (int64, error) {
	query, args, err := b.Returning("id").BuildSafe()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// execOne runs an UPDATE or DELETE by id and reports ErrNotFound when no
// row was affected.
func execOne(ctx context.Context, db *sql.DB, b *builder.SQLBuilder) error {
	query, args, err := b.BuildSafe()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
