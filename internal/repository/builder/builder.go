package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct PostgreSQL queries with bound parameters.
// Conditions are written with "?" markers, which Build numbers as $1..$n
// after any SET or VALUES parameters. Identifiers passed to the builder
// are trusted; values always travel as arguments.
type SQLBuilder struct {
	table      string
	columns    []string
	values     []interface{}
	updateCols []string
	setArgs    []interface{}
	where      []string
	whereArgs  []interface{}
	joins      []string
	orderBy    []string
	returning  []string
	isInsert   bool
	isUpdate   bool
	isDelete   bool
	isSelect   bool
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set adds a column assignment to an UPDATE.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.setArgs = append(b.setArgs, val)
	return b
}

// Values specifies the values for insertion, in column order.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// Where adds a condition; multiple conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// Join adds a JOIN clause.
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// LeftJoin adds a LEFT JOIN clause.
func (b *SQLBuilder) LeftJoin(table, on string) *SQLBuilder {
	return b.Join("LEFT", table, on)
}

// OrderBy adds an ORDER BY term.
func (b *SQLBuilder) OrderBy(order ...string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order...)
	return b
}

// Returning adds a RETURNING clause to an INSERT, UPDATE or DELETE.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = append(b.returning, cols...)
	return b
}

// Build constructs the final SQL string and arguments. It does not
// modify the builder, so calling it twice yields the same result.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	argIndex := 1

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, join := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(join)
		}
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			argIndex++
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		args = append(args, b.values...)
	case b.isUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			setClauses[i] = fmt.Sprintf("%s = $%d", col, argIndex)
			argIndex++
		}
		sb.WriteString(strings.Join(setClauses, ", "))
		args = append(args, b.setArgs...)
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(numberPlaceholders(strings.Join(b.where, " AND "), &argIndex))
		args = append(args, b.whereArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if len(b.returning) > 0 && !b.isSelect {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}

	return sb.String(), args
}

// BuildSafe is Build plus a check that every argument has a placeholder.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	sql, args := b.Build()
	markers := strings.Count(strings.Join(b.where, " "), "?") + len(b.values) + len(b.updateCols)
	if markers != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", markers, len(args))
	}
	return sql, args, nil
}

// numberPlaceholders replaces each "?" with the next $n.
func numberPlaceholders(clause string, argIndex *int) string {
	var sb strings.Builder
	parts := strings.Split(clause, "?")
	for i, part := range parts {
		sb.WriteString(part)
		if i < len(parts)-1 {
			sb.WriteString(fmt.Sprintf("$%d", *argIndex))
			*argIndex++
		}
	}
	return sb.String()
}
