package builder_test

import (
	"fmt"

	"github.com/locvowork/academic_records/internal/repository/builder"
)

// Example_leftJoin shows the read-side projection query used for dependents.
func Example_leftJoin() {
	qb := builder.NewSQLBuilder().
		Select("b.id", "b.title", "d.name AS department_name").
		From("books b").
		LeftJoin("departments d", "b.department_id = d.id").
		Where("b.id = ?", 4)

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Args: %v\n", args)

	// Output:
	// SQL: SELECT b.id, b.title, d.name AS department_name FROM books b LEFT JOIN departments d ON b.department_id = d.id WHERE b.id = $1
	// Args: [4]
}

// Example_insertReturning shows an insert that reports the new surrogate key.
func Example_insertReturning() {
	qb := builder.NewSQLBuilder().
		Insert("departments", "name", "description", "building", "phone").
		Values("Chemistry", nil, nil, nil).
		Returning("id")

	sql, args := qb.Build()
	fmt.Println("SQL:", sql)
	fmt.Printf("Number of args: %d\n", len(args))

	// Output:
	// SQL: INSERT INTO departments (name, description, building, phone) VALUES ($1, $2, $3, $4) RETURNING id
	// Number of args: 4
}
