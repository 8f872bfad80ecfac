package domain

import "time"

// ==================== READ MODELS ====================
//
// Read models mirror a table row. Professor, Student and Book also carry
// DepartmentName, a projection of departments.name joined in for display.
// Nullable columns are pointers and serialize as JSON null.

// Department represents the departments table
type Department struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Building    *string   `json:"building" db:"building"`
	Phone       *string   `json:"phone" db:"phone"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Professor represents the professors table joined with its department
type Professor struct {
	ID             int64     `json:"id" db:"id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	Phone          *string   `json:"phone" db:"phone"`
	DepartmentID   *int64    `json:"department_id" db:"department_id"`
	Office         *string   `json:"office" db:"office"`
	Title          *string   `json:"title" db:"title"`
	HireDate       *string   `json:"hire_date" db:"hire_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
	DepartmentName *string   `json:"department_name" db:"department_name"`
}

// Student represents the students table joined with its department
type Student struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      string    `json:"student_id" db:"student_id"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	Phone          *string   `json:"phone" db:"phone"`
	DepartmentID   *int64    `json:"department_id" db:"department_id"`
	EnrollmentDate *string   `json:"enrollment_date" db:"enrollment_date"`
	GraduationDate *string   `json:"graduation_date" db:"graduation_date"`
	GPA            *float64  `json:"gpa" db:"gpa"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
	DepartmentName *string   `json:"department_name" db:"department_name"`
}

// Book represents the books table joined with its department
type Book struct {
	ID              int64     `json:"id" db:"id"`
	ISBN            string    `json:"isbn" db:"isbn"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	Publisher       *string   `json:"publisher" db:"publisher"`
	PublicationYear *int64    `json:"publication_year" db:"publication_year"`
	Edition         *int64    `json:"edition" db:"edition"`
	Price           *float64  `json:"price" db:"price"`
	Quantity        *int64    `json:"quantity" db:"quantity"`
	DepartmentID    *int64    `json:"department_id" db:"department_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	DepartmentName  *string   `json:"department_name" db:"department_name"`
}

// ==================== WRITE MODELS ====================
//
// Write models hold only the editable columns. A field absent from the
// request body stays nil and is stored as NULL; the store rejects NULL
// for NOT NULL columns. Numeric columns accept a number or numeric text.

type DepartmentInput struct {
	Name        *string `json:"name" yaml:"name" form:"name"`
	Description *string `json:"description" yaml:"description" form:"description"`
	Building    *string `json:"building" yaml:"building" form:"building"`
	Phone       *string `json:"phone" yaml:"phone" form:"phone"`
}

type ProfessorInput struct {
	FirstName    *string  `json:"first_name" yaml:"first_name" form:"first_name"`
	LastName     *string  `json:"last_name" yaml:"last_name" form:"last_name"`
	Email        *string  `json:"email" yaml:"email" form:"email"`
	Phone        *string  `json:"phone" yaml:"phone" form:"phone"`
	DepartmentID *Numeric `json:"department_id" yaml:"department_id" form:"department_id"`
	Office       *string  `json:"office" yaml:"office" form:"office"`
	Title        *string  `json:"title" yaml:"title" form:"title"`
	HireDate     *string  `json:"hire_date" yaml:"hire_date" form:"hire_date"`
}

type StudentInput struct {
	StudentID      *string  `json:"student_id" yaml:"student_id" form:"student_id"`
	FirstName      *string  `json:"first_name" yaml:"first_name" form:"first_name"`
	LastName       *string  `json:"last_name" yaml:"last_name" form:"last_name"`
	Email          *string  `json:"email" yaml:"email" form:"email"`
	Phone          *string  `json:"phone" yaml:"phone" form:"phone"`
	DepartmentID   *Numeric `json:"department_id" yaml:"department_id" form:"department_id"`
	EnrollmentDate *string  `json:"enrollment_date" yaml:"enrollment_date" form:"enrollment_date"`
	GraduationDate *string  `json:"graduation_date" yaml:"graduation_date" form:"graduation_date"`
	GPA            *Numeric `json:"gpa" yaml:"gpa" form:"gpa"`
}

type BookInput struct {
	ISBN            *string  `json:"isbn" yaml:"isbn" form:"isbn"`
	Title           *string  `json:"title" yaml:"title" form:"title"`
	Author          *string  `json:"author" yaml:"author" form:"author"`
	Publisher       *string  `json:"publisher" yaml:"publisher" form:"publisher"`
	PublicationYear *Numeric `json:"publication_year" yaml:"publication_year" form:"publication_year"`
	Edition         *Numeric `json:"edition" yaml:"edition" form:"edition"`
	Price           *Numeric `json:"price" yaml:"price" form:"price"`
	Quantity        *Numeric `json:"quantity" yaml:"quantity" form:"quantity"`
	DepartmentID    *Numeric `json:"department_id" yaml:"department_id" form:"department_id"`
}
