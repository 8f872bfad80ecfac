package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/service"
)

// fakeRepo keeps rows in memory and builds read models with toRead.
type fakeRepo[R any, W any] struct {
	rows   map[int64]W
	nextID int64
	toRead func(id int64, in W) R

	createErr error
	listErr   error
}

func newFakeRepo[R any, W any](toRead func(id int64, in W) R) *fakeRepo[R, W] {
	return &fakeRepo[R, W]{rows: map[int64]W{}, toRead: toRead}
}

func (f *fakeRepo[R, W]) List(ctx context.Context) ([]R, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]R, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.toRead(id, f.rows[id]))
	}
	return out, nil
}

func (f *fakeRepo[R, W]) GetByID(ctx context.Context, id int64) (*R, error) {
	in, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r := f.toRead(id, in)
	return &r, nil
}

func (f *fakeRepo[R, W]) Create(ctx context.Context, in *W) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.rows[f.nextID] = *in
	return f.nextID, nil
}

func (f *fakeRepo[R, W]) Update(ctx context.Context, id int64, in *W) error {
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	f.rows[id] = *in
	return nil
}

func (f *fakeRepo[R, W]) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func departmentFromInput(id int64, in domain.DepartmentInput) domain.Department {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return domain.Department{
		ID: id, Name: deref(in.Name), Description: in.Description,
		Building: in.Building, Phone: in.Phone, CreatedAt: now, UpdatedAt: now,
	}
}

// toInt64 and toFloat64 stand in for the store's casts.
func toInt64(n *domain.Numeric) *int64 {
	if n == nil {
		return nil
	}
	v, err := n.Int64()
	if err != nil {
		return nil
	}
	return &v
}

func toFloat64(n *domain.Numeric) *float64 {
	if n == nil {
		return nil
	}
	v, err := n.Float64()
	if err != nil {
		return nil
	}
	return &v
}

func studentFromInput(id int64, in domain.StudentInput) domain.Student {
	return domain.Student{
		ID: id, StudentID: deref(in.StudentID), FirstName: deref(in.FirstName),
		LastName: deref(in.LastName), Email: deref(in.Email), DepartmentID: toInt64(in.DepartmentID),
		GPA: toFloat64(in.GPA),
	}
}

func professorFromInput(id int64, in domain.ProfessorInput) domain.Professor {
	return domain.Professor{ID: id, FirstName: deref(in.FirstName), LastName: deref(in.LastName), Email: deref(in.Email)}
}

func bookFromInput(id int64, in domain.BookInput) domain.Book {
	return domain.Book{ID: id, ISBN: deref(in.ISBN), Title: deref(in.Title), Author: deref(in.Author)}
}

func newServer() *echo.Echo {
	return echo.New()
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(e *echo.Echo, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestEntityHandler_DepartmentLifecycle(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(departmentFromInput)
	NewEntityHandler[domain.Department, domain.DepartmentInput]("Department", repo).Register(e.Group("/api/departments"))

	rec := do(e, http.MethodGet, "/api/departments", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/departments", `{"name":"Chemistry"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"message":"Department created successfully"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/departments/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, "Chemistry", got["name"])
	for _, field := range []string{"description", "building", "phone"} {
		v, present := got[field]
		assert.True(t, present, field)
		assert.Nil(t, v, field)
	}

	rec = do(e, http.MethodPut, "/api/departments/1", `{"name":"Chemistry","building":"Lab Wing"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Department updated successfully"}`, rec.Body.String())
	assert.Equal(t, "Lab Wing", *repo.rows[1].Building)

	// A full replace clears fields missing from the body.
	rec = do(e, http.MethodPut, "/api/departments/1", `{"name":"Chemistry"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, repo.rows[1].Building)

	rec = do(e, http.MethodDelete, "/api/departments/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Department deleted successfully"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/departments/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Department not found"}`, rec.Body.String())
}

func TestEntityHandler_NotFound(t *testing.T) {
	e := newServer()
	NewEntityHandler[domain.Professor, domain.ProfessorInput]("Professor", newFakeRepo(professorFromInput)).
		Register(e.Group("/api/professors"))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"update missing", http.MethodPut, "/api/professors/999999", `{"first_name":"A","last_name":"B","email":"a@b.c"}`},
		{"delete missing", http.MethodDelete, "/api/professors/999999", ""},
		{"get missing", http.MethodGet, "/api/professors/42", ""},
		{"non numeric id", http.MethodGet, "/api/professors/abc", ""},
		{"non numeric update", http.MethodPut, "/api/professors/abc", `{}`},
		{"zero id", http.MethodDelete, "/api/professors/0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"error":"Professor not found"}`, rec.Body.String())
		})
	}
}

func TestEntityHandler_InvalidBody(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(studentFromInput)
	NewEntityHandler[domain.Student, domain.StudentInput]("Student", repo).Register(e.Group("/api/students"))

	rec := do(e, http.MethodPost, "/api/students", `{"first_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
	assert.Empty(t, repo.rows)
}

func TestEntityHandler_StudentWithoutDepartment(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(studentFromInput)
	NewEntityHandler[domain.Student, domain.StudentInput]("Student", repo).Register(e.Group("/api/students"))

	body := `{"student_id":"CHEM2024005","first_name":"Ana","last_name":"Lee","email":"a.lee@student.college.edu","gpa":3.5,"nickname":"ignored"}`
	rec := do(e, http.MethodPost, "/api/students", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Nil(t, got["department_id"])
	assert.Nil(t, got["department_name"])
	assert.Equal(t, 3.5, got["gpa"])
	assert.NotContains(t, got, "nickname")
}

func TestEntityHandler_NumericText(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(studentFromInput)
	NewEntityHandler[domain.Student, domain.StudentInput]("Student", repo).Register(e.Group("/api/students"))

	body := `{"student_id":"MATH2024010","first_name":"Lena","last_name":"Ortiz","email":"l.ortiz@student.college.edu","department_id":"2","gpa":" 3.85 "}`
	rec := do(e, http.MethodPost, "/api/students", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.Numeric("2"), *repo.rows[1].DepartmentID)
	assert.Equal(t, domain.Numeric("3.85"), *repo.rows[1].GPA)

	rec = do(e, http.MethodGet, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.Equal(t, 2.0, got["department_id"])
	assert.Equal(t, 3.85, got["gpa"])

	rec = do(e, http.MethodPut, "/api/students/1", `{"student_id":"MATH2024010","first_name":"Lena","last_name":"Ortiz","email":"l.ortiz@student.college.edu","department_id":3,"gpa":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Numeric("3"), *repo.rows[1].DepartmentID)
	assert.Nil(t, repo.rows[1].GPA)
}

func TestEntityHandler_NumericRejectsNonScalars(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(studentFromInput)
	NewEntityHandler[domain.Student, domain.StudentInput]("Student", repo).Register(e.Group("/api/students"))

	for _, gpa := range []string{`true`, `{"value":3.5}`, `[3.5]`} {
		rec := do(e, http.MethodPost, "/api/students", `{"student_id":"X1","gpa":`+gpa+`}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, gpa)
	}
	assert.Empty(t, repo.rows)
}

func TestEntityHandler_NumericJunkReachesStore(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(bookFromInput)
	repo.createErr = &pq.Error{Code: "22P02", Message: `invalid input syntax for type integer: "abc"`}
	NewEntityHandler[domain.Book, domain.BookInput]("Book", repo).Register(e.Group("/api/books"))

	rec := do(e, http.MethodPost, "/api/books", `{"isbn":"978-0","title":"T","author":"A","quantity":"abc"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "invalid input syntax")
}

func TestEntityHandler_FormBody(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(studentFromInput)
	NewEntityHandler[domain.Student, domain.StudentInput]("Student", repo).Register(e.Group("/api/students"))

	rec := doForm(e, http.MethodPost, "/api/students", url.Values{
		"student_id":    {"CS2025001"},
		"first_name":    {"Ana"},
		"last_name":     {"Lee"},
		"email":         {"a.lee@student.college.edu"},
		"department_id": {"1"},
		"gpa":           {"3.1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	saved := repo.rows[1]
	require.NotNil(t, saved.StudentID)
	assert.Equal(t, "CS2025001", *saved.StudentID)
	assert.Equal(t, "a.lee@student.college.edu", *saved.Email)
	assert.Equal(t, domain.Numeric("1"), *saved.DepartmentID)
	assert.Equal(t, domain.Numeric("3.1"), *saved.GPA)
	assert.Nil(t, saved.Phone)
}

func TestEntityHandler_StoreErrorsPassThrough(t *testing.T) {
	e := newServer()
	repo := newFakeRepo(bookFromInput)
	repo.createErr = &pq.Error{
		Code:       "23505",
		Message:    `duplicate key value violates unique constraint "books_isbn_key"`,
		Constraint: "books_isbn_key",
	}
	NewEntityHandler[domain.Book, domain.BookInput]("Book", repo).Register(e.Group("/api/books"))

	rec := do(e, http.MethodPost, "/api/books", `{"isbn":"978-0134685991","title":"Effective Java","author":"Joshua Bloch"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decode(t, rec)
	assert.Contains(t, got["error"], "books_isbn_key")

	repo.listErr = fmt.Errorf("dial tcp: connection refused")
	rec = do(e, http.MethodGet, "/api/books", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"dial tcp: connection refused"}`, rec.Body.String())
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	e := newServer()
	e.GET("/api/health", NewHealthHandler(fakePinger{}).HealthHandler)
	rec := do(e, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	e = newServer()
	e.GET("/api/health", NewHealthHandler(fakePinger{err: fmt.Errorf("connection refused")}).HealthHandler)
	rec = do(e, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"connection refused"}`, rec.Body.String())
}

type fakeExporter struct {
	entities []string
}

func (f *fakeExporter) ExportEntity(ctx context.Context, entity string) ([]byte, error) {
	if entity == "courses" {
		return nil, fmt.Errorf("%w: %s", service.ErrUnknownEntity, entity)
	}
	f.entities = append(f.entities, entity)
	return []byte("xlsx:" + entity), nil
}

func (f *fakeExporter) ExportAll(ctx context.Context) ([]byte, error) {
	return []byte("xlsx:all"), nil
}

func TestExportHandler(t *testing.T) {
	e := newServer()
	exp := &fakeExporter{}
	h := NewExportHandler(exp)

	// The static export route must win over the :id route.
	g := e.Group("/api/books")
	NewEntityHandler[domain.Book, domain.BookInput]("Book", newFakeRepo(bookFromInput)).Register(g)
	g.GET("/export", h.EntityHandler("books"))
	e.GET("/api/courses/export", h.EntityHandler("courses"))
	e.GET("/api/export", h.AllHandler)

	rec := do(e, http.MethodGet, "/api/books/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="books.xlsx"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "xlsx:books", rec.Body.String())
	assert.Equal(t, []string{"books"}, exp.entities)

	rec = do(e, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "xlsx:all", rec.Body.String())

	rec = do(e, http.MethodGet, "/api/courses/export", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
