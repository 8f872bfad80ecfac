package service

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/locvowork/academic_records/internal/domain"
	"github.com/locvowork/academic_records/internal/logger"
	"github.com/locvowork/academic_records/pkg/sheetexport"
)

//go:embed export_layout.yaml
var exportLayoutYAML []byte

// ErrUnknownEntity is returned for an entity key with no export sheet.
var ErrUnknownEntity = errors.New("unknown entity")

// RowSource loads the rows of one entity table.
type RowSource func(ctx context.Context) (interface{}, error)

// Source adapts a repository's List to a RowSource.
func Source[R any, W any](repo domain.CRUDRepository[R, W]) RowSource {
	return func(ctx context.Context) (interface{}, error) {
		rows, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
}

type entitySheet struct {
	key   string
	sheet string
}

// Entities in workbook order. Keys are the /api path segments.
var entitySheets = []entitySheet{
	{"departments", "Departments"},
	{"professors", "Professors"},
	{"students", "Students"},
	{"books", "Books"},
}

// ExportService renders entity tables as xlsx workbooks.
type ExportService struct {
	layout  *sheetexport.ReportTemplate
	sources map[string]RowSource
}

// NewExportService wires one row source per entity to the embedded layout.
func NewExportService(
	departments domain.DepartmentRepository,
	professors domain.ProfessorRepository,
	students domain.StudentRepository,
	books domain.BookRepository,
) (*ExportService, error) {
	return NewExportServiceWithSources(map[string]RowSource{
		"departments": Source[domain.Department, domain.DepartmentInput](departments),
		"professors":  Source[domain.Professor, domain.ProfessorInput](professors),
		"students":    Source[domain.Student, domain.StudentInput](students),
		"books":       Source[domain.Book, domain.BookInput](books),
	})
}

func NewExportServiceWithSources(sources map[string]RowSource) (*ExportService, error) {
	layout, err := sheetexport.LoadTemplate(bytes.NewReader(exportLayoutYAML))
	if err != nil {
		return nil, fmt.Errorf("load export layout: %w", err)
	}
	return &ExportService{layout: layout, sources: sources}, nil
}

// Entities lists the exportable entity keys in workbook order.
func Entities() []string {
	keys := make([]string, len(entitySheets))
	for i, es := range entitySheets {
		keys[i] = es.key
	}
	return keys
}

func lookupSheet(entity string) (entitySheet, bool) {
	for _, es := range entitySheets {
		if es.key == entity {
			return es, true
		}
	}
	return entitySheet{}, false
}

// ExportEntity returns a single-sheet workbook for entity.
func (s *ExportService) ExportEntity(ctx context.Context, entity string) ([]byte, error) {
	es, ok := lookupSheet(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	return s.export(ctx, []entitySheet{es})
}

// ExportAll returns one workbook holding every entity sheet.
func (s *ExportService) ExportAll(ctx context.Context) ([]byte, error) {
	return s.export(ctx, entitySheets)
}

func (s *ExportService) export(ctx context.Context, sheets []entitySheet) ([]byte, error) {
	names := make([]string, len(sheets))
	for i, es := range sheets {
		names[i] = es.sheet
	}
	tmpl, err := s.layout.Select(names...)
	if err != nil {
		return nil, err
	}

	exporter := sheetexport.NewDataExporterFromTemplate(tmpl)
	for _, es := range sheets {
		source, ok := s.sources[es.key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, es.key)
		}
		rows, err := source(ctx)
		if err != nil {
			return nil, err
		}
		exporter.BindSectionData(es.key, rows)
	}

	data, err := exporter.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	logger.DebugLog(ctx, "Exported %v (%d bytes)", names, len(data))
	return data, nil
}
