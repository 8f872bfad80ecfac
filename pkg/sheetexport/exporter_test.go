package sheetexport

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

type book struct {
	Title    string
	Price    *float64
	Quantity *int64
	Dept     *string
}

func ptr[T any](v T) *T { return &v }

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	if err != nil {
		t.Fatalf("GetCellValue(%s, %s): %v", sheet, axis, err)
	}
	return v
}

func TestDataExporter_FluentSheets(t *testing.T) {
	rows := []book{
		{Title: "Effective Java", Price: ptr(45.99), Quantity: ptr(int64(10)), Dept: ptr("Computer Science")},
		{Title: "Orphan", Price: nil, Quantity: nil, Dept: nil},
	}

	exporter := NewDataExporter()
	exporter.AddSheet("Books").AddSection(&SectionConfig{
		Title:      "Books",
		ShowHeader: true,
		Data:       rows,
		Columns: []ColumnConfig{
			{FieldName: "Title", Header: "Title", Width: 30},
			{FieldName: "Price", Header: "Price", NumFmt: "0.00"},
			{FieldName: "Quantity", Header: "Qty"},
			{FieldName: "Dept", Header: "Department"},
		},
	})
	exporter.AddSheet("Empty")

	data, err := exporter.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	f := openWorkbook(t, data)

	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Books" || got[1] != "Empty" {
		t.Fatalf("unexpected sheets %v", got)
	}

	expected := map[string]string{
		"A1": "Books",
		"A2": "Title", "B2": "Price", "C2": "Qty", "D2": "Department",
		"A3": "Effective Java", "B3": "45.99", "C3": "10", "D3": "Computer Science",
		"A4": "Orphan", "B4": "", "C4": "", "D4": "",
	}
	for axis, want := range expected {
		if got := cell(t, f, "Books", axis); got != want {
			t.Errorf("%s: expected %q, got %q", axis, want, got)
		}
	}

	width, err := f.GetColWidth("Books", "A")
	if err != nil || width != 30 {
		t.Errorf("expected column A width 30, got %v (%v)", width, err)
	}
}

func TestDataExporter_SectionsStackWithGap(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("S").
		AddSection(&SectionConfig{
			ShowHeader: true,
			Data:       []map[string]interface{}{{"k": "a"}},
			Columns:    []ColumnConfig{{FieldName: "k", Header: "K"}},
		}).
		AddSection(&SectionConfig{
			Title:   "Second",
			Data:    []map[string]interface{}{{"k": "b"}},
			Columns: []ColumnConfig{{FieldName: "k"}},
		})

	f, err := exporter.BuildExcel()
	if err != nil {
		t.Fatalf("BuildExcel: %v", err)
	}
	defer f.Close()

	for axis, want := range map[string]string{"A1": "K", "A2": "a", "A3": "", "A4": "Second", "A5": "b"} {
		if got := cell(t, f, "S", axis); got != want {
			t.Errorf("%s: expected %q, got %q", axis, want, got)
		}
	}
}

const layout = `
sheets:
  - name: Departments
    sections:
      - id: departments
        show_header: true
        header_style:
          font: { bold: true, color: "#FFFFFF" }
          fill: { color: "#4F81BD" }
        columns:
          - { field_name: Title, header: Name }
  - name: Books
    sections:
      - id: books
        show_header: true
        columns:
          - { field_name: Title, header: Title }
          - { field_name: Price, header: Price }
`

func TestDataExporter_YamlTemplate(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(layout)
	if err != nil {
		t.Fatalf("Failed to create exporter from yaml: %v", err)
	}
	exporter.BindSectionData("books", []*book{{Title: "Calculus", Price: ptr(89.99)}})

	var buf bytes.Buffer
	if _, err := exporter.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	f := openWorkbook(t, buf.Bytes())

	if got := cell(t, f, "Departments", "A1"); got != "Name" {
		t.Errorf("expected header Name, got %q", got)
	}
	if got := cell(t, f, "Departments", "A2"); got != "" {
		t.Errorf("unbound section should have no rows, got %q", got)
	}
	styleID, err := f.GetCellStyle("Departments", "A1")
	if err != nil || styleID == 0 {
		t.Errorf("expected styled header, got style %d (%v)", styleID, err)
	}
	if got := cell(t, f, "Books", "A2"); got != "Calculus" {
		t.Errorf("expected Calculus, got %q", got)
	}
	if got := cell(t, f, "Books", "B2"); got != "89.99" {
		t.Errorf("expected 89.99, got %q", got)
	}
}

func TestReportTemplate_Select(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(layout)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := exporter.template

	only, err := tmpl.Select("Books")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(only.Sheets) != 1 || only.Sheets[0].Name != "Books" {
		t.Fatalf("unexpected selection %+v", only.Sheets)
	}
	if len(tmpl.Sheets) != 2 {
		t.Errorf("Select must not modify the template")
	}

	if _, err := tmpl.Select("Courses"); err == nil {
		t.Error("expected error for unknown sheet")
	}
}

func TestDataExporter_TemplateIsNotMutated(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(layout)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := exporter.template
	exporter.BindSectionData("books", []book{{Title: "X"}})
	if _, err := exporter.ToBytes(); err != nil {
		t.Fatal(err)
	}
	if tmpl.Sheets[1].Sections[0].Data != nil {
		t.Error("bound data leaked into the template")
	}
}
