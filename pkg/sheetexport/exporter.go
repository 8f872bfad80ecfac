package sheetexport

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Types
// =============================================================================

// DataExporter builds an xlsx workbook from sheets added fluently, sheets
// taken from a ReportTemplate, or both. Programmatic sheets come first.
type DataExporter struct {
	template *ReportTemplate
	// data holds rows bound to section IDs of the template
	data   map[string]interface{}
	sheets []*SheetBuilder
}

// ReportTemplate represents the YAML layout.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a block of rows in a sheet. Sections stack
// vertically with one blank row between them unless Position is set.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"` // bound at runtime
	ShowHeader  bool           `yaml:"show_header"`
	Position    string         `yaml:"position"` // e.g. "A1"
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"` // struct field name or map key
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
	NumFmt    string  `yaml:"num_fmt"` // custom number format, e.g. "0.00"
}

type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex
}

type FillTemplate struct {
	Color string `yaml:"color"` // hex
}

// =============================================================================
// Templates
// =============================================================================

// LoadTemplate decodes a YAML layout.
func LoadTemplate(r io.Reader) (*ReportTemplate, error) {
	var tmpl ReportTemplate
	if err := yaml.NewDecoder(r).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &tmpl, nil
}

// Select returns a template holding only the named sheets, in the given
// order. The receiver is not modified.
func (t *ReportTemplate) Select(names ...string) (*ReportTemplate, error) {
	out := &ReportTemplate{}
	for _, name := range names {
		sheet, ok := t.sheet(name)
		if !ok {
			return nil, fmt.Errorf("sheet %q not found in template", name)
		}
		out.Sheets = append(out.Sheets, sheet)
	}
	return out, nil
}

func (t *ReportTemplate) sheet(name string) (SheetTemplate, bool) {
	for _, s := range t.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetTemplate{}, false
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:   make(map[string]interface{}),
		sheets: []*SheetBuilder{},
	}
}

// NewDataExporterFromTemplate renders tmpl. The template is only read, so
// one template may back many exporters.
func NewDataExporterFromTemplate(tmpl *ReportTemplate) *DataExporter {
	e := NewDataExporter()
	e.template = tmpl
	return e
}

func NewDataExporterFromYamlConfig(config string) (*DataExporter, error) {
	tmpl, err := LoadTemplate(strings.NewReader(config))
	if err != nil {
		return nil, err
	}
	return NewDataExporterFromTemplate(tmpl), nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{
		exporter: e,
		name:     name,
	}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds rows to a template section ID.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// =============================================================================
// Output
// =============================================================================

// BuildExcel renders the workbook. The caller closes the file.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()
	first := true

	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			return err
		}
		if idx == -1 {
			_, err = f.NewSheet(name)
		}
		return err
	}

	for _, sb := range e.sheets {
		if err := addSheet(sb.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %q: %w", sb.name, err)
		}
		if err := renderSections(f, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, err
		}
	}

	if e.template != nil {
		for _, sheetTmpl := range e.template.Sheets {
			if err := addSheet(sheetTmpl.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("add sheet %q: %w", sheetTmpl.Name, err)
			}

			// Copy so bound data never leaks into the shared template.
			sections := make([]*SectionConfig, len(sheetTmpl.Sections))
			for j := range sheetTmpl.Sections {
				sec := sheetTmpl.Sections[j]
				if data, ok := e.data[sec.ID]; ok {
					sec.Data = data
				}
				sections[j] = &sec
			}

			if err := renderSections(f, sheetTmpl.Name, sections); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// ToBytes exports the workbook to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := e.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the workbook to w.
func (e *DataExporter) WriteTo(w io.Writer) (int64, error) {
	f, err := e.BuildExcel()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(w)
}

// =============================================================================
// Rendering Logic
// =============================================================================

func renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	nextRow := 1
	styles := newStyleCache(f)

	for _, sec := range sections {
		startCol, currentRow := 1, nextRow
		if sec.Position != "" {
			c, r, err := excelize.CellNameToCoordinates(sec.Position)
			if err != nil {
				return fmt.Errorf("section %q: %w", sec.ID, err)
			}
			startCol, currentRow = c, r
		}

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			styleID, err := styles.get(sec.TitleStyle, "")
			if err != nil {
				return err
			}
			endCell := cell
			// Merge title across columns if there are multiple columns
			if len(sec.Columns) > 1 {
				endCell, _ = excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow)
				if err := f.MergeCell(sheet, cell, endCell); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheet, cell, endCell, styleID); err != nil {
				return err
			}
			currentRow++
		}

		if sec.ShowHeader {
			styleID, err := styles.get(sec.HeaderStyle, "")
			if err != nil {
				return err
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(startCol+i, currentRow)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
			}
			currentRow++
		}

		for i, col := range sec.Columns {
			if col.Width > 0 {
				colName, _ := excelize.ColumnNumberToName(startCol + i)
				if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
					return err
				}
			}
		}

		dataVal := reflect.ValueOf(sec.Data)
		if dataVal.Kind() == reflect.Slice {
			for i := 0; i < dataVal.Len(); i++ {
				item := dataVal.Index(i)
				for j, col := range sec.Columns {
					cell, _ := excelize.CoordinatesToCellName(startCol+j, currentRow)
					if err := f.SetCellValue(sheet, cell, extractValue(item, col.FieldName)); err != nil {
						return err
					}
					if col.NumFmt != "" {
						styleID, err := styles.get(nil, col.NumFmt)
						if err != nil {
							return err
						}
						if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
							return err
						}
					}
				}
				currentRow++
			}
		}

		// One blank row between stacked sections
		if currentRow+1 > nextRow {
			nextRow = currentRow + 1
		}
	}

	return nil
}

// extractValue reads a struct field or map key. Pointers are followed and
// nil renders as an empty cell.
func extractValue(item reflect.Value, fieldName string) interface{} {
	item = indirect(item)
	var v reflect.Value
	switch item.Kind() {
	case reflect.Struct:
		v = item.FieldByName(fieldName)
	case reflect.Map:
		if item.Type().Key().Kind() == reflect.String {
			v = item.MapIndex(reflect.ValueOf(fieldName).Convert(item.Type().Key()))
		}
	}
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	return v.Interface()
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// styleCache avoids registering one style per cell.
type styleCache struct {
	f   *excelize.File
	ids map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: map[string]int{}}
}

func (c *styleCache) get(tmpl *StyleTemplate, numFmt string) (int, error) {
	key := fmt.Sprintf("%s|%s", styleKey(tmpl), numFmt)
	if id, ok := c.ids[key]; ok {
		return id, nil
	}
	id, err := createStyle(c.f, tmpl, numFmt)
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	return id, nil
}

func styleKey(tmpl *StyleTemplate) string {
	if tmpl == nil {
		return ""
	}
	var b strings.Builder
	if tmpl.Font != nil {
		fmt.Fprintf(&b, "font:%t:%s;", tmpl.Font.Bold, tmpl.Font.Color)
	}
	if tmpl.Fill != nil {
		fmt.Fprintf(&b, "fill:%s;", tmpl.Fill.Color)
	}
	return b.String()
}

func createStyle(f *excelize.File, tmpl *StyleTemplate, numFmt string) (int, error) {
	style := &excelize.Style{}
	if tmpl != nil && tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl != nil && tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if numFmt != "" {
		style.CustomNumFmt = &numFmt
	}
	return f.NewStyle(style)
}
