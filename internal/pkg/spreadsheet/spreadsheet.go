// Package spreadsheet reads and writes the inventory as an .xlsx workbook.
// Column headers are the external form field names, so an exported sheet
// can be edited and imported back.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/wsvendas/motostock/internal/core/domain"
)

// SheetName is the worksheet written by Write and read by Read
const SheetName = "Motos"

// imageSeparator joins photo URLs inside a single cell
const imageSeparator = "\n"

// extra columns exported after the editable fields
const (
	headerID           = "id"
	headerSold         = "sold"
	headerDisplayOrder = "displayOrder"
)

// Entry is a parsed row and its 1-based position in the sheet
type Entry struct {
	Row  int
	Form domain.MotorcycleForm
}

// RowError describes a spreadsheet row that could not be imported
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Headers returns the header row in column order
func Headers() []string {
	fields := domain.EditableFields()
	out := make([]string, 0, len(fields)+3)
	out = append(out, headerID)
	for _, f := range fields {
		out = append(out, string(f))
	}
	return append(out, headerSold, headerDisplayOrder)
}

// Write renders items as a workbook with one header row
func Write(w io.Writer, items []domain.Motorcycle) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := Headers()
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := cell.GetStyle()
		style.Font.Bold = true
		style.Fill.PatternType = "solid"
		style.Fill.FgColor = "FFCCCCCC"
	}

	for i := range items {
		m := &items[i]
		form := domain.FormFrom(m)
		row := sheet.AddRow()
		row.AddCell().SetString(m.ID.String())
		for _, f := range domain.EditableFields() {
			row.AddCell().SetString(cellValue(&form, f))
		}
		row.AddCell().SetBool(m.Sold)
		row.AddCell().SetInt(m.DisplayOrder)
	}

	for i := range headers {
		sheet.SetColWidth(i+1, i+1, 18)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Read parses a workbook into validated forms. Rows that fail to parse or
// validate are reported in the RowError slice and skipped; blank rows are
// ignored.
func Read(data []byte) ([]Entry, []RowError, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := file.Sheets[0]
	if s, ok := file.Sheet[SheetName]; ok {
		sheet = s
	}

	var (
		columns  map[int]domain.Field
		entries  []Entry
		rowErrs  []RowError
		rowIndex int
	)

	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIndex++
		values := rowValues(r, sheet.MaxCol)

		if columns == nil {
			columns = headerColumns(values)
			if len(columns) == 0 {
				return fmt.Errorf("header row has no known columns")
			}
			return nil
		}
		if blank(values) {
			return nil
		}

		form, err := parseRow(values, columns)
		if err == nil {
			form.Normalize()
			err = form.Validate()
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowIndex, Err: err})
			return nil
		}
		entries = append(entries, Entry{Row: rowIndex, Form: form})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return entries, rowErrs, nil
}

func rowValues(r *xlsx.Row, maxCol int) []string {
	out := make([]string, maxCol)
	for i := 0; i < maxCol; i++ {
		c := r.GetCell(i)
		if c == nil {
			continue
		}
		if v, err := c.FormattedValue(); err == nil {
			out[i] = strings.TrimSpace(v)
		} else {
			out[i] = strings.TrimSpace(c.String())
		}
	}
	return out
}

func headerColumns(values []string) map[int]domain.Field {
	known := make(map[string]domain.Field)
	for _, f := range domain.EditableFields() {
		known[strings.ToLower(string(f))] = f
	}

	cols := make(map[int]domain.Field)
	for i, v := range values {
		if f, ok := known[strings.ToLower(v)]; ok {
			cols[i] = f
		}
	}
	return cols
}

func blank(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

func parseRow(values []string, columns map[int]domain.Field) (domain.MotorcycleForm, error) {
	var form domain.MotorcycleForm
	verr := domain.NewValidationError()

	for i, f := range columns {
		if i >= len(values) {
			continue
		}
		v := values[i]
		switch f {
		case domain.FieldBrand:
			form.Brand = v
		case domain.FieldModel:
			form.Model = v
		case domain.FieldYear:
			form.Year = v
		case domain.FieldColor:
			form.Color = v
		case domain.FieldTransmission:
			form.Transmission = domain.Transmission(v)
		case domain.FieldFuel:
			form.Fuel = domain.Fuel(v)
		case domain.FieldStartType:
			form.StartType = domain.StartType(v)
		case domain.FieldPlateEnd:
			form.PlateEnd = v
		case domain.FieldKm:
			n, err := parseInt(v)
			if err != nil {
				verr.Add(f, "must be a whole number")
			}
			form.Km = n
		case domain.FieldPrice:
			if v == "" {
				continue
			}
			d, err := decimal.NewFromString(strings.TrimPrefix(strings.ReplaceAll(v, " ", ""), "R$"))
			if err != nil {
				verr.Add(f, "must be a number")
			}
			form.Price = d
		case domain.FieldDisplacement:
			n, err := parseInt(v)
			if err != nil {
				verr.Add(f, "must be a whole number")
			}
			form.Displacement = n
		case domain.FieldImages:
			form.Images = strings.Split(v, imageSeparator)
		case domain.FieldObservations:
			form.Observations = v
		}
	}

	if !verr.Empty() {
		return form, verr
	}
	return form, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	// numeric cells may come back as "12500.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return strconv.Atoi(s)
}

func cellValue(form *domain.MotorcycleForm, f domain.Field) string {
	switch f {
	case domain.FieldBrand:
		return form.Brand
	case domain.FieldModel:
		return form.Model
	case domain.FieldYear:
		return form.Year
	case domain.FieldColor:
		return form.Color
	case domain.FieldTransmission:
		return string(form.Transmission)
	case domain.FieldFuel:
		return string(form.Fuel)
	case domain.FieldStartType:
		return string(form.StartType)
	case domain.FieldPlateEnd:
		return form.PlateEnd
	case domain.FieldKm:
		return strconv.Itoa(form.Km)
	case domain.FieldPrice:
		return form.Price.StringFixed(2)
	case domain.FieldDisplacement:
		return strconv.Itoa(form.Displacement)
	case domain.FieldImages:
		return strings.Join(form.Images, imageSeparator)
	case domain.FieldObservations:
		return form.Observations
	}
	return ""
}
