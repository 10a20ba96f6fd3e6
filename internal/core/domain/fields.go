// internal/core/domain/fields.go
package domain

// Field is the external (camelCase) name of an editable motorcycle attribute
type Field string

// Editable fields
const (
	FieldBrand        Field = "brand"
	FieldModel        Field = "model"
	FieldYear         Field = "year"
	FieldColor        Field = "color"
	FieldTransmission Field = "transmission"
	FieldFuel         Field = "fuel"
	FieldStartType    Field = "startType"
	FieldPlateEnd     Field = "plateEnd"
	FieldKm           Field = "km"
	FieldPrice        Field = "price"
	FieldDisplacement Field = "displacement"
	FieldImages       Field = "images"
	FieldObservations Field = "observations"
)

// fieldTable is the single source of truth between form fields and columns.
// sold and display_order are managed by dedicated operations and never
// appear here.
var fieldTable = []struct {
	field  Field
	column string
}{
	{FieldBrand, "brand"},
	{FieldModel, "model"},
	{FieldYear, "year"},
	{FieldColor, "color"},
	{FieldTransmission, "transmission"},
	{FieldFuel, "fuel"},
	{FieldStartType, "start_type"},
	{FieldPlateEnd, "plate_end"},
	{FieldKm, "km"},
	{FieldPrice, "price"},
	{FieldDisplacement, "displacement"},
	{FieldImages, "images"},
	{FieldObservations, "observations"},
}

// EditableFields lists the form fields in table order
func EditableFields() []Field {
	out := make([]Field, len(fieldTable))
	for i, fc := range fieldTable {
		out[i] = fc.field
	}
	return out
}

// ColumnFor returns the stored column for a field
func ColumnFor(f Field) (string, bool) {
	for _, fc := range fieldTable {
		if fc.field == f {
			return fc.column, true
		}
	}
	return "", false
}

// FieldFor returns the field stored in a column
func FieldFor(column string) (Field, bool) {
	for _, fc := range fieldTable {
		if fc.column == column {
			return fc.field, true
		}
	}
	return "", false
}
