// internal/core/domain/fields_test.go
package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsvendas/motostock/internal/core/domain"
)

func TestFieldTable_RoundTrips(t *testing.T) {
	columns := make(map[string]bool)
	for _, f := range domain.EditableFields() {
		col, ok := domain.ColumnFor(f)
		require.True(t, ok, "field %s has no column", f)
		assert.False(t, columns[col], "column %s mapped twice", col)
		columns[col] = true

		back, ok := domain.FieldFor(col)
		require.True(t, ok)
		assert.Equal(t, f, back)
	}
}

func TestFieldTable_SnakeCaseColumns(t *testing.T) {
	col, _ := domain.ColumnFor(domain.FieldStartType)
	assert.Equal(t, "start_type", col)
	col, _ = domain.ColumnFor(domain.FieldPlateEnd)
	assert.Equal(t, "plate_end", col)
}

func TestFieldTable_ExcludesManagedColumns(t *testing.T) {
	for _, col := range []string{"sold", "display_order", "id", "created_at"} {
		_, ok := domain.FieldFor(col)
		assert.False(t, ok, "%s must not be editable", col)
	}
}

func TestMotorcycleForm_ColumnsCoverEveryField(t *testing.T) {
	form := validForm()
	cols := form.Columns()

	assert.Len(t, cols, len(domain.EditableFields()))
	for _, f := range domain.EditableFields() {
		col, _ := domain.ColumnFor(f)
		assert.Contains(t, cols, col)
	}
	assert.Equal(t, "7", cols["plate_end"])
	assert.Equal(t, "Electric", cols["start_type"])
}
