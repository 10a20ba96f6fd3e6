// internal/core/domain/motorcycle_test.go
package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsvendas/motostock/internal/core/domain"
)

func validForm() domain.MotorcycleForm {
	return domain.MotorcycleForm{
		Brand:        "Honda",
		Model:        "CG 160 Fan",
		Year:         "2021/2022",
		Color:        "Vermelha",
		Transmission: domain.TransmissionManual,
		Fuel:         domain.FuelFlex,
		StartType:    domain.StartElectric,
		PlateEnd:     "7",
		Km:           12000,
		Price:        decimal.NewFromInt(13900),
		Displacement: 160,
		Images:       []string{"https://cdn.example.com/motos/1.jpg"},
	}
}

func TestResolveImages(t *testing.T) {
	tests := []struct {
		name     string
		images   []string
		legacy   string
		expected []string
	}{
		{
			name:     "images_array_wins",
			images:   []string{"a.jpg", "b.jpg"},
			legacy:   "old.jpg",
			expected: []string{"a.jpg", "b.jpg"},
		},
		{
			name:     "legacy_url_wrapped",
			legacy:   "old.jpg",
			expected: []string{"old.jpg"},
		},
		{
			name:     "empty_array_falls_back_to_legacy",
			images:   []string{},
			legacy:   "old.jpg",
			expected: []string{"old.jpg"},
		},
		{
			name:     "neither_yields_empty",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ResolveImages(tt.images, tt.legacy))
		})
	}
}

func TestMotorcycleForm_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*domain.MotorcycleForm)
		invalidKeys []domain.Field
	}{
		{
			name:   "valid_form",
			mutate: func(f *domain.MotorcycleForm) {},
		},
		{
			name:        "bad_year_format",
			mutate:      func(f *domain.MotorcycleForm) { f.Year = "2021" },
			invalidKeys: []domain.Field{domain.FieldYear},
		},
		{
			name:        "missing_brand_and_model",
			mutate:      func(f *domain.MotorcycleForm) { f.Brand, f.Model = "", "" },
			invalidKeys: []domain.Field{domain.FieldBrand, domain.FieldModel},
		},
		{
			name:        "plate_end_two_digits",
			mutate:      func(f *domain.MotorcycleForm) { f.PlateEnd = "12" },
			invalidKeys: []domain.Field{domain.FieldPlateEnd},
		},
		{
			name:        "unknown_enums",
			mutate:      func(f *domain.MotorcycleForm) { f.Fuel = "Diesel"; f.StartType = "Pedal" },
			invalidKeys: []domain.Field{domain.FieldFuel, domain.FieldStartType},
		},
		{
			name:        "zero_price_negative_km",
			mutate:      func(f *domain.MotorcycleForm) { f.Price = decimal.Zero; f.Km = -1 },
			invalidKeys: []domain.Field{domain.FieldPrice, domain.FieldKm},
		},
		{
			name:        "empty_image_set",
			mutate:      func(f *domain.MotorcycleForm) { f.Images = nil },
			invalidKeys: []domain.Field{domain.FieldImages},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := form.Validate()
			if len(tt.invalidKeys) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Len(t, verr.Fields, len(tt.invalidKeys))
			for _, k := range tt.invalidKeys {
				assert.Contains(t, verr.Fields, k)
			}
		})
	}
}

func TestMotorcycleForm_Normalize(t *testing.T) {
	form := validForm()
	form.Brand = "  Yamaha "
	form.Images = []string{" a.jpg ", "", "  "}

	form.Normalize()

	assert.Equal(t, "Yamaha", form.Brand)
	assert.Equal(t, []string{"a.jpg"}, form.Images)
}

func TestFormFrom_UsesResolvedGallery(t *testing.T) {
	m := &domain.Motorcycle{Brand: "Honda", ImageURL: "legacy.jpg"}
	form := domain.FormFrom(m)
	assert.Equal(t, []string{"legacy.jpg"}, form.Images)
}
