// internal/core/domain/motorcycle.go
package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transmission represents the gearbox type
type Transmission string

// Transmission constants
const (
	TransmissionManual        Transmission = "Manual"
	TransmissionAutomatic     Transmission = "Automatic"
	TransmissionSemiAutomatic Transmission = "Semi-automatic"
)

// Fuel represents the fuel type
type Fuel string

// Fuel constants
const (
	FuelGasoline Fuel = "Gasoline"
	FuelFlex     Fuel = "Flex"
	FuelElectric Fuel = "Electric"
)

// StartType represents how the engine is started
type StartType string

// Start type constants
const (
	StartElectric     StartType = "Electric"
	StartKick         StartType = "Kick"
	StartElectricKick StartType = "Electric+Kick"
)

var (
	yearPattern     = regexp.MustCompile(`^\d{4}/\d{4}$`)
	plateEndPattern = regexp.MustCompile(`^[0-9]$`)
)

// Motorcycle is a single unit of dealership stock
type Motorcycle struct {
	ID           uuid.UUID       `json:"id"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         string          `json:"year"`
	Color        string          `json:"color"`
	Transmission Transmission    `json:"transmission"`
	Fuel         Fuel            `json:"fuel"`
	StartType    StartType       `json:"startType"`
	PlateEnd     string          `json:"plateEnd"`
	Km           int             `json:"km"`
	Price        decimal.Decimal `json:"price"`
	Displacement int             `json:"displacement"`
	Images       []string        `json:"images"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Observations string          `json:"observations,omitempty"`
	Sold         bool            `json:"sold"`
	DisplayOrder int             `json:"displayOrder"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ResolveImages returns the image list shown for a record. Rows written
// before the images column existed only carry a single legacy URL.
func ResolveImages(images []string, legacyURL string) []string {
	if len(images) > 0 {
		return images
	}
	if legacyURL != "" {
		return []string{legacyURL}
	}
	return []string{}
}

// Gallery returns the resolved image list
func (m *Motorcycle) Gallery() []string {
	return ResolveImages(m.Images, m.ImageURL)
}

// Title returns "Brand Model"
func (m *Motorcycle) Title() string {
	return strings.TrimSpace(m.Brand + " " + m.Model)
}

// MotorcycleForm carries the admin-editable values of a motorcycle
type MotorcycleForm struct {
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         string          `json:"year"`
	Color        string          `json:"color"`
	Transmission Transmission    `json:"transmission"`
	Fuel         Fuel            `json:"fuel"`
	StartType    StartType       `json:"startType"`
	PlateEnd     string          `json:"plateEnd"`
	Km           int             `json:"km"`
	Price        decimal.Decimal `json:"price"`
	Displacement int             `json:"displacement"`
	Images       []string        `json:"images"`
	Observations string          `json:"observations"`
}

// Normalize trims free-text values
func (f *MotorcycleForm) Normalize() {
	f.Brand = strings.TrimSpace(f.Brand)
	f.Model = strings.TrimSpace(f.Model)
	f.Year = strings.TrimSpace(f.Year)
	f.Color = strings.TrimSpace(f.Color)
	f.PlateEnd = strings.TrimSpace(f.PlateEnd)
	f.Observations = strings.TrimSpace(f.Observations)

	images := make([]string, 0, len(f.Images))
	for _, img := range f.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	f.Images = images
}

// Validate checks every field and reports all problems at once
func (f *MotorcycleForm) Validate() error {
	verr := NewValidationError()

	if f.Brand == "" {
		verr.Add(FieldBrand, "is required")
	}
	if f.Model == "" {
		verr.Add(FieldModel, "is required")
	}
	if !yearPattern.MatchString(f.Year) {
		verr.Add(FieldYear, "must match YYYY/YYYY")
	}
	if f.Color == "" {
		verr.Add(FieldColor, "is required")
	}
	switch f.Transmission {
	case TransmissionManual, TransmissionAutomatic, TransmissionSemiAutomatic:
	default:
		verr.Add(FieldTransmission, "must be Manual, Automatic or Semi-automatic")
	}
	switch f.Fuel {
	case FuelGasoline, FuelFlex, FuelElectric:
	default:
		verr.Add(FieldFuel, "must be Gasoline, Flex or Electric")
	}
	switch f.StartType {
	case StartElectric, StartKick, StartElectricKick:
	default:
		verr.Add(FieldStartType, "must be Electric, Kick or Electric+Kick")
	}
	if !plateEndPattern.MatchString(f.PlateEnd) {
		verr.Add(FieldPlateEnd, "must be a single digit")
	}
	if f.Km < 0 {
		verr.Add(FieldKm, "cannot be negative")
	}
	if !f.Price.IsPositive() {
		verr.Add(FieldPrice, "must be positive")
	}
	if f.Displacement <= 0 {
		verr.Add(FieldDisplacement, "must be positive")
	}
	if len(f.Images) == 0 {
		verr.Add(FieldImages, "at least one photo is required")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// value returns the form value bound to an editable field
func (f *MotorcycleForm) value(field Field) (any, bool) {
	switch field {
	case FieldBrand:
		return f.Brand, true
	case FieldModel:
		return f.Model, true
	case FieldYear:
		return f.Year, true
	case FieldColor:
		return f.Color, true
	case FieldTransmission:
		return string(f.Transmission), true
	case FieldFuel:
		return string(f.Fuel), true
	case FieldStartType:
		return string(f.StartType), true
	case FieldPlateEnd:
		return f.PlateEnd, true
	case FieldKm:
		return f.Km, true
	case FieldPrice:
		return f.Price, true
	case FieldDisplacement:
		return f.Displacement, true
	case FieldImages:
		if f.Images == nil {
			return []string{}, true
		}
		return f.Images, true
	case FieldObservations:
		return f.Observations, true
	}
	return nil, false
}

// Columns maps the form onto stored column names
func (f *MotorcycleForm) Columns() map[string]any {
	cols := make(map[string]any, len(fieldTable))
	for _, fc := range fieldTable {
		if v, ok := f.value(fc.field); ok {
			cols[fc.column] = v
		}
	}
	return cols
}

// FormFrom copies the editable values of an existing record
func FormFrom(m *Motorcycle) MotorcycleForm {
	return MotorcycleForm{
		Brand:        m.Brand,
		Model:        m.Model,
		Year:         m.Year,
		Color:        m.Color,
		Transmission: m.Transmission,
		Fuel:         m.Fuel,
		StartType:    m.StartType,
		PlateEnd:     m.PlateEnd,
		Km:           m.Km,
		Price:        m.Price,
		Displacement: m.Displacement,
		Images:       m.Gallery(),
		Observations: m.Observations,
	}
}
