package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Column names as the classifier was trained on them, in record order.
const (
	ColumnAssessedValue     = "Assessed Improved Value (parcel)"
	ColumnStructureCategory = "Structure Category"
	ColumnRoofConstruction  = "Roof Construction"
	ColumnEaves             = "Eaves"
	ColumnVentScreen        = "Vent Screen"
	ColumnExteriorSiding    = "Exterior Siding"
	ColumnWindowPane        = "Window Pane"
	ColumnFenceAttached     = "Fence Attached to Structure"
)

// Columns lists every feature column in the fixed record order.
var Columns = []string{
	ColumnAssessedValue,
	ColumnStructureCategory,
	ColumnRoofConstruction,
	ColumnEaves,
	ColumnVentScreen,
	ColumnExteriorSiding,
	ColumnWindowPane,
	ColumnFenceAttached,
}

// Bounds and defaults of the assessed improved value input.
const (
	MinAssessedValue     = 0
	MaxAssessedValue     = 5_000_000
	AssessedValueStep    = 10_000
	DefaultAssessedValue = 100_000
)

// ErrInvalidRecord is wrapped by every record assembly failure.
var ErrInvalidRecord = errors.New("invalid feature record")

// FieldError reports a single field that could not be assembled into a record.
type FieldError struct {
	Column string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Column, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidRecord }

// FeatureRecord is one labeled row submitted for a single prediction.
type FeatureRecord struct {
	AssessedValue     int
	StructureCategory StructureCategory
	RoofConstruction  RoofConstruction
	Eaves             Eaves
	VentScreen        VentScreen
	ExteriorSiding    ExteriorSiding
	WindowPane        WindowPane
	FenceAttached     FenceAttached
}

// DefaultRecord returns the record the form starts from: the default
// assessed value and the first option of every categorical field.
func DefaultRecord() FeatureRecord {
	return FeatureRecord{
		AssessedValue:     DefaultAssessedValue,
		StructureCategory: StructureCategories[0],
		RoofConstruction:  RoofConstructions[0],
		Eaves:             EavesOptions[0],
		VentScreen:        VentScreens[0],
		ExteriorSiding:    ExteriorSidings[0],
		WindowPane:        WindowPanes[0],
		FenceAttached:     FenceOptions[0],
	}
}

// Categorical returns the seven categorical values in record order.
func (r FeatureRecord) Categorical() []string {
	return []string{
		string(r.StructureCategory),
		string(r.RoofConstruction),
		string(r.Eaves),
		string(r.VentScreen),
		string(r.ExteriorSiding),
		string(r.WindowPane),
		string(r.FenceAttached),
	}
}

// Map returns the record keyed by column name.
func (r FeatureRecord) Map() map[string]any {
	m := map[string]any{ColumnAssessedValue: r.AssessedValue}
	for i, v := range r.Categorical() {
		m[Columns[i+1]] = v
	}
	return m
}

// Validate checks the numeric bounds and that every categorical value
// belongs to its domain.
func (r FeatureRecord) Validate() error {
	if r.AssessedValue < MinAssessedValue || r.AssessedValue > MaxAssessedValue {
		return &FieldError{
			Column: ColumnAssessedValue,
			Value:  strconv.Itoa(r.AssessedValue),
			Reason: fmt.Sprintf("must be between %d and %d", MinAssessedValue, MaxAssessedValue),
		}
	}
	for i, v := range r.Categorical() {
		f := CategoricalFields[i]
		if !slices.Contains(f.Options, v) {
			return &FieldError{Column: f.Column, Value: v, Reason: "not a valid option"}
		}
	}
	return nil
}

// ParseFeatureRecord assembles a record from raw string values looked up by
// field key (see AssessedValueKey and CategoricalFields). Values are
// trimmed; anything outside the bounds or domains is refused.
func ParseFeatureRecord(lookup func(key string) string) (FeatureRecord, error) {
	raw := strings.TrimSpace(lookup(AssessedValueKey))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return FeatureRecord{}, &FieldError{Column: ColumnAssessedValue, Value: raw, Reason: "must be a whole number"}
	}

	values := make([]string, len(CategoricalFields))
	for i, f := range CategoricalFields {
		values[i] = strings.TrimSpace(lookup(f.Key))
	}

	rec := FeatureRecord{
		AssessedValue:     value,
		StructureCategory: StructureCategory(values[0]),
		RoofConstruction:  RoofConstruction(values[1]),
		Eaves:             Eaves(values[2]),
		VentScreen:        VentScreen(values[3]),
		ExteriorSiding:    ExteriorSiding(values[4]),
		WindowPane:        WindowPane(values[5]),
		FenceAttached:     FenceAttached(values[6]),
	}
	if err := rec.Validate(); err != nil {
		return FeatureRecord{}, err
	}
	return rec, nil
}
