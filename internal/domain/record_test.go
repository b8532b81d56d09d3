package domain

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formLookup(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func scenarioForm() map[string]string {
	return map[string]string{
		AssessedValueKey:     "500000",
		"structure_category": "Single Residence",
		"roof_construction":  "Tile",
		"eaves":              "Enclosed",
		"vent_screen":        "Screened",
		"exterior_siding":    "Stucco/Brick/Cement",
		"window_pane":        "Multi Pane",
		"fence_attached":     "No Fence",
	}
}

func TestDomainSizes(t *testing.T) {
	sizes := map[string]int{
		ColumnStructureCategory: 7,
		ColumnRoofConstruction:  11,
		ColumnEaves:             6,
		ColumnVentScreen:        10,
		ColumnExteriorSiding:    10,
		ColumnWindowPane:        7,
		ColumnFenceAttached:     4,
	}

	require.Len(t, CategoricalFields, 7)
	for i, f := range CategoricalFields {
		assert.Equal(t, Columns[i+1], f.Column, "field order")
		assert.Len(t, f.Options, sizes[f.Column], f.Column)

		seen := map[string]bool{}
		for _, o := range f.Options {
			assert.False(t, seen[o], "duplicate option %q in %s", o, f.Column)
			seen[o] = true
		}
	}
	assert.Len(t, Columns, 8)
}

func TestDefaultRecord(t *testing.T) {
	rec := DefaultRecord()

	require.NoError(t, rec.Validate())
	assert.Equal(t, 100_000, rec.AssessedValue)
	for i, v := range rec.Categorical() {
		assert.Equal(t, CategoricalFields[i].Default(), v)
	}
}

func TestParseFeatureRecord(t *testing.T) {
	t.Run("scenario record", func(t *testing.T) {
		rec, err := ParseFeatureRecord(formLookup(scenarioForm()))
		require.NoError(t, err)

		want := FeatureRecord{
			AssessedValue:     500_000,
			StructureCategory: StructureSingleResidence,
			RoofConstruction:  RoofTile,
			Eaves:             EavesEnclosed,
			VentScreen:        VentScreened,
			ExteriorSiding:    SidingStuccoSlashed,
			WindowPane:        WindowMultiPane,
			FenceAttached:     FenceNone,
		}
		if diff := cmp.Diff(want, rec); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("boundaries are accepted", func(t *testing.T) {
		for _, v := range []int{MinAssessedValue, MaxAssessedValue} {
			form := scenarioForm()
			form[AssessedValueKey] = strconv.Itoa(v)
			rec, err := ParseFeatureRecord(formLookup(form))
			require.NoError(t, err, v)
			assert.Equal(t, v, rec.AssessedValue)
		}
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		form := scenarioForm()
		form[AssessedValueKey] = " 250000 "
		form["eaves"] = " Enclosed"
		rec, err := ParseFeatureRecord(formLookup(form))
		require.NoError(t, err)
		assert.Equal(t, 250_000, rec.AssessedValue)
		assert.Equal(t, EavesEnclosed, rec.Eaves)
	})

	tests := []struct {
		name   string
		key    string
		value  string
		column string
	}{
		{"below minimum", AssessedValueKey, "-1", ColumnAssessedValue},
		{"above maximum", AssessedValueKey, "5000001", ColumnAssessedValue},
		{"not a number", AssessedValueKey, "lots", ColumnAssessedValue},
		{"fractional", AssessedValueKey, "100000.5", ColumnAssessedValue},
		{"empty number", AssessedValueKey, "", ColumnAssessedValue},
		{"unknown roof", "roof_construction", "Thatch", ColumnRoofConstruction},
		{"missing fence", "fence_attached", "", ColumnFenceAttached},
		{"case mismatch", "window_pane", "multi pane", ColumnWindowPane},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := scenarioForm()
			form[tt.key] = tt.value

			_, err := ParseFeatureRecord(formLookup(form))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecord)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.column, fe.Column)
		})
	}
}

func TestFeatureRecord_Map(t *testing.T) {
	rec, err := ParseFeatureRecord(formLookup(scenarioForm()))
	require.NoError(t, err)

	m := rec.Map()
	assert.Len(t, m, len(Columns))
	assert.Equal(t, 500_000, m[ColumnAssessedValue])
	assert.Equal(t, "Tile", m[ColumnRoofConstruction])
	assert.Equal(t, "No Fence", m[ColumnFenceAttached])
}
