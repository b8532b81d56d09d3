package artifact

import (
	"math"
	"slices"

	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
)

// PreprocessorFormat identifies the preprocessor document layout.
const PreprocessorFormat = "column-transformer/v1"

// PreprocessorDoc is the on-disk form of the fitted column transformer.
// Sparse records that the transformer's output fell under its
// sparse_threshold, so the classifier saw a CSR matrix in which zero
// entries are absent rather than stored.
type PreprocessorDoc struct {
	Format      string         `json:"format"`
	Sparse      bool           `json:"sparse,omitempty"`
	Numeric     NumericScaler  `json:"numeric"`
	Categorical []OneHotColumn `json:"categorical"`
}

// NumericScaler holds the fitted StandardScaler parameters: x' = (x - mean) / scale.
type NumericScaler struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Scale  float64 `json:"scale"`
}

// OneHotColumn holds the categories a OneHotEncoder learned for one column.
// Categories absent from the list encode to all zeros.
type OneHotColumn struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
}

// Preprocessor turns a feature record into the vector the classifier was
// trained on: the scaled numeric value followed by each one-hot block. In
// sparse mode zero entries are NaN, which tree evaluation routes as missing.
type Preprocessor struct {
	mean    float64
	scale   float64
	sparse  bool
	offsets []map[string]int
	width   int
}

// LoadPreprocessor reads and compiles the preprocessor artifact at path.
func LoadPreprocessor(path string) (*Preprocessor, error) {
	var doc PreprocessorDoc
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return compilePreprocessor(path, doc)
}

func compilePreprocessor(path string, doc PreprocessorDoc) (*Preprocessor, error) {
	if doc.Format != PreprocessorFormat {
		return nil, notInvocable(path, "unsupported format %q", doc.Format)
	}
	if doc.Numeric.Column != domain.ColumnAssessedValue {
		return nil, notInvocable(path, "numeric column %q, want %q", doc.Numeric.Column, domain.ColumnAssessedValue)
	}
	if doc.Numeric.Scale == 0 {
		return nil, corrupt(path, "numeric scale is zero")
	}

	columns := make([]string, len(doc.Categorical))
	for i, c := range doc.Categorical {
		columns[i] = c.Column
	}
	if !slices.Equal(columns, domain.Columns[1:]) {
		return nil, notInvocable(path, "categorical columns %q do not match the feature record", columns)
	}

	p := &Preprocessor{
		mean:    doc.Numeric.Mean,
		scale:   doc.Numeric.Scale,
		sparse:  doc.Sparse,
		offsets: make([]map[string]int, len(doc.Categorical)),
		width:   1,
	}
	for i, c := range doc.Categorical {
		if len(c.Categories) == 0 {
			return nil, corrupt(path, "column %q has no categories", c.Column)
		}
		idx := make(map[string]int, len(c.Categories))
		for _, cat := range c.Categories {
			if _, dup := idx[cat]; dup {
				return nil, corrupt(path, "column %q repeats category %q", c.Column, cat)
			}
			idx[cat] = p.width
			p.width++
		}
		p.offsets[i] = idx
	}
	return p, nil
}

// Width is the length of every vector Transform returns.
func (p *Preprocessor) Width() int { return p.width }

// Transform encodes rec. It never fails: categories the encoder did not see
// during fitting leave their block empty.
func (p *Preprocessor) Transform(rec domain.FeatureRecord) []float32 {
	x := make([]float32, p.width)
	if p.sparse {
		nan := float32(math.NaN())
		for i := range x {
			x[i] = nan
		}
	}
	if v := float32((float64(rec.AssessedValue) - p.mean) / p.scale); v != 0 || !p.sparse {
		x[0] = v
	}
	for i, v := range rec.Categorical() {
		if j, ok := p.offsets[i][v]; ok {
			x[j] = 1
		}
	}
	return x
}
