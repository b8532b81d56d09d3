package artifact

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
)

// Demo artifacts are a hand-built stand-in for the trained pipeline, used by
// cmd/genartifact and the tests. They exercise every stage of loading and
// evaluation but carry no real signal: one stump per class keyed on the
// roof, the siding and the assessed value.
const (
	demoMean  = 350_000
	demoScale = 420_000
)

// DemoPreprocessor returns a fitted column transformer over the full
// domains, with categories sorted as scikit-learn's OneHotEncoder does. Like
// the trained pipeline its output is sparse.
func DemoPreprocessor() PreprocessorDoc {
	doc := PreprocessorDoc{
		Format:  PreprocessorFormat,
		Sparse:  true,
		Numeric: NumericScaler{Column: domain.ColumnAssessedValue, Mean: demoMean, Scale: demoScale},
	}
	for _, f := range domain.CategoricalFields {
		cats := slices.Clone(f.Options)
		slices.Sort(cats)
		doc.Categorical = append(doc.Categorical, OneHotColumn{Column: f.Column, Categories: cats})
	}
	return doc
}

// DemoModel returns a five-class softprob ensemble matching DemoPreprocessor.
func DemoModel() ModelDoc {
	pre := DemoPreprocessor()
	width := 1
	for _, c := range pre.Categorical {
		width += len(c.Categories)
	}
	roofWood := demoFeature(pre, domain.ColumnRoofConstruction, string(domain.RoofWood))
	roofTile := demoFeature(pre, domain.ColumnRoofConstruction, string(domain.RoofTile))
	sidingWood := demoFeature(pre, domain.ColumnExteriorSiding, string(domain.SidingWood))

	labels := domain.DamageLabels()
	names := make([]string, len(labels))
	for code := range names {
		names[code] = labels[code].Text
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		panic("demo: encode class names: " + err.Error())
	}

	return ModelDoc{
		Version: []int{2, 0, 3},
		Learner: LearnerDoc{
			Attributes: map[string]string{LabelsAttribute: string(encoded)},
			GradientBooster: BoosterDoc{
				Name: "gbtree",
				Model: TreeModelDoc{
					Trees: []TreeDoc{
						leafTree(0, 0.3),
						stumpTree(1, roofWood, 0.5, 0.2, 1.5),
						stumpTree(2, sidingWood, 0.5, 0.0, 0.8),
						stumpTree(3, 0, 0, 0.35, 0.05),
						stumpTree(4, roofTile, 0.5, 0.1, 1.0),
					},
					TreeInfo: []int{
						domain.DamageAffected,
						domain.DamageDestroyed,
						domain.DamageMajor,
						domain.DamageMinor,
						domain.DamageNone,
					},
				},
			},
			LearnerModelParam: ModelParamDoc{
				BaseScore:  "5E-1",
				NumClass:   fmt.Sprint(len(names)),
				NumFeature: fmt.Sprint(width),
			},
			Objective: ObjectiveDoc{Name: "multi:softprob"},
		},
	}
}

// WriteDemo writes the demo pair into dir and returns their paths.
func WriteDemo(dir string) (preprocessorPath, modelPath string, err error) {
	preprocessorPath = filepath.Join(dir, "preprocessor.json")
	modelPath = filepath.Join(dir, "xgb_model.json")
	if err := writeJSON(preprocessorPath, DemoPreprocessor()); err != nil {
		return "", "", err
	}
	if err := writeJSON(modelPath, DemoModel()); err != nil {
		return "", "", err
	}
	return preprocessorPath, modelPath, nil
}

func demoFeature(doc PreprocessorDoc, column, value string) int {
	offset := 1
	for _, c := range doc.Categorical {
		if c.Column == column {
			return offset + slices.Index(c.Categories, value)
		}
		offset += len(c.Categories)
	}
	panic("demo: unknown column " + column)
}

func leafTree(id int, value float64) TreeDoc {
	return TreeDoc{
		ID:              id,
		LeftChildren:    []int{-1},
		RightChildren:   []int{-1},
		SplitIndices:    []int{0},
		SplitConditions: []float64{value},
		DefaultLeft:     FlagList{false},
	}
}

// stumpTree sends x[feature] < threshold left, everything else right.
// Missing values go left, where an absent one-hot entry would fall anyway.
func stumpTree(id, feature int, threshold, left, right float64) TreeDoc {
	return TreeDoc{
		ID:              id,
		LeftChildren:    []int{1, -1, -1},
		RightChildren:   []int{2, -1, -1},
		SplitIndices:    []int{feature, 0, 0},
		SplitConditions: []float64{threshold, left, right},
		DefaultLeft:     FlagList{true, false, false},
	}
}
