package artifact

import (
	"context"
	"fmt"

	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
)

// Pipeline chains the preprocessor and the classifier. It is immutable
// after Load and safe for concurrent use.
type Pipeline struct {
	pre   *Preprocessor
	model *Model
}

// Load reads both artifacts and checks that they fit together. Any error is
// fatal to the caller; there is no partial pipeline.
func Load(preprocessorPath, modelPath string) (*Pipeline, error) {
	pre, err := LoadPreprocessor(preprocessorPath)
	if err != nil {
		return nil, fmt.Errorf("load preprocessor: %w", err)
	}
	model, err := LoadModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if pre.Width() != model.NumFeature() {
		return nil, fmt.Errorf("load model: %w", notInvocable(modelPath,
			"model expects %d features, preprocessor produces %d", model.NumFeature(), pre.Width()))
	}
	return &Pipeline{pre: pre, model: model}, nil
}

// Predict encodes rec and returns the classifier's damage code.
func (p *Pipeline) Predict(ctx context.Context, rec domain.FeatureRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.model.Predict(p.pre.Transform(rec))
}

// Info summarizes the loaded pipeline for startup logging.
type Info struct {
	Objective string
	Classes   int
	Features  int
	Trees     int
}

// Info describes the loaded model for startup logging.
func (p *Pipeline) Info() Info {
	return Info{
		Objective: p.model.objective,
		Classes:   p.model.numClass,
		Features:  p.model.numFeature,
		Trees:     len(p.model.trees),
	}
}

// LabelMismatches compares the class names stored in the model, if any,
// against the label table and describes every disagreement. An empty
// result means the table agrees or the model carries no names.
func (p *Pipeline) LabelMismatches(table map[int]domain.DamageLabel) []string {
	var out []string
	for code, name := range p.model.Classes() {
		l, ok := table[code]
		switch {
		case !ok:
			out = append(out, fmt.Sprintf("code %d (%q) has no display label", code, name))
		case l.Text != name:
			out = append(out, fmt.Sprintf("code %d is %q in the model but %q in the label table", code, name, l.Text))
		}
	}
	return out
}
