// Package artifact loads the fitted preprocessor and classifier exported by
// the training job and composes them into a domain.Predictor.
//
// Both artifacts are JSON. The preprocessor is a column transformer
// (standard scaling of the numeric column, one-hot encoding of the
// categorical columns); the classifier is a gradient boosted tree ensemble
// in XGBoost's native JSON model format (Booster.save_model("*.json")).
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Load failures. Every error returned by Load wraps exactly one of these.
var (
	ErrArtifactMissing = errors.New("artifact missing")
	ErrArtifactCorrupt = errors.New("artifact corrupt")
	ErrNotInvocable    = errors.New("artifact cannot predict")
)

// readJSON decodes the file at path into v, classifying failures as
// missing or corrupt.
func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrArtifactMissing)
		}
		return fmt.Errorf("%s: %w: %w", path, ErrArtifactCorrupt, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrArtifactCorrupt, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func corrupt(path, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", path, ErrArtifactCorrupt, fmt.Sprintf(format, args...))
}

func notInvocable(path, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", path, ErrNotInvocable, fmt.Sprintf(format, args...))
}
