// Command genartifact writes a demo preprocessor and classifier pair that
// the predictor can load. The demo model has the shape of the trained
// pipeline (five damage classes over the one-hot encoded feature record)
// but its trees are hand-built, so its predictions are for local runs and
// smoke tests only.
//
// Usage:
//
//	go run ./cmd/genartifact -out-dir .
//	PREPROCESSOR_PATH=preprocessor.json MODEL_PATH=xgb_model.json go run ./cmd/predictor
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/wildfire-damage-predictor/internal/artifact"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", ".", "directory to write preprocessor.json and xgb_model.json into")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *outDir, err)
	}

	pre, model, err := artifact.WriteDemo(*outDir)
	if err != nil {
		return err
	}

	// Round-trip through the loader so a broken demo never reaches disk unnoticed.
	p, err := artifact.Load(pre, model)
	if err != nil {
		return fmt.Errorf("verify demo artifacts: %w", err)
	}

	info := p.Info()
	log.Printf("wrote %s", pre)
	log.Printf("wrote %s (%s, %d classes, %d features, %d trees)", model, info.Objective, info.Classes, info.Features, info.Trees)
	return nil
}
