package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"strconv"

	"github.com/couchcryptid/wildfire-damage-predictor/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const (
	pageTitle    = "Wildfire Damage Prediction"
	maxFormBytes = 64 << 10
)

// Submitter assembles and predicts one record from raw form values.
type Submitter interface {
	Submit(ctx context.Context, lookup func(key string) string) (domain.Prediction, error)
}

type pageData struct {
	Title   string
	Numeric numericField
	Selects []selectField
	Result  *domain.Result
	Error   string
}

type numericField struct {
	Key, Label     string
	Min, Max, Step int
	Value          string
}

type selectField struct {
	Key, Label string
	Options    []option
}

type option struct {
	Value    string
	Selected bool
}

// newPage builds the form with every control set from lookup. Submitted
// values outside a domain fall back to its default so the form stays valid.
func newPage(lookup func(key string) string) pageData {
	p := pageData{
		Title: pageTitle,
		Numeric: numericField{
			Key:   domain.AssessedValueKey,
			Label: domain.ColumnAssessedValue,
			Min:   domain.MinAssessedValue,
			Max:   domain.MaxAssessedValue,
			Step:  domain.AssessedValueStep,
			Value: lookup(domain.AssessedValueKey),
		},
	}
	for _, f := range domain.CategoricalFields {
		current := lookup(f.Key)
		if !slices.Contains(f.Options, current) {
			current = f.Default()
		}
		sf := selectField{Key: f.Key, Label: f.Column, Options: make([]option, len(f.Options))}
		for i, o := range f.Options {
			sf.Options[i] = option{Value: o, Selected: o == current}
		}
		p.Selects = append(p.Selects, sf)
	}
	return p
}

// defaultLookup yields the values of domain.DefaultRecord by form key.
func defaultLookup(key string) string {
	rec := domain.DefaultRecord()
	if key == domain.AssessedValueKey {
		return strconv.Itoa(rec.AssessedValue)
	}
	for i, f := range domain.CategoricalFields {
		if f.Key == key {
			return rec.Categorical()[i]
		}
	}
	return ""
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, newPage(defaultLookup))
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		page := newPage(defaultLookup)
		page.Error = "Could not read the submitted form: " + err.Error()
		s.render(w, http.StatusBadRequest, page)
		return
	}

	page := newPage(r.PostForm.Get)
	pred, err := s.predictor.Submit(r.Context(), r.PostForm.Get)
	if err != nil {
		status := http.StatusInternalServerError
		page.Error = "Error during prediction: " + err.Error()
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			status = http.StatusUnprocessableEntity
			page.Error = "Invalid input: " + fe.Error()
		}
		s.render(w, status, page)
		return
	}

	page.Result = &pred.Result
	s.render(w, http.StatusOK, page)
}

func (s *Server) render(w http.ResponseWriter, status int, page pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("render page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
