package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ModelDoc mirrors the subset of XGBoost's JSON model schema needed to
// evaluate a gbtree classifier. Scalar parameters are strings on disk.
type ModelDoc struct {
	Learner LearnerDoc `json:"learner"`
	Version []int      `json:"version"`
}

// LearnerDoc is the learner section: parameters, objective and booster.
type LearnerDoc struct {
	Attributes        map[string]string `json:"attributes"`
	FeatureNames      []string          `json:"feature_names"`
	GradientBooster   BoosterDoc        `json:"gradient_booster"`
	LearnerModelParam ModelParamDoc     `json:"learner_model_param"`
	Objective         ObjectiveDoc      `json:"objective"`
}

// BoosterDoc names the booster and holds its trees.
type BoosterDoc struct {
	Name  string       `json:"name"`
	Model TreeModelDoc `json:"model"`
}

// TreeModelDoc lists the trees and, in tree_info, the class each one scores.
type TreeModelDoc struct {
	Trees    []TreeDoc `json:"trees"`
	TreeInfo []int     `json:"tree_info"`
}

// ModelParamDoc holds the learner-wide model parameters.
type ModelParamDoc struct {
	BaseScore  string `json:"base_score"`
	NumClass   string `json:"num_class"`
	NumFeature string `json:"num_feature"`
}

// ObjectiveDoc names the training objective.
type ObjectiveDoc struct {
	Name string `json:"name"`
}

// TreeDoc is one regression tree in array form. For leaves, LeftChildren is
// -1 and SplitConditions holds the leaf value.
type TreeDoc struct {
	ID              int       `json:"id"`
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     FlagList  `json:"default_left"`
}

// FlagList decodes default_left, which XGBoost writes as booleans in older
// releases and as 0/1 integers in newer ones.
type FlagList []bool

// UnmarshalJSON accepts both encodings.
func (f *FlagList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FlagList, len(raw))
	for i, r := range raw {
		switch s := string(r); s {
		case "true", "1":
			out[i] = true
		case "false", "0":
			out[i] = false
		default:
			return fmt.Errorf("default_left[%d]: unexpected value %s", i, s)
		}
	}
	*f = out
	return nil
}

// LabelsAttribute is the booster attribute under which the training export
// stores the class names, as a JSON array indexed by code.
const LabelsAttribute = "damage_labels"

var supportedObjectives = map[string]bool{
	"multi:softprob": true,
	"multi:softmax":  true,
}

// Model evaluates a multi-class tree ensemble.
type Model struct {
	objective  string
	numClass   int
	numFeature int
	baseScore  []float64
	trees      []tree
	classes    []string
}

type tree struct {
	group   int
	left    []int
	right   []int
	feature []int
	cond    []float64
	defLeft []bool
}

// LoadModel reads and validates the classifier artifact at path.
func LoadModel(path string) (*Model, error) {
	var doc ModelDoc
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return compileModel(path, doc)
}

func compileModel(path string, doc ModelDoc) (*Model, error) {
	l := doc.Learner
	if l.GradientBooster.Name != "gbtree" {
		return nil, notInvocable(path, "unsupported booster %q", l.GradientBooster.Name)
	}
	if !supportedObjectives[l.Objective.Name] {
		return nil, notInvocable(path, "unsupported objective %q", l.Objective.Name)
	}

	numClass, err := strconv.Atoi(l.LearnerModelParam.NumClass)
	if err != nil || numClass < 2 {
		return nil, corrupt(path, "num_class %q", l.LearnerModelParam.NumClass)
	}
	numFeature, err := strconv.Atoi(l.LearnerModelParam.NumFeature)
	if err != nil || numFeature < 1 {
		return nil, corrupt(path, "num_feature %q", l.LearnerModelParam.NumFeature)
	}
	baseScore, err := parseBaseScore(l.LearnerModelParam.BaseScore, numClass)
	if err != nil {
		return nil, corrupt(path, "base_score: %v", err)
	}

	tm := l.GradientBooster.Model
	if len(tm.Trees) == 0 {
		return nil, notInvocable(path, "model has no trees")
	}
	if len(tm.TreeInfo) != len(tm.Trees) {
		return nil, corrupt(path, "tree_info has %d entries for %d trees", len(tm.TreeInfo), len(tm.Trees))
	}

	m := &Model{
		objective:  l.Objective.Name,
		numClass:   numClass,
		numFeature: numFeature,
		baseScore:  baseScore,
		trees:      make([]tree, len(tm.Trees)),
	}
	for i, td := range tm.Trees {
		group := tm.TreeInfo[i]
		if group < 0 || group >= numClass {
			return nil, corrupt(path, "tree %d assigned to class %d of %d", i, group, numClass)
		}
		t, err := compileTree(td, group, numFeature)
		if err != nil {
			return nil, corrupt(path, "tree %d: %v", i, err)
		}
		m.trees[i] = t
	}

	if raw, ok := l.Attributes[LabelsAttribute]; ok {
		if err := json.Unmarshal([]byte(raw), &m.classes); err != nil {
			return nil, corrupt(path, "attribute %s: %v", LabelsAttribute, err)
		}
	}
	return m, nil
}

func compileTree(td TreeDoc, group, numFeature int) (tree, error) {
	n := len(td.LeftChildren)
	if n == 0 {
		return tree{}, fmt.Errorf("no nodes")
	}
	if len(td.RightChildren) != n || len(td.SplitIndices) != n || len(td.SplitConditions) != n || len(td.DefaultLeft) != n {
		return tree{}, fmt.Errorf("node arrays disagree on length %d", n)
	}
	for i := 0; i < n; i++ {
		l, r := td.LeftChildren[i], td.RightChildren[i]
		if l == -1 {
			continue
		}
		// Children are always allocated after their parent; requiring it
		// guarantees traversal terminates.
		if l <= i || r <= i || l >= n || r >= n {
			return tree{}, fmt.Errorf("node %d has invalid children %d, %d", i, l, r)
		}
		if f := td.SplitIndices[i]; f < 0 || f >= numFeature {
			return tree{}, fmt.Errorf("node %d splits on feature %d of %d", i, f, numFeature)
		}
	}
	return tree{
		group:   group,
		left:    td.LeftChildren,
		right:   td.RightChildren,
		feature: td.SplitIndices,
		cond:    td.SplitConditions,
		defLeft: td.DefaultLeft,
	}, nil
}

// parseBaseScore accepts "5E-1" as well as the bracketed vector form
// "[5E-1,5E-1,...]" written by XGBoost 3.
func parseBaseScore(s string, numClass int) ([]float64, error) {
	s = strings.TrimSpace(s)
	out := make([]float64, numClass)
	if s == "" {
		return out, nil
	}
	parts := strings.Split(strings.Trim(s, "[]"), ",")
	if len(parts) != 1 && len(parts) != numClass {
		return nil, fmt.Errorf("%d values for %d classes", len(parts), numClass)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		if len(parts) == 1 {
			for j := range out {
				out[j] = v
			}
			break
		}
		out[i] = v
	}
	return out, nil
}

func (t *tree) leaf(x []float32) float64 {
	n := 0
	for t.left[n] != -1 {
		v := x[t.feature[n]]
		switch {
		case math.IsNaN(float64(v)):
			if t.defLeft[n] {
				n = t.left[n]
			} else {
				n = t.right[n]
			}
		case v < float32(t.cond[n]):
			n = t.left[n]
		default:
			n = t.right[n]
		}
	}
	return t.cond[n]
}

// Margins returns the raw per-class scores for x.
func (m *Model) Margins(x []float32) []float64 {
	out := make([]float64, m.numClass)
	copy(out, m.baseScore)
	for i := range m.trees {
		t := &m.trees[i]
		out[t.group] += t.leaf(x)
	}
	return out
}

// Predict returns the class with the highest margin. Ties go to the lower
// code, matching numpy's argmax.
func (m *Model) Predict(x []float32) (int, error) {
	if len(x) != m.numFeature {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(x), m.numFeature)
	}
	margins := m.Margins(x)
	best := 0
	for c := 1; c < len(margins); c++ {
		if margins[c] > margins[best] {
			best = c
		}
	}
	return best, nil
}

// NumFeature is the input width the model was trained on.
func (m *Model) NumFeature() int { return m.numFeature }

// Classes returns the class names stored with the model, if any.
func (m *Model) Classes() []string { return m.classes }
