package ensemble

import (
	"errors"
	"fmt"
	"math"

	"github.com/ekisa-team/plantx/internal/mapsafe"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Form is the structural shape of a decoded artifact.
type Form int

const (
	// FormInvalid is neither a tree ensemble nor a weight list.
	FormInvalid Form = iota
	// FormEnsemble carries its own trees and can predict directly.
	FormEnsemble
	// FormRawWeights is per-estimator weights without the estimators.
	FormRawWeights
)

func (f Form) String() string {
	switch f {
	case FormEnsemble:
		return "ensemble"
	case FormRawWeights:
		return "raw_weights"
	default:
		return "invalid"
	}
}

// ParseValue reads a google.protobuf.Value artifact. The binary wire format is
// tried first, then protojson text.
func ParseValue(data []byte) (*structpb.Value, error) {
	v := &structpb.Value{}
	binErr := proto.Unmarshal(data, v)
	if binErr == nil && v.GetKind() != nil {
		return v, nil
	}

	v = &structpb.Value{}
	jsonErr := protojson.Unmarshal(data, v)
	if jsonErr == nil && v.GetKind() != nil {
		return v, nil
	}

	if binErr == nil {
		binErr = errors.New("empty value")
	}
	if jsonErr == nil {
		jsonErr = errors.New("empty value")
	}
	return nil, fmt.Errorf("%w: binary: %w; json: %w", ErrInvalidArtifact, binErr, jsonErr)
}

// Classify reports the structural form of an artifact.
func Classify(v *structpb.Value) Form {
	switch v.GetKind().(type) {
	case *structpb.Value_ListValue:
		if _, ok := mapsafe.Floats(v.AsInterface()); ok && len(v.GetListValue().GetValues()) > 0 {
			return FormRawWeights
		}
	case *structpb.Value_StructValue:
		fields := v.GetStructValue().GetFields()
		if _, ok := fields["trees"]; ok {
			return FormEnsemble
		}
		if _, ok := fields["estimator_weights"]; ok && len(fields) == 1 {
			return FormRawWeights
		}
	}
	return FormInvalid
}

// Weights extracts the per-estimator weights of a raw-weights artifact.
func Weights(v *structpb.Value) ([]float64, error) {
	raw := v.AsInterface()
	if m, ok := raw.(map[string]any); ok {
		raw = m["estimator_weights"]
	}
	w, ok := mapsafe.Floats(raw)
	if !ok || len(w) == 0 {
		return nil, fmt.Errorf("%w: estimator weights must be a non-empty number list", ErrInvalidArtifact)
	}
	return w, nil
}

// FromValue builds an ensemble from a struct artifact:
//
//	{
//	  "task": "regression" | "classification",
//	  "aggregation": "sum" | "mean",
//	  "learning_rate": 0.1,
//	  "init": 0.0 | [..],
//	  "n_features": 9,
//	  "classes": [..],
//	  "estimator_weights": [..],
//	  "trees": [{"nodes": [{"feature": 0, "threshold": 1.5, "left": 1, "right": 2}, {"feature": -1, "value": 3.2}, ..]}]
//	}
func FromValue(v *structpb.Value) (*Ensemble, error) {
	m, ok := v.AsInterface().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is not a struct", ErrInvalidArtifact)
	}

	e := &Ensemble{
		Task:         Task(mapsafe.Get(m, "task", string(TaskRegression))),
		Aggregation:  Aggregation(mapsafe.Get(m, "aggregation", string(AggregateSum))),
		LearningRate: mapsafe.Get(m, "learning_rate", 1.0),
		NumFeatures:  mapsafe.Get(m, "n_features", 0),
	}

	switch init := m["init"].(type) {
	case nil:
	case float64:
		e.Init = []float64{init}
	default:
		vals, ok := mapsafe.Floats(init)
		if !ok {
			return nil, fmt.Errorf("%w: init must be a number or number list", ErrInvalidArtifact)
		}
		e.Init = vals
	}

	if classes, ok := m["classes"].([]any); ok {
		for _, c := range classes {
			e.Classes = append(e.Classes, fmt.Sprint(c))
		}
	}
	if e.Init == nil {
		width := max(len(e.Classes), 1)
		if e.Task == TaskClassification && width == 2 {
			width = 1
		}
		e.Init = make([]float64, width)
	}

	trees, ok := m["trees"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: trees must be a list", ErrInvalidArtifact)
	}
	for i, raw := range trees {
		t, err := treeFromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		e.Trees = append(e.Trees, t)
	}

	if w, present := m["estimator_weights"]; present {
		weights, ok := mapsafe.Floats(w)
		if !ok {
			return nil, fmt.Errorf("%w: estimator_weights must be a number list", ErrInvalidArtifact)
		}
		e.Weights = weights
	} else {
		e.Weights = make([]float64, len(e.Trees))
		for i := range e.Weights {
			e.Weights[i] = 1
		}
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func treeFromAny(raw any) (*Tree, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: tree is not a struct", ErrInvalidArtifact)
	}
	nodes, ok := obj["nodes"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: nodes must be a list", ErrInvalidArtifact)
	}

	t := &Tree{Nodes: make([]Node, 0, len(nodes))}
	for _, rn := range nodes {
		nm, ok := rn.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: node is not a struct", ErrInvalidArtifact)
		}
		n := Node{
			Feature:   mapsafe.Get(nm, "feature", -1),
			Threshold: mapsafe.Get(nm, "threshold", math.Inf(1)),
			Left:      mapsafe.Get(nm, "left", -1),
			Right:     mapsafe.Get(nm, "right", -1),
		}
		switch val := nm["value"].(type) {
		case nil:
		case float64:
			n.Value = []float64{val}
		default:
			vals, ok := mapsafe.Floats(val)
			if !ok {
				return nil, fmt.Errorf("%w: node value must be a number or number list", ErrInvalidArtifact)
			}
			n.Value = vals
		}
		t.Nodes = append(t.Nodes, n)
	}
	return t, nil
}

// ToValue encodes e in the artifact layout read by FromValue.
func ToValue(e *Ensemble) (*structpb.Value, error) {
	trees := make([]any, len(e.Trees))
	for i, t := range e.Trees {
		nodes := make([]any, len(t.Nodes))
		for j, n := range t.Nodes {
			node := map[string]any{"feature": n.Feature}
			if n.Leaf() {
				node["value"] = floatsToAny(n.Value)
			} else {
				node["threshold"] = n.Threshold
				node["left"] = n.Left
				node["right"] = n.Right
			}
			nodes[j] = node
		}
		trees[i] = map[string]any{"nodes": nodes}
	}

	m := map[string]any{
		"task":              string(e.Task),
		"aggregation":       string(e.Aggregation),
		"learning_rate":     e.LearningRate,
		"init":              floatsToAny(e.Init),
		"n_features":        e.NumFeatures,
		"estimator_weights": floatsToAny(e.Weights),
		"trees":             trees,
	}
	if len(e.Classes) > 0 {
		classes := make([]any, len(e.Classes))
		for i, c := range e.Classes {
			classes[i] = c
		}
		m["classes"] = classes
	}
	return structpb.NewValue(m)
}

func floatsToAny(v []float64) []any {
	out := make([]any, len(v))
	for i, x := range v {
		out[i] = x
	}
	return out
}
