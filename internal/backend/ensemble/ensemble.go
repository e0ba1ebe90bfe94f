package ensemble

import (
	"fmt"
	"math"
)

// Task selects how tree outputs are turned into predictions.
type Task string

const (
	TaskRegression     Task = "regression"
	TaskClassification Task = "classification"
)

// Aggregation selects how tree outputs are combined.
type Aggregation string

const (
	// AggregateSum is boosting: init + learning_rate * sum(w_i * tree_i(x)).
	AggregateSum Aggregation = "sum"
	// AggregateMean is bagging or AdaBoost-style voting: sum(w_i * tree_i(x)) / sum(w_i).
	AggregateMean Aggregation = "mean"
)

// Ensemble is a weighted collection of decision trees.
type Ensemble struct {
	Task         Task
	Aggregation  Aggregation
	LearningRate float64
	Init         []float64
	Trees        []*Tree
	Weights      []float64
	NumFeatures  int
	Classes      []string
}

// Width is the number of values each tree leaf carries.
func (e *Ensemble) Width() int {
	if len(e.Init) > 0 {
		return len(e.Init)
	}
	return 1
}

// Validate checks the ensemble is internally consistent.
func (e *Ensemble) Validate() error {
	if len(e.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}
	if len(e.Weights) != len(e.Trees) {
		return fmt.Errorf("%w: %d weights for %d trees", ErrInvalidArtifact, len(e.Weights), len(e.Trees))
	}
	for i, t := range e.Trees {
		if !t.validate(e.Width()) {
			return fmt.Errorf("%w: tree %d is malformed", ErrInvalidArtifact, i)
		}
	}
	switch e.Aggregation {
	case AggregateSum, AggregateMean:
	default:
		return fmt.Errorf("%w: unknown aggregation %q", ErrInvalidArtifact, e.Aggregation)
	}
	switch e.Task {
	case TaskRegression, TaskClassification:
	default:
		return fmt.Errorf("%w: unknown task %q", ErrInvalidArtifact, e.Task)
	}
	return nil
}

// Predict evaluates the ensemble on x. Regression returns one value;
// classification returns one probability per class.
func (e *Ensemble) Predict(x []float64) ([]float64, error) {
	if e.NumFeatures > 0 && len(x) != e.NumFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), e.NumFeatures)
	}

	width := e.Width()
	acc := make([]float64, width)
	var total float64
	for i, t := range e.Trees {
		w := e.Weights[i]
		total += w
		for j, v := range t.Predict(x) {
			acc[j] += w * v
		}
	}

	switch e.Aggregation {
	case AggregateMean:
		if total != 0 {
			for j := range acc {
				acc[j] /= total
			}
		}
	default:
		for j := range acc {
			acc[j] = e.LearningRate * acc[j]
			if j < len(e.Init) {
				acc[j] += e.Init[j]
			}
		}
	}

	if e.Task != TaskClassification {
		return acc, nil
	}
	if e.Aggregation == AggregateMean {
		return normalize(acc), nil
	}
	if width == 1 {
		p := 1 / (1 + math.Exp(-acc[0]))
		return []float64{1 - p, p}, nil
	}
	return Softmax(acc), nil
}

// Softmax maps scores to probabilities.
func Softmax(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}
	peak := scores[0]
	for _, s := range scores[1:] {
		peak = max(peak, s)
	}
	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum <= 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / sum
	}
	return out
}

// Reweight returns a copy of base using weights, one per estimator.
func Reweight(base *Ensemble, weights []float64) (*Ensemble, error) {
	if base == nil || len(base.Trees) == 0 {
		return nil, ErrNoBase
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty weight list", ErrInvalidArtifact)
	}
	if len(weights) > len(base.Trees) {
		return nil, fmt.Errorf("%w: %d weights for %d base estimators", ErrNoBase, len(weights), len(base.Trees))
	}

	out := *base
	out.Trees = base.Trees[:len(weights)]
	out.Weights = append([]float64(nil), weights...)
	return &out, nil
}
