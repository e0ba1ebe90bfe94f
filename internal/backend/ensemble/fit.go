package ensemble

import (
	"fmt"
	"slices"
)

// FitOptions tune FitStumps.
type FitOptions struct {
	Rounds       int
	LearningRate float64
	// Splits caps the candidate thresholds tried per feature.
	Splits int
}

// DefaultFitOptions are used for zero fields.
var DefaultFitOptions = FitOptions{Rounds: 100, LearningRate: 0.1, Splits: 16}

// FitStumps fits a least-squares gradient-boosted ensemble of depth-one trees.
func FitStumps(x [][]float64, y []float64, opts FitOptions) (*Ensemble, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("fit: %d samples for %d targets", len(x), len(y))
	}
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultFitOptions.Rounds
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultFitOptions.LearningRate
	}
	if opts.Splits <= 0 {
		opts.Splits = DefaultFitOptions.Splits
	}

	nf := len(x[0])
	for i, row := range x {
		if len(row) != nf {
			return nil, fmt.Errorf("fit: row %d has %d features, want %d", i, len(row), nf)
		}
	}

	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = mean
	}

	candidates := make([][]float64, nf)
	for f := range nf {
		candidates[f] = thresholds(x, f, opts.Splits)
	}

	e := &Ensemble{
		Task:         TaskRegression,
		Aggregation:  AggregateSum,
		LearningRate: opts.LearningRate,
		Init:         []float64{mean},
		NumFeatures:  nf,
	}

	resid := make([]float64, len(y))
	for range opts.Rounds {
		for i := range y {
			resid[i] = y[i] - pred[i]
		}
		stump, ok := bestStump(x, resid, candidates)
		if !ok {
			break
		}
		for i, row := range x {
			pred[i] += opts.LearningRate * stump.Predict(row)[0]
		}
		e.Trees = append(e.Trees, stump)
		e.Weights = append(e.Weights, 1)
	}

	if len(e.Trees) == 0 {
		// Constant target: a single stump that returns zero keeps the model valid.
		e.Trees = []*Tree{NewStump(0, 0, 0, 0)}
		e.Weights = []float64{1}
	}
	return e, nil
}

// thresholds returns midpoints between evenly spaced order statistics of feature f.
func thresholds(x [][]float64, f, splits int) []float64 {
	vals := make([]float64, len(x))
	for i, row := range x {
		vals[i] = row[f]
	}
	slices.Sort(vals)
	vals = slices.Compact(vals)
	if len(vals) < 2 {
		return nil
	}

	step := max(1, (len(vals)-1)/splits)
	var out []float64
	for i := 0; i+1 < len(vals); i += step {
		out = append(out, (vals[i]+vals[i+1])/2)
	}
	return out
}

func bestStump(x [][]float64, r []float64, candidates [][]float64) (*Tree, bool) {
	var total float64
	for _, v := range r {
		total += v
	}
	n := float64(len(r))

	bestGain := 0.0
	var best *Tree
	for f, ths := range candidates {
		for _, th := range ths {
			var ls, ln float64
			for i, row := range x {
				if row[f] <= th {
					ls += r[i]
					ln++
				}
			}
			rn := n - ln
			if ln == 0 || rn == 0 {
				continue
			}
			rs := total - ls
			// Reduction in squared error relative to a constant fit.
			gain := ls*ls/ln + rs*rs/rn - total*total/n
			if gain > bestGain {
				bestGain = gain
				best = NewStump(f, th, ls/ln, rs/rn)
			}
		}
	}
	return best, best != nil
}
