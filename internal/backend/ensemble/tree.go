package ensemble

// Node is one node of a binary decision tree. Leaves have a negative Feature.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     []float64
}

// Leaf reports whether n terminates a path.
func (n Node) Leaf() bool {
	return n.Feature < 0
}

// Tree is a decision tree stored as a flat node list rooted at index 0.
// Samples go left when x[Feature] <= Threshold.
type Tree struct {
	Nodes []Node
}

// NewStump returns a depth-one regression tree.
func NewStump(feature int, threshold, left, right float64) *Tree {
	return &Tree{Nodes: []Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Feature: -1, Value: []float64{left}},
		{Feature: -1, Value: []float64{right}},
	}}
}

// Predict returns the leaf value reached by x.
func (t *Tree) Predict(x []float64) []float64 {
	i := 0
	// Bounded by the node count so a malformed cycle cannot spin forever.
	for range len(t.Nodes) {
		n := t.Nodes[i]
		if n.Leaf() {
			return n.Value
		}
		if n.Feature < len(x) && x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return nil
}

// validate checks child indices and leaf widths.
func (t *Tree) validate(width int) bool {
	if len(t.Nodes) == 0 {
		return false
	}
	for _, n := range t.Nodes {
		if n.Leaf() {
			if len(n.Value) != width {
				return false
			}
			continue
		}
		if n.Left <= 0 || n.Right <= 0 || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return false
		}
	}
	return true
}
