package pricing

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree in flattened form. Leaves have
// Feature == -1 and carry the mean label of their samples in Value.
type treeNode struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v,omitempty"`
}

// regressionTree is a CART-style regression tree grown by variance reduction.
type regressionTree struct {
	Nodes []treeNode `json:"nodes"`
}

// predict walks the tree to a leaf.
func (t *regressionTree) predict(fv []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if fv[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type treeParams struct {
	maxDepth        int
	minLeaf         int
	featuresPerSplit int
}

type treeBuilder struct {
	x      [][]float64
	y      []float64
	params treeParams
	rng    *rand.Rand
	nodes  []treeNode
	// gains accumulates per-feature split gain for importance reporting.
	gains []float64
}

// growTree fits one tree on the given sample indices (a bootstrap draw).
func growTree(x [][]float64, y []float64, samples []int, params treeParams, rng *rand.Rand, gains []float64) regressionTree {
	b := &treeBuilder{x: x, y: y, params: params, rng: rng, gains: gains}
	b.build(samples, 0)
	return regressionTree{Nodes: b.nodes}
}

// build appends the subtree rooted at samples and returns its node index.
func (b *treeBuilder) build(samples []int, depth int) int {
	sum, sum2 := 0.0, 0.0
	for _, i := range samples {
		sum += b.y[i]
		sum2 += b.y[i] * b.y[i]
	}
	n := float64(len(samples))
	mean := sum / n
	sse := sum2 - n*mean*mean

	idx := len(b.nodes)
	if depth >= b.params.maxDepth || len(samples) < 2*b.params.minLeaf || sse <= 1e-12 {
		b.nodes = append(b.nodes, treeNode{Feature: -1, Value: mean})
		return idx
	}

	feature, threshold, gain, ok := b.bestSplit(samples, sse)
	if !ok {
		b.nodes = append(b.nodes, treeNode{Feature: -1, Value: mean})
		return idx
	}
	b.gains[feature] += gain

	left := make([]int, 0, len(samples))
	right := make([]int, 0, len(samples))
	for _, i := range samples {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Placeholder; children indices are filled in after recursion.
	b.nodes = append(b.nodes, treeNode{Feature: feature, Threshold: threshold})
	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[idx].Left = l
	b.nodes[idx].Right = r
	return idx
}

// bestSplit searches a random feature subset for the split that minimizes
// the summed squared error of the two children.
func (b *treeBuilder) bestSplit(samples []int, parentSSE float64) (feature int, threshold, gain float64, ok bool) {
	numFeatures := len(b.x[0])
	candidates := b.rng.Perm(numFeatures)[:b.params.featuresPerSplit]

	bestSSE := parentSSE
	order := make([]int, len(samples))

	for _, f := range candidates {
		copy(order, samples)
		sort.Slice(order, func(i, j int) bool { return b.x[order[i]][f] < b.x[order[j]][f] })

		// Prefix scan: evaluate every boundary between distinct values.
		leftSum, leftSum2 := 0.0, 0.0
		totalSum, totalSum2 := 0.0, 0.0
		for _, i := range order {
			totalSum += b.y[i]
			totalSum2 += b.y[i] * b.y[i]
		}
		n := len(order)
		for pos := 0; pos < n-1; pos++ {
			i := order[pos]
			leftSum += b.y[i]
			leftSum2 += b.y[i] * b.y[i]

			if b.x[order[pos+1]][f] == b.x[i][f] {
				continue
			}
			nl := pos + 1
			nr := n - nl
			if nl < b.params.minLeaf || nr < b.params.minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSum2 := totalSum2 - leftSum2
			sseL := leftSum2 - leftSum*leftSum/float64(nl)
			sseR := rightSum2 - rightSum*rightSum/float64(nr)
			if sseL+sseR < bestSSE {
				bestSSE = sseL + sseR
				feature = f
				threshold = (b.x[i][f] + b.x[order[pos+1]][f]) / 2
				ok = true
			}
		}
	}
	gain = parentSSE - bestSSE
	return feature, threshold, gain, ok
}
