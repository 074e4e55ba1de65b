package pricing

import (
	"math"
	"math/rand"
	"time"

	"PriceCast/internal/domain/models"
)

// TrainedModel is an immutable, versioned prediction artifact: a fitted
// forest plus the feature schema and metric snapshot it was trained with.
// Values are never mutated after training; retraining produces a new one.
type TrainedModel struct {
	Version      int                 `json:"version"`
	FeatureOrder []string            `json:"feature_order"`
	TrainedAt    time.Time           `json:"trained_at"`
	Metrics      models.TrainMetrics `json:"metrics"`
	Trees        []regressionTree    `json:"trees"`
	// Clamp bounds are multiples of base_price (feature 0) applied to every
	// prediction. This is a policy guard against extrapolation artifacts,
	// not a numerical necessity.
	ClampLow  float64 `json:"clamp_low"`
	ClampHigh float64 `json:"clamp_high"`
}

// Predict returns the clamped mean of all tree outputs for one vector.
// It never attempts a prediction on a mismatched schema.
func (m *TrainedModel) Predict(fv models.FeatureVector) (float64, error) {
	if len(fv.Values) != len(m.FeatureOrder) {
		return 0, &FeatureSchemaMismatchError{Want: len(m.FeatureOrder), Got: len(fv.Values)}
	}
	sum := 0.0
	for i := range m.Trees {
		sum += m.Trees[i].predict(fv.Values)
	}
	price := sum / float64(len(m.Trees))

	base := fv.Values[0]
	price = math.Min(math.Max(price, m.ClampLow*base), m.ClampHigh*base)
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, &TrainingError{Reason: "prediction not finite-positive"}
	}
	return price, nil
}

// TrainerConfig holds forest hyperparameters and the split policy.
type TrainerConfig struct {
	Trees     int
	MaxDepth  int
	MinLeaf   int
	EvalRatio float64
	Seed      int64
	ClampLow  float64
	ClampHigh float64
}

// Trainer fits bagged regression trees over labeled feature vectors.
type Trainer struct {
	cfg          TrainerConfig
	featureOrder []string
}

func NewTrainer(cfg TrainerConfig, featureOrder []string) *Trainer {
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 5
	}
	if cfg.EvalRatio <= 0 || cfg.EvalRatio >= 1 {
		cfg.EvalRatio = 0.2
	}
	if cfg.ClampLow <= 0 {
		cfg.ClampLow = 0.3
	}
	if cfg.ClampHigh <= cfg.ClampLow {
		cfg.ClampHigh = 3.0
	}
	return &Trainer{cfg: cfg, featureOrder: featureOrder}
}

// Train splits the labeled set deterministically by seed, fits the forest on
// the training partition, and evaluates on the held-out one. The metric
// snapshot describes only held-out performance.
func (t *Trainer) Train(vectors []models.FeatureVector) (*TrainedModel, models.TrainMetrics, error) {
	var metrics models.TrainMetrics

	x := make([][]float64, 0, len(vectors))
	y := make([]float64, 0, len(vectors))
	for _, fv := range vectors {
		if !fv.Labeled {
			continue
		}
		if len(fv.Values) != len(t.featureOrder) {
			return nil, metrics, &FeatureSchemaMismatchError{Want: len(t.featureOrder), Got: len(fv.Values)}
		}
		x = append(x, fv.Values)
		y = append(y, fv.Label)
	}

	numFeatures := len(t.featureOrder)
	if len(x) < 2*numFeatures {
		return nil, metrics, &TrainingError{Reason: "labeled set below minimum viable size"}
	}
	if variance(y) == 0 {
		return nil, metrics, &TrainingError{Reason: "label column has zero variance"}
	}

	// Seeded shuffle split: same seed, same partition.
	rng := rand.New(rand.NewSource(t.cfg.Seed))
	perm := rng.Perm(len(x))
	evalN := int(math.Round(float64(len(x)) * t.cfg.EvalRatio))
	if evalN < 1 {
		evalN = 1
	}
	evalIdx := perm[:evalN]
	trainIdx := perm[evalN:]

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]float64, len(trainIdx))
	for i, p := range trainIdx {
		trainX[i] = x[p]
		trainY[i] = y[p]
	}

	featuresPerSplit := numFeatures / 3
	if featuresPerSplit < 1 {
		featuresPerSplit = 1
	}
	params := treeParams{
		maxDepth:         t.cfg.MaxDepth,
		minLeaf:          t.cfg.MinLeaf,
		featuresPerSplit: featuresPerSplit,
	}

	gains := make([]float64, numFeatures)
	trees := make([]regressionTree, t.cfg.Trees)
	all := make([]int, len(trainX))
	for i := range all {
		all[i] = i
	}
	for k := 0; k < t.cfg.Trees; k++ {
		treeRng := rand.New(rand.NewSource(t.cfg.Seed + int64(k) + 1))
		boot := make([]int, len(all))
		for i := range boot {
			boot[i] = treeRng.Intn(len(all))
		}
		trees[k] = growTree(trainX, trainY, boot, params, treeRng, gains)
	}

	model := &TrainedModel{
		Version:      1,
		FeatureOrder: append([]string(nil), t.featureOrder...),
		TrainedAt:    time.Now().UTC(),
		Trees:        trees,
		ClampLow:     t.cfg.ClampLow,
		ClampHigh:    t.cfg.ClampHigh,
	}

	metrics = t.evaluate(model, x, y, evalIdx)
	metrics.TrainRows = len(trainIdx)
	metrics.EvalRows = len(evalIdx)
	metrics.Importance = normalizeImportance(t.featureOrder, gains)
	metrics.TrainedAt = model.TrainedAt
	model.Metrics = metrics

	return model, metrics, nil
}

func (t *Trainer) evaluate(m *TrainedModel, x [][]float64, y []float64, evalIdx []int) models.TrainMetrics {
	var metrics models.TrainMetrics

	sumSq := 0.0
	mean := 0.0
	for _, i := range evalIdx {
		mean += y[i]
	}
	mean /= float64(len(evalIdx))

	ssTot := 0.0
	for _, i := range evalIdx {
		pred, err := m.Predict(models.FeatureVector{Values: x[i]})
		if err != nil {
			pred = 0
		}
		d := y[i] - pred
		sumSq += d * d
		ssTot += (y[i] - mean) * (y[i] - mean)
	}

	metrics.MSE = sumSq / float64(len(evalIdx))
	metrics.RMSE = math.Sqrt(metrics.MSE)
	if ssTot > 0 {
		metrics.R2 = 1 - sumSq/ssTot
	}
	return metrics
}

func variance(y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	sum, sum2 := 0.0, 0.0
	for _, v := range y {
		sum += v
		sum2 += v * v
	}
	n := float64(len(y))
	mean := sum / n
	v := (sum2 - n*mean*mean) / (n - 1)
	if v < 0 {
		v = 0
	}
	return v
}

func normalizeImportance(names []string, gains []float64) map[string]float64 {
	total := 0.0
	for _, g := range gains {
		total += g
	}
	out := make(map[string]float64, len(names))
	for i, name := range names {
		if total > 0 {
			out[name] = gains[i] / total
		} else {
			out[name] = 0
		}
	}
	return out
}
