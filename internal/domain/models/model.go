package models

import "time"

// TrainMetrics is the evaluation snapshot recorded when a model is trained.
// Metrics are computed on the held-out partition only.
type TrainMetrics struct {
	MSE        float64 `json:"mse"`
	RMSE       float64 `json:"rmse"`
	R2         float64 `json:"r2"`
	TrainRows  int     `json:"train_rows"`
	EvalRows   int     `json:"eval_rows"`
	// Importance maps feature name to normalized split-gain importance,
	// summing to 1 over a trained forest.
	Importance map[string]float64 `json:"importance"`
	TrainedAt  time.Time          `json:"trained_at"`
}

// PipelineReport is the outcome of one full pipeline run:
// generate -> validate -> transform -> train.
type PipelineReport struct {
	Generated  int           `json:"generated"`
	Quality    QualityReport `json:"quality"`
	Features   int           `json:"features"`
	Metrics    TrainMetrics  `json:"metrics"`
	Prices     PriceStats    `json:"prices"`
	ArtifactID string        `json:"artifact_id,omitempty"`
	Duration   time.Duration `json:"duration_ms"`
	FinishedAt time.Time     `json:"finished_at"`
}
