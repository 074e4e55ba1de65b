package usecase

import (
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
	"PriceCast/internal/features"
	"PriceCast/internal/pricing"
)

// Predictor serves price recommendations from the current model snapshot.
type Predictor struct {
	transformer *features.Transformer
	modelSvc    *pricing.Service
	metrics     repository.Metrics
}

func NewPredictor(transformer *features.Transformer, modelSvc *pricing.Service, metrics repository.Metrics) *Predictor {
	return &Predictor{transformer: transformer, modelSvc: modelSvc, metrics: metrics}
}

// Predict derives features from one observation and runs the model.
func (p *Predictor) Predict(req models.PredictRequest) (models.PredictResponse, error) {
	var resp models.PredictResponse

	record := models.PricingRecord{
		BasePrice:        req.BasePrice,
		Demand:           req.Demand,
		CompetitionPrice: req.CompetitionPrice,
		TimeOfDay:        req.TimeOfDay,
		DayOfWeek:        req.DayOfWeek,
		Season:           req.Season,
		Timestamp:        time.Now(),
	}
	fv, err := p.transformer.TransformRecord(record)
	if err != nil {
		p.metrics.RecordError("transform")
		return resp, err
	}

	model, err := p.modelSvc.Current()
	if err != nil {
		p.metrics.RecordError("model_state")
		return resp, err
	}
	price, err := model.Predict(fv)
	if err != nil {
		p.metrics.RecordError("predict")
		return resp, err
	}

	p.metrics.RecordPrediction(price)
	resp.Price = price
	resp.ModelTrained = model.TrainedAt.UTC().Format(time.RFC3339)
	return resp, nil
}
