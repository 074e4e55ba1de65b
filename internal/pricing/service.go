package pricing

import (
	"sync/atomic"

	"PriceCast/internal/domain/models"
)

// Service owns the single piece of shared mutable state in the system: the
// currently active model. Copy-on-write: training produces a new
// TrainedModel value and Swap is the only mutation, atomic with respect to
// readers. A reader sees the old model or the new one, never a partial.
type Service struct {
	current atomic.Pointer[TrainedModel]
}

func NewService() *Service { return &Service{} }

// Swap installs a new model. Callers only swap after evaluation metrics are
// recorded (replace-on-success).
func (s *Service) Swap(m *TrainedModel) {
	s.current.Store(m)
}

// Current returns a snapshot reference to the active model.
func (s *Service) Current() (*TrainedModel, error) {
	m := s.current.Load()
	if m == nil {
		return nil, ErrModelNotLoaded
	}
	return m, nil
}

// Predict runs a prediction against the active model snapshot.
func (s *Service) Predict(fv models.FeatureVector) (float64, error) {
	m, err := s.Current()
	if err != nil {
		return 0, err
	}
	return m.Predict(fv)
}
