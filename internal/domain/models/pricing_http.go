package models

// Requests for pricing HTTP endpoints. Defined in domain for consistency and reuse.

type PredictRequest struct {
	BasePrice        float64 `json:"base_price" validate:"required,gt=0"`
	Demand           int     `json:"demand" validate:"min=0"`
	CompetitionPrice float64 `json:"competition_price" validate:"required,gt=0"`
	TimeOfDay        int     `json:"time_of_day" validate:"min=0,max=23"`
	DayOfWeek        int     `json:"day_of_week" validate:"min=0,max=6"`
	Season           int     `json:"season" validate:"min=0,max=3"`
}

type PredictResponse struct {
	Price        float64 `json:"price"`
	ModelTrained string  `json:"model_trained_at"`
}

type TrainRequest struct {
	Count int   `query:"count" json:"count" default:"10000" validate:"gte=100,lte=1000000"`
	Seed  int64 `query:"seed" json:"seed" default:"42"`
}
