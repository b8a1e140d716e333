package models

import (
	"time"

	"github.com/google/uuid"
)

// ForecastFactors is the context payload attached to a forecast.
type ForecastFactors struct {
	Seasonality float64  `json:"seasonality"`
	Trend       float64  `json:"trend"`
	Events      []string `json:"events"`
}

// Forecast is a predicted-vs-actual demand observation for a product on a
// date. Accuracy stays unset until the actual demand is recorded.
type Forecast struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CompanyID       uuid.UUID       `json:"company_id" db:"company_id"`
	ProductID       uuid.UUID       `json:"product_id" db:"product_id"`
	Date            time.Time       `json:"date" db:"date"`
	PredictedDemand int             `json:"predicted_demand" db:"predicted_demand"`
	ActualDemand    *int            `json:"actual_demand" db:"actual_demand"`
	Accuracy        *float64        `json:"accuracy" db:"accuracy"`
	Factors         ForecastFactors `json:"factors" db:"factors"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// ForecastMetrics is the per-company aggregate over all forecasts. Averages
// are nil when the company has no forecasts.
type ForecastMetrics struct {
	AvgAccuracy    *float64 `json:"avg_accuracy"`
	TotalForecasts int      `json:"total_forecasts"`
	AvgDemand      *float64 `json:"avg_demand"`
}
