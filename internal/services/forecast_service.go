package services

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/google/uuid"
)

// historyLimit caps how many recent forecasts a history query returns.
const historyLimit = 30

type ForecastService interface {
	Generate(ctx context.Context, companyID, productID uuid.UUID, date time.Time, predictedDemand *int) (*models.Forecast, error)
	RecordActual(ctx context.Context, companyID, forecastID uuid.UUID, actualDemand int) (*models.Forecast, error)
	History(ctx context.Context, companyID uuid.UUID) ([]*models.Forecast, error)
	Metrics(ctx context.Context, companyID uuid.UUID) (*models.ForecastMetrics, error)
}

type forecastService struct {
	forecastRepo repositories.ForecastRepository
	productRepo  repositories.ProductRepository
}

func NewForecastService(forecastRepo repositories.ForecastRepository, productRepo repositories.ProductRepository) ForecastService {
	return &forecastService{
		forecastRepo: forecastRepo,
		productRepo:  productRepo,
	}
}

// Generate records a forecast for the product. The predicted demand is an
// injected input; when the caller supplies none, a placeholder stands in for
// the demand model (no real model in this service).
func (s *forecastService) Generate(ctx context.Context, companyID, productID uuid.UUID, date time.Time, predictedDemand *int) (*models.Forecast, error) {
	if _, err := s.productRepo.GetByID(ctx, companyID, productID); err != nil {
		return nil, err
	}

	demand := rand.IntN(1000)
	if predictedDemand != nil {
		if err := common.ValidateNonNegativeInt(*predictedDemand, "predicted_demand"); err != nil {
			return nil, err
		}
		demand = *predictedDemand
	}
	if date.IsZero() {
		date = time.Now()
	}

	forecast := &models.Forecast{
		ID:              uuid.New(),
		CompanyID:       companyID,
		ProductID:       productID,
		Date:            date,
		PredictedDemand: demand,
		Factors: models.ForecastFactors{
			Seasonality: 1.2,
			Trend:       0.8,
			Events:      []string{"Holiday Season"},
		},
	}

	if err := s.forecastRepo.Create(ctx, forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

// Accuracy scores how close actual came to predicted, in [0,1]. It is 1 when
// they match and decays to 0 as the relative error grows; the max(predicted, 1)
// divisor keeps a zero prediction from dividing by zero.
func Accuracy(predicted, actual int) float64 {
	divisor := math.Max(float64(predicted), 1)
	accuracy := 1 - math.Abs(float64(predicted)-float64(actual))/divisor
	if accuracy < 0 {
		return 0
	}
	if accuracy > 1 {
		return 1
	}
	return accuracy
}

func (s *forecastService) RecordActual(ctx context.Context, companyID, forecastID uuid.UUID, actualDemand int) (*models.Forecast, error) {
	if err := common.ValidateNonNegativeInt(actualDemand, "actual_demand"); err != nil {
		return nil, err
	}

	forecast, err := s.forecastRepo.GetByID(ctx, companyID, forecastID)
	if err != nil {
		return nil, err
	}

	accuracy := Accuracy(forecast.PredictedDemand, actualDemand)
	return s.forecastRepo.UpdateActual(ctx, companyID, forecastID, actualDemand, accuracy)
}

func (s *forecastService) History(ctx context.Context, companyID uuid.UUID) ([]*models.Forecast, error) {
	return s.forecastRepo.History(ctx, companyID, historyLimit)
}

func (s *forecastService) Metrics(ctx context.Context, companyID uuid.UUID) (*models.ForecastMetrics, error) {
	return s.forecastRepo.Metrics(ctx, companyID)
}
