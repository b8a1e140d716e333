package repositories

import (
	"context"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

type ForecastRepository interface {
	Create(ctx context.Context, forecast *models.Forecast) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Forecast, error)
	UpdateActual(ctx context.Context, companyID, id uuid.UUID, actualDemand int, accuracy float64) (*models.Forecast, error)
	History(ctx context.Context, companyID uuid.UUID, limit int) ([]*models.Forecast, error)
	Metrics(ctx context.Context, companyID uuid.UUID) (*models.ForecastMetrics, error)
}

type forecastRepo struct {
	db Database
}

func NewForecastRepo(db Database) ForecastRepository {
	return &forecastRepo{db: db}
}

const forecastColumns = `id, company_id, product_id, date, predicted_demand, actual_demand, accuracy, factors, created_at, updated_at`

func scanForecast(row interface{ Scan(dest ...any) error }) (*models.Forecast, error) {
	forecast := &models.Forecast{}
	err := row.Scan(&forecast.ID, &forecast.CompanyID, &forecast.ProductID, &forecast.Date, &forecast.PredictedDemand, &forecast.ActualDemand, &forecast.Accuracy, &forecast.Factors, &forecast.CreatedAt, &forecast.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return forecast, nil
}

func (r *forecastRepo) Create(ctx context.Context, forecast *models.Forecast) error {
	query := `
		INSERT INTO forecasts (id, company_id, product_id, date, predicted_demand, actual_demand, accuracy, factors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, forecast.ID, forecast.CompanyID, forecast.ProductID, forecast.Date, forecast.PredictedDemand, forecast.ActualDemand, forecast.Accuracy, forecast.Factors)
	return common.FromDatabase(err, "forecast")
}

func (r *forecastRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Forecast, error) {
	query := `
		SELECT ` + forecastColumns + `
		FROM forecasts
		WHERE company_id = $1 AND id = $2
	`
	forecast, err := scanForecast(r.db.QueryRow(ctx, query, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "forecast")
	}
	return forecast, nil
}

func (r *forecastRepo) UpdateActual(ctx context.Context, companyID, id uuid.UUID, actualDemand int, accuracy float64) (*models.Forecast, error) {
	query := `
		UPDATE forecasts
		SET actual_demand = $1, accuracy = $2, updated_at = NOW()
		WHERE company_id = $3 AND id = $4
		RETURNING ` + forecastColumns + `
	`
	forecast, err := scanForecast(r.db.QueryRow(ctx, query, actualDemand, accuracy, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "forecast")
	}
	return forecast, nil
}

func (r *forecastRepo) History(ctx context.Context, companyID uuid.UUID, limit int) ([]*models.Forecast, error) {
	query := `
		SELECT ` + forecastColumns + `
		FROM forecasts
		WHERE company_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, common.FromDatabase(err, "forecast")
	}
	defer rows.Close()

	var forecasts []*models.Forecast
	for rows.Next() {
		forecast, err := scanForecast(rows)
		if err != nil {
			return nil, common.FromDatabase(err, "forecast")
		}
		forecasts = append(forecasts, forecast)
	}
	return forecasts, rows.Err()
}

// Metrics aggregates across all of the company's forecasts. AVG over zero
// rows is NULL, which scans into nil averages with a zero count.
func (r *forecastRepo) Metrics(ctx context.Context, companyID uuid.UUID) (*models.ForecastMetrics, error) {
	metrics := &models.ForecastMetrics{}
	query := `
		SELECT AVG(accuracy), COUNT(*), AVG(predicted_demand)
		FROM forecasts
		WHERE company_id = $1
	`
	err := r.db.QueryRow(ctx, query, companyID).Scan(&metrics.AvgAccuracy, &metrics.TotalForecasts, &metrics.AvgDemand)
	if err != nil {
		return nil, common.FromDatabase(err, "forecast")
	}
	return metrics, nil
}
