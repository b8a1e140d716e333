package repositories

import (
	"context"
	"testing"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ForecastRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       ForecastRepository
	companyID  uuid.UUID
	productID  uuid.UUID
	forecastID uuid.UUID
	context    context.Context
}

func (suite *ForecastRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewForecastRepo(mock)
	suite.companyID = uuid.New()
	suite.productID = uuid.New()
	suite.forecastID = uuid.New()
	suite.context = context.Background()
}

func (suite *ForecastRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestForecastRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ForecastRepoTestSuite))
}

var forecastTestColumns = []string{"id", "company_id", "product_id", "date", "predicted_demand", "actual_demand", "accuracy", "factors", "created_at", "updated_at"}

func (suite *ForecastRepoTestSuite) TestCreate_Success() {
	forecast := &models.Forecast{
		ID:              suite.forecastID,
		CompanyID:       suite.companyID,
		ProductID:       suite.productID,
		Date:            time.Now(),
		PredictedDemand: 420,
		Factors: models.ForecastFactors{
			Seasonality: 1.2,
			Trend:       0.8,
			Events:      []string{"Holiday Season"},
		},
	}

	suite.mock.ExpectExec(`INSERT INTO forecasts`).
		WithArgs(forecast.ID, forecast.CompanyID, forecast.ProductID, forecast.Date, forecast.PredictedDemand, forecast.ActualDemand, forecast.Accuracy, forecast.Factors).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, forecast)
	assert.NoError(suite.T(), err)
}

func (suite *ForecastRepoTestSuite) TestUpdateActual_Success() {
	actual := 380
	accuracy := 0.9047619047619048

	rows := pgxmock.NewRows(forecastTestColumns).
		AddRow(suite.forecastID, suite.companyID, suite.productID, time.Now(), 420, &actual, &accuracy, models.ForecastFactors{Seasonality: 1.2, Trend: 0.8}, time.Now(), time.Now())

	suite.mock.ExpectQuery(`UPDATE forecasts\s+SET actual_demand = \$1, accuracy = \$2`).
		WithArgs(actual, accuracy, suite.companyID, suite.forecastID).
		WillReturnRows(rows)

	forecast, err := suite.repo.UpdateActual(suite.context, suite.companyID, suite.forecastID, actual, accuracy)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), actual, *forecast.ActualDemand)
	assert.InDelta(suite.T(), accuracy, *forecast.Accuracy, 1e-9)
}

func (suite *ForecastRepoTestSuite) TestUpdateActual_NotFound() {
	suite.mock.ExpectQuery(`UPDATE forecasts\s+SET actual_demand = \$1, accuracy = \$2`).
		WithArgs(100, 1.0, suite.companyID, suite.forecastID).
		WillReturnError(pgx.ErrNoRows)

	forecast, err := suite.repo.UpdateActual(suite.context, suite.companyID, suite.forecastID, 100, 1.0)
	assert.Nil(suite.T(), forecast)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *ForecastRepoTestSuite) TestHistory_NewestFirst() {
	newer := time.Now()
	older := newer.Add(-48 * time.Hour)

	rows := pgxmock.NewRows(forecastTestColumns).
		AddRow(uuid.New(), suite.companyID, suite.productID, newer, 300, nil, nil, models.ForecastFactors{}, time.Now(), time.Now()).
		AddRow(uuid.New(), suite.companyID, suite.productID, older, 200, nil, nil, models.ForecastFactors{}, time.Now(), time.Now())

	suite.mock.ExpectQuery(`SELECT .+ FROM forecasts\s+WHERE company_id = \$1\s+ORDER BY date DESC\s+LIMIT \$2`).
		WithArgs(suite.companyID, 30).
		WillReturnRows(rows)

	forecasts, err := suite.repo.History(suite.context, suite.companyID, 30)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), forecasts, 2)
	assert.True(suite.T(), forecasts[0].Date.After(forecasts[1].Date))
}

func (suite *ForecastRepoTestSuite) TestMetrics_Empty() {
	// AVG over zero rows is NULL; the metrics carry nil averages and a zero
	// count rather than an error.
	rows := pgxmock.NewRows([]string{"avg_accuracy", "count", "avg_demand"}).
		AddRow(nil, 0, nil)

	suite.mock.ExpectQuery(`SELECT AVG\(accuracy\), COUNT\(\*\), AVG\(predicted_demand\)\s+FROM forecasts`).
		WithArgs(suite.companyID).
		WillReturnRows(rows)

	metrics, err := suite.repo.Metrics(suite.context, suite.companyID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, metrics.TotalForecasts)
	assert.Nil(suite.T(), metrics.AvgAccuracy)
	assert.Nil(suite.T(), metrics.AvgDemand)
}

func (suite *ForecastRepoTestSuite) TestMetrics_Populated() {
	avgAccuracy := 0.85
	avgDemand := 310.5

	rows := pgxmock.NewRows([]string{"avg_accuracy", "count", "avg_demand"}).
		AddRow(&avgAccuracy, 12, &avgDemand)

	suite.mock.ExpectQuery(`SELECT AVG\(accuracy\), COUNT\(\*\), AVG\(predicted_demand\)\s+FROM forecasts`).
		WithArgs(suite.companyID).
		WillReturnRows(rows)

	metrics, err := suite.repo.Metrics(suite.context, suite.companyID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, metrics.TotalForecasts)
	assert.InDelta(suite.T(), 0.85, *metrics.AvgAccuracy, 1e-9)
	assert.InDelta(suite.T(), 310.5, *metrics.AvgDemand, 1e-9)
}
