package handlers

import (
	"net/http"
	"time"

	"stockcast/internal/analytics"
	"stockcast/internal/common"
	"stockcast/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ForecastHandlers handles demand forecast HTTP requests.
type ForecastHandlers struct {
	forecastSvc  services.ForecastService
	analyticsSvc *analytics.Service
}

func NewForecastHandlers(forecastSvc services.ForecastService, analyticsSvc *analytics.Service) *ForecastHandlers {
	return &ForecastHandlers{
		forecastSvc:  forecastSvc,
		analyticsSvc: analyticsSvc,
	}
}

// GenerateForecastRequest is the forecast creation payload. PredictedDemand is
// optional; when absent a placeholder value is generated server-side.
type GenerateForecastRequest struct {
	ProductID       uuid.UUID  `json:"product_id"`
	Date            *time.Time `json:"date"`
	PredictedDemand *int       `json:"predicted_demand"`
}

func (h *ForecastHandlers) GenerateForecast(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req GenerateForecastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ProductID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	forecast, err := h.forecastSvc.Generate(ctx, companyID, req.ProductID, date, req.PredictedDemand)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusCreated, forecast)
}

// RecordActualRequest carries the observed demand for a forecast.
type RecordActualRequest struct {
	ActualDemand int `json:"actual_demand"`
}

func (h *ForecastHandlers) RecordActualDemand(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	forecastID, err := common.ValidateUUID(c.Param("id"), "forecast ID")
	if err != nil {
		return sendError(c, err)
	}

	var req RecordActualRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	forecast, err := h.forecastSvc.RecordActual(ctx, companyID, forecastID, req.ActualDemand)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, forecast)
}

// GetForecastHistory returns the company's most recent forecasts, newest first.
func (h *ForecastHandlers) GetForecastHistory(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	forecasts, err := h.forecastSvc.History(ctx, companyID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"forecasts": forecasts})
}

func (h *ForecastHandlers) GetForecastMetrics(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	if snapshot, err := h.analyticsSvc.CachedSnapshot(ctx, companyID); err == nil && snapshot != nil {
		if forecast, ok := snapshot["forecast"]; ok {
			return c.JSON(http.StatusOK, forecast)
		}
	}

	metrics, err := h.forecastSvc.Metrics(ctx, companyID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, metrics)
}
