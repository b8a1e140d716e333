package handlers

import (
	"net/http"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/services"

	"github.com/labstack/echo/v4"
)

// RetailCenterHandlers handles retail center HTTP requests.
type RetailCenterHandlers struct {
	retailCenterSvc services.RetailCenterService
}

func NewRetailCenterHandlers(retailCenterSvc services.RetailCenterService) *RetailCenterHandlers {
	return &RetailCenterHandlers{retailCenterSvc: retailCenterSvc}
}

// CreateRetailCenterRequest is the retail center creation payload.
type CreateRetailCenterRequest struct {
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Address      string  `json:"address"`
	MaxCapacity  int     `json:"max_capacity"`
	SafetyStock  int     `json:"safety_stock"`
	CurrentStock int     `json:"current_stock"`
	TurnoverRate float64 `json:"turnover_rate"`
}

func (h *RetailCenterHandlers) CreateRetailCenter(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req CreateRetailCenterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	center := &models.RetailCenter{
		Name:         req.Name,
		Location:     req.Location,
		Address:      req.Address,
		MaxCapacity:  req.MaxCapacity,
		SafetyStock:  req.SafetyStock,
		CurrentStock: req.CurrentStock,
		TurnoverRate: req.TurnoverRate,
	}

	if err := h.retailCenterSvc.Create(ctx, companyID, center); err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusCreated, center)
}

// ListRetailCenters returns the company's active centers only.
func (h *RetailCenterHandlers) ListRetailCenters(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	centers, err := h.retailCenterSvc.ListActive(ctx, companyID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"retail_centers": centers})
}

func (h *RetailCenterHandlers) UpdateRetailCenter(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	centerID, err := common.ValidateUUID(c.Param("id"), "retail center ID")
	if err != nil {
		return sendError(c, err)
	}

	var patch models.RetailCenterPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	center, err := h.retailCenterSvc.Update(ctx, companyID, centerID, &patch)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, center)
}
