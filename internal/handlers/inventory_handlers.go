package handlers

import (
	"net/http"
	"time"

	"stockcast/internal/analytics"
	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles inventory ledger HTTP requests.
type InventoryHandlers struct {
	inventorySvc services.InventoryService
	analyticsSvc *analytics.Service
}

func NewInventoryHandlers(inventorySvc services.InventoryService, analyticsSvc *analytics.Service) *InventoryHandlers {
	return &InventoryHandlers{
		inventorySvc: inventorySvc,
		analyticsSvc: analyticsSvc,
	}
}

// CreateInventoryRecordRequest is the record creation payload. Records are
// created explicitly; stock-level updates never create them implicitly.
type CreateInventoryRecordRequest struct {
	RetailCenterID uuid.UUID  `json:"retail_center_id"`
	ProductID      uuid.UUID  `json:"product_id"`
	Quantity       int        `json:"quantity"`
	ReorderLevel   int        `json:"reorder_level"`
	UnitPrice      float64    `json:"unit_price"`
	SupplierID     *string    `json:"supplier_id"`
	BatchNumber    *string    `json:"batch_number"`
	ExpiryDate     *time.Time `json:"expiry_date"`
}

func (h *InventoryHandlers) CreateInventoryRecord(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req CreateInventoryRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.RetailCenterID == uuid.Nil || req.ProductID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "retail_center_id and product_id are required")
	}

	record := &models.InventoryRecord{
		RetailCenterID: req.RetailCenterID,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		ReorderLevel:   req.ReorderLevel,
		UnitPrice:      req.UnitPrice,
		SupplierID:     req.SupplierID,
		BatchNumber:    req.BatchNumber,
		ExpiryDate:     req.ExpiryDate,
	}

	if err := h.inventorySvc.CreateRecord(ctx, companyID, record); err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

// GetLevels returns all records at a center joined with product details.
func (h *InventoryHandlers) GetLevels(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	centerID, err := common.ValidateUUID(c.Param("center_id"), "retail center ID")
	if err != nil {
		return sendError(c, err)
	}

	levels, err := h.inventorySvc.GetLevels(ctx, companyID, centerID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"inventory": levels})
}

// SetLevelRequest is the absolute stock-level update payload.
type SetLevelRequest struct {
	CenterID  uuid.UUID `json:"center_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (h *InventoryHandlers) SetLevel(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req SetLevelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.CenterID == uuid.Nil || req.ProductID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "center_id and product_id are required")
	}

	record, err := h.inventorySvc.SetLevel(ctx, companyID, req.CenterID, req.ProductID, req.Quantity)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// GetInventoryMetrics answers from the cached snapshot when present and
// recomputes otherwise.
func (h *InventoryHandlers) GetInventoryMetrics(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	if snapshot, err := h.analyticsSvc.CachedSnapshot(ctx, companyID); err == nil && snapshot != nil {
		if inventory, ok := snapshot["inventory"]; ok {
			return c.JSON(http.StatusOK, inventory)
		}
	}

	metrics, err := h.analyticsSvc.InventoryMetrics(ctx, companyID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, metrics)
}
