package handlers

import (
	"net/http"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles product catalog HTTP requests.
type ProductHandlers struct {
	productSvc services.ProductService
}

func NewProductHandlers(productSvc services.ProductService) *ProductHandlers {
	return &ProductHandlers{productSvc: productSvc}
}

// CreateProductRequest is the product creation payload.
type CreateProductRequest struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Category         string             `json:"category"`
	SKU              string             `json:"sku"`
	UnitPrice        float64            `json:"unit_price"`
	Manufacturer     *string            `json:"manufacturer"`
	Weight           *float64           `json:"weight"`
	Dimensions       *models.Dimensions `json:"dimensions"`
	MinOrderQuantity int                `json:"min_order_quantity"`
	Tags             []string           `json:"tags"`
}

func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product := &models.Product{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		SKU:              req.SKU,
		UnitPrice:        req.UnitPrice,
		Manufacturer:     req.Manufacturer,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
		MinOrderQuantity: req.MinOrderQuantity,
		Tags:             req.Tags,
	}

	if err := h.productSvc.Create(ctx, companyID, product); err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// ListProductsRequest represents query parameters for listing products.
type ListProductsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	var req ListProductsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	products, err := h.productSvc.List(ctx, companyID, req.Limit, req.Offset)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
}

func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product ID")
	if err != nil {
		return sendError(c, err)
	}

	product, err := h.productSvc.GetByID(ctx, companyID, productID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product ID")
	if err != nil {
		return sendError(c, err)
	}

	product, err := h.productSvc.GetByID(ctx, companyID, productID)
	if err != nil {
		return sendError(c, err)
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.UnitPrice = req.UnitPrice
	product.Manufacturer = req.Manufacturer
	product.Weight = req.Weight
	product.Dimensions = req.Dimensions
	if req.MinOrderQuantity > 0 {
		product.MinOrderQuantity = req.MinOrderQuantity
	}
	product.Tags = req.Tags

	if err := h.productSvc.Update(ctx, companyID, product); err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product ID")
	if err != nil {
		return sendError(c, err)
	}

	if err := h.productSvc.Delete(ctx, companyID, productID); err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// UploadProductImage stores the request body as the product image and records
// the presigned URL on the product.
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()
	companyID, ok := common.GetCompanyIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	productID, err := common.ValidateUUID(c.Param("id"), "product ID")
	if err != nil {
		return sendError(c, err)
	}

	body := c.Request().Body
	defer body.Close()

	url, err := h.productSvc.UploadImage(ctx, companyID, productID, body, c.Request().ContentLength)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"image_url": url})
}
