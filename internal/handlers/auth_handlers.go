package handlers

import (
	"net/http"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AuthHandlers handles company registration, login and profile requests.
type AuthHandlers struct {
	companySvc services.CompanyService
}

func NewAuthHandlers(companySvc services.CompanyService) *AuthHandlers {
	return &AuthHandlers{companySvc: companySvc}
}

// RegisterRequest is the company signup payload.
type RegisterRequest struct {
	CompanyName  string  `json:"company_name"`
	CompanyEmail string  `json:"company_email"`
	Password     string  `json:"password"`
	GSTNumber    string  `json:"gst_number"`
	PhoneNo      string  `json:"phone_no"`
	Location     *string `json:"location"`
	IndustryType *string `json:"industry_type"`
	Website      *string `json:"website"`
}

func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	company := &models.Company{
		Name:         req.CompanyName,
		Email:        req.CompanyEmail,
		GSTNumber:    req.GSTNumber,
		Phone:        req.PhoneNo,
		Location:     req.Location,
		IndustryType: req.IndustryType,
		Website:      req.Website,
	}

	created, token, err := h.companySvc.Register(c.Request().Context(), company, req.Password)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"company": created,
		"token":   token,
	})
}

// LoginRequest is the company login payload.
type LoginRequest struct {
	CompanyEmail string `json:"company_email"`
	Password     string `json:"password"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	company, token, err := h.companySvc.Login(c.Request().Context(), req.CompanyEmail, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"company": company,
		"token":   token,
	})
}

// Logout revokes the presented token for the rest of its lifetime.
func (h *AuthHandlers) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	tokenString := ""
	if after, ok := cutBearer(authHeader); ok {
		tokenString = after
	}
	if tokenString == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}

	// Signature was already verified by the auth middleware.
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.companySvc.Logout(c.Request().Context(), claims.ID, expiresAt); err != nil {
		return sendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandlers) Profile(c echo.Context) error {
	companyID, ok := common.GetCompanyIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	company, err := h.companySvc.Profile(c.Request().Context(), companyID)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// UploadLogo replaces the company logo with the raw image in the request body.
func (h *AuthHandlers) UploadLogo(c echo.Context) error {
	companyID, ok := common.GetCompanyIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
	}

	url, err := h.companySvc.UploadLogo(c.Request().Context(), companyID, c.Request().Body, c.Request().ContentLength)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"logo_url": url})
}

func cutBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):], true
	}
	return "", false
}
