package middleware

import (
	"context"
	"net/http"

	"stockcast/internal/common"
	"stockcast/internal/repositories"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// TokenRevoker answers whether a token ID has been invalidated by logout.
type TokenRevoker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTConfig builds the token verification config. When jwksURL is set, tokens
// are verified against the external identity provider's key set; otherwise the
// shared HS256 secret applies.
func JWTConfig(secret, jwksURL string) (echojwt.Config, error) {
	cfg := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			return cfg, err
		}
		cfg.KeyFunc = jwks.Keyfunc
		return cfg, nil
	}

	cfg.SigningKey = []byte(secret)
	return cfg, nil
}

// CompanyContext resolves the verified token to a company and tags the request
// context with the company identity. Runs after the JWT middleware; every
// protected route sits behind both, so the stores never see a request without
// a company ID.
func CompanyContext(companyRepo repositories.CompanyRepository, revoker TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			companyID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing company_id in token")
			}

			if revoker != nil && claims.ID != "" {
				revoked, err := revoker.IsTokenRevoked(c.Request().Context(), claims.ID)
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token revoked")
				}
			}

			if _, err := companyRepo.GetByID(c.Request().Context(), companyID); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Company not found")
			}

			ctx := common.WithCompanyID(c.Request().Context(), companyID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
