package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// CompanyIDKey carries the authenticated company identity. Every store call
// is scoped by this value; a request without it never reaches a repository.
const CompanyIDKey contextKey = "company_id"

// GetCompanyIDFromContext extracts the authenticated company ID from the request context.
func GetCompanyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDKey).(uuid.UUID)
	return companyID, ok
}

// WithCompanyID returns a context tagged with the company identity.
func WithCompanyID(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, CompanyIDKey, companyID)
}
