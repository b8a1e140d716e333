package models

import (
	"time"

	"github.com/google/uuid"
)

// Dimensions is the physical-size payload carried on a product.
type Dimensions struct {
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type Product struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	CompanyID        uuid.UUID   `json:"company_id" db:"company_id"`
	Name             string      `json:"name" db:"name"`
	Description      string      `json:"description" db:"description"`
	Category         string      `json:"category" db:"category"`
	SKU              string      `json:"sku" db:"sku"`
	UnitPrice        float64     `json:"unit_price" db:"unit_price"`
	Manufacturer     *string     `json:"manufacturer" db:"manufacturer"`
	Weight           *float64    `json:"weight" db:"weight"`
	Dimensions       *Dimensions `json:"dimensions" db:"dimensions"`
	IsActive         bool        `json:"is_active" db:"is_active"`
	ImageURL         *string     `json:"image_url" db:"image_url"`
	MinOrderQuantity int         `json:"min_order_quantity" db:"min_order_quantity"`
	Tags             []string    `json:"tags" db:"tags"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}
