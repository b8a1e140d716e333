package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryRecord is the quantity of one product at one retail center.
// Unique per (company_id, retail_center_id, product_id); this key is the
// unit of concurrency control for stock writes.
type InventoryRecord struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	CompanyID      uuid.UUID  `json:"company_id" db:"company_id"`
	RetailCenterID uuid.UUID  `json:"retail_center_id" db:"retail_center_id"`
	ProductID      uuid.UUID  `json:"product_id" db:"product_id"`
	Quantity       int        `json:"quantity" db:"quantity"`
	ReorderLevel   int        `json:"reorder_level" db:"reorder_level"`
	UnitPrice      float64    `json:"unit_price" db:"unit_price"`
	SupplierID     *string    `json:"supplier_id" db:"supplier_id"`
	BatchNumber    *string    `json:"batch_number" db:"batch_number"`
	ExpiryDate     *time.Time `json:"expiry_date" db:"expiry_date"`
	LastUpdated    time.Time  `json:"last_updated" db:"last_updated"`
}

// InventoryLevel is an inventory record joined with its product for display.
type InventoryLevel struct {
	Record  *InventoryRecord `json:"record"`
	Product *Product         `json:"product"`
}
