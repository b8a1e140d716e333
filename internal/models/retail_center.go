package models

import (
	"time"

	"github.com/google/uuid"
)

// RetailCenter is a physical stocking location with bounded capacity.
// CurrentStock tracking max_capacity is a soft bound: overruns are flagged
// by the service, never rejected.
type RetailCenter struct {
	ID            uuid.UUID `json:"id" db:"id"`
	CompanyID     uuid.UUID `json:"company_id" db:"company_id"`
	Name          string    `json:"name" db:"name"`
	Location      string    `json:"location" db:"location"`
	Address       string    `json:"address" db:"address"`
	MaxCapacity   int       `json:"max_capacity" db:"max_capacity"`
	CurrentStock  int       `json:"current_stock" db:"current_stock"`
	SafetyStock   int       `json:"safety_stock" db:"safety_stock"`
	TurnoverRate  float64   `json:"turnover_rate" db:"turnover_rate"`
	LastRestocked time.Time `json:"last_restocked" db:"last_restocked"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryMetrics is the company-wide aggregate over all retail centers.
// AvgTurnoverRate is nil when the company has no centers.
type InventoryMetrics struct {
	TotalCapacity     int      `json:"total_capacity"`
	TotalCurrentStock int      `json:"total_current_stock"`
	AvgTurnoverRate   *float64 `json:"avg_turnover_rate"`
}

// RetailCenterPatch is a partial update; nil fields are left untouched.
type RetailCenterPatch struct {
	Name         *string  `json:"name,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Address      *string  `json:"address,omitempty"`
	MaxCapacity  *int     `json:"max_capacity,omitempty"`
	SafetyStock  *int     `json:"safety_stock,omitempty"`
	TurnoverRate *float64 `json:"turnover_rate,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
