package repositories

import (
	"context"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

type RetailCenterRepository interface {
	Create(ctx context.Context, center *models.RetailCenter) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.RetailCenter, error)
	Patch(ctx context.Context, companyID, id uuid.UUID, patch *models.RetailCenterPatch) (*models.RetailCenter, error)
	ListActive(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error)
	ListBelowSafetyStock(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error)
	InventoryMetrics(ctx context.Context, companyID uuid.UUID) (*models.InventoryMetrics, error)
}

type retailCenterRepo struct {
	db Database
}

func NewRetailCenterRepo(db Database) RetailCenterRepository {
	return &retailCenterRepo{db: db}
}

const retailCenterColumns = `id, company_id, name, location, address, max_capacity, current_stock, safety_stock, turnover_rate, last_restocked, is_active, created_at, updated_at`

func scanRetailCenter(row interface{ Scan(dest ...any) error }) (*models.RetailCenter, error) {
	center := &models.RetailCenter{}
	err := row.Scan(&center.ID, &center.CompanyID, &center.Name, &center.Location, &center.Address, &center.MaxCapacity, &center.CurrentStock, &center.SafetyStock, &center.TurnoverRate, &center.LastRestocked, &center.IsActive, &center.CreatedAt, &center.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return center, nil
}

func (r *retailCenterRepo) Create(ctx context.Context, center *models.RetailCenter) error {
	query := `
		INSERT INTO retail_centers (id, company_id, name, location, address, max_capacity, current_stock, safety_stock, turnover_rate, last_restocked, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, center.ID, center.CompanyID, center.Name, center.Location, center.Address, center.MaxCapacity, center.CurrentStock, center.SafetyStock, center.TurnoverRate, center.IsActive)
	return common.FromDatabase(err, "retail center")
}

func (r *retailCenterRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.RetailCenter, error) {
	query := `
		SELECT ` + retailCenterColumns + `
		FROM retail_centers
		WHERE company_id = $1 AND id = $2
	`
	center, err := scanRetailCenter(r.db.QueryRow(ctx, query, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "retail center")
	}
	return center, nil
}

// Patch applies a partial update; COALESCE keeps columns whose patch field is nil.
func (r *retailCenterRepo) Patch(ctx context.Context, companyID, id uuid.UUID, patch *models.RetailCenterPatch) (*models.RetailCenter, error) {
	query := `
		UPDATE retail_centers
		SET name = COALESCE($1, name),
		    location = COALESCE($2, location),
		    address = COALESCE($3, address),
		    max_capacity = COALESCE($4, max_capacity),
		    safety_stock = COALESCE($5, safety_stock),
		    turnover_rate = COALESCE($6, turnover_rate),
		    is_active = COALESCE($7, is_active),
		    updated_at = NOW()
		WHERE company_id = $8 AND id = $9
		RETURNING ` + retailCenterColumns + `
	`
	center, err := scanRetailCenter(r.db.QueryRow(ctx, query, patch.Name, patch.Location, patch.Address, patch.MaxCapacity, patch.SafetyStock, patch.TurnoverRate, patch.IsActive, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "retail center")
	}
	return center, nil
}

// InventoryMetrics aggregates over every center of the company, active or
// not. COALESCE keeps the sums at zero and AVG at NULL for an empty set.
func (r *retailCenterRepo) InventoryMetrics(ctx context.Context, companyID uuid.UUID) (*models.InventoryMetrics, error) {
	metrics := &models.InventoryMetrics{}
	query := `
		SELECT COALESCE(SUM(max_capacity), 0), COALESCE(SUM(current_stock), 0), AVG(turnover_rate)
		FROM retail_centers
		WHERE company_id = $1
	`
	err := r.db.QueryRow(ctx, query, companyID).Scan(&metrics.TotalCapacity, &metrics.TotalCurrentStock, &metrics.AvgTurnoverRate)
	if err != nil {
		return nil, common.FromDatabase(err, "retail center")
	}
	return metrics, nil
}

// ListBelowSafetyStock returns active centers whose stock has fallen under
// their safety floor. Used by the alert sweep.
func (r *retailCenterRepo) ListBelowSafetyStock(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error) {
	query := `
		SELECT ` + retailCenterColumns + `
		FROM retail_centers
		WHERE company_id = $1 AND is_active = true AND current_stock < safety_stock
	`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, common.FromDatabase(err, "retail center")
	}
	defer rows.Close()

	var centers []*models.RetailCenter
	for rows.Next() {
		center, err := scanRetailCenter(rows)
		if err != nil {
			return nil, common.FromDatabase(err, "retail center")
		}
		centers = append(centers, center)
	}
	return centers, rows.Err()
}

func (r *retailCenterRepo) ListActive(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error) {
	query := `
		SELECT ` + retailCenterColumns + `
		FROM retail_centers
		WHERE company_id = $1 AND is_active = true
	`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, common.FromDatabase(err, "retail center")
	}
	defer rows.Close()

	var centers []*models.RetailCenter
	for rows.Next() {
		center, err := scanRetailCenter(rows)
		if err != nil {
			return nil, common.FromDatabase(err, "retail center")
		}
		centers = append(centers, center)
	}
	return centers, rows.Err()
}
