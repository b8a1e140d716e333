package repositories

import (
	"context"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

type InventoryRepository interface {
	Create(ctx context.Context, record *models.InventoryRecord) error
	GetByCenterAndProduct(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error)
	GetLevels(ctx context.Context, companyID, centerID uuid.UUID) ([]*models.InventoryLevel, error)
	SetLevel(ctx context.Context, companyID, centerID, productID uuid.UUID, quantity int) (*models.InventoryRecord, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.InventoryRecord, error)
}

type inventoryRepo struct {
	db Database
}

func NewInventoryRepo(db Database) InventoryRepository {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, company_id, retail_center_id, product_id, quantity, reorder_level, unit_price, supplier_id, batch_number, expiry_date, last_updated`

func scanInventoryRecord(row interface{ Scan(dest ...any) error }) (*models.InventoryRecord, error) {
	record := &models.InventoryRecord{}
	err := row.Scan(&record.ID, &record.CompanyID, &record.RetailCenterID, &record.ProductID, &record.Quantity, &record.ReorderLevel, &record.UnitPrice, &record.SupplierID, &record.BatchNumber, &record.ExpiryDate, &record.LastUpdated)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create inserts a new inventory record. SetLevel never upserts; this is the
// only path that brings a (company, center, product) record into existence.
func (r *inventoryRepo) Create(ctx context.Context, record *models.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, company_id, retail_center_id, product_id, quantity, reorder_level, unit_price, supplier_id, batch_number, expiry_date, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := r.db.Exec(ctx, query, record.ID, record.CompanyID, record.RetailCenterID, record.ProductID, record.Quantity, record.ReorderLevel, record.UnitPrice, record.SupplierID, record.BatchNumber, record.ExpiryDate)
	return common.FromDatabase(err, "inventory record")
}

func (r *inventoryRepo) GetByCenterAndProduct(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records
		WHERE company_id = $1 AND retail_center_id = $2 AND product_id = $3
	`
	record, err := scanInventoryRecord(r.db.QueryRow(ctx, query, companyID, centerID, productID))
	if err != nil {
		return nil, common.FromDatabase(err, "inventory record")
	}
	return record, nil
}

// GetLevels returns every record at the center joined with its product for
// display. A center with no records yields an empty slice, not an error.
func (r *inventoryRepo) GetLevels(ctx context.Context, companyID, centerID uuid.UUID) ([]*models.InventoryLevel, error) {
	query := `
		SELECT i.id, i.company_id, i.retail_center_id, i.product_id, i.quantity, i.reorder_level, i.unit_price, i.supplier_id, i.batch_number, i.expiry_date, i.last_updated,
		       p.id, p.company_id, p.name, p.description, p.category, p.sku, p.unit_price, p.manufacturer, p.weight, p.dimensions, p.is_active, p.image_url, p.min_order_quantity, p.tags, p.created_at, p.updated_at
		FROM inventory_records i
		JOIN products p ON p.company_id = i.company_id AND p.id = i.product_id
		WHERE i.company_id = $1 AND i.retail_center_id = $2
		ORDER BY i.last_updated DESC
	`
	rows, err := r.db.Query(ctx, query, companyID, centerID)
	if err != nil {
		return nil, common.FromDatabase(err, "inventory record")
	}
	defer rows.Close()

	levels := []*models.InventoryLevel{}
	for rows.Next() {
		record := &models.InventoryRecord{}
		product := &models.Product{}
		err := rows.Scan(
			&record.ID, &record.CompanyID, &record.RetailCenterID, &record.ProductID, &record.Quantity, &record.ReorderLevel, &record.UnitPrice, &record.SupplierID, &record.BatchNumber, &record.ExpiryDate, &record.LastUpdated,
			&product.ID, &product.CompanyID, &product.Name, &product.Description, &product.Category, &product.SKU, &product.UnitPrice, &product.Manufacturer, &product.Weight, &product.Dimensions, &product.IsActive, &product.ImageURL, &product.MinOrderQuantity, &product.Tags, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, common.FromDatabase(err, "inventory record")
		}
		levels = append(levels, &models.InventoryLevel{Record: record, Product: product})
	}
	return levels, rows.Err()
}

// SetLevel overwrites the record's quantity (absolute set, not delta) and, in
// the same transaction, increments the owning center's current_stock by the
// new quantity value. Existing consumers depend on the increment-by-new-value
// accumulation; see DESIGN.md before changing it.
//
// The single-row UPDATE takes the row lock, so concurrent writers on the same
// (company, center, product) key serialize while other keys stay unblocked.
func (r *inventoryRepo) SetLevel(ctx context.Context, companyID, centerID, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, common.FromDatabase(err, "inventory record")
	}
	defer tx.Rollback(ctx)

	updateRecord := `
		UPDATE inventory_records
		SET quantity = $1, last_updated = NOW()
		WHERE company_id = $2 AND retail_center_id = $3 AND product_id = $4
		RETURNING ` + inventoryColumns + `
	`
	record, err := scanInventoryRecord(tx.QueryRow(ctx, updateRecord, quantity, companyID, centerID, productID))
	if err != nil {
		return nil, common.FromDatabase(err, "inventory record")
	}

	updateCenter := `
		UPDATE retail_centers
		SET current_stock = current_stock + $1, updated_at = NOW()
		WHERE company_id = $2 AND id = $3
	`
	tag, err := tx.Exec(ctx, updateCenter, quantity, companyID, centerID)
	if err != nil {
		return nil, common.PartialFailureError("stock level written but retail center update failed; changes rolled back", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, common.PartialFailureError("stock level written but retail center missing; changes rolled back", nil)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.PartialFailureError("inventory update could not be committed", err)
	}
	return record, nil
}

func (r *inventoryRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_records
		WHERE company_id = $1
		ORDER BY last_updated DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, common.FromDatabase(err, "inventory record")
	}
	defer rows.Close()

	var records []*models.InventoryRecord
	for rows.Next() {
		record, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, common.FromDatabase(err, "inventory record")
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
