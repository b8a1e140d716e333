package repositories

import (
	"context"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, company_id, name, description, category, sku, unit_price, manufacturer, weight, dimensions, is_active, image_url, min_order_quantity, tags, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.CompanyID, &product.Name, &product.Description, &product.Category, &product.SKU, &product.UnitPrice, &product.Manufacturer, &product.Weight, &product.Dimensions, &product.IsActive, &product.ImageURL, &product.MinOrderQuantity, &product.Tags, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, company_id, name, description, category, sku, unit_price, manufacturer, weight, dimensions, is_active, image_url, min_order_quantity, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.CompanyID, product.Name, product.Description, product.Category, product.SKU, product.UnitPrice, product.Manufacturer, product.Weight, product.Dimensions, product.IsActive, product.ImageURL, product.MinOrderQuantity, product.Tags)
	return common.FromDatabase(err, "product sku")
}

func (r *productRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1 AND id = $2
	`
	product, err := scanProduct(r.db.QueryRow(ctx, query, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "product")
	}
	return product, nil
}

// GetBySKU deliberately skips the company filter: SKU uniqueness is global
// across tenants, matching the catalog's unique index.
func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE sku = $1
	`
	product, err := scanProduct(r.db.QueryRow(ctx, query, sku))
	if err != nil {
		return nil, common.FromDatabase(err, "product")
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, common.FromDatabase(err, "product")
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, common.FromDatabase(err, "product")
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, unit_price = $4, manufacturer = $5, weight = $6, dimensions = $7, is_active = $8, image_url = $9, min_order_quantity = $10, tags = $11, updated_at = NOW()
		WHERE company_id = $12 AND id = $13
	`
	tag, err := r.db.Exec(ctx, query, product.Name, product.Description, product.Category, product.UnitPrice, product.Manufacturer, product.Weight, product.Dimensions, product.IsActive, product.ImageURL, product.MinOrderQuantity, product.Tags, product.CompanyID, product.ID)
	if err != nil {
		return common.FromDatabase(err, "product")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("product")
	}
	return nil
}

// Delete removes the catalog entry only. Historical orders and forecasts keep
// the stale product_id.
func (r *productRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE company_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, companyID, id)
	if err != nil {
		return common.FromDatabase(err, "product")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("product")
	}
	return nil
}
