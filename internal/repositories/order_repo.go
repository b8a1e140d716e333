package repositories

import (
	"context"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, company_id, product_id, order_date, quantity, total_price, status, shipping_address, payment_method, invoice_number, discount, tax, shipping_cost, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(&order.ID, &order.CompanyID, &order.ProductID, &order.OrderDate, &order.Quantity, &order.TotalPrice, &order.Status, &order.ShippingAddress, &order.PaymentMethod, &order.InvoiceNumber, &order.Discount, &order.Tax, &order.ShippingCost, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, company_id, product_id, order_date, quantity, total_price, status, shipping_address, payment_method, invoice_number, discount, tax, shipping_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.CompanyID, order.ProductID, order.OrderDate, order.Quantity, order.TotalPrice, order.Status, order.ShippingAddress, order.PaymentMethod, order.InvoiceNumber, order.Discount, order.Tax, order.ShippingCost)
	return common.FromDatabase(err, "order")
}

func (r *orderRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE company_id = $1 AND id = $2
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "order")
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE company_id = $1
		ORDER BY order_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, common.FromDatabase(err, "order")
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, common.FromDatabase(err, "order")
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE company_id = $2 AND id = $3
		RETURNING ` + orderColumns + `
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, status, companyID, id))
	if err != nil {
		return nil, common.FromDatabase(err, "order")
	}
	return order, nil
}
