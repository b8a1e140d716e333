package services

import (
	"context"
	"fmt"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/google/uuid"
)

type OrderService interface {
	Create(ctx context.Context, companyID uuid.UUID, order *models.Order) error
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Order, error)
	GetByID(ctx context.Context, companyID, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, companyID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *orderService) Create(ctx context.Context, companyID uuid.UUID, order *models.Order) error {
	if err := common.ValidatePositiveInt(order.Quantity, "quantity"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(order.TotalPrice, "total_price"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(order.ShippingAddress, "shipping_address"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(order.PaymentMethod, "payment_method"); err != nil {
		return err
	}

	if _, err := s.productRepo.GetByID(ctx, companyID, order.ProductID); err != nil {
		return err
	}

	order.ID = uuid.New()
	order.CompanyID = companyID
	order.Status = models.OrderPending
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	return s.orderRepo.Create(ctx, order)
}

func (s *orderService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.List(ctx, companyID, limit, offset)
}

func (s *orderService) GetByID(ctx context.Context, companyID, orderID uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, companyID, orderID)
}

// UpdateStatus enforces forward-only transitions: Pending -> Shipped ->
// Delivered. Regressions and repeats fail as invalid input.
func (s *orderService) UpdateStatus(ctx context.Context, companyID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, common.InvalidInputError(fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orderRepo.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, common.InvalidInputError(fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	return s.orderRepo.UpdateStatus(ctx, companyID, orderID, status)
}
