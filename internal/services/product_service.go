package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/google/uuid"
)

const productImageBucket = "product-images"

type ProductService interface {
	Create(ctx context.Context, companyID uuid.UUID, product *models.Product) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Product, error)
	Update(ctx context.Context, companyID uuid.UUID, product *models.Product) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	UploadImage(ctx context.Context, companyID, productID uuid.UUID, reader io.Reader, size int64) (string, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	mediaSvc    MediaService
}

func NewProductService(productRepo repositories.ProductRepository, mediaSvc MediaService) ProductService {
	return &productService{
		productRepo: productRepo,
		mediaSvc:    mediaSvc,
	}
}

func (s *productService) Create(ctx context.Context, companyID uuid.UUID, product *models.Product) error {
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(product.SKU, "sku"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(product.Category, "category"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(product.UnitPrice, "unit_price"); err != nil {
		return err
	}
	if product.MinOrderQuantity == 0 {
		product.MinOrderQuantity = 1
	}
	if err := common.ValidatePositiveInt(product.MinOrderQuantity, "min_order_quantity"); err != nil {
		return err
	}

	product.ID = uuid.New()
	product.CompanyID = companyID
	product.IsActive = true

	// SKU uniqueness is global, not per-tenant; the unique index raises the
	// conflict regardless of which company holds the colliding SKU.
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, companyID, id)
}

func (s *productService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	return s.productRepo.List(ctx, companyID, limit, offset)
}

func (s *productService) Update(ctx context.Context, companyID uuid.UUID, product *models.Product) error {
	if err := common.ValidateNonNegativeFloat(product.UnitPrice, "unit_price"); err != nil {
		return err
	}
	product.CompanyID = companyID
	return s.productRepo.Update(ctx, product)
}

// Delete removes the catalog entry without cascading; historical orders and
// forecasts keep their product_id references.
func (s *productService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, companyID, id)
}

func (s *productService) UploadImage(ctx context.Context, companyID, productID uuid.UUID, reader io.Reader, size int64) (string, error) {
	product, err := s.productRepo.GetByID(ctx, companyID, productID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s.jpg", companyID.String(), productID.String())
	if err := s.mediaSvc.Upload(ctx, productImageBucket, objectName, reader, size); err != nil {
		return "", err
	}

	url, err := s.mediaSvc.PresignedURL(productImageBucket, objectName, 24*time.Hour)
	if err != nil {
		return "", err
	}

	product.ImageURL = &url
	if err := s.productRepo.Update(ctx, product); err != nil {
		return "", err
	}
	return url, nil
}
