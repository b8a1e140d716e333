package services

import (
	"context"
	"log"
	"time"

	"stockcast/internal/caching"
	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/google/uuid"
)

type InventoryService interface {
	CreateRecord(ctx context.Context, companyID uuid.UUID, record *models.InventoryRecord) error
	GetLevels(ctx context.Context, companyID, centerID uuid.UUID) ([]*models.InventoryLevel, error)
	SetLevel(ctx context.Context, companyID, centerID, productID uuid.UUID, quantity int) (*models.InventoryRecord, error)
	GetByCenterAndProduct(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error)
}

type inventoryService struct {
	inventoryRepo    repositories.InventoryRepository
	retailCenterRepo repositories.RetailCenterRepository
	cacheService     caching.CacheService
}

func NewInventoryService(inventoryRepo repositories.InventoryRepository, retailCenterRepo repositories.RetailCenterRepository, cacheService caching.CacheService) InventoryService {
	return &inventoryService{
		inventoryRepo:    inventoryRepo,
		retailCenterRepo: retailCenterRepo,
		cacheService:     cacheService,
	}
}

// CreateRecord is the only path that brings a stock record into existence;
// SetLevel updates existing records and never upserts.
func (s *inventoryService) CreateRecord(ctx context.Context, companyID uuid.UUID, record *models.InventoryRecord) error {
	if err := common.ValidateNonNegativeInt(record.Quantity, "quantity"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInt(record.ReorderLevel, "reorder_level"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(record.UnitPrice, "unit_price"); err != nil {
		return err
	}

	// The center must exist and belong to the caller before a record is
	// anchored to it.
	if _, err := s.retailCenterRepo.GetByID(ctx, companyID, record.RetailCenterID); err != nil {
		return err
	}

	record.ID = uuid.New()
	record.CompanyID = companyID
	return s.inventoryRepo.Create(ctx, record)
}

func (s *inventoryService) GetLevels(ctx context.Context, companyID, centerID uuid.UUID) ([]*models.InventoryLevel, error) {
	return s.inventoryRepo.GetLevels(ctx, companyID, centerID)
}

// SetLevel overwrites the record quantity and bumps the owning center's
// current_stock in one transaction. The center accumulates the new absolute
// quantity on every call, not the delta between old and new.
func (s *inventoryService) SetLevel(ctx context.Context, companyID, centerID, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	if err := common.ValidateNonNegativeInt(quantity, "quantity"); err != nil {
		return nil, err
	}

	record, err := s.inventoryRepo.SetLevel(ctx, companyID, centerID, productID, quantity)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.DeleteInventoryRecord(ctx, companyID, centerID, productID); cacheErr != nil {
		log.Printf("Failed to invalidate cache for inventory %s-%s: %v", centerID.String(), productID.String(), cacheErr)
	}

	return record, nil
}

func (s *inventoryService) GetByCenterAndProduct(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error) {
	if cached, err := s.cacheService.GetInventoryRecord(ctx, companyID, centerID, productID); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors never fail the read; fall through to the store.
		log.Printf("Cache error for inventory %s-%s: %v", centerID.String(), productID.String(), err)
	}

	record, err := s.inventoryRepo.GetByCenterAndProduct(ctx, companyID, centerID, productID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetInventoryRecord(ctx, record, 5*time.Minute); cacheErr != nil {
		log.Printf("Failed to cache inventory %s-%s: %v", centerID.String(), productID.String(), cacheErr)
	}

	return record, nil
}
