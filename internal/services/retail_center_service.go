package services

import (
	"context"
	"log"

	"stockcast/internal/caching"
	"stockcast/internal/common"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/google/uuid"
)

type RetailCenterService interface {
	Create(ctx context.Context, companyID uuid.UUID, center *models.RetailCenter) error
	Update(ctx context.Context, companyID, id uuid.UUID, patch *models.RetailCenterPatch) (*models.RetailCenter, error)
	ListActive(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.RetailCenter, error)
}

type retailCenterService struct {
	retailCenterRepo repositories.RetailCenterRepository
	cacheService     caching.CacheService
}

func NewRetailCenterService(retailCenterRepo repositories.RetailCenterRepository, cacheService caching.CacheService) RetailCenterService {
	return &retailCenterService{
		retailCenterRepo: retailCenterRepo,
		cacheService:     cacheService,
	}
}

func (s *retailCenterService) Create(ctx context.Context, companyID uuid.UUID, center *models.RetailCenter) error {
	if err := common.ValidateRequiredString(center.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(center.Location, "location"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(center.Address, "address"); err != nil {
		return err
	}
	if err := common.ValidatePositiveInt(center.MaxCapacity, "max_capacity"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInt(center.SafetyStock, "safety_stock"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeInt(center.CurrentStock, "current_stock"); err != nil {
		return err
	}

	center.ID = uuid.New()
	center.CompanyID = companyID
	center.IsActive = true
	if err := s.retailCenterRepo.Create(ctx, center); err != nil {
		return err
	}

	s.invalidateCache(ctx, companyID)
	return nil
}

func (s *retailCenterService) Update(ctx context.Context, companyID, id uuid.UUID, patch *models.RetailCenterPatch) (*models.RetailCenter, error) {
	if patch.MaxCapacity != nil {
		if err := common.ValidatePositiveInt(*patch.MaxCapacity, "max_capacity"); err != nil {
			return nil, err
		}
	}
	if patch.SafetyStock != nil {
		if err := common.ValidateNonNegativeInt(*patch.SafetyStock, "safety_stock"); err != nil {
			return nil, err
		}
	}
	if patch.TurnoverRate != nil {
		if err := common.ValidateNonNegativeFloat(*patch.TurnoverRate, "turnover_rate"); err != nil {
			return nil, err
		}
	}

	center, err := s.retailCenterRepo.Patch(ctx, companyID, id, patch)
	if err != nil {
		return nil, err
	}

	// current_stock exceeding max_capacity is a soft bound: flag it, never reject.
	if center.CurrentStock > center.MaxCapacity {
		log.Printf("WARN: retail center %s stock %d exceeds capacity %d", center.ID.String(), center.CurrentStock, center.MaxCapacity)
	}

	s.invalidateCache(ctx, companyID)
	return center, nil
}

// Center writes change the metrics snapshot inputs; drop the cached company
// entries so the next read recomputes. Cache errors never fail the write.
func (s *retailCenterService) invalidateCache(ctx context.Context, companyID uuid.UUID) {
	if err := s.cacheService.InvalidateCompanyCache(ctx, companyID); err != nil {
		log.Printf("Failed to invalidate cache for company %s: %v", companyID.String(), err)
	}
}

func (s *retailCenterService) ListActive(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error) {
	return s.retailCenterRepo.ListActive(ctx, companyID)
}

func (s *retailCenterService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.RetailCenter, error) {
	return s.retailCenterRepo.GetByID(ctx, companyID, id)
}
