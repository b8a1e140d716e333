package analytics

import (
	"context"
	"log"
	"time"

	"stockcast/internal/caching"
	"stockcast/internal/models"
	"stockcast/internal/repositories"

	"github.com/google/uuid"
)

// metricsTTL bounds how stale a cached metrics snapshot may get between the
// background refreshes.
const metricsTTL = 10 * time.Minute

// Service computes read-side metrics over the stores, scoped per company.
type Service struct {
	retailCenterRepo repositories.RetailCenterRepository
	forecastRepo     repositories.ForecastRepository
	cacheService     caching.CacheService
}

func NewService(retailCenterRepo repositories.RetailCenterRepository, forecastRepo repositories.ForecastRepository, cacheService caching.CacheService) *Service {
	return &Service{
		retailCenterRepo: retailCenterRepo,
		forecastRepo:     forecastRepo,
		cacheService:     cacheService,
	}
}

// InventoryMetrics returns total capacity, total current stock and mean
// turnover across all of the company's retail centers. An empty company
// yields zero sums and a nil average, never an error.
func (s *Service) InventoryMetrics(ctx context.Context, companyID uuid.UUID) (*models.InventoryMetrics, error) {
	return s.retailCenterRepo.InventoryMetrics(ctx, companyID)
}

// ForecastMetrics returns average accuracy, forecast count and average
// predicted demand over all of the company's forecasts.
func (s *Service) ForecastMetrics(ctx context.Context, companyID uuid.UUID) (*models.ForecastMetrics, error) {
	return s.forecastRepo.Metrics(ctx, companyID)
}

// RefreshSnapshot recomputes both aggregates and caches them as a snapshot.
// Called by the background scheduler; read paths fall back to the stores when
// the snapshot is missing.
func (s *Service) RefreshSnapshot(ctx context.Context, companyID uuid.UUID) error {
	inventory, err := s.InventoryMetrics(ctx, companyID)
	if err != nil {
		return err
	}
	forecast, err := s.ForecastMetrics(ctx, companyID)
	if err != nil {
		return err
	}

	snapshot := map[string]interface{}{
		"inventory":    inventory,
		"forecast":     forecast,
		"refreshed_at": time.Now(),
	}
	if err := s.cacheService.SetCompanyMetrics(ctx, companyID, snapshot, metricsTTL); err != nil {
		log.Printf("Failed to cache metrics snapshot for company %s: %v", companyID.String(), err)
		return err
	}
	return nil
}

// CachedSnapshot returns the cached metrics snapshot, or nil on a miss.
func (s *Service) CachedSnapshot(ctx context.Context, companyID uuid.UUID) (map[string]interface{}, error) {
	return s.cacheService.GetCompanyMetrics(ctx, companyID)
}
