package services

import (
	"context"
	"io"
	"sync"
	"time"

	"stockcast/internal/common"
	"stockcast/internal/models"

	"github.com/google/uuid"
)

// In-memory stand-ins for the repository and cache interfaces. They enforce
// the same company scoping as the SQL layer so service tests exercise real
// tenancy behavior.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.SKU == product.SKU {
			return common.DuplicateKeyError("product sku")
		}
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, common.NotFoundError("product")
	}
	return p, nil
}

func (f *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, common.NotFoundError("product")
}

func (f *fakeProductRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Product
	for _, p := range f.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[product.ID]
	if !ok || p.CompanyID != product.CompanyID {
		return common.NotFoundError("product")
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.CompanyID != companyID {
		return common.NotFoundError("product")
	}
	delete(f.products, id)
	return nil
}

type centerKey struct {
	centerID  uuid.UUID
	productID uuid.UUID
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	records map[centerKey]*models.InventoryRecord
	centers map[uuid.UUID]*models.RetailCenter
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		records: make(map[centerKey]*models.InventoryRecord),
		centers: make(map[uuid.UUID]*models.RetailCenter),
	}
}

func (f *fakeInventoryRepo) Create(ctx context.Context, record *models.InventoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := centerKey{record.RetailCenterID, record.ProductID}
	if _, exists := f.records[key]; exists {
		return common.DuplicateKeyError("inventory record")
	}
	f.records[key] = record
	return nil
}

func (f *fakeInventoryRepo) GetByCenterAndProduct(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[centerKey{centerID, productID}]
	if !ok || rec.CompanyID != companyID {
		return nil, common.NotFoundError("inventory record")
	}
	return rec, nil
}

func (f *fakeInventoryRepo) GetLevels(ctx context.Context, companyID, centerID uuid.UUID) ([]*models.InventoryLevel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	levels := []*models.InventoryLevel{}
	for key, rec := range f.records {
		if key.centerID == centerID && rec.CompanyID == companyID {
			levels = append(levels, &models.InventoryLevel{Record: rec})
		}
	}
	return levels, nil
}

// SetLevel serializes writers on the fake's mutex the way the SQL row lock
// does, including the current_stock accumulation side effect.
func (f *fakeInventoryRepo) SetLevel(ctx context.Context, companyID, centerID, productID uuid.UUID, quantity int) (*models.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[centerKey{centerID, productID}]
	if !ok || rec.CompanyID != companyID {
		return nil, common.NotFoundError("inventory record")
	}
	center, ok := f.centers[centerID]
	if !ok {
		return nil, common.PartialFailureError("stock level written but retail center missing; changes rolled back", nil)
	}
	rec.Quantity = quantity
	rec.LastUpdated = time.Now()
	center.CurrentStock += quantity
	return rec, nil
}

func (f *fakeInventoryRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.InventoryRecord
	for _, rec := range f.records {
		if rec.CompanyID == companyID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeRetailCenterRepo struct {
	mu      sync.Mutex
	centers map[uuid.UUID]*models.RetailCenter
}

func newFakeRetailCenterRepo() *fakeRetailCenterRepo {
	return &fakeRetailCenterRepo{centers: make(map[uuid.UUID]*models.RetailCenter)}
}

func (f *fakeRetailCenterRepo) Create(ctx context.Context, center *models.RetailCenter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.centers[center.ID] = center
	return nil
}

func (f *fakeRetailCenterRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.RetailCenter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.centers[id]
	if !ok || c.CompanyID != companyID {
		return nil, common.NotFoundError("retail center")
	}
	return c, nil
}

func (f *fakeRetailCenterRepo) Patch(ctx context.Context, companyID, id uuid.UUID, patch *models.RetailCenterPatch) (*models.RetailCenter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.centers[id]
	if !ok || c.CompanyID != companyID {
		return nil, common.NotFoundError("retail center")
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Location != nil {
		c.Location = *patch.Location
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.MaxCapacity != nil {
		c.MaxCapacity = *patch.MaxCapacity
	}
	if patch.SafetyStock != nil {
		c.SafetyStock = *patch.SafetyStock
	}
	if patch.TurnoverRate != nil {
		c.TurnoverRate = *patch.TurnoverRate
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
	return c, nil
}

func (f *fakeRetailCenterRepo) ListActive(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.RetailCenter
	for _, c := range f.centers {
		if c.CompanyID == companyID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRetailCenterRepo) ListBelowSafetyStock(ctx context.Context, companyID uuid.UUID) ([]*models.RetailCenter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.RetailCenter
	for _, c := range f.centers {
		if c.CompanyID == companyID && c.IsActive && c.CurrentStock < c.SafetyStock {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRetailCenterRepo) InventoryMetrics(ctx context.Context, companyID uuid.UUID) (*models.InventoryMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	metrics := &models.InventoryMetrics{}
	var sum float64
	var n int
	for _, c := range f.centers {
		if c.CompanyID != companyID {
			continue
		}
		metrics.TotalCapacity += c.MaxCapacity
		metrics.TotalCurrentStock += c.CurrentStock
		sum += c.TurnoverRate
		n++
	}
	if n > 0 {
		avg := sum / float64(n)
		metrics.AvgTurnoverRate = &avg
	}
	return metrics, nil
}

type fakeForecastRepo struct {
	mu        sync.Mutex
	forecasts map[uuid.UUID]*models.Forecast
}

func newFakeForecastRepo() *fakeForecastRepo {
	return &fakeForecastRepo{forecasts: make(map[uuid.UUID]*models.Forecast)}
}

func (f *fakeForecastRepo) Create(ctx context.Context, forecast *models.Forecast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forecasts[forecast.ID] = forecast
	return nil
}

func (f *fakeForecastRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fc, ok := f.forecasts[id]
	if !ok || fc.CompanyID != companyID {
		return nil, common.NotFoundError("forecast")
	}
	return fc, nil
}

func (f *fakeForecastRepo) UpdateActual(ctx context.Context, companyID, id uuid.UUID, actualDemand int, accuracy float64) (*models.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fc, ok := f.forecasts[id]
	if !ok || fc.CompanyID != companyID {
		return nil, common.NotFoundError("forecast")
	}
	fc.ActualDemand = &actualDemand
	fc.Accuracy = &accuracy
	return fc, nil
}

func (f *fakeForecastRepo) History(ctx context.Context, companyID uuid.UUID, limit int) ([]*models.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Forecast
	for _, fc := range f.forecasts {
		if fc.CompanyID == companyID {
			out = append(out, fc)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeForecastRepo) Metrics(ctx context.Context, companyID uuid.UUID) (*models.ForecastMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	metrics := &models.ForecastMetrics{}
	var accSum, demandSum float64
	var accN int
	for _, fc := range f.forecasts {
		if fc.CompanyID != companyID {
			continue
		}
		metrics.TotalForecasts++
		demandSum += float64(fc.PredictedDemand)
		if fc.Accuracy != nil {
			accSum += *fc.Accuracy
			accN++
		}
	}
	if metrics.TotalForecasts > 0 {
		avgDemand := demandSum / float64(metrics.TotalForecasts)
		metrics.AvgDemand = &avgDemand
	}
	if accN > 0 {
		avgAcc := accSum / float64(accN)
		metrics.AvgAccuracy = &avgAcc
	}
	return metrics, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, common.NotFoundError("order")
	}
	return o, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Order
	for _, o := range f.orders {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, common.NotFoundError("order")
	}
	o.Status = status
	return o, nil
}

type fakeMediaService struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeMediaService() *fakeMediaService {
	return &fakeMediaService{objects: make(map[string][]byte)}
}

func (f *fakeMediaService) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucketName+"/"+objectName] = data
	return nil
}

func (f *fakeMediaService) PresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	return "https://media.test/" + bucketName + "/" + objectName, nil
}

func (f *fakeMediaService) Delete(ctx context.Context, bucketName, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, bucketName+"/"+objectName)
	return nil
}

func (f *fakeMediaService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	return nil
}

type fakeCacheService struct{}

func (fakeCacheService) GetInventoryRecord(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error) {
	return nil, nil
}
func (fakeCacheService) SetInventoryRecord(ctx context.Context, record *models.InventoryRecord, ttl time.Duration) error {
	return nil
}
func (fakeCacheService) DeleteInventoryRecord(ctx context.Context, companyID, centerID, productID uuid.UUID) error {
	return nil
}
func (fakeCacheService) GetCompanyMetrics(ctx context.Context, companyID uuid.UUID) (map[string]interface{}, error) {
	return nil, nil
}
func (fakeCacheService) SetCompanyMetrics(ctx context.Context, companyID uuid.UUID, metrics map[string]interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCacheService) InvalidateCompanyCache(ctx context.Context, companyID uuid.UUID) error {
	return nil
}
func (fakeCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}
func (fakeCacheService) GetString(ctx context.Context, key string) (string, error) { return "", nil }
func (fakeCacheService) Delete(ctx context.Context, key string) error              { return nil }
