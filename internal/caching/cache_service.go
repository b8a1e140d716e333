package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"stockcast/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Inventory record caching
	GetInventoryRecord(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error)
	SetInventoryRecord(ctx context.Context, record *models.InventoryRecord, ttl time.Duration) error
	DeleteInventoryRecord(ctx context.Context, companyID, centerID, productID uuid.UUID) error

	// Metrics snapshot caching
	GetCompanyMetrics(ctx context.Context, companyID uuid.UUID) (map[string]interface{}, error)
	SetCompanyMetrics(ctx context.Context, companyID uuid.UUID, metrics map[string]interface{}, ttl time.Duration) error

	// Cache invalidation
	InvalidateCompanyCache(ctx context.Context, companyID uuid.UUID) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func inventoryKey(companyID, centerID, productID uuid.UUID) string {
	return fmt.Sprintf("stockcast:inventory:%s:%s:%s", companyID.String(), centerID.String(), productID.String())
}

func (r *redisCacheService) GetInventoryRecord(ctx context.Context, companyID, centerID, productID uuid.UUID) (*models.InventoryRecord, error) {
	data, err := r.client.Get(ctx, inventoryKey(companyID, centerID, productID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var record models.InventoryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *redisCacheService) SetInventoryRecord(ctx context.Context, record *models.InventoryRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	key := inventoryKey(record.CompanyID, record.RetailCenterID, record.ProductID)
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteInventoryRecord(ctx context.Context, companyID, centerID, productID uuid.UUID) error {
	return r.client.Del(ctx, inventoryKey(companyID, centerID, productID)).Err()
}

func (r *redisCacheService) GetCompanyMetrics(ctx context.Context, companyID uuid.UUID) (map[string]interface{}, error) {
	key := fmt.Sprintf("stockcast:metrics:%s", companyID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var metrics map[string]interface{}
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *redisCacheService) SetCompanyMetrics(ctx context.Context, companyID uuid.UUID, metrics map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("stockcast:metrics:%s", companyID.String())
	data, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateCompanyCache(ctx context.Context, companyID uuid.UUID) error {
	pattern := fmt.Sprintf("stockcast:*:%s*", companyID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
