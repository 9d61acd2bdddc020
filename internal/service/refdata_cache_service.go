package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cronosflow/internal/domain/entity"
	"cronosflow/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// Redis key prefixes for reference data
	RedisServiceKeyPrefix       = "servico:"
	RedisActiveProfessionalsKey = "profissionais:ativos"

	// Reference data changes rarely (dashboard edits); a short TTL keeps the
	// cache honest without an invalidation protocol.
	refDataTTL = 5 * time.Minute
)

// RefDataCache is a read-through cache for the reference data every
// availability and booking call needs: service records (duration, price) and
// the active professional pool. Redis is best-effort: any cache failure falls
// back to the database and is logged, never surfaced.
type RefDataCache struct {
	db               *gorm.DB
	redisClient      *redis.Client
	log              *logrus.Logger
	serviceRepo      repository.ServiceRepository
	professionalRepo repository.ProfessionalRepository
}

func NewRefDataCache(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	professionalRepo repository.ProfessionalRepository,
) *RefDataCache {
	return &RefDataCache{
		db:               db,
		redisClient:      redisClient,
		log:              log,
		serviceRepo:      serviceRepo,
		professionalRepo: professionalRepo,
	}
}

// GetService returns a service record by ID, or nil when it does not exist.
func (c *RefDataCache) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	key := fmt.Sprintf("%s%s", RedisServiceKeyPrefix, id)

	if c.redisClient != nil {
		cached, err := c.redisClient.Get(ctx, key).Bytes()
		if err == nil {
			var service entity.Service
			if err := json.Unmarshal(cached, &service); err == nil {
				return &service, nil
			}
			c.log.Warnf("Corrupt cache entry for %s, falling back to DB", key)
		} else if err != redis.Nil {
			c.log.Warnf("Redis get failed for %s: %+v", key, err)
		}
	}

	service, err := c.serviceRepo.FindByID(c.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, nil
	}

	c.cacheSet(ctx, key, service)
	return service, nil
}

// ActiveProfessionals returns the active professional pool.
func (c *RefDataCache) ActiveProfessionals(ctx context.Context) ([]entity.Professional, error) {
	if c.redisClient != nil {
		cached, err := c.redisClient.Get(ctx, RedisActiveProfessionalsKey).Bytes()
		if err == nil {
			var professionals []entity.Professional
			if err := json.Unmarshal(cached, &professionals); err == nil {
				return professionals, nil
			}
			c.log.Warnf("Corrupt cache entry for %s, falling back to DB", RedisActiveProfessionalsKey)
		} else if err != redis.Nil {
			c.log.Warnf("Redis get failed for %s: %+v", RedisActiveProfessionalsKey, err)
		}
	}

	professionals, err := c.professionalRepo.FindActive(c.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, RedisActiveProfessionalsKey, professionals)
	return professionals, nil
}

func (c *RefDataCache) cacheSet(ctx context.Context, key string, value interface{}) {
	if c.redisClient == nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redisClient.Set(ctx, key, encoded, refDataTTL).Err(); err != nil {
		c.log.Warnf("Redis set failed for %s (non-fatal): %+v", key, err)
	}
}
