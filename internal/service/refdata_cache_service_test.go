package service

import (
	"context"
	"io"
	"testing"

	"cronosflow/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type countingServiceRepo struct {
	service *entity.Service
	calls   int
}

func (r *countingServiceRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	r.calls++
	if r.service != nil && r.service.ID == id {
		return r.service, nil
	}
	return nil, nil
}

func (r *countingServiceRepo) FindAll(db *gorm.DB) ([]entity.Service, error) {
	return nil, nil
}

type countingProfessionalRepo struct {
	professionals []entity.Professional
	calls         int
}

func (r *countingProfessionalRepo) FindActive(db *gorm.DB) ([]entity.Professional, error) {
	r.calls++
	return r.professionals, nil
}

func (r *countingProfessionalRepo) FindAll(db *gorm.DB) ([]entity.Professional, error) {
	return r.professionals, nil
}

func cacheFixture(t *testing.T, withRedis bool) (*RefDataCache, *countingServiceRepo, *countingProfessionalRepo) {
	t.Helper()

	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var client *redis.Client
	if withRedis {
		mr := miniredis.RunT(t)
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	serviceRepo := &countingServiceRepo{}
	professionalRepo := &countingProfessionalRepo{}
	return NewRefDataCache(db, client, log, serviceRepo, professionalRepo), serviceRepo, professionalRepo
}

func TestGetService_SecondReadServedFromCache(t *testing.T) {
	cache, serviceRepo, _ := cacheFixture(t, true)
	id := uuid.New()
	serviceRepo.service = &entity.Service{ID: id, Name: "Corte", DurationMin: 45}

	first, err := cache.GetService(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := cache.GetService(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, 1, serviceRepo.calls)
	assert.Equal(t, "Corte", second.Name)
	assert.Equal(t, 45, second.DurationMin)
}

func TestGetService_UnknownIDNotCached(t *testing.T) {
	cache, serviceRepo, _ := cacheFixture(t, true)
	id := uuid.New()

	service, err := cache.GetService(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, service)

	_, err = cache.GetService(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, serviceRepo.calls)
}

func TestGetService_WorksWithoutRedis(t *testing.T) {
	cache, serviceRepo, _ := cacheFixture(t, false)
	id := uuid.New()
	serviceRepo.service = &entity.Service{ID: id, Name: "Corte", DurationMin: 45}

	service, err := cache.GetService(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, service)
	assert.Equal(t, "Corte", service.Name)
}

func TestActiveProfessionals_SecondReadServedFromCache(t *testing.T) {
	cache, _, professionalRepo := cacheFixture(t, true)
	professionalRepo.professionals = []entity.Professional{
		{ID: uuid.New(), Name: "Ana", Active: true},
		{ID: uuid.New(), Name: "Bia", Active: true},
	}

	first, err := cache.ActiveProfessionals(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := cache.ActiveProfessionals(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)

	assert.Equal(t, 1, professionalRepo.calls)
	assert.Equal(t, "Ana", second[0].Name)
}

func TestGetService_CorruptCacheEntryFallsBack(t *testing.T) {
	cache, serviceRepo, _ := cacheFixture(t, true)
	id := uuid.New()
	serviceRepo.service = &entity.Service{ID: id, Name: "Corte", DurationMin: 45}

	err := cache.redisClient.Set(context.Background(), RedisServiceKeyPrefix+id.String(), "{not json", 0).Err()
	require.NoError(t, err)

	service, err := cache.GetService(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, service)
	assert.Equal(t, 1, serviceRepo.calls)
}
