package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomEntry struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	mock.ExpectSet("room:get:r-1", []byte(`{"id":"r-1","price":"75"}`), time.Minute).SetVal("OK")
	require.NoError(t, redisCache.Save(ctx, "room:get:r-1", roomEntry{ID: "r-1", Price: "75"}, 60))

	mock.ExpectGet("room:get:r-1").SetVal(`{"id":"r-1","price":"75"}`)

	var got roomEntry
	require.NoError(t, redisCache.Get(ctx, "room:get:r-1", &got))
	assert.Equal(t, roomEntry{ID: "r-1", Price: "75"}, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetString(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())

	mock.ExpectGet("token:revoked:abc").SetVal("1")

	var got string
	require.NoError(t, redisCache.Get(context.Background(), "token:revoked:abc", &got))
	assert.Equal(t, "1", got)
}

func TestRedisCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())

	mock.ExpectGet("room:get:missing").RedisNil()

	var got roomEntry
	err := redisCache.Get(context.Background(), "room:get:missing", &got)

	require.Error(t, err)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_Increment(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	mock.ExpectIncr("limiter:ip").SetVal(1)
	mock.ExpectExpire("limiter:ip", 30*time.Second).SetVal(true)

	count, err := redisCache.Increment(ctx, "limiter:ip", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	mock.ExpectIncr("limiter:ip").SetVal(2)

	count, err = redisCache.Increment(ctx, "limiter:ip", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Exists(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())

	mock.ExpectExists("token:revoked:abc").SetVal(1)

	found, err := redisCache.Exists(context.Background(), "token:revoked:abc")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRedisCache_Clear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())

	mock.ExpectScan(0, "room:gets*", 100).SetVal([]string{"room:gets:1", "room:gets:2"}, 7)
	mock.ExpectDel("room:gets:1", "room:gets:2").SetVal(2)
	mock.ExpectScan(7, "room:gets*", 100).SetVal([]string{}, 0)

	require.NoError(t, redisCache.Clear(context.Background(), "room:gets*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_DeleteError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, mocks.NewOtel())

	mock.ExpectDel("room:get:r-1").SetErr(errors.New("connection refused"))

	err := redisCache.Delete(context.Background(), "room:get:r-1")
	assert.ErrorContains(t, err, "failed to delete cache value")
}
