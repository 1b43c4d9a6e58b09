package helper_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel/mocks"
	adminModel "hotel/internal/domains/admin/model"
	adminRepo "hotel/internal/domains/admin/repository"
	roomRepo "hotel/internal/domains/room/repository"
	gDto "hotel/shared/dto"
	"hotel/shared/password"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedWith(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Seed.Admin.Username = "admin"
	cfg.Seed.Admin.Password = "admin123"
	cfg.Seed.Admin.Email = "admin@omangrandhotel.com"

	rooms := roomRepo.NewKV("test", client, mocks.NewOtel())
	admins := adminRepo.NewKV("test", client, mocks.NewOtel())
	ctx := context.Background()

	require.NoError(t, helper.SeedWith(ctx, cfg, rooms, admins))
	require.NoError(t, helper.SeedWith(ctx, cfg, rooms, admins))

	count, err := rooms.Count(ctx, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, len(helper.DefaultRooms()), count)

	admin, err := admins.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: adminModel.FieldUsername, Operator: gDto.FilterOperatorEq, Value: "admin"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "admin@omangrandhotel.com", admin.Email)
	assert.NoError(t, password.Verify("admin123", admin.PasswordHash))
}

func TestDefaultRooms(t *testing.T) {
	rooms := helper.DefaultRooms()

	require.Len(t, rooms, 4)
	assert.Equal(t, "Deluxe Room", rooms[0].RoomType)
	assert.Equal(t, "75", rooms[0].Price.String())
	assert.Equal(t, 2, rooms[0].MaxGuests)
	assert.True(t, rooms[0].IsAvailable())
	assert.NotEqual(t, rooms[0].ID, rooms[1].ID)
}
