package helper

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	adminModel "hotel/internal/domains/admin/model"
	adminRepo "hotel/internal/domains/admin/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const seedUser = "seed"

// DefaultRooms is the catalogue a fresh install starts with.
func DefaultRooms() []roomModel.Room {
	now := timezone.Now()

	room := func(roomType string, price int64, maxGuests int, description, imageURL string, amenities ...string) roomModel.Room {
		return roomModel.Room{
			ID:          uuid.NewString(),
			RoomType:    roomType,
			Price:       decimal.NewFromInt(price),
			MaxGuests:   maxGuests,
			Description: description,
			ImageURL:    imageURL,
			Status:      roomModel.StatusAvailable,
			Amenities:   roomModel.UniqueAmenities(amenities),
			Metadata:    gModel.NewMetadata(seedUser, now),
		}
	}

	return []roomModel.Room{
		room("Deluxe Room", 75, 2,
			"Spacious deluxe room with modern amenities and city view",
			"https://images.pexels.com/photos/164595/pexels-photo-164595.jpeg",
			"WiFi", "TV", "AC", "Mini Bar", "Room Service"),
		room("Executive Suite", 120, 3,
			"Luxurious executive suite with separate living area and premium amenities",
			"https://images.pexels.com/photos/271624/pexels-photo-271624.jpeg",
			"WiFi", "TV", "AC", "Mini Bar", "Room Service", "Jacuzzi", "Balcony"),
		room("Family Room", 95, 4,
			"Perfect for families with extra space and comfortable bedding arrangements",
			"https://images.pexels.com/photos/271618/pexels-photo-271618.jpeg",
			"WiFi", "TV", "AC", "Mini Bar", "Room Service", "Extra Beds"),
		room("Presidential Suite", 200, 4,
			"Ultimate luxury with panoramic views, private lounge, and personalized service",
			"https://images.pexels.com/photos/262048/pexels-photo-262048.jpeg",
			"WiFi", "TV", "AC", "Mini Bar", "Room Service", "Jacuzzi", "Balcony", "Kitchen", "Private Butler"),
	}
}

func Seed(cfg *config.Config) error {
	otl := otel.New(cfg)
	db := postgres.New(cfg)
	client := redis.New(cfg)

	return SeedWith(context.Background(), cfg, roomRepo.New(cfg, db, client, otl), adminRepo.New(cfg, db, client, otl))
}

// SeedWith fills an empty room catalogue and creates the configured admin if missing.
// Running it twice changes nothing.
func SeedWith(ctx context.Context, cfg *config.Config, rooms roomRepo.Room, admins adminRepo.Admin) error {
	count, err := rooms.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}

	if count == 0 {
		defaults := DefaultRooms()

		if err := rooms.InsertBulk(ctx, defaults); err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}

		log.Info().Int("rooms", len(defaults)).Msg("Seeded room catalogue")
	}

	seedAdmin := cfg.Seed.Admin

	exists, err := admins.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    adminModel.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    seedAdmin.Username,
				Table:    adminModel.TableName,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}

	if exists {
		return nil
	}

	hash, err := password.Hash(seedAdmin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	err = admins.Insert(ctx, adminModel.Admin{
		ID:           uuid.NewString(),
		Username:     seedAdmin.Username,
		Email:        seedAdmin.Email,
		PasswordHash: hash,
		Metadata:     gModel.NewMetadata(seedUser, timezone.Now()),
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info().Str("username", seedAdmin.Username).Msg("Seeded admin account")

	return nil
}
