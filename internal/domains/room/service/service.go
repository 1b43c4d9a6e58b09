package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"

	messageRoomNotFound    = "room not found"
	messageUploadsDisabled = "image uploads are not configured"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	AddAmenity(ctx context.Context, id, amenity string) (dto.RoomResponse, error)
	RemoveAmenity(ctx context.Context, id, amenity string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	room := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateLists(ctx)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save rooms to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room count to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Validate(); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	imageURL, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, user)
	if req.Amenities != nil {
		fields[model.FieldAmenities] = model.UniqueAmenities(req.Amenities)
	}

	if imageURL != constant.Empty {
		fields[model.FieldImageURL] = imageURL
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")
		s.discardImage(ctx, imageURL)

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if imageURL != constant.Empty || (req.ImageURL != constant.Empty && req.ImageURL != current.ImageURL) {
		s.discardImage(ctx, current.ImageURL)
	}

	s.invalidate(ctx, id)

	return s.reload(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.discardImage(ctx, room.ImageURL)
	s.invalidate(ctx, id)

	return nil
}

// AddAmenity appends a label to the room. Adding a label that is already listed is a no-op.
func (s *serviceImpl) AddAmenity(ctx context.Context, id, amenity string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.AddAmenity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if strings.TrimSpace(amenity) == constant.Empty {
		return res, failure.BadRequestFromString("amenity is required") //nolint:wrapcheck
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !room.AddAmenity(amenity) {
		res.FromModel(room)

		return res, nil
	}

	return s.saveAmenities(ctx, room)
}

// RemoveAmenity drops every entry exactly equal to amenity.
func (s *serviceImpl) RemoveAmenity(ctx context.Context, id, amenity string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.RemoveAmenity")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !room.RemoveAmenity(amenity) {
		res.FromModel(room)

		return res, nil
	}

	return s.saveAmenities(ctx, room)
}

func (s *serviceImpl) saveAmenities(ctx context.Context, room model.Room) (res dto.RoomResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldAmenities:     room.Amenities,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(room.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("failed to update room amenities")

		return res, fmt.Errorf("failed to update room amenities: %w", err)
	}

	s.invalidate(ctx, room.ID)

	return s.reload(ctx, room.ID)
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(messageRoomNotFound) // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) reload(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (string, error) {
	if header == nil || file == nil {
		return constant.Empty, nil
	}

	if !s.s3.Enabled() {
		return constant.Empty, failure.BadRequestFromString(messageUploadsDisabled) //nolint:wrapcheck
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	url, err := s.s3.UploadFile(ctx, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, url); err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to delete room image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cache")
	}

	s.invalidateLists(ctx)
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, cacheCountRoom)
}
