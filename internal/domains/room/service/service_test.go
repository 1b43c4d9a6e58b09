package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) allowCache() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func deluxe() model.Room {
	return model.Room{
		ID:        "r1",
		RoomType:  "Deluxe",
		Price:     decimal.NewFromInt(75),
		MaxGuests: 2,
		Status:    model.StatusAvailable,
		Amenities: pq.StringArray{"WiFi", "TV"},
		ImageURL:  "https://cdn.example.com/room/old.jpg",
	}
}

type fakeFile struct {
	*strings.Reader
}

func (fakeFile) Close() error { return nil }

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.RoomResponse)
	}{
		{
			name: "defaults status and dedupes amenities",
			req: dto.CreateRoomRequest{
				RoomType:  "Deluxe",
				Price:     decimal.NewFromInt(75),
				MaxGuests: 2,
				Amenities: []string{"WiFi", " WiFi ", "TV"},
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, model.StatusAvailable, room.Status)
					assert.Equal(t, "admin-1", room.CreatedBy)

					return nil
				})
			},
			check: func(t *testing.T, res dto.RoomResponse) {
				assert.Equal(t, []string{"WiFi", "TV"}, res.Amenities)
				assert.Equal(t, "75.00 OMR", res.FormattedPrice)
			},
		},
		{
			name: "negative price",
			req: dto.CreateRoomRequest{
				RoomType:  "Deluxe",
				Price:     decimal.NewFromInt(-1),
				MaxGuests: 2,
			},
			setupMock: func(fixture) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "upload without storage",
			req: dto.CreateRoomRequest{
				RoomType:  "Deluxe",
				Price:     decimal.NewFromInt(75),
				MaxGuests: 2,
				Image:     &multipart.FileHeader{Filename: "room.png"},
				ImageFile: fakeFile{strings.NewReader("png")},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(false)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "uploaded image is removed when insert fails",
			req: dto.CreateRoomRequest{
				RoomType:  "Deluxe",
				Price:     decimal.NewFromInt(75),
				MaxGuests: 2,
				Image:     &multipart.FileHeader{Filename: "room.PNG"},
				ImageFile: fakeFile{strings.NewReader("png")},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(true)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
						assert.True(t, strings.HasSuffix(name, ".png"))

						return "https://cdn.example.com/room/new.png", nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/room/new.png").Return(nil)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCache()
			tt.setupMock(f)

			res, err := f.svc.Create(userCtx(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.GetRoomsResponse)
				res.TotalData = 7

				return nil
			})

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 7, res.TotalData)
	})

	t.Run("cache miss", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{deluxe()}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		require.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		require.Len(t, res.Rooms, 1)
		assert.Equal(t, "Deluxe", res.Rooms[0].RoomType)
	})

	t.Run("count error", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name     string
		room     model.Room
		repoErr  error
		wantCode int
	}{
		{name: "found", room: deluxe()},
		{name: "not found", room: model.Room{}, wantCode: http.StatusNotFound},
		{name: "repository error", repoErr: errors.New("database error"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCache()

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.room, tt.repoErr)

			res, err := f.svc.Get(context.Background(), "r1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "r1", res.ID)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		price := decimal.NewFromInt(90)
		updated := deluxe()
		updated.Price = price

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Contains(t, fields, model.FieldPrice)
					assert.NotContains(t, fields, model.FieldRoomType)
					assert.NotContains(t, fields, model.FieldAmenities)
					assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)

		res, err := f.svc.Update(userCtx(), dto.UpdateRoomRequest{Price: &price}, "r1")

		require.NoError(t, err)
		assert.True(t, price.Equal(res.Price))
		assert.Equal(t, "Deluxe", res.RoomType)
	})

	t.Run("replacing the image removes the old object", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil).Times(2)
		f.s3.EXPECT().Enabled().Return(true)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/room/new.jpg", nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.example.com/room/new.jpg", fields[model.FieldImageURL])

				return nil
			})
		f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/room/old.jpg").Return(nil)

		_, err := f.svc.Update(userCtx(), dto.UpdateRoomRequest{
			Image:     &multipart.FileHeader{Filename: "new.jpg"},
			ImageFile: fakeFile{strings.NewReader("jpg")},
		}, "r1")

		assert.NoError(t, err)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(userCtx(), dto.UpdateRoomRequest{RoomType: "Suite"}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().DeleteFile(gomock.Any(), deluxe().ImageURL).Return(nil)
			},
		},
		{
			name: "image cleanup failure is not fatal",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any()).Return(errors.New("s3 down"))
			},
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCache()
			tt.setupMock(f)

			err := f.svc.Delete(userCtx(), "r1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Amenities(t *testing.T) {
	t.Run("add new amenity", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		withPool := deluxe()
		withPool.Amenities = append(withPool.Amenities, "Pool")

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, pq.StringArray{"WiFi", "TV", "Pool"}, fields[model.FieldAmenities])

					return nil
				}),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(withPool, nil),
		)

		res, err := f.svc.AddAmenity(userCtx(), "r1", " Pool ")

		require.NoError(t, err)
		assert.Equal(t, []string{"WiFi", "TV", "Pool"}, res.Amenities)
	})

	t.Run("duplicate amenity is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)

		res, err := f.svc.AddAmenity(userCtx(), "r1", "WiFi")

		require.NoError(t, err)
		assert.Equal(t, []string{"WiFi", "TV"}, res.Amenities)
	})

	t.Run("blank amenity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AddAmenity(userCtx(), "r1", "   ")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("remove amenity", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		withoutTV := deluxe()
		withoutTV.Amenities = pq.StringArray{"WiFi"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(withoutTV, nil)

		res, err := f.svc.RemoveAmenity(userCtx(), "r1", "TV")

		require.NoError(t, err)
		assert.Equal(t, []string{"WiFi"}, res.Amenities)
	})

	t.Run("remove unknown amenity", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(deluxe(), nil)

		res, err := f.svc.RemoveAmenity(userCtx(), "r1", "Sauna")

		require.NoError(t, err)
		assert.Len(t, res.Amenities, 2)
	})
}
