package dto_test

import (
	"net/http"
	"testing"

	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomRequest_ToModel(t *testing.T) {
	req := dto.CreateRoomRequest{
		RoomType:  "Deluxe Room",
		Price:     decimal.NewFromInt(75),
		MaxGuests: 2,
		ImageURL:  "https://images.example.com/deluxe.jpg",
		Amenities: []string{"WiFi", "TV", "WiFi"},
	}

	room := req.ToModel("admin-1", "")

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, "Deluxe Room", room.RoomType)
	assert.True(t, room.Price.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, model.StatusAvailable, room.Status, "status defaults to Available")
	assert.Equal(t, "https://images.example.com/deluxe.jpg", room.ImageURL)
	assert.Equal(t, pq.StringArray{"WiFi", "TV"}, room.Amenities)
	assert.Equal(t, "admin-1", room.CreatedBy)
	assert.False(t, room.CreatedAt.IsZero())

	uploaded := req.ToModel("admin-1", "https://cdn.example.com/room/abc.png")
	assert.Equal(t, "https://cdn.example.com/room/abc.png", uploaded.ImageURL, "uploaded image wins")
}

func TestCreateRoomRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateRoomRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  dto.CreateRoomRequest{RoomType: "Family Room", Price: decimal.NewFromInt(95), MaxGuests: 4, Status: model.StatusNotAvailable},
		},
		{
			name:    "missing room type",
			req:     dto.CreateRoomRequest{Price: decimal.NewFromInt(95), MaxGuests: 4},
			wantErr: "room_type is required",
		},
		{
			name:    "zero guests",
			req:     dto.CreateRoomRequest{RoomType: "Family Room", Price: decimal.NewFromInt(95)},
			wantErr: "max_guests is required",
		},
		{
			name:    "unknown status",
			req:     dto.CreateRoomRequest{RoomType: "Family Room", MaxGuests: 2, Status: "Booked"},
			wantErr: "status",
		},
		{
			name:    "negative price",
			req:     dto.CreateRoomRequest{RoomType: "Family Room", Price: decimal.NewFromInt(-1), MaxGuests: 2},
			wantErr: dto.MessageNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if err == nil {
				err = tt.req.Validate()
			}

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestUpdateRoomRequest_Validate(t *testing.T) {
	negative := decimal.NewFromInt(-5)
	positive := decimal.NewFromInt(5)

	assert.Error(t, (&dto.UpdateRoomRequest{Price: &negative}).Validate())
	assert.NoError(t, (&dto.UpdateRoomRequest{Price: &positive}).Validate())
	assert.NoError(t, (&dto.UpdateRoomRequest{}).Validate())
}

func TestRoomResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	room := model.Room{
		ID:        "room-1",
		RoomType:  "Executive Suite",
		Price:     decimal.NewFromInt(120),
		MaxGuests: 3,
		Status:    model.StatusAvailable,
		Amenities: pq.StringArray{"WiFi", "Jacuzzi"},
		Metadata:  gModel.NewMetadata("admin", now),
	}

	var res dto.RoomResponse
	res.FromModel(room)

	assert.Equal(t, "room-1", res.ID)
	assert.Equal(t, "120.00 OMR", res.FormattedPrice)
	assert.Equal(t, []string{"WiFi", "Jacuzzi"}, res.Amenities)
	assert.Equal(t, "admin", res.CreatedBy)

	var empty dto.RoomResponse
	empty.FromModel(model.Room{})
	assert.NotNil(t, empty.Amenities)
}

func TestGetRoomsResponse_FromModels(t *testing.T) {
	rooms := []model.Room{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	var res dto.GetRoomsResponse
	res.FromModels(rooms, 12, 5)

	assert.Len(t, res.Rooms, 3)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
}
