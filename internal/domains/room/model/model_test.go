package model_test

import (
	"testing"

	"hotel/internal/domains/room/model"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestRoom_AddAmenity(t *testing.T) {
	room := model.Room{Amenities: pq.StringArray{"WiFi"}}

	assert.True(t, room.AddAmenity("  TV "))
	assert.False(t, room.AddAmenity("WiFi"), "exact duplicate is ignored")
	assert.True(t, room.AddAmenity("wifi"), "match is case sensitive")
	assert.False(t, room.AddAmenity("   "))

	assert.Equal(t, pq.StringArray{"WiFi", "TV", "wifi"}, room.Amenities)
}

func TestRoom_RemoveAmenity(t *testing.T) {
	room := model.Room{Amenities: pq.StringArray{"WiFi", "TV", "AC"}}

	assert.False(t, room.RemoveAmenity("tv"))
	assert.True(t, room.RemoveAmenity("TV"))
	assert.Equal(t, pq.StringArray{"WiFi", "AC"}, room.Amenities)
}

func TestRoom_FitsAndAvailability(t *testing.T) {
	room := model.Room{MaxGuests: 2, Status: model.StatusAvailable}

	assert.True(t, room.Fits(2))
	assert.False(t, room.Fits(3))
	assert.True(t, room.IsAvailable())

	room.Status = model.StatusNotAvailable
	assert.False(t, room.IsAvailable())
}

func TestUniqueAmenities(t *testing.T) {
	assert.Equal(t, pq.StringArray{"WiFi", "TV"}, model.UniqueAmenities([]string{"WiFi", " TV", "", "WiFi", "TV "}))
	assert.Equal(t, pq.StringArray{}, model.UniqueAmenities(nil))
}
