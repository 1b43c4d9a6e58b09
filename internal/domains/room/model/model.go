package model

import (
	"slices"
	"strings"

	"hotel/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomType    = "room_type"
	FieldPrice       = "price"
	FieldMaxGuests   = "max_guests"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
	FieldStatus      = "status"
	FieldAmenities   = "amenities"
)

const (
	StatusAvailable    = "Available"
	StatusNotAvailable = "Not Available"
)

type Room struct {
	ID          string          `db:"id"          json:"id"`
	RoomType    string          `db:"room_type"   json:"room_type"`
	Price       decimal.Decimal `db:"price"       json:"price"`
	MaxGuests   int             `db:"max_guests"  json:"max_guests"`
	Description string          `db:"description" json:"description"`
	ImageURL    string          `db:"image_url"   json:"image_url"`
	Status      string          `db:"status"      json:"status"`
	Amenities   pq.StringArray  `db:"amenities"   json:"amenities"`
	model.Metadata
}

func (r Room) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// Fits reports whether the room can host the whole party.
func (r Room) Fits(guests int) bool {
	return r.MaxGuests >= guests
}

// AddAmenity appends amenity unless an identical label is already listed.
// It reports whether the list changed.
func (r *Room) AddAmenity(amenity string) bool {
	amenity = strings.TrimSpace(amenity)
	if amenity == "" || slices.Contains(r.Amenities, amenity) {
		return false
	}

	r.Amenities = append(r.Amenities, amenity)

	return true
}

func (r *Room) RemoveAmenity(amenity string) bool {
	before := len(r.Amenities)
	r.Amenities = slices.DeleteFunc(r.Amenities, func(a string) bool { return a == amenity })

	return len(r.Amenities) != before
}

// UniqueAmenities trims labels and drops blanks and repeats, keeping first occurrences in order.
func UniqueAmenities(amenities []string) pq.StringArray {
	room := Room{Amenities: pq.StringArray{}}
	for _, amenity := range amenities {
		room.AddAmenity(amenity)
	}

	return room.Amenities
}
