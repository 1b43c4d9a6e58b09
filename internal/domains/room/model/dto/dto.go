package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/pricing"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const MessageNegativePrice = "price must not be negative"

type CreateRoomRequest struct {
	RoomType    string                `json:"room_type"   validate:"required,max=100"`
	Price       decimal.Decimal       `json:"price"`
	MaxGuests   int                   `json:"max_guests"  validate:"required,min=1"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string                `json:"image_url"   validate:"omitempty,url"`
	Status      string                `json:"status"      validate:"omitempty,oneof='Available' 'Not Available'"`
	Amenities   []string              `json:"amenities"   validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"-"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

// Validate covers the rules the struct tags cannot express.
func (c *CreateRoomRequest) Validate() error {
	if c.Price.IsNegative() {
		return failure.BadRequestFromString(MessageNegativePrice) //nolint:wrapcheck
	}

	return nil
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	if imageURL == "" {
		imageURL = c.ImageURL
	}

	return model.Room{
		ID:          uuid.NewString(),
		RoomType:    c.RoomType,
		Price:       c.Price,
		MaxGuests:   c.MaxGuests,
		Description: c.Description,
		ImageURL:    imageURL,
		Status:      status,
		Amenities:   model.UniqueAmenities(c.Amenities),
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateRoomRequest is a partial update: only the fields present in the request change.
type UpdateRoomRequest struct {
	RoomType    string                `db:"room_type"   json:"room_type"   validate:"omitempty,max=100"`
	Price       *decimal.Decimal      `db:"price"       json:"price"`
	MaxGuests   *int                  `db:"max_guests"  json:"max_guests"  validate:"omitempty,min=1"`
	Description *string               `db:"description" json:"description" validate:"omitempty,max=1000"`
	ImageURL    string                `db:"image_url"   json:"image_url"   validate:"omitempty,url"`
	Status      string                `db:"status"      json:"status"      validate:"omitempty,oneof='Available' 'Not Available'"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,max=50"`
	Image       *multipart.FileHeader `json:"-"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (u *UpdateRoomRequest) Validate() error {
	if u.Price != nil && u.Price.IsNegative() {
		return failure.BadRequestFromString(MessageNegativePrice) //nolint:wrapcheck
	}

	return nil
}

type AmenityRequest struct {
	Amenity string `json:"amenity" validate:"required,max=50"`
}

type RoomResponse struct {
	ID             string          `json:"id"`
	RoomType       string          `json:"room_type"`
	Price          decimal.Decimal `json:"price"`
	FormattedPrice string          `json:"formatted_price"`
	MaxGuests      int             `json:"max_guests"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	Status         string          `json:"status"`
	Amenities      []string        `json:"amenities"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomType = model.RoomType
	r.Price = model.Price
	r.FormattedPrice = pricing.FormatCurrency(model.Price)
	r.MaxGuests = model.MaxGuests
	r.Description = model.Description
	r.ImageURL = model.ImageURL
	r.Status = model.Status
	r.Amenities = append([]string{}, model.Amenities...)
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
