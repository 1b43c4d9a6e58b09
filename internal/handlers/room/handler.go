package room

import (
	"mime/multipart"
	"net/http"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	formImage     = "image"
	formAmenities = "amenities"
	queryGuests   = "guests"
	paramAmenity  = "amenity"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Post("/{id}/amenities", handler.AddAmenity)
		routerGroup.Delete("/{id}/amenities/{amenity}", handler.RemoveAmenity)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room from a JSON body, or from multipart form data when an image is uploaded.
// @Tags Room
// @Accept json,multipart/form-data
// @Produce json
// @Param request body dto.CreateRoomRequest false "Create Room Request"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if isMultipart(request) {
		fields, err := parseForm(request)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to parse multipart form")
			response.WithError(writer, err)

			return
		}

		defer fields.close()

		req.RoomType = fields.roomType
		req.Description = request.FormValue(model.FieldDescription)
		req.ImageURL = request.FormValue(model.FieldImageURL)
		req.Status = request.FormValue(model.FieldStatus)
		req.Amenities = fields.amenities
		req.Image, req.ImageFile = fields.header, fields.file

		if fields.price != nil {
			req.Price = *fields.price
		}

		if fields.maxGuests != nil {
			req.MaxGuests = *fields.maxGuests
		}

		err = validator.ValidateStruct(&req)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request")
			response.WithError(writer, err)

			return
		}
	} else if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")
		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms retrieves rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve rooms with optional filtering and pagination.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_type query string false "Filter by room type"
// @Param status query string false "Filter by status"
// @Param guests query integer false "Only rooms that fit this many guests"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if roomType := query.Get(model.FieldRoomType); roomType != constant.Empty {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorLike,
			Value:    roomType,
			Table:    model.TableName,
		})
	}

	if status := query.Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Add(gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if guests := query.Get(queryGuests); guests != constant.Empty {
		count, err := shared.ConvertStringToInt(guests)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("invalid guests parameter"))

			return
		}

		filterGroup.Add(gDto.Filter{
			Field:    model.FieldMaxGuests,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    count,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")
		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

// UpdateRoom updates the fields present in the request.
// @Summary Update a room by ID
// @Tags Room
// @Accept json,multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest false "Update Room Request"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateRoomRequest{}

	if isMultipart(request) {
		fields, err := parseForm(request)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to parse multipart form")
			response.WithError(writer, err)

			return
		}

		defer fields.close()

		req.RoomType = fields.roomType
		req.Price = fields.price
		req.MaxGuests = fields.maxGuests
		req.ImageURL = request.FormValue(model.FieldImageURL)
		req.Status = request.FormValue(model.FieldStatus)
		req.Amenities = fields.amenities
		req.Image, req.ImageFile = fields.header, fields.file

		if _, ok := request.MultipartForm.Value[model.FieldDescription]; ok {
			description := request.FormValue(model.FieldDescription)
			req.Description = &description
		}

		err = validator.ValidateStruct(&req)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request")
			response.WithError(writer, err)

			return
		}
	} else if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")
		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")
		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// AddAmenity appends one amenity to a room.
// @Summary Add an amenity
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.AmenityRequest true "Amenity"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/amenities [post]
// @Security BearerAuth
func (handler *Handler) AddAmenity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAmenity")
	defer scope.End()

	req := dto.AmenityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.AddAmenity(ctx, chi.URLParam(request, constant.RequestParamID), req.Amenity)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add amenity")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

// RemoveAmenity drops one amenity from a room.
// @Summary Remove an amenity
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param amenity path string true "Amenity"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/amenities/{amenity} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveAmenity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveAmenity")
	defer scope.End()

	room, err := handler.service.RemoveAmenity(ctx, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, paramAmenity))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove amenity")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

type formFields struct {
	roomType  string
	price     *decimal.Decimal
	maxGuests *int
	amenities []string
	header    *multipart.FileHeader
	file      multipart.File
}

func (f formFields) close() {
	if f.file != nil {
		f.file.Close()
	}
}

func isMultipart(request *http.Request) bool {
	return strings.HasPrefix(request.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData)
}

// parseForm reads the fields shared by the create and update forms. Amenities may repeat or be comma separated.
func parseForm(request *http.Request) (formFields, error) {
	var fields formFields

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return fields, failure.BadRequest(err) //nolint:wrapcheck
	}

	fields.roomType = strings.TrimSpace(request.FormValue(model.FieldRoomType))

	if raw := request.FormValue(model.FieldPrice); raw != constant.Empty {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return fields, failure.BadRequestFromString("invalid price") //nolint:wrapcheck
		}

		fields.price = &price
	}

	if raw := request.FormValue(model.FieldMaxGuests); raw != constant.Empty {
		guests, err := shared.ConvertStringToInt(raw)
		if err != nil {
			return fields, failure.BadRequestFromString("invalid max_guests") //nolint:wrapcheck
		}

		fields.maxGuests = &guests
	}

	for _, value := range request.MultipartForm.Value[formAmenities] {
		for _, amenity := range strings.Split(value, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != constant.Empty {
				fields.amenities = append(fields.amenities, amenity)
			}
		}
	}

	file, header, err := request.FormFile(formImage)
	if err == nil {
		fields.file, fields.header = file, header
	}

	return fields, nil
}
