package customer

import (
	"fmt"
	"net/http"
	"net/url"

	"hotel/infras/otel"
	"hotel/internal/domains/customer/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const querySearch = "search"

type Handler struct {
	service service.Customer
	otel    otel.Otel
}

func New(service service.Customer, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/customers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCustomers)
		routerGroup.Get("/export", handler.ExportCustomers)
		routerGroup.Get("/{email}", handler.GetCustomer)
	})
}

// GetCustomers lists guests grouped by email.
// @Summary Get all customers
// @Tags Customer
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Name or email contains"
// @Success 200 {object} response.Data[dto.GetCustomersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/customers [get]
// @Security BearerAuth
func (handler *Handler) GetCustomers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	customers, err := handler.service.GetAll(ctx, queryParams, request.URL.Query().Get(querySearch))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, customers)
}

// GetCustomer returns one guest with every booking.
// @Summary Get a customer by email
// @Tags Customer
// @Produce json
// @Param email path string true "Customer email"
// @Success 200 {object} response.Data[dto.CustomerResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/customers/{email} [get]
// @Security BearerAuth
func (handler *Handler) GetCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomer")
	defer scope.End()

	email, err := url.PathUnescape(chi.URLParam(request, constant.RequestParamEmail))
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString("invalid email"))

		return
	}

	customer, err := handler.service.Get(ctx, email)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer")
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, customer)
}

// ExportCustomers downloads customers and bookings as a spreadsheet.
// @Summary Export customers
// @Tags Customer
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} response.Error
// @Router /v1/customers/export [get]
// @Security BearerAuth
func (handler *Handler) ExportCustomers(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportCustomers")
	defer scope.End()

	data, err := handler.service.Export(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export customers")
		response.WithError(writer, err)

		return
	}

	filename := fmt.Sprintf("customers-%s.xlsx", timezone.Format(timezone.Now(), "20060102-150405"))

	response.WithFile(writer, constant.ContentTypeXLSX, filename, data)
}
