package establishment

import (
	"net/http"

	"tourism/infras/otel"
	"tourism/internal/domains/establishment/model"
	"tourism/internal/domains/establishment/model/dto"
	"tourism/internal/domains/establishment/service"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"
	"tourism/shared/validator"
	"tourism/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Establishment
	otel    otel.Otel
}

func New(service service.Establishment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/establishments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEstablishment)
		routerGroup.Get("/", handler.GetEstablishments)
		routerGroup.Get("/{id}", handler.GetEstablishmentByID)
		routerGroup.Patch("/{id}", handler.UpdateEstablishment)
		routerGroup.Delete("/{id}", handler.DeleteEstablishment)
	})
}

// CreateEstablishment handles the creation of a resort, hotel, restaurant or landing area.
// @Summary Create an establishment
// @Description Operators create establishments of their own type. Admins must name the owner. Resorts get default entrance fees.
// @Tags Establishment
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "resort, hotel, restaurant or landing_area"
// @Param name formData string true "Name"
// @Param address formData string true "Address"
// @Param description formData string false "Description"
// @Param contact_number formData string false "Contact number"
// @Param owner_id formData string false "Owner user ID (admin only)"
// @Param active formData boolean false "Accepting bookings"
// @Param image formData file false "Cover image"
// @Success 201 {object} response.Data[string] "Establishment ID"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/establishments [post]
// @Security BearerAuth
func (handler *Handler) CreateEstablishment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEstablishment")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateEstablishmentRequest{
		OwnerID:       request.FormValue(model.FieldOwnerID),
		Type:          request.FormValue(model.FieldType),
		Name:          request.FormValue(model.FieldName),
		Description:   request.FormValue(model.FieldDescription),
		Address:       request.FormValue(model.FieldAddress),
		ContactNumber: request.FormValue(model.FieldContactNumber),
		Active:        shared.ConvertStringToBool(request.FormValue(model.FieldActive)),
	}

	file, fileHeader, err := request.FormFile(constant.FormImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create establishment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Establishment created " + id)

	response.WithJSON(writer, http.StatusCreated, id)
}

// GetEstablishments lists establishments.
// @Summary List establishments
// @Tags Establishment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by type"
// @Param name query string false "Filter by name"
// @Param owner_id query string false "Filter by owner"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetEstablishmentsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/establishments [get]
func (handler *Handler) GetEstablishments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEstablishments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortableBy(model.FieldName, model.FieldType, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.Where(
		gDto.Filter{Field: model.FieldType, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldType), Table: model.TableName},
		gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldName), Table: model.TableName},
		gDto.Filter{Field: model.FieldOwnerID, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldOwnerID), Table: model.TableName},
		gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: shared.ConvertStringToBool(query.Get(model.FieldActive)), Table: model.TableName},
	)

	establishments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get establishments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, establishments)
}

// GetEstablishmentByID retrieves an establishment.
// @Summary Get an establishment
// @Tags Establishment
// @Produce json
// @Param id path string true "Establishment ID"
// @Success 200 {object} response.Data[dto.EstablishmentResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/establishments/{id} [get]
func (handler *Handler) GetEstablishmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEstablishmentByID")
	defer scope.End()

	establishment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get establishment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, establishment)
}

// UpdateEstablishment updates an establishment the caller owns.
// @Summary Update an establishment
// @Tags Establishment
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Establishment ID"
// @Param name formData string false "Name"
// @Param description formData string false "Description"
// @Param address formData string false "Address"
// @Param contact_number formData string false "Contact number"
// @Param active formData boolean false "Accepting bookings"
// @Param image formData file false "Cover image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/establishments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEstablishment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEstablishment")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateEstablishmentRequest{
		Name:          r.FormValue(model.FieldName),
		Description:   r.FormValue(model.FieldDescription),
		Address:       r.FormValue(model.FieldAddress),
		ContactNumber: r.FormValue(model.FieldContactNumber),
		Active:        shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	file, fileHeader, err := r.FormFile(constant.FormImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update establishment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Establishment updated successfully")
}

// DeleteEstablishment removes an establishment that has no bookings.
// @Summary Delete an establishment
// @Tags Establishment
// @Produce json
// @Param id path string true "Establishment ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/establishments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEstablishment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEstablishment")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete establishment")

		response.WithError(w, err)

		return
	}

	user, _ := shared.UserFromContext(ctx)
	scope.AddEvent("Establishment deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Establishment deleted successfully")
}
