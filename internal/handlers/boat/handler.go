package boat

import (
	"net/http"

	"tourism/infras/otel"
	"tourism/internal/domains/boat/model"
	"tourism/internal/domains/boat/model/dto"
	"tourism/internal/domains/boat/service"
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
	service service.Boat
	otel    otel.Otel
}

func New(service service.Boat, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/boats", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBoat)
		routerGroup.Get("/", handler.GetBoats)
		routerGroup.Get("/{id}", handler.GetBoatByID)
		routerGroup.Patch("/{id}", handler.UpdateBoat)
		routerGroup.Delete("/{id}", handler.DeleteBoat)
	})
}

type boatForm struct {
	capacity   *int
	price      *int64
	totalSlots *int
}

func parseBoatForm(r *http.Request) (form boatForm, err error) {
	if form.capacity, err = shared.OptionalInt(r.FormValue(model.FieldCapacity)); err != nil {
		return form, failure.BadRequest(err)
	}

	if form.price, err = shared.OptionalInt64(r.FormValue(model.FieldPricePerPassenger)); err != nil {
		return form, failure.BadRequest(err)
	}

	if form.totalSlots, err = shared.OptionalInt(r.FormValue(model.FieldTotalSlots)); err != nil {
		return form, failure.BadRequest(err)
	}

	return form, nil
}

// CreateBoat registers a boat with its passenger capacity and slots.
// @Summary Create a boat
// @Tags Boat
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param capacity formData int true "Passengers per trip"
// @Param price_per_passenger formData int true "Fare in centavos"
// @Param total_slots formData int true "Bookable trips"
// @Param description formData string false "Description"
// @Param owner_id formData string false "Owner user ID (admin only)"
// @Param active formData boolean false "Accepting bookings"
// @Param image formData file false "Image"
// @Success 201 {object} response.Data[string] "Boat ID"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/boats [post]
// @Security BearerAuth
func (handler *Handler) CreateBoat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBoat")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	form, err := parseBoatForm(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateBoatRequest{
		OwnerID:           r.FormValue(model.FieldOwnerID),
		Name:              r.FormValue(model.FieldName),
		Description:       r.FormValue(model.FieldDescription),
		PricePerPassenger: form.price,
		Active:            shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
	}

	if form.capacity != nil {
		req.Capacity = *form.capacity
	}

	if form.totalSlots != nil {
		req.TotalSlots = *form.totalSlots
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

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create boat")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, id)
}

// GetBoats lists boats.
// @Summary List boats
// @Tags Boat
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param owner_id query string false "Filter by owner"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetBoatsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/boats [get]
func (handler *Handler) GetBoats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBoats")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortableBy(model.FieldName, model.FieldPricePerPassenger, model.FieldAvailableSlots, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.Where(
		gDto.Filter{Field: model.FieldOwnerID, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldOwnerID), Table: model.TableName},
		gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: query.Get(model.FieldName), Table: model.TableName},
		gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: shared.ConvertStringToBool(query.Get(model.FieldActive)), Table: model.TableName},
	)

	boats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get boats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, boats)
}

// GetBoatByID retrieves a boat.
// @Summary Get a boat
// @Tags Boat
// @Produce json
// @Param id path string true "Boat ID"
// @Success 200 {object} response.Data[dto.BoatResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/boats/{id} [get]
func (handler *Handler) GetBoatByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBoatByID")
	defer scope.End()

	boat, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get boat")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, boat)
}

// UpdateBoat updates a boat. Changing total_slots shifts available_slots by the same amount.
// @Summary Update a boat
// @Tags Boat
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Boat ID"
// @Param name formData string false "Name"
// @Param description formData string false "Description"
// @Param capacity formData int false "Passengers per trip"
// @Param price_per_passenger formData int false "Fare in centavos"
// @Param total_slots formData int false "Bookable trips"
// @Param active formData boolean false "Accepting bookings"
// @Param image formData file false "Image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/boats/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBoat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBoat")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	form, err := parseBoatForm(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateBoatRequest{
		Name:              r.FormValue(model.FieldName),
		Description:       r.FormValue(model.FieldDescription),
		Capacity:          form.capacity,
		PricePerPassenger: form.price,
		TotalSlots:        form.totalSlots,
		Active:            shared.ConvertStringToBool(r.FormValue(model.FieldActive)),
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
		log.Error().Err(err).Msg("failed to update boat")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Boat updated successfully")
}

// DeleteBoat removes a boat that has no bookings.
// @Summary Delete a boat
// @Tags Boat
// @Produce json
// @Param id path string true "Boat ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/boats/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBoat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBoat")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete boat")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Boat deleted successfully")
}
