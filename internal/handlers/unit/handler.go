package unit

import (
	"net/http"

	"tourism/infras/otel"
	"tourism/internal/domains/unit/model"
	"tourism/internal/domains/unit/model/dto"
	"tourism/internal/domains/unit/service"
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
	service service.Unit
	otel    otel.Otel
}

func New(service service.Unit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/units", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUnit)
		routerGroup.Get("/", handler.GetUnits)
		routerGroup.Get("/{id}", handler.GetUnitByID)
		routerGroup.Patch("/{id}", handler.UpdateUnit)
		routerGroup.Delete("/{id}", handler.DeleteUnit)
	})
}

// CreateUnit adds a room, table or service to an establishment.
// @Summary Create a unit
// @Description The unit kind follows the establishment type: rooms for resorts and hotels, tables for restaurants, services for landing areas.
// @Tags Unit
// @Accept multipart/form-data
// @Produce json
// @Param establishment_id formData string true "Establishment ID"
// @Param name formData string true "Name"
// @Param capacity formData int true "Maximum guests"
// @Param price formData int true "Price in centavos"
// @Param description formData string false "Description"
// @Param status formData string false "available or unavailable"
// @Param image formData file false "Image"
// @Success 201 {object} response.Data[string] "Unit ID"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units [post]
// @Security BearerAuth
func (handler *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUnit")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	capacity, err := shared.OptionalInt(r.FormValue(model.FieldCapacity))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	price, err := shared.OptionalInt64(r.FormValue(model.FieldPrice))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateUnitRequest{
		EstablishmentID: r.FormValue(model.FieldEstablishmentID),
		Name:            r.FormValue(model.FieldName),
		Description:     r.FormValue(model.FieldDescription),
		Price:           price,
		Status:          r.FormValue(model.FieldStatus),
	}

	if capacity != nil {
		req.Capacity = *capacity
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
		log.Error().Err(err).Msg("failed to create unit")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, id)
}

// GetUnits lists units.
// @Summary List units
// @Tags Unit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param establishment_id query string false "Filter by establishment"
// @Param kind query string false "Filter by kind"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetUnitsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/units [get]
func (handler *Handler) GetUnits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortableBy(model.FieldName, model.FieldPrice, model.FieldCapacity, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.Where(
		gDto.Filter{Field: model.FieldEstablishmentID, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldEstablishmentID), Table: model.TableName},
		gDto.Filter{Field: model.FieldKind, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldKind), Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: query.Get(model.FieldStatus), Table: model.TableName},
	)

	units, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get units")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, units)
}

// GetUnitByID retrieves a unit.
// @Summary Get a unit
// @Tags Unit
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Data[dto.UnitResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [get]
func (handler *Handler) GetUnitByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnitByID")
	defer scope.End()

	unit, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unit")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, unit)
}

// UpdateUnit updates a unit.
// @Summary Update a unit
// @Tags Unit
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Unit ID"
// @Param name formData string false "Name"
// @Param description formData string false "Description"
// @Param capacity formData int false "Maximum guests"
// @Param price formData int false "Price in centavos"
// @Param status formData string false "available or unavailable"
// @Param image formData file false "Image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUnit")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	capacity, err := shared.OptionalInt(r.FormValue(model.FieldCapacity))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	price, err := shared.OptionalInt64(r.FormValue(model.FieldPrice))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateUnitRequest{
		Name:        r.FormValue(model.FieldName),
		Description: r.FormValue(model.FieldDescription),
		Capacity:    capacity,
		Price:       price,
		Status:      r.FormValue(model.FieldStatus),
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
		log.Error().Err(err).Msg("failed to update unit")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Unit updated successfully")
}

// DeleteUnit removes a unit that has no bookings.
// @Summary Delete a unit
// @Tags Unit
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUnit")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete unit")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Unit deleted successfully")
}
