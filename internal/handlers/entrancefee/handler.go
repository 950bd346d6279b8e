package entrancefee

import (
	"net/http"

	"tourism/infras/otel"
	"tourism/internal/domains/entrancefee/model/dto"
	"tourism/internal/domains/entrancefee/service"
	"tourism/shared/constant"
	"tourism/shared/validator"
	"tourism/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.EntranceFee
	otel    otel.Otel
}

func New(service service.EntranceFee, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/resorts/{id}/entrance-fees", handler.GetEntranceFees)
	router.Patch("/entrance-fees/{id}", handler.UpdateEntranceFee)
}

// GetEntranceFees lists the entrance fee tiers of a resort.
// @Summary List a resort's entrance fees
// @Tags EntranceFee
// @Produce json
// @Param id path string true "Resort ID"
// @Success 200 {object} response.Data[dto.GetEntranceFeesResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/resorts/{id}/entrance-fees [get]
func (handler *Handler) GetEntranceFees(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntranceFees")
	defer scope.End()

	fees, err := handler.service.ListByResort(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get entrance fees")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, fees)
}

// UpdateEntranceFee changes the price of one tier.
// @Summary Update an entrance fee
// @Tags EntranceFee
// @Accept json
// @Produce json
// @Param id path string true "Entrance fee ID"
// @Param request body dto.UpdateEntranceFeeRequest true "Price in centavos"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/entrance-fees/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateEntranceFee(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEntranceFee")
	defer scope.End()

	req := dto.UpdateEntranceFeeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update entrance fee")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Entrance fee updated successfully")
}
