package request

import (
	"context"
	"net/http"
	"rentro/infras/otel"
	"rentro/internal/domains/request/model/dto"
	"rentro/internal/domains/request/service"
	"rentro/shared/constant"
	"rentro/shared/validator"
	"rentro/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Request
	otel    otel.Otel
}

func New(service service.Request, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/request", func(routerGroup chi.Router) {
		routerGroup.Post("/create", handler.Create)
		routerGroup.Get("/user/{userID}", handler.GetByUser)
		routerGroup.Get("/post/{postID}", handler.GetByPost)
		routerGroup.Get("/renter/{renterID}", handler.GetByRenter)
		routerGroup.Get("/{id}", handler.Get)
		routerGroup.Put("/{id}", handler.Update)
		routerGroup.Put("/{id}/accept", handler.Accept)
		routerGroup.Put("/{id}/decline", handler.Decline)
		routerGroup.Put("/{id}/complete", handler.Complete)
		routerGroup.Delete("/{id}", handler.Delete)
	})
}

// Create handles a new booking request.
// @Summary Create a booking request
// @Description Request a viewing of a listing. Ids may be strings or numbers.
// @Tags Request
// @Accept json
// @Produce json
// @Param request body dto.CreateRequest true "Create Request"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/request/create [post]
// @Security BearerAuth
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".request.Create")
	defer scope.End()

	req := dto.CreateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking request created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// Get returns one booking request.
// @Summary Get a booking request
// @Tags Request
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/request/{id} [get]
// @Security BearerAuth
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".request.Get")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetByUser lists the requests a user made.
// @Summary List requests made by a user
// @Tags Request
// @Produce json
// @Param userID path string true "Requester ID"
// @Success 200 {array} dto.RequestResponse
// @Failure 403 {object} response.Error
// @Router /v1/request/user/{userID} [get]
// @Security BearerAuth
func (handler *Handler) GetByUser(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, "GetByUser", constant.RequestParamUserID, handler.service.GetByUser)
}

// GetByPost lists the requests against a listing.
// @Summary List requests against a listing
// @Description Only requests the caller is a party to are returned.
// @Tags Request
// @Produce json
// @Param postID path string true "Listing ID"
// @Success 200 {array} dto.RequestResponse
// @Router /v1/request/post/{postID} [get]
// @Security BearerAuth
func (handler *Handler) GetByPost(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, "GetByPost", constant.RequestParamPostID, handler.service.GetByPost)
}

// GetByRenter lists the requests addressed to a landlord.
// @Summary List requests addressed to a landlord
// @Tags Request
// @Produce json
// @Param renterID path string true "Landlord ID"
// @Success 200 {array} dto.RequestResponse
// @Failure 403 {object} response.Error
// @Router /v1/request/renter/{renterID} [get]
// @Security BearerAuth
func (handler *Handler) GetByRenter(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, "GetByRenter", constant.RequestParamRenterID, handler.service.GetByRenter)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, name, param string, fetch func(context.Context, string) ([]dto.RequestResponse, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".request."+name)
	defer scope.End()

	res, err := fetch(ctx, chi.URLParam(request, param))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Update reschedules a booking request.
// @Summary Reschedule a booking request
// @Description Moves the request to a new date_time. An accepted request goes back to Pending.
// @Tags Request
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.UpdateRequest true "Update Request"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/request/{id} [put]
// @Security BearerAuth
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".request.Update")
	defer scope.End()

	req := dto.UpdateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Accept marks a request as accepted.
// @Summary Accept a booking request
// @Tags Request
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/request/{id}/accept [put]
// @Security BearerAuth
func (handler *Handler) Accept(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "Accept", handler.service.Accept)
}

// Decline marks a request as declined.
// @Summary Decline a booking request
// @Tags Request
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/request/{id}/decline [put]
// @Security BearerAuth
func (handler *Handler) Decline(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "Decline", handler.service.Decline)
}

// Complete marks an accepted viewing as done.
// @Summary Complete a booking request
// @Tags Request
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/request/{id}/complete [put]
// @Security BearerAuth
func (handler *Handler) Complete(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "Complete", handler.service.Complete)
}

func (handler *Handler) transition(writer http.ResponseWriter, request *http.Request, name string, apply func(context.Context, string) (dto.RequestResponse, error)) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".request."+name)
	defer scope.End()

	res, err := apply(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("action", name).Msg("booking request transition rejected")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Delete removes a booking request.
// @Summary Delete a booking request
// @Tags Request
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/request/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".request.Delete")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking request deleted successfully")
}
