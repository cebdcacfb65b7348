package booking

import (
	"context"
	"net/http"
	"rentro/infras/otel"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/model/dto"
	"rentro/internal/domains/booking/service"
	"rentro/shared/constant"
	"rentro/shared/validator"
	"rentro/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/booking", func(routerGroup chi.Router) {
		routerGroup.Get("/slots", handler.Slots)

		routerGroup.Get("/posts/{postID}", handler.Tenant)
		routerGroup.Post("/posts/{postID}", handler.Submit)
		routerGroup.Put("/posts/{postID}", handler.Reschedule)
		routerGroup.Delete("/posts/{postID}", handler.Cancel)

		routerGroup.Get("/landlord/posts/{postID}", handler.Landlord)
		routerGroup.Put("/landlord/posts/{postID}/requests/{id}/accept", handler.Accept)
		routerGroup.Put("/landlord/posts/{postID}/requests/{id}/decline", handler.Decline)
		routerGroup.Delete("/landlord/posts/{postID}/requests/{id}", handler.Delete)
	})
}

// sessionFrom builds the explicit caller value the flow works with.
func sessionFrom(request *http.Request) model.Session {
	ctx := request.Context()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	token, _ := ctx.Value(constant.ContextKeyAccessToken).(string)

	return model.Session{UserID: userID, Role: role, Token: token}
}

// Slots lists the bookable time slots.
// @Summary List bookable slots
// @Description Half-hour marks from 08:00 to 20:00 without the lunch break.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.SlotsResponse
// @Router /v1/booking/slots [get]
func (handler *Handler) Slots(writer http.ResponseWriter, _ *http.Request) {
	response.WithJSON(writer, http.StatusOK, dto.SlotsResponse{Slots: handler.service.Slots()})
}

// Tenant returns the requester's view of a listing.
// @Summary Tenant booking view
// @Description State is no_booking, has_booking or error.
// @Tags Booking
// @Produce json
// @Param postID path string true "Listing ID"
// @Success 200 {object} dto.TenantViewResponse
// @Failure 401 {object} response.Error
// @Router /v1/booking/posts/{postID} [get]
// @Security BearerAuth
func (handler *Handler) Tenant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Tenant")
	defer scope.End()

	view, err := handler.service.Tenant(ctx, sessionFrom(request), chi.URLParam(request, constant.RequestParamPostID))
	if err != nil {
		scope.TraceError(err)
	}

	// The tenant view reports its own error state, so it is always sent.
	response.WithSnapshot(writer, http.StatusOK, view, true, err)
}

// Submit books a viewing slot.
// @Summary Submit a booking
// @Description Validates date and time, builds the +07:00 timestamp and creates the request.
// @Tags Booking
// @Accept json
// @Produce json
// @Param postID path string true "Listing ID"
// @Param request body dto.SubmitRequest true "Submit Request"
// @Success 201 {object} dto.TenantViewResponse
// @Failure 400 {object} dto.TenantViewResponse
// @Failure 409 {object} dto.TenantViewResponse
// @Router /v1/booking/posts/{postID} [post]
// @Security BearerAuth
func (handler *Handler) Submit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Submit")
	defer scope.End()

	req := dto.SubmitRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	view, err := handler.service.Submit(ctx, sessionFrom(request), chi.URLParam(request, constant.RequestParamPostID), req)
	if err != nil {
		scope.TraceError(err)
	}

	response.WithSnapshot(writer, http.StatusCreated, view, view.Notice != nil, err)
}

// Reschedule moves the current booking.
// @Summary Reschedule a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param postID path string true "Listing ID"
// @Param request body dto.RescheduleRequest true "Reschedule Request"
// @Success 200 {object} dto.TenantViewResponse
// @Failure 400 {object} dto.TenantViewResponse
// @Failure 403 {object} response.Error
// @Router /v1/booking/posts/{postID} [put]
// @Security BearerAuth
func (handler *Handler) Reschedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Reschedule")
	defer scope.End()

	req := dto.RescheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	view, err := handler.service.Reschedule(ctx, sessionFrom(request), chi.URLParam(request, constant.RequestParamPostID), req)
	if err != nil {
		scope.TraceError(err)
	}

	response.WithSnapshot(writer, http.StatusOK, view, view.Notice != nil, err)
}

// Cancel deletes the current booking.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param postID path string true "Listing ID"
// @Success 200 {object} dto.TenantViewResponse
// @Failure 409 {object} response.Error
// @Failure 502 {object} dto.TenantViewResponse
// @Router /v1/booking/posts/{postID} [delete]
// @Security BearerAuth
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Cancel")
	defer scope.End()

	view, err := handler.service.Cancel(ctx, sessionFrom(request), chi.URLParam(request, constant.RequestParamPostID))
	if err != nil {
		scope.TraceError(err)
	}

	response.WithSnapshot(writer, http.StatusOK, view, view.Notice != nil, err)
}

// Landlord lists the requests against one of the caller's listings.
// @Summary Landlord booking view
// @Tags Booking
// @Produce json
// @Param postID path string true "Listing ID"
// @Success 200 {object} dto.LandlordViewResponse
// @Router /v1/booking/landlord/posts/{postID} [get]
// @Security BearerAuth
func (handler *Handler) Landlord(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking.Landlord")
	defer scope.End()

	view, err := handler.service.Landlord(ctx, sessionFrom(request), chi.URLParam(request, constant.RequestParamPostID))
	if err != nil {
		scope.TraceError(err)
	}

	response.WithSnapshot(writer, http.StatusOK, view, view.Notice != nil, err)
}

// Accept accepts one request from the landlord view.
// @Summary Accept from the landlord view
// @Tags Booking
// @Produce json
// @Param postID path string true "Listing ID"
// @Param id path string true "Request ID"
// @Success 200 {object} dto.LandlordViewResponse
// @Failure 409 {object} dto.LandlordViewResponse
// @Router /v1/booking/landlord/posts/{postID}/requests/{id}/accept [put]
// @Security BearerAuth
func (handler *Handler) Accept(writer http.ResponseWriter, request *http.Request) {
	handler.landlordAction(writer, request, "Accept", handler.service.Accept)
}

// Decline declines one request from the landlord view.
// @Summary Decline from the landlord view
// @Tags Booking
// @Produce json
// @Param postID path string true "Listing ID"
// @Param id path string true "Request ID"
// @Success 200 {object} dto.LandlordViewResponse
// @Failure 409 {object} dto.LandlordViewResponse
// @Router /v1/booking/landlord/posts/{postID}/requests/{id}/decline [put]
// @Security BearerAuth
func (handler *Handler) Decline(writer http.ResponseWriter, request *http.Request) {
	handler.landlordAction(writer, request, "Decline", handler.service.Decline)
}

// Delete removes one request from the landlord view.
// @Summary Delete from the landlord view
// @Tags Booking
// @Produce json
// @Param postID path string true "Listing ID"
// @Param id path string true "Request ID"
// @Success 200 {object} dto.LandlordViewResponse
// @Router /v1/booking/landlord/posts/{postID}/requests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	handler.landlordAction(writer, request, "Delete", handler.service.Delete)
}

type landlordMutation func(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error)

func (handler *Handler) landlordAction(writer http.ResponseWriter, request *http.Request, name string, action landlordMutation) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking."+name)
	defer scope.End()

	view, err := action(ctx, sessionFrom(request), chi.URLParam(request, constant.RequestParamPostID), chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
	}

	response.WithSnapshot(writer, http.StatusOK, view, view.Notice != nil, err)
}
