package booking_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "rentro/infras/otel/mocks"
	"rentro/internal/domains/booking/mocks"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/model/dto"
	"rentro/internal/domains/booking/service"
	requestModel "rentro/internal/domains/request/model"
	requestDto "rentro/internal/domains/request/model/dto"
	"rentro/internal/handlers/booking"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
)

var tenant = model.Session{UserID: "7", Role: constant.RoleUser, Token: "token"}

type envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error"`
}

func newRouter(t *testing.T) (chi.Router, *mocks.MockStore) {
	t.Helper()

	store := mocks.NewMockStore(gomock.NewController(t))

	flow, err := service.New(store, service.DefaultOptions(), otelMocks.NewOtel())
	require.NoError(t, err)

	handler := booking.New(flow, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, store
}

func call(router chi.Router, method, path, body string, session model.Session) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))

	ctx := context.WithValue(request.Context(), constant.ContextKeyUserID, session.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, session.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyAccessToken, session.Token)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request.WithContext(ctx))

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var body envelope[T]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestSlots(t *testing.T) {
	router, _ := newRouter(t)

	recorder := call(router, http.MethodGet, "/booking/slots", "", tenant)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, model.Catalog(), decode[dto.SlotsResponse](t, recorder).Data.Slots)
}

func TestTenant(t *testing.T) {
	router, store := newRouter(t)

	store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return([]requestDto.RequestResponse{
		{ID: "1", UserRentID: "7", RenterID: "3", PostID: "99", Status: requestModel.StatusDeclined},
		{ID: "2", UserRentID: "7", RenterID: "3", PostID: "17", Status: requestModel.StatusPending},
	}, nil)

	recorder := call(router, http.MethodGet, "/booking/posts/17", "", tenant)

	require.Equal(t, http.StatusOK, recorder.Code)

	view := decode[dto.TenantViewResponse](t, recorder).Data
	assert.Equal(t, model.StateHasBooking, view.State)
	require.NotNil(t, view.Booking)
	assert.Equal(t, gDto.FlexibleID("2"), view.Booking.ID)
}

func TestSubmit(t *testing.T) {
	t.Run("past date is rejected before the store", func(t *testing.T) {
		router, store := newRouter(t)

		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return(nil, nil)

		recorder := call(router, http.MethodPost, "/booking/posts/17",
			`{"renter_id":3,"date":"2000-01-10","time":"09:00"}`, tenant)

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		view := decode[dto.TenantViewResponse](t, recorder).Data
		assert.Equal(t, model.StateNoBooking, view.State)
		require.NotNil(t, view.Notice)
		assert.Equal(t, model.NoticeWarning, view.Notice.Level)
	})

	t.Run("malformed time fails validation", func(t *testing.T) {
		router, _ := newRouter(t)

		recorder := call(router, http.MethodPost, "/booking/posts/17",
			`{"renter_id":3,"date":"2099-03-10","time":"late"}`, tenant)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.NotEmpty(t, decode[dto.TenantViewResponse](t, recorder).Error)
	})

	t.Run("creates the request with the local offset", func(t *testing.T) {
		router, store := newRouter(t)

		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return(nil, nil)
		store.EXPECT().Create(gomock.Any(), tenant, requestDto.CreateRequest{
			UserRentID: "7",
			RenterID:   "3",
			PostID:     "17",
			DateTime:   "2099-03-10T14:30:00+07:00",
		}).DoAndReturn(func(_ context.Context, _ model.Session, req requestDto.CreateRequest) (requestDto.RequestResponse, error) {
			return requestDto.RequestResponse{
				ID:         "5",
				UserRentID: req.UserRentID,
				RenterID:   req.RenterID,
				PostID:     req.PostID,
				DateTime:   req.DateTime,
				Status:     requestModel.StatusPending,
			}, nil
		})

		recorder := call(router, http.MethodPost, "/booking/posts/17",
			`{"renter_id":"3","date":"2099-03-10","time":"14:30"}`, tenant)

		require.Equal(t, http.StatusCreated, recorder.Code)

		view := decode[dto.TenantViewResponse](t, recorder).Data
		assert.Equal(t, model.StateHasBooking, view.State)
		require.NotNil(t, view.Notice)
		assert.Equal(t, model.NoticeSuccess, view.Notice.Level)
	})

	t.Run("existing booking conflicts", func(t *testing.T) {
		router, store := newRouter(t)

		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return([]requestDto.RequestResponse{
			{ID: "2", UserRentID: "7", RenterID: "3", PostID: "17", Status: requestModel.StatusAccepted},
		}, nil)

		recorder := call(router, http.MethodPost, "/booking/posts/17",
			`{"renter_id":"3","date":"2099-03-10","time":"14:30"}`, tenant)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.NotEmpty(t, decode[dto.TenantViewResponse](t, recorder).Error)
	})
}

func TestCancel_StoreFailureKeepsBooking(t *testing.T) {
	router, store := newRouter(t)

	store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return([]requestDto.RequestResponse{
		{ID: "2", UserRentID: "7", RenterID: "3", PostID: "17", Status: requestModel.StatusPending},
	}, nil)
	store.EXPECT().Delete(gomock.Any(), tenant, "2").Return(errors.New("connection reset"))

	recorder := call(router, http.MethodDelete, "/booking/posts/17", "", tenant)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	view := decode[dto.TenantViewResponse](t, recorder).Data
	assert.Equal(t, model.StateHasBooking, view.State)
	require.NotNil(t, view.Notice)
	assert.Equal(t, model.NoticeError, view.Notice.Level)
}
