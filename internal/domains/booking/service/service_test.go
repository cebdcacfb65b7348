package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentro/config"
	otelMocks "rentro/infras/otel/mocks"
	"rentro/internal/domains/booking/mocks"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/model/dto"
	"rentro/internal/domains/booking/service"
	requestModel "rentro/internal/domains/request/model"
	requestDto "rentro/internal/domains/request/model/dto"
	gDto "rentro/shared/dto"
	"rentro/shared/failure"
)

var landlord = model.Session{UserID: "3", Role: "landlord", Token: "token"}

func newFlow(t *testing.T, mutate func(*service.Options)) (service.Booking, *mocks.MockStore) {
	t.Helper()

	store := mocks.NewMockStore(gomock.NewController(t))
	opts := service.DefaultOptions()

	if mutate != nil {
		mutate(&opts)
	}

	flow, err := service.NewForTest(store, opts, otelMocks.NewOtel(), saigon, clock)
	require.NoError(t, err)

	return flow, store
}

func booking(id, postID string, status requestModel.Status) requestDto.RequestResponse {
	return requestDto.RequestResponse{
		ID:         gDto.FlexibleID(id),
		UserRentID: "7",
		RenterID:   "3",
		PostID:     gDto.FlexibleID(postID),
		DateTime:   "2025-03-10T14:30:00+07:00",
		Status:     status,
	}
}

func TestFlow_Slots(t *testing.T) {
	flow, _ := newFlow(t, nil)

	assert.Equal(t, model.Catalog(), flow.Slots())
}

func TestFlow_Tenant(t *testing.T) {
	t.Run("no booking", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return(nil, nil)

		res, err := flow.Tenant(context.Background(), tenant, "42")

		require.NoError(t, err)
		assert.Equal(t, model.StateNoBooking, res.State)
	})

	t.Run("has booking", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
			Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusPending)}, nil)

		res, err := flow.Tenant(context.Background(), tenant, "42")

		require.NoError(t, err)
		assert.Equal(t, model.StateHasBooking, res.State)
		assert.Equal(t, "1", res.Booking.ID.String())
	})

	t.Run("fail open on check failure", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		res, err := flow.Tenant(context.Background(), tenant, "42")

		require.NoError(t, err)
		assert.Equal(t, model.StateNoBooking, res.State)
	})

	t.Run("fail closed on check failure", func(t *testing.T) {
		flow, store := newFlow(t, func(o *service.Options) { o.CheckPolicy = model.PolicyFailClosed })
		store.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		res, err := flow.Tenant(context.Background(), tenant, "42")

		require.ErrorIs(t, err, service.ErrCheckFailed)
		assert.Equal(t, model.StateError, res.State)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("guard disabled skips the check", func(t *testing.T) {
		flow, _ := newFlow(t, func(o *service.Options) { o.ShowExistingBookingGuard = false })

		res, err := flow.Tenant(context.Background(), tenant, "42")

		require.NoError(t, err)
		assert.Equal(t, model.StateNoBooking, res.State)
	})
}

func TestFlow_Submit(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.SubmitRequest
		setup     func(store *mocks.MockStore)
		wantErr   error
		wantState model.State
		wantLevel model.NoticeLevel
	}{
		{
			name:      "missing time never reaches the store",
			req:       dto.SubmitRequest{RenterID: "3", Date: "2025-03-11"},
			wantErr:   service.ErrMissingFields,
			wantState: model.StateNoBooking,
			wantLevel: model.NoticeWarning,
		},
		{
			name:      "missing date never reaches the store",
			req:       dto.SubmitRequest{RenterID: "3", Time: "14:30"},
			wantErr:   service.ErrMissingFields,
			wantState: model.StateNoBooking,
			wantLevel: model.NoticeWarning,
		},
		{
			name:      "past date never reaches the store",
			req:       dto.SubmitRequest{RenterID: "3", Date: "2025-03-09", Time: "14:30"},
			wantErr:   service.ErrPastDate,
			wantState: model.StateNoBooking,
			wantLevel: model.NoticeWarning,
		},
		{
			name: "created",
			req:  dto.SubmitRequest{RenterID: "3", Date: "2025-03-10", Time: "14:30"},
			setup: func(store *mocks.MockStore) {
				store.EXPECT().Create(gomock.Any(), tenant, requestDto.CreateRequest{
					UserRentID: "7",
					RenterID:   "3",
					PostID:     "42",
					DateTime:   "2025-03-10T14:30:00+07:00",
				}).Return(booking("1", "42", requestModel.StatusPending), nil).Times(1)
			},
			wantState: model.StateHasBooking,
			wantLevel: model.NoticeSuccess,
		},
		{
			name: "remote failure keeps the form",
			req:  dto.SubmitRequest{RenterID: "3", Date: "2025-03-10", Time: "14:30"},
			setup: func(store *mocks.MockStore) {
				store.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(requestDto.RequestResponse{}, failure.BadGateway("down"))
			},
			wantErr:   failure.BadGateway("down"),
			wantState: model.StateNoBooking,
			wantLevel: model.NoticeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, store := newFlow(t, nil)
			store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return(nil, nil)

			if tt.setup != nil {
				tt.setup(store)
			}

			res, err := flow.Submit(context.Background(), tenant, "42", tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantState, res.State)
			require.NotNil(t, res.Notice)
			assert.Equal(t, tt.wantLevel, res.Notice.Level)
			assert.Equal(t, fixedNow.Add(3*time.Second), res.Notice.ExpiresAt)
		})
	}
}

func TestFlow_SubmitWithExistingBooking(t *testing.T) {
	flow, store := newFlow(t, nil)
	store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
		Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusPending)}, nil)

	res, err := flow.Submit(context.Background(), tenant, "42", dto.SubmitRequest{RenterID: "3", Date: "2025-03-10", Time: "14:30"})

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, model.StateHasBooking, res.State)
}

func TestFlow_SubmitAfterInactiveBooking(t *testing.T) {
	for _, status := range []requestModel.Status{requestModel.StatusDeclined, requestModel.StatusCompleted} {
		t.Run(status.String(), func(t *testing.T) {
			flow, store := newFlow(t, nil)
			store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
				Return([]requestDto.RequestResponse{booking("1", "42", status)}, nil)

			view, err := flow.Tenant(context.Background(), tenant, "42")
			require.NoError(t, err)
			assert.Equal(t, model.StateHasBooking, view.State)
			assert.Equal(t, status, view.Booking.Status)

			store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
				Return([]requestDto.RequestResponse{booking("1", "42", status)}, nil)
			store.EXPECT().Create(gomock.Any(), tenant, requestDto.CreateRequest{
				UserRentID: "7",
				RenterID:   "3",
				PostID:     "42",
				DateTime:   "2025-03-10T14:30:00+07:00",
			}).Return(booking("2", "42", requestModel.StatusPending), nil).Times(1)

			res, err := flow.Submit(context.Background(), tenant, "42", dto.SubmitRequest{RenterID: "3", Date: "2025-03-10", Time: "14:30"})

			require.NoError(t, err)
			assert.Equal(t, model.StateHasBooking, res.State)
			assert.Equal(t, "2", res.Booking.ID.String())
			assert.Equal(t, requestModel.StatusPending, res.Booking.Status)
		})
	}
}

func TestFlow_Cancel(t *testing.T) {
	t.Run("success returns to the slot form", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
			Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusPending)}, nil)
		store.EXPECT().Delete(gomock.Any(), tenant, "1").Return(nil).Times(1)

		res, err := flow.Cancel(context.Background(), tenant, "42")

		require.NoError(t, err)
		assert.Equal(t, model.StateNoBooking, res.State)
		assert.Nil(t, res.Booking)
		assert.Equal(t, model.NoticeSuccess, res.Notice.Level)
	})

	t.Run("failure keeps the booking", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
			Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusPending)}, nil)
		store.EXPECT().Delete(gomock.Any(), tenant, "1").Return(errors.New("boom"))

		res, err := flow.Cancel(context.Background(), tenant, "42")

		require.Error(t, err)
		assert.Equal(t, model.StateHasBooking, res.State)
		assert.Equal(t, "1", res.Booking.ID.String())
		assert.Equal(t, model.NoticeError, res.Notice.Level)
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return(nil, nil)

		res, err := flow.Cancel(context.Background(), tenant, "42")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, model.StateNoBooking, res.State)
	})
}

func TestFlow_Reschedule(t *testing.T) {
	t.Run("updates date_time", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
			Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusAccepted)}, nil)

		moved := booking("1", "42", requestModel.StatusPending)
		moved.DateTime = "2025-03-12T09:00:00+07:00"
		store.EXPECT().Update(gomock.Any(), tenant, "1", requestDto.UpdateRequest{DateTime: "2025-03-12T09:00:00+07:00"}).Return(moved, nil)

		res, err := flow.Reschedule(context.Background(), tenant, "42", dto.RescheduleRequest{Date: "2025-03-12", Time: "09:00"})

		require.NoError(t, err)
		assert.Equal(t, "2025-03-12T09:00:00+07:00", res.Booking.DateTime)
		assert.Equal(t, requestModel.StatusPending, res.Booking.Status)
	})

	t.Run("past date warns without a call", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
			Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusPending)}, nil)

		res, err := flow.Reschedule(context.Background(), tenant, "42", dto.RescheduleRequest{Date: "2025-03-01", Time: "09:00"})

		assert.ErrorIs(t, err, service.ErrPastDate)
		assert.Equal(t, model.NoticeWarning, res.Notice.Level)
	})

	t.Run("disabled", func(t *testing.T) {
		flow, store := newFlow(t, func(o *service.Options) { o.AllowReschedule = false })
		store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
			Return([]requestDto.RequestResponse{booking("1", "42", requestModel.StatusPending)}, nil)

		_, err := flow.Reschedule(context.Background(), tenant, "42", dto.RescheduleRequest{Date: "2025-03-12", Time: "09:00"})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestFlow_LandlordActions(t *testing.T) {
	pending := func() []requestDto.RequestResponse {
		return []requestDto.RequestResponse{
			booking("1", "42", requestModel.StatusPending),
			booking("2", "42", requestModel.StatusPending),
		}
	}

	t.Run("accept issues exactly one mutation", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(pending(), nil)
		store.EXPECT().Accept(gomock.Any(), landlord, "1").Return(booking("1", "42", requestModel.StatusAccepted), nil).Times(1)

		res, err := flow.Accept(context.Background(), landlord, "42", "1")

		require.NoError(t, err)
		assert.Equal(t, requestModel.StatusAccepted, res.Requests[0].Status)
		assert.Equal(t, requestModel.StatusPending, res.Requests[1].Status)
		assert.Equal(t, model.NoticeSuccess, res.Notice.Level)
	})

	t.Run("decline issues exactly one mutation", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(pending(), nil)
		store.EXPECT().Decline(gomock.Any(), landlord, "2").Return(booking("2", "42", requestModel.StatusDeclined), nil).Times(1)

		res, err := flow.Decline(context.Background(), landlord, "42", "2")

		require.NoError(t, err)
		assert.Equal(t, requestModel.StatusDeclined, res.Requests[1].Status)
	})

	t.Run("failed accept rolls back", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(pending(), nil)
		store.EXPECT().Accept(gomock.Any(), landlord, "1").Return(requestDto.RequestResponse{}, failure.Conflict("stale")).Times(1)

		res, err := flow.Accept(context.Background(), landlord, "42", "1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, requestModel.StatusPending, res.Requests[0].Status)
		assert.Equal(t, model.NoticeError, res.Notice.Level)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(pending(), nil)
		store.EXPECT().Delete(gomock.Any(), landlord, "1").Return(nil).Times(1)

		res, err := flow.Delete(context.Background(), landlord, "42", "1")

		require.NoError(t, err)
		require.Len(t, res.Requests, 1)
		assert.Equal(t, "2", res.Requests[0].ID.String())
	})

	t.Run("failed delete restores the row", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(pending(), nil)
		store.EXPECT().Delete(gomock.Any(), landlord, "1").Return(errors.New("boom"))

		res, err := flow.Delete(context.Background(), landlord, "42", "1")

		require.Error(t, err)
		assert.Len(t, res.Requests, 2)
	})

	t.Run("unknown request", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(pending(), nil)

		_, err := flow.Accept(context.Background(), landlord, "42", "9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("load failure", func(t *testing.T) {
		flow, store := newFlow(t, nil)
		store.EXPECT().ListByPost(gomock.Any(), landlord, "42").Return(nil, errors.New("down"))

		res, err := flow.Landlord(context.Background(), landlord, "42")

		require.Error(t, err)
		assert.Empty(t, res.Requests)
		assert.Equal(t, model.NoticeError, res.Notice.Level)
	})
}

func TestDefaultOptions(t *testing.T) {
	opts := service.DefaultOptions()

	assert.True(t, opts.AllowReschedule)
	assert.True(t, opts.ShowExistingBookingGuard)
	assert.Equal(t, model.PolicyFailOpen, opts.CheckPolicy)
	assert.Equal(t, 3*time.Second, opts.NoticeTTL)
	assert.Equal(t, "+07:00", opts.UTCOffset)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Booking.CheckPolicy = "fail_closed"
	cfg.Booking.NoticeTTLSeconds = 5
	cfg.Booking.UTCOffset = "+07:00"
	cfg.Booking.ExistingGuard = true

	opts, err := service.OptionsFromConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, model.PolicyFailClosed, opts.CheckPolicy)
	assert.Equal(t, 5*time.Second, opts.NoticeTTL)
	assert.False(t, opts.AllowReschedule)
	assert.True(t, opts.ShowExistingBookingGuard)

	cfg.Booking.CheckPolicy = "sometimes"

	_, err = service.OptionsFromConfig(cfg)

	assert.ErrorIs(t, err, model.ErrUnknownPolicy)
}

func TestNew_RejectsInvalidOffset(t *testing.T) {
	store := mocks.NewMockStore(gomock.NewController(t))

	opts := service.DefaultOptions()
	opts.UTCOffset = "GMT+7"

	_, err := service.New(store, opts, otelMocks.NewOtel())

	assert.Error(t, err)

	opts.UTCOffset = "+09:00"

	_, err = service.New(store, opts, otelMocks.NewOtel())

	assert.NoError(t, err)
}
