package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentro/internal/domains/booking/mocks"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/service"
	requestDto "rentro/internal/domains/request/model/dto"
)

var tenant = model.Session{UserID: "7", Role: "user", Token: "token"}

func decodeRequests(t *testing.T, raw string) []requestDto.RequestResponse {
	t.Helper()

	var requests []requestDto.RequestResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &requests))

	return requests
}

func TestChecker_NoPriorRequests(t *testing.T) {
	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return([]requestDto.RequestResponse{}, nil)

	existing, err := service.NewChecker(store, model.PolicyFailOpen).Check(context.Background(), tenant, "7", "42")

	require.NoError(t, err)
	assert.False(t, existing.Has)
	assert.Nil(t, existing.Request)
}

func TestChecker_MatchesAcrossIDRepresentations(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		postID string
	}{
		{name: "number on the wire", raw: `[{"id": 1, "id_post": 42, "status": "Pending"}]`, postID: "42"},
		{name: "string on the wire", raw: `[{"id": "1", "id_post": "42", "status": "Pending"}]`, postID: "42"},
		{name: "float on the wire", raw: `[{"id": 1, "id_post": 42.0, "status": "cho_xac_nhan"}]`, postID: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockStore(gomock.NewController(t))
			store.EXPECT().ListByUser(gomock.Any(), tenant, "7").Return(decodeRequests(t, tt.raw), nil)

			existing, err := service.NewChecker(store, model.PolicyFailOpen).Check(context.Background(), tenant, "7", tt.postID)

			require.NoError(t, err)
			require.True(t, existing.Has)
			assert.Equal(t, "1", existing.Request.ID.String())
		})
	}
}

func TestChecker_IgnoresOtherListings(t *testing.T) {
	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
		Return(decodeRequests(t, `[{"id": 1, "id_post": 41, "status": "Pending"}, {"id": 2, "id_post": 420, "status": "Pending"}]`), nil)

	existing, err := service.NewChecker(store, model.PolicyFailOpen).Check(context.Background(), tenant, "7", "42")

	require.NoError(t, err)
	assert.False(t, existing.Has)
}

func TestChecker_PrefersActiveRequest(t *testing.T) {
	store := mocks.NewMockStore(gomock.NewController(t))
	store.EXPECT().ListByUser(gomock.Any(), tenant, "7").
		Return(decodeRequests(t, `[{"id": 1, "id_post": 42, "status": "Declined"}, {"id": 2, "id_post": 42, "status": "Accepted"}]`), nil)

	existing, err := service.NewChecker(store, model.PolicyFailOpen).Check(context.Background(), tenant, "7", "42")

	require.NoError(t, err)
	assert.Equal(t, "2", existing.Request.ID.String())
}

func TestChecker_MissingInputSkipsStore(t *testing.T) {
	store := mocks.NewMockStore(gomock.NewController(t))
	checker := service.NewChecker(store, model.PolicyFailClosed)

	for _, ids := range [][2]string{{"", "42"}, {"7", ""}, {"", ""}} {
		existing, err := checker.Check(context.Background(), tenant, ids[0], ids[1])

		assert.NoError(t, err)
		assert.False(t, existing.Has)
	}
}

func TestChecker_Policy(t *testing.T) {
	transportErr := errors.New("connection reset")

	t.Run("check reports the failure", func(t *testing.T) {
		store := mocks.NewMockStore(gomock.NewController(t))
		store.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr)

		_, err := service.NewChecker(store, model.PolicyFailOpen).Check(context.Background(), tenant, "7", "42")

		assert.ErrorIs(t, err, service.ErrCheckFailed)
		assert.ErrorIs(t, err, transportErr)
	})

	t.Run("fail open resolves to no booking", func(t *testing.T) {
		store := mocks.NewMockStore(gomock.NewController(t))
		store.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr)

		existing, err := service.NewChecker(store, model.PolicyFailOpen).Resolve(context.Background(), tenant, "7", "42")

		assert.NoError(t, err)
		assert.False(t, existing.Has)
	})

	t.Run("fail closed surfaces the failure", func(t *testing.T) {
		store := mocks.NewMockStore(gomock.NewController(t))
		store.EXPECT().ListByUser(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, transportErr)

		_, err := service.NewChecker(store, model.PolicyFailClosed).Resolve(context.Background(), tenant, "7", "42")

		assert.ErrorIs(t, err, service.ErrCheckFailed)
	})
}
