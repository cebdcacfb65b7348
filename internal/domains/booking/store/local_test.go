package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/service"
	"rentro/internal/domains/booking/store"
	requestDto "rentro/internal/domains/request/model/dto"
	requestService "rentro/internal/domains/request/service"
	"rentro/shared/constant"
)

var _ service.Store = (*store.Local)(nil)

// recorder captures the caller the request service would see.
type recorder struct {
	requestService.Request

	userID string
	role   string
}

func (r *recorder) remember(ctx context.Context) {
	r.userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	r.role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
}

func (r *recorder) Create(ctx context.Context, req requestDto.CreateRequest) (requestDto.RequestResponse, error) {
	r.remember(ctx)

	return requestDto.RequestResponse{ID: "1", PostID: req.PostID}, nil
}

func (r *recorder) GetByUser(ctx context.Context, userID string) ([]requestDto.RequestResponse, error) {
	r.remember(ctx)

	return []requestDto.RequestResponse{{ID: "1", UserRentID: "7"}}, nil
}

func (r *recorder) Delete(ctx context.Context, _ string) error {
	r.remember(ctx)

	return nil
}

func TestWithSession(t *testing.T) {
	ctx := store.WithSession(context.Background(), model.Session{UserID: "7", Role: "user", Token: "abc"})

	assert.Equal(t, "7", ctx.Value(constant.ContextKeyUserID))
	assert.Equal(t, "user", ctx.Value(constant.ContextKeyUserRole))
	assert.Equal(t, "abc", ctx.Value(constant.ContextKeyAccessToken))
}

func TestLocal_ForwardsSession(t *testing.T) {
	session := model.Session{UserID: "7", Role: "user"}
	rec := &recorder{}
	local := store.NewLocal(rec)

	created, err := local.Create(context.Background(), session, requestDto.CreateRequest{PostID: "42"})
	require.NoError(t, err)
	assert.Equal(t, "42", created.PostID.String())
	assert.Equal(t, "7", rec.userID)

	rec.userID = ""
	list, err := local.ListByUser(context.Background(), session, "7")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "7", rec.userID)
	assert.Equal(t, "user", rec.role)

	rec.userID = ""
	require.NoError(t, local.Delete(context.Background(), model.Session{UserID: "3", Role: "landlord"}, "1"))
	assert.Equal(t, "3", rec.userID)
	assert.Equal(t, "landlord", rec.role)
}
