package store

import (
	"context"
	"rentro/internal/domains/booking/model"
	requestDto "rentro/internal/domains/request/model/dto"
	requestService "rentro/internal/domains/request/service"
	"rentro/shared/constant"
)

// Local serves the booking flow from the request service running in the same process.
type Local struct {
	requests requestService.Request
}

func NewLocal(requests requestService.Request) *Local {
	return &Local{requests: requests}
}

// WithSession places the caller into ctx the way the auth middleware does, so the
// request service applies the same ownership rules as for direct API calls.
func WithSession(ctx context.Context, session model.Session) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, session.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, session.Role)

	return context.WithValue(ctx, constant.ContextKeyAccessToken, session.Token)
}

func (l *Local) Create(ctx context.Context, session model.Session, req requestDto.CreateRequest) (requestDto.RequestResponse, error) {
	return l.requests.Create(WithSession(ctx, session), req) //nolint:wrapcheck
}

func (l *Local) ListByUser(ctx context.Context, session model.Session, userID string) ([]requestDto.RequestResponse, error) {
	return l.requests.GetByUser(WithSession(ctx, session), userID) //nolint:wrapcheck
}

func (l *Local) ListByPost(ctx context.Context, session model.Session, postID string) ([]requestDto.RequestResponse, error) {
	return l.requests.GetByPost(WithSession(ctx, session), postID) //nolint:wrapcheck
}

func (l *Local) Update(ctx context.Context, session model.Session, id string, req requestDto.UpdateRequest) (requestDto.RequestResponse, error) {
	return l.requests.Update(WithSession(ctx, session), id, req) //nolint:wrapcheck
}

func (l *Local) Accept(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error) {
	return l.requests.Accept(WithSession(ctx, session), id) //nolint:wrapcheck
}

func (l *Local) Decline(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error) {
	return l.requests.Decline(WithSession(ctx, session), id) //nolint:wrapcheck
}

func (l *Local) Delete(ctx context.Context, session model.Session, id string) error {
	return l.requests.Delete(WithSession(ctx, session), id) //nolint:wrapcheck
}
