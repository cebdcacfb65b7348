package service

import (
	"context"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/model/dto"
	requestModel "rentro/internal/domains/request/model"
	requestDto "rentro/internal/domains/request/model/dto"
	"rentro/shared/failure"
	"slices"
	"sync"
)

var errNotInView = failure.NotFound("booking request not found for this listing")

type mutation func(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error)

// LandlordView lists every request against one listing. Each action is applied to the
// local list first and rolled back when the store rejects it.
type LandlordView struct {
	mu sync.Mutex

	store   Store
	notices notifier

	session model.Session
	postID  string

	requests []requestDto.RequestResponse
	notice   *model.Notice
}

func (v *LandlordView) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	requests, err := v.store.ListByPost(ctx, v.session, v.postID)
	if err != nil {
		v.notice = v.notices.failure("could not load booking requests")

		return err
	}

	v.requests = requests

	return nil
}

func (v *LandlordView) Accept(ctx context.Context, id string) error {
	return v.transition(ctx, id, requestModel.StatusAccepted, v.store.Accept, "booking accepted")
}

func (v *LandlordView) Decline(ctx context.Context, id string) error {
	return v.transition(ctx, id, requestModel.StatusDeclined, v.store.Decline, "booking declined")
}

func (v *LandlordView) Delete(ctx context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	index := v.indexOf(id)
	if index < 0 {
		return errNotInView
	}

	previous := slices.Clone(v.requests)
	v.requests = slices.Delete(v.requests, index, index+1)

	if err := v.store.Delete(ctx, v.session, id); err != nil {
		v.requests = previous
		v.notice = v.notices.failure("delete failed, please retry")

		return err
	}

	v.notice = v.notices.success("booking request deleted")

	return nil
}

func (v *LandlordView) transition(ctx context.Context, id string, next requestModel.Status, call mutation, done string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	index := v.indexOf(id)
	if index < 0 {
		return errNotInView
	}

	previous := v.requests[index]
	v.requests[index].Status = next

	updated, err := call(ctx, v.session, id)
	if err != nil {
		v.requests[index] = previous
		v.notice = v.notices.failure("update failed, please retry")

		return err
	}

	v.requests[index] = updated
	v.notice = v.notices.success(done)

	return nil
}

func (v *LandlordView) indexOf(id string) int {
	return slices.IndexFunc(v.requests, func(request requestDto.RequestResponse) bool {
		return request.ID.Equal(id)
	})
}

func (v *LandlordView) Snapshot() dto.LandlordViewResponse {
	v.mu.Lock()
	defer v.mu.Unlock()

	requests := slices.Clone(v.requests)
	if requests == nil {
		requests = []requestDto.RequestResponse{}
	}

	return dto.LandlordViewResponse{
		PostID:   v.postID,
		Requests: requests,
		Notice:   v.notice,
	}
}
