package service

import (
	"context"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/model/dto"
	requestDto "rentro/internal/domains/request/model/dto"
	"rentro/shared/failure"
	"sync"
)

var (
	errNoBooking          = failure.Conflict("there is no booking to change")
	errAlreadyBooked      = failure.Conflict("a booking for this listing already exists")
	errRescheduleDisabled = failure.Forbidden("rescheduling is disabled")
)

// TenantView is the requester's side of one listing: loading, then an error, the slot
// form (no_booking) or the current booking (has_booking).
type TenantView struct {
	mu sync.Mutex

	store   Store
	checker *Checker
	builder *Builder
	notices notifier
	opts    Options

	session model.Session
	postID  string

	state   model.State
	booking *requestDto.RequestResponse
	notice  *model.Notice
	err     error
}

func (v *TenantView) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = model.StateLoading
	v.booking = nil
	v.err = nil

	if !v.opts.ShowExistingBookingGuard {
		v.state = model.StateNoBooking

		return nil
	}

	existing, err := v.checker.Resolve(ctx, v.session, v.session.UserID, v.postID)
	if err != nil {
		v.state = model.StateError
		v.err = err

		return err
	}

	if existing.Has {
		v.state = model.StateHasBooking
		v.booking = existing.Request

		return nil
	}

	v.state = model.StateNoBooking

	return nil
}

// Submit books the slot. Validation failures leave the view untouched and never reach the store.
func (v *TenantView) Submit(ctx context.Context, landlordID, date, clock string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.blocked() {
		return errAlreadyBooked
	}

	req, err := v.builder.Build(Draft{
		Date:        date,
		Time:        clock,
		RequesterID: v.session.UserID,
		LandlordID:  landlordID,
		ListingID:   v.postID,
	})
	if err != nil {
		v.notice = v.notices.warning(err.Error())

		return err
	}

	created, err := v.store.Create(ctx, v.session, req)
	if err != nil {
		v.notice = v.notices.failure("booking failed, please retry")

		return err
	}

	v.booking = &created
	v.state = model.StateHasBooking
	v.notice = v.notices.success("booking request sent")

	return nil
}

func (v *TenantView) Cancel(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != model.StateHasBooking {
		return errNoBooking
	}

	if err := v.store.Delete(ctx, v.session, v.booking.ID.String()); err != nil {
		v.notice = v.notices.failure("cancel failed, please retry")

		return err
	}

	v.booking = nil
	v.state = model.StateNoBooking
	v.notice = v.notices.success("booking cancelled")

	return nil
}

func (v *TenantView) Reschedule(ctx context.Context, date, clock string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.opts.AllowReschedule {
		return errRescheduleDisabled
	}

	if v.state != model.StateHasBooking {
		return errNoBooking
	}

	dateTime, err := v.builder.Timestamp(date, clock)
	if err != nil {
		v.notice = v.notices.warning(err.Error())

		return err
	}

	updated, err := v.store.Update(ctx, v.session, v.booking.ID.String(), requestDto.UpdateRequest{DateTime: dateTime})
	if err != nil {
		v.notice = v.notices.failure("reschedule failed, please retry")

		return err
	}

	v.booking = &updated
	v.notice = v.notices.success("booking rescheduled")

	return nil
}

// blocked reports whether an active booking prevents a new one. A declined or completed
// booking stays visible but does not block.
func (v *TenantView) blocked() bool {
	switch v.state {
	case model.StateNoBooking:
		return false
	case model.StateHasBooking:
		return v.booking == nil || v.booking.Status.IsActive()
	default:
		return true
	}
}

func (v *TenantView) Snapshot() dto.TenantViewResponse {
	v.mu.Lock()
	defer v.mu.Unlock()

	res := dto.TenantViewResponse{
		PostID:  v.postID,
		State:   v.state,
		Booking: v.booking,
		Notice:  v.notice,
	}

	if v.err != nil {
		res.Error = v.err.Error()
	}

	return res
}
