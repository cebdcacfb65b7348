package service

import (
	"fmt"
	"rentro/internal/domains/booking/model"
	requestDto "rentro/internal/domains/request/model/dto"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
	"rentro/shared/failure"
	"rentro/shared/timezone"
	"time"
)

var (
	ErrMissingFields = failure.BadRequestFromString("missing fields: choose a date and a time")
	ErrPastDate      = failure.BadRequestFromString("past date: choose today or a later day")
	ErrUnknownSlot   = failure.BadRequestFromString("unknown time slot")
)

// Draft is the raw input of the booking form.
type Draft struct {
	Date        string
	Time        string
	RequesterID string
	LandlordID  string
	ListingID   string
}

// Builder turns a form draft into a creation payload. Timestamps always carry the
// configured offset, whatever the caller's own zone is.
type Builder struct {
	offset string
	loc    *time.Location
	now    func() time.Time
}

func NewBuilder(offset string, loc *time.Location, now func() time.Time) (*Builder, error) {
	if _, err := timezone.ParseOffset(offset); err != nil {
		return nil, err
	}

	return &Builder{offset: offset, loc: loc, now: now}, nil
}

// Timestamp validates date and clock, then joins them with the fixed offset:
// "2025-03-10" and "14:30" give "2025-03-10T14:30:00+07:00".
func (b *Builder) Timestamp(date, clock string) (string, error) {
	if date == constant.Empty || clock == constant.Empty {
		return "", ErrMissingFields
	}

	day, err := time.ParseInLocation(constant.DayFormat, date, b.loc)
	if err != nil {
		return "", failure.BadRequest(fmt.Errorf("invalid date %q", date))
	}

	if day.Before(timezone.StartOfDay(b.now(), b.loc)) {
		return "", ErrPastDate
	}

	if !model.IsValidSlot(clock) {
		return "", ErrUnknownSlot
	}

	return date + "T" + clock + constant.SecondsSuffix + b.offset, nil
}

func (b *Builder) Build(draft Draft) (requestDto.CreateRequest, error) {
	dateTime, err := b.Timestamp(draft.Date, draft.Time)
	if err != nil {
		return requestDto.CreateRequest{}, err
	}

	return requestDto.CreateRequest{
		UserRentID: gDto.FlexibleID(draft.RequesterID),
		RenterID:   gDto.FlexibleID(draft.LandlordID),
		PostID:     gDto.FlexibleID(draft.ListingID),
		DateTime:   dateTime,
	}, nil
}
