package dto

import (
	"fmt"
	"rentro/internal/domains/request/model"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
	gModel "rentro/shared/model"
	"rentro/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateRequest struct {
	UserRentID gDto.FlexibleID `json:"id_user_rent" validate:"required"`
	RenterID   gDto.FlexibleID `json:"id_renter"    validate:"required"`
	PostID     gDto.FlexibleID `json:"id_post"      validate:"required"`
	DateTime   string          `json:"date_time"    validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (c *CreateRequest) ToModel(user string) (model.Request, error) {
	dateTime, err := time.Parse(constant.DateFormat, c.DateTime)
	if err != nil {
		return model.Request{}, fmt.Errorf("invalid date_time: %w", err)
	}

	now := timezone.Now()

	return model.Request{
		ID:         uuid.NewString(),
		UserRentID: c.UserRentID.String(),
		RenterID:   c.RenterID.String(),
		PostID:     c.PostID.String(),
		DateTime:   dateTime,
		Status:     model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// UpdateRequest reschedules a request.
type UpdateRequest struct {
	DateTime string `json:"date_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (u *UpdateRequest) Parse() (time.Time, error) {
	dateTime, err := time.Parse(constant.DateFormat, u.DateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date_time: %w", err)
	}

	return dateTime, nil
}

type RequestResponse struct {
	ID         gDto.FlexibleID `json:"id"`
	UserRentID gDto.FlexibleID `json:"id_user_rent"`
	RenterID   gDto.FlexibleID `json:"id_renter"`
	PostID     gDto.FlexibleID `json:"id_post"`
	DateTime   string          `json:"date_time"`
	Status     model.Status    `json:"status"`
	gDto.Metadata
}

func (r *RequestResponse) FromModel(m model.Request) {
	r.ID = gDto.FlexibleID(m.ID)
	r.UserRentID = gDto.FlexibleID(m.UserRentID)
	r.RenterID = gDto.FlexibleID(m.RenterID)
	r.PostID = gDto.FlexibleID(m.PostID)
	r.DateTime = timezone.FormatOffset(m.DateTime, constant.DateFormat)
	r.Status = m.Status
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.Request) []RequestResponse {
	res := make([]RequestResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

// Event is the payload published for every request write.
type Event struct {
	Type       string          `json:"type"`
	Actor      string          `json:"actor"`
	Request    RequestResponse `json:"request"`
	OccurredAt string          `json:"occurred_at"`
}

func NewEvent(eventType, actor string, m model.Request) Event {
	event := Event{
		Type:       eventType,
		Actor:      actor,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
	event.Request.FromModel(m)

	return event
}
