package dto

import (
	"rentro/internal/domains/booking/model"
	requestDto "rentro/internal/domains/request/model/dto"
	gDto "rentro/shared/dto"
)

// SubmitRequest books a viewing. Date and time are checked by the flow so that a
// missing value produces the "missing fields" notice rather than a generic 400.
type SubmitRequest struct {
	RenterID gDto.FlexibleID `json:"renter_id" validate:"required"`
	Date     string          `json:"date"      validate:"omitempty,day"`
	Time     string          `json:"time"      validate:"omitempty,clock"`
}

type RescheduleRequest struct {
	Date string `json:"date" validate:"omitempty,day"`
	Time string `json:"time" validate:"omitempty,clock"`
}

type TenantViewResponse struct {
	PostID  string                      `json:"post_id"`
	State   model.State                 `json:"state"`
	Booking *requestDto.RequestResponse `json:"booking,omitempty"`
	Notice  *model.Notice               `json:"notice,omitempty"`
	Error   string                      `json:"error,omitempty"`
}

type LandlordViewResponse struct {
	PostID   string                       `json:"post_id"`
	Requests []requestDto.RequestResponse `json:"requests"`
	Notice   *model.Notice                `json:"notice,omitempty"`
}

type SlotsResponse struct {
	Slots []model.Slot `json:"slots"`
}
