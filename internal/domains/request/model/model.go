package model

import (
	"rentro/shared/model"
	"time"
)

const (
	TableName  = "booking_requests"
	EntityName = "request"

	FieldID         = "id"
	FieldUserRentID = "id_user_rent"
	FieldRenterID   = "id_renter"
	FieldPostID     = "id_post"
	FieldDateTime   = "date_time"
	FieldStatus     = "status"
)

// Request is a viewing proposal from a requester (UserRentID) to the landlord (RenterID)
// of a listing (PostID) at one instant.
type Request struct {
	ID         string    `db:"id"`
	UserRentID string    `db:"id_user_rent"`
	RenterID   string    `db:"id_renter"`
	PostID     string    `db:"id_post"`
	DateTime   time.Time `db:"date_time"`
	Status     Status    `db:"status"`
	model.Metadata
}

// Event types published on every successful write.
const (
	EventCreated     = "request.created"
	EventRescheduled = "request.rescheduled"
	EventAccepted    = "request.accepted"
	EventDeclined    = "request.declined"
	EventCompleted   = "request.completed"
	EventDeleted     = "request.deleted"
)
