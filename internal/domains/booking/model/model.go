package model

import (
	"errors"
	"fmt"
	"rentro/shared/constant"
	"time"
)

// Session is the authenticated caller. It is passed explicitly through the flow
// and forwarded to the request store.
type Session struct {
	UserID string
	Role   string
	Token  string
}

func (s Session) IsAdmin() bool {
	return s.Role == constant.RoleAdmin
}

// State is the tenant view state.
type State string

const (
	StateLoading    State = "loading"
	StateError      State = "error"
	StateNoBooking  State = "no_booking"
	StateHasBooking State = "has_booking"
)

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message shown to the user until ExpiresAt.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (n Notice) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// CheckPolicy decides what a failed existing-booking check means.
type CheckPolicy string

const (
	// PolicyFailOpen treats a failed check as "no existing booking".
	PolicyFailOpen CheckPolicy = "fail_open"
	// PolicyFailClosed surfaces the failure and blocks the form.
	PolicyFailClosed CheckPolicy = "fail_closed"
)

var ErrUnknownPolicy = errors.New("unknown check policy")

func ParseCheckPolicy(value string) (CheckPolicy, error) {
	switch CheckPolicy(value) {
	case PolicyFailOpen, "":
		return PolicyFailOpen, nil
	case PolicyFailClosed:
		return PolicyFailClosed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, value)
	}
}
