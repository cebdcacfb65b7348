package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state of a booking request.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusDeclined  Status = "Declined"
	StatusCompleted Status = "Completed"
)

// Vietnamese wire values used by older clients.
const (
	statusPendingVi   = "cho_xac_nhan"
	statusAcceptedVi  = "da_xac_nhan"
	statusDeclinedVi  = "da_tu_choi"
	statusCompletedVi = "hoan_thanh"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusDeclined},
	StatusAccepted: {StatusDeclined, StatusCompleted},
}

// ParseStatus accepts the English tags and the Vietnamese vocabulary, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", statusPendingVi:
		return StatusPending, nil
	case "accepted", statusAcceptedVi:
		return StatusAccepted, nil
	case "declined", statusDeclinedVi:
		return StatusDeclined, nil
	case "completed", statusCompletedVi:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown request status %q", raw)
	}
}

// ActiveStatuses block a new request for the same requester and listing.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAccepted}
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

func (s Status) IsTerminal() bool {
	return s == StatusDeclined || s == StatusCompleted
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s Status) String() string {
	return string(s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

func (s *Status) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", src)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
