package validator_test

import (
	"net/http"
	"rentro/shared/failure"
	"rentro/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingPayload struct {
	PostID string `json:"id_post" validate:"required"`
	Day    string `json:"day"     validate:"required,day"`
	Slot   string `json:"slot"    validate:"required,clock"`
	Role   string `json:"role"    validate:"omitempty,oneof=user landlord"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    bookingPayload
		message string
	}{
		{name: "valid", data: bookingPayload{PostID: "17", Day: "2025-03-10", Slot: "14:30", Role: "user"}},
		{name: "missing post", data: bookingPayload{Day: "2025-03-10", Slot: "14:30"}, message: "PostID is required"},
		{name: "bad day", data: bookingPayload{PostID: "17", Day: "10/03/2025", Slot: "14:30"}, message: "Day must be a date formatted as YYYY-MM-DD"},
		{name: "bad slot", data: bookingPayload{PostID: "17", Day: "2025-03-10", Slot: "2:30pm"}, message: "Slot must be a time formatted as HH:MM"},
		{name: "short slot", data: bookingPayload{PostID: "17", Day: "2025-03-10", Slot: "8:00"}, message: "Slot must be a time formatted as HH:MM"},
		{name: "bad role", data: bookingPayload{PostID: "17", Day: "2025-03-10", Slot: "14:30", Role: "admin"}, message: "Role must be one of user landlord"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("08:00", "clock"))
	assert.Error(t, validator.ValidateVar("25:00", "clock"))
	assert.NoError(t, validator.ValidateVar("2025-03-10T14:30:00+07:00", "datetime=2006-01-02T15:04:05Z07:00"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"id_post":"17","day":"2025-03-10","slot":"08:00"}`},
		{name: "invalid field", body: `{"id_post":"17","day":"2025-03-10","slot":"late"}`, wantErr: true},
		{name: "malformed", body: `{"id_post":`, wantErr: true},
		{name: "empty", body: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data bookingPayload

			err := validator.Validate(strings.NewReader(tt.body), &data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "08:00", data.Slot)
		})
	}
}
