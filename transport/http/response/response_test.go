package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"rentro/shared/failure"
	"rentro/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	State string `json:"state"`
}

type body struct {
	Data  *view  `json:"data"`
	Error string `json:"error"`
}

func TestWithSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		hasNotice bool
		err       error
		wantCode  int
		wantView  bool
		wantError string
	}{
		{name: "success", wantCode: http.StatusCreated, wantView: true},
		{name: "failure with notice keeps the view", hasNotice: true, err: failure.BadRequestFromString("past date"), wantCode: http.StatusBadRequest, wantView: true},
		{name: "failure without notice", err: failure.Conflict("already booked"), wantCode: http.StatusConflict, wantError: "already booked"},
		{name: "unknown failure", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantError: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithSnapshot(recorder, http.StatusCreated, view{State: "no_booking"}, tt.hasNotice, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

			var got body
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))

			if tt.wantView {
				require.NotNil(t, got.Data)
				assert.Equal(t, "no_booking", got.Data.State)
			} else {
				assert.Nil(t, got.Data)
			}

			assert.Equal(t, tt.wantError, got.Error)
		})
	}
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithUnhealthy(recorder)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"message"`)
}
