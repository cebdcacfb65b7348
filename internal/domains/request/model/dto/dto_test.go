package dto_test

import (
	"encoding/json"
	"rentro/internal/domains/request/model"
	"rentro/internal/domains/request/model/dto"
	gModel "rentro/shared/model"
	"rentro/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_DecodeMixedIDs(t *testing.T) {
	body := `{"id_user_rent": 12, "id_renter": "34", "id_post": 56.0, "date_time": "2025-03-10T14:30:00+07:00"}`

	var req dto.CreateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, validator.ValidateStruct(&req))

	mod, err := req.ToModel("12")
	require.NoError(t, err)

	assert.NotEmpty(t, mod.ID)
	assert.Equal(t, "12", mod.UserRentID)
	assert.Equal(t, "34", mod.RenterID)
	assert.Equal(t, "56", mod.PostID)
	assert.Equal(t, model.StatusPending, mod.Status)
	assert.Equal(t, "12", mod.CreatedBy)

	_, offset := mod.DateTime.Zone()
	assert.Equal(t, 7*3600, offset)
	assert.True(t, mod.DateTime.Equal(time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)))
}

func TestCreateRequest_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateRequest
	}{
		{name: "missing post", req: dto.CreateRequest{UserRentID: "1", RenterID: "2", DateTime: "2025-03-10T14:30:00+07:00"}},
		{name: "naive timestamp", req: dto.CreateRequest{UserRentID: "1", RenterID: "2", PostID: "3", DateTime: "2025-03-10 14:30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, validator.ValidateStruct(&tt.req))
		})
	}
}

func TestUpdateRequest_Parse(t *testing.T) {
	req := dto.UpdateRequest{DateTime: "2025-03-11T08:00:00+07:00"}

	parsed, err := req.Parse()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)))

	_, err = (&dto.UpdateRequest{DateTime: "tomorrow"}).Parse()
	assert.Error(t, err)
}

func TestRequestResponse_FromModel(t *testing.T) {
	mod := model.Request{
		ID:         "req-1",
		UserRentID: "12",
		RenterID:   "34",
		PostID:     "56",
		DateTime:   time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC),
		Status:     model.StatusAccepted,
		Metadata:   gModel.Metadata{CreatedBy: "12"},
	}

	var res dto.RequestResponse
	res.FromModel(mod)

	assert.True(t, res.PostID.Equal("56"))
	assert.Equal(t, model.StatusAccepted, res.Status)

	assert.Equal(t, "2025-03-10T14:30:00+07:00", res.DateTime)

	list := dto.FromModels([]model.Request{mod, mod})
	assert.Len(t, list, 2)

	event := dto.NewEvent(model.EventAccepted, "34", mod)
	assert.Equal(t, model.EventAccepted, event.Type)
	assert.Equal(t, "34", event.Actor)
	assert.True(t, event.Request.ID.Equal("req-1"))
}
