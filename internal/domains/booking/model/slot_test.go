package model_test

import (
	"rentro/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	slots := model.Catalog()

	require.Len(t, slots, 23)
	assert.Equal(t, "08:00", slots[0].Value)
	assert.Equal(t, "20:00", slots[len(slots)-1].Value)
	assert.Equal(t, model.Catalog(), slots)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1].Value, slots[i].Value)
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	slots := model.Catalog()
	slots[0].Value = "07:00"

	assert.Equal(t, "08:00", model.Catalog()[0].Value)
}

func TestCatalog_Segments(t *testing.T) {
	segments := map[string]model.Segment{}
	for _, slot := range model.Catalog() {
		segments[slot.Value] = slot.Segment
	}

	assert.Equal(t, model.SegmentMorning, segments["11:30"])
	assert.Equal(t, model.SegmentAfternoon, segments["13:00"])
	assert.Equal(t, model.SegmentAfternoon, segments["17:30"])
	assert.Equal(t, model.SegmentEvening, segments["18:00"])
	assert.Equal(t, "14:30 (Chiều)", model.Catalog()[11].Label)
}

func TestIsValidSlot(t *testing.T) {
	tests := map[string]bool{
		"08:00": true,
		"11:30": true,
		"12:00": false,
		"12:30": false,
		"13:00": true,
		"20:00": true,
		"20:30": false,
		"07:30": false,
		"14:15": false,
		"":      false,
	}

	for value, want := range tests {
		assert.Equal(t, want, model.IsValidSlot(value), value)
	}
}
