package service

import (
	"rentro/infras/otel"
	"time"
)

func NewForTest(store Store, opts Options, otel otel.Otel, loc *time.Location, now func() time.Time) (Booking, error) {
	return newService(store, opts, otel, loc, now)
}
