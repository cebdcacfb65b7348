package service

import (
	"fmt"
	"rentro/config"
	"rentro/internal/domains/booking/model"
	"time"
)

// Options parameterises the tenant and landlord views.
type Options struct {
	AllowReschedule          bool
	ShowExistingBookingGuard bool
	CheckPolicy              model.CheckPolicy
	NoticeTTL                time.Duration
	UTCOffset                string
}

func DefaultOptions() Options {
	return Options{
		AllowReschedule:          true,
		ShowExistingBookingGuard: true,
		CheckPolicy:              model.PolicyFailOpen,
		NoticeTTL:                3 * time.Second,
		UTCOffset:                "+07:00",
	}
}

func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := model.ParseCheckPolicy(cfg.Booking.CheckPolicy)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read booking options: %w", err)
	}

	opts := DefaultOptions()
	opts.AllowReschedule = cfg.Booking.AllowReschedule
	opts.ShowExistingBookingGuard = cfg.Booking.ExistingGuard
	opts.CheckPolicy = policy

	if cfg.Booking.NoticeTTLSeconds > 0 {
		opts.NoticeTTL = time.Duration(cfg.Booking.NoticeTTLSeconds) * time.Second
	}

	if cfg.Booking.UTCOffset != "" {
		opts.UTCOffset = cfg.Booking.UTCOffset
	}

	return opts, nil
}
