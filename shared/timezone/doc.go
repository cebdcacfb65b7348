// Package timezone provides timezone utilities for the application.
//
// The zone is configured through APP_TIMEZONE using IANA names such as
// "Asia/Ho_Chi_Minh" or "UTC", and falls back to Asia/Ho_Chi_Minh when unset.
//
//	now := timezone.Now()
//	today := timezone.StartOfDay(now, timezone.GetLocation())
//	zone, err := timezone.ParseOffset("+07:00")
package timezone
