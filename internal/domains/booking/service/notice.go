package service

import (
	"rentro/internal/domains/booking/model"
	"time"
)

type notifier struct {
	ttl time.Duration
	now func() time.Time
}

func (n notifier) notice(level model.NoticeLevel, message string) *model.Notice {
	return &model.Notice{
		Level:     level,
		Message:   message,
		ExpiresAt: n.now().Add(n.ttl),
	}
}

func (n notifier) success(message string) *model.Notice {
	return n.notice(model.NoticeSuccess, message)
}

func (n notifier) warning(message string) *model.Notice {
	return n.notice(model.NoticeWarning, message)
}

func (n notifier) failure(message string) *model.Notice {
	return n.notice(model.NoticeError, message)
}
