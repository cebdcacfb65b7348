package service

import (
	"context"
	"errors"
	"fmt"
	"rentro/internal/domains/booking/model"
	requestDto "rentro/internal/domains/request/model/dto"
	"rentro/shared/constant"

	"github.com/rs/zerolog/log"
)

var ErrCheckFailed = errors.New("existing booking check failed")

// Existing is the outcome of a conflict check.
type Existing struct {
	Has     bool
	Request *requestDto.RequestResponse
}

type Checker struct {
	store  Store
	policy model.CheckPolicy
}

func NewChecker(store Store, policy model.CheckPolicy) *Checker {
	return &Checker{store: store, policy: policy}
}

// Check lists the requester's requests and looks for one against postID. Ids are
// compared as strings since the store may serialize them as numbers. An active
// request wins over a declined or completed one. Failures wrap ErrCheckFailed.
func (c *Checker) Check(ctx context.Context, session model.Session, requesterID, postID string) (Existing, error) {
	if requesterID == constant.Empty || postID == constant.Empty {
		return Existing{}, nil
	}

	requests, err := c.store.ListByUser(ctx, session, requesterID)
	if err != nil {
		return Existing{}, fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}

	var found *requestDto.RequestResponse

	for i := range requests {
		if !requests[i].PostID.Equal(postID) {
			continue
		}

		if requests[i].Status.IsActive() {
			return Existing{Has: true, Request: &requests[i]}, nil
		}

		if found == nil {
			found = &requests[i]
		}
	}

	if found == nil {
		return Existing{}, nil
	}

	return Existing{Has: true, Request: found}, nil
}

// Resolve runs Check and applies the policy. Under PolicyFailOpen a failed check
// yields "no existing booking" and a nil error.
func (c *Checker) Resolve(ctx context.Context, session model.Session, requesterID, postID string) (Existing, error) {
	existing, err := c.Check(ctx, session, requesterID, postID)
	if err == nil {
		return existing, nil
	}

	if c.policy == model.PolicyFailClosed {
		return Existing{}, err
	}

	log.Warn().Err(err).
		Str("requester", requesterID).
		Str("post", postID).
		Msg("existing booking check failed, continuing without it")

	return Existing{}, nil
}
