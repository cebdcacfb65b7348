package service

import (
	"context"
	"rentro/internal/domains/booking/model"
	requestDto "rentro/internal/domains/request/model/dto"
)

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

// Store is the booking-request store the flow talks to, either in-process or over HTTP.
type Store interface {
	Create(ctx context.Context, session model.Session, req requestDto.CreateRequest) (requestDto.RequestResponse, error)
	ListByUser(ctx context.Context, session model.Session, userID string) ([]requestDto.RequestResponse, error)
	ListByPost(ctx context.Context, session model.Session, postID string) ([]requestDto.RequestResponse, error)
	Update(ctx context.Context, session model.Session, id string, req requestDto.UpdateRequest) (requestDto.RequestResponse, error)
	Accept(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error)
	Decline(ctx context.Context, session model.Session, id string) (requestDto.RequestResponse, error)
	Delete(ctx context.Context, session model.Session, id string) error
}
