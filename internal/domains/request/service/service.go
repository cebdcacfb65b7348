package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Request=MockService

import (
	"context"
	"errors"
	"fmt"
	"rentro/config"
	"rentro/infras/kafka"
	"rentro/infras/metrics"
	"rentro/infras/otel"
	"rentro/infras/postgres"
	"rentro/internal/domains/request/model"
	"rentro/internal/domains/request/model/dto"
	"rentro/internal/domains/request/repository"
	"rentro/shared"
	"rentro/shared/cache"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
	"rentro/shared/failure"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRequest     = "request:get"
	cacheUserRequests   = "request:user"
	cachePostRequests   = "request:post"
	cacheRenterRequests = "request:renter"
)

const (
	actionCreate   = "create"
	actionUpdate   = "reschedule"
	actionAccept   = "accept"
	actionDecline  = "decline"
	actionComplete = "complete"
	actionDelete   = "delete"
)

var (
	errNotFound      = failure.NotFound("booking request not found")
	errActiveRequest = failure.Conflict("an active booking request already exists for this listing")
	errStaleStatus   = failure.Conflict("booking request status changed, reload and try again")
)

type Request interface {
	Create(ctx context.Context, req dto.CreateRequest) (dto.RequestResponse, error)
	Get(ctx context.Context, id string) (dto.RequestResponse, error)
	GetByUser(ctx context.Context, userID string) ([]dto.RequestResponse, error)
	GetByPost(ctx context.Context, postID string) ([]dto.RequestResponse, error)
	GetByRenter(ctx context.Context, renterID string) ([]dto.RequestResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRequest) (dto.RequestResponse, error)
	Accept(ctx context.Context, id string) (dto.RequestResponse, error)
	Decline(ctx context.Context, id string) (dto.RequestResponse, error)
	Complete(ctx context.Context, id string) (dto.RequestResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo   repository.Request
	cfg    *config.Config
	cache  cache.RedisCache
	events kafka.Client
	otel   otel.Otel
}

func New(repo repository.Request, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Request {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		events: events,
		otel:   otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRequest) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Create")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
		metrics.IncBooking(actionCreate, err)
	}()

	who := callerFrom(ctx)

	if !who.owns(req.UserRentID.String()) {
		return res, failure.Forbidden("booking requests can only be created for yourself") // nolint:wrapcheck
	}

	if req.UserRentID.Equal(req.RenterID.String()) {
		return res, failure.BadRequestFromString("you cannot book a viewing of your own listing") // nolint:wrapcheck
	}

	actor := who.id
	if actor == constant.Empty {
		actor = req.UserRentID.String()
	}

	request, err := req.ToModel(actor)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, activeFilter(request.UserRentID, request.PostID))
		if err != nil {
			return fmt.Errorf("failed to check active booking requests: %w", err)
		}

		if exist {
			return errActiveRequest
		}

		return s.repo.InsertTx(ctx, tx, request) //nolint:wrapcheck
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return res, errActiveRequest
		}

		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, err
		}

		log.Error().Err(err).Str("postID", request.PostID).Msg("failed to create booking request")

		return res, fmt.Errorf("failed to create booking request: %w", err)
	}

	s.invalidate(ctx, request)
	s.publish(ctx, model.EventCreated, actor, request)

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRequest, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking request")
	} else {
		request, err := s.load(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(request)
		s.save(ctx, cacheKey, res)
	}

	if !callerFrom(ctx).owns(res.UserRentID.String(), res.RenterID.String()) {
		return dto.RequestResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID string) ([]dto.RequestResponse, error) {
	if !callerFrom(ctx).owns(userID) {
		return nil, failure.ResourceRestrictedError
	}

	return s.list(ctx, cacheUserRequests, model.FieldUserRentID, userID)
}

func (s *serviceImpl) GetByRenter(ctx context.Context, renterID string) ([]dto.RequestResponse, error) {
	if !callerFrom(ctx).owns(renterID) {
		return nil, failure.ResourceRestrictedError
	}

	return s.list(ctx, cacheRenterRequests, model.FieldRenterID, renterID)
}

// GetByPost lists the requests against a listing that the caller is a party to.
func (s *serviceImpl) GetByPost(ctx context.Context, postID string) ([]dto.RequestResponse, error) {
	all, err := s.list(ctx, cachePostRequests, model.FieldPostID, postID)
	if err != nil {
		return nil, err
	}

	who := callerFrom(ctx)

	res := make([]dto.RequestResponse, 0, len(all))
	for _, request := range all {
		if who.owns(request.UserRentID.String(), request.RenterID.String()) {
			res = append(res, request)
		}
	}

	return res, nil
}

// Update reschedules a request. Only the requester may do so, and an accepted request
// goes back to pending so the landlord confirms the new time.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRequest) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Update")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
		metrics.IncBooking(actionUpdate, err)
	}()

	dateTime, err := req.Parse()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	request, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	who := callerFrom(ctx)
	if !who.owns(request.UserRentID) {
		return res, failure.Forbidden("only the requester can reschedule a booking request") // nolint:wrapcheck
	}

	if request.Status.IsTerminal() {
		return res, failure.Conflict(fmt.Sprintf("a %s booking request cannot be rescheduled", request.Status)) // nolint:wrapcheck
	}

	changes := shared.TransformFields(reschedule{DateTime: dateTime, Status: model.StatusPending}, who.id)

	if _, err = s.repo.Update(ctx, changes, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to reschedule booking request")

		return res, fmt.Errorf("failed to reschedule booking request: %w", err)
	}

	request.DateTime = dateTime
	request.Status = model.StatusPending
	request.ModifiedBy = who.id

	s.invalidate(ctx, request)
	s.publish(ctx, model.EventRescheduled, who.id, request)

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) (dto.RequestResponse, error) {
	return s.transition(ctx, id, model.StatusAccepted, model.EventAccepted, actionAccept)
}

func (s *serviceImpl) Decline(ctx context.Context, id string) (dto.RequestResponse, error) {
	return s.transition(ctx, id, model.StatusDeclined, model.EventDeclined, actionDecline)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (dto.RequestResponse, error) {
	return s.transition(ctx, id, model.StatusCompleted, model.EventCompleted, actionComplete)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.Delete")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
		metrics.IncBooking(actionDelete, err)
	}()

	request, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	who := callerFrom(ctx)
	if !who.owns(request.UserRentID, request.RenterID) {
		return failure.Forbidden("only the requester or the landlord can delete a booking request") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking request")

		return fmt.Errorf("failed to delete booking request: %w", err)
	}

	s.invalidate(ctx, request)
	s.publish(ctx, model.EventDeleted, who.id, request)

	return nil
}

func (s *serviceImpl) transition(ctx context.Context, id string, next model.Status, event, action string) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request."+action)
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
		metrics.IncBooking(action, err)
	}()

	request, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	who := callerFrom(ctx)
	if !who.owns(request.RenterID) {
		return res, failure.Forbidden(fmt.Sprintf("only the landlord can %s a booking request", action)) // nolint:wrapcheck
	}

	if !request.Status.CanTransitionTo(next) {
		return res, failure.Conflict(fmt.Sprintf("cannot move booking request from %s to %s", request.Status, next)) // nolint:wrapcheck
	}

	changes := shared.TransformFields(statusChange{Status: next}, who.id)
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "current_status", Field: model.FieldStatus, Value: request.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	affected, err := s.repo.Update(ctx, changes, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("status", next.String()).Msg("failed to change booking request status")

		return res, fmt.Errorf("failed to change booking request status: %w", err)
	}

	if affected == 0 {
		s.invalidate(ctx, request)

		return res, errStaleStatus
	}

	request.Status = next
	request.ModifiedBy = who.id

	s.invalidate(ctx, request)
	s.publish(ctx, event, who.id, request)

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Request, error) {
	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking request")

		return request, fmt.Errorf("failed to get booking request: %w", err)
	}

	if request.ID == constant.Empty {
		return request, errNotFound
	}

	return request, nil
}

func (s *serviceImpl) list(ctx context.Context, prefix, field, value string) (res []dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".request.list")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(field, value)

	cacheKey := shared.BuildCacheKey(prefix, value)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking requests")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.SortedBy(model.FieldDateTime, gDto.SortDirAsc), shared.FilterByField(field, value, model.TableName))
	if err != nil {
		log.Error().Err(err).Str(field, value).Msg("failed to list booking requests")

		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}

	res = dto.FromModels(models)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save booking requests to cache")
		}
	}()
}

// invalidate drops every cached view containing request before the write is acknowledged.
func (s *serviceImpl) invalidate(ctx context.Context, request model.Request) {
	keys := []string{
		shared.BuildCacheKey(cacheGetRequest, request.ID),
		shared.BuildCacheKey(cacheUserRequests, request.UserRentID),
		shared.BuildCacheKey(cachePostRequests, request.PostID),
		shared.BuildCacheKey(cacheRenterRequests, request.RenterID),
	}

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to invalidate booking request cache")
		}
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType, actor string, request model.Request) {
	message := kafka.Message{
		Key:   request.ID,
		Type:  eventType,
		Value: dto.NewEvent(eventType, actor, request),
	}

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topic, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("id", request.ID).Msg("failed to publish booking request event")
		}
	}()
}

const publishTimeout = 10 * time.Second

type reschedule struct {
	DateTime time.Time    `db:"date_time"`
	Status   model.Status `db:"status"`
}

type statusChange struct {
	Status model.Status `db:"status"`
}

func activeFilter(userRentID, postID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserRentID, Value: userRentID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldPostID, Value: postID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses(), Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}
}

// caller is the authenticated identity behind ctx. An empty id is a trusted internal call.
type caller struct {
	id   string
	role string
}

func callerFrom(ctx context.Context) caller {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return caller{id: id, role: role}
}

func (c caller) owns(parties ...string) bool {
	if c.id == constant.Empty || c.role == constant.RoleAdmin {
		return true
	}

	return slices.Contains(parties, c.id)
}
