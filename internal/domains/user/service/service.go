package service

import (
	"context"
	"fmt"
	"rentro/config"
	"rentro/infras/otel"
	"rentro/internal/domains/user/model"
	"rentro/internal/domains/user/model/dto"
	"rentro/internal/domains/user/repository"
	"rentro/shared"
	"rentro/shared/cache"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
	"rentro/shared/failure"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
)

var sortableColumns = []string{
	constant.FieldCreatedAt,
	model.FieldEmail,
	model.FieldFullName,
	model.FieldLastLogin,
}

var (
	errNotFound    = failure.NotFound("user not found")
	errEmptyUpdate = failure.BadRequestFromString("update request cannot be empty")
	errSelfDemote  = failure.BadRequestFromString("admins cannot change their own role or deactivate themselves")
)

// Filter narrows the admin user listing. Empty fields are ignored.
type Filter struct {
	Role  string
	Email string
}

// User is the admin view over marketplace accounts.
type User interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter Filter) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter Filter) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slices.Contains(sortableColumns, params.SortBy) || params.SortDir == "" {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	filter.Email = strings.ToLower(strings.TrimSpace(filter.Email))

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, params, filter.Role, filter.Email)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	where := filter.group()

	total, err := s.repo.Count(ctx, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return res, errNotFound
	}

	res.FromModel(user)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, errEmptyUpdate
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == id && (req.Role != nil || req.Active != nil) {
		return res, errSelfDemote
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	affected, err := s.repo.Update(ctx, shared.TransformFields(req, actor), filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	if affected == 0 {
		return res, errNotFound
	}

	s.invalidate(ctx, id)

	return s.Get(ctx, id)
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save users to cache")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete user from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUser)
}

func (f Filter) group() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Role != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Operator: gDto.FilterOperatorEq,
			Value:    f.Role,
			Table:    model.TableName,
		})
	}

	if f.Email != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    f.Email,
			Table:    model.TableName,
		})
	}

	return group
}
