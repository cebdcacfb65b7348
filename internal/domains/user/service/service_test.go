package service_test

import (
	"context"
	"errors"
	"net/http"
	"rentro/config"
	"rentro/infras/otel/mocks"
	userMocks "rentro/internal/domains/user/mocks"
	"rentro/internal/domains/user/model"
	"rentro/internal/domains/user/model/dto"
	"rentro/internal/domains/user/service"
	"rentro/shared/cache"
	"rentro/shared/constant"
	gDto "rentro/shared/dto"
	"rentro/shared/failure"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const adminID = "admin-1"

func newService(t *testing.T) (service.User, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(repo, cfg, cache.NewRedisCache(client, mocks.NewOtel()), mocks.NewOtel()), repo
}

func asAdmin() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, adminID)
}

func TestGetAll(t *testing.T) {
	svc, repo := newService(t)

	params := gDto.QueryParams{Page: 1, Limit: 2, SortBy: "password", SortDir: gDto.SortDirAsc}
	expectedParams := gDto.QueryParams{Page: 1, Limit: 2, SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), expectedParams, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.User, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "users.role = :role")
			assert.Equal(t, constant.RoleLandlord, args["role"])

			return []model.User{{ID: "u-1", Role: constant.RoleLandlord}, {ID: "u-2", Role: constant.RoleLandlord}}, nil
		})

	res, err := svc.GetAll(context.Background(), params, service.Filter{Role: constant.RoleLandlord})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Users, 2)
}

func TestGetAll_CountFails(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

	_, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, service.Filter{})
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name         string
		user         model.User
		repoErr      error
		expectedCode int
	}{
		{name: "found", user: model.User{ID: "u-1", Email: "a@example.com"}},
		{name: "not found", expectedCode: http.StatusNotFound},
		{name: "repository error", repoErr: errors.New("db down"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.user, tt.repoErr)

			res, err := svc.Get(context.Background(), "u-1")
			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "a@example.com", res.Email)
		})
	}
}

func TestUpdate(t *testing.T) {
	landlord := constant.RoleLandlord
	inactive := false
	name := "Tran Thi B"

	tests := []struct {
		name         string
		id           string
		req          dto.UpdateUserRequest
		affected     int64
		callsRepo    bool
		expectedCode int
	}{
		{name: "empty update", id: "u-1", expectedCode: http.StatusBadRequest},
		{name: "self demotion", id: adminID, req: dto.UpdateUserRequest{Role: &landlord}, expectedCode: http.StatusBadRequest},
		{name: "self deactivation", id: adminID, req: dto.UpdateUserRequest{Active: &inactive}, expectedCode: http.StatusBadRequest},
		{name: "unknown user", id: "u-9", req: dto.UpdateUserRequest{FullName: &name}, callsRepo: true, expectedCode: http.StatusNotFound},
		{name: "promote to landlord", id: "u-1", req: dto.UpdateUserRequest{Role: &landlord}, affected: 1, callsRepo: true},
		{name: "admin edits own name", id: adminID, req: dto.UpdateUserRequest{FullName: &name}, affected: 1, callsRepo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			if tt.callsRepo {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, adminID, mod[constant.FieldModifiedBy])

						return tt.affected, nil
					})
			}

			if tt.affected > 0 {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: tt.id, Role: landlord}, nil)
			}

			res, err := svc.Update(asAdmin(), tt.id, tt.req)
			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
		})
	}
}
