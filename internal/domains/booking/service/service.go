package service

import (
	"context"
	"rentro/infras/otel"
	"rentro/internal/domains/booking/model"
	"rentro/internal/domains/booking/model/dto"
	"rentro/shared/constant"
	"rentro/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Booking drives the tenant and landlord views. Every call loads a fresh view, applies
// one action and returns the resulting snapshot, which is returned even when the action
// fails so the notice can reach the user.
type Booking interface {
	Slots() []model.Slot
	Tenant(ctx context.Context, session model.Session, postID string) (dto.TenantViewResponse, error)
	Submit(ctx context.Context, session model.Session, postID string, req dto.SubmitRequest) (dto.TenantViewResponse, error)
	Reschedule(ctx context.Context, session model.Session, postID string, req dto.RescheduleRequest) (dto.TenantViewResponse, error)
	Cancel(ctx context.Context, session model.Session, postID string) (dto.TenantViewResponse, error)
	Landlord(ctx context.Context, session model.Session, postID string) (dto.LandlordViewResponse, error)
	Accept(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error)
	Decline(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error)
	Delete(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error)
}

type serviceImpl struct {
	store   Store
	opts    Options
	checker *Checker
	builder *Builder
	notices notifier
	otel    otel.Otel
}

// New builds the flow. Day boundaries for the past-date check follow opts.UTCOffset, the
// same zone the timestamps are written in.
func New(store Store, opts Options, otel otel.Otel) (Booking, error) {
	loc, err := timezone.ParseOffset(opts.UTCOffset)
	if err != nil {
		return nil, err
	}

	return newService(store, opts, otel, loc, timezone.Now)
}

func newService(store Store, opts Options, otel otel.Otel, loc *time.Location, now func() time.Time) (*serviceImpl, error) {
	builder, err := NewBuilder(opts.UTCOffset, loc, now)
	if err != nil {
		return nil, err
	}

	return &serviceImpl{
		store:   store,
		opts:    opts,
		checker: NewChecker(store, opts.CheckPolicy),
		builder: builder,
		notices: notifier{ttl: opts.NoticeTTL, now: now},
		otel:    otel,
	}, nil
}

func (s *serviceImpl) Slots() []model.Slot {
	return model.Catalog()
}

func (s *serviceImpl) tenantView(session model.Session, postID string) *TenantView {
	return &TenantView{
		store:   s.store,
		checker: s.checker,
		builder: s.builder,
		notices: s.notices,
		opts:    s.opts,
		session: session,
		postID:  postID,
		state:   model.StateLoading,
	}
}

func (s *serviceImpl) landlordView(session model.Session, postID string) *LandlordView {
	return &LandlordView{
		store:   s.store,
		notices: s.notices,
		session: session,
		postID:  postID,
	}
}

func (s *serviceImpl) Tenant(ctx context.Context, session model.Session, postID string) (res dto.TenantViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelFlowScopeName, constant.OtelFlowScopeName+".Tenant")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view := s.tenantView(session, postID)
	err = view.Load(ctx)

	return view.Snapshot(), err
}

func (s *serviceImpl) Submit(ctx context.Context, session model.Session, postID string, req dto.SubmitRequest) (res dto.TenantViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelFlowScopeName, constant.OtelFlowScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view := s.tenantView(session, postID)

	if err = view.Load(ctx); err != nil {
		return view.Snapshot(), err
	}

	if err = view.Submit(ctx, req.RenterID.String(), req.Date, req.Time); err != nil {
		log.Warn().Err(err).Str("post", postID).Str("user", session.UserID).Msg("booking submit rejected")
	}

	return view.Snapshot(), err
}

func (s *serviceImpl) Reschedule(ctx context.Context, session model.Session, postID string, req dto.RescheduleRequest) (res dto.TenantViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelFlowScopeName, constant.OtelFlowScopeName+".Reschedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view := s.tenantView(session, postID)

	if err = view.Load(ctx); err != nil {
		return view.Snapshot(), err
	}

	if err = view.Reschedule(ctx, req.Date, req.Time); err != nil {
		log.Warn().Err(err).Str("post", postID).Str("user", session.UserID).Msg("booking reschedule rejected")
	}

	return view.Snapshot(), err
}

func (s *serviceImpl) Cancel(ctx context.Context, session model.Session, postID string) (res dto.TenantViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelFlowScopeName, constant.OtelFlowScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view := s.tenantView(session, postID)

	if err = view.Load(ctx); err != nil {
		return view.Snapshot(), err
	}

	if err = view.Cancel(ctx); err != nil {
		log.Error().Err(err).Str("post", postID).Str("user", session.UserID).Msg("failed to cancel booking")
	}

	return view.Snapshot(), err
}

func (s *serviceImpl) Landlord(ctx context.Context, session model.Session, postID string) (res dto.LandlordViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelFlowScopeName, constant.OtelFlowScopeName+".Landlord")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view := s.landlordView(session, postID)
	err = view.Load(ctx)

	return view.Snapshot(), err
}

func (s *serviceImpl) Accept(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error) {
	return s.landlordAction(ctx, session, postID, "Accept", func(ctx context.Context, view *LandlordView) error {
		return view.Accept(ctx, id)
	})
}

func (s *serviceImpl) Decline(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error) {
	return s.landlordAction(ctx, session, postID, "Decline", func(ctx context.Context, view *LandlordView) error {
		return view.Decline(ctx, id)
	})
}

func (s *serviceImpl) Delete(ctx context.Context, session model.Session, postID, id string) (dto.LandlordViewResponse, error) {
	return s.landlordAction(ctx, session, postID, "Delete", func(ctx context.Context, view *LandlordView) error {
		return view.Delete(ctx, id)
	})
}

func (s *serviceImpl) landlordAction(ctx context.Context, session model.Session, postID, name string, action func(context.Context, *LandlordView) error) (res dto.LandlordViewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelFlowScopeName, constant.OtelFlowScopeName+"."+name)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	view := s.landlordView(session, postID)

	if err = view.Load(ctx); err != nil {
		return view.Snapshot(), err
	}

	if err = action(ctx, view); err != nil {
		log.Error().Err(err).Str("post", postID).Str("action", name).Msg("landlord action failed")
	}

	return view.Snapshot(), err
}
