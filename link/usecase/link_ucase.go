package usecase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
	"github.com/ravikgupta/affilink/backend/linkgen"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

type linkUsecase struct {
	linkRepo       domain.LinkRepository
	commission     domain.CommissionProvider
	clock          expiry.Clock
	calc           *expiry.Calculator
	contextTimeout time.Duration
	tracer         trace.Tracer
	baseURL        string
}

// NewLinkUsecase will create new a linkUsecase object representation of
// domain.LinkUsecase interface. baseURL is the configured base origin
// override for generated links.
func NewLinkUsecase(r domain.LinkRepository, commission domain.CommissionProvider, clock expiry.Clock, timeout time.Duration, tracer trace.Tracer, baseURL string) domain.LinkUsecase {
	if clock == nil {
		clock = expiry.RealClock{}
	}
	return &linkUsecase{
		linkRepo:       r,
		commission:     commission,
		clock:          clock,
		calc:           expiry.NewCalculator(clock),
		contextTimeout: timeout,
		tracer:         tracer,
		baseURL:        baseURL,
	}
}

func (uc *linkUsecase) GetByID(c context.Context, id string) (*domain.AffiliateLink, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase GetByID",
		trace.WithAttributes(
			attribute.String("linkid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	l, err := uc.linkRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return l, nil
}

func (uc *linkUsecase) Fetch(c context.Context, filter domain.LinkFilter) ([]*domain.AffiliateLink, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	filter.Normalize()
	if filter.Platform != "" && !domain.Platform(filter.Platform).Valid() {
		err := fmt.Errorf("unknown platform %q: %w", filter.Platform, domain.ErrBadParamInput)
		span.RecordError(err)
		return nil, err
	}

	list, err := uc.linkRepo.Fetch(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return list, nil
}

func (uc *linkUsecase) Store(c context.Context, createLink domain.CreateLink, runtimeOrigin string) (*domain.AffiliateLink, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Store",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	expiryUnix := createLink.ExpiryUnix
	if expiryUnix == 0 {
		if createLink.ExpiryValue <= 0 || createLink.ExpiryUnit == "" {
			err := fmt.Errorf("expiry duration value must be positive: %w", domain.ErrBadParamInput)
			span.RecordError(err)
			return nil, err
		}
		expiryUnix = uc.calc.FromDuration(createLink.ExpiryValue, expiry.Unit(createLink.ExpiryUnit))
	}

	if err := uc.checkDestination(createLink.DestinationURL); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := uc.checkExpiry(expiryUnix); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := uc.checkCommission(ctx, createLink.UserID, createLink.CommissionPercent); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if createLink.Platform == domain.PlatformCustom && createLink.CustomPlatformName == "" {
		err := fmt.Errorf("custom platform requires a platform name: %w", domain.ErrBadParamInput)
		span.RecordError(err)
		return nil, err
	}

	now := uc.clock.Now()
	l := &domain.AffiliateLink{
		ID:                 primitive.NewObjectID().Hex(),
		UserID:             createLink.UserID,
		Platform:           createLink.Platform,
		DestinationURL:     createLink.DestinationURL,
		ExpiryUnix:         expiryUnix,
		CommissionPercent:  createLink.CommissionPercent,
		IsActive:           true,
		CreatedAt:          now.Unix(),
		Tags:               createLink.Tags,
		CustomPlatformName: createLink.CustomPlatformName,
	}
	l.URL = uc.generateURL(l, runtimeOrigin)

	span.SetAttributes(attribute.String("linkid", l.ID))

	if err := uc.linkRepo.Store(ctx, l); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return l, nil
}

func (uc *linkUsecase) Update(c context.Context, updateLink domain.UpdateLink, user *auth.Claims) (*domain.AffiliateLink, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Update",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	l, err := uc.linkRepo.GetByID(ctx, updateLink.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("can't get %s link: %w", updateLink.ID, err)
	}
	span.SetAttributes(attribute.String("linkid", updateLink.ID))

	if !user.HasRole(auth.RoleAdmin) && l.UserID != user.Subject {
		span.RecordError(domain.ErrForbidden)
		return nil, domain.ErrForbidden
	}

	if updateLink.DestinationURL != nil {
		if err = uc.checkDestination(*updateLink.DestinationURL); err != nil {
			span.RecordError(err)
			return nil, err
		}
		l.DestinationURL = *updateLink.DestinationURL
	}
	if updateLink.ExpiryUnix != nil {
		if err = uc.checkExpiry(*updateLink.ExpiryUnix); err != nil {
			span.RecordError(err)
			return nil, err
		}
		l.ExpiryUnix = *updateLink.ExpiryUnix
	}
	if updateLink.CommissionPercent != nil {
		if err = uc.checkCommission(ctx, l.UserID, *updateLink.CommissionPercent); err != nil {
			span.RecordError(err)
			return nil, err
		}
		l.CommissionPercent = *updateLink.CommissionPercent
	}
	if updateLink.Platform != nil {
		l.Platform = *updateLink.Platform
	}
	if updateLink.CustomPlatformName != nil {
		l.CustomPlatformName = *updateLink.CustomPlatformName
	}
	if l.Platform == domain.PlatformCustom && l.CustomPlatformName == "" {
		err = fmt.Errorf("custom platform requires a platform name: %w", domain.ErrBadParamInput)
		span.RecordError(err)
		return nil, err
	}
	if updateLink.Tags != nil {
		l.Tags = *updateLink.Tags
	}
	if updateLink.IsActive != nil {
		l.IsActive = *updateLink.IsActive
	}

	regenerate := updateLink.Platform != nil || updateLink.DestinationURL != nil ||
		updateLink.ExpiryUnix != nil || updateLink.CommissionPercent != nil ||
		updateLink.CustomPlatformName != nil
	if regenerate {
		l.URL = uc.generateURL(l, "")
	}

	if err = uc.linkRepo.Update(ctx, l); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return l, nil
}

func (uc *linkUsecase) Delete(c context.Context, id string, user *auth.Claims) error {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Delete",
		trace.WithAttributes(
			attribute.String("linkid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	l, err := uc.linkRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("can't get %s link: %w", id, err)
	}

	if !user.HasRole(auth.RoleAdmin) && l.UserID != user.Subject {
		span.RecordError(domain.ErrForbidden)
		return domain.ErrForbidden
	}

	return uc.linkRepo.Delete(ctx, id)
}

func (uc *linkUsecase) generateURL(l *domain.AffiliateLink, runtimeOrigin string) string {
	return linkgen.Encode(linkgen.Params{
		UserID:             l.UserID,
		Platform:           l.Platform,
		DestinationURL:     l.DestinationURL,
		ExpiryUnix:         l.ExpiryUnix,
		CommissionPercent:  l.CommissionPercent,
		CustomPlatformName: l.CustomPlatformName,
	}, linkgen.ResolveBaseURL(runtimeOrigin, uc.baseURL))
}

func (uc *linkUsecase) checkDestination(destination string) error {
	if !linkgen.IsValidDestination(destination) {
		return fmt.Errorf("%q: %w", destination, domain.ErrInvalidDestination)
	}
	return nil
}

func (uc *linkUsecase) checkExpiry(expiryUnix int64) error {
	if expiryUnix <= uc.clock.Now().Unix() {
		return fmt.Errorf("expiry %d: %w", expiryUnix, domain.ErrExpiryNotInFuture)
	}
	return nil
}

func (uc *linkUsecase) checkCommission(ctx context.Context, userID string, percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("commission %.2f must be between 0 and 100: %w", percent, domain.ErrCommissionOutOfRange)
	}

	max, err := uc.commission.MaxCommission(ctx, userID)
	if err != nil {
		return fmt.Errorf("can't get maximum commission for user %s: %w", userID, err)
	}
	if percent > max {
		return fmt.Errorf("commission %.2f exceeds maximum of %.2f: %w", percent, max, domain.ErrCommissionOutOfRange)
	}

	return nil
}
