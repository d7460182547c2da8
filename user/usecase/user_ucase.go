package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

// recentActivityLimit caps the activity feed returned to the dashboard
const recentActivityLimit = 20

type userUsecase struct {
	userRepo       domain.UserRepository
	contextTimeout time.Duration
	tracer         trace.Tracer
}

// NewUserUsecase will create new an userUsecase object representation of
// domain.UserUsecase interface
func NewUserUsecase(u domain.UserRepository, timeout time.Duration, tracer trace.Tracer) domain.UserUsecase {
	return &userUsecase{
		userRepo:       u,
		contextTimeout: timeout,
		tracer:         tracer,
	}
}

func (uc *userUsecase) GetByID(c context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase GetByID",
		trace.WithAttributes(
			attribute.String("userid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("user ID is not valid ObjectID: %w: %s", domain.ErrBadParamInput, err.Error())
	}

	return uc.userRepo.GetByID(ctx, objID)
}

func (uc *userUsecase) Update(c context.Context, updateUser domain.UpdateUser, claims *auth.Claims) error {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Update",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	u, err := uc.userRepo.GetByID(ctx, updateUser.ID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("can't get %s user: %w", updateUser.ID.Hex(), err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(updateUser.CurrentPassword)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("compare password error: %w: %s", domain.ErrAuthenticationFailure, err.Error())
	}

	if !claims.HasRole(auth.RoleAdmin) && u.ID.Hex() != claims.Subject {
		span.RecordError(domain.ErrForbidden)
		return domain.ErrForbidden
	}

	if updateUser.FullName != nil {
		u.FullName = *updateUser.FullName
	}
	if updateUser.Email != nil {
		u.Email = *updateUser.Email
	}
	if updateUser.Mobile != nil {
		u.Mobile = *updateUser.Mobile
	}
	if updateUser.Address != nil {
		u.Address = *updateUser.Address
	}
	if updateUser.DateOfBirth != nil {
		u.DateOfBirth = *updateUser.DateOfBirth
	}
	if updateUser.AvatarURL != nil {
		u.AvatarURL = *updateUser.AvatarURL
	}

	if updateUser.NewPassword != nil {
		hashedPwd, err := generateHash(*updateUser.NewPassword)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("can't generate hash from password: %w: %s", domain.ErrInternalServerError, err.Error())
		}
		u.HashedPassword = hashedPwd
	}

	u.UpdatedAt = time.Now().Truncate(time.Millisecond).UTC()

	if err = uc.userRepo.Update(ctx, u); err != nil {
		span.RecordError(err)
		return err
	}

	activity := &domain.Activity{
		ID:        primitive.NewObjectID(),
		UserID:    u.ID.Hex(),
		Type:      domain.ActivityProfileUpdate,
		Message:   "Profile updated successfully",
		CreatedAt: u.UpdatedAt,
	}
	if err = uc.userRepo.StoreActivity(ctx, activity); err != nil {
		// the profile update itself succeeded, a lost feed entry is not
		// worth failing the request
		span.RecordError(err)
	}

	return nil
}

func (uc *userUsecase) Create(c context.Context, m domain.CreateUser) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Create",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	ue, err := uc.userRepo.GetByEmail(ctx, m.Email)
	if errors.Is(err, domain.ErrInternalServerError) {
		span.RecordError(err)
		return nil, err
	}
	if ue != nil && err == nil {
		err = fmt.Errorf("user with %s email already exists, try another one, %w", m.Email, domain.ErrBadParamInput)
		span.RecordError(err)
		return nil, err
	}

	hashedPwd, err := generateHash(m.Password)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("can't generate hash from password: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	u := &domain.User{
		ID:             primitive.NewObjectID(),
		FullName:       m.FullName,
		Email:          m.Email,
		MaxCommission:  domain.DefaultMaxCommission,
		HashedPassword: hashedPwd,
		Roles:          []string{auth.RoleUser},
		CreatedAt:      time.Now().Truncate(time.Millisecond).UTC(),
		UpdatedAt:      time.Now().Truncate(time.Millisecond).UTC(),
	}
	span.SetAttributes(attribute.String("userid", u.ID.Hex()))

	err = uc.userRepo.Create(ctx, u)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return u, nil
}

func (uc *userUsecase) Delete(c context.Context, id string) error {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Delete",
		trace.WithAttributes(
			attribute.String("userid", id)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("user ID is not valid ObjectID: %w: %s", domain.ErrBadParamInput, err.Error())
	}

	return uc.userRepo.Delete(ctx, objID)
}

func (uc *userUsecase) Authenticate(c context.Context, now time.Time, email, password string) (*auth.Claims, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase Authenticate",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %s", domain.ErrAuthenticationFailure, err.Error())
	}
	span.SetAttributes(attribute.String("userid", u.ID.Hex()))

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("compare password error: %w: %s", domain.ErrAuthenticationFailure, err.Error())
	}

	claims := auth.NewClaims(u.ID.Hex(), u.Roles, now, time.Hour)
	return claims, nil
}

// MaxCommission returns the maximum commission percent the user may offer on
// a link. Unknown users fall back to the default limit, matching the
// external profile lookup behavior the link flow relies on.
func (uc *userUsecase) MaxCommission(c context.Context, userID string) (float64, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase MaxCommission",
		trace.WithAttributes(
			attribute.String("userid", userID)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.DefaultMaxCommission, nil
	}

	u, err := uc.userRepo.GetByID(ctx, objID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultMaxCommission, nil
	}
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	if u.MaxCommission <= 0 {
		return domain.DefaultMaxCommission, nil
	}

	return u.MaxCommission, nil
}

func (uc *userUsecase) RecentActivity(c context.Context, userID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(c, uc.contextTimeout)
	defer cancel()

	ctx, span := uc.tracer.Start(
		ctx,
		"usecase RecentActivity",
		trace.WithAttributes(
			attribute.String("userid", userID)),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	list, err := uc.userRepo.RecentActivity(ctx, userID, recentActivityLimit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return list, nil
}

func generateHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
