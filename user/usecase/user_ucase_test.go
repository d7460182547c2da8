package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/tests"
	"github.com/ravikgupta/affilink/backend/user/mock"
	"github.com/ravikgupta/affilink/backend/user/usecase"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

func TestUserUsecase_GetByID(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	tUser := tests.NewUser()

	repository := mock.NewMockUserRepository(controller)
	tracer := sdktrace.NewTracerProvider().Tracer("")
	uc := usecase.NewUserUsecase(repository, 10*time.Second, tracer)

	t.Run("get existed user", func(t *testing.T) {
		repository.EXPECT().GetByID(gomock.Any(), tUser.ID).Return(tUser, nil)
		result, err := uc.GetByID(context.Background(), tUser.ID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, tUser, result)
	})

	t.Run("get not existed user", func(t *testing.T) {
		repository.EXPECT().GetByID(gomock.Any(), tUser.ID).Return(nil, domain.ErrNotFound)
		result, err := uc.GetByID(context.Background(), tUser.ID.Hex())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, result)
	})

	t.Run("get bad id", func(t *testing.T) {
		result, err := uc.GetByID(context.Background(), "not-an-object-id")
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
		assert.Nil(t, result)
	})
}

func TestUserUsecase_Update(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	repository := mock.NewMockUserRepository(controller)
	tracer := sdktrace.NewTracerProvider().Tracer("")
	uc := usecase.NewUserUsecase(repository, 10*time.Second, tracer)

	claims := tests.NewClaims()

	t.Run("update own profile", func(t *testing.T) {
		tUser := tests.NewUser()
		tUpdate := tests.NewUpdateUser()
		tUpdate.Mobile = tests.StringPointer("+91 9876543210")

		repository.EXPECT().GetByID(gomock.Any(), tUpdate.ID).Return(tUser, nil)
		repository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		repository.EXPECT().StoreActivity(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, a *domain.Activity) error {
				assert.Equal(t, tUser.ID.Hex(), a.UserID)
				assert.Equal(t, domain.ActivityProfileUpdate, a.Type)
				return nil
			})

		err := uc.Update(context.Background(), tUpdate, claims)
		assert.NoError(t, err)
	})

	t.Run("update wrong current password", func(t *testing.T) {
		tUser := tests.NewUser()
		tUpdate := tests.NewUpdateUser()
		tUpdate.CurrentPassword = "wrongpassword"

		repository.EXPECT().GetByID(gomock.Any(), tUpdate.ID).Return(tUser, nil)

		err := uc.Update(context.Background(), tUpdate, claims)
		assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
	})

	t.Run("update foreign profile", func(t *testing.T) {
		tUser := tests.NewUser()
		tUpdate := tests.NewUpdateUser()
		foreign := auth.NewClaims("63c5f2e8a1b2c3d4e5f60700", []string{auth.RoleUser}, time.Now(), time.Minute)

		repository.EXPECT().GetByID(gomock.Any(), tUpdate.ID).Return(tUser, nil)

		err := uc.Update(context.Background(), tUpdate, foreign)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("update by admin", func(t *testing.T) {
		tUser := tests.NewUser()
		tUpdate := tests.NewUpdateUser()
		tUpdate.NewPassword = nil

		repository.EXPECT().GetByID(gomock.Any(), tUpdate.ID).Return(tUser, nil)
		repository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		repository.EXPECT().StoreActivity(gomock.Any(), gomock.Any()).Return(nil)

		err := uc.Update(context.Background(), tUpdate, tests.NewAdminClaims())
		assert.NoError(t, err)
	})

	t.Run("update lost activity entry is not an error", func(t *testing.T) {
		tUser := tests.NewUser()
		tUpdate := tests.NewUpdateUser()

		repository.EXPECT().GetByID(gomock.Any(), tUpdate.ID).Return(tUser, nil)
		repository.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		repository.EXPECT().StoreActivity(gomock.Any(), gomock.Any()).Return(domain.ErrInternalServerError)

		err := uc.Update(context.Background(), tUpdate, claims)
		assert.NoError(t, err)
	})

	t.Run("update not existed user", func(t *testing.T) {
		tUpdate := tests.NewUpdateUser()

		repository.EXPECT().GetByID(gomock.Any(), tUpdate.ID).Return(nil, domain.ErrNotFound)

		err := uc.Update(context.Background(), tUpdate, claims)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserUsecase_Create(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	repository := mock.NewMockUserRepository(controller)
	tracer := sdktrace.NewTracerProvider().Tracer("")
	uc := usecase.NewUserUsecase(repository, 10*time.Second, tracer)

	tCreate := tests.NewCreateUser()

	t.Run("create new user", func(t *testing.T) {
		repository.EXPECT().GetByEmail(gomock.Any(), tCreate.Email).Return(nil, domain.ErrNotFound)
		repository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		result, err := uc.Create(context.Background(), tCreate)
		require.NoError(t, err)
		assert.Equal(t, tCreate.Email, result.Email)
		assert.Equal(t, domain.DefaultMaxCommission, result.MaxCommission)
		assert.Equal(t, []string{auth.RoleUser}, result.Roles)
		assert.NotEmpty(t, result.HashedPassword)
		assert.NotEqual(t, tCreate.Password, result.HashedPassword)
	})

	t.Run("create existing email", func(t *testing.T) {
		repository.EXPECT().GetByEmail(gomock.Any(), tCreate.Email).Return(tests.NewUser(), nil)

		result, err := uc.Create(context.Background(), tCreate)
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
		assert.Nil(t, result)
	})

	t.Run("create repository error", func(t *testing.T) {
		repository.EXPECT().GetByEmail(gomock.Any(), tCreate.Email).Return(nil, domain.ErrInternalServerError)

		result, err := uc.Create(context.Background(), tCreate)
		assert.ErrorIs(t, err, domain.ErrInternalServerError)
		assert.Nil(t, result)
	})
}

func TestUserUsecase_Authenticate(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	repository := mock.NewMockUserRepository(controller)
	tracer := sdktrace.NewTracerProvider().Tracer("")
	uc := usecase.NewUserUsecase(repository, 10*time.Second, tracer)

	tUser := tests.NewUser()
	now := time.Now()

	t.Run("authenticate success", func(t *testing.T) {
		repository.EXPECT().GetByEmail(gomock.Any(), tUser.Email).Return(tUser, nil)

		claims, err := uc.Authenticate(context.Background(), now, tUser.Email, "password")
		require.NoError(t, err)
		assert.Equal(t, tUser.ID.Hex(), claims.Subject)
		assert.Equal(t, tUser.Roles, claims.Roles)
	})

	t.Run("authenticate wrong password", func(t *testing.T) {
		repository.EXPECT().GetByEmail(gomock.Any(), tUser.Email).Return(tUser, nil)

		claims, err := uc.Authenticate(context.Background(), now, tUser.Email, "wrongpassword")
		assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
		assert.Nil(t, claims)
	})

	t.Run("authenticate unknown email", func(t *testing.T) {
		repository.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, domain.ErrNotFound)

		claims, err := uc.Authenticate(context.Background(), now, "nobody@example.com", "password")
		assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
		assert.Nil(t, claims)
	})
}

func TestUserUsecase_MaxCommission(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	repository := mock.NewMockUserRepository(controller)
	tracer := sdktrace.NewTracerProvider().Tracer("")
	uc := usecase.NewUserUsecase(repository, 10*time.Second, tracer)

	t.Run("user with explicit limit", func(t *testing.T) {
		tUser := tests.NewUser()
		tUser.MaxCommission = 25

		repository.EXPECT().GetByID(gomock.Any(), tUser.ID).Return(tUser, nil)

		max, err := uc.MaxCommission(context.Background(), tUser.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, 25.0, max)
	})

	t.Run("user without limit falls back to default", func(t *testing.T) {
		tUser := tests.NewUser()
		tUser.MaxCommission = 0

		repository.EXPECT().GetByID(gomock.Any(), tUser.ID).Return(tUser, nil)

		max, err := uc.MaxCommission(context.Background(), tUser.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaxCommission, max)
	})

	t.Run("unknown user falls back to default", func(t *testing.T) {
		id := primitive.NewObjectID()
		repository.EXPECT().GetByID(gomock.Any(), id).Return(nil, domain.ErrNotFound)

		max, err := uc.MaxCommission(context.Background(), id.Hex())
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaxCommission, max)
	})

	t.Run("invalid user id falls back to default", func(t *testing.T) {
		max, err := uc.MaxCommission(context.Background(), "anonymous")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaxCommission, max)
	})
}

func TestUserUsecase_RecentActivity(t *testing.T) {
	controller := gomock.NewController(t)
	defer controller.Finish()

	repository := mock.NewMockUserRepository(controller)
	tracer := sdktrace.NewTracerProvider().Tracer("")
	uc := usecase.NewUserUsecase(repository, 10*time.Second, tracer)

	tUser := tests.NewUser()

	t.Run("recent activity", func(t *testing.T) {
		feed := []*domain.Activity{
			{ID: primitive.NewObjectID(), UserID: tUser.ID.Hex(), Type: domain.ActivityEarnings, Message: "You earned ₹450"},
		}
		repository.EXPECT().RecentActivity(gomock.Any(), tUser.ID.Hex(), gomock.Any()).Return(feed, nil)

		result, err := uc.RecentActivity(context.Background(), tUser.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("recent activity repository error", func(t *testing.T) {
		repository.EXPECT().RecentActivity(gomock.Any(), tUser.ID.Hex(), gomock.Any()).Return(nil, domain.ErrInternalServerError)

		result, err := uc.RecentActivity(context.Background(), tUser.ID.Hex())
		assert.ErrorIs(t, err, domain.ErrInternalServerError)
		assert.Nil(t, result)
	})
}
