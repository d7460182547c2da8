package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/tests"
	"github.com/ravikgupta/affilink/backend/user/repository"
)

func TestMemoryUserRepository_GetByID(t *testing.T) {
	tUser := tests.NewUser()
	r := repository.NewMemoryUserRepository([]domain.User{*tUser})

	t.Run("success", func(t *testing.T) {
		result, err := r.GetByID(noopCtx, tUser.ID)

		require.NoError(t, err)
		assert.EqualValues(t, tUser, result)
	})

	t.Run("not exists", func(t *testing.T) {
		result, err := r.GetByID(noopCtx, primitive.NewObjectID())

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemoryUserRepository_GetByEmail(t *testing.T) {
	tUser := tests.NewUser()
	r := repository.NewMemoryUserRepository([]domain.User{*tUser})

	t.Run("success", func(t *testing.T) {
		result, err := r.GetByEmail(noopCtx, tUser.Email)

		require.NoError(t, err)
		assert.Equal(t, tUser.ID, result.ID)
	})

	t.Run("not exists", func(t *testing.T) {
		result, err := r.GetByEmail(noopCtx, "nobody@example.com")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemoryUserRepository_Create(t *testing.T) {
	tUser := tests.NewUser()

	t.Run("success", func(t *testing.T) {
		r := repository.NewMemoryUserRepository(nil)

		err := r.Create(noopCtx, tUser)

		require.NoError(t, err)
		stored, err := r.GetByID(noopCtx, tUser.ID)
		require.NoError(t, err)
		assert.Equal(t, tUser.Email, stored.Email)
	})

	t.Run("duplicate", func(t *testing.T) {
		r := repository.NewMemoryUserRepository([]domain.User{*tUser})

		err := r.Create(noopCtx, tUser)

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestMemoryUserRepository_Update(t *testing.T) {
	tUser := tests.NewUser()

	t.Run("success", func(t *testing.T) {
		r := repository.NewMemoryUserRepository([]domain.User{*tUser})
		updated := *tUser
		updated.FullName = "Jane Doe"

		err := r.Update(noopCtx, &updated)

		require.NoError(t, err)
		stored, err := r.GetByID(noopCtx, tUser.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", stored.FullName)
	})

	t.Run("not exists", func(t *testing.T) {
		r := repository.NewMemoryUserRepository(nil)

		err := r.Update(noopCtx, tUser)

		assert.ErrorIs(t, err, domain.ErrNoAffected)
	})
}

func TestMemoryUserRepository_Delete(t *testing.T) {
	tUser := tests.NewUser()

	t.Run("success", func(t *testing.T) {
		r := repository.NewMemoryUserRepository([]domain.User{*tUser})

		err := r.Delete(noopCtx, tUser.ID)

		require.NoError(t, err)
		_, err = r.GetByID(noopCtx, tUser.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("not exists", func(t *testing.T) {
		r := repository.NewMemoryUserRepository(nil)

		err := r.Delete(noopCtx, tUser.ID)

		assert.ErrorIs(t, err, domain.ErrNoAffected)
	})
}

func TestMemoryUserRepository_Activity(t *testing.T) {
	tUser := tests.NewUser()
	r := repository.NewMemoryUserRepository([]domain.User{*tUser})

	base := time.Now().Truncate(time.Millisecond).UTC()
	entries := []*domain.Activity{
		{ID: primitive.NewObjectID(), UserID: tUser.ID.Hex(), Type: domain.ActivityReferral, Message: "oldest", CreatedAt: base.Add(-2 * time.Hour)},
		{ID: primitive.NewObjectID(), UserID: tUser.ID.Hex(), Type: domain.ActivityEarnings, Message: "newest", CreatedAt: base},
		{ID: primitive.NewObjectID(), UserID: "63c5f2e8a1b2c3d4e5f60700", Type: domain.ActivityEarnings, Message: "other user", CreatedAt: base},
	}
	for _, a := range entries {
		require.NoError(t, r.StoreActivity(noopCtx, a))
	}

	t.Run("newest first, other users excluded", func(t *testing.T) {
		result, err := r.RecentActivity(noopCtx, tUser.ID.Hex(), 20)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "newest", result[0].Message)
		assert.Equal(t, "oldest", result[1].Message)
	})

	t.Run("limit applied", func(t *testing.T) {
		result, err := r.RecentActivity(noopCtx, tUser.ID.Hex(), 1)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "newest", result[0].Message)
	})

	t.Run("empty feed", func(t *testing.T) {
		result, err := r.RecentActivity(noopCtx, "507f191e810c19729de860eb", 20)

		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
