package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
	"github.com/ravikgupta/affilink/backend/link/repository"
)

var repoNow = time.Date(2023, time.January, 15, 12, 0, 0, 0, time.UTC)

func repoClock() expiry.Clock {
	return expiry.ClockFunc(func() time.Time { return repoNow })
}

func seedLinks() []domain.AffiliateLink {
	return []domain.AffiliateLink{
		{
			ID:                "live-wa",
			UserID:            "u1",
			URL:               "https://example.com/aff/u1?p=wa&d=x&e=1&c=10",
			Platform:          domain.PlatformWhatsApp,
			DestinationURL:    "https://shop.example.com/headphones",
			ExpiryUnix:        repoNow.Add(time.Hour).Unix(),
			CommissionPercent: 10,
			IsActive:          true,
			CreatedAt:         repoNow.Add(-3 * time.Hour).Unix(),
			Tags:              "electronics,audio",
		},
		{
			ID:             "expired-wa",
			UserID:         "u1",
			Platform:       domain.PlatformWhatsApp,
			DestinationURL: "https://shop.example.com/old-promo",
			ExpiryUnix:     repoNow.Add(-time.Hour).Unix(),
			IsActive:       true,
			CreatedAt:      repoNow.Add(-2 * time.Hour).Unix(),
		},
		{
			ID:             "paused-ig",
			UserID:         "u1",
			Platform:       domain.PlatformInstagram,
			DestinationURL: "https://shop.example.com/sneakers",
			ExpiryUnix:     repoNow.Add(24 * time.Hour).Unix(),
			IsActive:       false,
			CreatedAt:      repoNow.Add(-time.Hour).Unix(),
			Tags:           "fashion",
		},
	}
}

func TestMemoryLinkRepository_GetByID(t *testing.T) {
	r := repository.NewMemoryLinkRepository(repoClock(), seedLinks())

	t.Run("get existed record", func(t *testing.T) {
		result, err := r.GetByID(context.Background(), "live-wa")
		require.NoError(t, err)
		assert.Equal(t, "live-wa", result.ID)
	})

	t.Run("get not existed record", func(t *testing.T) {
		result, err := r.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, result)
	})
}

func TestMemoryLinkRepository_Fetch(t *testing.T) {
	r := repository.NewMemoryLinkRepository(repoClock(), seedLinks())

	t.Run("fetch all ordered newest first", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{})
		require.NoError(t, err)
		require.Len(t, result, 3)
		assert.Equal(t, "paused-ig", result[0].ID)
		assert.Equal(t, "expired-wa", result[1].ID)
		assert.Equal(t, "live-wa", result[2].ID)
	})

	t.Run("fetch by platform", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{Platform: "WhatsApp"})
		require.NoError(t, err)
		require.Len(t, result, 2)
		for _, l := range result {
			assert.Equal(t, domain.PlatformWhatsApp, l.Platform)
		}
	})

	t.Run("fetch active excludes expired", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{Status: domain.StatusActive})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "live-wa", result[0].ID)
	})

	t.Run("fetch inactive includes paused and expired", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{Status: domain.StatusInactive})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "paused-ig", result[0].ID)
		assert.Equal(t, "expired-wa", result[1].ID)
	})

	t.Run("fetch paused link with future expiry is inactive", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{Platform: "Instagram", Status: domain.StatusActive})
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("fetch search matches tags", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{Search: "FASHION"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "paused-ig", result[0].ID)
	})

	t.Run("fetch search matches destination", func(t *testing.T) {
		result, err := r.Fetch(context.Background(), domain.LinkFilter{Search: "headphones"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "live-wa", result[0].ID)
	})
}

func TestMemoryLinkRepository_Store(t *testing.T) {
	r := repository.NewMemoryLinkRepository(repoClock(), seedLinks())

	t.Run("store new record", func(t *testing.T) {
		l := &domain.AffiliateLink{ID: "new", UserID: "u1", Platform: domain.PlatformEmail}
		err := r.Store(context.Background(), l)
		require.NoError(t, err)

		result, err := r.GetByID(context.Background(), "new")
		require.NoError(t, err)
		assert.Equal(t, domain.PlatformEmail, result.Platform)
	})

	t.Run("store duplicate id", func(t *testing.T) {
		l := &domain.AffiliateLink{ID: "live-wa"}
		err := r.Store(context.Background(), l)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestMemoryLinkRepository_Update(t *testing.T) {
	r := repository.NewMemoryLinkRepository(repoClock(), seedLinks())

	t.Run("update existed record", func(t *testing.T) {
		l, err := r.GetByID(context.Background(), "live-wa")
		require.NoError(t, err)

		l.CommissionPercent = 12.5
		err = r.Update(context.Background(), l)
		require.NoError(t, err)

		result, err := r.GetByID(context.Background(), "live-wa")
		require.NoError(t, err)
		assert.Equal(t, 12.5, result.CommissionPercent)
	})

	t.Run("update not existed record", func(t *testing.T) {
		err := r.Update(context.Background(), &domain.AffiliateLink{ID: "missing"})
		assert.ErrorIs(t, err, domain.ErrNoAffected)
	})
}

func TestMemoryLinkRepository_Delete(t *testing.T) {
	r := repository.NewMemoryLinkRepository(repoClock(), seedLinks())

	t.Run("delete existed record", func(t *testing.T) {
		err := r.Delete(context.Background(), "live-wa")
		require.NoError(t, err)

		_, err = r.GetByID(context.Background(), "live-wa")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete not existed record", func(t *testing.T) {
		err := r.Delete(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNoAffected)
	})
}
