package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
	"github.com/ravikgupta/affilink/backend/link/repository"
	"github.com/ravikgupta/affilink/backend/tests"
)

var tracer = sdktrace.NewTracerProvider().Tracer("")
var noopCtx = context.Background()

const linkNS = "affilink.link"

func toBsonD(t *testing.T, v interface{}) bson.D {
	data, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(data, &doc))
	return doc
}

func TestMongoLinkRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	tLink := tests.NewLink()

	mt.Run("not exists", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, linkNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, linkNS, mtest.NextBatch),
		)
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		result, err := r.GetByID(noopCtx, tLink.ID)

		assert.Nil(mt, result)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, linkNS, mtest.FirstBatch, toBsonD(t, tLink)),
			mtest.CreateCursorResponse(0, linkNS, mtest.NextBatch),
		)
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		result, err := r.GetByID(noopCtx, tLink.ID)

		assert.NoError(mt, err)
		assert.EqualValues(t, tLink, result)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    123,
			Message: "server error",
		}))
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		result, err := r.GetByID(noopCtx, tLink.ID)

		assert.Nil(mt, result)
		assert.ErrorIs(mt, err, domain.ErrInternalServerError)
	})
}

func TestMongoLinkRepository_Fetch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	tLink := tests.NewLink()

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, linkNS, mtest.FirstBatch, toBsonD(t, tLink)),
			mtest.CreateCursorResponse(0, linkNS, mtest.NextBatch),
		)
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		result, err := r.Fetch(noopCtx, domain.LinkFilter{Platform: "WhatsApp", Status: domain.StatusActive})

		require.NoError(mt, err)
		require.Len(mt, result, 1)
		assert.EqualValues(t, tLink, result[0])
	})

	mt.Run("empty result", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, linkNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, linkNS, mtest.NextBatch),
		)
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		result, err := r.Fetch(noopCtx, domain.LinkFilter{Search: "nothing"})

		require.NoError(mt, err)
		assert.Empty(mt, result)
	})

	mt.Run("active cutoff uses injected clock", func(mt *mtest.T) {
		now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, linkNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, linkNS, mtest.NextBatch),
		)
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer,
			expiry.ClockFunc(func() time.Time { return now }))

		_, err := r.Fetch(noopCtx, domain.LinkFilter{Status: domain.StatusActive})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		cutoff, err := evt.Command.LookupErr("filter", "expiry_unix", "$gt")
		require.NoError(mt, err)
		assert.Equal(mt, now.Unix(), cutoff.Int64())
	})
}

func TestMongoLinkRepository_Store(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	tLink := tests.NewLink()

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		err := r.Store(noopCtx, tLink)

		require.NoError(mt, err)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    123,
			Message: "server error",
		}))
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		err := r.Store(noopCtx, tLink)

		assert.ErrorIs(mt, err, domain.ErrInternalServerError)
	})
}

func TestMongoLinkRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	tLink := tests.NewLink()

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "nModified", Value: 1},
			{Key: "n", Value: 1},
		})
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		err := r.Update(noopCtx, tLink)

		require.NoError(mt, err)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "nModified", Value: 0},
			{Key: "n", Value: 0},
		})
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		err := r.Update(noopCtx, tLink)

		assert.ErrorIs(mt, err, domain.ErrNoAffected)
	})
}

func TestMongoLinkRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	tLink := tests.NewLink()

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "acknowledged", Value: true},
			{Key: "n", Value: 1},
		})
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		err := r.Delete(noopCtx, tLink.ID)

		require.NoError(mt, err)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "acknowledged", Value: true},
			{Key: "n", Value: 0},
		})
		r := repository.NewMongoLinkRepository(mt.Client, mt.DB.Name(), nil, tracer, nil)

		err := r.Delete(noopCtx, tLink.ID)

		assert.ErrorIs(mt, err, domain.ErrNoAffected)
	})
}
