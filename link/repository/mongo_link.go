package repository

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
	"github.com/ravikgupta/affilink/backend/store"
)

type mongoLinkRepository struct {
	Conn   *mongo.Database
	logger *zap.Logger
	tracer trace.Tracer
	clock  expiry.Clock
}

// NewMongoLinkRepository will create an object that represent the
// domain.LinkRepository interface. A nil clock falls back to the wall clock.
func NewMongoLinkRepository(c *mongo.Client, db string, logger *zap.Logger, tracer trace.Tracer, clock expiry.Clock) domain.LinkRepository {
	if clock == nil {
		clock = expiry.RealClock{}
	}
	return &mongoLinkRepository{
		Conn:   c.Database(db),
		logger: logger,
		tracer: tracer,
		clock:  clock,
	}
}

func (m *mongoLinkRepository) fetch(ctx context.Context, command interface{}) ([]*domain.AffiliateLink, error) {
	ctx, span := m.tracer.Start(
		ctx,
		"repository fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	cur, err := m.Conn.RunCommandCursor(ctx, command)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("can't execute command: %w", err)
	}

	defer func(ctx context.Context) {
		err = cur.Close(ctx)
		if err != nil {
			m.logger.Error("can't close cursor: ", zap.Error(err))
		}
	}(ctx)

	result := make([]*domain.AffiliateLink, 0)

	for cur.Next(ctx) {
		elem := new(domain.AffiliateLink)
		if err = cur.Decode(elem); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("can't unmarshal document into AffiliateLink: %w", err)
		}

		result = append(result, elem)
	}

	if err = cur.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("affiliate link cursor error: %w", err)
	}

	return result, nil
}

func (m *mongoLinkRepository) GetByID(ctx context.Context, id string) (*domain.AffiliateLink, error) {
	ctx, span := m.tracer.Start(
		ctx,
		"repository GetByID",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("linkid", id)),
	)
	defer span.End()

	command := bson.D{
		primitive.E{Key: "find", Value: "link"},
		primitive.E{Key: "limit", Value: 1},
		primitive.E{Key: "filter", Value: bson.D{primitive.E{Key: "_id", Value: id}}},
	}

	list, err := m.fetch(ctx, command)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("affiliate link get error: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	if len(list) == 0 {
		span.RecordError(domain.ErrNotFound)
		return nil, fmt.Errorf("affiliate link was not found: %w", domain.ErrNotFound)
	}

	return list[0], nil
}

func (m *mongoLinkRepository) Fetch(ctx context.Context, filter domain.LinkFilter) ([]*domain.AffiliateLink, error) {
	ctx, span := m.tracer.Start(
		ctx,
		"repository Fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	command := bson.D{
		primitive.E{Key: "find", Value: "link"},
		primitive.E{Key: "filter", Value: buildLinkFilter(filter, m.clock.Now().Unix())},
		primitive.E{Key: "sort", Value: bson.D{primitive.E{Key: "created_at", Value: -1}}},
	}

	list, err := m.fetch(ctx, command)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("affiliate link fetch error: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	return list, nil
}

// buildLinkFilter translates a LinkFilter into a find filter document. The
// active condition compares the expiry against now supplied by the caller,
// so status is always evaluated at query time.
func buildLinkFilter(filter domain.LinkFilter, now int64) bson.D {
	conditions := bson.D{}

	if filter.Platform != "" {
		conditions = append(conditions, primitive.E{Key: "platform", Value: filter.Platform})
	}

	switch filter.Status {
	case domain.StatusActive:
		conditions = append(conditions,
			primitive.E{Key: "is_active", Value: true},
			primitive.E{Key: "expiry_unix", Value: bson.D{primitive.E{Key: "$gt", Value: now}}},
		)
	case domain.StatusInactive:
		conditions = append(conditions, primitive.E{Key: "$or", Value: bson.A{
			bson.D{primitive.E{Key: "is_active", Value: false}},
			bson.D{primitive.E{Key: "expiry_unix", Value: bson.D{primitive.E{Key: "$lte", Value: now}}}},
		}})
	}

	if filter.Search != "" {
		search := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		conditions = append(conditions, primitive.E{Key: "$or", Value: bson.A{
			bson.D{primitive.E{Key: "url", Value: search}},
			bson.D{primitive.E{Key: "destination_url", Value: search}},
			bson.D{primitive.E{Key: "tags", Value: search}},
		}})
	}

	return conditions
}

func (m *mongoLinkRepository) Store(ctx context.Context, link *domain.AffiliateLink) error {
	ctx, span := m.tracer.Start(
		ctx,
		"repository Store",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("linkid", link.ID)),
	)
	defer span.End()

	_, err := m.Conn.Collection("link").InsertOne(ctx, link)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("affiliate link store error: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	return nil
}

func (m *mongoLinkRepository) Update(ctx context.Context, link *domain.AffiliateLink) error {
	ctx, span := m.tracer.Start(
		ctx,
		"repository Update",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("linkid", link.ID)),
	)
	defer span.End()

	doc, err := store.StructToDoc(link)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("can't convert link to bson.D: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	filter := bson.D{primitive.E{Key: "_id", Value: link.ID}}
	update := bson.D{primitive.E{Key: "$set", Value: doc}}

	result, err := m.Conn.Collection("link").UpdateOne(ctx, filter, update)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("affiliate link update error: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	if result.ModifiedCount == 0 && result.MatchedCount == 0 {
		span.RecordError(domain.ErrNoAffected)
		return fmt.Errorf("affiliate link %s was not updated: %w", link.ID, domain.ErrNoAffected)
	}

	return nil
}

func (m *mongoLinkRepository) Delete(ctx context.Context, id string) error {
	ctx, span := m.tracer.Start(
		ctx,
		"repository Delete",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("linkid", id)),
	)
	defer span.End()

	filter := bson.D{primitive.E{Key: "_id", Value: id}}

	delRes, err := m.Conn.Collection("link").DeleteOne(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("affiliate link delete error: %w: %s", domain.ErrInternalServerError, err.Error())
	}

	if delRes.DeletedCount == 0 {
		span.RecordError(domain.ErrNoAffected)
		return fmt.Errorf("affiliate link %s was not deleted: %w", id, domain.ErrNoAffected)
	}

	return nil
}
