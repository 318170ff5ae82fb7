package repository

import (
	"context"
	"time"

	"mindshift/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventsCollection = "focus_events"

// EventRepo logs focus events and the recommendations sent for them
type EventRepo interface {
	Save(ctx context.Context, event *model.FocusEvent) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.FocusEvent, error)
}

type eventRepo struct {
	coll *mongo.Collection
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *mongo.Database) EventRepo {
	return &eventRepo{coll: db.Collection(eventsCollection)}
}

func (r *eventRepo) Save(ctx context.Context, event *model.FocusEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, event)
	return err
}

func (r *eventRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.FocusEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*model.FocusEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
