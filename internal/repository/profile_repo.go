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

const profilesCollection = "profiles"

// ProfileRepo handles MongoDB operations for resolved profiles
type ProfileRepo interface {
	Save(ctx context.Context, profile *model.ResolvedProfile) error
	Latest(ctx context.Context, userID string) (*model.ResolvedProfile, error)
	History(ctx context.Context, userID string, limit int) ([]*model.ResolvedProfile, error)
}

type profileRepo struct {
	coll *mongo.Collection
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{coll: db.Collection(profilesCollection)}
}

func (r *profileRepo) Save(ctx context.Context, profile *model.ResolvedProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, profile)
	return err
}

func (r *profileRepo) Latest(ctx context.Context, userID string) (*model.ResolvedProfile, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var profile model.ResolvedProfile
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) History(ctx context.Context, userID string, limit int) ([]*model.ResolvedProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := []*model.ResolvedProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
