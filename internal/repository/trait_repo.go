package repository

import (
	"context"
	"fmt"

	"mindshift/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const traitsCollection = "traits"

// TraitRepo stores the trait reference table. Table order matters to the
// matcher, so each record keeps its position.
type TraitRepo interface {
	All(ctx context.Context) ([]model.TraitDefinition, error)
	Upsert(ctx context.Context, position int, def model.TraitDefinition) error
	ReplaceAll(ctx context.Context, defs []model.TraitDefinition) error
}

type traitDoc struct {
	Position              int `bson:"position"`
	model.TraitDefinition `bson:",inline"`
}

type traitRepo struct {
	coll *mongo.Collection
}

// NewTraitRepo creates a new trait repository
func NewTraitRepo(db *mongo.Database) TraitRepo {
	return &traitRepo{coll: db.Collection(traitsCollection)}
}

func (r *traitRepo) All(ctx context.Context) ([]model.TraitDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []traitDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	defs := make([]model.TraitDefinition, len(docs))
	for i, d := range docs {
		defs[i] = d.TraitDefinition
	}
	return defs, nil
}

func (r *traitRepo) Upsert(ctx context.Context, position int, def model.TraitDefinition) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"trait": def.Trait},
		traitDoc{Position: position, TraitDefinition: def},
		opts,
	)
	return err
}

// ReplaceAll swaps the whole table for defs
func (r *traitRepo) ReplaceAll(ctx context.Context, defs []model.TraitDefinition) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear traits: %w", err)
	}
	for i, def := range defs {
		if err := r.Upsert(ctx, i, def); err != nil {
			return fmt.Errorf("upsert trait %s: %w", def.Trait, err)
		}
	}
	return nil
}
