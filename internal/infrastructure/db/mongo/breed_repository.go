package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

const breedCollection = "breeds"

// BreedRepository implements ports.BreedRepository on MongoDB.
type BreedRepository struct {
	coll *mongo.Collection
}

func NewBreedRepository(db *mongo.Database) *BreedRepository {
	return &BreedRepository{coll: db.Collection(breedCollection)}
}

type breedDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (d breedDoc) toDomain() *domain.Breed {
	return &domain.Breed{ID: d.ID.Hex(), Name: d.Name}
}

func (r *BreedRepository) Insert(ctx context.Context, breed *domain.Breed) (*domain.Breed, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := breedDoc{Name: breed.Name}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert breed: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BreedRepository) List(ctx context.Context) ([]*domain.Breed, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}

	var docs []breedDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}

	breeds := make([]*domain.Breed, 0, len(docs))
	for _, d := range docs {
		breeds = append(breeds, d.toDomain())
	}
	return breeds, nil
}

func (r *BreedRepository) Update(ctx context.Context, id, name string) (*domain.Breed, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBreedNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc breedDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBreedNotFound
		}
		return nil, fmt.Errorf("update breed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BreedRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBreedNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete breed: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBreedNotFound
	}
	return nil
}
