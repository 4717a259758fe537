package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
)

const listingCollection = "listings"

// ListingRepository implements ports.ListingRepository on MongoDB. Reads run
// a $lookup against the breeds collection so the search dispatcher can match
// on breed name without a second round-trip.
type ListingRepository struct {
	coll *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{coll: db.Collection(listingCollection)}
}

type listingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Age       int                `bson:"age"`
	Price     float64            `bson:"price"`
	WeightKg  float64            `bson:"weight_kg"`
	Info      string             `bson:"info"`
	Featured  bool               `bson:"featured"`
	Photo     string             `bson:"photo,omitempty"`
	Sex       string             `bson:"sex"`
	BreedID   primitive.ObjectID `bson:"breed_id"`
	AdminID   primitive.ObjectID `bson:"admin_id"`
	CreatedAt time.Time          `bson:"created_at"`
	Breed     *breedDoc          `bson:"breed,omitempty"`
}

func (d listingDoc) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:        d.ID.Hex(),
		Type:      d.Type,
		Age:       d.Age,
		Price:     d.Price,
		WeightKg:  d.WeightKg,
		Info:      d.Info,
		Featured:  d.Featured,
		Photo:     d.Photo,
		Sex:       d.Sex,
		BreedID:   d.BreedID.Hex(),
		AdminID:   d.AdminID.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
	}
	if d.Breed != nil {
		l.Breed = d.Breed.toDomain()
	}
	return l
}

// breedLookup joins every listing with its breed document under "breed".
func breedLookup() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         breedCollection,
			"localField":   "breed_id",
			"foreignField": "_id",
			"as":           "breed",
		}},
		{"$unwind": bson.M{
			"path":                       "$breed",
			"preserveNullAndEmptyArrays": true,
		}},
	}
}

func (r *ListingRepository) Insert(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	breedID, err := primitive.ObjectIDFromHex(listing.BreedID)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}
	adminID, err := primitive.ObjectIDFromHex(listing.AdminID)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := listingDoc{
		Type:      listing.Type,
		Age:       listing.Age,
		Price:     listing.Price,
		WeightKg:  listing.WeightKg,
		Info:      listing.Info,
		Featured:  listing.Featured,
		Photo:     listing.Photo,
		Sex:       listing.Sex,
		BreedID:   breedID,
		AdminID:   adminID,
		CreatedAt: listing.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	pipeline := append([]bson.M{{"$match": bson.M{"_id": oid}}}, breedLookup()...)
	listings, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, domain.ErrListingNotFound
	}
	return listings[0], nil
}

func (r *ListingRepository) List(ctx context.Context) ([]*domain.Listing, error) {
	return r.aggregate(ctx, breedLookup())
}

// ListByMaxPrice returns listings whose price is at most ceiling.
func (r *ListingRepository) ListByMaxPrice(ctx context.Context, ceiling float64) ([]*domain.Listing, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"price": bson.M{"$lte": ceiling}}}}, breedLookup()...)
	return r.aggregate(ctx, pipeline)
}

// SearchByTypeOrBreed returns listings whose type or breed name contains term,
// case-insensitively. The breed is joined first so the $or can see its name.
func (r *ListingRepository) SearchByTypeOrBreed(ctx context.Context, term string) ([]*domain.Listing, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	pipeline := append(breedLookup(), bson.M{"$match": bson.M{"$or": []bson.M{
		{"type": pattern},
		{"breed.name": pattern},
	}}})
	return r.aggregate(ctx, pipeline)
}

func (r *ListingRepository) Update(ctx context.Context, id string, patch ports.ListingPatch) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}
	breedID, err := primitive.ObjectIDFromHex(patch.BreedID)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc listingDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"sex": patch.Sex, "breed_id": breedID, "photo": patch.Photo}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) aggregate(ctx context.Context, pipeline []bson.M) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate listings: %w", err)
	}

	var docs []listingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("aggregate listings: %w", err)
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, d := range docs {
		listings = append(listings, d.toDomain())
	}
	return listings, nil
}

// EnsureIndexes creates the query indexes used by the search dispatcher.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "breed_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
