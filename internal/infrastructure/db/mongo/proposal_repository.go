package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

const proposalCollection = "proposals"

// ProposalRepository implements ports.ProposalRepository on MongoDB. Read
// operations join the proposing customer and the target listing.
type ProposalRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{db: db, coll: db.Collection(proposalCollection)}
}

type proposalDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID  primitive.ObjectID `bson:"customer_id"`
	ListingID   primitive.ObjectID `bson:"listing_id"`
	Description string             `bson:"description"`
	Answer      string             `bson:"answer,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	Customer    *customerDoc       `bson:"customer,omitempty"`
	Listing     *listingDoc        `bson:"listing,omitempty"`
}

func (d proposalDoc) toDomain() *domain.Proposal {
	p := &domain.Proposal{
		ID:          d.ID.Hex(),
		CustomerID:  d.CustomerID.Hex(),
		ListingID:   d.ListingID.Hex(),
		Description: d.Description,
		Answer:      d.Answer,
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.Customer != nil {
		c := d.Customer.toDomain()
		c.PasswordHash = "" // joined view never carries the hash
		p.Customer = c
	}
	if d.Listing != nil {
		p.Listing = d.Listing.toDomain()
	}
	return p
}

func (r *ProposalRepository) Insert(ctx context.Context, proposal *domain.Proposal) (*domain.Proposal, error) {
	customerID, err := primitive.ObjectIDFromHex(proposal.CustomerID)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}
	listingID, err := primitive.ObjectIDFromHex(proposal.ListingID)
	if err != nil {
		return nil, domain.ErrInvalidReference
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Referential checks: mongo has no foreign keys, so missing referents are
	// rejected here before the insert.
	n, err := r.db.Collection(customerCollection).CountDocuments(ctx, bson.M{"_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("check customer reference: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrInvalidReference
	}
	n, err = r.db.Collection(listingCollection).CountDocuments(ctx, bson.M{"_id": listingID})
	if err != nil {
		return nil, fmt.Errorf("check listing reference: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrInvalidReference
	}

	doc := proposalDoc{
		CustomerID:  customerID,
		ListingID:   listingID,
		Description: proposal.Description,
		CreatedAt:   proposal.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert proposal: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ProposalRepository) List(ctx context.Context) ([]*domain.Proposal, error) {
	return r.aggregate(ctx, r.joinPipeline(nil))
}

func (r *ProposalRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Proposal, error) {
	oid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.aggregate(ctx, r.joinPipeline(bson.M{"customer_id": oid}))
}

func (r *ProposalRepository) SetAnswer(ctx context.Context, id, answer string) (*domain.Proposal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProposalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc proposalDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"answer": answer}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("answer proposal: %w", err)
	}
	return doc.toDomain(), nil
}

// joinPipeline builds the aggregation joining customer and listing, with an
// optional leading match.
func (r *ProposalRepository) joinPipeline(match bson.M) []bson.M {
	var pipeline []bson.M
	if match != nil {
		pipeline = append(pipeline, bson.M{"$match": match})
	}
	pipeline = append(pipeline,
		bson.M{"$lookup": bson.M{
			"from":         customerCollection,
			"localField":   "customer_id",
			"foreignField": "_id",
			"as":           "customer",
		}},
		bson.M{"$unwind": bson.M{"path": "$customer", "preserveNullAndEmptyArrays": true}},
		bson.M{"$lookup": bson.M{
			"from":         listingCollection,
			"localField":   "listing_id",
			"foreignField": "_id",
			"as":           "listing",
		}},
		bson.M{"$unwind": bson.M{"path": "$listing", "preserveNullAndEmptyArrays": true}},
	)
	return pipeline
}

func (r *ProposalRepository) aggregate(ctx context.Context, pipeline []bson.M) ([]*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate proposals: %w", err)
	}

	var docs []proposalDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("aggregate proposals: %w", err)
	}

	proposals := make([]*domain.Proposal, 0, len(docs))
	for _, d := range docs {
		proposals = append(proposals, d.toDomain())
	}
	return proposals, nil
}
