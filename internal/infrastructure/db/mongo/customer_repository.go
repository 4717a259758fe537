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

const customerCollection = "customers"

// CustomerRepository implements ports.CustomerRepository on MongoDB. The
// unique index on national_id makes Insert atomically insert-or-conflict.
type CustomerRepository struct {
	coll *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{coll: db.Collection(customerCollection)}
}

type customerDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	NationalID   string             `bson:"national_id"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password_hash"`
}

func (d customerDoc) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		NationalID:   d.NationalID,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
	}
}

func (r *CustomerRepository) Insert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := customerDoc{
		Name:         customer.Name,
		NationalID:   customer.NationalID,
		Phone:        customer.Phone,
		PasswordHash: customer.PasswordHash,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrNationalIDTaken
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CustomerRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	if err := r.coll.FindOne(ctx, bson.M{"national_id": nationalID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	var docs []customerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]*domain.Customer, 0, len(docs))
	for _, d := range docs {
		customers = append(customers, d.toDomain())
	}
	return customers, nil
}

// UpdatePassword overwrites the stored hash for the customer with the given
// national id and returns the updated record.
func (r *CustomerRepository) UpdatePassword(ctx context.Context, nationalID, passwordHash string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"national_id": nationalID},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update customer password: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique national_id index.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "national_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
