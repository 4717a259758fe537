package ports

import (
	"context"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

// CreateListingInput carries all data needed to create a listing.
type CreateListingInput struct {
	Type     string
	Age      int
	Price    float64
	WeightKg float64
	Info     string
	Featured bool
	Photo    string
	Sex      string
	BreedID  string
	AdminID  string
}

// CatalogService defines use-case operations over listings and breeds.
type CatalogService interface {
	// Search classifies term as a price ceiling when it parses as a number,
	// otherwise as a case-insensitive substring over listing type and breed
	// name. Both branches apply default-photo substitution.
	Search(ctx context.Context, term string) ([]*domain.Listing, error)

	ListListings(ctx context.Context) ([]*domain.Listing, error)
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	CreateListing(ctx context.Context, input CreateListingInput) (*domain.Listing, error)
	UpdateListing(ctx context.Context, id string, patch ListingPatch) (*domain.Listing, error)
	DeleteListing(ctx context.Context, id string) error

	ListBreeds(ctx context.Context) ([]*domain.Breed, error)
	CreateBreed(ctx context.Context, name string) (*domain.Breed, error)
	UpdateBreed(ctx context.Context, id, name string) (*domain.Breed, error)
	DeleteBreed(ctx context.Context, id string) error
}

// ProposalService defines use-case operations over purchase proposals.
type ProposalService interface {
	List(ctx context.Context) ([]*domain.Proposal, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Proposal, error)
	Create(ctx context.Context, customerID, listingID, description string) (*domain.Proposal, error)
	Answer(ctx context.Context, id, answer string) (*domain.Proposal, error)
}
