package ports

import (
	"context"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

// ListingPatch carries the mutable fields of a listing update.
type ListingPatch struct {
	Sex     string
	BreedID string
	Photo   string
}

// ListingRepository persists listings. Read operations resolve the associated
// breed so the search dispatcher can match on breed name.
type ListingRepository interface {
	Insert(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context) ([]*domain.Listing, error)
	Update(ctx context.Context, id string, patch ListingPatch) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error

	// ListByMaxPrice returns listings whose price is at most ceiling.
	ListByMaxPrice(ctx context.Context, ceiling float64) ([]*domain.Listing, error)
	// SearchByTypeOrBreed returns listings whose type or breed name contains
	// term, case-insensitively.
	SearchByTypeOrBreed(ctx context.Context, term string) ([]*domain.Listing, error)
}

// BreedRepository persists cattle breeds.
type BreedRepository interface {
	Insert(ctx context.Context, breed *domain.Breed) (*domain.Breed, error)
	List(ctx context.Context) ([]*domain.Breed, error)
	Update(ctx context.Context, id, name string) (*domain.Breed, error)
	Delete(ctx context.Context, id string) error
}

// ProposalRepository persists purchase proposals.
type ProposalRepository interface {
	Insert(ctx context.Context, proposal *domain.Proposal) (*domain.Proposal, error)
	List(ctx context.Context) ([]*domain.Proposal, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Proposal, error)
	SetAnswer(ctx context.Context, id, answer string) (*domain.Proposal, error)
}
