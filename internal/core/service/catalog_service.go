package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrolink/livestock-api/internal/api/metrics"
	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
)

// CatalogService implements listing and breed use cases, including the free
// text search dispatcher.
type CatalogService struct {
	listings ports.ListingRepository
	breeds   ports.BreedRepository
	log      zerolog.Logger
}

func NewCatalogService(listings ports.ListingRepository, breeds ports.BreedRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{listings: listings, breeds: breeds, log: log}
}

// Search classifies term by shape: a term that parses as a number is a price
// ceiling, anything else is a case-insensitive substring matched against
// listing type and breed name. Both branches substitute the default photo for
// listings without one.
func (s *CatalogService) Search(ctx context.Context, term string) ([]*domain.Listing, error) {
	ceiling, err := strconv.ParseFloat(term, 64)
	if err == nil {
		metrics.ListingSearchesTotal.WithLabelValues("price").Inc()
		listings, err := s.listings.ListByMaxPrice(ctx, ceiling)
		if err != nil {
			return nil, err
		}
		return applyDefaultPhoto(listings), nil
	}

	metrics.ListingSearchesTotal.WithLabelValues("text").Inc()
	listings, err := s.listings.SearchByTypeOrBreed(ctx, term)
	if err != nil {
		return nil, err
	}
	return applyDefaultPhoto(listings), nil
}

func (s *CatalogService) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := s.listings.List(ctx)
	if err != nil {
		return nil, err
	}
	return applyDefaultPhoto(listings), nil
}

func (s *CatalogService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Photo == "" {
		listing.Photo = domain.DefaultListingPhoto
	}
	return listing, nil
}

func (s *CatalogService) CreateListing(ctx context.Context, input ports.CreateListingInput) (*domain.Listing, error) {
	listing := &domain.Listing{
		Type:      input.Type,
		Age:       input.Age,
		Price:     input.Price,
		WeightKg:  input.WeightKg,
		Info:      input.Info,
		Featured:  input.Featured,
		Photo:     input.Photo,
		Sex:       input.Sex,
		BreedID:   input.BreedID,
		AdminID:   input.AdminID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.listings.Insert(ctx, listing)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("listing_id", created.ID).Str("admin_id", created.AdminID).Msg("listing created")
	return created, nil
}

func (s *CatalogService) UpdateListing(ctx context.Context, id string, patch ports.ListingPatch) (*domain.Listing, error) {
	if patch.Photo == "" {
		patch.Photo = domain.DefaultListingPhoto
	}
	return s.listings.Update(ctx, id, patch)
}

func (s *CatalogService) DeleteListing(ctx context.Context, id string) error {
	return s.listings.Delete(ctx, id)
}

func (s *CatalogService) ListBreeds(ctx context.Context) ([]*domain.Breed, error) {
	return s.breeds.List(ctx)
}

func (s *CatalogService) CreateBreed(ctx context.Context, name string) (*domain.Breed, error) {
	return s.breeds.Insert(ctx, &domain.Breed{Name: name})
}

func (s *CatalogService) UpdateBreed(ctx context.Context, id, name string) (*domain.Breed, error) {
	return s.breeds.Update(ctx, id, name)
}

func (s *CatalogService) DeleteBreed(ctx context.Context, id string) error {
	return s.breeds.Delete(ctx, id)
}

// applyDefaultPhoto fills the placeholder reference on listings without a
// photo. Never returns nil so empty result sets serialize as [].
func applyDefaultPhoto(listings []*domain.Listing) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Photo == "" {
			l.Photo = domain.DefaultListingPhoto
		}
		out = append(out, l)
	}
	return out
}
