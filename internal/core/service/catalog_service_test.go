package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
)

type stubListingRepo struct {
	listings []*domain.Listing

	lastCeiling float64
	lastTerm    string
	priceCalls  int
	textCalls   int
}

func (r *stubListingRepo) Insert(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	clone := *listing
	clone.ID = "listing_1"
	r.listings = append(r.listings, &clone)
	return &clone, nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	for _, l := range r.listings {
		if l.ID == id {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (r *stubListingRepo) List(_ context.Context) ([]*domain.Listing, error) {
	return r.clones(func(*domain.Listing) bool { return true }), nil
}

func (r *stubListingRepo) Update(_ context.Context, id string, patch ports.ListingPatch) (*domain.Listing, error) {
	for _, l := range r.listings {
		if l.ID == id {
			l.Sex = patch.Sex
			l.BreedID = patch.BreedID
			l.Photo = patch.Photo
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	for i, l := range r.listings {
		if l.ID == id {
			r.listings = append(r.listings[:i], r.listings[i+1:]...)
			return nil
		}
	}
	return domain.ErrListingNotFound
}

func (r *stubListingRepo) ListByMaxPrice(_ context.Context, ceiling float64) ([]*domain.Listing, error) {
	r.priceCalls++
	r.lastCeiling = ceiling
	return r.clones(func(l *domain.Listing) bool { return l.Price <= ceiling }), nil
}

func (r *stubListingRepo) SearchByTypeOrBreed(_ context.Context, term string) ([]*domain.Listing, error) {
	r.textCalls++
	r.lastTerm = term
	lower := strings.ToLower(term)
	return r.clones(func(l *domain.Listing) bool {
		if strings.Contains(strings.ToLower(l.Type), lower) {
			return true
		}
		return l.Breed != nil && strings.Contains(strings.ToLower(l.Breed.Name), lower)
	}), nil
}

func (r *stubListingRepo) clones(keep func(*domain.Listing) bool) []*domain.Listing {
	var out []*domain.Listing
	for _, l := range r.listings {
		if keep(l) {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out
}

type stubBreedRepo struct {
	breeds []*domain.Breed
}

func (r *stubBreedRepo) Insert(_ context.Context, breed *domain.Breed) (*domain.Breed, error) {
	clone := *breed
	clone.ID = "breed_1"
	r.breeds = append(r.breeds, &clone)
	return &clone, nil
}

func (r *stubBreedRepo) List(_ context.Context) ([]*domain.Breed, error) {
	return r.breeds, nil
}

func (r *stubBreedRepo) Update(_ context.Context, id, name string) (*domain.Breed, error) {
	for _, b := range r.breeds {
		if b.ID == id {
			b.Name = name
			return b, nil
		}
	}
	return nil, domain.ErrBreedNotFound
}

func (r *stubBreedRepo) Delete(_ context.Context, id string) error {
	for i, b := range r.breeds {
		if b.ID == id {
			r.breeds = append(r.breeds[:i], r.breeds[i+1:]...)
			return nil
		}
	}
	return domain.ErrBreedNotFound
}

func seedListings() *stubListingRepo {
	return &stubListingRepo{listings: []*domain.Listing{
		{ID: "l1", Type: "Gado de corte", Price: 400, Photo: "/uploads/l1.jpg", Breed: &domain.Breed{ID: "b1", Name: "Nelore"}},
		{ID: "l2", Type: "Gado leiteiro", Price: 800, Breed: &domain.Breed{ID: "b2", Name: "Holandesa"}},
		{ID: "l3", Type: "Bezerro", Price: 250, Breed: &domain.Breed{ID: "b1", Name: "Nelore"}},
	}}
}

func TestCatalogService_Search_NumericTermIsPriceCeiling(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	results, err := svc.Search(context.Background(), "450")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.priceCalls != 1 || repo.textCalls != 0 {
		t.Fatalf("expected price branch, got price=%d text=%d", repo.priceCalls, repo.textCalls)
	}
	if repo.lastCeiling != 450 {
		t.Fatalf("expected ceiling 450, got %v", repo.lastCeiling)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 listings under ceiling, got %d", len(results))
	}
}

func TestCatalogService_Search_TextTermMatchesTypeOrBreed(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	results, err := svc.Search(context.Background(), "nelore")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.textCalls != 1 || repo.priceCalls != 0 {
		t.Fatalf("expected text branch, got price=%d text=%d", repo.priceCalls, repo.textCalls)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 Nelore listings, got %d", len(results))
	}
}

func TestCatalogService_Search_DecimalTermStillNumeric(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	if _, err := svc.Search(context.Background(), "399.90"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.priceCalls != 1 {
		t.Fatal("expected decimal term to take the price branch")
	}
	if repo.lastCeiling != 399.90 {
		t.Fatalf("expected ceiling 399.90, got %v", repo.lastCeiling)
	}
}

func TestCatalogService_Search_MixedTermIsText(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	// Leading digits do not make a term numeric; ParseFloat must accept the
	// whole string.
	if _, err := svc.Search(context.Background(), "450 reais"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if repo.textCalls != 1 || repo.priceCalls != 0 {
		t.Fatal("expected mixed term to take the text branch")
	}
}

func TestCatalogService_Search_FillsDefaultPhoto(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	results, err := svc.Search(context.Background(), "gado")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	for _, l := range results {
		if l.Photo == "" {
			t.Fatalf("listing %s has no photo", l.ID)
		}
		if l.ID == "l2" && l.Photo != domain.DefaultListingPhoto {
			t.Fatalf("expected default photo, got %q", l.Photo)
		}
		if l.ID == "l1" && l.Photo != "/uploads/l1.jpg" {
			t.Fatalf("existing photo must be preserved, got %q", l.Photo)
		}
	}
}

func TestCatalogService_Search_EmptyResultIsNotNil(t *testing.T) {
	svc := NewCatalogService(&stubListingRepo{}, &stubBreedRepo{}, zerolog.Nop())

	results, err := svc.Search(context.Background(), "10")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if results == nil {
		t.Fatal("empty result must serialize as [], not null")
	}
}

func TestCatalogService_GetListing_FillsDefaultPhoto(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	listing, err := svc.GetListing(context.Background(), "l2")
	if err != nil {
		t.Fatalf("GetListing returned error: %v", err)
	}
	if listing.Photo != domain.DefaultListingPhoto {
		t.Fatalf("expected default photo, got %q", listing.Photo)
	}
}

func TestCatalogService_UpdateListing_DefaultsPhoto(t *testing.T) {
	repo := seedListings()
	svc := NewCatalogService(repo, &stubBreedRepo{}, zerolog.Nop())

	updated, err := svc.UpdateListing(context.Background(), "l1", ports.ListingPatch{Sex: "female", BreedID: "b2"})
	if err != nil {
		t.Fatalf("UpdateListing returned error: %v", err)
	}
	if updated.Photo != domain.DefaultListingPhoto {
		t.Fatalf("expected default photo on patch without one, got %q", updated.Photo)
	}
}
