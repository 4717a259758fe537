package domain

import (
	"errors"
	"time"
)

// DefaultListingPhoto is substituted on every read path when a listing has no
// photo reference.
const DefaultListingPhoto = "/default-image.jpg"

var ErrListingNotFound = errors.New("listing not found")
var ErrBreedNotFound = errors.New("breed not found")
var ErrProposalNotFound = errors.New("proposal not found")
var ErrInvalidReference = errors.New("referenced record does not exist")

// Breed is a cattle breed, referenced by listings.
type Breed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Listing is an animal for sale, owned by an administrator.
type Listing struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Age       int       `json:"age"`
	Price     float64   `json:"price"`
	WeightKg  float64   `json:"weight_kg"`
	Info      string    `json:"info"`
	Featured  bool      `json:"featured"`
	Photo     string    `json:"photo"`
	Sex       string    `json:"sex"`
	BreedID   string    `json:"breed_id"`
	AdminID   string    `json:"admin_id"`
	Breed     *Breed    `json:"breed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Proposal is a purchase offer a customer makes on a listing. Answer is empty
// until an administrator responds.
type Proposal struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	ListingID   string    `json:"listing_id"`
	Description string    `json:"description"`
	Answer      string    `json:"answer,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Customer *Customer `json:"customer,omitempty"`
	Listing  *Listing  `json:"listing,omitempty"`
}
