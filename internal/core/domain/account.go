package domain

import (
	"errors"
	"strings"
	"time"
)

// AccountKind distinguishes the two account types sharing the credential policy.
type AccountKind string

const (
	KindAdmin    AccountKind = "admin"
	KindCustomer AccountKind = "customer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotFound = errors.New("account not found")
var ErrEmailTaken = errors.New("email already registered to another administrator")
var ErrNationalIDTaken = errors.New("national id already registered")

// PolicyError accumulates every credential rule an input violated, in
// evaluation order. It renders joined with "; " at the API boundary.
type PolicyError struct {
	Violations []string
}

func (e *PolicyError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Admin is a marketplace administrator, uniquely identified by email.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Customer is a buyer, uniquely identified by an immutable national id.
type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NationalID   string `json:"national_id"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}
