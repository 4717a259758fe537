package ports

import (
	"context"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

// RegisterAdminInput carries the fields required to register an administrator.
type RegisterAdminInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// RegisterCustomerInput carries the fields required to register a customer.
type RegisterCustomerInput struct {
	Name       string
	NationalID string
	Phone      string
	Password   string
}

// AccountService orchestrates registration, authentication and password reset
// for both account kinds behind a single credential policy.
type AccountService interface {
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*domain.Admin, error)
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.Customer, error)

	// LoginAdmin returns a session token alongside the profile. Every failure
	// mode yields the same domain.ErrInvalidCredentials.
	LoginAdmin(ctx context.Context, email, password string) (string, *domain.Admin, error)
	// LoginCustomer returns the profile only; customers do not receive tokens.
	LoginCustomer(ctx context.Context, nationalID, password string) (*domain.Customer, error)

	ResetCustomerPassword(ctx context.Context, nationalID, newPassword string) (*domain.Customer, error)
	NationalIDExists(ctx context.Context, nationalID string) (bool, error)

	ListAdmins(ctx context.Context) ([]*domain.Admin, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
}
