package ports

import (
	"context"

	"github.com/agrolink/livestock-api/internal/core/domain"
)

// AdminRepository persists administrators, keyed by unique email. Insert must
// be atomic with respect to the uniqueness constraint: concurrent inserts of
// the same email are serialized by the store and the loser receives
// domain.ErrEmailTaken.
type AdminRepository interface {
	Insert(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
}

// CustomerRepository persists customers, keyed by unique national id. Insert
// reports duplicates as domain.ErrNationalIDTaken; UpdatePassword reports a
// missing identity as domain.ErrAccountNotFound.
type CustomerRepository interface {
	Insert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	UpdatePassword(ctx context.Context, nationalID, passwordHash string) (*domain.Customer, error)
}
