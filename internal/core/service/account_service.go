package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/agrolink/livestock-api/internal/api/metrics"
	"github.com/agrolink/livestock-api/internal/core/credential"
	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
	"github.com/agrolink/livestock-api/internal/core/token"
)

// AccountService implements registration, login and password reset for both
// account kinds. Uniqueness is enforced by the store's unique indexes, never
// by a local existence check, so concurrent registrations of the same
// identity are serialized there and the loser sees a conflict.
type AccountService struct {
	admins    ports.AdminRepository
	customers ports.CustomerRepository
	hasher    credential.Hasher
	tokens    *token.Issuer
	audit     ports.AuditSink
	log       zerolog.Logger
}

func NewAccountService(
	admins ports.AdminRepository,
	customers ports.CustomerRepository,
	hasher credential.Hasher,
	tokens *token.Issuer,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		admins:    admins,
		customers: customers,
		hasher:    hasher,
		tokens:    tokens,
		audit:     audit,
		log:       log,
	}
}

// checkPolicy runs the credential policy shared by both account kinds:
// password rules first, then phone rules. Violations inside one validator
// accumulate; a failing validator stops the sequence so the caller gets one
// coherent message set per field.
func checkPolicy(password, phone string) error {
	if v := credential.ValidatePassword(password); len(v) > 0 {
		return &domain.PolicyError{Violations: v}
	}
	if v := credential.ValidatePhone(phone); len(v) > 0 {
		return &domain.PolicyError{Violations: v}
	}
	return nil
}

func (s *AccountService) RegisterAdmin(ctx context.Context, input ports.RegisterAdminInput) (*domain.Admin, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		return nil, &domain.PolicyError{Violations: []string{"name, email, phone and password are required"}}
	}
	if err := checkPolicy(input.Password, input.Phone); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        credential.CanonicalPhone(input.Phone),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.admins.Insert(ctx, admin)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.recordAudit(domain.KindAdmin, input.Email, domain.AuditRegister, domain.OutcomeConflict)
			metrics.RegistrationsTotal.WithLabelValues("admin", "conflict").Inc()
		}
		return nil, err
	}

	s.recordAudit(domain.KindAdmin, created.Email, domain.AuditRegister, domain.OutcomeSuccess)
	metrics.RegistrationsTotal.WithLabelValues("admin", "success").Inc()
	s.log.Info().Str("admin_id", created.ID).Msg("administrator registered")
	return created, nil
}

func (s *AccountService) RegisterCustomer(ctx context.Context, input ports.RegisterCustomerInput) (*domain.Customer, error) {
	if input.Name == "" || input.NationalID == "" || input.Phone == "" || input.Password == "" {
		return nil, &domain.PolicyError{Violations: []string{"name, national id, phone and password are required"}}
	}
	if err := checkPolicy(input.Password, input.Phone); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:         input.Name,
		NationalID:   input.NationalID,
		Phone:        credential.CanonicalPhone(input.Phone),
		PasswordHash: hash,
	}

	created, err := s.customers.Insert(ctx, customer)
	if err != nil {
		if errors.Is(err, domain.ErrNationalIDTaken) {
			s.recordAudit(domain.KindCustomer, input.NationalID, domain.AuditRegister, domain.OutcomeConflict)
			metrics.RegistrationsTotal.WithLabelValues("customer", "conflict").Inc()
		}
		return nil, err
	}

	s.recordAudit(domain.KindCustomer, created.NationalID, domain.AuditRegister, domain.OutcomeSuccess)
	metrics.RegistrationsTotal.WithLabelValues("customer", "success").Inc()
	s.log.Info().Str("customer_id", created.ID).Msg("customer registered")
	return created, nil
}

// LoginAdmin authenticates by email and issues a session token. A missing
// field, an unknown email and a wrong password all collapse into the same
// ErrInvalidCredentials so the response never reveals whether the account
// exists.
func (s *AccountService) LoginAdmin(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.denied(domain.KindAdmin, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		s.denied(domain.KindAdmin, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(domain.KindAdmin, admin.ID, admin.Name, admin.Phone)
	if err != nil {
		return "", nil, err
	}

	s.recordAudit(domain.KindAdmin, email, domain.AuditLogin, domain.OutcomeSuccess)
	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	return tok, admin, nil
}

// LoginCustomer authenticates by national id. Customers receive their profile
// only; no session token is issued for this account kind.
func (s *AccountService) LoginCustomer(ctx context.Context, nationalID, password string) (*domain.Customer, error) {
	if nationalID == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	customer, err := s.customers.FindByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.denied(domain.KindCustomer, nationalID)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, customer.PasswordHash) {
		s.denied(domain.KindCustomer, nationalID)
		return nil, domain.ErrInvalidCredentials
	}

	s.recordAudit(domain.KindCustomer, nationalID, domain.AuditLogin, domain.OutcomeSuccess)
	metrics.LoginsTotal.WithLabelValues("customer", "success").Inc()
	return customer, nil
}

// ResetCustomerPassword replaces the stored hash after running the password
// policy. An unknown national id surfaces as ErrAccountNotFound: unlike login,
// this path is reached from an administrative flow and is not masked.
func (s *AccountService) ResetCustomerPassword(ctx context.Context, nationalID, newPassword string) (*domain.Customer, error) {
	if newPassword == "" {
		return nil, &domain.PolicyError{Violations: []string{"the new password is required"}}
	}
	if v := credential.ValidatePassword(newPassword); len(v) > 0 {
		return nil, &domain.PolicyError{Violations: v}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.UpdatePassword(ctx, nationalID, hash)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.recordAudit(domain.KindCustomer, nationalID, domain.AuditPasswordReset, domain.OutcomeSuccess)
	metrics.PasswordResetsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("customer_id", customer.ID).Msg("password reset")
	return customer, nil
}

// NationalIDExists reports whether a customer is registered under nationalID.
func (s *AccountService) NationalIDExists(ctx context.Context, nationalID string) (bool, error) {
	_, err := s.customers.FindByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AccountService) ListAdmins(ctx context.Context) ([]*domain.Admin, error) {
	return s.admins.List(ctx)
}

func (s *AccountService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *AccountService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *AccountService) denied(kind domain.AccountKind, subjectKey string) {
	s.recordAudit(kind, subjectKey, domain.AuditLogin, domain.OutcomeDenied)
	metrics.LoginsTotal.WithLabelValues(string(kind), "denied").Inc()
}

func (s *AccountService) recordAudit(kind domain.AccountKind, subjectKey, action, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Kind:       kind,
		SubjectKey: subjectKey,
		Action:     action,
		Outcome:    outcome,
		Timestamp:  time.Now().UTC(),
	})
}
