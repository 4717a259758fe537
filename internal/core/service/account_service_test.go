package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrolink/livestock-api/internal/core/credential"
	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
	"github.com/agrolink/livestock-api/internal/core/token"
)

type stubAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*domain.Admin
	nextID int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) Insert(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[admin.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneAdmin(admin)
	r.nextID++
	copy.ID = fmt.Sprintf("admin_%d", r.nextID)
	r.admins[copy.Email] = cloneAdmin(copy)
	return copy, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, cloneAdmin(a))
	}
	return out, nil
}

type stubCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	nextID    int
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCustomerRepo) Insert(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[customer.NationalID]; exists {
		return nil, domain.ErrNationalIDTaken
	}
	copy := cloneCustomer(customer)
	r.nextID++
	copy.ID = fmt.Sprintf("customer_%d", r.nextID)
	r.customers[copy.NationalID] = cloneCustomer(copy)
	return copy, nil
}

func (r *stubCustomerRepo) FindByNationalID(_ context.Context, nationalID string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[nationalID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.ID == id {
			return cloneCustomer(c), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, cloneCustomer(c))
	}
	return out, nil
}

func (r *stubCustomerRepo) UpdatePassword(_ context.Context, nationalID, passwordHash string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[nationalID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	c.PasswordHash = passwordHash
	return cloneCustomer(c), nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (s *recordingSink) Record(event domain.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) byAction(action string) []domain.AuthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AuthEvent
	for _, e := range s.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func newTestAccountService(admins ports.AdminRepository, customers ports.CustomerRepository, sink ports.AuditSink) *AccountService {
	return NewAccountService(admins, customers, credential.NewHasher(), token.NewIssuer("test-secret"), sink, zerolog.Nop())
}

func TestAccountService_RegisterAdmin_Success(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	admin, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "(11) 98765-4321",
		Password: "Sup3r-Secret",
	})
	if err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}
	if admin.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if admin.Phone != "+5511987654321" {
		t.Fatalf("expected canonical phone, got %q", admin.Phone)
	}
	if admin.PasswordHash == "Sup3r-Secret" {
		t.Fatal("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("Sup3r-Secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(admin.PasswordHash)); cost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cost)
	}
}

func TestAccountService_RegisterAdmin_MissingFields(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	_, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{Name: "Alice"})
	var pe *domain.PolicyError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PolicyError, got %v", err)
	}
}

func TestAccountService_RegisterAdmin_WeakPassword(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	_, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "11987654321",
		Password: "abc",
	})
	var pe *domain.PolicyError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PolicyError, got %v", err)
	}
	if len(pe.Violations) != 2 {
		t.Fatalf("expected both password violations, got %v", pe.Violations)
	}
	if !strings.Contains(pe.Error(), "; ") {
		t.Fatalf("expected joined message, got %q", pe.Error())
	}
}

func TestAccountService_RegisterAdmin_PasswordCheckedBeforePhone(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	// Both fields are invalid; only the password violations surface.
	_, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "123",
		Password: "weak",
	})
	var pe *domain.PolicyError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PolicyError, got %v", err)
	}
	for _, v := range pe.Violations {
		if strings.Contains(v, "phone") {
			t.Fatalf("phone violation surfaced before password passed: %v", pe.Violations)
		}
	}
}

func TestAccountService_RegisterAdmin_DuplicateEmail(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)
	input := ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "11987654321",
		Password: "Sup3r-Secret",
	}

	if _, err := svc.RegisterAdmin(context.Background(), input); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.RegisterAdmin(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_RegisterAdmin_ConcurrentDuplicates(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)
	input := ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "11987654321",
		Password: "Sup3r-Secret",
	}

	const n = 4
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RegisterAdmin(context.Background(), input)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, lost int
	for err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrEmailTaken):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || lost != n-1 {
		t.Fatalf("expected exactly one winner, got %d winners and %d conflicts", won, lost)
	}
}

func TestAccountService_LoginAdmin_Success(t *testing.T) {
	sink := &recordingSink{}
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), sink)

	if _, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "11987654321",
		Password: "Sup3r-Secret",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	tok, admin, err := svc.LoginAdmin(context.Background(), "alice@example.com", "Sup3r-Secret")
	if err != nil {
		t.Fatalf("LoginAdmin returned error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected a session token")
	}
	if admin.Email != "alice@example.com" {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	claims, err := token.NewIssuer("test-secret").Verify(tok)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Kind != domain.KindAdmin || claims.SubjectID != admin.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Phone != "+5511987654321" {
		t.Fatalf("token carries non-canonical phone: %q", claims.Phone)
	}
}

func TestAccountService_LoginAdmin_FailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	if _, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "11987654321",
		Password: "Sup3r-Secret",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, _, errUnknown := svc.LoginAdmin(context.Background(), "nobody@example.com", "Sup3r-Secret")
	_, _, errWrongPw := svc.LoginAdmin(context.Background(), "alice@example.com", "not-the-password")
	_, _, errMissing := svc.LoginAdmin(context.Background(), "", "")

	for _, err := range []error{errUnknown, errWrongPw, errMissing} {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
	if errUnknown.Error() != errWrongPw.Error() || errWrongPw.Error() != errMissing.Error() {
		t.Fatal("login failure messages must be identical")
	}
}

func TestAccountService_LoginCustomer_NoToken(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	if _, err := svc.RegisterCustomer(context.Background(), ports.RegisterCustomerInput{
		Name:       "Bob",
		NationalID: "12345678900",
		Phone:      "11987654321",
		Password:   "Sup3r-Secret",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	customer, err := svc.LoginCustomer(context.Background(), "12345678900", "Sup3r-Secret")
	if err != nil {
		t.Fatalf("LoginCustomer returned error: %v", err)
	}
	if customer.NationalID != "12345678900" {
		t.Fatalf("unexpected customer: %+v", customer)
	}

	if _, err := svc.LoginCustomer(context.Background(), "12345678900", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_ResetCustomerPassword(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	if _, err := svc.RegisterCustomer(context.Background(), ports.RegisterCustomerInput{
		Name:       "Bob",
		NationalID: "12345678900",
		Phone:      "11987654321",
		Password:   "Sup3r-Secret",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := svc.ResetCustomerPassword(context.Background(), "12345678900", "N3w-Secret!"); err != nil {
		t.Fatalf("ResetCustomerPassword returned error: %v", err)
	}

	// Old password must stop working, new one must work.
	if _, err := svc.LoginCustomer(context.Background(), "12345678900", "Sup3r-Secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.LoginCustomer(context.Background(), "12345678900", "N3w-Secret!"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAccountService_ResetCustomerPassword_UnknownIDSurfaces(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	_, err := svc.ResetCustomerPassword(context.Background(), "00000000000", "N3w-Secret!")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_ResetCustomerPassword_PolicyApplies(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	_, err := svc.ResetCustomerPassword(context.Background(), "12345678900", "weak")
	var pe *domain.PolicyError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PolicyError, got %v", err)
	}

	_, err = svc.ResetCustomerPassword(context.Background(), "12345678900", "")
	if !errors.As(err, &pe) {
		t.Fatalf("expected PolicyError for empty password, got %v", err)
	}
}

func TestAccountService_NationalIDExists(t *testing.T) {
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), nil)

	exists, err := svc.NationalIDExists(context.Background(), "12345678900")
	if err != nil || exists {
		t.Fatalf("expected (false, nil), got (%v, %v)", exists, err)
	}

	if _, err := svc.RegisterCustomer(context.Background(), ports.RegisterCustomerInput{
		Name:       "Bob",
		NationalID: "12345678900",
		Phone:      "11987654321",
		Password:   "Sup3r-Secret",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	exists, err = svc.NationalIDExists(context.Background(), "12345678900")
	if err != nil || !exists {
		t.Fatalf("expected (true, nil), got (%v, %v)", exists, err)
	}
}

func TestAccountService_AuditTrail(t *testing.T) {
	sink := &recordingSink{}
	svc := newTestAccountService(newStubAdminRepo(), newStubCustomerRepo(), sink)

	if _, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "11987654321",
		Password: "Sup3r-Secret",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, _, err := svc.LoginAdmin(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected denied login, got %v", err)
	}

	registers := sink.byAction(domain.AuditRegister)
	if len(registers) != 1 || registers[0].Outcome != domain.OutcomeSuccess {
		t.Fatalf("unexpected register events: %+v", registers)
	}
	logins := sink.byAction(domain.AuditLogin)
	if len(logins) != 1 || logins[0].Outcome != domain.OutcomeDenied {
		t.Fatalf("unexpected login events: %+v", logins)
	}
}
