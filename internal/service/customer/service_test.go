package customer

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"scoopshop/internal/domain"
	custrepo "scoopshop/internal/repository/customer"
)

type stubRepo struct {
	byEmail map[string]*domain.Customer
	created *domain.Customer
}

func (s *stubRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, ok := s.byEmail[c.Email]; ok {
		return nil, custrepo.ErrEmailTaken
	}
	c.ID = "cust-1"
	s.created = &c
	return &c, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	for _, c := range s.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *stubRepo) List(_ context.Context) ([]domain.Customer, error) { return nil, nil }
func (s *stubRepo) Delete(_ context.Context, _ string) error          { return nil }

func validSignup() SignupInput {
	return SignupInput{
		Email:     "  Ana@Example.com ",
		Password:  "hunter2hunter2",
		FirstName: "Ana",
		LastName:  "Rojas",
		Phone:     "+56912345678",
		Address:   "Av. Siempre Viva 742",
		RUT:       "12.345.678-5",
	}
}

func TestSignupNormalizesAndHashes(t *testing.T) {
	repo := &stubRepo{byEmail: map[string]*domain.Customer{}}
	svc := New(repo)

	cust, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cust.Email != "ana@example.com" {
		t.Fatalf("email = %q, want lowercased trimmed", cust.Email)
	}
	if cust.RUT != "12345678-5" {
		t.Fatalf("rut = %q, want canonical form", cust.RUT)
	}
	if cust.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestSignupRejectsBadInput(t *testing.T) {
	svc := New(&stubRepo{byEmail: map[string]*domain.Customer{}})

	in := validSignup()
	in.Password = "short"
	if _, err := svc.Signup(context.Background(), in); err == nil {
		t.Fatalf("expected error for short password")
	}

	in = validSignup()
	in.Phone = "912345678"
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("expected phone error, got %v", err)
	}

	in = validSignup()
	in.RUT = "12345678-9"
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, ErrInvalidRUT) {
		t.Fatalf("expected rut error, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := &stubRepo{byEmail: map[string]*domain.Customer{
		"ana@example.com": {ID: "cust-0", Email: "ana@example.com"},
	}}
	svc := New(repo)

	if _, err := svc.Signup(context.Background(), validSignup()); !errors.Is(err, custrepo.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubRepo{byEmail: map[string]*domain.Customer{
		"ana@example.com": {ID: "cust-1", Email: "ana@example.com", PasswordHash: string(hash)},
	}}
	svc := New(repo)

	cust, err := svc.Login(context.Background(), " Ana@Example.com ", "hunter2hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cust.ID != "cust-1" {
		t.Fatalf("wrong customer: %+v", cust)
	}

	if _, err := svc.Login(context.Background(), "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestNormalizeRUT(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "12345678-5", want: "12345678-5", ok: true},
		{in: "12.345.678-5", want: "12345678-5", ok: true},
		{in: "123456785", want: "12345678-5", ok: true},
		{in: " 21742095-4 ", want: "21742095-4", ok: true},
		{in: "8888888-k", want: "8888888-K", ok: true},
		{in: "21742097-0", want: "21742097-0", ok: true},
		{in: "12345678-4", ok: false},
		{in: "8888888-0", ok: false},
		{in: "123456-5", ok: false},
		{in: "12345678-", ok: false},
		{in: "not-a-rut", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		got, err := NormalizeRUT(tt.in)
		if tt.ok {
			if err != nil {
				t.Errorf("NormalizeRUT(%q) unexpected error: %v", tt.in, err)
				continue
			}
			if got != tt.want {
				t.Errorf("NormalizeRUT(%q) = %q, want %q", tt.in, got, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidRUT) {
			t.Errorf("NormalizeRUT(%q) = %q, %v; want invalid", tt.in, got, err)
		}
	}
}
