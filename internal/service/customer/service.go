package customer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"scoopshop/internal/domain"
	custrepo "scoopshop/internal/repository/customer"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRUT indicates the national id failed format or check-digit
	// validation.
	ErrInvalidRUT = errors.New("invalid RUT")
	// ErrInvalidPhone indicates the phone is not in +569XXXXXXXX form.
	ErrInvalidPhone = errors.New("invalid phone number")
)

var (
	rutPattern   = regexp.MustCompile(`^\d{7,8}-?[0-9K]$`)
	phonePattern = regexp.MustCompile(`^\+569\d{8}$`)
)

// Service handles customer signup/login flows.
type Service struct {
	repo        custrepo.Repository
	passwordMin int
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo, passwordMin: 8}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	RUT       string `json:"rut"`
}

// Signup registers a new customer. The RUT is normalized and its check digit
// verified; the phone must be a Chilean mobile number.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("password must be at least %d characters", s.passwordMin)
	}
	rut, err := NormalizeRUT(in.RUT)
	if err != nil {
		return nil, err
	}
	if !phonePattern.MatchString(in.Phone) {
		return nil, ErrInvalidPhone
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.Customer{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        in.Phone,
		Address:      strings.TrimSpace(in.Address),
		RUT:          rut,
	})
}

// Login verifies credentials and returns the matching customer.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	cust, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return cust, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

// Delete removes a customer. Their orders survive with a null customer
// reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// NormalizeRUT validates a Chilean RUT (with or without hyphen, no dots) and
// returns it in canonical BODY-DV form. The check digit uses the standard
// mod-11 algorithm where 10 maps to K and 11 to 0.
func NormalizeRUT(raw string) (string, error) {
	rut := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), ".", ""))
	if !rutPattern.MatchString(rut) {
		return "", ErrInvalidRUT
	}
	if !strings.Contains(rut, "-") {
		rut = rut[:len(rut)-1] + "-" + rut[len(rut)-1:]
	}

	parts := strings.SplitN(rut, "-", 2)
	body, dv := parts[0], parts[1]

	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * factor
		if factor == 7 {
			factor = 2
		} else {
			factor++
		}
	}
	var expected string
	switch rest := 11 - (sum % 11); rest {
	case 10:
		expected = "K"
	case 11:
		expected = "0"
	default:
		expected = fmt.Sprintf("%d", rest)
	}

	if dv != expected {
		return "", ErrInvalidRUT
	}
	return body + "-" + dv, nil
}
