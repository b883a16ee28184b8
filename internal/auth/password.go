package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme decides how credentials are stored and compared.
type PasswordScheme interface {
	Name() string
	Hash(plain string) (string, error)
	Matches(stored, plain string) bool
}

// NewPasswordScheme returns the scheme for name ("plain" or "bcrypt").
func NewPasswordScheme(name string, bcryptCost int) (PasswordScheme, error) {
	switch name {
	case "", "plain":
		return PlainPasswords{}, nil
	case "bcrypt":
		return BcryptPasswords{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

// PlainPasswords stores passwords verbatim and compares them exactly,
// matching blobs written by the browser client.
type PlainPasswords struct{}

func (PlainPasswords) Name() string { return "plain" }

func (PlainPasswords) Hash(plain string) (string, error) { return plain, nil }

func (PlainPasswords) Matches(stored, plain string) bool { return stored == plain }

// BcryptPasswords stores bcrypt hashes.
type BcryptPasswords struct {
	Cost int
}

func (BcryptPasswords) Name() string { return "bcrypt" }

func (b BcryptPasswords) Hash(plain string) (string, error) {
	return HashPassword(plain, b.Cost)
}

func (BcryptPasswords) Matches(stored, plain string) bool {
	return ComparePassword(stored, plain) == nil
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
