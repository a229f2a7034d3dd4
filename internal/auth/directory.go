package auth

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

// ErrInvalidCredentials is returned for any failed verification
var ErrInvalidCredentials = errors.New("invalid credentials")

// MaxAttempts is how many logins the CLI allows before exiting
const MaxAttempts = 3

// maxPasswordLength is bcrypt's input limit
const maxPasswordLength = 72

// DefaultUsers is the built-in account table
var DefaultUsers = map[string]string{
	"admin": "admin123",
	"user":  "user123",
	"guest": "guest",
}

// Directory holds bcrypt hashes keyed by username
type Directory struct {
	mu     sync.RWMutex
	hashes map[string][]byte
	cost   int
}

// Option configures a Directory
type Option func(*Directory)

// WithCost sets the bcrypt cost; tests use bcrypt.MinCost
func WithCost(cost int) Option {
	return func(d *Directory) {
		d.cost = cost
	}
}

// NewDirectory creates an empty directory
func NewDirectory(opts ...Option) *Directory {
	d := &Directory{
		hashes: make(map[string][]byte),
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDefault creates a directory holding DefaultUsers
func NewDefault(opts ...Option) (*Directory, error) {
	d := NewDirectory(opts...)
	for username, password := range DefaultUsers {
		if err := d.Add(username, password); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add hashes and stores a password, replacing any existing entry
func (d *Directory) Add(username, password string) error {
	if err := paths.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if password == "" || len(password) > maxPasswordLength {
		return fmt.Errorf("invalid password length for %s", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	d.mu.Lock()
	d.hashes[username] = hash
	d.mu.Unlock()
	return nil
}

// Verify checks a username and password. Every failure returns
// ErrInvalidCredentials without saying which part was wrong.
func (d *Directory) Verify(username, password string) error {
	if len(password) > maxPasswordLength {
		return ErrInvalidCredentials
	}

	d.mu.RLock()
	hash, ok := d.hashes[username]
	d.mu.RUnlock()
	if !ok {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Users returns the known usernames, sorted
func (d *Directory) Users() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]string, 0, len(d.hashes))
	for u := range d.hashes {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}
