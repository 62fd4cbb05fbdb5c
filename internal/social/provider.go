package social

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrInvalidToken is returned when a provider token fails verification.
	ErrInvalidToken = errors.New("invalid provider token")
	// ErrEmailNotVerified is returned when the provider has not verified the email.
	ErrEmailNotVerified = errors.New("provider email not verified")
)

// Identity is the verified account data asserted by a provider.
type Identity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// Verifier checks a provider-issued token and extracts the identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Registry maps provider names to verifiers. Providers that are not
// registered are disabled.
type Registry struct {
	mu        sync.RWMutex
	verifiers map[string]Verifier
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{verifiers: make(map[string]Verifier)}
}

// Register enables a provider.
func (r *Registry) Register(name string, v Verifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifiers[normalize(name)] = v
}

// Lookup returns the verifier for name.
func (r *Registry) Lookup(name string) (Verifier, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.verifiers[normalize(name)]
	return v, ok
}

// Providers lists the enabled provider names.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.verifiers))
	for name := range r.verifiers {
		names = append(names, name)
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
