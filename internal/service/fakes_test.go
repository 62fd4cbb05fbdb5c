package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/events"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/mail"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/repository"
	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/social"
)

type memoryUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
	seq     int
	creates int
	failErr error
	// skipExists makes ExistsByEmail lie, simulating a concurrent insert.
	skipExists bool
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.creates++
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	r.seq++
	user.ID = fmt.Sprintf("u-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = *user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; !ok {
		return repository.ErrNotFound
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return false, r.failErr
	}
	if r.skipExists {
		return false, nil
	}
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memoryUserRepo) get(email string) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	return u, ok
}

type memoryResetRepo struct {
	mu      sync.Mutex
	tokens  map[string]string
	ttls    map[string]time.Duration
	saveErr error
}

func newMemoryResetRepo() *memoryResetRepo {
	return &memoryResetRepo{tokens: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (r *memoryResetRepo) Save(_ context.Context, token, email string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tokens[token] = email
	r.ttls[token] = ttl
	return nil
}

func (r *memoryResetRepo) Consume(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email, ok := r.tokens[token]
	if !ok {
		return "", repository.ErrNotFound
	}
	delete(r.tokens, token)
	return email, nil
}

type recordingDispatcher struct {
	mu         sync.Mutex
	published  []events.Event
	publishErr error
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return d.publishErr
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) ofType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.published {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type stubVerifier struct {
	identity social.Identity
	err      error
}

func (v stubVerifier) Verify(context.Context, string) (social.Identity, error) {
	return v.identity, v.err
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

var errStoreDown = errors.New("store unavailable")
