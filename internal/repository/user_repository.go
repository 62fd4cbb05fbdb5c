package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the store's unique email
	// constraint rejects a write. It is the authoritative duplicate signal.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the credential store. Email is the unique key.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// userRecord is the flat storage shape shared by the store backends.
type userRecord struct {
	ID          string
	Name        string
	Email       string
	Password    string
	Phone       string
	Role        string
	CompanyName string
	CompanyRole string
	CollegeName string
	Branch      string
	CollegeID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func recordFromUser(u *domain.User) userRecord {
	fields := domain.FlattenProfile(u.Profile)
	return userRecord{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Password:    u.PasswordHash,
		Phone:       u.Phone,
		Role:        string(u.Role()),
		CompanyName: fields.CompanyName,
		CompanyRole: fields.CompanyRole,
		CollegeName: fields.CollegeName,
		Branch:      fields.Branch,
		CollegeID:   fields.CollegeID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (r userRecord) toUser() (*domain.User, error) {
	profile, ok := domain.ShapeProfile(domain.Role(r.Role), domain.ProfileFields{
		CompanyName: r.CompanyName,
		CompanyRole: r.CompanyRole,
		CollegeName: r.CollegeName,
		Branch:      r.Branch,
		CollegeID:   r.CollegeID,
	})
	if !ok {
		return nil, fmt.Errorf("user %s: unknown stored role %q", r.ID, r.Role)
	}
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		Phone:        r.Phone,
		Profile:      profile,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}
