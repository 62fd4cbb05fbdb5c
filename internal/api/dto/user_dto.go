package dto

import (
	"time"

	"github.com/ArigalaPunithKumar/Alumnus-Backend/internal/domain"
)

// UserView is the public representation of an account.
type UserView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	CompanyName string    `json:"companyName,omitempty"`
	CompanyRole string    `json:"companyRole,omitempty"`
	CollegeName string    `json:"collegeName,omitempty"`
	Branch      string    `json:"branch,omitempty"`
	CollegeID   string    `json:"collegeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUserView renders u without its password hash.
func NewUserView(u *domain.User) UserView {
	fields := domain.FlattenProfile(u.Profile)
	return UserView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role()),
		CompanyName: fields.CompanyName,
		CompanyRole: fields.CompanyRole,
		CollegeName: fields.CollegeName,
		Branch:      fields.Branch,
		CollegeID:   fields.CollegeID,
		CreatedAt:   u.CreatedAt,
	}
}
