package domain

import (
	"strings"
	"time"
)

// Role enumerates the closed set of account roles.
type Role string

const (
	RoleAlumni  Role = "ROLE_ALUMNI"
	RoleStudent Role = "ROLE_STUDENT"
	RoleAdmin   Role = "ROLE_ADMIN"
)

// ParseRole resolves a role name such as "alumni" or "Student". Matching is
// case-insensitive against the bare names only.
func ParseRole(name string) (Role, bool) {
	switch Role("ROLE_" + strings.ToUpper(strings.TrimSpace(name))) {
	case RoleAlumni:
		return RoleAlumni, true
	case RoleStudent:
		return RoleStudent, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAlumni, RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// DisplayName returns the bare role name, e.g. "Alumni".
func (r Role) DisplayName() string {
	name := strings.TrimPrefix(string(r), "ROLE_")
	if name == "" {
		return ""
	}
	return name[:1] + strings.ToLower(name[1:])
}

// Profile is the role-conditional attribute group of a user. The concrete
// type determines the role.
type Profile interface {
	Role() Role
	isProfile()
}

// AlumniProfile holds attributes meaningful for alumni.
type AlumniProfile struct {
	CompanyName string
	CompanyRole string
}

// StudentProfile holds attributes meaningful for students.
type StudentProfile struct {
	CollegeName string
	Branch      string
	CollegeID   string
}

// AdminProfile carries no extra attributes.
type AdminProfile struct{}

func (AlumniProfile) Role() Role  { return RoleAlumni }
func (StudentProfile) Role() Role { return RoleStudent }
func (AdminProfile) Role() Role   { return RoleAdmin }

func (AlumniProfile) isProfile()  {}
func (StudentProfile) isProfile() {}
func (AdminProfile) isProfile()   {}

// ProfileFields is the flat set of optional attributes accepted at
// registration and stored on user documents.
type ProfileFields struct {
	CompanyName string
	CompanyRole string
	CollegeName string
	Branch      string
	CollegeID   string
}

// ShapeProfile keeps only the attribute group that belongs to role.
func ShapeProfile(role Role, fields ProfileFields) (Profile, bool) {
	switch role {
	case RoleAlumni:
		return AlumniProfile{CompanyName: fields.CompanyName, CompanyRole: fields.CompanyRole}, true
	case RoleStudent:
		return StudentProfile{CollegeName: fields.CollegeName, Branch: fields.Branch, CollegeID: fields.CollegeID}, true
	case RoleAdmin:
		return AdminProfile{}, true
	default:
		return nil, false
	}
}

// FlattenProfile is the inverse of ShapeProfile. Groups not owned by the
// profile's role are left empty.
func FlattenProfile(p Profile) ProfileFields {
	switch v := p.(type) {
	case AlumniProfile:
		return ProfileFields{CompanyName: v.CompanyName, CompanyRole: v.CompanyRole}
	case StudentProfile:
		return ProfileFields{CollegeName: v.CollegeName, Branch: v.Branch, CollegeID: v.CollegeID}
	default:
		return ProfileFields{}
	}
}

// User is the stored account record. PasswordHash is never plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role returns the role implied by the user's profile.
func (u *User) Role() Role {
	if u == nil || u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

// Principal returns the authenticated identity for u.
func (u *User) Principal() Principal {
	return Principal{Email: u.Email, Role: u.Role()}
}
