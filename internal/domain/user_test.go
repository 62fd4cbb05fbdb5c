package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"Alumni", RoleAlumni, true},
		{"alumni", RoleAlumni, true},
		{"STUDENT", RoleStudent, true},
		{" admin ", RoleAdmin, true},
		{"bogus", "", false},
		{"", "", false},
		{"ROLE_ADMIN", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShapeProfileKeepsOnlyRoleGroup(t *testing.T) {
	fields := ProfileFields{
		CompanyName: "Acme",
		CompanyRole: "Engineer",
		CollegeName: "MIT",
		Branch:      "CS",
		CollegeID:   "42",
	}

	alumni, ok := ShapeProfile(RoleAlumni, fields)
	require.True(t, ok)
	assert.Equal(t, ProfileFields{CompanyName: "Acme", CompanyRole: "Engineer"}, FlattenProfile(alumni))

	student, ok := ShapeProfile(RoleStudent, fields)
	require.True(t, ok)
	assert.Equal(t, ProfileFields{CollegeName: "MIT", Branch: "CS", CollegeID: "42"}, FlattenProfile(student))

	admin, ok := ShapeProfile(RoleAdmin, fields)
	require.True(t, ok)
	assert.Equal(t, ProfileFields{}, FlattenProfile(admin))

	_, ok = ShapeProfile(Role("ROLE_GUEST"), fields)
	assert.False(t, ok)
}

func TestUserRoleFollowsProfile(t *testing.T) {
	u := &User{Email: "jane@x.com", Profile: StudentProfile{CollegeName: "MIT"}}

	assert.Equal(t, RoleStudent, u.Role())
	assert.Equal(t, Principal{Email: "jane@x.com", Role: RoleStudent}, u.Principal())
	assert.Equal(t, "Student", u.Role().DisplayName())

	var empty *User
	assert.Equal(t, Role(""), empty.Role())
}

func TestPrincipalHasRole(t *testing.T) {
	p := Principal{Email: "a@x.com", Role: RoleAdmin}

	assert.True(t, p.HasRole(RoleAlumni, RoleAdmin))
	assert.False(t, p.HasRole(RoleStudent))
	assert.False(t, p.HasRole())
}
