package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{
			name:     "first and last",
			user:     User{Username: "mcurie", FirstName: "Marie", LastName: "Curie"},
			expected: "Marie Curie",
		},
		{
			name:     "first only",
			user:     User{Username: "mcurie", FirstName: "Marie"},
			expected: "Marie",
		},
		{
			name:     "falls back to username",
			user:     User{Username: "mcurie"},
			expected: "mcurie",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.FullName())
		})
	}
}

func TestUserRole(t *testing.T) {
	assert.Equal(t, RoleMember, User{}.Role())
	assert.Equal(t, RoleAdmin, User{Profile: &Profile{Role: RoleAdmin}}.Role())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleMember))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleChefDEquipe))
	assert.False(t, ValidRole("owner"))
	assert.False(t, ValidRole(""))
}
