package domain

import (
	"strings"
	"time"
)

const (
	RoleMember      = "member"
	RoleAdmin       = "admin"
	RoleChefDEquipe = "chef_d_equipe"
)

// ValidRole reports whether role is one of the enumerated profile roles.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleAdmin, RoleChefDEquipe:
		return true
	}

	return false
}

type User struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
	Profile     *Profile  `json:"profile,omitempty"`
}

// FullName is the display name, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}

	return name
}

// Role returns the profile role, defaulting to member when the profile
// has not been loaded.
func (u User) Role() string {
	if u.Profile == nil {
		return RoleMember
	}

	return u.Profile.Role
}

type Profile struct {
	Phone        string    `json:"phone"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	Location     string    `json:"location"`
	Institution  string    `json:"institution"`
	Website      string    `json:"website"`
	LinkedIn     string    `json:"linkedin"`
	Twitter      string    `json:"twitter"`
	GitHub       string    `json:"github"`
	IsTeamLead   bool      `json:"is_team_lead"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Profile) IsChefDEquipe() bool {
	return p.Role == RoleChefDEquipe
}
