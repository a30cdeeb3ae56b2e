package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

func TestAllowed(t *testing.T) {
	anonymous := domain.User{}
	member := domain.User{ID: 1}
	staff := domain.User{ID: 2, IsStaff: true}
	staffAdmin := domain.User{ID: 3, IsStaff: true, Profile: &domain.Profile{Role: domain.RoleAdmin}}
	superuser := domain.User{ID: 4, IsStaff: true, IsSuperuser: true}
	adminNoStaff := domain.User{ID: 5, Profile: &domain.Profile{Role: domain.RoleAdmin}}

	tests := []struct {
		name     string
		user     domain.User
		resource Resource
		action   Action
		expected bool
	}{
		{"anonymous cannot read site content", anonymous, ResourceSiteContent, ActionRead, false},
		{"member reads site content", member, ResourceSiteContent, ActionRead, true},
		{"member cannot write site content", member, ResourceSiteContent, ActionWrite, false},
		{"staff writes site content", staff, ResourceSiteContent, ActionWrite, true},
		{"staff alone cannot manage accounts", staff, ResourceUserAccounts, ActionManage, false},
		{"staff admin manages accounts", staffAdmin, ResourceUserAccounts, ActionManage, true},
		{"superuser manages accounts without profile role", superuser, ResourceUserAccounts, ActionManage, true},
		{"admin role without staff flag cannot manage accounts", adminNoStaff, ResourceUserAccounts, ActionManage, false},
		{"member cannot read event roster", member, ResourceEventRoster, ActionRead, false},
		{"staff reads event roster", staff, ResourceEventRoster, ActionRead, true},
		{"member cannot see inactive events", member, ResourceInactiveEvents, ActionRead, false},
		{"staff sees inactive events", staff, ResourceInactiveEvents, ActionRead, true},
		{"member manages contact messages", member, ResourceContactMessages, ActionManage, true},
		{"anonymous cannot manage contact messages", anonymous, ResourceContactMessages, ActionManage, false},
		{"member cannot manage account requests", member, ResourceAccountRequests, ActionManage, false},
		{"staff manages account requests", staff, ResourceAccountRequests, ActionManage, true},
		{"unknown resource denies", member, Resource("unknown"), ActionRead, false},
		{"unknown action denies", staff, ResourceSiteContent, Action("purge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Allowed(tt.user, tt.resource, tt.action))
		})
	}
}
