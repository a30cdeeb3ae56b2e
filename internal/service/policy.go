package service

import "github.com/chahin-fh/laboissimlocal/internal/domain"

// Resource/Action pairs gate the role-derived permissions in one place so
// endpoints cannot drift apart on the same rule. Ownership and row-level
// visibility checks stay next to the rows they protect.

type Resource string

const (
	ResourceSiteContent     Resource = "site_content"
	ResourceUserAccounts    Resource = "user_accounts"
	ResourceEventRoster     Resource = "event_roster"
	ResourceInactiveEvents  Resource = "inactive_events"
	ResourceContactMessages Resource = "contact_messages"
	ResourceAccountRequests Resource = "account_requests"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionManage Action = "manage"
)

var policyRules = map[Resource]map[Action]func(domain.User) bool{
	ResourceSiteContent: {
		ActionRead:  authenticated,
		ActionWrite: staff,
	},
	ResourceUserAccounts: {
		ActionRead:   authenticated,
		ActionManage: staffAdmin,
	},
	ResourceEventRoster: {
		ActionRead:   staff,
		ActionManage: staff,
	},
	ResourceInactiveEvents: {
		ActionRead: staff,
	},
	ResourceContactMessages: {
		ActionManage: authenticated,
	},
	ResourceAccountRequests: {
		ActionManage: staff,
	},
}

// Allowed returns the policy decision for (caller, action, resource).
func Allowed(user domain.User, resource Resource, action Action) bool {
	actions, ok := policyRules[resource]
	if !ok {
		return false
	}

	rule, ok := actions[action]
	if !ok {
		return false
	}

	return rule(user)
}

func authenticated(user domain.User) bool {
	return user.ID != 0
}

func staff(user domain.User) bool {
	return user.ID != 0 && user.IsStaff
}

// staffAdmin requires the staff flag plus an admin profile role, the rule
// applied to user lifecycle actions. Superusers created outside this API
// pass regardless of profile role.
func staffAdmin(user domain.User) bool {
	return staff(user) && (user.Role() == domain.RoleAdmin || user.IsSuperuser)
}
