// internal/models/principal.go
package models

// Principal is the normalized identity produced once at the authentication
// boundary. Downstream code never re-derives user or organization ids from
// raw token or UMS payload shapes.
type Principal struct {
	UserID         string   `json:"user_id"`
	Email          string   `json:"email,omitempty"`
	UserType       UserType `json:"user_type"`
	OrganizationID string   `json:"organization_id,omitempty"`
	Permissions    []string `json:"permissions"`
}

// IsSuperAdmin reports whether the principal bypasses permission and
// organization scoping.
func (p *Principal) IsSuperAdmin() bool {
	return p.UserType == UserTypeSuperAdmin
}

// HasPermission checks capability membership. Super admins hold every
// permission implicitly.
func (p *Principal) HasPermission(permission string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	for _, granted := range p.Permissions {
		if granted == permission {
			return true
		}
	}
	return false
}

// CanAccessOrganization scopes organization users to their own organization.
func (p *Principal) CanAccessOrganization(organizationID string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	return p.OrganizationID == organizationID
}
