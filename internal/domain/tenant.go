package domain

import "time"

// Role distinguishes administrative accounts from client accounts.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Capability is a management capability a tenant can hold in addition to
// its role. The set of capabilities is fixed; membership is explicit.
type Capability string

const (
	CapabilityAgent     Capability = "agent"
	CapabilityAppraiser Capability = "appraiser"
	CapabilityConcierge Capability = "concierge"
)

// Capabilities is the set of management capabilities held by a tenant.
type Capabilities map[Capability]struct{}

// Has reports whether the capability is in the set.
func (c Capabilities) Has(capability Capability) bool {
	_, ok := c[capability]
	return ok
}

// Grant adds a capability to the set.
func (c Capabilities) Grant(capability Capability) {
	c[capability] = struct{}{}
}

// Revoke removes a capability from the set.
func (c Capabilities) Revoke(capability Capability) {
	delete(c, capability)
}

// Tenant is an account in the system. Client-role tenants are the subjects
// of automatic parking assignment at admission time.
type Tenant struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Capabilities Capabilities
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTenant creates an active tenant with an empty capability set.
// The password hash is set by the registration service before persisting.
func NewTenant(id, username, email string, role Role) Tenant {
	now := time.Now().UTC()
	return Tenant{
		ID:           id,
		Username:     username,
		Email:        email,
		Role:         role,
		Capabilities: make(Capabilities),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
