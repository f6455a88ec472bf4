package domain

import "context"

// TenantRepository defines the persistence contract for tenants.
// Username and email uniqueness are enforced by the store itself; Create
// surfaces a *DuplicateIdentityError on collision.
type TenantRepository interface {
	Create(ctx context.Context, tenant Tenant) error
	GetByID(ctx context.Context, id string) (Tenant, error)
	GetByUsername(ctx context.Context, username string) (Tenant, error)
	List(ctx context.Context, filter TenantFilter) ([]Tenant, error)
	Update(ctx context.Context, tenant Tenant) error
	Count(ctx context.Context) (int64, error)
}

// TenantFilter holds optional criteria for listing tenants.
type TenantFilter struct {
	Role   *Role
	Active *bool
	Limit  int
	Offset int
}

// ApartmentRepository defines the persistence contract for apartments.
type ApartmentRepository interface {
	Create(ctx context.Context, apartment Apartment) error
	GetByID(ctx context.Context, id string) (Apartment, error)
	List(ctx context.Context, filter ApartmentFilter) ([]Apartment, error)
	Update(ctx context.Context, apartment Apartment) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ApartmentFilter holds optional criteria for listing apartments.
type ApartmentFilter struct {
	Status  *ApartmentStatus
	OwnerID string
	Limit   int
	Offset  int
}

// ParkingRepository defines the persistence contract for parking spaces.
//
// Claim is the exclusivity point of the assignment engine: it must set the
// status to occupied and the tenant in a single conditional write that
// succeeds only if the space is still available and unassigned, returning
// ErrSpaceClaimed otherwise. Update persists status and assignment as one
// write so the status/assignment invariant never splits.
type ParkingRepository interface {
	Create(ctx context.Context, space ParkingSpace) error
	GetByID(ctx context.Context, id string) (ParkingSpace, error)
	GetBySpaceNumber(ctx context.Context, spaceNumber string) (ParkingSpace, error)
	List(ctx context.Context, filter ParkingFilter) ([]ParkingSpace, error)
	AvailableUnassigned(ctx context.Context) ([]ParkingSpace, error)
	Claim(ctx context.Context, spaceID, tenantID string) error
	Release(ctx context.Context, spaceID string) error
	Update(ctx context.Context, space ParkingSpace) error
	Count(ctx context.Context) (int64, error)
}

// ParkingFilter holds optional criteria for listing parking spaces.
// AvailableUnassigned ordering (ascending space number) is part of the
// contract; List follows the same order.
type ParkingFilter struct {
	Status   *ParkingStatus
	TenantID string
	Limit    int
	Offset   int
}

// TransitionValidator validates lifecycle transitions for both resource
// kinds. It returns the destination status, or a *TransitionError when the
// event is not legal from the current status. It performs no I/O.
type TransitionValidator interface {
	ApplyApartment(ctx context.Context, current ApartmentStatus, event ApartmentEvent) (ApartmentStatus, error)
	ApplyParking(ctx context.Context, current ParkingStatus, event ParkingEvent) (ParkingStatus, error)
}

// PasswordHasher is the one-way credential transform applied at the
// registration boundary.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Event identifies a domain event emitted to the async queue.
type Event string

const (
	EventTenantAdmitted         Event = "tenant.admitted"
	EventParkingAssigned        Event = "parking.assigned"
	EventParkingReleased        Event = "parking.released"
	EventParkingStatusChanged   Event = "parking.status_changed"
	EventApartmentStatusChanged Event = "apartment.status_changed"
)

// EventPayload carries a snapshot of the entities involved in an event, so
// consumers never need to query the store.
type EventPayload struct {
	TenantID    string `json:"tenant_id,omitempty"`
	Username    string `json:"username,omitempty"`
	SpaceID     string `json:"space_id,omitempty"`
	SpaceNumber string `json:"space_number,omitempty"`
	ApartmentID string `json:"apartment_id,omitempty"`
	Status      string `json:"status,omitempty"`
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, payload EventPayload) error
}
