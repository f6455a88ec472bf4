package app_test

import (
	"context"
	"sort"
	"sync"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// --- Mocks ---

// memTenants is an in-memory TenantRepository. Setting failErr makes
// every call fail with it, which stands in for an unreachable store.
type memTenants struct {
	mu      sync.Mutex
	tenants map[string]domain.Tenant
	failErr error
}

func newMemTenants() *memTenants {
	return &memTenants{tenants: make(map[string]domain.Tenant)}
}

func (m *memTenants) Create(_ context.Context, t domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	for _, existing := range m.tenants {
		if existing.Username == t.Username {
			return &domain.DuplicateIdentityError{Field: "username", Value: t.Username}
		}
		if existing.Email == t.Email {
			return &domain.DuplicateIdentityError{Field: "email", Value: t.Email}
		}
	}
	m.tenants[t.ID] = t
	return nil
}

func (m *memTenants) GetByID(_ context.Context, id string) (domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return domain.Tenant{}, m.failErr
	}
	t, ok := m.tenants[id]
	if !ok {
		return domain.Tenant{}, domain.ErrTenantNotFound
	}
	return t, nil
}

func (m *memTenants) GetByUsername(_ context.Context, username string) (domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return domain.Tenant{}, m.failErr
	}
	for _, t := range m.tenants {
		if t.Username == username {
			return t, nil
		}
	}
	return domain.Tenant{}, domain.ErrTenantNotFound
}

func (m *memTenants) List(_ context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := make([]domain.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		if filter.Role != nil && t.Role != *filter.Role {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memTenants) Update(_ context.Context, t domain.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.tenants[t.ID]; !ok {
		return domain.ErrTenantNotFound
	}
	m.tenants[t.ID] = t
	return nil
}

func (m *memTenants) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	return int64(len(m.tenants)), nil
}

// memApartments is an in-memory ApartmentRepository.
type memApartments struct {
	mu         sync.Mutex
	apartments map[string]domain.Apartment
}

func newMemApartments() *memApartments {
	return &memApartments{apartments: make(map[string]domain.Apartment)}
}

func (m *memApartments) Create(_ context.Context, a domain.Apartment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apartments[a.ID] = a
	return nil
}

func (m *memApartments) GetByID(_ context.Context, id string) (domain.Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apartments[id]
	if !ok {
		return domain.Apartment{}, domain.ErrApartmentNotFound
	}
	return a, nil
}

func (m *memApartments) List(_ context.Context, filter domain.ApartmentFilter) ([]domain.Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Apartment, 0, len(m.apartments))
	for _, a := range m.apartments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.OwnerID != "" && a.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memApartments) Update(_ context.Context, a domain.Apartment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apartments[a.ID]; !ok {
		return domain.ErrApartmentNotFound
	}
	m.apartments[a.ID] = a
	return nil
}

func (m *memApartments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apartments[id]; !ok {
		return domain.ErrApartmentNotFound
	}
	delete(m.apartments, id)
	return nil
}

func (m *memApartments) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.apartments)), nil
}

// memParking is an in-memory ParkingRepository. Claim mirrors the
// store's conditional write: it succeeds only when the space is still
// available and unassigned, under a single lock, so concurrent callers
// race exactly as they would against the real database.
type memParking struct {
	mu     sync.Mutex
	spaces map[string]domain.ParkingSpace
}

func newMemParking() *memParking {
	return &memParking{spaces: make(map[string]domain.ParkingSpace)}
}

func (m *memParking) Create(_ context.Context, p domain.ParkingSpace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.spaces {
		if existing.SpaceNumber == p.SpaceNumber {
			return &domain.SpaceNumberConflictError{SpaceNumber: p.SpaceNumber}
		}
	}
	m.spaces[p.ID] = p
	return nil
}

func (m *memParking) GetByID(_ context.Context, id string) (domain.ParkingSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.spaces[id]
	if !ok {
		return domain.ParkingSpace{}, domain.ErrParkingSpaceNotFound
	}
	return p, nil
}

func (m *memParking) GetBySpaceNumber(_ context.Context, spaceNumber string) (domain.ParkingSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.spaces {
		if p.SpaceNumber == spaceNumber {
			return p, nil
		}
	}
	return domain.ParkingSpace{}, domain.ErrParkingSpaceNotFound
}

func (m *memParking) List(_ context.Context, filter domain.ParkingFilter) ([]domain.ParkingSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ParkingSpace, 0, len(m.spaces))
	for _, p := range m.spaces {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.TenantID != "" && p.TenantID != filter.TenantID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpaceNumber < out[j].SpaceNumber })
	return out, nil
}

func (m *memParking) AvailableUnassigned(_ context.Context) ([]domain.ParkingSpace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ParkingSpace, 0, len(m.spaces))
	for _, p := range m.spaces {
		if p.Status == domain.ParkingAvailable && p.TenantID == "" {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpaceNumber < out[j].SpaceNumber })
	return out, nil
}

func (m *memParking) Claim(_ context.Context, spaceID, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.spaces[spaceID]
	if !ok {
		return domain.ErrParkingSpaceNotFound
	}
	if p.Status != domain.ParkingAvailable || p.TenantID != "" {
		return domain.ErrSpaceClaimed
	}
	p.Status = domain.ParkingOccupied
	p.TenantID = tenantID
	m.spaces[spaceID] = p
	return nil
}

func (m *memParking) Release(_ context.Context, spaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.spaces[spaceID]
	if !ok {
		return domain.ErrParkingSpaceNotFound
	}
	p.Status = domain.ParkingAvailable
	p.TenantID = ""
	m.spaces[spaceID] = p
	return nil
}

func (m *memParking) Update(_ context.Context, p domain.ParkingSpace) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spaces[p.ID]; !ok {
		return domain.ErrParkingSpaceNotFound
	}
	m.spaces[p.ID] = p
	return nil
}

func (m *memParking) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.spaces)), nil
}

// memPublisher records published events.
type memPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	event   domain.Event
	payload domain.EventPayload
}

func (m *memPublisher) Publish(_ context.Context, e domain.Event, payload domain.EventPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{event: e, payload: payload})
	return nil
}

func (m *memPublisher) byEvent(e domain.Event) []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []publishedEvent
	for _, p := range m.events {
		if p.event == e {
			out = append(out, p)
		}
	}
	return out
}

// fakeHasher avoids bcrypt cost in tests.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (fakeHasher) Verify(plaintext, hash string) bool { return hash == "hashed:"+plaintext }
