package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// TenantService orchestrates tenant admission and account management.
type TenantService struct {
	repo      domain.TenantRepository
	hasher    domain.PasswordHasher
	publisher domain.EventPublisher
	engine    *AssignmentEngine
}

// NewTenantService creates a service with the given adapters.
func NewTenantService(repo domain.TenantRepository, hasher domain.PasswordHasher, publisher domain.EventPublisher, engine *AssignmentEngine) *TenantService {
	return &TenantService{
		repo:      repo,
		hasher:    hasher,
		publisher: publisher,
		engine:    engine,
	}
}

// RegisterParams carries the fields of an admission request.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      domain.Role
}

// Register admits a new tenant. Username and email uniqueness are
// enforced by the store; a collision surfaces as *DuplicateIdentityError
// with nothing persisted.
//
// Client-role tenants get a parking space assigned right after
// admission. Assignment is strictly best-effort: once the tenant row is
// durable, no assignment failure rolls it back.
func (s *TenantService) Register(ctx context.Context, params RegisterParams) (domain.Tenant, domain.AssignmentOutcome, error) {
	id, err := generateID()
	if err != nil {
		return domain.Tenant{}, domain.AssignmentOutcome{}, fmt.Errorf("generating tenant id: %w", err)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return domain.Tenant{}, domain.AssignmentOutcome{}, fmt.Errorf("hashing password: %w", err)
	}

	tenant := domain.NewTenant(id, params.Username, params.Email, params.Role)
	tenant.PasswordHash = hash
	tenant.FirstName = params.FirstName
	tenant.LastName = params.LastName
	tenant.Phone = params.Phone

	if err := s.repo.Create(ctx, tenant); err != nil {
		return domain.Tenant{}, domain.AssignmentOutcome{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventTenantAdmitted, domain.EventPayload{
		TenantID: tenant.ID,
		Username: tenant.Username,
	}); err != nil {
		slog.WarnContext(ctx, "publishing admission event failed",
			slog.String("username", tenant.Username),
			slog.Any("error", err))
	}

	outcome := domain.NotAssigned(domain.AssignmentNoCapacity)
	if tenant.Role == domain.RoleClient {
		outcome, err = s.engine.AssignOnAdmission(ctx, tenant)
		if err != nil {
			// The admission already succeeded; a store failure during
			// assignment counts as a contended attempt, not a rollback.
			slog.WarnContext(ctx, "admission assignment failed",
				slog.String("username", tenant.Username),
				slog.Any("error", err))
			outcome = domain.NotAssigned(domain.AssignmentContention)
		}
	}

	return tenant, outcome, nil
}

// Authenticate verifies a username and password pair against the store.
// Unknown usernames and wrong passwords both come back as
// ErrTenantNotFound so callers cannot probe which usernames exist.
func (s *TenantService) Authenticate(ctx context.Context, username, password string) (domain.Tenant, error) {
	tenant, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Tenant{}, err
	}
	if !tenant.Active || !s.hasher.Verify(password, tenant.PasswordHash) {
		return domain.Tenant{}, domain.ErrTenantNotFound
	}
	return tenant, nil
}

// GetByID returns a tenant by its unique identifier.
func (s *TenantService) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUsername returns a tenant by its username.
func (s *TenantService) GetByUsername(ctx context.Context, username string) (domain.Tenant, error) {
	return s.repo.GetByUsername(ctx, username)
}

// List returns tenants matching the given filter.
func (s *TenantService) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	return s.repo.List(ctx, filter)
}

// SetActive activates or deactivates an account.
func (s *TenantService) SetActive(ctx context.Context, id string, active bool) (domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}
	tenant.Active = active
	if err := s.repo.Update(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("updating tenant: %w", err)
	}
	return tenant, nil
}

// GrantCapability adds a management capability to an account.
func (s *TenantService) GrantCapability(ctx context.Context, id string, capability domain.Capability) (domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}
	tenant.Capabilities.Grant(capability)
	if err := s.repo.Update(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("updating tenant: %w", err)
	}
	return tenant, nil
}

// RevokeCapability removes a management capability from an account.
func (s *TenantService) RevokeCapability(ctx context.Context, id string, capability domain.Capability) (domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}
	tenant.Capabilities.Revoke(capability)
	if err := s.repo.Update(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("updating tenant: %w", err)
	}
	return tenant, nil
}
