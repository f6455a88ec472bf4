package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// seedState tracks the seeder through a run. The state lives on the
// Seeder instance, never in a global, so tests can run seeders
// side by side.
type seedState int

const (
	seedNotStarted seedState = iota
	seedWaitingForStore
	seedSeeding
	seedDone
)

// SeederConfig tunes the bootstrap seeder. Zero values fall back to the
// defaults applied by NewSeeder.
type SeederConfig struct {
	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
	ProbeAttempts  int
	CreateAttempts int
	RetryDelay     time.Duration
}

const (
	defaultAdminUsername  = "admin"
	defaultAdminEmail     = "admin@parkhaus.local"
	defaultProbeAttempts  = 3
	defaultCreateAttempts = 3
	defaultRetryDelay     = 2 * time.Second
)

// Seeder populates a fresh store with the admin account and a baseline
// catalog of sample tenants, apartments and parking spaces. Every run is
// re-entrant: a store that already carries the data is left alone, and a
// store that is not reachable defers the run instead of failing startup.
type Seeder struct {
	tenants    domain.TenantRepository
	apartments domain.ApartmentRepository
	parking    domain.ParkingRepository
	hasher     domain.PasswordHasher
	cfg        SeederConfig

	mu    sync.Mutex
	state seedState
}

// NewSeeder creates a seeder over the given repositories.
func NewSeeder(tenants domain.TenantRepository, apartments domain.ApartmentRepository, parking domain.ParkingRepository, hasher domain.PasswordHasher, cfg SeederConfig) *Seeder {
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = defaultAdminUsername
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = defaultAdminEmail
	}
	if cfg.ProbeAttempts <= 0 {
		cfg.ProbeAttempts = defaultProbeAttempts
	}
	if cfg.CreateAttempts <= 0 {
		cfg.CreateAttempts = defaultCreateAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &Seeder{
		tenants:    tenants,
		apartments: apartments,
		parking:    parking,
		hasher:     hasher,
		cfg:        cfg,
		state:      seedNotStarted,
	}
}

// EnsureSeeded brings the store to the seeded baseline. It returns
// SeedSeeded when this run created the admin account, SeedAlreadySeeded
// when a previous run (or another instance) did, and SeedDeferred when
// the store could not be reached or the admin account could not be
// created; a deferred run resets to the initial state and is safe to
// repeat on the next startup. The returned error is non-nil only when
// the context was canceled.
func (s *Seeder) EnsureSeeded(ctx context.Context) (domain.SeedOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == seedDone {
		return domain.SeedOutcome{Result: domain.SeedAlreadySeeded}, nil
	}

	s.state = seedWaitingForStore
	if err := s.probeStore(ctx); err != nil {
		s.state = seedNotStarted
		if ctx.Err() != nil {
			return domain.SeedOutcome{Result: domain.SeedDeferred, Reason: "canceled"}, ctx.Err()
		}
		slog.WarnContext(ctx, "store not ready, deferring seed", slog.Any("error", err))
		return domain.SeedOutcome{Result: domain.SeedDeferred, Reason: "store unavailable"}, nil
	}

	s.state = seedSeeding

	exists, err := s.adminExists(ctx)
	if err != nil {
		s.state = seedNotStarted
		if ctx.Err() != nil {
			return domain.SeedOutcome{Result: domain.SeedDeferred, Reason: "canceled"}, ctx.Err()
		}
		slog.WarnContext(ctx, "admin lookup failed, deferring seed", slog.Any("error", err))
		return domain.SeedOutcome{Result: domain.SeedDeferred, Reason: "store unavailable"}, nil
	}

	if exists {
		// Another instance seeded the accounts. Resources may still be
		// missing, so top those up on their own count checks.
		s.ensureBaselineResources(ctx)
		s.state = seedDone
		return domain.SeedOutcome{Result: domain.SeedAlreadySeeded}, nil
	}

	if !s.createAdmin(ctx) {
		s.state = seedNotStarted
		if ctx.Err() != nil {
			return domain.SeedOutcome{Result: domain.SeedDeferred, Reason: "canceled"}, ctx.Err()
		}
		return domain.SeedOutcome{Result: domain.SeedDeferred, Reason: "admin account could not be created"}, nil
	}

	s.seedSampleTenants(ctx)
	s.ensureBaselineResources(ctx)

	s.state = seedDone
	slog.InfoContext(ctx, "sample data seeded",
		slog.String("admin_username", s.cfg.AdminUsername))
	return domain.SeedOutcome{Result: domain.SeedSeeded}, nil
}

// probeStore checks that the store answers queries, retrying a bounded
// number of times.
func (s *Seeder) probeStore(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= s.cfg.ProbeAttempts; attempt++ {
		var count int64
		count, err = s.tenants.Count(ctx)
		if err == nil {
			slog.DebugContext(ctx, "store ready", slog.Int64("tenant_count", count))
			return nil
		}
		slog.WarnContext(ctx, "store probe failed",
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		if attempt < s.cfg.ProbeAttempts {
			if werr := s.wait(ctx); werr != nil {
				return werr
			}
		}
	}
	return err
}

// adminExists looks up the admin account. A clean not-found answer is
// definitive; only lookup errors are retried across short waits.
func (s *Seeder) adminExists(ctx context.Context) (bool, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.CreateAttempts; attempt++ {
		_, err := s.tenants.GetByUsername(ctx, s.cfg.AdminUsername)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, domain.ErrTenantNotFound) {
			return false, nil
		}
		lastErr = err
		if attempt < s.cfg.CreateAttempts {
			if werr := s.wait(ctx); werr != nil {
				return false, werr
			}
		}
	}
	return false, lastErr
}

// createAdmin creates the admin account with bounded retries. A
// duplicate identity answer means another instance won the race, which
// counts as success.
func (s *Seeder) createAdmin(ctx context.Context) bool {
	for attempt := 1; attempt <= s.cfg.CreateAttempts; attempt++ {
		if _, err := s.tenants.GetByUsername(ctx, s.cfg.AdminUsername); err == nil {
			slog.InfoContext(ctx, "admin account appeared, skipping creation",
				slog.Int("attempt", attempt))
			return true
		}

		err := s.createTenant(ctx, sampleTenant{
			username:  s.cfg.AdminUsername,
			email:     s.cfg.AdminEmail,
			password:  s.cfg.AdminPassword,
			firstName: "Admin",
			lastName:  "User",
			phone:     "(555) 123-4567",
			role:      domain.RoleAdmin,
		})
		if err == nil {
			slog.InfoContext(ctx, "admin account created", slog.Int("attempt", attempt))
			return true
		}
		var dup *domain.DuplicateIdentityError
		if errors.As(err, &dup) {
			slog.InfoContext(ctx, "admin account created elsewhere", slog.Int("attempt", attempt))
			return true
		}

		slog.WarnContext(ctx, "creating admin account failed",
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		if attempt < s.cfg.CreateAttempts {
			if werr := s.wait(ctx); werr != nil {
				return false
			}
		}
	}
	return false
}

// seedSampleTenants creates the demo client accounts. Failures here are
// logged and skipped: the baseline resources tolerate missing owners.
func (s *Seeder) seedSampleTenants(ctx context.Context) {
	for _, t := range sampleTenants {
		if _, err := s.tenants.GetByUsername(ctx, t.username); err == nil {
			continue
		}
		if err := s.createTenant(ctx, t); err != nil {
			var dup *domain.DuplicateIdentityError
			if errors.As(err, &dup) {
				continue
			}
			slog.WarnContext(ctx, "creating sample tenant failed",
				slog.String("username", t.username),
				slog.Any("error", err))
		}
	}
}

// ensureBaselineResources creates the sample apartments and parking
// spaces when their tables are empty. Each resource kind is checked on
// its own count so a partially seeded store converges.
func (s *Seeder) ensureBaselineResources(ctx context.Context) {
	if count, err := s.apartments.Count(ctx); err != nil {
		slog.WarnContext(ctx, "counting apartments failed", slog.Any("error", err))
	} else if count == 0 {
		s.seedApartments(ctx)
	}

	if count, err := s.parking.Count(ctx); err != nil {
		slog.WarnContext(ctx, "counting parking spaces failed", slog.Any("error", err))
	} else if count == 0 {
		s.seedParkingSpaces(ctx)
	}
}

func (s *Seeder) createTenant(ctx context.Context, t sampleTenant) error {
	id, err := generateID()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(t.password)
	if err != nil {
		return err
	}
	tenant := domain.NewTenant(id, t.username, t.email, t.role)
	tenant.PasswordHash = hash
	tenant.FirstName = t.firstName
	tenant.LastName = t.lastName
	tenant.Phone = t.phone
	return s.tenants.Create(ctx, tenant)
}

// tenantID resolves a seeded username to its id, tolerating absence.
func (s *Seeder) tenantID(ctx context.Context, username string) string {
	tenant, err := s.tenants.GetByUsername(ctx, username)
	if err != nil {
		return ""
	}
	return tenant.ID
}

func (s *Seeder) seedApartments(ctx context.Context) {
	johnID := s.tenantID(ctx, "john.doe")
	janeID := s.tenantID(ctx, "jane.smith")

	for _, a := range sampleApartments {
		id, err := generateID()
		if err != nil {
			slog.WarnContext(ctx, "generating apartment id failed", slog.Any("error", err))
			return
		}
		apartment := domain.NewApartment(id, a.title, a.priceCents)
		apartment.Description = a.description
		apartment.Address = a.address
		apartment.City = a.city
		apartment.State = a.state
		apartment.ZipCode = a.zipCode
		apartment.Bedrooms = a.bedrooms
		apartment.Bathrooms = a.bathrooms
		apartment.SquareFeet = a.squareFeet
		apartment.Status = a.status
		switch a.owner {
		case "john.doe":
			apartment.OwnerID = johnID
		case "jane.smith":
			apartment.OwnerID = janeID
		}
		if err := s.apartments.Create(ctx, apartment); err != nil {
			slog.WarnContext(ctx, "creating sample apartment failed",
				slog.String("title", a.title),
				slog.Any("error", err))
		}
	}
}

func (s *Seeder) seedParkingSpaces(ctx context.Context) {
	johnID := s.tenantID(ctx, "john.doe")
	janeID := s.tenantID(ctx, "jane.smith")

	for _, p := range sampleParkingSpaces {
		id, err := generateID()
		if err != nil {
			slog.WarnContext(ctx, "generating parking space id failed", slog.Any("error", err))
			return
		}
		space := domain.NewParkingSpace(id, p.spaceNumber, p.typ, p.monthlyFeeCents)
		space.Location = p.location
		space.Covered = p.covered
		space.ElectricCharging = p.electricCharging
		space.MaxVehicleLength = p.maxVehicleLength
		space.MaxVehicleWidth = p.maxVehicleWidth
		space.Notes = p.notes
		space.Status = p.status
		switch p.tenant {
		case "john.doe":
			space.TenantID = johnID
		case "jane.smith":
			space.TenantID = janeID
		}
		if err := s.parking.Create(ctx, space); err != nil {
			slog.WarnContext(ctx, "creating sample parking space failed",
				slog.String("space_number", p.spaceNumber),
				slog.Any("error", err))
		}
	}
}

// wait sleeps for the configured retry delay, honouring cancellation.
func (s *Seeder) wait(ctx context.Context) error {
	timer := time.NewTimer(s.cfg.RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
