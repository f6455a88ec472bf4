package app

import (
	"context"
	"fmt"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// ParkingService orchestrates the parking space catalog and its
// occupancy lifecycle. Claims and releases driven by tenant admission go
// through the AssignmentEngine; this service covers administrative
// status changes, which carry the assignment in the same write.
type ParkingService struct {
	repo      domain.ParkingRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
}

// NewParkingService creates a service with the given adapters.
func NewParkingService(repo domain.ParkingRepository, validator domain.TransitionValidator, publisher domain.EventPublisher) *ParkingService {
	return &ParkingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
	}
}

// CreateParkingParams carries the fields of a new parking space.
type CreateParkingParams struct {
	SpaceNumber      string
	Location         string
	MonthlyFeeCents  int64
	Type             domain.ParkingType
	Covered          bool
	ElectricCharging bool
	MaxVehicleLength float64
	MaxVehicleWidth  float64
	Notes            string
}

// Create persists a new available space. Space numbers are unique; a
// collision surfaces as *SpaceNumberConflictError.
func (s *ParkingService) Create(ctx context.Context, params CreateParkingParams) (domain.ParkingSpace, error) {
	id, err := generateID()
	if err != nil {
		return domain.ParkingSpace{}, fmt.Errorf("generating parking space id: %w", err)
	}

	space := domain.NewParkingSpace(id, params.SpaceNumber, params.Type, params.MonthlyFeeCents)
	space.Location = params.Location
	space.Covered = params.Covered
	space.ElectricCharging = params.ElectricCharging
	space.MaxVehicleLength = params.MaxVehicleLength
	space.MaxVehicleWidth = params.MaxVehicleWidth
	space.Notes = params.Notes

	if err := s.repo.Create(ctx, space); err != nil {
		return domain.ParkingSpace{}, err
	}
	return space, nil
}

// GetByID returns a space by its unique identifier.
func (s *ParkingService) GetByID(ctx context.Context, id string) (domain.ParkingSpace, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns spaces matching the given filter.
func (s *ParkingService) List(ctx context.Context, filter domain.ParkingFilter) ([]domain.ParkingSpace, error) {
	return s.repo.List(ctx, filter)
}

// Count returns the total number of spaces.
func (s *ParkingService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ChangeStatus moves a space to the requested target status. Moving into
// occupied or reserved requires a tenant and records the assignment in
// the same persisted write; moving out clears it the same way, so the
// status/assignment pair never splits.
func (s *ParkingService) ChangeStatus(ctx context.Context, id string, target domain.ParkingStatus, tenantID string) (domain.ParkingSpace, error) {
	space, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ParkingSpace{}, err
	}

	event, err := domain.ParkingEventFor(space.Status, target)
	if err != nil {
		return domain.ParkingSpace{}, err
	}

	newStatus, err := s.validator.ApplyParking(ctx, space.Status, event)
	if err != nil {
		return domain.ParkingSpace{}, err
	}

	if newStatus.RequiresAssignment() {
		if tenantID == "" {
			// Keep the current tenant on reserved -> occupied.
			if space.TenantID == "" {
				return domain.ParkingSpace{}, domain.ErrTenantRequired
			}
			tenantID = space.TenantID
		}
		space.TenantID = tenantID
	} else {
		space.TenantID = ""
	}
	space.Status = newStatus

	if err := s.repo.Update(ctx, space); err != nil {
		return domain.ParkingSpace{}, fmt.Errorf("updating parking space: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventParkingStatusChanged, domain.EventPayload{
		TenantID:    space.TenantID,
		SpaceID:     space.ID,
		SpaceNumber: space.SpaceNumber,
		Status:      string(space.Status),
	}); err != nil {
		return space, fmt.Errorf("publishing status event: %w", err)
	}
	return space, nil
}
