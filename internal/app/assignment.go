package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// defaultClaimAttempts bounds the claim retry loop. Each attempt
// re-reads the candidate list, so a lost race moves on to the next
// space instead of hammering the same row.
const defaultClaimAttempts = 3

// AssignmentEngine hands out parking spaces to client tenants. All
// exclusivity rests on the store's conditional claim: the engine never
// trusts a read, it trusts the write.
type AssignmentEngine struct {
	parking       domain.ParkingRepository
	publisher     domain.EventPublisher
	claimAttempts int
}

// NewAssignmentEngine creates an engine with the default retry bound.
func NewAssignmentEngine(parking domain.ParkingRepository, publisher domain.EventPublisher) *AssignmentEngine {
	return &AssignmentEngine{
		parking:       parking,
		publisher:     publisher,
		claimAttempts: defaultClaimAttempts,
	}
}

// AssignOnAdmission tries to give a newly admitted client tenant the
// lowest-numbered available space. It is idempotent: a tenant that
// already holds a space gets that space back without a new claim.
//
// NoCapacity and Contention outcomes are not errors; admission of the
// tenant has already succeeded and is never rolled back here.
func (e *AssignmentEngine) AssignOnAdmission(ctx context.Context, tenant domain.Tenant) (domain.AssignmentOutcome, error) {
	held, err := e.parking.List(ctx, domain.ParkingFilter{TenantID: tenant.ID})
	if err != nil {
		return domain.AssignmentOutcome{}, fmt.Errorf("checking existing assignment: %w", err)
	}
	if len(held) > 0 {
		return domain.Assigned(held[0]), nil
	}

	for attempt := 1; attempt <= e.claimAttempts; attempt++ {
		candidates, err := e.parking.AvailableUnassigned(ctx)
		if err != nil {
			return domain.AssignmentOutcome{}, fmt.Errorf("listing available spaces: %w", err)
		}
		if len(candidates) == 0 {
			return domain.NotAssigned(domain.AssignmentNoCapacity), nil
		}

		space := candidates[0]
		err = e.parking.Claim(ctx, space.ID, tenant.ID)
		if errors.Is(err, domain.ErrSpaceClaimed) || errors.Is(err, domain.ErrParkingSpaceNotFound) {
			// Lost the race for this space; re-read and try the next one.
			continue
		}
		if err != nil {
			return domain.AssignmentOutcome{}, fmt.Errorf("claiming space %s: %w", space.SpaceNumber, err)
		}

		space.Status = domain.ParkingOccupied
		space.TenantID = tenant.ID
		e.publish(ctx, domain.EventParkingAssigned, domain.EventPayload{
			TenantID:    tenant.ID,
			Username:    tenant.Username,
			SpaceID:     space.ID,
			SpaceNumber: space.SpaceNumber,
			Status:      string(space.Status),
		})
		return domain.Assigned(space), nil
	}

	return domain.NotAssigned(domain.AssignmentContention), nil
}

// ManualAssign claims a specific space for a tenant. Unlike admission
// assignment it fails loudly: assigning an already held or out-of-service
// space returns *AlreadyAssignedError.
func (e *AssignmentEngine) ManualAssign(ctx context.Context, spaceID, tenantID string) (domain.ParkingSpace, error) {
	space, err := e.parking.GetByID(ctx, spaceID)
	if err != nil {
		return domain.ParkingSpace{}, err
	}
	if space.Status != domain.ParkingAvailable || space.TenantID != "" {
		return domain.ParkingSpace{}, &domain.AlreadyAssignedError{SpaceNumber: space.SpaceNumber, Status: space.Status}
	}

	err = e.parking.Claim(ctx, spaceID, tenantID)
	if errors.Is(err, domain.ErrSpaceClaimed) {
		return domain.ParkingSpace{}, &domain.AlreadyAssignedError{SpaceNumber: space.SpaceNumber, Status: space.Status}
	}
	if err != nil {
		return domain.ParkingSpace{}, fmt.Errorf("claiming space %s: %w", space.SpaceNumber, err)
	}

	space.Status = domain.ParkingOccupied
	space.TenantID = tenantID
	e.publish(ctx, domain.EventParkingAssigned, domain.EventPayload{
		TenantID:    tenantID,
		SpaceID:     space.ID,
		SpaceNumber: space.SpaceNumber,
		Status:      string(space.Status),
	})
	return space, nil
}

// Release returns a space to the available pool and clears its
// assignment. Releasing an unassigned available space is a no-op.
func (e *AssignmentEngine) Release(ctx context.Context, spaceID string) error {
	space, err := e.parking.GetByID(ctx, spaceID)
	if err != nil {
		return err
	}
	if space.Status == domain.ParkingAvailable && space.TenantID == "" {
		return nil
	}

	if err := e.parking.Release(ctx, spaceID); err != nil {
		return fmt.Errorf("releasing space %s: %w", space.SpaceNumber, err)
	}

	e.publish(ctx, domain.EventParkingReleased, domain.EventPayload{
		TenantID:    space.TenantID,
		SpaceID:     space.ID,
		SpaceNumber: space.SpaceNumber,
		Status:      string(domain.ParkingAvailable),
	})
	return nil
}

// publish emits an event best-effort. The assignment itself is already
// durable; a queue hiccup must not undo it.
func (e *AssignmentEngine) publish(ctx context.Context, event domain.Event, payload domain.EventPayload) {
	if err := e.publisher.Publish(ctx, event, payload); err != nil {
		slog.WarnContext(ctx, "publishing event failed",
			slog.String("event", string(event)),
			slog.String("space_number", payload.SpaceNumber),
			slog.Any("error", err))
	}
}
