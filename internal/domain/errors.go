package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrApartmentNotFound    = errors.New("apartment not found")
	ErrParkingSpaceNotFound = errors.New("parking space not found")

	// ErrSpaceClaimed signals that a conditional claim found the space
	// already taken at write time. The assignment engine treats it as a
	// retry signal, never as a partial success.
	ErrSpaceClaimed = errors.New("parking space concurrently claimed")

	// ErrStoreUnavailable signals a transient persistence failure. The
	// seeder retries it with bounded backoff; everything else surfaces it.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrTenantRequired signals a status change into occupied or reserved
	// without a tenant to assign. The status/assignment invariant forbids
	// an assigned status with no assignment.
	ErrTenantRequired = errors.New("target status requires a tenant")
)

// DuplicateIdentityError is returned when a username or email is already
// in use. The store's unique constraints are the authoritative source of
// this error; services do not pre-check.
type DuplicateIdentityError struct {
	Field string // "username" or "email"
	Value string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("%s %q is already in use", e.Field, e.Value)
}

// SpaceNumberConflictError is returned when a parking space number is
// already in use.
type SpaceNumberConflictError struct {
	SpaceNumber string
}

func (e *SpaceNumberConflictError) Error() string {
	return fmt.Sprintf("space number %q is already in use", e.SpaceNumber)
}

// TransitionError is returned when a requested status change is not
// permitted from the current state. No mutation is applied.
type TransitionError struct {
	Entity    string
	Current   string
	Requested string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %q to %q", e.Entity, e.Current, e.Requested)
}

// AlreadyAssignedError is returned by manual assignment when the target
// space is not available for claiming.
type AlreadyAssignedError struct {
	SpaceNumber string
	Status      ParkingStatus
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("parking space %q is %s and cannot be assigned", e.SpaceNumber, e.Status)
}
