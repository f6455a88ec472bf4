package domain_test

import (
	"testing"

	"github.com/parkhaus/parkhaus/internal/domain"
)

func TestDuplicateIdentityError_Error(t *testing.T) {
	err := &domain.DuplicateIdentityError{Field: "username", Value: "john.doe"}
	want := `username "john.doe" is already in use`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := &domain.TransitionError{
		Entity:    "apartment",
		Current:   string(domain.ApartmentSold),
		Requested: string(domain.ApartmentAvailable),
	}
	want := `apartment cannot move from "sold" to "available"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAlreadyAssignedError_Error(t *testing.T) {
	err := &domain.AlreadyAssignedError{SpaceNumber: "P-002", Status: domain.ParkingOccupied}
	want := `parking space "P-002" is occupied and cannot be assigned`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
