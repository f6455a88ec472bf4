package domain_test

import (
	"errors"
	"testing"

	"github.com/parkhaus/parkhaus/internal/domain"
)

func TestApartmentEventFor_ValidPaths(t *testing.T) {
	cases := []struct {
		current domain.ApartmentStatus
		target  domain.ApartmentStatus
		want    domain.ApartmentEvent
	}{
		{domain.ApartmentAvailable, domain.ApartmentUnderContract, domain.EventPlaceUnderContract},
		{domain.ApartmentUnderContract, domain.ApartmentSold, domain.EventCompleteSale},
		{domain.ApartmentUnderContract, domain.ApartmentAvailable, domain.EventContractFallsThrough},
	}

	for _, tc := range cases {
		got, err := domain.ApartmentEventFor(tc.current, tc.target)
		if err != nil {
			t.Errorf("ApartmentEventFor(%q, %q) unexpected error: %v", tc.current, tc.target, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ApartmentEventFor(%q, %q) = %q, want %q", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestApartmentEventFor_SoldIsTerminal(t *testing.T) {
	for _, target := range []domain.ApartmentStatus{domain.ApartmentAvailable, domain.ApartmentUnderContract} {
		_, err := domain.ApartmentEventFor(domain.ApartmentSold, target)
		var trErr *domain.TransitionError
		if !errors.As(err, &trErr) {
			t.Errorf("ApartmentEventFor(sold, %q) = %v, want TransitionError", target, err)
		}
	}
}

func TestApartmentEventFor_SkippingContractFails(t *testing.T) {
	// A sale cannot complete straight from available.
	_, err := domain.ApartmentEventFor(domain.ApartmentAvailable, domain.ApartmentSold)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Current != string(domain.ApartmentAvailable) {
		t.Errorf("Current = %q, want %q", trErr.Current, domain.ApartmentAvailable)
	}
}

func TestNewApartment(t *testing.T) {
	apt := domain.NewApartment("a-1", "Luxury Downtown Apartment", 75000000)

	if apt.Status != domain.ApartmentAvailable {
		t.Errorf("Status = %q, want %q", apt.Status, domain.ApartmentAvailable)
	}
	if apt.OwnerID != "" {
		t.Errorf("OwnerID = %q, want empty", apt.OwnerID)
	}
	if apt.UpdatedAt != apt.CreatedAt {
		t.Error("UpdatedAt should equal CreatedAt on a new apartment")
	}
}
