package fsm_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/parkhaus/parkhaus/internal/adapter/fsm"
	"github.com/parkhaus/parkhaus/internal/domain"
)

func TestValidator_AllApartmentTransitions(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, tr := range domain.ApartmentTransitions {
		dst, err := v.ApplyApartment(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("ApplyApartment(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("ApplyApartment(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestValidator_AllParkingTransitions(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, tr := range domain.ParkingTransitions {
		dst, err := v.ApplyParking(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("ApplyParking(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("ApplyParking(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestValidator_SoldIsTerminal(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, event := range []domain.ApartmentEvent{
		domain.EventPlaceUnderContract,
		domain.EventCompleteSale,
		domain.EventContractFallsThrough,
	} {
		_, err := v.ApplyApartment(ctx, domain.ApartmentSold, event)
		var trErr *domain.TransitionError
		if !errors.As(err, &trErr) {
			t.Errorf("ApplyApartment(sold, %q) = %v, want TransitionError", event, err)
		}
	}
}

func TestValidator_InvalidParkingTransition(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// A space under maintenance cannot be occupied directly.
	_, err := v.ApplyParking(ctx, domain.ParkingMaintenance, domain.EventOccupy)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Current != string(domain.ParkingMaintenance) {
		t.Errorf("current = %q, want %q", trErr.Current, domain.ParkingMaintenance)
	}
}

func TestValidator_OccupyFromReserved(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// Occupy is valid from both "available" and "reserved".
	got, err := v.ApplyParking(ctx, domain.ParkingReserved, domain.EventOccupy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.ParkingOccupied {
		t.Errorf("got %q, want %q", got, domain.ParkingOccupied)
	}
}

func TestValidator_FullParkingLifecycle(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	steps := []struct {
		from  domain.ParkingStatus
		event domain.ParkingEvent
		want  domain.ParkingStatus
	}{
		{domain.ParkingAvailable, domain.EventReserve, domain.ParkingReserved},
		{domain.ParkingReserved, domain.EventOccupy, domain.ParkingOccupied},
		{domain.ParkingOccupied, domain.EventVacate, domain.ParkingAvailable},
		{domain.ParkingAvailable, domain.EventBeginMaintenance, domain.ParkingMaintenance},
		{domain.ParkingMaintenance, domain.EventEndMaintenance, domain.ParkingAvailable},
	}

	for _, step := range steps {
		got, err := v.ApplyParking(ctx, step.from, step.event)
		if err != nil {
			t.Fatalf("ApplyParking(%q, %q) error: %v", step.from, step.event, err)
		}
		if got != step.want {
			t.Errorf("ApplyParking(%q, %q) = %q, want %q", step.from, step.event, got, step.want)
		}
	}
}
