package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// Compile-time check: Validator implements domain.TransitionValidator.
var _ domain.TransitionValidator = (*Validator)(nil)

// apartmentEvents and parkingEvents convert the domain transition tables
// into looplab/fsm EventDesc format. Transitions sharing event+destination
// are consolidated into a single EventDesc with multiple source states
// (e.g., EventOccupy reaches "occupied" from both "available" and
// "reserved").
var (
	apartmentEvents = buildEvents(apartmentDescs())
	parkingEvents   = buildEvents(parkingDescs())
)

type transitionDesc struct {
	event string
	src   string
	dst   string
}

func apartmentDescs() []transitionDesc {
	out := make([]transitionDesc, 0, len(domain.ApartmentTransitions))
	for _, t := range domain.ApartmentTransitions {
		out = append(out, transitionDesc{event: string(t.Event), src: string(t.Src), dst: string(t.Dst)})
	}
	return out
}

func parkingDescs() []transitionDesc {
	out := make([]transitionDesc, 0, len(domain.ParkingTransitions))
	for _, t := range domain.ParkingTransitions {
		out = append(out, transitionDesc{event: string(t.Event), src: string(t.Src), dst: string(t.Dst)})
	}
	return out
}

func buildEvents(descs []transitionDesc) []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, d := range descs {
		k := key{event: d.event, dst: d.dst}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], d.src)
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// Validator implements domain.TransitionValidator using looplab/fsm.
// It creates a short-lived FSM instance per Apply call, initialized with
// the resource's current status. This is necessary because looplab/fsm is
// stateful (it tracks the current state internally).
type Validator struct{}

// New creates a new FSM-backed transition validator.
func New() *Validator {
	return &Validator{}
}

// ApplyApartment checks if the event is valid from the current apartment
// status and returns the destination status.
func (v *Validator) ApplyApartment(ctx context.Context, current domain.ApartmentStatus, event domain.ApartmentEvent) (domain.ApartmentStatus, error) {
	dst, err := apply(ctx, apartmentEvents, "apartment", string(current), string(event))
	if err != nil {
		return "", err
	}
	return domain.ApartmentStatus(dst), nil
}

// ApplyParking checks if the event is valid from the current parking status
// and returns the destination status.
func (v *Validator) ApplyParking(ctx context.Context, current domain.ParkingStatus, event domain.ParkingEvent) (domain.ParkingStatus, error) {
	dst, err := apply(ctx, parkingEvents, "parking space", string(current), string(event))
	if err != nil {
		return "", err
	}
	return domain.ParkingStatus(dst), nil
}

func apply(ctx context.Context, events []loopfsm.EventDesc, entity, current, event string) (string, error) {
	machine := loopfsm.NewFSM(current, events, nil)

	if err := machine.Event(ctx, event); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return "", &domain.TransitionError{
				Entity:    entity,
				Current:   current,
				Requested: event,
			}
		}
		return "", err
	}

	return machine.Current(), nil
}
