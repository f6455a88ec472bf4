package domain

import "time"

// ParkingStatus represents the occupancy state of a parking space.
type ParkingStatus string

const (
	ParkingAvailable   ParkingStatus = "available"
	ParkingOccupied    ParkingStatus = "occupied"
	ParkingReserved    ParkingStatus = "reserved"
	ParkingMaintenance ParkingStatus = "maintenance"
)

// ParkingType classifies the physical kind of a parking space.
type ParkingType string

const (
	ParkingStandard   ParkingType = "standard"
	ParkingCompact    ParkingType = "compact"
	ParkingLarge      ParkingType = "large"
	ParkingHandicap   ParkingType = "handicap"
	ParkingMotorcycle ParkingType = "motorcycle"
	ParkingElectric   ParkingType = "electric"
	ParkingPremium    ParkingType = "premium"
)

// ParkingEvent is an action that moves a parking space through its lifecycle.
type ParkingEvent string

const (
	EventOccupy            ParkingEvent = "occupy"
	EventReserve           ParkingEvent = "reserve"
	EventVacate            ParkingEvent = "vacate"
	EventCancelReservation ParkingEvent = "cancel_reservation"
	EventBeginMaintenance  ParkingEvent = "begin_maintenance"
	EventEndMaintenance    ParkingEvent = "end_maintenance"
)

// ParkingTransition defines a valid state change for parking spaces.
type ParkingTransition struct {
	Event ParkingEvent
	Src   ParkingStatus
	Dst   ParkingStatus
}

// ParkingTransitions defines all valid parking state changes. A transition
// into occupied or reserved must set the tenant assignment in the same
// persisted update; a transition out of them must clear it.
var ParkingTransitions = []ParkingTransition{
	{Event: EventOccupy, Src: ParkingAvailable, Dst: ParkingOccupied},
	{Event: EventOccupy, Src: ParkingReserved, Dst: ParkingOccupied},
	{Event: EventReserve, Src: ParkingAvailable, Dst: ParkingReserved},
	{Event: EventVacate, Src: ParkingOccupied, Dst: ParkingAvailable},
	{Event: EventCancelReservation, Src: ParkingReserved, Dst: ParkingAvailable},
	{Event: EventBeginMaintenance, Src: ParkingAvailable, Dst: ParkingMaintenance},
	{Event: EventEndMaintenance, Src: ParkingMaintenance, Dst: ParkingAvailable},
}

// ParkingEventFor resolves a requested target status into the lifecycle
// event that reaches it from the current status.
func ParkingEventFor(current, target ParkingStatus) (ParkingEvent, error) {
	for _, t := range ParkingTransitions {
		if t.Src == current && t.Dst == target {
			return t.Event, nil
		}
	}
	return "", &TransitionError{Entity: "parking space", Current: string(current), Requested: string(target)}
}

// RequiresAssignment reports whether a space in the given status must carry
// a tenant assignment. Available and maintenance imply no assignment.
func (s ParkingStatus) RequiresAssignment() bool {
	return s == ParkingOccupied || s == ParkingReserved
}

// ParkingSpace is a rentable parking space. The tenant reference is weak:
// the space does not own the tenant's lifecycle, and the assignment can be
// created and cleared independently of the space itself.
type ParkingSpace struct {
	ID               string
	SpaceNumber      string
	Location         string
	MonthlyFeeCents  int64
	Type             ParkingType
	Status           ParkingStatus
	Covered          bool
	ElectricCharging bool
	MaxVehicleLength float64
	MaxVehicleWidth  float64
	Notes            string
	TenantID         string // empty when unassigned
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewParkingSpace creates an available, unassigned space.
func NewParkingSpace(id, spaceNumber string, typ ParkingType, monthlyFeeCents int64) ParkingSpace {
	now := time.Now().UTC()
	return ParkingSpace{
		ID:              id,
		SpaceNumber:     spaceNumber,
		Type:            typ,
		MonthlyFeeCents: monthlyFeeCents,
		Status:          ParkingAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
