package domain

import "time"

// ApartmentStatus represents the sale lifecycle state of an apartment listing.
type ApartmentStatus string

const (
	ApartmentAvailable     ApartmentStatus = "available"
	ApartmentUnderContract ApartmentStatus = "under_contract"
	ApartmentSold          ApartmentStatus = "sold"
)

// ApartmentEvent is an action that moves an apartment through its lifecycle.
type ApartmentEvent string

const (
	EventPlaceUnderContract   ApartmentEvent = "place_under_contract"
	EventCompleteSale         ApartmentEvent = "complete_sale"
	EventContractFallsThrough ApartmentEvent = "contract_falls_through"
)

// ApartmentTransition defines a valid state change for apartments.
type ApartmentTransition struct {
	Event ApartmentEvent
	Src   ApartmentStatus
	Dst   ApartmentStatus
}

// ApartmentTransitions defines all valid apartment state changes.
// Sold is terminal: no event leads out of it.
var ApartmentTransitions = []ApartmentTransition{
	{Event: EventPlaceUnderContract, Src: ApartmentAvailable, Dst: ApartmentUnderContract},
	{Event: EventCompleteSale, Src: ApartmentUnderContract, Dst: ApartmentSold},
	{Event: EventContractFallsThrough, Src: ApartmentUnderContract, Dst: ApartmentAvailable},
}

// ApartmentEventFor resolves a requested target status into the lifecycle
// event that reaches it from the current status. Administrative callers
// supply target statuses; the state machine operates on events.
func ApartmentEventFor(current, target ApartmentStatus) (ApartmentEvent, error) {
	for _, t := range ApartmentTransitions {
		if t.Src == current && t.Dst == target {
			return t.Event, nil
		}
	}
	return "", &TransitionError{Entity: "apartment", Current: string(current), Requested: string(target)}
}

// Apartment is a property listing. The owner reference is weak: a listing
// can exist without an owner, and the owner's lifecycle is independent.
type Apartment struct {
	ID          string
	Title       string
	Description string
	Address     string
	City        string
	State       string
	ZipCode     string
	PriceCents  int64
	Bedrooms    int
	Bathrooms   int
	SquareFeet  int
	Status      ApartmentStatus
	OwnerID     string // empty when unowned
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewApartment creates a listing in the available state.
func NewApartment(id, title string, priceCents int64) Apartment {
	now := time.Now().UTC()
	return Apartment{
		ID:         id,
		Title:      title,
		PriceCents: priceCents,
		Status:     ApartmentAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
