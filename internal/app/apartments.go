package app

import (
	"context"
	"fmt"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// ApartmentService orchestrates apartment listings and their sale
// lifecycle.
type ApartmentService struct {
	repo      domain.ApartmentRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
}

// NewApartmentService creates a service with the given adapters.
func NewApartmentService(repo domain.ApartmentRepository, validator domain.TransitionValidator, publisher domain.EventPublisher) *ApartmentService {
	return &ApartmentService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
	}
}

// CreateApartmentParams carries the fields of a new listing.
type CreateApartmentParams struct {
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
	OwnerID     string
}

// Create persists a new listing in the available state.
func (s *ApartmentService) Create(ctx context.Context, params CreateApartmentParams) (domain.Apartment, error) {
	id, err := generateID()
	if err != nil {
		return domain.Apartment{}, fmt.Errorf("generating apartment id: %w", err)
	}

	apartment := domain.NewApartment(id, params.Title, params.PriceCents)
	apartment.Description = params.Description
	apartment.Address = params.Address
	apartment.City = params.City
	apartment.State = params.State
	apartment.ZipCode = params.ZipCode
	apartment.Bedrooms = params.Bedrooms
	apartment.Bathrooms = params.Bathrooms
	apartment.SquareFeet = params.SquareFeet
	apartment.OwnerID = params.OwnerID

	if err := s.repo.Create(ctx, apartment); err != nil {
		return domain.Apartment{}, fmt.Errorf("creating apartment: %w", err)
	}
	return apartment, nil
}

// GetByID returns a listing by its unique identifier.
func (s *ApartmentService) GetByID(ctx context.Context, id string) (domain.Apartment, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns listings matching the given filter.
func (s *ApartmentService) List(ctx context.Context, filter domain.ApartmentFilter) ([]domain.Apartment, error) {
	return s.repo.List(ctx, filter)
}

// UpdateDetails replaces the mutable listing fields. Status is not
// touched here; lifecycle moves go through ChangeStatus.
func (s *ApartmentService) UpdateDetails(ctx context.Context, id string, params CreateApartmentParams) (domain.Apartment, error) {
	apartment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Apartment{}, err
	}

	apartment.Title = params.Title
	apartment.Description = params.Description
	apartment.Address = params.Address
	apartment.City = params.City
	apartment.State = params.State
	apartment.ZipCode = params.ZipCode
	apartment.PriceCents = params.PriceCents
	apartment.Bedrooms = params.Bedrooms
	apartment.Bathrooms = params.Bathrooms
	apartment.SquareFeet = params.SquareFeet
	apartment.OwnerID = params.OwnerID

	if err := s.repo.Update(ctx, apartment); err != nil {
		return domain.Apartment{}, fmt.Errorf("updating apartment: %w", err)
	}
	return apartment, nil
}

// Count returns the total number of listings.
func (s *ApartmentService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ChangeStatus moves a listing to the requested target status. The
// request is resolved to a lifecycle event first, so only the published
// transitions are reachable; anything else comes back as
// *TransitionError. Sold is terminal.
func (s *ApartmentService) ChangeStatus(ctx context.Context, id string, target domain.ApartmentStatus) (domain.Apartment, error) {
	apartment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Apartment{}, err
	}

	event, err := domain.ApartmentEventFor(apartment.Status, target)
	if err != nil {
		return domain.Apartment{}, err
	}

	newStatus, err := s.validator.ApplyApartment(ctx, apartment.Status, event)
	if err != nil {
		return domain.Apartment{}, err
	}
	apartment.Status = newStatus

	if err := s.repo.Update(ctx, apartment); err != nil {
		return domain.Apartment{}, fmt.Errorf("updating apartment: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventApartmentStatusChanged, domain.EventPayload{
		ApartmentID: apartment.ID,
		Status:      string(apartment.Status),
	}); err != nil {
		return apartment, fmt.Errorf("publishing status event: %w", err)
	}
	return apartment, nil
}

// Delete removes a listing. Associated media cleanup happens outside
// this service.
func (s *ApartmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
