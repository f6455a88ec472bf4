package http

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/parkhaus/parkhaus/internal/app"
	"github.com/parkhaus/parkhaus/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// Services bundles the application services exposed over HTTP.
type Services struct {
	Tenants    *app.TenantService
	Apartments *app.ApartmentService
	Parking    *app.ParkingService
	Engine     *app.AssignmentEngine
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, svc Services) {
	registerTenantRoutes(api, svc)
	registerApartmentRoutes(api, svc)
	registerParkingRoutes(api, svc)
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return huma.Error404NotFound("tenant not found")
	case errors.Is(err, domain.ErrApartmentNotFound):
		return huma.Error404NotFound("apartment not found")
	case errors.Is(err, domain.ErrParkingSpaceNotFound):
		return huma.Error404NotFound("parking space not found")
	case errors.Is(err, domain.ErrTenantRequired):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return huma.Error503ServiceUnavailable("store unavailable")
	}

	var dupErr *domain.DuplicateIdentityError
	if errors.As(err, &dupErr) {
		return huma.Error409Conflict(dupErr.Error())
	}

	var spaceErr *domain.SpaceNumberConflictError
	if errors.As(err, &spaceErr) {
		return huma.Error409Conflict(spaceErr.Error())
	}

	var assignedErr *domain.AlreadyAssignedError
	if errors.As(err, &assignedErr) {
		return huma.Error409Conflict(assignedErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
