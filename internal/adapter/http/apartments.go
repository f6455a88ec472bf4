package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/parkhaus/parkhaus/internal/app"
	"github.com/parkhaus/parkhaus/internal/domain"
)

// ApartmentResponse is the API representation of an apartment listing.
type ApartmentResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	Title       string `json:"title" doc:"Listing title"`
	Description string `json:"description,omitempty" doc:"Listing description"`
	Address     string `json:"address,omitempty" doc:"Street address"`
	City        string `json:"city,omitempty" doc:"City"`
	State       string `json:"state,omitempty" doc:"State"`
	ZipCode     string `json:"zip_code,omitempty" doc:"Zip code"`
	PriceCents  int64  `json:"price_cents" doc:"Asking price in cents"`
	Bedrooms    int    `json:"bedrooms,omitempty" doc:"Bedroom count"`
	Bathrooms   int    `json:"bathrooms,omitempty" doc:"Bathroom count"`
	SquareFeet  int    `json:"square_feet,omitempty" doc:"Floor area"`
	Status      string `json:"status" doc:"Sale lifecycle state"`
	OwnerID     string `json:"owner_id,omitempty" doc:"Owning tenant ID"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt   string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toApartmentResponse(a domain.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Address:     a.Address,
		City:        a.City,
		State:       a.State,
		ZipCode:     a.ZipCode,
		PriceCents:  a.PriceCents,
		Bedrooms:    a.Bedrooms,
		Bathrooms:   a.Bathrooms,
		SquareFeet:  a.SquareFeet,
		Status:      string(a.Status),
		OwnerID:     a.OwnerID,
		CreatedAt:   a.CreatedAt.Format(timeFormat),
		UpdatedAt:   a.UpdatedAt.Format(timeFormat),
	}
}

// --- Create Apartment ---

type CreateApartmentInput struct {
	Body struct {
		Title       string `json:"title" minLength:"1" maxLength:"255" doc:"Listing title"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Listing description"`
		Address     string `json:"address,omitempty" maxLength:"255" doc:"Street address"`
		City        string `json:"city,omitempty" maxLength:"100" doc:"City"`
		State       string `json:"state,omitempty" maxLength:"100" doc:"State"`
		ZipCode     string `json:"zip_code,omitempty" maxLength:"20" doc:"Zip code"`
		PriceCents  int64  `json:"price_cents" minimum:"0" doc:"Asking price in cents"`
		Bedrooms    int    `json:"bedrooms,omitempty" minimum:"0" doc:"Bedroom count"`
		Bathrooms   int    `json:"bathrooms,omitempty" minimum:"0" doc:"Bathroom count"`
		SquareFeet  int    `json:"square_feet,omitempty" minimum:"0" doc:"Floor area"`
		OwnerID     string `json:"owner_id,omitempty" doc:"Owning tenant ID"`
	}
}

type CreateApartmentOutput struct {
	Body ApartmentResponse
}

// --- Get / List / Delete ---

type GetApartmentInput struct {
	ID string `path:"id" doc:"Apartment ID"`
}

type GetApartmentOutput struct {
	Body ApartmentResponse
}

type ListApartmentsInput struct {
	Status  string `query:"status" required:"false" enum:",available,under_contract,sold" doc:"Filter by status"`
	OwnerID string `query:"owner_id" required:"false" doc:"Filter by owner"`
	Limit   int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset  int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListApartmentsOutput struct {
	Body []ApartmentResponse
}

type DeleteApartmentInput struct {
	ID string `path:"id" doc:"Apartment ID"`
}

type DeleteApartmentOutput struct{}

// --- Update Apartment ---

type UpdateApartmentInput struct {
	ID   string `path:"id" doc:"Apartment ID"`
	Body struct {
		Title       string `json:"title" minLength:"1" maxLength:"255" doc:"Listing title"`
		Description string `json:"description,omitempty" maxLength:"2000" doc:"Listing description"`
		Address     string `json:"address,omitempty" maxLength:"255" doc:"Street address"`
		City        string `json:"city,omitempty" maxLength:"100" doc:"City"`
		State       string `json:"state,omitempty" maxLength:"100" doc:"State"`
		ZipCode     string `json:"zip_code,omitempty" maxLength:"20" doc:"Zip code"`
		PriceCents  int64  `json:"price_cents" minimum:"0" doc:"Asking price in cents"`
		Bedrooms    int    `json:"bedrooms,omitempty" minimum:"0" doc:"Bedroom count"`
		Bathrooms   int    `json:"bathrooms,omitempty" minimum:"0" doc:"Bathroom count"`
		SquareFeet  int    `json:"square_feet,omitempty" minimum:"0" doc:"Floor area"`
		OwnerID     string `json:"owner_id,omitempty" doc:"Owning tenant ID"`
	}
}

type UpdateApartmentOutput struct {
	Body ApartmentResponse
}

// --- Change Status ---

type ChangeApartmentStatusInput struct {
	ID   string `path:"id" doc:"Apartment ID"`
	Body struct {
		Status string `json:"status" enum:"available,under_contract,sold" doc:"Target sale lifecycle state"`
	}
}

type ChangeApartmentStatusOutput struct {
	Body ApartmentResponse
}

func registerApartmentRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "create-apartment",
		Method:      http.MethodPost,
		Path:        "/api/v1/apartments",
		Summary:     "Create a new apartment listing",
		Tags:        []string{"Apartments"},
	}, func(ctx context.Context, input *CreateApartmentInput) (*CreateApartmentOutput, error) {
		apartment, err := svc.Apartments.Create(ctx, app.CreateApartmentParams{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Address:     input.Body.Address,
			City:        input.Body.City,
			State:       input.Body.State,
			ZipCode:     input.Body.ZipCode,
			PriceCents:  input.Body.PriceCents,
			Bedrooms:    input.Body.Bedrooms,
			Bathrooms:   input.Body.Bathrooms,
			SquareFeet:  input.Body.SquareFeet,
			OwnerID:     input.Body.OwnerID,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateApartmentOutput{Body: toApartmentResponse(apartment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-apartment",
		Method:      http.MethodGet,
		Path:        "/api/v1/apartments/{id}",
		Summary:     "Get an apartment by ID",
		Tags:        []string{"Apartments"},
	}, func(ctx context.Context, input *GetApartmentInput) (*GetApartmentOutput, error) {
		apartment, err := svc.Apartments.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetApartmentOutput{Body: toApartmentResponse(apartment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-apartments",
		Method:      http.MethodGet,
		Path:        "/api/v1/apartments",
		Summary:     "List apartments",
		Tags:        []string{"Apartments"},
	}, func(ctx context.Context, input *ListApartmentsInput) (*ListApartmentsOutput, error) {
		filter := domain.ApartmentFilter{
			OwnerID: input.OwnerID,
			Limit:   input.Limit,
			Offset:  input.Offset,
		}
		if input.Status != "" {
			status := domain.ApartmentStatus(input.Status)
			filter.Status = &status
		}

		apartments, err := svc.Apartments.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]ApartmentResponse, len(apartments))
		for i, a := range apartments {
			resp[i] = toApartmentResponse(a)
		}
		return &ListApartmentsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-apartment",
		Method:      http.MethodPut,
		Path:        "/api/v1/apartments/{id}",
		Summary:     "Update an apartment listing",
		Tags:        []string{"Apartments"},
	}, func(ctx context.Context, input *UpdateApartmentInput) (*UpdateApartmentOutput, error) {
		apartment, err := svc.Apartments.UpdateDetails(ctx, input.ID, app.CreateApartmentParams{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Address:     input.Body.Address,
			City:        input.Body.City,
			State:       input.Body.State,
			ZipCode:     input.Body.ZipCode,
			PriceCents:  input.Body.PriceCents,
			Bedrooms:    input.Body.Bedrooms,
			Bathrooms:   input.Body.Bathrooms,
			SquareFeet:  input.Body.SquareFeet,
			OwnerID:     input.Body.OwnerID,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateApartmentOutput{Body: toApartmentResponse(apartment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "change-apartment-status",
		Method:      http.MethodPost,
		Path:        "/api/v1/apartments/{id}/status",
		Summary:     "Move an apartment through its sale lifecycle",
		Tags:        []string{"Apartments"},
	}, func(ctx context.Context, input *ChangeApartmentStatusInput) (*ChangeApartmentStatusOutput, error) {
		apartment, err := svc.Apartments.ChangeStatus(ctx, input.ID, domain.ApartmentStatus(input.Body.Status))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ChangeApartmentStatusOutput{Body: toApartmentResponse(apartment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-apartment",
		Method:        http.MethodDelete,
		Path:          "/api/v1/apartments/{id}",
		Summary:       "Delete an apartment listing",
		Tags:          []string{"Apartments"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteApartmentInput) (*DeleteApartmentOutput, error) {
		if err := svc.Apartments.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &DeleteApartmentOutput{}, nil
	})
}
