package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/parkhaus/parkhaus/internal/app"
	"github.com/parkhaus/parkhaus/internal/domain"
)

// ParkingResponse is the API representation of a parking space.
type ParkingResponse struct {
	ID               string  `json:"id" doc:"Unique identifier"`
	SpaceNumber      string  `json:"space_number" doc:"Human-assigned space number"`
	Location         string  `json:"location,omitempty" doc:"Physical location"`
	MonthlyFeeCents  int64   `json:"monthly_fee_cents" doc:"Monthly fee in cents"`
	Type             string  `json:"type" doc:"Physical kind of space"`
	Status           string  `json:"status" doc:"Occupancy state"`
	Covered          bool    `json:"covered" doc:"Whether the space is covered"`
	ElectricCharging bool    `json:"electric_charging" doc:"Whether the space has a charger"`
	MaxVehicleLength float64 `json:"max_vehicle_length,omitempty" doc:"Max vehicle length in feet"`
	MaxVehicleWidth  float64 `json:"max_vehicle_width,omitempty" doc:"Max vehicle width in feet"`
	Notes            string  `json:"notes,omitempty" doc:"Operator notes"`
	TenantID         string  `json:"tenant_id,omitempty" doc:"Assigned tenant ID"`
	CreatedAt        string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt        string  `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toParkingResponse(p domain.ParkingSpace) ParkingResponse {
	return ParkingResponse{
		ID:               p.ID,
		SpaceNumber:      p.SpaceNumber,
		Location:         p.Location,
		MonthlyFeeCents:  p.MonthlyFeeCents,
		Type:             string(p.Type),
		Status:           string(p.Status),
		Covered:          p.Covered,
		ElectricCharging: p.ElectricCharging,
		MaxVehicleLength: p.MaxVehicleLength,
		MaxVehicleWidth:  p.MaxVehicleWidth,
		Notes:            p.Notes,
		TenantID:         p.TenantID,
		CreatedAt:        p.CreatedAt.Format(timeFormat),
		UpdatedAt:        p.UpdatedAt.Format(timeFormat),
	}
}

// --- Create Parking Space ---

type CreateParkingInput struct {
	Body struct {
		SpaceNumber      string  `json:"space_number" minLength:"1" maxLength:"20" doc:"Human-assigned space number"`
		Location         string  `json:"location,omitempty" maxLength:"255" doc:"Physical location"`
		MonthlyFeeCents  int64   `json:"monthly_fee_cents" minimum:"0" doc:"Monthly fee in cents"`
		Type             string  `json:"type" enum:"standard,compact,large,handicap,motorcycle,electric,premium" doc:"Physical kind of space"`
		Covered          bool    `json:"covered,omitempty" doc:"Whether the space is covered"`
		ElectricCharging bool    `json:"electric_charging,omitempty" doc:"Whether the space has a charger"`
		MaxVehicleLength float64 `json:"max_vehicle_length,omitempty" minimum:"0" doc:"Max vehicle length in feet"`
		MaxVehicleWidth  float64 `json:"max_vehicle_width,omitempty" minimum:"0" doc:"Max vehicle width in feet"`
		Notes            string  `json:"notes,omitempty" maxLength:"2000" doc:"Operator notes"`
	}
}

type CreateParkingOutput struct {
	Body ParkingResponse
}

// --- Get / List ---

type GetParkingInput struct {
	ID string `path:"id" doc:"Parking space ID"`
}

type GetParkingOutput struct {
	Body ParkingResponse
}

type ListParkingInput struct {
	Status   string `query:"status" required:"false" enum:",available,occupied,reserved,maintenance" doc:"Filter by status"`
	TenantID string `query:"tenant_id" required:"false" doc:"Filter by assigned tenant"`
	Limit    int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset   int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListParkingOutput struct {
	Body []ParkingResponse
}

// --- Change Status ---

type ChangeParkingStatusInput struct {
	ID   string `path:"id" doc:"Parking space ID"`
	Body struct {
		Status   string `json:"status" enum:"available,occupied,reserved,maintenance" doc:"Target occupancy state"`
		TenantID string `json:"tenant_id,omitempty" doc:"Tenant to assign when entering occupied or reserved"`
	}
}

type ChangeParkingStatusOutput struct {
	Body ParkingResponse
}

// --- Assign / Release ---

type AssignParkingInput struct {
	ID   string `path:"id" doc:"Parking space ID"`
	Body struct {
		TenantID string `json:"tenant_id" minLength:"1" doc:"Tenant to assign"`
	}
}

type AssignParkingOutput struct {
	Body ParkingResponse
}

type ReleaseParkingInput struct {
	ID string `path:"id" doc:"Parking space ID"`
}

type ReleaseParkingOutput struct {
	Body ParkingResponse
}

func registerParkingRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "create-parking-space",
		Method:      http.MethodPost,
		Path:        "/api/v1/parking",
		Summary:     "Create a new parking space",
		Tags:        []string{"Parking"},
	}, func(ctx context.Context, input *CreateParkingInput) (*CreateParkingOutput, error) {
		space, err := svc.Parking.Create(ctx, app.CreateParkingParams{
			SpaceNumber:      input.Body.SpaceNumber,
			Location:         input.Body.Location,
			MonthlyFeeCents:  input.Body.MonthlyFeeCents,
			Type:             domain.ParkingType(input.Body.Type),
			Covered:          input.Body.Covered,
			ElectricCharging: input.Body.ElectricCharging,
			MaxVehicleLength: input.Body.MaxVehicleLength,
			MaxVehicleWidth:  input.Body.MaxVehicleWidth,
			Notes:            input.Body.Notes,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateParkingOutput{Body: toParkingResponse(space)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-parking-space",
		Method:      http.MethodGet,
		Path:        "/api/v1/parking/{id}",
		Summary:     "Get a parking space by ID",
		Tags:        []string{"Parking"},
	}, func(ctx context.Context, input *GetParkingInput) (*GetParkingOutput, error) {
		space, err := svc.Parking.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetParkingOutput{Body: toParkingResponse(space)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-parking-spaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/parking",
		Summary:     "List parking spaces",
		Tags:        []string{"Parking"},
	}, func(ctx context.Context, input *ListParkingInput) (*ListParkingOutput, error) {
		filter := domain.ParkingFilter{
			TenantID: input.TenantID,
			Limit:    input.Limit,
			Offset:   input.Offset,
		}
		if input.Status != "" {
			status := domain.ParkingStatus(input.Status)
			filter.Status = &status
		}

		spaces, err := svc.Parking.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]ParkingResponse, len(spaces))
		for i, p := range spaces {
			resp[i] = toParkingResponse(p)
		}
		return &ListParkingOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "change-parking-status",
		Method:      http.MethodPost,
		Path:        "/api/v1/parking/{id}/status",
		Summary:     "Move a parking space through its occupancy lifecycle",
		Tags:        []string{"Parking"},
	}, func(ctx context.Context, input *ChangeParkingStatusInput) (*ChangeParkingStatusOutput, error) {
		space, err := svc.Parking.ChangeStatus(ctx, input.ID, domain.ParkingStatus(input.Body.Status), input.Body.TenantID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ChangeParkingStatusOutput{Body: toParkingResponse(space)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-parking-space",
		Method:      http.MethodPost,
		Path:        "/api/v1/parking/{id}/assign",
		Summary:     "Assign a parking space to a tenant",
		Tags:        []string{"Parking"},
	}, func(ctx context.Context, input *AssignParkingInput) (*AssignParkingOutput, error) {
		space, err := svc.Engine.ManualAssign(ctx, input.ID, input.Body.TenantID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &AssignParkingOutput{Body: toParkingResponse(space)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "release-parking-space",
		Method:      http.MethodPost,
		Path:        "/api/v1/parking/{id}/release",
		Summary:     "Release a parking space back to the available pool",
		Tags:        []string{"Parking"},
	}, func(ctx context.Context, input *ReleaseParkingInput) (*ReleaseParkingOutput, error) {
		if err := svc.Engine.Release(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		space, err := svc.Parking.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ReleaseParkingOutput{Body: toParkingResponse(space)}, nil
	})
}
