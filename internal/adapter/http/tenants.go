package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/parkhaus/parkhaus/internal/app"
	"github.com/parkhaus/parkhaus/internal/domain"
)

// TenantResponse is the API representation of a tenant. The password
// hash never leaves the service.
type TenantResponse struct {
	ID           string   `json:"id" doc:"Unique identifier"`
	Username     string   `json:"username" doc:"Login name"`
	Email        string   `json:"email" doc:"Email address"`
	FirstName    string   `json:"first_name,omitempty" doc:"First name"`
	LastName     string   `json:"last_name,omitempty" doc:"Last name"`
	Phone        string   `json:"phone,omitempty" doc:"Phone number"`
	Role         string   `json:"role" doc:"Account role"`
	Capabilities []string `json:"capabilities,omitempty" doc:"Management capabilities"`
	Active       bool     `json:"active" doc:"Whether the account can sign in"`
	CreatedAt    string   `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt    string   `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toTenantResponse(t domain.Tenant) TenantResponse {
	var capabilities []string
	for _, c := range []domain.Capability{domain.CapabilityAgent, domain.CapabilityAppraiser, domain.CapabilityConcierge} {
		if t.Capabilities.Has(c) {
			capabilities = append(capabilities, string(c))
		}
	}
	return TenantResponse{
		ID:           t.ID,
		Username:     t.Username,
		Email:        t.Email,
		FirstName:    t.FirstName,
		LastName:     t.LastName,
		Phone:        t.Phone,
		Role:         string(t.Role),
		Capabilities: capabilities,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt.Format(timeFormat),
		UpdatedAt:    t.UpdatedAt.Format(timeFormat),
	}
}

// ParkingAssignmentResponse reports what admission-time assignment did.
type ParkingAssignmentResponse struct {
	Result      string `json:"result" doc:"assigned, no_capacity or contention"`
	SpaceID     string `json:"space_id,omitempty" doc:"Assigned space ID"`
	SpaceNumber string `json:"space_number,omitempty" doc:"Assigned space number"`
}

func toAssignmentResponse(o domain.AssignmentOutcome) ParkingAssignmentResponse {
	resp := ParkingAssignmentResponse{Result: string(o.Result)}
	if o.Result == domain.AssignmentAssigned {
		resp.SpaceID = o.Space.ID
		resp.SpaceNumber = o.Space.SpaceNumber
	}
	return resp
}

// --- Register Tenant ---

type RegisterTenantInput struct {
	Body struct {
		Username  string `json:"username" minLength:"1" maxLength:"100" doc:"Login name"`
		Email     string `json:"email" format:"email" doc:"Email address"`
		Password  string `json:"password" minLength:"8" maxLength:"72" doc:"Password (stored hashed)"`
		FirstName string `json:"first_name,omitempty" maxLength:"100" doc:"First name"`
		LastName  string `json:"last_name,omitempty" maxLength:"100" doc:"Last name"`
		Phone     string `json:"phone,omitempty" maxLength:"30" doc:"Phone number"`
		Role      string `json:"role,omitempty" default:"client" enum:"admin,client" doc:"Account role"`
	}
}

type RegisterTenantOutput struct {
	Body struct {
		Tenant  TenantResponse            `json:"tenant"`
		Parking ParkingAssignmentResponse `json:"parking" doc:"Admission-time parking assignment outcome"`
	}
}

// --- Get Tenant ---

type GetTenantInput struct {
	ID string `path:"id" doc:"Tenant ID"`
}

type GetTenantOutput struct {
	Body TenantResponse
}

// --- List Tenants ---

type ListTenantsInput struct {
	Role   string `query:"role" required:"false" enum:",admin,client" doc:"Filter by role"`
	Limit  int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListTenantsOutput struct {
	Body []TenantResponse
}

// --- Capabilities ---

type CapabilityInput struct {
	ID         string `path:"id" doc:"Tenant ID"`
	Capability string `path:"capability" enum:"agent,appraiser,concierge" doc:"Management capability"`
}

type CapabilityOutput struct {
	Body TenantResponse
}

func registerTenantRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "register-tenant",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenants",
		Summary:     "Register a new tenant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *RegisterTenantInput) (*RegisterTenantOutput, error) {
		tenant, outcome, err := svc.Tenants.Register(ctx, app.RegisterParams{
			Username:  input.Body.Username,
			Email:     input.Body.Email,
			Password:  input.Body.Password,
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Phone:     input.Body.Phone,
			Role:      domain.Role(input.Body.Role),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &RegisterTenantOutput{}
		out.Body.Tenant = toTenantResponse(tenant)
		out.Body.Parking = toAssignmentResponse(outcome)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tenant",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenants/{id}",
		Summary:     "Get a tenant by ID",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *GetTenantInput) (*GetTenantOutput, error) {
		tenant, err := svc.Tenants.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetTenantOutput{Body: toTenantResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tenants",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenants",
		Summary:     "List tenants",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *ListTenantsInput) (*ListTenantsOutput, error) {
		filter := domain.TenantFilter{
			Limit:  input.Limit,
			Offset: input.Offset,
		}
		if input.Role != "" {
			role := domain.Role(input.Role)
			filter.Role = &role
		}

		tenants, err := svc.Tenants.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]TenantResponse, len(tenants))
		for i, t := range tenants {
			resp[i] = toTenantResponse(t)
		}
		return &ListTenantsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "grant-capability",
		Method:      http.MethodPut,
		Path:        "/api/v1/tenants/{id}/capabilities/{capability}",
		Summary:     "Grant a management capability",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *CapabilityInput) (*CapabilityOutput, error) {
		tenant, err := svc.Tenants.GrantCapability(ctx, input.ID, domain.Capability(input.Capability))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CapabilityOutput{Body: toTenantResponse(tenant)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "revoke-capability",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tenants/{id}/capabilities/{capability}",
		Summary:     "Revoke a management capability",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *CapabilityInput) (*CapabilityOutput, error) {
		tenant, err := svc.Tenants.RevokeCapability(ctx, input.ID, domain.Capability(input.Capability))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CapabilityOutput{Body: toTenantResponse(tenant)}, nil
	})
}
