package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/parkhaus/parkhaus/internal/adapter/bcrypt"
	"github.com/parkhaus/parkhaus/internal/adapter/fsm"
	adapter "github.com/parkhaus/parkhaus/internal/adapter/http"
	"github.com/parkhaus/parkhaus/internal/adapter/sqlite"
	"github.com/parkhaus/parkhaus/internal/app"
	"github.com/parkhaus/parkhaus/internal/domain"
)

// noopPublisher is a no-op EventPublisher for tests.
type noopPublisher struct{}

func (p *noopPublisher) Publish(_ context.Context, _ domain.Event, _ domain.EventPayload) error {
	return nil
}

// newTestServer creates a full-stack httptest.Server with SQLite in-memory.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	validator := fsm.New()
	pub := &noopPublisher{}
	engine := app.NewAssignmentEngine(store.Parking, pub)

	svc := adapter.Services{
		Tenants:    app.NewTenantService(store.Tenants, bcrypt.New(4), pub, engine),
		Apartments: app.NewApartmentService(store.Apartments, validator, pub),
		Parking:    app.NewParkingService(store.Parking, validator, pub),
		Engine:     engine,
	}

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("parkhaus", "0.1.0"))
	adapter.Register(api, svc)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

// doRequest performs an HTTP request with context (avoids noctx linter).
func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type registerResponse struct {
	Tenant  adapter.TenantResponse            `json:"tenant"`
	Parking adapter.ParkingAssignmentResponse `json:"parking"`
}

// mustRegisterTenant registers a tenant via the API.
func mustRegisterTenant(t *testing.T, srv *httptest.Server, username, email, role string) registerResponse {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"password123","role":%q}`, username, email, role)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/tenants", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register tenant: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var out registerResponse
	decodeBody(t, resp, &out)
	return out
}

// mustCreateParking creates a parking space via the API.
func mustCreateParking(t *testing.T, srv *httptest.Server, spaceNumber, typ string) adapter.ParkingResponse {
	t.Helper()

	body := fmt.Sprintf(`{"space_number":%q,"type":%q,"monthly_fee_cents":5000}`, spaceNumber, typ)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create parking: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var space adapter.ParkingResponse
	decodeBody(t, resp, &space)
	return space
}

// mustCreateApartment creates an apartment via the API.
func mustCreateApartment(t *testing.T, srv *httptest.Server, title string) adapter.ApartmentResponse {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"price_cents":75000000}`, title)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/apartments", body)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create apartment: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var apartment adapter.ApartmentResponse
	decodeBody(t, resp, &apartment)
	return apartment
}

// --- Tenants ---

func TestRegisterTenant(t *testing.T) {
	srv := newTestServer(t)
	mustCreateParking(t, srv, "P-001", "standard")

	out := mustRegisterTenant(t, srv, "john.doe", "john.doe@email.com", "client")

	if out.Tenant.ID == "" {
		t.Error("ID should not be empty")
	}
	if out.Tenant.Role != "client" {
		t.Errorf("Role = %q, want %q", out.Tenant.Role, "client")
	}
	if !out.Tenant.Active {
		t.Error("new tenant should be active")
	}
	if out.Parking.Result != "assigned" {
		t.Errorf("parking result = %q, want %q", out.Parking.Result, "assigned")
	}
	if out.Parking.SpaceNumber != "P-001" {
		t.Errorf("parking space = %q, want %q", out.Parking.SpaceNumber, "P-001")
	}
}

func TestRegisterTenant_NoCapacity(t *testing.T) {
	srv := newTestServer(t)

	out := mustRegisterTenant(t, srv, "john.doe", "john.doe@email.com", "client")
	if out.Parking.Result != "no_capacity" {
		t.Errorf("parking result = %q, want %q", out.Parking.Result, "no_capacity")
	}
}

func TestRegisterTenant_DuplicateUsername(t *testing.T) {
	srv := newTestServer(t)
	mustRegisterTenant(t, srv, "john.doe", "john.doe@email.com", "client")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/tenants",
		`{"username":"john.doe","email":"other@email.com","password":"password123","role":"client"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestRegisterTenant_ShortPassword(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/tenants",
		`{"username":"john.doe","email":"john.doe@email.com","password":"short","role":"client"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestGetTenant_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/tenants/nonexistent", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestListTenants_FilterByRole(t *testing.T) {
	srv := newTestServer(t)
	mustRegisterTenant(t, srv, "admin", "admin@parkhaus.local", "admin")
	mustRegisterTenant(t, srv, "john.doe", "john.doe@email.com", "client")

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/v1/tenants?role=client", "")
	defer resp.Body.Close()

	var tenants []adapter.TenantResponse
	decodeBody(t, resp, &tenants)

	if len(tenants) != 1 {
		t.Fatalf("got %d tenants, want 1", len(tenants))
	}
	if tenants[0].Username != "john.doe" {
		t.Errorf("Username = %q, want %q", tenants[0].Username, "john.doe")
	}
}

func TestCapabilities_GrantAndRevoke(t *testing.T) {
	srv := newTestServer(t)
	out := mustRegisterTenant(t, srv, "jane.smith", "jane.smith@email.com", "client")

	resp := doRequest(t, http.MethodPut, srv.URL+"/api/v1/tenants/"+out.Tenant.ID+"/capabilities/agent", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("grant: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var tenant adapter.TenantResponse
	decodeBody(t, resp, &tenant)
	if len(tenant.Capabilities) != 1 || tenant.Capabilities[0] != "agent" {
		t.Errorf("Capabilities = %v, want [agent]", tenant.Capabilities)
	}

	resp = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/tenants/"+out.Tenant.ID+"/capabilities/agent", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("revoke: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	// Decode into a zero value: capabilities is omitempty, so reusing the
	// grant response struct would keep the stale slice.
	var revoked adapter.TenantResponse
	decodeBody(t, resp, &revoked)
	if len(revoked.Capabilities) != 0 {
		t.Errorf("Capabilities = %v, want empty", revoked.Capabilities)
	}
}

// --- Apartments ---

func TestApartmentLifecycle(t *testing.T) {
	srv := newTestServer(t)
	apartment := mustCreateApartment(t, srv, "Luxury Downtown Apartment")

	if apartment.Status != "available" {
		t.Fatalf("Status = %q, want %q", apartment.Status, "available")
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/apartments/"+apartment.ID+"/status", `{"status":"under_contract"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	decodeBody(t, resp, &apartment)
	if apartment.Status != "under_contract" {
		t.Errorf("Status = %q, want %q", apartment.Status, "under_contract")
	}

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/apartments/"+apartment.ID+"/status", `{"status":"sold"}`)
	defer resp.Body.Close()

	decodeBody(t, resp, &apartment)
	if apartment.Status != "sold" {
		t.Errorf("Status = %q, want %q", apartment.Status, "sold")
	}

	// Sold is terminal.
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/apartments/"+apartment.ID+"/status", `{"status":"available"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestApartmentChangeStatus_SkippingContract(t *testing.T) {
	srv := newTestServer(t)
	apartment := mustCreateApartment(t, srv, "Cozy Suburban Home")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/apartments/"+apartment.ID+"/status", `{"status":"sold"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestDeleteApartment(t *testing.T) {
	srv := newTestServer(t)
	apartment := mustCreateApartment(t, srv, "Historic District Apartment")

	resp := doRequest(t, http.MethodDelete, srv.URL+"/api/v1/apartments/"+apartment.ID, "")
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/apartments/"+apartment.ID, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

// --- Parking ---

func TestParkingCreate_DuplicateSpaceNumber(t *testing.T) {
	srv := newTestServer(t)
	mustCreateParking(t, srv, "P-001", "standard")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking",
		`{"space_number":"P-001","type":"compact","monthly_fee_cents":4000}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestParkingAssignAndRelease(t *testing.T) {
	srv := newTestServer(t)
	space := mustCreateParking(t, srv, "P-001", "standard")
	out := mustRegisterTenant(t, srv, "admin", "admin@parkhaus.local", "admin")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking/"+space.ID+"/assign",
		fmt.Sprintf(`{"tenant_id":%q}`, out.Tenant.ID))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("assign: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	decodeBody(t, resp, &space)
	if space.Status != "occupied" || space.TenantID != out.Tenant.ID {
		t.Errorf("space = %q/%q, want occupied/%s", space.Status, space.TenantID, out.Tenant.ID)
	}

	// A second assignment of the same space conflicts.
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking/"+space.ID+"/assign",
		`{"tenant_id":"someone-else"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("double assign: status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking/"+space.ID+"/release", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("release: status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	// Decode into a zero value: tenant_id is omitempty, so reusing the
	// assign response struct would keep the stale assignment.
	var released adapter.ParkingResponse
	decodeBody(t, resp, &released)
	if released.Status != "available" || released.TenantID != "" {
		t.Errorf("space = %q/%q, want available/unassigned", released.Status, released.TenantID)
	}
}

func TestParkingChangeStatus_RequiresTenant(t *testing.T) {
	srv := newTestServer(t)
	space := mustCreateParking(t, srv, "P-001", "standard")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking/"+space.ID+"/status", `{"status":"occupied"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestParkingChangeStatus_Maintenance(t *testing.T) {
	srv := newTestServer(t)
	space := mustCreateParking(t, srv, "P-008", "standard")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking/"+space.ID+"/status", `{"status":"maintenance"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	decodeBody(t, resp, &space)
	if space.Status != "maintenance" {
		t.Errorf("Status = %q, want %q", space.Status, "maintenance")
	}

	// A space under maintenance is never auto-assigned.
	out := mustRegisterTenant(t, srv, "john.doe", "john.doe@email.com", "client")
	if out.Parking.Result != "no_capacity" {
		t.Errorf("parking result = %q, want %q", out.Parking.Result, "no_capacity")
	}
}

func TestListParking_FilterByStatus(t *testing.T) {
	srv := newTestServer(t)
	mustCreateParking(t, srv, "P-001", "standard")
	space := mustCreateParking(t, srv, "P-002", "large")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/v1/parking/"+space.ID+"/status", `{"status":"maintenance"}`)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/v1/parking?status=available", "")
	defer resp.Body.Close()

	var spaces []adapter.ParkingResponse
	decodeBody(t, resp, &spaces)

	if len(spaces) != 1 {
		t.Fatalf("got %d spaces, want 1", len(spaces))
	}
	if spaces[0].SpaceNumber != "P-001" {
		t.Errorf("SpaceNumber = %q, want %q", spaces[0].SpaceNumber, "P-001")
	}
}
