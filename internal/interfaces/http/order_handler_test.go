package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisniewski/warsztat-api/internal/application/orders"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
	apphttp "github.com/kwisniewski/warsztat-api/internal/interfaces/http"
)

// Stub repos seeded with one complete order so the estimate endpoints can be
// exercised through app.Test without a database.

type stubClientRepo struct{ byID map[string]*entity.Client }

func (s *stubClientRepo) Create(*entity.Client) error               { return nil }
func (s *stubClientRepo) GetByID(id string) (*entity.Client, error) { return s.byID[id], nil }
func (s *stubClientRepo) List(int, int) ([]*entity.Client, error)   { return nil, nil }
func (s *stubClientRepo) Update(*entity.Client) error               { return nil }
func (s *stubClientRepo) Delete(string) error                       { return nil }

type stubVehicleRepo struct{ byID map[string]*entity.Vehicle }

func (s *stubVehicleRepo) Create(*entity.Vehicle) error               { return nil }
func (s *stubVehicleRepo) GetByID(id string) (*entity.Vehicle, error) { return s.byID[id], nil }
func (s *stubVehicleRepo) GetByVIN(string) (*entity.Vehicle, error)   { return nil, nil }
func (s *stubVehicleRepo) List(int, int) ([]*entity.Vehicle, error)   { return nil, nil }
func (s *stubVehicleRepo) Update(*entity.Vehicle) error               { return nil }
func (s *stubVehicleRepo) Delete(string) error                        { return nil }

type stubServiceRepo struct{ byID map[string]*entity.ServiceItem }

func (s *stubServiceRepo) Create(*entity.ServiceItem) error               { return nil }
func (s *stubServiceRepo) GetByID(id string) (*entity.ServiceItem, error) { return s.byID[id], nil }
func (s *stubServiceRepo) List(int, int) ([]*entity.ServiceItem, error)   { return nil, nil }
func (s *stubServiceRepo) Update(*entity.ServiceItem) error               { return nil }
func (s *stubServiceRepo) Delete(string) error                            { return nil }

type stubMaterialRepo struct{}

func (stubMaterialRepo) Create(*entity.Material) error             { return nil }
func (stubMaterialRepo) GetByID(string) (*entity.Material, error)  { return nil, nil }
func (stubMaterialRepo) List(int, int) ([]*entity.Material, error) { return nil, nil }
func (stubMaterialRepo) Update(*entity.Material) error             { return nil }
func (stubMaterialRepo) Delete(string) error                       { return nil }

type stubOrderRepo struct {
	orders   map[string]*entity.Order
	svcLines map[string][]*entity.OrderService
}

func (s *stubOrderRepo) Create(*entity.Order) error                     { return nil }
func (s *stubOrderRepo) Update(*entity.Order) error                     { return nil }
func (s *stubOrderRepo) Delete(string) error                            { return nil }
func (s *stubOrderRepo) GetByID(id string) (*entity.Order, error)       { return s.orders[id], nil }
func (s *stubOrderRepo) List(int, int) ([]*entity.OrderSummary, error)  { return nil, nil }
func (s *stubOrderRepo) CreateServiceLine(*entity.OrderService) error   { return nil }
func (s *stubOrderRepo) CreateMaterialLine(*entity.OrderMaterial) error { return nil }
func (s *stubOrderRepo) DeleteLines(string) error                       { return nil }
func (s *stubOrderRepo) GetServiceLines(id string) ([]*entity.OrderService, error) {
	return s.svcLines[id], nil
}
func (s *stubOrderRepo) GetMaterialLines(string) ([]*entity.OrderMaterial, error) {
	return nil, nil
}

type stubTxRunner struct{ repo repository.OrderRepository }

func (s *stubTxRunner) RunInTx(_ context.Context, fn func(repo repository.OrderRepository) error) error {
	return fn(s.repo)
}

type stubPDF struct{}

func (stubPDF) Render(*orders.EstimateDocument) ([]byte, error) { return []byte("%PDF-fake"), nil }

// buildOrderApp mounts the order handler routes directly, skipping auth.
// Order "o1" is complete and printable; "o2" has no lines yet.
func buildOrderApp() *fiber.App {
	orderRepo := &stubOrderRepo{
		orders: map[string]*entity.Order{
			"o1": {ID: "o1", ClientID: "c1", VehicleID: "v1"},
			"o2": {ID: "o2", ClientID: "c1", VehicleID: "v1"},
		},
		svcLines: map[string][]*entity.OrderService{
			"o1": {{ID: "l1", OrderID: "o1", ServiceID: "s1",
				Quantity: decimal.NewFromInt(1), Amount: decimal.RequireFromString("120.00")}},
		},
	}
	uc := orders.NewOrderUseCase(
		orderRepo,
		&stubClientRepo{byID: map[string]*entity.Client{"c1": {ID: "c1", FirstName: "Jan", LastName: "Kowalski"}}},
		&stubVehicleRepo{byID: map[string]*entity.Vehicle{"v1": {ID: "v1", Manufacturer: "Škoda", Model: "Octavia", PlateNumber: "LU 12345"}}},
		&stubServiceRepo{byID: map[string]*entity.ServiceItem{"s1": {ID: "s1", Name: "Wymiana oleju", Price: decimal.RequireFromString("120.00")}}},
		stubMaterialRepo{},
		&stubTxRunner{repo: orderRepo},
		stubPDF{},
		orders.ShopIdentity{Name: "SERWIS SAMOCHODOWY", City: "Lublin"},
	)
	app := fiber.New()
	handler := apphttp.NewOrderHandler(uc)
	app.Post("/api/orders/estimate", handler.DraftEstimate)
	app.Post("/api/orders/:id/estimate", handler.Estimate)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	return got["code"]
}

func TestEstimateEndpointReturnsPDF(t *testing.T) {
	app := buildOrderApp()
	resp := postJSON(t, app, "/api/orders/o1/estimate", `{"vat_rate_percent":23}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `attachment; filename="estimate_LU12345_\d{1,2}-\d{1,2}-\d{4}\.pdf"`,
		resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestEstimateEndpointUnknownOrder(t *testing.T) {
	app := buildOrderApp()
	resp := postJSON(t, app, "/api/orders/nope/estimate", `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestEstimateEndpointOrderWithoutLines(t *testing.T) {
	app := buildOrderApp()
	resp := postJSON(t, app, "/api/orders/o2/estimate", `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "ESTIMATE_NOT_READY", errorCode(t, resp))
}

func TestEstimateEndpointMalformedBody(t *testing.T) {
	app := buildOrderApp()
	resp := postJSON(t, app, "/api/orders/o1/estimate", `{"vat_rate_percent":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestDraftEstimateEndpointUnknownReference(t *testing.T) {
	app := buildOrderApp()
	resp := postJSON(t, app, "/api/orders/estimate",
		`{"client_id":"c1","vehicle_id":"v1","services":[{"service_id":"ghost","quantity":"1"}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}
