package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

// in-memory fakes

type fakeClientRepo struct{ byID map[string]*entity.Client }

func (f *fakeClientRepo) Create(c *entity.Client) error { f.byID[c.ID] = c; return nil }
func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return f.byID[id], nil
}
func (f *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }
func (f *fakeClientRepo) Update(c *entity.Client) error                    { f.byID[c.ID] = c; return nil }
func (f *fakeClientRepo) Delete(id string) error                           { delete(f.byID, id); return nil }

type fakeVehicleRepo struct{ byID map[string]*entity.Vehicle }

func (f *fakeVehicleRepo) Create(v *entity.Vehicle) error { f.byID[v.ID] = v; return nil }
func (f *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	return f.byID[id], nil
}
func (f *fakeVehicleRepo) GetByVIN(vin string) (*entity.Vehicle, error) {
	for _, v := range f.byID {
		if v.VIN == vin {
			return v, nil
		}
	}
	return nil, nil
}
func (f *fakeVehicleRepo) List(limit, offset int) ([]*entity.Vehicle, error) { return nil, nil }
func (f *fakeVehicleRepo) Update(v *entity.Vehicle) error                    { f.byID[v.ID] = v; return nil }
func (f *fakeVehicleRepo) Delete(id string) error                            { delete(f.byID, id); return nil }

type fakeServiceRepo struct{ byID map[string]*entity.ServiceItem }

func (f *fakeServiceRepo) Create(s *entity.ServiceItem) error { f.byID[s.ID] = s; return nil }
func (f *fakeServiceRepo) GetByID(id string) (*entity.ServiceItem, error) {
	return f.byID[id], nil
}
func (f *fakeServiceRepo) List(limit, offset int) ([]*entity.ServiceItem, error) { return nil, nil }
func (f *fakeServiceRepo) Update(s *entity.ServiceItem) error                    { f.byID[s.ID] = s; return nil }
func (f *fakeServiceRepo) Delete(id string) error                                { delete(f.byID, id); return nil }

type fakeMaterialRepo struct{ byID map[string]*entity.Material }

func (f *fakeMaterialRepo) Create(m *entity.Material) error { f.byID[m.ID] = m; return nil }
func (f *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	return f.byID[id], nil
}
func (f *fakeMaterialRepo) List(limit, offset int) ([]*entity.Material, error) { return nil, nil }
func (f *fakeMaterialRepo) Update(m *entity.Material) error                    { f.byID[m.ID] = m; return nil }
func (f *fakeMaterialRepo) Delete(id string) error                             { delete(f.byID, id); return nil }

type fakeOrderRepo struct {
	orders    map[string]*entity.Order
	svcLines  map[string][]*entity.OrderService
	matLines  map[string][]*entity.OrderMaterial
	lineWipes int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[string]*entity.Order{},
		svcLines: map[string][]*entity.OrderService{},
		matLines: map[string][]*entity.OrderMaterial{},
	}
}

func (f *fakeOrderRepo) Create(o *entity.Order) error { f.orders[o.ID] = o; return nil }
func (f *fakeOrderRepo) Update(o *entity.Order) error { f.orders[o.ID] = o; return nil }
func (f *fakeOrderRepo) Delete(id string) error {
	delete(f.orders, id)
	return f.DeleteLines(id)
}
func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) { return f.orders[id], nil }
func (f *fakeOrderRepo) List(limit, offset int) ([]*entity.OrderSummary, error) {
	return nil, nil
}
func (f *fakeOrderRepo) CreateServiceLine(l *entity.OrderService) error {
	f.svcLines[l.OrderID] = append(f.svcLines[l.OrderID], l)
	return nil
}
func (f *fakeOrderRepo) CreateMaterialLine(l *entity.OrderMaterial) error {
	f.matLines[l.OrderID] = append(f.matLines[l.OrderID], l)
	return nil
}
func (f *fakeOrderRepo) DeleteLines(orderID string) error {
	f.lineWipes++
	delete(f.svcLines, orderID)
	delete(f.matLines, orderID)
	return nil
}
func (f *fakeOrderRepo) GetServiceLines(orderID string) ([]*entity.OrderService, error) {
	return f.svcLines[orderID], nil
}
func (f *fakeOrderRepo) GetMaterialLines(orderID string) ([]*entity.OrderMaterial, error) {
	return f.matLines[orderID], nil
}

// fakeTxRunner hands the same repo to fn, no transaction involved.
type fakeTxRunner struct{ repo repository.OrderRepository }

func (f *fakeTxRunner) RunInTx(_ context.Context, fn func(repo repository.OrderRepository) error) error {
	return fn(f.repo)
}

type fakePDF struct{ lastDoc *EstimateDocument }

func (f *fakePDF) Render(doc *EstimateDocument) ([]byte, error) {
	f.lastDoc = doc
	return []byte("%PDF-fake"), nil
}

func intPtr(v int) *int { return &v }

type fixture struct {
	uc        *OrderUseCase
	orderRepo *fakeOrderRepo
	pdf       *fakePDF
}

func newFixture() *fixture {
	clients := &fakeClientRepo{byID: map[string]*entity.Client{
		"c1": {ID: "c1", FirstName: "Jan", LastName: "Kowalski"},
		"c2": {ID: "c2", FirstName: "Ewa"}, // no last name
	}}
	vehicles := &fakeVehicleRepo{byID: map[string]*entity.Vehicle{
		"v1": {ID: "v1", Manufacturer: "Škoda", Model: "Octavia", PlateNumber: "LU 12345"},
	}}
	services := &fakeServiceRepo{byID: map[string]*entity.ServiceItem{
		"s1": {ID: "s1", Name: "Wymiana oleju", Price: decimal.RequireFromString("120.00")},
		"s2": {ID: "s2", Name: "Diagnostyka", Price: decimal.RequireFromString("80.00")},
	}}
	materials := &fakeMaterialRepo{byID: map[string]*entity.Material{
		"m1": {ID: "m1", Name: "Olej 5W30", Unit: "l", Price: decimal.RequireFromString("46.90")},
		"m2": {ID: "m2", Name: "Filtr oleju", Unit: "szt.", Price: decimal.RequireFromString("35.00")},
	}}
	orderRepo := newFakeOrderRepo()
	pdf := &fakePDF{}
	uc := NewOrderUseCase(
		orderRepo, clients, vehicles, services, materials,
		&fakeTxRunner{repo: orderRepo}, pdf,
		ShopIdentity{Name: "SERWIS SAMOCHODOWY", City: "Lublin"},
	)
	return &fixture{uc: uc, orderRepo: orderRepo, pdf: pdf}
}

func TestCreateOrderPricesLinesFromCatalog(t *testing.T) {
	fx := newFixture()

	resp, err := fx.uc.Create(context.Background(), dto.SaveOrderRequest{
		ClientID:  "c1",
		VehicleID: "v1",
		OrderDate: "2024-03-05",
		Services: []dto.OrderLineRequest{
			{ServiceID: "s1", Quantity: "1"},
			{ServiceID: "s2", Quantity: "2"},
		},
		Materials: []dto.OrderLineRequest{
			{MaterialID: "m1", Quantity: "4,5", CatalogNumber: "OL-5W30"},
		},
	})
	require.NoError(t, err)

	// 120 + 160 + 211.05
	assert.True(t, resp.Total.Equal(dec("491.05")), "got %s", resp.Total)
	assert.Equal(t, "2024-03-05", resp.OrderDate)
	require.Len(t, resp.Services, 2)
	assert.True(t, resp.Services[1].Amount.Equal(dec("160.00")))
	require.Len(t, resp.Materials, 1)
	assert.True(t, resp.Materials[0].Quantity.Equal(dec("4.5")))
	assert.Equal(t, "OL-5W30", resp.Materials[0].CatalogNumber)

	// persisted alongside the header
	assert.Len(t, fx.orderRepo.svcLines[resp.ID], 2)
	assert.Len(t, fx.orderRepo.matLines[resp.ID], 1)
}

func TestCreateOrderHonorsOverrides(t *testing.T) {
	fx := newFixture()

	price := dec("100.00")
	amount := dec("50.00")
	resp, err := fx.uc.Create(context.Background(), dto.SaveOrderRequest{
		ClientID:  "c1",
		VehicleID: "v1",
		Services: []dto.OrderLineRequest{
			{ServiceID: "s1", Quantity: "2", UnitPrice: &price}, // 200 instead of 240
		},
		Materials: []dto.OrderLineRequest{
			{MaterialID: "m2", Quantity: "1", Amount: &amount}, // flat 50
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Services[0].Amount.Equal(dec("200.00")))
	assert.True(t, resp.Materials[0].Amount.Equal(dec("50.00")))
	assert.True(t, resp.Total.Equal(dec("250.00")))
}

func TestCreateOrderAssignsLinePositions(t *testing.T) {
	fx := newFixture()

	resp, err := fx.uc.Create(context.Background(), dto.SaveOrderRequest{
		ClientID:  "c1",
		VehicleID: "v1",
		Services: []dto.OrderLineRequest{
			{ServiceID: "s2", Quantity: "1"},
			{ServiceID: "s1", Quantity: "1"},
		},
		Materials: []dto.OrderLineRequest{
			{MaterialID: "m2", Quantity: "1"},
			{MaterialID: "m1", Quantity: "1"},
		},
	})
	require.NoError(t, err)

	svcRows := fx.orderRepo.svcLines[resp.ID]
	require.Len(t, svcRows, 2)
	assert.Equal(t, 0, svcRows[0].Position)
	assert.Equal(t, "s2", svcRows[0].ServiceID)
	assert.Equal(t, 1, svcRows[1].Position)
	assert.Equal(t, "s1", svcRows[1].ServiceID)

	matRows := fx.orderRepo.matLines[resp.ID]
	require.Len(t, matRows, 2)
	assert.Equal(t, 0, matRows[0].Position)
	assert.Equal(t, "m2", matRows[0].MaterialID)
	assert.Equal(t, 1, matRows[1].Position)
	assert.Equal(t, "m1", matRows[1].MaterialID)
}

func TestCreateOrderRejectsConflictingOverrides(t *testing.T) {
	fx := newFixture()

	price := dec("100.00")
	amount := dec("50.00")
	_, err := fx.uc.Create(context.Background(), dto.SaveOrderRequest{
		ClientID:  "c1",
		VehicleID: "v1",
		Services: []dto.OrderLineRequest{
			{ServiceID: "s1", Quantity: "2", UnitPrice: &price, Amount: &amount},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.Create(context.Background(), dto.SaveOrderRequest{
		ClientID:  "c1",
		VehicleID: "v1",
		Materials: []dto.OrderLineRequest{
			{MaterialID: "m1", Quantity: "1", UnitPrice: &price, Amount: &amount},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrderRejectsUnknownReferences(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Create(context.Background(), dto.SaveOrderRequest{ClientID: "nope", VehicleID: "v1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.Create(context.Background(), dto.SaveOrderRequest{
		ClientID: "c1", VehicleID: "v1",
		Services: []dto.OrderLineRequest{{ServiceID: "ghost", Quantity: "1"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrderReplacesLines(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	created, err := fx.uc.Create(ctx, dto.SaveOrderRequest{
		ClientID: "c1", VehicleID: "v1",
		Services: []dto.OrderLineRequest{{ServiceID: "s1", Quantity: "1"}},
	})
	require.NoError(t, err)

	updated, err := fx.uc.Update(ctx, created.ID, dto.SaveOrderRequest{
		ClientID: "c1", VehicleID: "v1",
		Materials: []dto.OrderLineRequest{{MaterialID: "m2", Quantity: "2"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, fx.orderRepo.lineWipes)
	assert.Empty(t, fx.orderRepo.svcLines[created.ID])
	require.Len(t, fx.orderRepo.matLines[created.ID], 1)
	assert.True(t, updated.Total.Equal(dec("70.00")))
}

func TestUpdateMissingOrder(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Update(context.Background(), "nope", dto.SaveOrderRequest{ClientID: "c1", VehicleID: "v1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByIDResolvesNamesWithPlaceholder(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	created, err := fx.uc.Create(ctx, dto.SaveOrderRequest{
		ClientID: "c1", VehicleID: "v1",
		Materials: []dto.OrderLineRequest{{MaterialID: "m1", Quantity: "1"}},
	})
	require.NoError(t, err)

	// simulate the catalog entry being removed afterwards
	fx.uc.materials.Delete("m1")

	got, err := fx.uc.GetByID(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Materials, 1)
	assert.Equal(t, removedItemName, got.Materials[0].Name)
}

func TestGenerateEstimateFromStoredOrder(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	created, err := fx.uc.Create(ctx, dto.SaveOrderRequest{
		ClientID: "c1", VehicleID: "v1",
		Services:  []dto.OrderLineRequest{{ServiceID: "s1", Quantity: "1"}},
		Materials: []dto.OrderLineRequest{{MaterialID: "m2", Quantity: "2"}},
	})
	require.NoError(t, err)

	filename, pdfBytes, err := fx.uc.GenerateEstimate(created.ID, dto.EstimateRequest{VATRatePercent: intPtr(23)}, "Anna Nowak")
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Regexp(t, `^estimate_LU12345_\d{1,2}-\d{1,2}-\d{4}\.pdf$`, filename)

	doc := fx.pdf.lastDoc
	require.NotNil(t, doc)
	assert.Equal(t, "Jan Kowalski", doc.ClientName)
	assert.Equal(t, "Anna Nowak", doc.IssuedBy)
	// 120 + 70
	assert.True(t, doc.Total.Gross.Equal(dec("190.00")))
	assert.True(t, doc.Total.Net.Add(doc.Total.Tax).Equal(doc.Total.Gross))
}

// An explicit 0% rate (zero-rated work) must not fall back to the default.
func TestGenerateEstimateHonorsZeroVATRate(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	created, err := fx.uc.Create(ctx, dto.SaveOrderRequest{
		ClientID: "c1", VehicleID: "v1",
		Services: []dto.OrderLineRequest{{ServiceID: "s1", Quantity: "1"}},
	})
	require.NoError(t, err)

	_, _, err = fx.uc.GenerateEstimate(created.ID, dto.EstimateRequest{VATRatePercent: intPtr(0)}, "")
	require.NoError(t, err)

	doc := fx.pdf.lastDoc
	require.NotNil(t, doc)
	assert.Equal(t, 0, doc.VATRatePercent)
	assert.True(t, doc.Total.Tax.IsZero(), "got tax %s", doc.Total.Tax)
	assert.True(t, doc.Total.Net.Equal(doc.Total.Gross))

	// absent rate still defaults to 23
	_, _, err = fx.uc.GenerateEstimate(created.ID, dto.EstimateRequest{}, "")
	require.NoError(t, err)
	assert.Equal(t, 23, fx.pdf.lastDoc.VATRatePercent)
}

func TestGenerateEstimateRequiresCompleteData(t *testing.T) {
	fx := newFixture()

	// client c2 has no last name
	_, _, err := fx.uc.GenerateDraftEstimate(dto.DraftEstimateRequest{
		ClientID:  "c2",
		VehicleID: "v1",
		Services:  []dto.OrderLineRequest{{ServiceID: "s1", Quantity: "1"}},
	}, "")
	assert.ErrorIs(t, err, domain.ErrEstimateNotReady)

	// no lines at all
	_, _, err = fx.uc.GenerateDraftEstimate(dto.DraftEstimateRequest{
		ClientID:  "c1",
		VehicleID: "v1",
	}, "")
	assert.ErrorIs(t, err, domain.ErrEstimateNotReady)
}

func TestGenerateDraftEstimateTotalOnly(t *testing.T) {
	fx := newFixture()

	agreed := dec("500.00")
	filename, pdfBytes, err := fx.uc.GenerateDraftEstimate(dto.DraftEstimateRequest{
		ClientID:  "c1",
		VehicleID: "v1",
		Services:  []dto.OrderLineRequest{{ServiceID: "s1", Quantity: "1"}},
		EstimateRequest: dto.EstimateRequest{
			VATRatePercent:  intPtr(23),
			PricingMode:     "TOTAL_ONLY",
			TotalRepairCost: &agreed,
		},
	}, "Anna Nowak")
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Contains(t, filename, "estimate_LU12345_")

	doc := fx.pdf.lastDoc
	require.NotNil(t, doc)
	assert.Equal(t, PricingModeTotalOnly, doc.Mode)
	assert.True(t, doc.TotalRepairCost.Equal(dec("500.00")))
}
