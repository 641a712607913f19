// Package orders implements the repair-order use cases: order CRUD with the
// delete-and-reinsert line save path, and printable estimate generation for
// both stored orders and unsaved drafts.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

const defaultVATRatePercent = 23

const orderDateLayout = "2006-01-02"

// Name shown for a line whose catalog entry has since been removed.
const removedItemName = "(pozycja usunięta)"

// OrderUseCase orchestrates order persistence and estimate generation.
type OrderUseCase struct {
	orders    repository.OrderRepository
	clients   repository.ClientRepository
	vehicles  repository.VehicleRepository
	services  repository.ServiceRepository
	materials repository.MaterialRepository
	tx        TxRunner
	pdf       EstimatePDFGenerator
	shop      ShopIdentity
}

// NewOrderUseCase builds the use case.
func NewOrderUseCase(
	orders repository.OrderRepository,
	clients repository.ClientRepository,
	vehicles repository.VehicleRepository,
	services repository.ServiceRepository,
	materials repository.MaterialRepository,
	tx TxRunner,
	pdf EstimatePDFGenerator,
	shop ShopIdentity,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		clients:   clients,
		vehicles:  vehicles,
		services:  services,
		materials: materials,
		tx:        tx,
		pdf:       pdf,
		shop:      shop,
	}
}

// builtLine pairs a priced line with the catalog reference it came from.
type builtLine struct {
	refID string
	line  pricing.LineItem
}

func lineItems(built []builtLine) []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(built))
	for _, b := range built {
		out = append(out, b.line)
	}
	return out
}

// buildServiceLines prices the requested service lines against the labor
// catalog. The catalog price drives the total unless the request overrides
// the unit price or the amount directly.
func (uc *OrderUseCase) buildServiceLines(reqs []dto.OrderLineRequest) ([]builtLine, error) {
	out := make([]builtLine, 0, len(reqs))
	for _, r := range reqs {
		svc, err := uc.services.GetByID(r.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, domain.ErrInvalidInput
		}
		qty := pricing.ParseQuantity(r.Quantity, "")
		line := pricing.NewLineItem(svc.Name, "", "", svc.Price, qty)
		line, err = applyOverrides(line, r)
		if err != nil {
			return nil, err
		}
		out = append(out, builtLine{refID: svc.ID, line: line})
	}
	return out, nil
}

// buildMaterialLines prices the requested material lines against the parts
// catalog. The unit comes from the catalog; the catalog number is whatever
// the mechanic typed for this order.
func (uc *OrderUseCase) buildMaterialLines(reqs []dto.OrderLineRequest) ([]builtLine, error) {
	out := make([]builtLine, 0, len(reqs))
	for _, r := range reqs {
		mat, err := uc.materials.GetByID(r.MaterialID)
		if err != nil {
			return nil, err
		}
		if mat == nil {
			return nil, domain.ErrInvalidInput
		}
		qty := pricing.ParseQuantity(r.Quantity, mat.Unit)
		line := pricing.NewLineItem(mat.Name, r.CatalogNumber, mat.Unit, mat.Price, qty)
		line, err = applyOverrides(line, r)
		if err != nil {
			return nil, err
		}
		out = append(out, builtLine{refID: mat.ID, line: line})
	}
	return out, nil
}

// applyOverrides rejects a payload carrying both overrides: unit_price and
// amount each imply the other through the quantity, so honoring one would
// silently discard the other.
func applyOverrides(line pricing.LineItem, r dto.OrderLineRequest) (pricing.LineItem, error) {
	switch {
	case r.UnitPrice != nil && r.Amount != nil:
		return pricing.LineItem{}, domain.ErrInvalidInput
	case r.UnitPrice != nil:
		return line.WithUnitPrice(*r.UnitPrice), nil
	case r.Amount != nil:
		return line.WithTotal(*r.Amount), nil
	default:
		return line, nil
	}
}

func parseOrderDate(raw string) time.Time {
	if t, err := time.Parse(orderDateLayout, raw); err == nil {
		return t
	}
	return time.Now()
}

// Create saves a new order with its lines in one transaction.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.SaveOrderRequest) (*dto.OrderResponse, error) {
	client, vehicle, err := uc.lookupParties(in.ClientID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	serviceLines, err := uc.buildServiceLines(in.Services)
	if err != nil {
		return nil, err
	}
	materialLines, err := uc.buildMaterialLines(in.Materials)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		ClientID:    client.ID,
		VehicleID:   vehicle.ID,
		DamageNotes: in.DamageNotes,
		OrderDate:   parseOrderDate(in.OrderDate),
		Total:       pricing.CombinedTotal(lineItems(serviceLines), lineItems(materialLines)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.tx.RunInTx(ctx, func(repo repository.OrderRepository) error {
		if err := repo.Create(order); err != nil {
			return err
		}
		return insertLines(repo, order.ID, serviceLines, materialLines)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, serviceLines, materialLines), nil
}

// Update replaces an order's header and all of its lines. Lines are deleted
// and reinserted wholesale; this is the save path the order form uses.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.SaveOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	client, vehicle, err := uc.lookupParties(in.ClientID, in.VehicleID)
	if err != nil {
		return nil, err
	}
	serviceLines, err := uc.buildServiceLines(in.Services)
	if err != nil {
		return nil, err
	}
	materialLines, err := uc.buildMaterialLines(in.Materials)
	if err != nil {
		return nil, err
	}

	order.ClientID = client.ID
	order.VehicleID = vehicle.ID
	order.DamageNotes = in.DamageNotes
	if in.OrderDate != "" {
		order.OrderDate = parseOrderDate(in.OrderDate)
	}
	order.Total = pricing.CombinedTotal(lineItems(serviceLines), lineItems(materialLines))
	order.UpdatedAt = time.Now()

	err = uc.tx.RunInTx(ctx, func(repo repository.OrderRepository) error {
		if err := repo.Update(order); err != nil {
			return err
		}
		if err := repo.DeleteLines(order.ID); err != nil {
			return err
		}
		return insertLines(repo, order.ID, serviceLines, materialLines)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, serviceLines, materialLines), nil
}

func (uc *OrderUseCase) lookupParties(clientID, vehicleID string) (*entity.Client, *entity.Vehicle, error) {
	client, err := uc.clients.GetByID(clientID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicles.GetByID(vehicleID)
	if err != nil {
		return nil, nil, err
	}
	if vehicle == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	return client, vehicle, nil
}

// insertLines persists the lines with their payload order as position, so
// reads bring them back exactly as the form listed them.
func insertLines(repo repository.OrderRepository, orderID string, serviceLines, materialLines []builtLine) error {
	for i, b := range serviceLines {
		err := repo.CreateServiceLine(&entity.OrderService{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ServiceID: b.refID,
			Position:  i,
			Quantity:  b.line.Quantity,
			Amount:    b.line.Total,
		})
		if err != nil {
			return err
		}
	}
	for i, b := range materialLines {
		err := repo.CreateMaterialLine(&entity.OrderMaterial{
			ID:            uuid.New().String(),
			OrderID:       orderID,
			MaterialID:    b.refID,
			CatalogNumber: b.line.CatalogNumber,
			Position:      i,
			Quantity:      b.line.Quantity,
			Amount:        b.line.Total,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns an order with its lines, names resolved from the catalogs.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	serviceLines, materialLines, err := uc.loadLines(order.ID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order, nil, nil)
	resp.Services = serviceLines
	resp.Materials = materialLines
	return resp, nil
}

// loadLines reads the persisted lines of an order and resolves their display
// names against the catalogs, keeping a placeholder for removed entries.
func (uc *OrderUseCase) loadLines(orderID string) ([]dto.OrderLineResponse, []dto.OrderLineResponse, error) {
	svcRows, err := uc.orders.GetServiceLines(orderID)
	if err != nil {
		return nil, nil, err
	}
	matRows, err := uc.orders.GetMaterialLines(orderID)
	if err != nil {
		return nil, nil, err
	}

	services := make([]dto.OrderLineResponse, 0, len(svcRows))
	for _, row := range svcRows {
		name := removedItemName
		if svc, err := uc.services.GetByID(row.ServiceID); err == nil && svc != nil {
			name = svc.Name
		}
		services = append(services, dto.OrderLineResponse{
			ID:       row.ID,
			RefID:    row.ServiceID,
			Name:     name,
			Quantity: row.Quantity,
			Amount:   row.Amount,
		})
	}

	materials := make([]dto.OrderLineResponse, 0, len(matRows))
	for _, row := range matRows {
		name := removedItemName
		unit := ""
		if mat, err := uc.materials.GetByID(row.MaterialID); err == nil && mat != nil {
			name = mat.Name
			unit = mat.Unit
		}
		materials = append(materials, dto.OrderLineResponse{
			ID:            row.ID,
			RefID:         row.MaterialID,
			Name:          name,
			CatalogNumber: row.CatalogNumber,
			Unit:          unit,
			Quantity:      row.Quantity,
			Amount:        row.Amount,
		})
	}
	return services, materials, nil
}

// List returns order summaries, newest first.
func (uc *OrderUseCase) List(limit, offset int) ([]*dto.OrderSummaryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := uc.orders.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.OrderSummaryResponse{
			ID:          row.ID,
			ClientName:  row.ClientFirstName + " " + row.ClientLastName,
			Vehicle:     row.Manufacturer + " " + row.Model,
			PlateNumber: row.PlateNumber,
			OrderDate:   row.OrderDate.Format(orderDateLayout),
			Total:       row.Total,
		})
	}
	return out, nil
}

// Delete removes an order. Line rows go with it via the schema's cascade.
func (uc *OrderUseCase) Delete(id string) error {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orders.Delete(id)
}

// GenerateEstimate renders the estimate PDF for a stored order. Returns the
// suggested filename alongside the document bytes.
func (uc *OrderUseCase) GenerateEstimate(id string, in dto.EstimateRequest, issuedBy string) (string, []byte, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return "", nil, err
	}
	if order == nil {
		return "", nil, domain.ErrNotFound
	}
	client, err := uc.clients.GetByID(order.ClientID)
	if err != nil {
		return "", nil, err
	}
	vehicle, err := uc.vehicles.GetByID(order.VehicleID)
	if err != nil {
		return "", nil, err
	}

	services, materials, err := uc.storedLineItems(order.ID)
	if err != nil {
		return "", nil, err
	}
	return uc.renderEstimate(client, vehicle, services, materials, order.DamageNotes, in, issuedBy)
}

// GenerateDraftEstimate renders an estimate for a draft that has not been
// saved: the lines come straight from the request payload.
func (uc *OrderUseCase) GenerateDraftEstimate(in dto.DraftEstimateRequest, issuedBy string) (string, []byte, error) {
	client, err := uc.clients.GetByID(in.ClientID)
	if err != nil {
		return "", nil, err
	}
	vehicle, err := uc.vehicles.GetByID(in.VehicleID)
	if err != nil {
		return "", nil, err
	}
	serviceLines, err := uc.buildServiceLines(in.Services)
	if err != nil {
		return "", nil, err
	}
	materialLines, err := uc.buildMaterialLines(in.Materials)
	if err != nil {
		return "", nil, err
	}
	return uc.renderEstimate(client, vehicle, lineItems(serviceLines), lineItems(materialLines), "", in.EstimateRequest, issuedBy)
}

// storedLineItems reconstructs pricing lines from persisted rows. Only the
// gross amount and quantity survive storage; the unit price is recovered as
// amount/quantity when rendering.
func (uc *OrderUseCase) storedLineItems(orderID string) ([]pricing.LineItem, []pricing.LineItem, error) {
	svcRows, err := uc.orders.GetServiceLines(orderID)
	if err != nil {
		return nil, nil, err
	}
	matRows, err := uc.orders.GetMaterialLines(orderID)
	if err != nil {
		return nil, nil, err
	}

	services := make([]pricing.LineItem, 0, len(svcRows))
	for _, row := range svcRows {
		name := removedItemName
		if svc, err := uc.services.GetByID(row.ServiceID); err == nil && svc != nil {
			name = svc.Name
		}
		services = append(services, pricing.LineItem{
			Name:     name,
			Quantity: row.Quantity,
			Total:    row.Amount,
		})
	}

	materials := make([]pricing.LineItem, 0, len(matRows))
	for _, row := range matRows {
		name := removedItemName
		unit := ""
		if mat, err := uc.materials.GetByID(row.MaterialID); err == nil && mat != nil {
			name = mat.Name
			unit = mat.Unit
		}
		materials = append(materials, pricing.LineItem{
			Name:          name,
			CatalogNumber: row.CatalogNumber,
			Unit:          unit,
			Quantity:      row.Quantity,
			Total:         row.Amount,
		})
	}
	return services, materials, nil
}

func (uc *OrderUseCase) renderEstimate(
	client *entity.Client,
	vehicle *entity.Vehicle,
	services, materials []pricing.LineItem,
	damageNotes string,
	in dto.EstimateRequest,
	issuedBy string,
) (string, []byte, error) {
	if err := ReadyForEstimate(client, vehicle, len(services)+len(materials)); err != nil {
		return "", nil, err
	}
	rate := defaultVATRatePercent
	if in.VATRatePercent != nil && *in.VATRatePercent >= 0 {
		rate = *in.VATRatePercent
	}
	notes := in.Notes
	if notes == "" {
		notes = damageNotes
	}
	now := time.Now()
	doc := AssembleEstimate(AssembleInput{
		Shop:            uc.shop,
		Client:          client,
		Vehicle:         vehicle,
		Services:        services,
		Materials:       materials,
		VATRatePercent:  rate,
		Mode:            in.PricingMode,
		TotalRepairCost: in.TotalRepairCost,
		Notes:           notes,
		IssuedAt:        now,
		IssuedBy:        issuedBy,
	})
	pdfBytes, err := uc.pdf.Render(doc)
	if err != nil {
		return "", nil, err
	}
	return EstimateFilename(vehicle.PlateNumber, now), pdfBytes, nil
}

func toOrderResponse(order *entity.Order, serviceLines, materialLines []builtLine) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          order.ID,
		ClientID:    order.ClientID,
		VehicleID:   order.VehicleID,
		DamageNotes: order.DamageNotes,
		OrderDate:   order.OrderDate.Format(orderDateLayout),
		Total:       order.Total,
		Services:    make([]dto.OrderLineResponse, 0, len(serviceLines)),
		Materials:   make([]dto.OrderLineResponse, 0, len(materialLines)),
		CreatedAt:   order.CreatedAt,
	}
	for _, b := range serviceLines {
		resp.Services = append(resp.Services, dto.OrderLineResponse{
			RefID:    b.refID,
			Name:     b.line.Name,
			Quantity: b.line.Quantity,
			Amount:   b.line.Total,
		})
	}
	for _, b := range materialLines {
		resp.Materials = append(resp.Materials, dto.OrderLineResponse{
			RefID:         b.refID,
			Name:          b.line.Name,
			CatalogNumber: b.line.CatalogNumber,
			Unit:          b.line.Unit,
			Quantity:      b.line.Quantity,
			Amount:        b.line.Total,
		})
	}
	return resp
}
