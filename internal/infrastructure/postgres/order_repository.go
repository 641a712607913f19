package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository (usable with pool or tx). The line
// write methods assume they run inside a transaction via the TxRunner.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the adapter.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists the order header.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, client_id, vehicle_id, damage_notes, order_date, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ClientID, order.VehicleID, order.DamageNotes, order.OrderDate,
		order.Total, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Update overwrites the order header.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET client_id = $2, vehicle_id = $3, damage_notes = $4, order_date = $5, total = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ClientID, order.VehicleID, order.DamageNotes, order.OrderDate,
		order.Total, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// Delete removes an order. Line rows cascade via the schema.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// GetByID fetches an order header by ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT id, client_id, vehicle_id, damage_notes, order_date, total, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ClientID, &o.VehicleID, &o.DamageNotes, &o.OrderDate, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// List returns order summaries joined with client and vehicle identity,
// newest first.
func (r *OrderRepo) List(limit, offset int) ([]*entity.OrderSummary, error) {
	query := `
		SELECT o.id, o.client_id, o.vehicle_id, o.damage_notes, o.order_date, o.total, o.created_at, o.updated_at,
		       c.first_name, c.last_name, v.manufacturer, v.model, v.plate_number
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		JOIN vehicles v ON v.id = o.vehicle_id
		ORDER BY o.order_date DESC, o.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderSummary
	for rows.Next() {
		var s entity.OrderSummary
		err := rows.Scan(
			&s.ID, &s.ClientID, &s.VehicleID, &s.DamageNotes, &s.OrderDate, &s.Total, &s.CreatedAt, &s.UpdatedAt,
			&s.ClientFirstName, &s.ClientLastName, &s.Manufacturer, &s.Model, &s.PlateNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreateServiceLine persists one service line.
func (r *OrderRepo) CreateServiceLine(line *entity.OrderService) error {
	query := `
		INSERT INTO order_services (id, order_id, service_id, position, quantity, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.ServiceID, line.Position, line.Quantity, line.Amount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert order service line: %w", err)
	}
	return nil
}

// CreateMaterialLine persists one material line.
func (r *OrderRepo) CreateMaterialLine(line *entity.OrderMaterial) error {
	query := `
		INSERT INTO order_materials (id, order_id, material_id, catalog_number, position, quantity, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.OrderID, line.MaterialID, line.CatalogNumber, line.Position, line.Quantity, line.Amount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert order material line: %w", err)
	}
	return nil
}

// DeleteLines wipes all lines of an order, both kinds.
func (r *OrderRepo) DeleteLines(orderID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM order_services WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order service lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_materials WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order material lines: %w", err)
	}
	return nil
}

// GetServiceLines reads the service lines of an order by stored position.
// created_at cannot order lines: one save inserts them all in a single
// transaction, so every row carries the same timestamp.
func (r *OrderRepo) GetServiceLines(orderID string) ([]*entity.OrderService, error) {
	query := `
		SELECT id, order_id, service_id, position, quantity, amount
		FROM order_services WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order service lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderService
	for rows.Next() {
		var l entity.OrderService
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ServiceID, &l.Position, &l.Quantity, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan order service line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetMaterialLines reads the material lines of an order by stored position.
func (r *OrderRepo) GetMaterialLines(orderID string) ([]*entity.OrderMaterial, error) {
	query := `
		SELECT id, order_id, material_id, COALESCE(catalog_number, ''), position, quantity, amount
		FROM order_materials WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order material lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderMaterial
	for rows.Next() {
		var l entity.OrderMaterial
		if err := rows.Scan(&l.ID, &l.OrderID, &l.MaterialID, &l.CatalogNumber, &l.Position, &l.Quantity, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan order material line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
