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

var _ repository.ServiceRepository = (*ServiceRepo)(nil)
var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// ServiceRepo implements ServiceRepository (usable with pool or tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository builds the adapter.
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persists a catalog service.
func (r *ServiceRepo) Create(service *entity.ServiceItem) error {
	query := `
		INSERT INTO services (id, name, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		service.ID, service.Name, service.Price, service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID fetches a catalog service by ID.
func (r *ServiceRepo) GetByID(id string) (*entity.ServiceItem, error) {
	query := `SELECT id, name, price, created_at, updated_at FROM services WHERE id = $1`
	var s entity.ServiceItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Price, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// List returns catalog services ordered by name, paginated. Locale-aware
// ordering happens in the use case; the SQL order just keeps pages stable.
func (r *ServiceRepo) List(limit, offset int) ([]*entity.ServiceItem, error) {
	query := `SELECT id, name, price, created_at, updated_at FROM services ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceItem
	for rows.Next() {
		var s entity.ServiceItem
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update overwrites a catalog service.
func (r *ServiceRepo) Update(service *entity.ServiceItem) error {
	query := `UPDATE services SET name = $2, price = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		service.ID, service.Name, service.Price, service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// Delete removes a catalog service by ID.
func (r *ServiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// MaterialRepo implements MaterialRepository (usable with pool or tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository builds the adapter.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persists a catalog material.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, unit, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Unit, material.Price, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID fetches a catalog material by ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT id, name, unit, price, created_at, updated_at FROM materials WHERE id = $1`
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Unit, &m.Price, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List returns catalog materials ordered by name, paginated.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := `SELECT id, name, unit, price, created_at, updated_at FROM materials ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update overwrites a catalog material.
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `UPDATE materials SET name = $2, unit = $3, price = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Unit, material.Price, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// Delete removes a catalog material by ID.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
