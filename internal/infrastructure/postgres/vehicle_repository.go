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

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implements VehicleRepository (usable with pool or tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository builds the adapter.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persists a new vehicle.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, vin, plate_number, manufacturer, model, year, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.VIN, vehicle.PlateNumber, vehicle.Manufacturer, vehicle.Model,
		vehicle.Year, vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID fetches a vehicle by ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `
		SELECT id, COALESCE(vin, ''), plate_number, manufacturer, model, year, created_at, updated_at
		FROM vehicles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByVIN fetches a vehicle by VIN.
func (r *VehicleRepo) GetByVIN(vin string) (*entity.Vehicle, error) {
	query := `
		SELECT id, COALESCE(vin, ''), plate_number, manufacturer, model, year, created_at, updated_at
		FROM vehicles WHERE vin = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, vin))
}

func (r *VehicleRepo) scanOne(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.ID, &v.VIN, &v.PlateNumber, &v.Manufacturer, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// List returns vehicles, newest first, paginated.
func (r *VehicleRepo) List(limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT id, COALESCE(vin, ''), plate_number, manufacturer, model, year, created_at, updated_at
		FROM vehicles ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.VIN, &v.PlateNumber, &v.Manufacturer, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update overwrites a vehicle.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET vin = NULLIF($2, ''), plate_number = $3, manufacturer = $4, model = $5, year = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vehicle.ID, vehicle.VIN, vehicle.PlateNumber, vehicle.Manufacturer, vehicle.Model,
		vehicle.Year, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// Delete removes a vehicle by ID.
func (r *VehicleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
