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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implements ClientRepository (usable with pool or tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository builds the adapter. Pass a pool or a tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persists a new client.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, first_name, last_name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.FirstName, client.LastName, client.Phone, client.Email,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID fetches a client by ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List returns clients ordered by last name, paginated.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, created_at, updated_at
		FROM clients ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update overwrites a client.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET first_name = $2, last_name = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.FirstName, client.LastName, client.Phone, client.Email, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete removes a client by ID.
func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
