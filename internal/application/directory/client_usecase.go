// Package directory holds the use cases for the workshop's address book:
// clients and their vehicles.
package directory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

// ClientUseCase CRUD for clients.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase builds the use case.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registers a new client. First and last name are required.
func (uc *ClientUseCase) Create(in dto.SaveClientRequest) (*dto.ClientResponse, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		FirstName: first,
		LastName:  last,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID fetches a single client.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List returns clients ordered by last name.
func (uc *ClientUseCase) List(limit, offset int) ([]*dto.ClientResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update overwrites a client's details.
func (uc *ClientUseCase) Update(id string, in dto.SaveClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, domain.ErrInvalidInput
	}
	client.FirstName = first
	client.LastName = last
	client.Phone = strings.TrimSpace(in.Phone)
	client.Email = strings.TrimSpace(in.Email)
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete removes a client.
func (uc *ClientUseCase) Delete(id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}
