// Package catalog holds the use cases for the price lists the workshop picks
// order lines from: labor services and materials.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
	"github.com/kwisniewski/warsztat-api/internal/domain/pricing"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

// ServiceUseCase CRUD for the labor catalog.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase builds the use case.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// Create adds a catalog service. The price string accepts a comma separator
// and must not be negative.
func (uc *ServiceUseCase) Create(in dto.SaveServiceRequest) (*dto.ServiceResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Price) == "" {
		return nil, domain.ErrInvalidInput
	}
	price := pricing.Round2(pricing.ParseAmount(in.Price))
	if price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	service := &entity.ServiceItem{
		ID:        uuid.New().String(),
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(service); err != nil {
		return nil, err
	}
	return toServiceResponse(service), nil
}

// GetByID fetches a catalog service.
func (uc *ServiceUseCase) GetByID(id string) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	return toServiceResponse(service), nil
}

// List returns catalog services sorted by name with Polish collation, so
// "Ładowanie klimatyzacji" lands where a Polish reader expects it.
func (uc *ServiceUseCase) List(limit, offset int) ([]*dto.ServiceResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	coll := collate.New(language.Polish)
	sort.SliceStable(list, func(i, j int) bool {
		return coll.CompareString(list[i].Name, list[j].Name) < 0
	})
	out := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	return out, nil
}

// Update overwrites a catalog service.
func (uc *ServiceUseCase) Update(id string, in dto.SaveServiceRequest) (*dto.ServiceResponse, error) {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Price) == "" {
		return nil, domain.ErrInvalidInput
	}
	price := pricing.Round2(pricing.ParseAmount(in.Price))
	if price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	service.Name = name
	service.Price = price
	service.UpdatedAt = time.Now()
	if err := uc.repo.Update(service); err != nil {
		return nil, err
	}
	return toServiceResponse(service), nil
}

// Delete removes a catalog service.
func (uc *ServiceUseCase) Delete(id string) error {
	service, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if service == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toServiceResponse(s *entity.ServiceItem) *dto.ServiceResponse {
	return &dto.ServiceResponse{ID: s.ID, Name: s.Name, Price: s.Price}
}
