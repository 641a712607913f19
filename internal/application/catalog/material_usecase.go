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

// MaterialUseCase CRUD for the parts catalog.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase builds the use case.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create adds a catalog material.
func (uc *MaterialUseCase) Create(in dto.SaveMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Price) == "" {
		return nil, domain.ErrInvalidInput
	}
	price := pricing.Round2(pricing.ParseAmount(in.Price))
	if price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	material := &entity.Material{
		ID:        uuid.New().String(),
		Name:      name,
		Unit:      strings.TrimSpace(in.Unit),
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID fetches a catalog material.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// List returns catalog materials sorted by name with Polish collation.
func (uc *MaterialUseCase) List(limit, offset int) ([]*dto.MaterialResponse, error) {
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
	out := make([]*dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMaterialResponse(m))
	}
	return out, nil
}

// Update overwrites a catalog material.
func (uc *MaterialUseCase) Update(id string, in dto.SaveMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
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
	material.Name = name
	material.Unit = strings.TrimSpace(in.Unit)
	material.Price = price
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete removes a catalog material.
func (uc *MaterialUseCase) Delete(id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{ID: m.ID, Name: m.Name, Unit: m.Unit, Price: m.Price}
}
