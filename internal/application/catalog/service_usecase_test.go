package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwisniewski/warsztat-api/internal/application/dto"
	"github.com/kwisniewski/warsztat-api/internal/domain"
	"github.com/kwisniewski/warsztat-api/internal/domain/entity"
)

type fakeServiceRepo struct {
	byID  map[string]*entity.ServiceItem
	order []string
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{byID: map[string]*entity.ServiceItem{}}
}

func (f *fakeServiceRepo) Create(s *entity.ServiceItem) error {
	f.byID[s.ID] = s
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeServiceRepo) GetByID(id string) (*entity.ServiceItem, error) {
	return f.byID[id], nil
}

func (f *fakeServiceRepo) List(limit, offset int) ([]*entity.ServiceItem, error) {
	var out []*entity.ServiceItem
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(s *entity.ServiceItem) error { f.byID[s.ID] = s; return nil }
func (f *fakeServiceRepo) Delete(id string) error             { delete(f.byID, id); return nil }

func TestServiceCreateParsesCommaPrice(t *testing.T) {
	uc := NewServiceUseCase(newFakeServiceRepo())

	created, err := uc.Create(dto.SaveServiceRequest{Name: " Wymiana oleju ", Price: "120,50"})
	require.NoError(t, err)
	assert.Equal(t, "Wymiana oleju", created.Name)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("120.50")))
}

func TestServiceCreateValidation(t *testing.T) {
	uc := NewServiceUseCase(newFakeServiceRepo())

	_, err := uc.Create(dto.SaveServiceRequest{Name: "", Price: "10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.SaveServiceRequest{Name: "Diagnostyka", Price: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.SaveServiceRequest{Name: "Diagnostyka", Price: "-5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Polish collation: Ł sorts after L, not after Z like a plain byte sort
// would put it.
func TestServiceListSortsWithPolishCollation(t *testing.T) {
	repo := newFakeServiceRepo()
	uc := NewServiceUseCase(repo)

	for _, name := range []string{"Zbieżność kół", "Ładowanie klimatyzacji", "Lakierowanie"} {
		_, err := uc.Create(dto.SaveServiceRequest{Name: name, Price: "100"})
		require.NoError(t, err)
	}

	list, err := uc.List(10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Lakierowanie", list[0].Name)
	assert.Equal(t, "Ładowanie klimatyzacji", list[1].Name)
	assert.Equal(t, "Zbieżność kół", list[2].Name)
}

func TestServiceUpdateMissing(t *testing.T) {
	uc := NewServiceUseCase(newFakeServiceRepo())
	_, err := uc.Update("nope", dto.SaveServiceRequest{Name: "X", Price: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
