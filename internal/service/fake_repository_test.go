package service

import (
	"context"
	"sync"

	"restate/internal/model"
	"restate/internal/repository"
)

type fakeRepository struct {
	mu      sync.Mutex
	records []model.Property
	err     error
	queries [][]model.Predicate
	list    func(ctx context.Context, query []model.Predicate) ([]model.Property, error)
}

var _ repository.PropertyRepository = (*fakeRepository)(nil)

func (f *fakeRepository) ListProperties(ctx context.Context, query []model.Predicate) ([]model.Property, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	list := f.list
	records, err := f.records, f.err
	f.mu.Unlock()

	if list != nil {
		return list(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	out := make([]model.Property, len(records))
	copy(out, records)
	return out, nil
}

func (f *fakeRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.records {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) UpsertProperties(ctx context.Context, properties []model.Property) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, properties...)
	return len(properties), nil
}

func (f *fakeRepository) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeRepository) setError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func testProperty(id, name, typ string, price float64, bedrooms int) model.Property {
	return model.Property{
		ID:        id,
		Name:      name,
		Address:   id + " Harbour Road",
		Type:      typ,
		Price:     price,
		Area:      2000,
		Bedrooms:  bedrooms,
		Bathrooms: 2,
	}
}
