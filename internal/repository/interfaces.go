package repository

import (
	"context"

	"restate/internal/model"
)

// PropertyRepository is the remote property store
type PropertyRepository interface {
	ListProperties(ctx context.Context, query []model.Predicate) ([]model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	UpsertProperties(ctx context.Context, properties []model.Property) (int, error)
}

// Ensure PostgresRepository implements PropertyRepository
var _ PropertyRepository = (*PostgresRepository)(nil)
