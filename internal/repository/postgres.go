package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restate/internal/model"
	"restate/internal/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// propertyColumns maps predicate attributes to columns of the properties table
var propertyColumns = map[string]string{
	model.AttrType:      "type",
	model.AttrName:      "name",
	model.AttrAddress:   "address",
	model.AttrPrice:     "price",
	model.AttrArea:      "area",
	model.AttrBedrooms:  "bedrooms",
	model.AttrBathrooms: "bathrooms",
	model.AttrCreatedAt: "created_at",
}

const selectProperties = `
	SELECT
		id, name, address, type, price, area, bedrooms, bathrooms,
		rating, image, geolocation, created_at, updated_at
	FROM properties`

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &PostgresRepository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) ensureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS properties (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			area DOUBLE PRECISION NOT NULL DEFAULT 0,
			bedrooms INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			rating DOUBLE PRECISION,
			image TEXT,
			geolocation TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(type);
		CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ListProperties runs a predicate query against the properties table
func (r *PostgresRepository) ListProperties(ctx context.Context, query []model.Predicate) ([]model.Property, error) {
	stmt, args, err := BuildListQuery(query)
	if err != nil {
		return nil, err
	}

	var properties []model.Property
	if err := r.db.SelectContext(ctx, &properties, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	return properties, nil
}

// GetProperty retrieves a single property by its ID
func (r *PostgresRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	var p model.Property
	err := r.db.GetContext(ctx, &p, selectProperties+` WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

// UpsertProperties inserts or updates properties by ID
func (r *PostgresRepository) UpsertProperties(ctx context.Context, properties []model.Property) (int, error) {
	if len(properties) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO properties (id, name, address, type, price, area, bedrooms, bathrooms, rating, image, geolocation, created_at)
		VALUES (:id, :name, :address, :type, :price, :area, :bedrooms, :bathrooms, :rating, :image, :geolocation, :created_at)
		ON CONFLICT (id) DO UPDATE
		SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			type = EXCLUDED.type,
			price = EXCLUDED.price,
			area = EXCLUDED.area,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			rating = EXCLUDED.rating,
			image = EXCLUDED.image,
			geolocation = EXCLUDED.geolocation,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	total := 0
	for _, p := range properties {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, p); err != nil {
			return 0, fmt.Errorf("upsert property %q: %w", p.ID, err)
		}
		total++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return total, nil
}

// queryBuilder accumulates WHERE clauses and positional arguments
type queryBuilder struct {
	args     []interface{}
	argIndex int
}

func (b *queryBuilder) bind(v interface{}) string {
	b.args = append(b.args, v)
	placeholder := fmt.Sprintf("$%d", b.argIndex)
	b.argIndex++
	return placeholder
}

func (b *queryBuilder) condition(p model.Predicate) (string, error) {
	if p.Method == model.MethodOr {
		if len(p.Queries) == 0 {
			return "", fmt.Errorf("or predicate has no queries")
		}
		parts := make([]string, 0, len(p.Queries))
		for _, q := range p.Queries {
			part, err := b.condition(q)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}

	column, ok := propertyColumns[p.Attribute]
	if !ok {
		return "", fmt.Errorf("unknown attribute %q", p.Attribute)
	}
	if len(p.Values) != 1 {
		return "", fmt.Errorf("%s predicate on %q needs exactly one value", p.Method, p.Attribute)
	}
	value := p.Values[0]

	switch p.Method {
	case model.MethodEqual:
		return fmt.Sprintf("%s = %s", column, b.bind(value)), nil
	case model.MethodGreaterThanEqual:
		return fmt.Sprintf("%s >= %s", column, b.bind(value)), nil
	case model.MethodLessThanEqual:
		return fmt.Sprintf("%s <= %s", column, b.bind(value)), nil
	case model.MethodSearch:
		text, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("search predicate on %q needs a string value", p.Attribute)
		}
		cond, param, next := utils.BuildContainsCondition(column, text, b.argIndex)
		b.args = append(b.args, param)
		b.argIndex = next
		return cond, nil
	}
	return "", fmt.Errorf("unsupported predicate method %q", p.Method)
}

// BuildListQuery translates predicates into a SELECT statement and its arguments
func BuildListQuery(query []model.Predicate) (string, []interface{}, error) {
	b := &queryBuilder{argIndex: 1}
	whereClauses := []string{"1=1"}
	var orderBy []string
	limit := -1

	for _, p := range query {
		switch p.Method {
		case model.MethodOrderDesc:
			column, ok := propertyColumns[p.Attribute]
			if !ok {
				return "", nil, fmt.Errorf("unknown order attribute %q", p.Attribute)
			}
			orderBy = append(orderBy, column+" DESC")
		case model.MethodLimit:
			if len(p.Values) != 1 {
				return "", nil, fmt.Errorf("limit predicate needs exactly one value")
			}
			n, ok := p.Values[0].(int)
			if !ok || n < 0 {
				return "", nil, fmt.Errorf("invalid limit %v", p.Values[0])
			}
			limit = n
		default:
			cond, err := b.condition(p)
			if err != nil {
				return "", nil, err
			}
			whereClauses = append(whereClauses, cond)
		}
	}

	stmt := selectProperties + "\n\tWHERE " + strings.Join(whereClauses, " AND ")
	if len(orderBy) > 0 {
		stmt += "\n\tORDER BY " + strings.Join(orderBy, ", ")
	}
	if limit >= 0 {
		stmt += "\n\tLIMIT " + b.bind(limit)
	}
	return stmt, b.args, nil
}
