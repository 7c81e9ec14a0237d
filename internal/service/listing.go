package service

import (
	"context"
	"log"
	"strings"
	"time"

	"restate/internal/model"
	"restate/internal/repository"
	"restate/internal/utils"
)

// typeParamAll is the URL filter value that means "no type constraint"
const typeParamAll = "All"

// ListingService resolves filters into property queries and results
type ListingService struct {
	repo   repository.PropertyRepository
	bounds model.FilterBounds
	limit  int
}

// NewListingService creates a new listing service
func NewListingService(repo repository.PropertyRepository, bounds model.FilterBounds, limit int) *ListingService {
	return &ListingService{
		repo:   repo,
		bounds: bounds,
		limit:  limit,
	}
}

// ResolveCriteria turns the applied filters and navigation params into criteria.
// The URL filter param takes precedence over the first selected type. Ranges
// that span the full slider bounds impose no constraint.
func ResolveCriteria(filters model.FilterShape, params model.ListingParams, bounds model.FilterBounds) model.Criteria {
	var c model.Criteria

	typeParam := strings.TrimSpace(params.Filter)
	if typeParam != "" && typeParam != typeParamAll {
		t := utils.NormalizePropertyType(typeParam)
		c.Type = &t
	} else if len(filters.Types) > 0 {
		t := filters.Types[0]
		c.Type = &t
	}

	if price := filters.PriceRange.Ordered(); !price.Covers(bounds.Price) {
		low := price.Low() * model.PriceUnit
		high := price.High() * model.PriceUnit
		c.PriceMin = &low
		c.PriceMax = &high
	}

	if size := filters.SizeRange.Ordered(); !size.Covers(bounds.Size) {
		low := size.Low()
		high := size.High()
		c.AreaMin = &low
		c.AreaMax = &high
	}

	if filters.Bedrooms > 0 {
		n := filters.Bedrooms
		c.BedroomsMin = &n
	}
	if filters.Bathrooms > 0 {
		n := filters.Bathrooms
		c.BathroomsMin = &n
	}

	if text := strings.TrimSpace(params.Query); text != "" {
		c.Text = &text
	}

	return c
}

// BuildQuery converts criteria into predicates for the property store.
// Without any criteria the list falls back to newest first.
func BuildQuery(c model.Criteria, limit int) []model.Predicate {
	var query []model.Predicate

	if c.Type != nil {
		query = append(query, model.Equal(model.AttrType, *c.Type))
	}
	if c.PriceMin != nil {
		query = append(query, model.GreaterThanEqual(model.AttrPrice, *c.PriceMin))
	}
	if c.PriceMax != nil {
		query = append(query, model.LessThanEqual(model.AttrPrice, *c.PriceMax))
	}
	if c.AreaMin != nil {
		query = append(query, model.GreaterThanEqual(model.AttrArea, *c.AreaMin))
	}
	if c.AreaMax != nil {
		query = append(query, model.LessThanEqual(model.AttrArea, *c.AreaMax))
	}
	if c.BedroomsMin != nil {
		query = append(query, model.GreaterThanEqual(model.AttrBedrooms, *c.BedroomsMin))
	}
	if c.BathroomsMin != nil {
		query = append(query, model.GreaterThanEqual(model.AttrBathrooms, *c.BathroomsMin))
	}
	if c.Text != nil {
		query = append(query, model.Or(
			model.Search(model.AttrName, *c.Text),
			model.Search(model.AttrAddress, *c.Text),
			model.Search(model.AttrType, *c.Text),
		))
	}

	if c.IsEmpty() {
		query = append(query, model.OrderDesc(model.AttrCreatedAt))
	}
	if limit > 0 {
		query = append(query, model.Limit(limit))
	}
	return query
}

// FilterProperties re-applies criteria to already fetched records.
// It does not depend on how the remote query was built.
func FilterProperties(records []model.Property, c model.Criteria) []model.Property {
	out := make([]model.Property, 0, len(records))
	for _, p := range records {
		if Matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether one record satisfies every criterion
func Matches(p model.Property, c model.Criteria) bool {
	if c.Type != nil && !strings.EqualFold(p.Type, *c.Type) {
		return false
	}
	if c.PriceMin != nil && p.Price < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && p.Price > *c.PriceMax {
		return false
	}
	if c.AreaMin != nil && p.Area < *c.AreaMin {
		return false
	}
	if c.AreaMax != nil && p.Area > *c.AreaMax {
		return false
	}
	if c.BedroomsMin != nil && p.Bedrooms < *c.BedroomsMin {
		return false
	}
	if c.BathroomsMin != nil && p.Bathrooms < *c.BathroomsMin {
		return false
	}
	if c.Text != nil && !utils.MatchesAny(*c.Text, p.Name, p.Address, p.Type) {
		return false
	}
	return true
}

// List fetches properties matching the filters and params.
// Results are filtered a second time on this side of the store boundary.
func (s *ListingService) List(ctx context.Context, filters model.FilterShape, params model.ListingParams) (*model.ListingResponse, error) {
	startTime := time.Now()

	criteria := ResolveCriteria(filters, params, s.bounds)
	query := BuildQuery(criteria, s.limit)

	records, err := s.repo.ListProperties(ctx, query)
	if err != nil {
		return nil, err
	}

	results := FilterProperties(records, criteria)
	if dropped := len(records) - len(results); dropped > 0 {
		log.Printf("⚠️  Client-side filter dropped %d of %d records", dropped, len(records))
	}

	return &model.ListingResponse{
		Results:  results,
		Total:    len(results),
		Criteria: criteria,
		Query:    query,
		Took:     time.Since(startTime).Milliseconds(),
	}, nil
}

// GetProperty retrieves a single property with its parsed location
func (s *ListingService) GetProperty(ctx context.Context, id string) (*model.PropertyDetail, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	detail := model.NewPropertyDetail(*p)
	return &detail, nil
}
