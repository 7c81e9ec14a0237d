package model

import (
	"errors"
	"fmt"
	"strconv"

	"restate/internal/utils"
)

// Counter bounds shared by bedrooms and bathrooms
const (
	CounterMin = 0
	CounterMax = 10
)

// PriceUnit is the dollar value of one step on the price slider
const PriceUnit = 1000

// ErrUnknownPropertyType is returned when a type label is not in PropertyTypes
var ErrUnknownPropertyType = errors.New("unknown property type")

// PropertyTypes lists the selectable property types in display order
var PropertyTypes = []string{
	"House",
	"Apartment",
	"Condo",
	"Townhouse",
	"Villa",
	"Land",
	"Commercial",
}

// Range is an ordered (low, high) pair
type Range [2]float64

// Low returns the lower end of the range
func (r Range) Low() float64 { return r[0] }

// High returns the upper end of the range
func (r Range) High() float64 { return r[1] }

// Ordered returns the range with low <= high
func (r Range) Ordered() Range {
	if r[0] > r[1] {
		return Range{r[1], r[0]}
	}
	return r
}

// Clamp returns the ordered range with both ends forced into bounds
func (r Range) Clamp(bounds Range) Range {
	r = r.Ordered()
	for i := range r {
		if r[i] < bounds[0] {
			r[i] = bounds[0]
		}
		if r[i] > bounds[1] {
			r[i] = bounds[1]
		}
	}
	return r
}

// Covers reports whether r spans all of bounds
func (r Range) Covers(bounds Range) bool {
	return r[0] <= bounds[0] && r[1] >= bounds[1]
}

// FilterBounds holds the absolute slider bounds for the two ranges
type FilterBounds struct {
	Price Range `json:"price"`
	Size  Range `json:"size"`
}

// DefaultBounds returns the canonical slider bounds.
// Price is expressed in PriceUnit steps, size in square feet.
func DefaultBounds() FilterBounds {
	return FilterBounds{
		Price: Range{50, 1000},
		Size:  Range{500, 5000},
	}
}

// FilterShape is the set of criteria applied to the property list
type FilterShape struct {
	PriceRange Range    `json:"price_range"`
	SizeRange  Range    `json:"size_range"`
	Types      []string `json:"types"`
	Bedrooms   int      `json:"bedrooms"`
	Bathrooms  int      `json:"bathrooms"`
}

// DefaultFilters returns a fresh copy of the default filter shape
func DefaultFilters() FilterShape {
	return FilterShape{
		PriceRange: Range{100, 500},
		SizeRange:  Range{1000, 3000},
		Types:      []string{},
		Bedrooms:   0,
		Bathrooms:  0,
	}
}

// Clone returns a deep copy so callers never share the Types slice
func (f FilterShape) Clone() FilterShape {
	out := f
	out.Types = make([]string, len(f.Types))
	copy(out.Types, f.Types)
	return out
}

// HasType reports whether t is selected
func (f FilterShape) HasType(t string) bool {
	for _, existing := range f.Types {
		if existing == t {
			return true
		}
	}
	return false
}

// Equal compares two shapes; Types are compared as sets
func (f FilterShape) Equal(other FilterShape) bool {
	if f.PriceRange != other.PriceRange || f.SizeRange != other.SizeRange {
		return false
	}
	if f.Bedrooms != other.Bedrooms || f.Bathrooms != other.Bathrooms {
		return false
	}
	if len(f.Types) != len(other.Types) {
		return false
	}
	for _, t := range f.Types {
		if !other.HasType(t) {
			return false
		}
	}
	return true
}

// Normalize enforces the FilterShape invariants against bounds
func (f FilterShape) Normalize(bounds FilterBounds) (FilterShape, error) {
	out := FilterShape{
		PriceRange: f.PriceRange.Clamp(bounds.Price),
		SizeRange:  f.SizeRange.Clamp(bounds.Size),
		Types:      make([]string, 0, len(f.Types)),
		Bedrooms:   ClampCount(f.Bedrooms),
		Bathrooms:  ClampCount(f.Bathrooms),
	}
	for _, raw := range f.Types {
		t, ok := ParsePropertyType(raw)
		if !ok {
			return FilterShape{}, fmt.Errorf("%w: %q", ErrUnknownPropertyType, raw)
		}
		if !out.HasType(t) {
			out.Types = append(out.Types, t)
		}
	}
	return out, nil
}

// FilterPatch is a partial FilterShape; nil fields keep the base value
type FilterPatch struct {
	PriceRange *Range   `json:"price_range,omitempty"`
	SizeRange  *Range   `json:"size_range,omitempty"`
	Types      []string `json:"types,omitempty"`
	Bedrooms   *int     `json:"bedrooms,omitempty"`
	Bathrooms  *int     `json:"bathrooms,omitempty"`
}

// ApplyTo merges the patch onto base and returns the result
func (p FilterPatch) ApplyTo(base FilterShape) FilterShape {
	out := base.Clone()
	if p.PriceRange != nil {
		out.PriceRange = *p.PriceRange
	}
	if p.SizeRange != nil {
		out.SizeRange = *p.SizeRange
	}
	if p.Types != nil {
		out.Types = make([]string, len(p.Types))
		copy(out.Types, p.Types)
	}
	if p.Bedrooms != nil {
		out.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		out.Bathrooms = *p.Bathrooms
	}
	return out
}

// ClampCount forces a counter value into [CounterMin, CounterMax]
func ClampCount(v int) int {
	if v < CounterMin {
		return CounterMin
	}
	if v > CounterMax {
		return CounterMax
	}
	return v
}

// ParsePropertyType resolves a label or alias to its canonical property type
func ParsePropertyType(raw string) (string, bool) {
	normalized := utils.NormalizePropertyType(raw)
	for _, t := range PropertyTypes {
		if t == normalized {
			return t, true
		}
	}
	return "", false
}

// FormatPrice renders a price slider value as a label
func FormatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 0, 64) + "K"
}

// FormatSize renders a size slider value as a label
func FormatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}
