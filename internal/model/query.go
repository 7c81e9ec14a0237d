package model

import "time"

// ListingParams are the navigation-level parameters of the explore screen
type ListingParams struct {
	Query  string `json:"query" form:"query"`
	Filter string `json:"filter" form:"filter"`
}

// Criteria is the resolved set of constraints for one property list fetch.
// Nil fields impose no constraint.
type Criteria struct {
	Type         *string  `json:"type,omitempty"`
	PriceMin     *float64 `json:"price_min,omitempty"`
	PriceMax     *float64 `json:"price_max,omitempty"`
	AreaMin      *float64 `json:"area_min,omitempty"`
	AreaMax      *float64 `json:"area_max,omitempty"`
	BedroomsMin  *int     `json:"bedrooms_min,omitempty"`
	BathroomsMin *int     `json:"bathrooms_min,omitempty"`
	Text         *string  `json:"text,omitempty"`
}

// IsEmpty reports whether no constraint applies
func (c Criteria) IsEmpty() bool {
	return c.Type == nil && c.PriceMin == nil && c.PriceMax == nil &&
		c.AreaMin == nil && c.AreaMax == nil &&
		c.BedroomsMin == nil && c.BathroomsMin == nil && c.Text == nil
}

// ListingResponse is the result of a one-shot property list request
type ListingResponse struct {
	Results  []Property  `json:"results"`
	Total    int         `json:"total"`
	Criteria Criteria    `json:"criteria"`
	Query    []Predicate `json:"query"`
	Took     int64       `json:"took_ms"`
}

// ExploreState is the view state of the explore screen
type ExploreState struct {
	Params     ListingParams `json:"params"`
	Filters    FilterShape   `json:"filters"`
	Loading    bool          `json:"loading"`
	Results    []Property    `json:"results"`
	Generation uint64        `json:"generation"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// FilterOptions describes the controls of the filter composer
type FilterOptions struct {
	Bounds        FilterBounds `json:"bounds"`
	Defaults      FilterShape  `json:"defaults"`
	PropertyTypes []string     `json:"property_types"`
	CounterMin    int          `json:"counter_min"`
	CounterMax    int          `json:"counter_max"`
	PriceUnit     int          `json:"price_unit"`
}

// SliderView is the render state of one range slider
type SliderView struct {
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Values    Range     `json:"values"`
	Labels    [2]string `json:"labels"`
	FillLeft  float64   `json:"fill_left_pct"`
	FillRight float64   `json:"fill_right_pct"`
	Active    string    `json:"active_thumb,omitempty"`
	Histogram []float64 `json:"histogram"`
}

// CounterView is the render state of one stepper
type CounterView struct {
	Value        int  `json:"value"`
	CanIncrement bool `json:"can_increment"`
	CanDecrement bool `json:"can_decrement"`
}

// ComposerView is the render state of an open filter composer
type ComposerView struct {
	ID       string                 `json:"id"`
	Draft    FilterShape            `json:"draft"`
	Sliders  map[string]SliderView  `json:"sliders"`
	Counters map[string]CounterView `json:"counters"`
	Redirect string                 `json:"redirect,omitempty"`
}

// ComposerOpenRequest optionally seeds a composer with overrides on defaults
type ComposerOpenRequest struct {
	Overrides *FilterPatch `json:"overrides,omitempty"`
}

// SliderLayoutRequest reports the track geometry of a slider
type SliderLayoutRequest struct {
	OriginX float64 `json:"origin_x"`
	Width   float64 `json:"width" binding:"required"`
}

// PointerDownRequest selects the thumb being dragged
type PointerDownRequest struct {
	Thumb string `json:"thumb" binding:"required"` // low, high
}

// PointerMoveRequest carries the pointer position on the track
type PointerMoveRequest struct {
	X float64 `json:"x"`
}
