package filter

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"restate/internal/model"
)

// RouteExplore is where the composer sends the user after Apply
const RouteExplore = "/explore"

// Slider and counter names addressable on a composer
const (
	SliderPrice      = "price"
	SliderSize       = "size"
	CounterBedrooms  = "bedrooms"
	CounterBathrooms = "bathrooms"
)

var (
	ErrComposerClosed = errors.New("filter composer is closed")
	ErrUnknownSlider  = errors.New("unknown slider")
	ErrUnknownCounter = errors.New("unknown counter")
)

// Navigator moves the user to another screen
type Navigator interface {
	Navigate(route string)
}

// Composer edits a draft copy of the filters and commits it on Apply
type Composer struct {
	store   *Store
	nav     Navigator
	bounds  model.FilterBounds
	draft   model.FilterShape
	sliders map[string]*RangeSlider
	rng     *rand.Rand
	closed  bool
	applied bool
}

// NewComposer opens a composer.
// With overrides the draft is defaults plus overrides, otherwise the applied filters.
func NewComposer(store *Store, nav Navigator, bounds model.FilterBounds, overrides *model.FilterPatch) (*Composer, error) {
	var seed model.FilterShape
	if overrides != nil {
		seed = overrides.ApplyTo(model.DefaultFilters())
	} else {
		seed = store.Get()
	}

	draft, err := seed.Normalize(bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to seed draft: %w", err)
	}

	c := &Composer{
		store:  store,
		nav:    nav,
		bounds: bounds,
		draft:  draft,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	price, err := NewRangeSlider(bounds.Price.Low(), bounds.Price.High(), func(r model.Range) {
		c.draft.PriceRange = r
	}, model.FormatPrice)
	if err != nil {
		return nil, fmt.Errorf("price slider: %w", err)
	}
	size, err := NewRangeSlider(bounds.Size.Low(), bounds.Size.High(), func(r model.Range) {
		c.draft.SizeRange = r
	}, model.FormatSize)
	if err != nil {
		return nil, fmt.Errorf("size slider: %w", err)
	}
	c.sliders = map[string]*RangeSlider{
		SliderPrice: price,
		SliderSize:  size,
	}

	return c, nil
}

// Draft returns a copy of the draft filters
func (c *Composer) Draft() model.FilterShape {
	return c.draft.Clone()
}

// Closed reports whether the composer was applied or dismissed
func (c *Composer) Closed() bool {
	return c.closed
}

// ToggleType adds the type if absent, removes it if present
func (c *Composer) ToggleType(label string) error {
	if c.closed {
		return ErrComposerClosed
	}
	t, ok := model.ParsePropertyType(label)
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownPropertyType, label)
	}

	if !c.draft.HasType(t) {
		c.draft.Types = append(c.draft.Types, t)
		return nil
	}
	kept := make([]string, 0, len(c.draft.Types))
	for _, existing := range c.draft.Types {
		if existing != t {
			kept = append(kept, existing)
		}
	}
	c.draft.Types = kept
	return nil
}

// Increment steps a counter up; at the maximum it is a no-op
func (c *Composer) Increment(counter string) error {
	return c.step(counter, Increment)
}

// Decrement steps a counter down; at zero it is a no-op
func (c *Composer) Decrement(counter string) error {
	return c.step(counter, Decrement)
}

func (c *Composer) step(counter string, fn func(int) int) error {
	if c.closed {
		return ErrComposerClosed
	}
	switch counter {
	case CounterBedrooms:
		c.draft.Bedrooms = fn(c.draft.Bedrooms)
	case CounterBathrooms:
		c.draft.Bathrooms = fn(c.draft.Bathrooms)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCounter, counter)
	}
	return nil
}

// Slider returns a named slider
func (c *Composer) Slider(name string) (*RangeSlider, error) {
	s, ok := c.sliders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlider, name)
	}
	return s, nil
}

func (c *Composer) sliderValues(name string) model.Range {
	if name == SliderSize {
		return c.draft.SizeRange
	}
	return c.draft.PriceRange
}

// LayoutSlider records track geometry for a slider
func (c *Composer) LayoutSlider(name string, originX, width float64) error {
	if c.closed {
		return ErrComposerClosed
	}
	s, err := c.Slider(name)
	if err != nil {
		return err
	}
	s.Layout(originX, width)
	return nil
}

// PointerDown activates a thumb on a slider
func (c *Composer) PointerDown(name string, t Thumb) error {
	if c.closed {
		return ErrComposerClosed
	}
	s, err := c.Slider(name)
	if err != nil {
		return err
	}
	s.PointerDown(t)
	return nil
}

// PointerMove drags the active thumb of a slider; the draft follows
func (c *Composer) PointerMove(name string, x float64) error {
	if c.closed {
		return ErrComposerClosed
	}
	s, err := c.Slider(name)
	if err != nil {
		return err
	}
	s.PointerMove(x, c.sliderValues(name))
	return nil
}

// PointerUp releases a slider thumb
func (c *Composer) PointerUp(name string) error {
	if c.closed {
		return ErrComposerClosed
	}
	s, err := c.Slider(name)
	if err != nil {
		return err
	}
	s.PointerUp()
	return nil
}

// Reset restores the draft to the default filters, not the applied ones
func (c *Composer) Reset() error {
	if c.closed {
		return ErrComposerClosed
	}
	c.draft = model.DefaultFilters()
	return nil
}

// Apply commits the draft to the store, closes, and navigates to the list
func (c *Composer) Apply() (model.FilterShape, error) {
	if c.closed {
		return model.FilterShape{}, ErrComposerClosed
	}
	applied := c.draft.Clone()
	c.store.Replace(applied)
	c.closed = true
	c.applied = true
	if c.nav != nil {
		c.nav.Navigate(RouteExplore)
	}
	return applied, nil
}

// Close discards the draft without touching the store
func (c *Composer) Close() {
	c.closed = true
	for _, s := range c.sliders {
		s.PointerUp()
	}
}

// View returns the render state of the composer
func (c *Composer) View(id string) model.ComposerView {
	view := model.ComposerView{
		ID:    id,
		Draft: c.Draft(),
		Sliders: map[string]model.SliderView{
			SliderPrice: c.sliders[SliderPrice].View(c.draft.PriceRange, c.rng),
			SliderSize:  c.sliders[SliderSize].View(c.draft.SizeRange, c.rng),
		},
		Counters: map[string]model.CounterView{
			CounterBedrooms:  counterView(c.draft.Bedrooms),
			CounterBathrooms: counterView(c.draft.Bathrooms),
		},
	}
	if c.applied {
		view.Redirect = RouteExplore
	}
	return view
}
