package filter

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"restate/internal/model"
)

// Thumb identifies one of the two slider handles
type Thumb int

const (
	ThumbNone Thumb = iota - 1
	ThumbLow
	ThumbHigh
)

// HistogramBars is the number of decorative bars above the track
const HistogramBars = 10

// ErrUnknownThumb is returned for a thumb name other than low or high
var ErrUnknownThumb = errors.New("unknown thumb")

// ParseThumb converts "low"/"high" (or "0"/"1") to a Thumb
func ParseThumb(s string) (Thumb, error) {
	switch s {
	case "low", "0":
		return ThumbLow, nil
	case "high", "1":
		return ThumbHigh, nil
	}
	return ThumbNone, fmt.Errorf("%w: %q", ErrUnknownThumb, s)
}

func (t Thumb) String() string {
	switch t {
	case ThumbLow:
		return "low"
	case ThumbHigh:
		return "high"
	}
	return ""
}

// RangeSlider tracks pointer interaction for a two-thumb slider.
// It is fully controlled: values come from the caller on every move and
// candidates are reported through the change callback.
type RangeSlider struct {
	bounds   model.Range
	originX  float64
	width    float64
	active   Thumb
	onChange func(model.Range)
	format   func(float64) string
}

// NewRangeSlider creates a slider over [min, max]; min must be below max
func NewRangeSlider(min, max float64, onChange func(model.Range), format func(float64) string) (*RangeSlider, error) {
	if !(min < max) {
		return nil, fmt.Errorf("invalid slider bounds [%v, %v]: min must be below max", min, max)
	}
	return &RangeSlider{
		bounds:   model.Range{min, max},
		active:   ThumbNone,
		onChange: onChange,
		format:   format,
	}, nil
}

// Active returns the thumb being dragged, or ThumbNone
func (s *RangeSlider) Active() Thumb {
	return s.active
}

// Layout records the track position and width reported by the host
func (s *RangeSlider) Layout(originX, width float64) {
	s.originX = originX
	s.width = width
}

// PointerDown marks a thumb active
func (s *RangeSlider) PointerDown(t Thumb) {
	if t != ThumbLow && t != ThumbHigh {
		return
	}
	s.active = t
}

// PointerUp releases the active thumb without changing values
func (s *RangeSlider) PointerUp() {
	s.active = ThumbNone
}

// PointerMove converts a pointer position into a candidate pair.
// It returns false when no thumb is active or the track has no width.
func (s *RangeSlider) PointerMove(x float64, values model.Range) (model.Range, bool) {
	if s.active == ThumbNone || s.width <= 0 {
		return values, false
	}

	current := values.Clamp(s.bounds)
	value := s.ValueAt(x)

	next := current
	switch s.active {
	case ThumbLow:
		if value > current.High() {
			value = current.High()
		}
		next[0] = value
	case ThumbHigh:
		if value < current.Low() {
			value = current.Low()
		}
		next[1] = value
	}

	if s.onChange != nil {
		s.onChange(next)
	}
	return next, true
}

// ValueAt maps a pointer X position to a value on the track
func (s *RangeSlider) ValueAt(x float64) float64 {
	if s.width <= 0 {
		return s.bounds.Low()
	}
	pct := (x - s.originX) / s.width
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	return s.bounds.Low() + pct*(s.bounds.High()-s.bounds.Low())
}

// Position returns the percentage offset of a value along the track
func (s *RangeSlider) Position(v float64) float64 {
	return (v - s.bounds.Low()) / (s.bounds.High() - s.bounds.Low()) * 100
}

// Label formats a thumb value for display
func (s *RangeSlider) Label(v float64) string {
	if s.format != nil {
		return s.format(v)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Histogram returns decorative bar heights in percent, in [20, 60).
// The bars are cosmetic and carry no data.
func Histogram(rng *rand.Rand) []float64 {
	bars := make([]float64, HistogramBars)
	for i := range bars {
		bars[i] = rng.Float64()*40 + 20
	}
	return bars
}

// View returns the render state of the slider for the given values
func (s *RangeSlider) View(values model.Range, rng *rand.Rand) model.SliderView {
	values = values.Clamp(s.bounds)
	return model.SliderView{
		Min:       s.bounds.Low(),
		Max:       s.bounds.High(),
		Values:    values,
		Labels:    [2]string{s.Label(values.Low()), s.Label(values.High())},
		FillLeft:  s.Position(values.Low()),
		FillRight: 100 - s.Position(values.High()),
		Active:    s.active.String(),
		Histogram: Histogram(rng),
	}
}
