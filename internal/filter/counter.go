package filter

import "restate/internal/model"

// Increment steps a counter up, saturating at model.CounterMax
func Increment(v int) int {
	return model.ClampCount(v + 1)
}

// Decrement steps a counter down, saturating at model.CounterMin
func Decrement(v int) int {
	return model.ClampCount(v - 1)
}

// CanIncrement reports whether the increment button is enabled
func CanIncrement(v int) bool {
	return v < model.CounterMax
}

// CanDecrement reports whether the decrement button is enabled
func CanDecrement(v int) bool {
	return v > model.CounterMin
}

func counterView(v int) model.CounterView {
	return model.CounterView{
		Value:        v,
		CanIncrement: CanIncrement(v),
		CanDecrement: CanDecrement(v),
	}
}
