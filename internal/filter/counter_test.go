package filter

import (
	"math/rand"
	"testing"

	"restate/internal/model"
)

func TestCounter_Saturates(t *testing.T) {
	if got := Decrement(0); got != 0 {
		t.Errorf("Decrement(0) = %d, want 0", got)
	}
	if got := Increment(10); got != 10 {
		t.Errorf("Increment(10) = %d, want 10", got)
	}
	if CanDecrement(0) {
		t.Error("Expected decrement to be disabled at 0")
	}
	if CanIncrement(10) {
		t.Error("Expected increment to be disabled at 10")
	}
	if !CanIncrement(3) || !CanDecrement(3) {
		t.Error("Expected both buttons enabled at 3")
	}
}

func TestCounter_RandomSequencesStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for start := model.CounterMin; start <= model.CounterMax; start++ {
		v := start
		for i := 0; i < 200; i++ {
			if rng.Intn(2) == 0 {
				v = Increment(v)
			} else {
				v = Decrement(v)
			}
			if v < model.CounterMin || v > model.CounterMax {
				t.Fatalf("start %d step %d: value %d left [0,10]", start, i, v)
			}
		}
	}
}
