package value_test

import (
	"testing"

	"flare/internal/value"
)

func TestArrayGrowth(t *testing.T) {
	var arr value.Array
	if arr.Cap() != 0 {
		t.Fatalf("fresh array capacity = %d, want 0", arr.Cap())
	}

	for i := 0; i < 100; i++ {
		arr.Write(value.Number(float64(i)))

		if arr.Count() != i+1 {
			t.Fatalf("count = %d after %d writes", arr.Count(), i+1)
		}
		if arr.Count() > arr.Cap() {
			t.Fatalf("count %d exceeds capacity %d", arr.Count(), arr.Cap())
		}
		// ёмкость — степень двойки и не меньше 8
		c := arr.Cap()
		if c < 8 || c&(c-1) != 0 {
			t.Fatalf("capacity %d is not a power of two >= 8", c)
		}
	}

	for i := 0; i < 100; i++ {
		if arr.At(i).Num != float64(i) {
			t.Errorf("At(%d) = %v", i, arr.At(i))
		}
	}
}
