package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func TestRandGen_Deterministic(t *testing.T) {
	rng1 := NewRandGen(42)
	rng2 := NewRandGen(42)

	for i := 0; i < 100; i++ {
		v1, v2 := rng1.Float64(), rng2.Float64()
		if v1 != v2 {
			t.Fatalf("RandGen not deterministic at step %d: %f != %f", i, v1, v2)
		}
		assert.GreaterOrEqual(t, v1, 0.0)
		assert.Less(t, v1, 1.0)
	}
}

func TestRandGen_Distribution(t *testing.T) {
	rng := NewRandGen(123456)
	n := 10000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += rng.Float64()
	}

	assert.InDelta(t, 0.5, sum/float64(n), 0.02)
}

func TestNewSource(t *testing.T) {
	a, b := NewSource(7), NewSource(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}

	random := NewSource(0)
	for i := 0; i < 100; i++ {
		v := random.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestUniform_Bounds(t *testing.T) {
	tests := []struct {
		name string
		u    float64
		want float64
	}{
		{"lower edge", 0, 0.92},
		{"midpoint", 0.5, 1.00},
		{"upper edge", 1, 1.08},
		{"negative source clamps", -0.3, 0.92},
		{"overshooting source clamps", 1.7, 1.08},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Uniform(fixedSource(tt.u), 0.92, 1.08)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.92)
			assert.LessOrEqual(t, got, 1.08)
		})
	}
}

func TestUniform_RepeatedSamplingStaysInRange(t *testing.T) {
	for _, src := range []Source{NewRandGen(1), NewRandGen(99), NewSource(0)} {
		for i := 0; i < 5000; i++ {
			v := Uniform(src, 0.92, 1.08)
			if v < 0.92 || v > 1.08 {
				t.Fatalf("market factor %f outside [0.92, 1.08]", v)
			}
		}
	}
}
