package spline_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
)

func TestPoly3(t *testing.T) {
	p := spline.Poly3{S0: 10, A: 1, B: 2, C: 3, D: 4}
	assert.InDelta(t, 1.0, p.Get(10), 1e-12)
	assert.InDelta(t, 1+2+3+4, p.Get(11), 1e-12)
	assert.InDelta(t, 2+6+12, p.Grad(11), 1e-12)

	shifted := p.Shift(12)
	for _, s := range []float64{9, 10, 11.5, 13} {
		assert.InDelta(t, p.Get(s), shifted.Get(s), 1e-9)
	}
	assert.InDelta(t, -p.Get(11), p.Negate().Get(11), 1e-12)
}

func TestPoly3Extrema(t *testing.T) {
	// (s-1)^2 - 1 = s^2 - 2s，在[0, 3]上最小值-1（s=1），最大值3（s=3）
	p := spline.Poly3{A: 0, B: -2, C: 1}
	lo, hi := p.Extrema(0, 3)
	assert.InDelta(t, -1.0, lo, 1e-12)
	assert.InDelta(t, 3.0, hi, 1e-12)
}

func TestPoly3ApproximateLinear(t *testing.T) {
	line := spline.Poly3{A: 1, B: 2}
	assert.Equal(t, []float64{0, 10}, line.ApproximateLinear(0.01, 0, 10))

	p := spline.Poly3{C: 0.1}
	eps := 0.01
	ss := p.ApproximateLinear(eps, 0, 10)
	require.Greater(t, len(ss), 2)
	assert.Equal(t, 0.0, ss[0])
	assert.Equal(t, 10.0, ss[len(ss)-1])
	for i := 1; i < len(ss); i++ {
		a, b := ss[i-1], ss[i]
		mid := (a + b) / 2
		chord := (p.Get(a) + p.Get(b)) / 2
		assert.LessOrEqual(t, math.Abs(chord-p.Get(mid)), eps)
	}
}

func TestCubicSplineGet(t *testing.T) {
	c := spline.New()
	assert.Equal(t, 0.0, c.Get(5))
	assert.Equal(t, 0.0, c.Max(0, 10))

	c.Add(0, 1, 0, 0, 0)
	c.Add(10, 2, 1, 0, 0)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []float64{0, 10}, c.Keys())
	// 首段之前取首段
	assert.InDelta(t, 1.0, c.Get(-3), 1e-12)
	assert.InDelta(t, 1.0, c.Get(9.9), 1e-12)
	assert.InDelta(t, 4.0, c.Get(12), 1e-12)
	assert.InDelta(t, 1.0, c.Grad(12), 1e-12)
}

func TestCubicSplineExtrema(t *testing.T) {
	c := spline.New()
	c.Add(0, -3, 0, 0, 0)
	c.Add(10, -1, -1, 0, 0)
	assert.InDelta(t, -1.0, c.Max(0, 20), 1e-12)
	assert.InDelta(t, 11.0, c.MaxAbs(0, 20), 1e-12)
	// 区间只覆盖第一段
	assert.InDelta(t, -3.0, c.Max(0, 5), 1e-12)
	assert.InDelta(t, 3.0, c.MaxAbs(2, 5), 1e-12)
}

func TestCubicSplineApproximateLinear(t *testing.T) {
	c := spline.New()
	c.Add(0, 0, 1, 0, 0)
	c.Add(5, 5, 1, 0, 0)
	c.Add(20, 0, 0, 0, 0)
	assert.Equal(t, []float64{2, 5, 8}, c.ApproximateLinear(0.1, 2, 8))
	assert.Equal(t, []float64{0, 30}, spline.New().ApproximateLinear(0.1, 0, 30))
}

func TestCubicSplineSum(t *testing.T) {
	a := spline.New()
	a.Add(0, 1, 0, 0, 0)
	a.Add(10, 2, 0, 0, 0)
	b := spline.New()
	b.Add(0, 0, 0.5, 0, 0)
	b.Add(5, 3, 0, 0.1, 0)

	sum := a.Sum(b)
	assert.Equal(t, []float64{0, 5, 10}, sum.Keys())
	for _, s := range []float64{0, 2.5, 5, 7.5, 10, 12} {
		assert.InDelta(t, a.Get(s)+b.Get(s), sum.Get(s), 1e-9, "s=%v", s)
	}

	neg := sum.Negate()
	assert.InDelta(t, -sum.Get(7), neg.Get(7), 1e-12)
	assert.Equal(t, 3.0, spline.Constant(0, 3).Get(100))
}
