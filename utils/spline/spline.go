package spline

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
)

// CubicSpline 分段三次多项式
// 功能：以各段起点s为键保存Poly3，s处取键不大于s的最后一段（s在首段之前时取首段）
// 说明：空的CubicSpline在任意s处取值为0
type CubicSpline struct {
	polys container.Overlay[Poly3]
}

// New 创建空的CubicSpline
func New() *CubicSpline {
	return &CubicSpline{}
}

// Constant 创建常值CubicSpline
func Constant(s0, v float64) *CubicSpline {
	c := New()
	c.Add(s0, v, 0, 0, 0)
	return c
}

// Add 添加一段以s0为起点的多项式
func (c *CubicSpline) Add(s0, a, b, cc, d float64) {
	c.polys.Set(s0, Poly3{S0: s0, A: a, B: b, C: cc, D: d})
}

// AddPoly 添加一段多项式，起点为p.S0
func (c *CubicSpline) AddPoly(p Poly3) {
	c.polys.Set(p.S0, p)
}

// Len 段数
func (c *CubicSpline) Len() int {
	if c == nil {
		return 0
	}
	return c.polys.Len()
}

// Keys 各段起点
func (c *CubicSpline) Keys() []float64 {
	if c == nil {
		return nil
	}
	return c.polys.Keys()
}

// Poly s处生效的多项式
func (c *CubicSpline) Poly(s float64) (Poly3, bool) {
	if c.Len() == 0 {
		return Poly3{}, false
	}
	return c.polys.Value(c.polys.Floor(s)), true
}

// Get 计算s处的值
func (c *CubicSpline) Get(s float64) float64 {
	if p, ok := c.Poly(s); ok {
		return p.Get(s)
	}
	return 0
}

// Grad 计算s处的导数
func (c *CubicSpline) Grad(s float64) float64 {
	if p, ok := c.Poly(s); ok {
		return p.Grad(s)
	}
	return 0
}

// segments 遍历与[s0, s1]相交的各段，回调裁剪后的区间
func (c *CubicSpline) segments(s0, s1 float64, f func(p Poly3, a, b float64)) {
	first := c.polys.Floor(s0)
	if first < 0 || s1 < s0 {
		return
	}
	for i := first; i < c.polys.Len(); i++ {
		a := s0
		if i > first {
			a = c.polys.Key(i)
		}
		if a > s1 {
			break
		}
		b := s1
		if c.polys.HasNext(i) {
			b = math.Min(c.polys.Key(i+1), s1)
		}
		f(c.polys.Value(i), a, b)
	}
}

// Extrema 计算[s0, s1]内的最小值与最大值，空剖面返回(0, 0)
func (c *CubicSpline) Extrema(s0, s1 float64) (lo, hi float64) {
	if c.Len() == 0 {
		return 0, 0
	}
	lo, hi = mathutil.INF, -mathutil.INF
	c.segments(s0, s1, func(p Poly3, a, b float64) {
		l, h := p.Extrema(a, b)
		lo, hi = math.Min(lo, l), math.Max(hi, h)
	})
	if lo > hi {
		return 0, 0
	}
	return
}

// Max 计算[s0, s1]内的最大值
func (c *CubicSpline) Max(s0, s1 float64) float64 {
	_, hi := c.Extrema(s0, s1)
	return hi
}

// MaxAbs 计算[s0, s1]内绝对值的最大值
func (c *CubicSpline) MaxAbs(s0, s1 float64) float64 {
	lo, hi := c.Extrema(s0, s1)
	return math.Max(math.Abs(lo), math.Abs(hi))
}

// ApproximateLinear 自适应线性化
// 功能：返回[s0, s1]内升序去重的s集合，相邻点之间线性插值与剖面的偏差不超过eps
// 说明：总是包含s0与s1以及区间内的各段起点
func (c *CubicSpline) ApproximateLinear(eps, s0, s1 float64) []float64 {
	seqs := [][]float64{{s0, s1}}
	if c.Len() > 0 {
		c.segments(s0, s1, func(p Poly3, a, b float64) {
			seqs = append(seqs, p.ApproximateLinear(eps, a, b))
		})
	}
	return container.MergeStations(seqs...)
}

// Sum 逐段相加
// 功能：返回c与o之和，分段点为两者分段点的并集
func (c *CubicSpline) Sum(o *CubicSpline) *CubicSpline {
	out := New()
	for _, s := range container.MergeStations(c.Keys(), o.Keys()) {
		p, ok := c.Poly(s)
		if !ok {
			p = Poly3{S0: s}
		}
		p = p.Shift(s)
		if q, ok := o.Poly(s); ok {
			p = p.Add(q)
		}
		out.AddPoly(p)
	}
	return out
}

// Negate 取相反数
func (c *CubicSpline) Negate() *CubicSpline {
	out := New()
	for i := 0; i < c.Len(); i++ {
		out.AddPoly(c.polys.Value(i).Negate())
	}
	return out
}
