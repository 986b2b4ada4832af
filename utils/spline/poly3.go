// Package spline 分段三次多项式剖面，用于车道边界、超高、横坡与高程
package spline

import (
	"math"
)

const (
	maxSubdivideDepth = 16 // 自适应线性化的最大二分深度
)

// Poly3 以S0为原点的三次多项式 a + b*ds + c*ds^2 + d*ds^3，ds = s - S0
type Poly3 struct {
	S0         float64
	A, B, C, D float64
}

// Get 计算s处的值
func (p Poly3) Get(s float64) float64 {
	ds := s - p.S0
	return p.A + p.B*ds + p.C*ds*ds + p.D*ds*ds*ds
}

// Grad 计算s处的一阶导数
func (p Poly3) Grad(s float64) float64 {
	ds := s - p.S0
	return p.B + 2*p.C*ds + 3*p.D*ds*ds
}

// IsLinear 二次项与三次项是否为0
func (p Poly3) IsLinear() bool {
	return p.C == 0 && p.D == 0
}

// Shift 将原点移动到s0，函数值不变
func (p Poly3) Shift(s0 float64) Poly3 {
	d := s0 - p.S0
	return Poly3{
		S0: s0,
		A:  p.A + p.B*d + p.C*d*d + p.D*d*d*d,
		B:  p.B + 2*p.C*d + 3*p.D*d*d,
		C:  p.C + 3*p.D*d,
		D:  p.D,
	}
}

// Add 两个多项式相加，结果以p.S0为原点
func (p Poly3) Add(o Poly3) Poly3 {
	o = o.Shift(p.S0)
	return Poly3{S0: p.S0, A: p.A + o.A, B: p.B + o.B, C: p.C + o.C, D: p.D + o.D}
}

// Negate 取相反数
func (p Poly3) Negate() Poly3 {
	return Poly3{S0: p.S0, A: -p.A, B: -p.B, C: -p.C, D: -p.D}
}

// Extrema 计算[s0, s1]内的最小值与最大值
// 算法说明：候选点为区间端点与导数为0且落在区间内的点
func (p Poly3) Extrema(s0, s1 float64) (lo, hi float64) {
	lo, hi = math.Min(p.Get(s0), p.Get(s1)), math.Max(p.Get(s0), p.Get(s1))
	for _, s := range p.criticalPoints() {
		if s > s0 && s < s1 {
			v := p.Get(s)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return
}

// criticalPoints 导数 b + 2c*ds + 3d*ds^2 的实根（绝对s坐标）
func (p Poly3) criticalPoints() []float64 {
	qa, qb, qc := 3*p.D, 2*p.C, p.B
	if qa == 0 {
		if qb == 0 {
			return nil
		}
		return []float64{p.S0 - qc/qb}
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{p.S0 + (-qb-sq)/(2*qa), p.S0 + (-qb+sq)/(2*qa)}
}

// ApproximateLinear 自适应线性化
// 功能：返回[s0, s1]内的一组s，使相邻点之间的线性插值与多项式的偏差不超过eps
// 算法说明：线性多项式只返回端点；否则在区间1/4、1/2、3/4处检查弦偏差，超过eps则二分
func (p Poly3) ApproximateLinear(eps, s0, s1 float64) []float64 {
	if p.IsLinear() || s1 <= s0 {
		return []float64{s0, s1}
	}
	out := []float64{s0}
	p.subdivide(eps, s0, s1, 0, &out)
	return out
}

func (p Poly3) subdivide(eps, s0, s1 float64, depth int, out *[]float64) {
	if depth < maxSubdivideDepth && eps > 0 {
		v0, v1 := p.Get(s0), p.Get(s1)
		for _, k := range []float64{0.25, 0.5, 0.75} {
			s := s0 + (s1-s0)*k
			if math.Abs(p.Get(s)-(v0+(v1-v0)*k)) > eps {
				mid := (s0 + s1) / 2
				p.subdivide(eps, s0, mid, depth+1, out)
				p.subdivide(eps, mid, s1, depth+1, out)
				return
			}
		}
	}
	*out = append(*out, s1)
}
