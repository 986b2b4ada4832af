package road

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry 参考线的平面几何段
type Geometry interface {
	S0() float64
	Length() float64
	// s处的平面坐标
	GetXY(s float64) (x, y float64)
	// s处的单位切向量
	GetGrad(s float64) (dx, dy float64)
	// 段内线性化采样位置（含两端）
	ApproximateLinear(eps float64) []float64
}

// Line 直线段
type Line struct {
	s0, x0, y0, hdg, length float64
}

// NewLine 创建直线段
// 参数：s0-起点s，(x0, y0)-起点坐标，hdg-航向角（弧度），length-长度
func NewLine(s0, x0, y0, hdg, length float64) *Line {
	return &Line{s0: s0, x0: x0, y0: y0, hdg: hdg, length: length}
}

func (g *Line) S0() float64     { return g.s0 }
func (g *Line) Length() float64 { return g.length }

func (g *Line) GetXY(s float64) (float64, float64) {
	ds := s - g.s0
	return g.x0 + ds*math.Cos(g.hdg), g.y0 + ds*math.Sin(g.hdg)
}

func (g *Line) GetGrad(float64) (float64, float64) {
	return math.Cos(g.hdg), math.Sin(g.hdg)
}

func (g *Line) ApproximateLinear(float64) []float64 {
	return []float64{g.s0, g.s0 + g.length}
}

// Arc 圆弧段，curvature>0为逆时针
type Arc struct {
	s0, x0, y0, hdg, length, curvature float64
}

// NewArc 创建圆弧段
func NewArc(s0, x0, y0, hdg, length, curvature float64) *Arc {
	return &Arc{s0: s0, x0: x0, y0: y0, hdg: hdg, length: length, curvature: curvature}
}

func (g *Arc) S0() float64     { return g.s0 }
func (g *Arc) Length() float64 { return g.length }

func (g *Arc) GetXY(s float64) (float64, float64) {
	angle := (s-g.s0)*g.curvature - math.Pi/2
	r := 1 / g.curvature
	return g.x0 + r*(math.Cos(g.hdg+angle)-math.Sin(g.hdg)),
		g.y0 + r*(math.Sin(g.hdg+angle)+math.Cos(g.hdg))
}

func (g *Arc) GetGrad(s float64) (float64, float64) {
	hdg := g.hdg + (s-g.s0)*g.curvature
	return math.Cos(hdg), math.Sin(hdg)
}

// ApproximateLinear 按弦高不超过eps等分圆弧
// 算法说明：半径R、圆心角φ的弦高为R(1-cos(φ/2))，据此求最大圆心角与分段数
func (g *Arc) ApproximateLinear(eps float64) []float64 {
	r := math.Abs(1 / g.curvature)
	phi := 2 * math.Acos(lo.Clamp(1-eps/r, -1, 1))
	n := 1
	if phi > 0 {
		n = max(1, int(math.Ceil(g.length/(phi*r))))
	}
	out := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, g.s0+g.length*float64(i)/float64(n))
	}
	return append(out, g.s0+g.length)
}

// RefLine 道路参考线
// 功能：由按起点s排列的平面几何段与高程剖面组成，提供s处的三维位置、切向量与线性化采样
type RefLine struct {
	length     float64
	geometries container.Overlay[Geometry]
	elevation  *spline.CubicSpline
}

// NewRefLine 创建参考线
func NewRefLine(length float64) *RefLine {
	return &RefLine{
		length:    length,
		elevation: spline.New(),
	}
}

// AddGeometry 添加几何段
func (r *RefLine) AddGeometry(g Geometry) {
	r.geometries.Set(g.S0(), g)
}

// SetElevation 设置高程剖面
func (r *RefLine) SetElevation(e *spline.CubicSpline) {
	r.elevation = e
}

func (r *RefLine) Length() float64 {
	return r.length
}

func (r *RefLine) Elevation() *spline.CubicSpline {
	return r.elevation
}

func (r *RefLine) geometry(s float64) (Geometry, bool) {
	i := r.geometries.Floor(s)
	if i < 0 {
		return nil, false
	}
	return r.geometries.Value(i), true
}

// GetXYZ 参考线上s处的三维位置
func (r *RefLine) GetXYZ(s float64) geometry.Point {
	p := geometry.Point{Z: r.elevation.Get(s)}
	if g, ok := r.geometry(s); ok {
		p.X, p.Y = g.GetXY(s)
	} else {
		p.X = s
	}
	return p
}

// Grad s处的切向量（含高程坡度，未归一化）
func (r *RefLine) Grad(s float64) r3.Vec {
	v := r3.Vec{X: 1, Z: r.elevation.Grad(s)}
	if g, ok := r.geometry(s); ok {
		v.X, v.Y = g.GetGrad(s)
	}
	return v
}

// ApproximateLinear 线性化采样位置
// 功能：合并区间端点、与[s0, s1]相交的各几何段的线性化结果以及高程剖面的线性化结果
func (r *RefLine) ApproximateLinear(eps, s0, s1 float64) []float64 {
	seqs := [][]float64{{s0, s1}, r.elevation.ApproximateLinear(eps, s0, s1)}
	inRange := func(s float64, _ int) bool { return s >= s0 && s <= s1 }
	for i := 0; i < r.geometries.Len(); i++ {
		g := r.geometries.Value(i)
		if g.S0() > s1 || g.S0()+g.Length() < s0 {
			continue
		}
		seqs = append(seqs, lo.Filter(g.ApproximateLinear(eps), inRange))
	}
	return container.MergeStations(seqs...)
}
