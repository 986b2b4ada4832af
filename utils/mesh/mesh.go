// Package mesh 车道表面三角网格的组装
package mesh

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBorderMismatch 两条边界点链的点数不一致
var ErrBorderMismatch = errors.New("border lines should have equal number of points")

// Mesh3D 三维三角网格，顶点可附带道路坐标(s, t)
type Mesh3D struct {
	Vertices []geometry.Point
	ST       [][2]float64 // 可选，设置时与Vertices等长
	Indices  []uint32     // 每三个索引构成一个三角形
}

// Bounds 轴对齐包围盒
type Bounds struct {
	Min geometry.Point
	Max geometry.Point
}

// FromBorders 在两条等长点链之间构建三角带
// 功能：顶点依次为第一条链与第二条链，第i-1与第i个采样位置之间的四边形
// 拆分为(a_i, a_i-1, b_i-1)与(b_i-1, b_i, a_i)两个三角形
// 说明：三角形朝向由两条链的先后顺序决定
// 返回：网格；点数不一致时返回ErrBorderMismatch
func FromBorders(first, second []geometry.Point) (*Mesh3D, error) {
	if len(first) != len(second) {
		return nil, errors.Wrapf(ErrBorderMismatch, "%d vs %d", len(first), len(second))
	}
	n := uint32(len(first))
	m := &Mesh3D{
		Vertices: make([]geometry.Point, 0, 2*n),
		Indices:  make([]uint32, 0, 6*max(int(n)-1, 0)),
	}
	m.Vertices = append(m.Vertices, first...)
	m.Vertices = append(m.Vertices, second...)
	for l, r := uint32(1), n+1; l < n; l, r = l+1, r+1 {
		m.Indices = append(m.Indices, l, l-1, r-1, r-1, r, l)
	}
	return m, nil
}

// NumTriangles 三角形数量
func (m *Mesh3D) NumTriangles() int {
	return len(m.Indices) / 3
}

// Add 追加另一个网格，其索引按已有顶点数偏移
// 说明：只有两个网格都带(s, t)时结果才保留(s, t)
func (m *Mesh3D) Add(o *Mesh3D) {
	offset := uint32(len(m.Vertices))
	hasST := len(m.ST) == len(m.Vertices) && len(o.ST) == len(o.Vertices)
	m.Vertices = append(m.Vertices, o.Vertices...)
	if hasST {
		m.ST = append(m.ST, o.ST...)
	} else {
		m.ST = nil
	}
	for _, idx := range o.Indices {
		m.Indices = append(m.Indices, idx+offset)
	}
}

// Bounds 计算包围盒，空网格返回零值
func (m *Mesh3D) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: geometry.Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: geometry.Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, v := range m.Vertices {
		b.Min.X, b.Max.X = math.Min(b.Min.X, v.X), math.Max(b.Max.X, v.X)
		b.Min.Y, b.Max.Y = math.Min(b.Min.Y, v.Y), math.Max(b.Max.Y, v.Y)
		b.Min.Z, b.Max.Z = math.Min(b.Min.Z, v.Z), math.Max(b.Max.Z, v.Z)
	}
	return b
}

// Normal 第i个三角形的法向（右手定则，未归一化）
func (m *Mesh3D) Normal(i int) geometry.Point {
	a := toVec(m.Vertices[m.Indices[3*i]])
	b := toVec(m.Vertices[m.Indices[3*i+1]])
	c := toVec(m.Vertices[m.Indices[3*i+2]])
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	return geometry.Point{X: n.X, Y: n.Y, Z: n.Z}
}

func toVec(p geometry.Point) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}
