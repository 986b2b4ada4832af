package road

import (
	"fmt"
	"math"
	"weak"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/parallel"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanegeom/entity"
	"github.com/tsinghua-fib-lab/lanegeom/entity/lane"
	"github.com/tsinghua-fib-lab/lanegeom/utils/mesh"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
	"gonum.org/v1/gonum/spatial/r3"
)

// Road 道路实体
// 功能：持有参考线、超高、横坡与全部车道，提供(s, t, h)到三维坐标的转换
// 说明：Road拥有其车道，车道通过Handle返回的弱引用访问道路
type Road struct {
	id     int32
	name   string
	length float64

	refLine        *RefLine
	superelevation *spline.CubicSpline // 超高角（弧度）
	crossfall      *Crossfall

	lanes *lane.Manager
}

// New 创建道路
// 参数：id-道路id，name-名称，refLine-参考线
func New(id int32, name string, refLine *RefLine) *Road {
	r := &Road{
		id:             id,
		name:           name,
		length:         refLine.Length(),
		refLine:        refLine,
		superelevation: spline.New(),
		crossfall:      NewCrossfall(),
		lanes:          lane.NewManager(),
	}
	r.lanes.SetParentRoadWhenInit(id, r.Handle())
	return r
}

// SetSuperelevation 设置超高剖面
func (r *Road) SetSuperelevation(s *spline.CubicSpline) {
	r.superelevation = s
}

// SetCrossfall 设置横坡
func (r *Road) SetCrossfall(c *Crossfall) {
	r.crossfall = c
}

// AddLane 加入车道并设置其所属道路
func (r *Road) AddLane(l *lane.Lane) {
	r.lanes.Add(l)
}

// Handle 道路的非持有引用
func (r *Road) Handle() entity.RoadRef {
	return Handle{p: weak.Make(r)}
}

// Handle 基于弱指针的道路引用，道路被回收后Resolve返回false
type Handle struct {
	p weak.Pointer[Road]
}

func (h Handle) Resolve() (entity.IRoad, bool) {
	if r := h.p.Value(); r != nil {
		return r, true
	}
	return nil, false
}

// 属性

func (r *Road) ID() int32 {
	if r == nil {
		return -1
	}
	return r.id
}

func (r *Road) Name() string {
	return r.name
}

func (r *Road) Length() float64 {
	return r.length
}

func (r *Road) String() string {
	return fmt.Sprintf("Road %d", r.ID())
}

func (r *Road) RefLine() entity.IRefLine {
	return r.refLine
}

func (r *Road) Superelevation() entity.IProfile {
	return r.superelevation
}

func (r *Road) Crossfall() entity.ICrossfall {
	return r.crossfall
}

// Lanes 按id升序的全部车道
func (r *Road) Lanes() []*lane.Lane {
	return r.lanes.Lanes()
}

// Lane 根据ID获取车道，不存在则panic
func (r *Road) Lane(id int32) *lane.Lane {
	return r.lanes.Get(id)
}

// LanesByType 指定类型的车道
func (r *Road) LanesByType(typ string) []*lane.Lane {
	return lo.Filter(r.lanes.Lanes(), func(l *lane.Lane, _ int) bool {
		return l.Type() == typ
	})
}

// GetXYZ (s, t, h)道路坐标转换为三维位置
// 算法说明：
// 1. e_s为参考线切向（含高程坡度）的单位向量
// 2. e_t为水平法向绕e_s旋转超高角θ后的单位向量
// 3. e_h = unit(grad × e_t)
// 4. p = p0 + t*e_t + h*e_h
func (r *Road) GetXYZ(s, t, h float64) geometry.Point {
	grad := r.refLine.Grad(s)
	es := r3.Unit(grad)
	theta := r.superelevation.Get(s)
	sin, cos := math.Sincos(theta)
	et := r3.Unit(r3.Add(
		r3.Scale(cos, r3.Vec{X: -es.Y, Y: es.X}),
		r3.Scale(sin, r3.Vec{X: -es.Z * es.X, Y: -es.Z * es.Y, Z: es.X*es.X + es.Y*es.Y}),
	))
	eh := r3.Unit(r3.Cross(grad, et))

	p0 := r.refLine.GetXYZ(s)
	p := r3.Add(r3.Vec{X: p0.X, Y: p0.Y, Z: p0.Z}, r3.Add(r3.Scale(t, et), r3.Scale(h, eh)))
	return geometry.Point{X: p.X, Y: p.Y, Z: p.Z}
}

// Mesh 合并全部车道在整条道路上的表面网格
// 说明：各车道并行生成网格，任一车道出错时返回第一个错误
func (r *Road) Mesh(eps float64, fixedSampleDist bool) (*mesh.Mesh3D, error) {
	type result struct {
		m   *mesh.Mesh3D
		err error
	}
	results := parallel.GoMap(r.lanes.Lanes(), func(l *lane.Lane) result {
		m, err := l.Mesh(0, r.length, eps, fixedSampleDist)
		return result{m: m, err: err}
	})
	out := &mesh.Mesh3D{}
	for i, res := range results {
		if res.err != nil {
			return nil, errors.WithMessagef(res.err, "%v", r.lanes.Lanes()[i])
		}
		out.Add(res.m)
	}
	return out, nil
}
