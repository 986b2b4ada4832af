package lane

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/entity"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
)

var (
	// ErrRoadReleased 车道所属道路已不可访问（构造顺序错误或道路已被回收）
	ErrRoadReleased = errors.New("could not access parent road for lane")
	// ErrDegenerateTiling 标线虚线定义无法平铺：length为负，或周期length+space不为正、过小
	ErrDegenerateTiling = errors.New("roadmark line cannot be tiled")
	// ErrInvalidTolerance 固定间距采样的步长不为正，或小到采样位置无法前进、数量超过上限
	ErrInvalidTolerance = errors.New("sample distance must be positive and resolvable")
)

// HeightOffset 车道在内/外边界处相对横断面的附加高度
type HeightOffset struct {
	Inner float64 `yaml:"inner" bson:"inner"`
	Outer float64 `yaml:"outer" bson:"outer"`
}

func lerpHeightOffset(a, b HeightOffset, k float64) HeightOffset {
	return HeightOffset{
		Inner: a.Inner + (b.Inner-a.Inner)*k,
		Outer: a.Outer + (b.Outer-a.Outer)*k,
	}
}

// Lane 车道实体
// 功能：由内外边界剖面、高度叠加与标线组叠加描述的车道，计算车道表面点、边界线、网格与标线布局
// 说明：加载阶段设置边界与叠加数据，此后只读，可被多个goroutine并发查询
type Lane struct {
	id    int32  // 车道id，正数位于参考线左侧，负数位于右侧
	level bool   // 是否保持水平（抵消超高）
	typ   string // 车道类型

	innerBorder entity.IProfile // 内边界横向偏移
	outerBorder entity.IProfile // 外边界横向偏移

	heightOffsets  container.Overlay[HeightOffset]  // s->高度叠加
	roadMarkGroups container.Overlay[RoadMarkGroup] // s->标线组

	road     entity.RoadRef // 所属道路（非持有引用）
	parentID int32
}

// New 创建车道
// 参数：id-车道id，level-是否保持水平，typ-车道类型
// 说明：边界默认为恒0剖面，需在加载阶段通过SetBorders设置
func New(id int32, level bool, typ string) *Lane {
	return &Lane{
		id:          id,
		level:       level,
		typ:         typ,
		innerBorder: spline.New(),
		outerBorder: spline.New(),
	}
}

// 数据初始化

// SetBorders 设置内外边界
func (l *Lane) SetBorders(inner, outer entity.IProfile) {
	l.innerBorder = inner
	l.outerBorder = outer
}

// AddHeightOffset 添加s处的高度叠加
func (l *Lane) AddHeightOffset(s float64, h HeightOffset) {
	l.heightOffsets.Set(s, h)
}

// AddRoadMarkGroup 添加自s起生效的标线组
func (l *Lane) AddRoadMarkGroup(s float64, g RoadMarkGroup) {
	l.roadMarkGroups.Set(s, g)
}

// SetParentRoadWhenInit 设置lane所在road
func (l *Lane) SetParentRoadWhenInit(parentID int32, road entity.RoadRef) {
	l.parentID = parentID
	l.road = road
}

// 属性

func (l *Lane) ID() int32 {
	return l.id
}

func (l *Lane) Level() bool {
	return l.level
}

func (l *Lane) Type() string {
	return l.typ
}

func (l *Lane) ParentID() int32 {
	return l.parentID
}

// Side 车道位于参考线的哪一侧（entity.LEFT/entity.RIGHT）
func (l *Lane) Side() int {
	if l.id > 0 {
		return entity.LEFT
	}
	return entity.RIGHT
}

func (l *Lane) InnerBorder() entity.IProfile {
	return l.innerBorder
}

func (l *Lane) OuterBorder() entity.IProfile {
	return l.outerBorder
}

// HeightOffsetKeys 高度叠加的所有s
func (l *Lane) HeightOffsetKeys() []float64 {
	return l.heightOffsets.Keys()
}

func (l *Lane) String() string {
	return fmt.Sprintf("Lane %d:%d", l.parentID, l.id)
}

// resolveRoad 获取所属道路，每次查询只解析一次
func (l *Lane) resolveRoad() (entity.IRoad, error) {
	if l.road != nil {
		if road, ok := l.road.Resolve(); ok {
			return road, nil
		}
	}
	return nil, errors.Wrapf(ErrRoadReleased, "lane %d of road %d", l.id, l.parentID)
}

// SurfacePoint 计算车道表面上(s, t)处的三维位置
// 功能：根据横坡/超高模型与高度叠加求出高度h，再由道路将(s, t, h)转换为三维坐标
// 参数：s-纵向位置，t-相对参考线的横向偏移
// 返回：三维位置；所属道路不可访问时返回ErrRoadReleased
func (l *Lane) SurfacePoint(s, t float64) (geometry.Point, error) {
	road, err := l.resolveRoad()
	if err != nil {
		return geometry.Point{}, err
	}
	return l.surfacePoint(road, s, t), nil
}

// surfacePoint 计算表面点
// 算法说明：
// 1. 水平车道：内边界处按横坡取高度，再以tan(超高)*(t-t_inner)抵消超高，使车道相对倾斜的横断面保持水平
// 2. 非水平车道：直接按横坡与|t|取高度
// 3. 高度叠加非空时，按t在内外边界间的比例p插值内外高度；若存在下一条目，内外高度先沿s线性插值
func (l *Lane) surfacePoint(road entity.IRoad, s, t float64) geometry.Point {
	tInner := l.innerBorder.Get(s)
	crossfall := road.Crossfall().GetCrossfall(s, l.id > 0)

	var h float64
	if l.level {
		hInner := -math.Tan(crossfall) * math.Abs(tInner)
		superelev := road.Superelevation().Get(s)
		h = hInner + math.Tan(superelev)*(t-tInner)
	} else {
		h = -math.Tan(crossfall) * math.Abs(t)
	}

	if offset, ok := l.heightOffsets.Interpolate(s, lerpHeightOffset); ok {
		tOuter := l.outerBorder.Get(s)
		p := 0.0
		if tOuter != tInner {
			p = (t - tInner) / (tOuter - tInner)
		} else {
			log.Debugf("%v: inner and outer border coincide at s=%v", l, s)
		}
		h += p*(offset.Outer-offset.Inner) + offset.Inner
	}

	return road.GetXYZ(s, t, h)
}
