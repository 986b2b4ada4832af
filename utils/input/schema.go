package input

import "github.com/tsinghua-fib-lab/lanegeom/utils/spline"

// PolyDesc 自s起生效的三次多项式 a + b*ds + c*ds^2 + d*ds^3
type PolyDesc struct {
	S float64 `yaml:"s" bson:"s"`
	A float64 `yaml:"a,omitempty" bson:"a"`
	B float64 `yaml:"b,omitempty" bson:"b"`
	C float64 `yaml:"c,omitempty" bson:"c"`
	D float64 `yaml:"d,omitempty" bson:"d"`
}

// toSpline 多项式列表转换为CubicSpline
func toSpline(polys []PolyDesc) *spline.CubicSpline {
	c := spline.New()
	for _, p := range polys {
		c.Add(p.S, p.A, p.B, p.C, p.D)
	}
	return c
}

// 参考线几何段类型
const (
	GeometryLine = "line"
	GeometryArc  = "arc"
)

// GeometryDesc 参考线平面几何段
type GeometryDesc struct {
	Type      string  `yaml:"type" bson:"type"` // line或arc
	S         float64 `yaml:"s" bson:"s"`
	X         float64 `yaml:"x" bson:"x"`
	Y         float64 `yaml:"y" bson:"y"`
	Hdg       float64 `yaml:"hdg" bson:"hdg"`
	Length    float64 `yaml:"length" bson:"length"`
	Curvature float64 `yaml:"curvature,omitempty" bson:"curvature"` // 仅arc
}

// CrossfallSideDesc 自s起生效的横坡作用侧（both/left/right）
type CrossfallSideDesc struct {
	S    float64 `yaml:"s" bson:"s"`
	Side string  `yaml:"side" bson:"side"`
}

// CrossfallDesc 横坡
type CrossfallDesc struct {
	Polys []PolyDesc          `yaml:"polys" bson:"polys"`
	Sides []CrossfallSideDesc `yaml:"sides,omitempty" bson:"sides"`
}

// HeightOffsetDesc 自s起的车道高度叠加
type HeightOffsetDesc struct {
	S     float64 `yaml:"s" bson:"s"`
	Inner float64 `yaml:"inner" bson:"inner"`
	Outer float64 `yaml:"outer" bson:"outer"`
}

// RoadMarksLineDesc 虚线定义，SOffset相对所属标线组的起点
type RoadMarksLineDesc struct {
	SOffset float64 `yaml:"s_offset" bson:"s_offset"`
	Length  float64 `yaml:"length" bson:"length"`
	Space   float64 `yaml:"space" bson:"space"`
	TOffset float64 `yaml:"t_offset,omitempty" bson:"t_offset"`
	Width   float64 `yaml:"width,omitempty" bson:"width"`
}

// RoadMarkGroupDesc 自s起生效的标线组
type RoadMarkGroupDesc struct {
	S      float64             `yaml:"s" bson:"s"`
	Type   string              `yaml:"type" bson:"type"`
	Color  string              `yaml:"color,omitempty" bson:"color"`
	Weight string              `yaml:"weight,omitempty" bson:"weight"`
	Width  float64             `yaml:"width,omitempty" bson:"width"`
	Lines  []RoadMarksLineDesc `yaml:"lines,omitempty" bson:"lines"`
}

// LaneDesc 车道描述
// 说明：车道宽度为关于s的分段多项式，边界由参考线向外逐条车道累加宽度得到
type LaneDesc struct {
	ID             int32               `yaml:"id" bson:"id"`
	Type           string              `yaml:"type" bson:"type"`
	Level          bool                `yaml:"level,omitempty" bson:"level"`
	Widths         []PolyDesc          `yaml:"widths,omitempty" bson:"widths"`
	HeightOffsets  []HeightOffsetDesc  `yaml:"height_offsets,omitempty" bson:"height_offsets"`
	RoadMarkGroups []RoadMarkGroupDesc `yaml:"roadmark_groups,omitempty" bson:"roadmark_groups"`
}

// RoadDescription 道路描述
// 功能：一条道路的参考线、高程、超高、横坡、车道偏移与车道，可由YAML文件或MongoDB文档解码
type RoadDescription struct {
	ID             int32          `yaml:"id" bson:"id"`
	Name           string         `yaml:"name,omitempty" bson:"name"`
	Length         float64        `yaml:"length" bson:"length"`
	Geometries     []GeometryDesc `yaml:"geometries" bson:"geometries"`
	Elevation      []PolyDesc     `yaml:"elevation,omitempty" bson:"elevation"`
	Superelevation []PolyDesc     `yaml:"superelevation,omitempty" bson:"superelevation"`
	Crossfall      CrossfallDesc  `yaml:"crossfall,omitempty" bson:"crossfall"`
	LaneOffset     []PolyDesc     `yaml:"lane_offset,omitempty" bson:"lane_offset"`
	Lanes          []LaneDesc     `yaml:"lanes" bson:"lanes"`
}
