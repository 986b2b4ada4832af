package input

import (
	"slices"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/entity/lane"
	"github.com/tsinghua-fib-lab/lanegeom/entity/road"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
)

// BuildAll 并行构建全部道路
// 返回：与descs顺序一致的道路；任一道路构建失败时返回第一个错误
func BuildAll(descs []RoadDescription) ([]*road.Road, error) {
	type result struct {
		r   *road.Road
		err error
	}
	results := parallel.GoMap(descs, func(desc RoadDescription) result {
		r, err := Build(desc)
		return result{r: r, err: err}
	})
	roads := make([]*road.Road, 0, len(results))
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
		roads = append(roads, res.r)
	}
	return roads, nil
}

// Build 根据描述构建道路及其车道
// 功能：构建参考线、高程、超高、横坡，再按车道宽度累加出各车道的内外边界
// 算法说明：
// 1. 参考线：按描述创建直线段与圆弧段，未知类型返回错误
// 2. 边界：左侧车道按id升序、右侧车道按id降序，自车道偏移向外逐条累加宽度；
// 左侧外边界=内边界+宽度，右侧外边界=内边界-宽度，下一条车道的内边界为本车道外边界
// 3. id为0的中心车道内外边界均为车道偏移
// 4. 高度叠加与标线组按描述挂载，虚线定义的起点换算为绝对s
func Build(desc RoadDescription) (*road.Road, error) {
	refLine := road.NewRefLine(desc.Length)
	for i, g := range desc.Geometries {
		switch g.Type {
		case GeometryLine:
			refLine.AddGeometry(road.NewLine(g.S, g.X, g.Y, g.Hdg, g.Length))
		case GeometryArc:
			if g.Curvature == 0 {
				refLine.AddGeometry(road.NewLine(g.S, g.X, g.Y, g.Hdg, g.Length))
				break
			}
			refLine.AddGeometry(road.NewArc(g.S, g.X, g.Y, g.Hdg, g.Length, g.Curvature))
		default:
			return nil, errors.Errorf("road %d: unknown geometry type %q at index %d", desc.ID, g.Type, i)
		}
	}
	refLine.SetElevation(toSpline(desc.Elevation))

	r := road.New(desc.ID, desc.Name, refLine)
	r.SetSuperelevation(toSpline(desc.Superelevation))
	crossfall := road.NewCrossfall()
	crossfall.CubicSpline = toSpline(desc.Crossfall.Polys)
	for _, side := range desc.Crossfall.Sides {
		switch s := road.CrossfallSide(side.Side); s {
		case road.CrossfallSideBoth, road.CrossfallSideLeft, road.CrossfallSideRight:
			crossfall.SetSide(side.S, s)
		default:
			return nil, errors.Errorf("road %d: unknown crossfall side %q", desc.ID, side.Side)
		}
	}
	r.SetCrossfall(crossfall)

	laneOffset := toSpline(desc.LaneOffset)
	lanes := slices.Clone(desc.Lanes)
	slices.SortFunc(lanes, func(a, b LaneDesc) int { return int(a.ID) - int(b.ID) })
	for i := 1; i < len(lanes); i++ {
		if lanes[i].ID == lanes[i-1].ID {
			return nil, errors.Errorf("road %d: duplicated lane id %d", desc.ID, lanes[i].ID)
		}
	}

	// 左侧自内向外
	inner := laneOffset
	for _, ld := range lanes {
		if ld.ID <= 0 {
			continue
		}
		outer := inner.Sum(toSpline(ld.Widths))
		if err := addLane(r, ld, inner, outer); err != nil {
			return nil, err
		}
		inner = outer
	}
	// 右侧自内向外
	inner = laneOffset
	for _, ld := range slices.Backward(lanes) {
		if ld.ID >= 0 {
			continue
		}
		outer := inner.Sum(toSpline(ld.Widths).Negate())
		if err := addLane(r, ld, inner, outer); err != nil {
			return nil, err
		}
		inner = outer
	}
	for _, ld := range lanes {
		if ld.ID == 0 {
			if err := addLane(r, ld, laneOffset, laneOffset); err != nil {
				return nil, err
			}
		}
	}
	log.Debugf("built %v with %d lanes", r, len(r.Lanes()))
	return r, nil
}

func addLane(r *road.Road, ld LaneDesc, inner, outer *spline.CubicSpline) error {
	l := lane.New(ld.ID, ld.Level, ld.Type)
	l.SetBorders(inner, outer)
	for _, h := range ld.HeightOffsets {
		l.AddHeightOffset(h.S, lane.HeightOffset{Inner: h.Inner, Outer: h.Outer})
	}
	for _, gd := range ld.RoadMarkGroups {
		weight := lane.RoadMarkWeight(gd.Weight)
		switch weight {
		case "":
			weight = lane.RoadMarkWeightStandard
		case lane.RoadMarkWeightStandard, lane.RoadMarkWeightBold:
		default:
			return errors.Errorf("road %d lane %d: unknown roadmark weight %q", r.ID(), ld.ID, gd.Weight)
		}
		g := lane.RoadMarkGroup{Type: gd.Type, Color: gd.Color, Weight: weight, Width: gd.Width}
		for _, line := range gd.Lines {
			g.AddLine(gd.S+line.SOffset, lane.RoadMarksLine{
				Length:  line.Length,
				Space:   line.Space,
				TOffset: line.TOffset,
				Width:   line.Width,
			})
		}
		l.AddRoadMarkGroup(gd.S, g)
	}
	r.AddLane(l)
	return nil
}
