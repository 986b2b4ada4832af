package lane

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
)

// 标线线宽默认值（m）
const (
	RoadMarkWeightStandardWidth = 0.12
	RoadMarkWeightBoldWidth     = 0.25
)

// RoadMarkWeight 标线粗细
type RoadMarkWeight string

const (
	RoadMarkWeightStandard RoadMarkWeight = "standard"
	RoadMarkWeightBold     RoadMarkWeight = "bold"
)

// DefaultWidth 粗细对应的默认线宽
func (w RoadMarkWeight) DefaultWidth() float64 {
	if w == RoadMarkWeightBold {
		return RoadMarkWeightBoldWidth
	}
	return RoadMarkWeightStandardWidth
}

// MaxRoadMarkTiles 单条虚线在一个标线组内平铺段数的上限
const MaxRoadMarkTiles = 1 << 22

// RoadMarksLine 虚线定义，以其在组内的起点s为键
type RoadMarksLine struct {
	Length  float64 // 单段标线长度
	Space   float64 // 段间空隙
	TOffset float64 // 相对边界的横向偏移
	Width   float64 // 线宽，0表示未设置
}

// RoadMarkGroup 自某s起生效的一组标线
type RoadMarkGroup struct {
	Type   string // 标线类型，如solid、broken
	Color  string
	Weight RoadMarkWeight
	Width  float64                          // 线宽，0表示按Weight取默认值
	Lines  container.Overlay[RoadMarksLine] // s->虚线定义，为空表示整段实线
}

// AddLine 添加自s起的虚线定义
func (g *RoadMarkGroup) AddLine(s float64, line RoadMarksLine) {
	g.Lines.Set(s, line)
}

// RoadMark 展开后的单段标线
type RoadMark struct {
	SStart  float64
	SEnd    float64
	TOffset float64
	Width   float64
	GroupS  float64 // 所属标线组的起点
	Type    string
	Color   string
}

// RoadMarks 展开[sStart, sEnd]内的标线
// 功能：将标线组叠加展开为扁平的纵向标线段列表
// 算法说明：
// 1. 遍历范围：从sStart处生效的标线组开始，到第一个起点不小于sEnd的标线组为止（不含）
// 2. 每组裁剪到[max(组起点, sStart), min(下一组起点, sEnd)]
// 3. 线宽：按粗细取默认值，组设置了线宽则覆盖，虚线定义设置了线宽则对该虚线再覆盖
// 4. 无虚线定义时输出覆盖整段的单条标线（横向偏移0）；
// 否则每条虚线自其起点按length+space平铺，每段终点不超过组的裁剪终点
// 返回：标线段列表；虚线长度为负、周期不为正或无法使s前进、平铺段数超过上限时返回ErrDegenerateTiling
func (l *Lane) RoadMarks(sStart, sEnd float64) ([]RoadMark, error) {
	if sStart == sEnd || l.roadMarkGroups.Empty() {
		return []RoadMark{}, nil
	}

	endIdx := l.roadMarkGroups.LowerBound(sEnd)
	roadMarks := make([]RoadMark, 0)
	for i := l.roadMarkGroups.Floor(sStart); i < endIdx; i++ {
		groupS, group := l.roadMarkGroups.At(i)
		groupStart := math.Max(groupS, sStart)
		groupEnd := sEnd
		if i+1 != endIdx {
			groupEnd = math.Min(l.roadMarkGroups.Key(i+1), sEnd)
		}

		width := group.Weight.DefaultWidth()
		if group.Width > 0 {
			width = group.Width
		}
		mark := RoadMark{Width: width, GroupS: groupS, Type: group.Type, Color: group.Color}

		if group.Lines.Empty() {
			mark.SStart, mark.SEnd = groupStart, groupEnd
			roadMarks = append(roadMarks, mark)
			continue
		}
		for j := 0; j < group.Lines.Len(); j++ {
			lineS, line := group.Lines.At(j)
			period := line.Length + line.Space
			if line.Length < 0 || !(period > 0) || lineS+period == lineS {
				return nil, errors.Wrapf(ErrDegenerateTiling,
					"%v: group at s=%v, line at s=%v, length=%v, space=%v", l, groupS, lineS, line.Length, line.Space)
			}
			n := -1
			if groupEnd >= lineS {
				count := math.Floor((groupEnd - lineS) / period)
				if !(count < MaxRoadMarkTiles) {
					return nil, errors.Wrapf(ErrDegenerateTiling,
						"%v: line at s=%v needs more than %d tiles up to s=%v", l, lineS, MaxRoadMarkTiles, groupEnd)
				}
				n = int(count)
			}
			lineMark := mark
			lineMark.TOffset = line.TOffset
			if line.Width > 0 {
				lineMark.Width = line.Width
			}
			// 多一次迭代以容纳除法的舍入误差
			for k := 0; k <= n+1; k++ {
				s := lineS + float64(k)*period
				if s > groupEnd {
					break
				}
				lineMark.SStart, lineMark.SEnd = s, math.Min(groupEnd, s+line.Length)
				roadMarks = append(roadMarks, lineMark)
			}
		}
	}
	return roadMarks, nil
}
