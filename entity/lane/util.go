package lane

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/entity"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
)

// fixedStations 等间距采样位置
func fixedStations(sStart, sEnd, eps float64) ([]float64, error) {
	stations, ok := container.FixedStations(sStart, sEnd, eps)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidTolerance, "eps=%v on [%v, %v]", eps, sStart, sEnd)
	}
	return stations, nil
}

// adaptiveStations 自适应采样位置
// 功能：合并以下来源的s并去重
// 1. 参考线在容差eps下的线性化
// 2. 各给定边界在容差eps下的线性化
// 3. 高度叠加的所有键（含区间外的键）
// 4. 超高在角度容差atan(eps/|t_max|)下的线性化，t_max为区间内外边界横向偏移绝对值的最大值
func (l *Lane) adaptiveStations(road entity.IRoad, sStart, sEnd, eps float64, borders ...entity.IProfile) []float64 {
	seqs := make([][]float64, 0, len(borders)+3)
	seqs = append(seqs, road.RefLine().ApproximateLinear(eps, sStart, sEnd))
	for _, border := range borders {
		seqs = append(seqs, border.ApproximateLinear(eps, sStart, sEnd))
	}
	seqs = append(seqs, l.heightOffsets.Keys())
	tMax := l.outerBorder.MaxAbs(sStart, sEnd)
	seqs = append(seqs, road.Superelevation().ApproximateLinear(math.Atan(eps/tMax), sStart, sEnd))
	return container.MergeStations(seqs...)
}

func (l *Lane) border(outer bool) entity.IProfile {
	if outer {
		return l.outerBorder
	}
	return l.innerBorder
}
