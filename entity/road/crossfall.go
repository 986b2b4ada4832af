package road

import (
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
)

// CrossfallSide 横坡作用的一侧
type CrossfallSide string

const (
	CrossfallSideBoth  CrossfallSide = "both"
	CrossfallSideLeft  CrossfallSide = "left"
	CrossfallSideRight CrossfallSide = "right"
)

// Crossfall 道路横坡
// 功能：横坡角剖面（弧度）与按s生效的作用侧，作用侧未覆盖的一侧横坡为0
type Crossfall struct {
	*spline.CubicSpline
	sides container.Overlay[CrossfallSide]
}

// NewCrossfall 创建横坡，未设置作用侧时两侧均生效
func NewCrossfall() *Crossfall {
	return &Crossfall{CubicSpline: spline.New()}
}

// SetSide 设置自s起的作用侧
func (c *Crossfall) SetSide(s float64, side CrossfallSide) {
	c.sides.Set(s, side)
}

// Side s处的作用侧
func (c *Crossfall) Side(s float64) CrossfallSide {
	if c.sides.Empty() {
		return CrossfallSideBoth
	}
	return c.sides.Value(c.sides.Floor(s))
}

// GetCrossfall 车道位于参考线左侧(onLeftSide)或右侧时s处的横坡角
func (c *Crossfall) GetCrossfall(s float64, onLeftSide bool) float64 {
	switch c.Side(s) {
	case CrossfallSideBoth:
	case CrossfallSideLeft:
		if !onLeftSide {
			return 0
		}
	case CrossfallSideRight:
		if onLeftSide {
			return 0
		}
	default:
		return 0
	}
	return c.Get(s)
}
