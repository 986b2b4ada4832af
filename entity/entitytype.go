package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
)

// 车道相对参考线的方位
const (
	LEFT  = 0 // 左侧，车道id>0
	RIGHT = 1 // 右侧，车道id<0
)

// IProfile 关于纵向位置s的分段标量函数（边界、超高、横坡、高程）
type IProfile interface {
	Get(s float64) float64                           // s处的值
	Max(s0, s1 float64) float64                      // [s0, s1]内的最大值
	MaxAbs(s0, s1 float64) float64                   // [s0, s1]内绝对值的最大值
	ApproximateLinear(eps, s0, s1 float64) []float64 // 线性化采样位置，升序去重
}

// IRefLine 道路参考线
type IRefLine interface {
	Length() float64
	GetXYZ(s float64) geometry.Point                 // 参考线上s处的三维位置
	ApproximateLinear(eps, s0, s1 float64) []float64 // 线性化采样位置，升序去重
}

// ICrossfall 道路横坡
type ICrossfall interface {
	// 车道位于参考线左侧(onLeftSide)或右侧时s处的横坡角（弧度）
	GetCrossfall(s float64, onLeftSide bool) float64
}

// road/road.go的依赖倒置
type IRoad interface {
	ID() int32
	Length() float64
	RefLine() IRefLine
	Superelevation() IProfile // 超高角（弧度）
	Crossfall() ICrossfall

	// (s, t, h)道路坐标转换为三维位置，t为横向偏移，h为相对横断面的高度
	GetXYZ(s, t, h float64) geometry.Point
}

// RoadRef 车道指向所属道路的非持有引用
// 说明：道路拥有车道，车道只通过RoadRef访问道路；道路被回收后Resolve返回false
type RoadRef interface {
	Resolve() (IRoad, bool)
}
