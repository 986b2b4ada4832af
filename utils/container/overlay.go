package container

import (
	"sort"
)

// Overlay 以纵向位置s为键的有序属性序列
// 功能：按s严格递增保存属性值，支持"s处生效的条目"查找以及向后一条目的线性插值
// 说明：零值可直接使用；加载阶段写入，查询阶段只读
type Overlay[V any] struct {
	keys   []float64
	values []V
}

// NewOverlay 创建空的Overlay
func NewOverlay[V any]() *Overlay[V] {
	return &Overlay[V]{
		keys:   make([]float64, 0),
		values: make([]V, 0),
	}
}

// Set 写入s处的属性值
// 功能：按顺序插入条目，若s已存在则覆盖原值
// 参数：s-纵向位置，v-属性值
func (o *Overlay[V]) Set(s float64, v V) {
	i := sort.SearchFloat64s(o.keys, s)
	if i < len(o.keys) && o.keys[i] == s {
		o.values[i] = v
		return
	}
	o.keys = append(o.keys, 0)
	o.values = append(o.values, v)
	copy(o.keys[i+1:], o.keys[i:])
	copy(o.values[i+1:], o.values[i:])
	o.keys[i] = s
	o.values[i] = v
}

// Len 条目数量
func (o *Overlay[V]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Empty 是否没有任何条目
func (o *Overlay[V]) Empty() bool {
	return o.Len() == 0
}

// At 第i个条目的键与值
func (o *Overlay[V]) At(i int) (float64, V) {
	return o.keys[i], o.values[i]
}

// Key 第i个条目的键
func (o *Overlay[V]) Key(i int) float64 {
	return o.keys[i]
}

// Value 第i个条目的值
func (o *Overlay[V]) Value(i int) V {
	return o.values[i]
}

// Keys 所有键的副本（升序）
func (o *Overlay[V]) Keys() []float64 {
	if o == nil {
		return nil
	}
	return append([]float64(nil), o.keys...)
}

// Floor 查找s处生效的条目
// 功能：返回键不大于s的最大条目下标；若s在所有键之前则返回第一个条目
// 返回：条目下标，Overlay为空时返回-1
func (o *Overlay[V]) Floor(s float64) int {
	if o.Len() == 0 {
		return -1
	}
	// upper_bound: 第一个键大于s的位置
	i := sort.Search(len(o.keys), func(i int) bool { return o.keys[i] > s })
	if i == 0 {
		return 0
	}
	return i - 1
}

// LowerBound 第一个键不小于s的条目下标，不存在时返回Len()
func (o *Overlay[V]) LowerBound(s float64) int {
	if o == nil {
		return 0
	}
	return sort.SearchFloat64s(o.keys, s)
}

// HasNext 第i个条目之后是否还有条目
func (o *Overlay[V]) HasNext(i int) bool {
	return i+1 < o.Len()
}

// Interpolate 对s处生效条目与其后继条目做线性插值
// 功能：返回生效条目的值与按(s-k0)/(k1-k0)加权的后继增量之和
// 参数：s-查询位置，lerp-值的插值函数(a,b,k)->a+(b-a)*k
// 返回：插值结果，Overlay为空时ok为false
func (o *Overlay[V]) Interpolate(s float64, lerp func(a, b V, k float64) V) (v V, ok bool) {
	i := o.Floor(s)
	if i < 0 {
		return
	}
	if !o.HasNext(i) {
		return o.values[i], true
	}
	k := (s - o.keys[i]) / (o.keys[i+1] - o.keys[i])
	return lerp(o.values[i], o.values[i+1], k), true
}
