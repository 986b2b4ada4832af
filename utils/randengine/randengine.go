// 随机数引擎，包装了golang.org/x/exp/rand，为几何性质测试生成可复现的采样点
package randengine

import (
	"sort"
	"sync"

	"golang.org/x/exp/rand"
)

// Engine 随机数引擎
// 功能：基于固定种子生成可复现的随机数，提供区间均匀分布和有序采样
type Engine struct {
	*rand.Rand            // 底层随机数生成器
	mtx        sync.Mutex // 互斥锁，用于*Safe方法
}

// New 创建随机数引擎
// 参数：seed-随机数种子
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed))}
}

// Uniform 生成[lo, hi)内均匀分布的随机数（非线程安全）
func (e *Engine) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*e.Float64()
}

// UniformSafe 生成[lo, hi)内均匀分布的随机数（线程安全）
func (e *Engine) UniformSafe(lo, hi float64) float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Uniform(lo, hi)
}

// SortedUniform 生成n个[lo, hi)内均匀分布并升序排列的随机数（非线程安全）
// 说明：用于生成随机的纵向采样位置s
func (e *Engine) SortedUniform(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = e.Uniform(lo, hi)
	}
	sort.Float64s(out)
	return out
}

// PTrue 以概率p返回true（非线程安全）
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}
