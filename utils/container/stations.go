package container

import (
	"math"
	"slices"
)

// cursor 归并时某一输入序列的读取位置
type cursor struct {
	seq []float64
	pos int
}

// MergeStations 多路归并采样位置
// 功能：将若干升序的s序列归并为一个严格递增、去重后的序列
// 参数：seqs-各来源的s序列（未排序的输入会先排序）
// 返回：升序去重后的s序列
// 算法说明：
// 1. 每个非空序列的首元素以自身数值为优先级入堆
// 2. 每次弹出最小值，与上一个输出值相同则丢弃，否则追加
// 3. 被弹出序列若还有元素则推进并重新入堆
func MergeStations(seqs ...[]float64) []float64 {
	total := 0
	pq := NewPriorityQueue[*cursor]()
	for _, seq := range seqs {
		if len(seq) == 0 {
			continue
		}
		if !slices.IsSorted(seq) {
			seq = slices.Clone(seq)
			slices.Sort(seq)
		}
		total += len(seq)
		pq.Push(&cursor{seq: seq}, seq[0])
	}
	pq.Heapify()
	out := make([]float64, 0, total)
	for pq.Len() > 0 {
		c, s := pq.HeapPop()
		if len(out) == 0 || out[len(out)-1] != s {
			out = append(out, s)
		}
		if c.pos++; c.pos < len(c.seq) {
			pq.HeapPush(c, c.seq[c.pos])
		}
	}
	return out
}

// MaxFixedStations 等间距采样位置数的上限
const MaxFixedStations = 1 << 22

// FixedStations 等间距采样位置
// 功能：生成sStart+k*step（k=0,1,...，严格小于sEnd）并追加sEnd
// 返回：采样位置；step不为正、小到不能使sStart前进或位置数超过MaxFixedStations时返回false
func FixedStations(sStart, sEnd, step float64) ([]float64, bool) {
	if !(step > 0) || sStart+step == sStart {
		return nil, false
	}
	n := 0
	if sEnd > sStart {
		count := math.Ceil((sEnd - sStart) / step)
		if !(count <= MaxFixedStations) {
			return nil, false
		}
		n = int(count)
	}
	out := make([]float64, 0, n+1)
	for k := 0; k < n; k++ {
		s := sStart + float64(k)*step
		if s >= sEnd {
			break
		}
		out = append(out, s)
	}
	return MergeStations(out, []float64{sEnd}), true
}

// ThinStations 稀疏化采样位置，避免生成退化的细长三角形
// 功能：顺序扫描，若当前位置之后至少还有两个位置且与后继的间距不超过eps，则删除该后继并重新比较
// 参数：stations-升序去重的s序列，eps-最小间距
// 返回：稀疏化后的新序列
// 说明：首个位置与最后一个位置永远保留；当前位置只剩一个后继时不再删除，
// 因此只有末尾一段间距可能小于eps
func ThinStations(stations []float64, eps float64) []float64 {
	n := len(stations)
	out := make([]float64, 0, n)
	for i := 0; i < n; {
		out = append(out, stations[i])
		j := i + 1
		for j+1 < n && stations[j]-stations[i] <= eps {
			j++
		}
		i = j
	}
	return out
}
