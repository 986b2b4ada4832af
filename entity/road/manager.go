package road

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanegeom/utils"
)

// RoadManager Road管理器
// 功能：管理所有Road实体，提供查找与按id有序遍历
// 说明：道路只由RoadManager持有，车道对道路的引用均为弱引用，RoadManager释放后道路可被回收
type RoadManager struct {
	data  map[int32]*Road
	roads []*Road
}

// NewManager 创建Road管理器实例
func NewManager() *RoadManager {
	return &RoadManager{
		data:  make(map[int32]*Road),
		roads: make([]*Road, 0),
	}
}

// Init 初始化所有Road
// 功能：按id升序保存道路，建立ID映射关系
// 参数：roads-已构建完成的道路
// 说明：id重复时panic
func (m *RoadManager) Init(roads []*Road) {
	m.roads = slices.SortedFunc(slices.Values(roads), func(a, b *Road) int {
		return int(a.id) - int(b.id)
	})
	m.data = lo.SliceToMap(m.roads, func(r *Road) (int32, *Road) {
		return r.id, r
	})
	if len(m.data) != len(m.roads) {
		log.Panicf("duplicated road id in %v", lo.Map(m.roads, func(r *Road, _ int) int32 { return r.id }))
	}
}

// Get 根据ID获取Road实例
// 功能：通过Road ID查找对应的Road对象，如果不存在则panic
func (m *RoadManager) Get(id int32) *Road {
	if road, ok := m.data[id]; !ok {
		log.Panicf("no id %d in road data", id)
		return nil
	} else {
		return road
	}
}

// GetOrError 根据ID获取Road实例（带错误处理）
func (m *RoadManager) GetOrError(id int32) (*Road, error) {
	if road, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in road data", id)
	} else {
		return road, nil
	}
}

// Find 按ID挑选道路
// 返回：ids为空时返回全部道路；否则按ids顺序返回存在的道路，以及不存在的ID
func (m *RoadManager) Find(ids []int32) ([]*Road, []int32) {
	return utils.FindByID(m.data, m.roads, ids)
}

// Roads 按id升序的全部道路
func (m *RoadManager) Roads() []*Road {
	return m.roads
}

// Len 道路数量
func (m *RoadManager) Len() int {
	return len(m.roads)
}
