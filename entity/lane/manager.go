package lane

import (
	"fmt"
	"sort"

	"github.com/tsinghua-fib-lab/lanegeom/entity"
)

// Manager 道路内的车道容器
// 功能：持有同一道路的所有车道，按id查找，按id升序遍历
type Manager struct {
	data  map[int32]*Lane
	lanes []*Lane // 按id升序

	parentID int32
	road     entity.RoadRef // 为nil表示尚未设置所属道路
}

// NewManager 创建车道容器
func NewManager() *Manager {
	return &Manager{
		data:  make(map[int32]*Lane),
		lanes: make([]*Lane, 0),
	}
}

// Add 加入车道，id重复时panic
// 若已设置所属道路，则同时设置车道的所属道路
func (m *Manager) Add(l *Lane) {
	if _, ok := m.data[l.id]; ok {
		log.Panicf("duplicated lane id %d", l.id)
	}
	m.data[l.id] = l
	i := sort.Search(len(m.lanes), func(i int) bool { return m.lanes[i].id > l.id })
	m.lanes = append(m.lanes, nil)
	copy(m.lanes[i+1:], m.lanes[i:])
	m.lanes[i] = l
	if m.road != nil {
		l.SetParentRoadWhenInit(m.parentID, m.road)
	}
}

// Get 根据ID获取车道，不存在则panic
func (m *Manager) Get(id int32) *Lane {
	if l, ok := m.data[id]; !ok {
		log.Panicf("no id %d in lane data", id)
		return nil
	} else {
		return l
	}
}

// GetOrError 根据ID获取车道（带错误处理）
func (m *Manager) GetOrError(id int32) (*Lane, error) {
	if l, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in lane data", id)
	} else {
		return l, nil
	}
}

// Lanes 按id升序的全部车道
func (m *Manager) Lanes() []*Lane {
	return m.lanes
}

// Len 车道数量
func (m *Manager) Len() int {
	return len(m.lanes)
}

// SetParentRoadWhenInit 为已有车道设置所属道路，之后加入的车道也使用该道路
func (m *Manager) SetParentRoadWhenInit(parentID int32, road entity.RoadRef) {
	m.parentID, m.road = parentID, road
	for _, l := range m.lanes {
		l.SetParentRoadWhenInit(parentID, road)
	}
}
