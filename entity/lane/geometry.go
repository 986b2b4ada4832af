package lane

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"
	"github.com/tsinghua-fib-lab/lanegeom/utils/mesh"
)

// BorderLine 采样车道内边界或外边界的三维折线
// 功能：在[sStart, sEnd]上按固定间距或自适应方式取s，对每个s求边界横向偏移并计算表面点
// 参数：sStart,sEnd-纵向区间，eps-采样间距或容差，outer-是否外边界，fixedSampleDist-是否固定间距
// 返回：按s升序的三维点序列
func (l *Lane) BorderLine(sStart, sEnd, eps float64, outer, fixedSampleDist bool) ([]geometry.Point, error) {
	road, err := l.resolveRoad()
	if err != nil {
		return nil, err
	}

	border := l.border(outer)
	var stations []float64
	if fixedSampleDist {
		if stations, err = fixedStations(sStart, sEnd, eps); err != nil {
			return nil, err
		}
	} else {
		stations = l.adaptiveStations(road, sStart, sEnd, eps, border)
	}

	line := make([]geometry.Point, 0, len(stations))
	for _, s := range stations {
		line = append(line, l.surfacePoint(road, s, border.Get(s)))
	}
	return line, nil
}

// Mesh 生成车道表面三角网格
// 功能：内外边界按同一组s同步采样，构建两条等长点链后三角化
// 算法说明：
// 1. 采样位置与BorderLine相同，但自适应模式下合并内外两条边界的线性化结果
// 2. 自适应模式下对采样位置做稀疏化，去除间距不超过eps的近重复位置
// 3. id>0时以外边界链在前、否则以内边界链在前，保证两侧车道的三角形朝向一致
// 返回：网格，每个顶点附带(s, t)坐标
func (l *Lane) Mesh(sStart, sEnd, eps float64, fixedSampleDist bool) (*mesh.Mesh3D, error) {
	road, err := l.resolveRoad()
	if err != nil {
		return nil, err
	}

	var stations []float64
	if fixedSampleDist {
		if stations, err = fixedStations(sStart, sEnd, eps); err != nil {
			return nil, err
		}
	} else {
		stations = l.adaptiveStations(road, sStart, sEnd, eps, l.outerBorder, l.innerBorder)
		stations = container.ThinStations(stations, eps)
	}

	n := len(stations)
	innerLine, outerLine := make([]geometry.Point, 0, n), make([]geometry.Point, 0, n)
	innerST, outerST := make([][2]float64, 0, n), make([][2]float64, 0, n)
	for _, s := range stations {
		tInner, tOuter := l.innerBorder.Get(s), l.outerBorder.Get(s)
		innerLine = append(innerLine, l.surfacePoint(road, s, tInner))
		outerLine = append(outerLine, l.surfacePoint(road, s, tOuter))
		innerST = append(innerST, [2]float64{s, tInner})
		outerST = append(outerST, [2]float64{s, tOuter})
	}

	var m *mesh.Mesh3D
	if l.id > 0 {
		m, err = mesh.FromBorders(outerLine, innerLine)
		if err == nil {
			m.ST = append(outerST, innerST...)
		}
	} else {
		m, err = mesh.FromBorders(innerLine, outerLine)
		if err == nil {
			m.ST = append(innerST, outerST...)
		}
	}
	return m, err
}
