package lane_test

import (
	"math"
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanegeom/entity"
	"github.com/tsinghua-fib-lab/lanegeom/entity/lane"
	"github.com/tsinghua-fib-lab/lanegeom/utils/spline"
)

// 直线参考线，(s, t, h)直接映射为(x, y, z)
type testRefLine struct{}

func (testRefLine) Length() float64 { return 100 }

func (testRefLine) GetXYZ(s float64) geometry.Point { return geometry.Point{X: s} }

func (testRefLine) ApproximateLinear(_, s0, s1 float64) []float64 { return []float64{s0, s1} }

type testCrossfall struct {
	left, right float64
}

func (c testCrossfall) GetCrossfall(_ float64, onLeftSide bool) float64 {
	if onLeftSide {
		return c.left
	}
	return c.right
}

type testRoad struct {
	superelevation *spline.CubicSpline
	crossfall      testCrossfall
}

func (r *testRoad) ID() int32 { return 1 }
func (r *testRoad) Length() float64 { return 100 }
func (r *testRoad) RefLine() entity.IRefLine { return testRefLine{} }
func (r *testRoad) Superelevation() entity.IProfile { return r.superelevation }
func (r *testRoad) Crossfall() entity.ICrossfall { return r.crossfall }
func (r *testRoad) GetXYZ(s, t, h float64) geometry.Point {
	return geometry.Point{X: s, Y: t, Z: h}
}

type testRoadRef struct {
	road entity.IRoad
}

func (r testRoadRef) Resolve() (entity.IRoad, bool) {
	return r.road, r.road != nil
}

func newTestRoad(superelevation, crossfallLeft, crossfallRight float64) *testRoad {
	return &testRoad{
		superelevation: spline.Constant(0, superelevation),
		crossfall:      testCrossfall{left: crossfallLeft, right: crossfallRight},
	}
}

func newTestLane(road entity.IRoad, id int32, level bool, inner, outer *spline.CubicSpline) *lane.Lane {
	l := lane.New(id, level, "driving")
	l.SetBorders(inner, outer)
	l.SetParentRoadWhenInit(1, testRoadRef{road: road})
	return l
}

func TestSurfacePointNotLevel(t *testing.T) {
	road := newTestRoad(0.3, 0.02, 0.1)
	right := newTestLane(road, -1, false, spline.Constant(0, 0), spline.Constant(0, -3.5))
	pt, err := right.SurfacePoint(5, -2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, pt.X)
	assert.Equal(t, -2.0, pt.Y)
	assert.InDelta(t, -math.Tan(0.1)*2, pt.Z, 1e-12)

	left := newTestLane(road, 1, false, spline.Constant(0, 0), spline.Constant(0, 3.5))
	pt, err = left.SurfacePoint(5, 2)
	require.NoError(t, err)
	assert.InDelta(t, -math.Tan(0.02)*2, pt.Z, 1e-12)
}

func TestSurfacePointLevel(t *testing.T) {
	road := newTestRoad(0.05, 0.02, 0.02)
	l := newTestLane(road, 2, true, spline.Constant(0, 3.5), spline.Constant(0, 7))

	// 内边界处超高项为0
	pt, err := l.SurfacePoint(5, 3.5)
	require.NoError(t, err)
	assert.Equal(t, -math.Tan(0.02)*3.5, pt.Z)

	pt, err = l.SurfacePoint(5, 5)
	require.NoError(t, err)
	assert.InDelta(t, -math.Tan(0.02)*3.5+math.Tan(0.05)*1.5, pt.Z, 1e-12)
}

func TestSurfacePointWithoutHeightOffsetIgnoresBorders(t *testing.T) {
	road := newTestRoad(0.05, 0.04, 0.04)
	a := newTestLane(road, 1, false, spline.Constant(0, 0), spline.Constant(0, 3))
	b := newTestLane(road, 1, false, spline.Constant(0, 1), spline.Constant(0, 8))
	for _, s := range []float64{0, 3, 7.5} {
		for _, tt := range []float64{0.5, 2, 6} {
			pa, err := a.SurfacePoint(s, tt)
			require.NoError(t, err)
			pb, err := b.SurfacePoint(s, tt)
			require.NoError(t, err)
			assert.Equal(t, pa, pb)
			assert.InDelta(t, -math.Tan(0.04)*tt, pa.Z, 1e-12)
		}
	}
}

func TestSurfacePointHeightOffset(t *testing.T) {
	road := newTestRoad(0, 0, 0)
	l := newTestLane(road, 1, false, spline.Constant(0, 0), spline.Constant(0, 4))
	l.AddHeightOffset(10, lane.HeightOffset{Inner: 2, Outer: 3})
	l.AddHeightOffset(0, lane.HeightOffset{Inner: 0, Outer: 1})

	cases := []struct {
		s, t, h float64
	}{
		{s: 0, t: 0, h: 0},
		{s: 0, t: 4, h: 1},
		// 沿s插值为(1, 2)，横向取中点
		{s: 5, t: 2, h: 1.5},
		// 最后一个条目之后保持常值
		{s: 20, t: 4, h: 3},
		// 第一个条目之前沿首段外推
		{s: -5, t: 0, h: -1},
		{s: 10, t: 1, h: 2.25},
	}
	for _, c := range cases {
		pt, err := l.SurfacePoint(c.s, c.t)
		require.NoError(t, err)
		assert.InDelta(t, c.h, pt.Z, 1e-12, "s=%v t=%v", c.s, c.t)
	}
	assert.Equal(t, []float64{0, 10}, l.HeightOffsetKeys())
}

func TestSurfacePointCoincidingBorders(t *testing.T) {
	road := newTestRoad(0, 0, 0)
	l := newTestLane(road, 1, false, spline.Constant(0, 2), spline.Constant(0, 2))
	l.AddHeightOffset(0, lane.HeightOffset{Inner: 0.3, Outer: 0.9})
	pt, err := l.SurfacePoint(1, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, pt.Z, 1e-12)
}

func TestRoadReleased(t *testing.T) {
	orphan := lane.New(1, false, "driving")
	_, err := orphan.SurfacePoint(0, 0)
	assert.Equal(t, lane.ErrRoadReleased, errors.Cause(err))

	released := newTestLane(nil, -1, false, spline.New(), spline.New())
	_, err = released.BorderLine(0, 10, 1, true, true)
	assert.Equal(t, lane.ErrRoadReleased, errors.Cause(err))
	_, err = released.Mesh(0, 10, 1, false)
	assert.Equal(t, lane.ErrRoadReleased, errors.Cause(err))
}

func TestBorderLineFixed(t *testing.T) {
	road := newTestRoad(0, 0, 0)
	l := newTestLane(road, -1, false, spline.Constant(0, 0), spline.Constant(0, -3))

	sStart, sEnd, eps := 0.0, 10.0, 0.75
	line, err := l.BorderLine(sStart, sEnd, eps, true, true)
	require.NoError(t, err)
	require.Len(t, line, int(math.Ceil((sEnd-sStart)/eps))+1)
	for i, pt := range line {
		if i < len(line)-1 {
			assert.InDelta(t, float64(i)*eps, pt.X, 1e-12)
		}
		assert.Equal(t, -3.0, pt.Y)
	}
	assert.Equal(t, sEnd, line[len(line)-1].X)

	inner, err := l.BorderLine(sStart, sEnd, eps, false, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, inner[3].Y)

	_, err = l.BorderLine(sStart, sEnd, 0, true, true)
	assert.Equal(t, lane.ErrInvalidTolerance, errors.Cause(err))
}

func TestFixedSamplingUnresolvableStep(t *testing.T) {
	road := newTestRoad(0, 0, 0)
	l := newTestLane(road, -1, false, spline.Constant(0, 0), spline.Constant(0, -3))

	// 步长小于s=10处的浮点分辨率，采样位置无法前进
	_, err := l.BorderLine(10, 16, 1e-18, true, true)
	assert.Equal(t, lane.ErrInvalidTolerance, errors.Cause(err))
	_, err = l.Mesh(10, 16, 1e-18, true)
	assert.Equal(t, lane.ErrInvalidTolerance, errors.Cause(err))

	// 采样位置数超过上限
	_, err = l.BorderLine(0, 1e6, 1e-4, true, true)
	assert.Equal(t, lane.ErrInvalidTolerance, errors.Cause(err))
}

func TestBorderLineAdaptive(t *testing.T) {
	road := newTestRoad(0, 0, 0)
	road.superelevation = spline.New()
	road.superelevation.Add(0, 0, 0.001, 0, 0)
	road.superelevation.Add(20, 0.02, 0, 0, 0)

	l := newTestLane(road, 1, false, spline.Constant(0, 0), spline.Constant(0, 3))
	l.AddHeightOffset(12, lane.HeightOffset{})
	l.AddHeightOffset(40, lane.HeightOffset{})

	line, err := l.BorderLine(0, 30, 0.1, true, false)
	require.NoError(t, err)
	xs := make([]float64, 0, len(line))
	for _, pt := range line {
		xs = append(xs, pt.X)
		assert.Equal(t, 3.0, pt.Y)
	}
	// 区间外的高度叠加键同样参与采样
	assert.Equal(t, []float64{0, 12, 20, 30, 40}, xs)
}

func TestMeshWinding(t *testing.T) {
	road := newTestRoad(0, 0, 0)

	left := newTestLane(road, 1, false, spline.Constant(0, 0), spline.Constant(0, 3))
	m, err := left.Mesh(0, 10, 1, true)
	require.NoError(t, err)
	n := len(m.Vertices) / 2
	require.Equal(t, 11, n)
	// id>0：外边界链在前
	assert.Equal(t, 3.0, m.Vertices[0].Y)
	assert.Equal(t, 0.0, m.Vertices[n].Y)
	assert.Equal(t, [2]float64{0, 3}, m.ST[0])

	right := newTestLane(road, -1, false, spline.Constant(0, 0), spline.Constant(0, -3))
	m2, err := right.Mesh(0, 10, 1, true)
	require.NoError(t, err)
	// id<0：内边界链在前
	assert.Equal(t, 0.0, m2.Vertices[0].Y)
	assert.Equal(t, -3.0, m2.Vertices[n].Y)

	// 两侧车道三角形都朝上
	for i := 0; i < m.NumTriangles(); i++ {
		assert.Greater(t, m.Normal(i).Z, 0.0)
		assert.Greater(t, m2.Normal(i).Z, 0.0)
	}
}

func TestMeshThinning(t *testing.T) {
	road := newTestRoad(0, 0, 0)
	outer := spline.New()
	outer.Add(0, 3, 0, 0.01, 0)
	l := newTestLane(road, 1, false, spline.Constant(0, 0), outer)
	for _, s := range []float64{10, 10.1, 10.2, 29.9} {
		l.AddHeightOffset(s, lane.HeightOffset{Inner: 0, Outer: 0.1})
	}

	eps := 0.5
	m, err := l.Mesh(0, 30, eps, false)
	require.NoError(t, err)
	require.Len(t, m.ST, len(m.Vertices))

	n := len(m.Vertices) / 2
	stations := make([]float64, n)
	for i := range stations {
		stations[i] = m.ST[i][0]
		assert.Equal(t, m.ST[i][0], m.ST[n+i][0])
	}
	assert.Equal(t, 0.0, stations[0])
	assert.Equal(t, 30.0, stations[n-1])
	assert.Contains(t, stations, 10.0)
	assert.NotContains(t, stations, 10.1)
	assert.NotContains(t, stations, 10.2)
	for i := 0; i+2 < n; i++ {
		assert.Greater(t, stations[i+1]-stations[i], eps, "gap after s=%v", stations[i])
	}

	// 固定间距模式不做稀疏化
	fixed, err := l.Mesh(0, 1, 0.25, true)
	require.NoError(t, err)
	assert.Len(t, fixed.Vertices, 2*5)
}
