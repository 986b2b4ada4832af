// Package output 将车道的边界线、标线与表面网格导出为GeoJSON与Wavefront OBJ
package output

import (
	"io"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/lanegeom/entity/lane"
	"github.com/tsinghua-fib-lab/lanegeom/utils/container"

	geojson "github.com/paulmach/go.geojson"
)

// 要素类别（properties.kind）
const (
	KindBorder   = "border"
	KindRoadMark = "roadmark"
)

func toCoords(pts []geometry.Point) [][]float64 {
	return lo.Map(pts, func(p geometry.Point, _ int) []float64 {
		return []float64{p.X, p.Y, p.Z}
	})
}

func setLaneProperties(f *geojson.Feature, l *lane.Lane, kind string) {
	f.SetProperty("road", l.ParentID())
	f.SetProperty("lane", l.ID())
	f.SetProperty("lane_type", l.Type())
	f.SetProperty("kind", kind)
}

// LaneFeatures 车道在[sStart, sEnd]上的GeoJSON要素
// 功能：输出内外边界的三维折线，以及沿外边界加横向偏移放置的标线
// 参数：l-车道，sStart,sEnd-纵向区间，eps-采样间距或容差，fixedSampleDist-是否固定间距
// 返回：要素列表；长度为0的标线输出为点要素
func LaneFeatures(l *lane.Lane, sStart, sEnd, eps float64, fixedSampleDist bool) ([]*geojson.Feature, error) {
	features := make([]*geojson.Feature, 0)
	for _, outer := range []bool{false, true} {
		line, err := l.BorderLine(sStart, sEnd, eps, outer, fixedSampleDist)
		if err != nil {
			return nil, err
		}
		f := geojson.NewLineStringFeature(toCoords(line))
		setLaneProperties(f, l, KindBorder)
		f.SetProperty("outer", outer)
		features = append(features, f)
	}

	marks, err := l.RoadMarks(sStart, sEnd)
	if err != nil {
		return nil, err
	}
	for _, m := range marks {
		stations, ok := container.FixedStations(m.SStart, m.SEnd, eps)
		if !ok {
			return nil, errors.Wrapf(lane.ErrInvalidTolerance, "roadmark sampling of %v with eps=%v", l, eps)
		}
		pts := make([]geometry.Point, 0, len(stations))
		for _, s := range stations {
			p, err := l.SurfacePoint(s, l.OuterBorder().Get(s)+m.TOffset)
			if err != nil {
				return nil, err
			}
			pts = append(pts, p)
		}
		var f *geojson.Feature
		if len(pts) == 1 {
			f = geojson.NewPointFeature(toCoords(pts)[0])
		} else {
			f = geojson.NewLineStringFeature(toCoords(pts))
		}
		setLaneProperties(f, l, KindRoadMark)
		f.SetProperty("type", m.Type)
		f.SetProperty("color", m.Color)
		f.SetProperty("width", m.Width)
		f.SetProperty("s_start", m.SStart)
		f.SetProperty("s_end", m.SEnd)
		features = append(features, f)
	}
	return features, nil
}

// WriteGeoJSON 将要素写为FeatureCollection
func WriteGeoJSON(w io.Writer, features []*geojson.Feature) error {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.AddFeature(f)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "geojson marshal")
	}
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "geojson write")
	}
	log.Debugf("wrote %d features", len(features))
	return nil
}
