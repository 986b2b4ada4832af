package task

import (
	"flag"
	"fmt"
	"sync/atomic"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/entity/road"
	"github.com/tsinghua-fib-lab/lanegeom/output"

	geojson "github.com/paulmach/go.geojson"
)

var (
	progressInterval = flag.Int("log.progress_interval", 100, "进度日志间隔道路数")
)

// roadResult 单条道路的采样结果
type roadResult struct {
	features []*geojson.Feature
	meshes   []output.NamedMesh
	err      error
}

// Sample 采样阶段
// 功能：并行计算每条道路上每条车道的要素与网格
// 算法说明：
// 1. 道路之间并行，车道只读共享所属道路
// 2. 每条车道在[0, 道路长度]上输出内外边界、标线与表面网格
// 3. 网格使用MeshEps作为容差（固定间距模式下为间距）
// 4. 结果按道路id、车道id升序合并，任一车道出错时返回第一个错误
func (ctx *Context) Sample() error {
	roads, missing := ctx.roadManager.Find(ctx.config.Sample.RoadIDs)
	if len(missing) > 0 {
		log.Warnf("ignore road ids not in road data: %v", missing)
	}
	var done atomic.Int32
	results := parallel.GoMap(roads, func(r *road.Road) roadResult {
		res := ctx.sampleRoad(r)
		if n := done.Add(1); *progressInterval > 0 && n%int32(*progressInterval) == 0 {
			log.Infof("sampled %d/%d roads", n, len(roads))
		}
		return res
	})

	ctx.features = make([]*geojson.Feature, 0)
	ctx.meshes = make([]output.NamedMesh, 0)
	for _, res := range results {
		if res.err != nil {
			return res.err
		}
		ctx.features = append(ctx.features, res.features...)
		ctx.meshes = append(ctx.meshes, res.meshes...)
	}
	log.Infof("sampled %d roads: %d features, %d meshes", len(roads), len(ctx.features), len(ctx.meshes))
	return nil
}

func (ctx *Context) sampleRoad(r *road.Road) (res roadResult) {
	sample := ctx.config.Sample
	for _, l := range r.Lanes() {
		features, err := output.LaneFeatures(l, 0, r.Length(), sample.Eps, sample.Fixed)
		if err != nil {
			res.err = errors.WithMessagef(err, "%v", l)
			return
		}
		m, err := l.Mesh(0, r.Length(), sample.MeshEps, sample.Fixed)
		if err != nil {
			res.err = errors.WithMessagef(err, "%v", l)
			return
		}
		res.features = append(res.features, features...)
		res.meshes = append(res.meshes, output.NamedMesh{
			Name: fmt.Sprintf("road%d_lane%d", r.ID(), l.ID()),
			Mesh: m,
		})
	}
	return
}
