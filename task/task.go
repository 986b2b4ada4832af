package task

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/entity/road"
	"github.com/tsinghua-fib-lab/lanegeom/output"
	"github.com/tsinghua-fib-lab/lanegeom/utils/config"
	"github.com/tsinghua-fib-lab/lanegeom/utils/input"

	geojson "github.com/paulmach/go.geojson"
)

// Context 任务上下文
// 功能：包含一次采样任务的所有变量和状态
// 说明：持有全部道路，车道对道路的弱引用在任务期间始终有效
type Context struct {
	// 任务名
	job string
	// 配置
	config config.Config

	// Road管理器
	roadManager *road.RoadManager

	// 采样结果
	features []*geojson.Feature
	meshes   []output.NamedMesh
}

// NewContext 创建新的任务上下文
// 参数：job-任务名称，c-配置对象
func NewContext(job string, c config.Config) *Context {
	return &Context{
		job:         job,
		config:      c,
		roadManager: road.NewManager(),
	}
}

func (ctx *Context) RoadManager() *road.RoadManager {
	return ctx.roadManager
}

func (ctx *Context) Features() []*geojson.Feature {
	return ctx.features
}

func (ctx *Context) Meshes() []output.NamedMesh {
	return ctx.meshes
}

// Init 加载道路描述并构建全部道路
func (ctx *Context) Init(c context.Context) error {
	descs, err := input.Load(c, ctx.config.Input)
	if err != nil {
		return err
	}
	log.Infof("Road: %v", len(descs))
	roads, err := input.BuildAll(descs)
	if err != nil {
		return err
	}
	ctx.roadManager.Init(roads)
	return nil
}

// InitWithRoads 使用已构建的道路初始化
func (ctx *Context) InitWithRoads(roads []*road.Road) {
	ctx.roadManager.Init(roads)
}

// Run 执行任务
// 功能：加载数据、采样全部车道并导出
// 算法说明：
// 1. 数据加载：从文件或MongoDB加载道路描述并构建道路
// 2. 采样：并行计算每条车道的边界线、标线与表面网格
// 3. 导出：按配置写出GeoJSON与OBJ文件
func (ctx *Context) Run(c context.Context) error {
	log.Infof("job %s start", ctx.job)
	if err := ctx.Init(c); err != nil {
		return err
	}
	if err := ctx.Sample(); err != nil {
		return err
	}
	if err := ctx.Export(); err != nil {
		return err
	}
	log.Infof("job %s finished", ctx.job)
	return nil
}

// Export 按配置写出采样结果，路径为空的输出跳过
func (ctx *Context) Export() error {
	if path := ctx.config.Output.GeoJSON; path != "" {
		if err := writeFile(path, func(f *os.File) error {
			return output.WriteGeoJSON(f, ctx.features)
		}); err != nil {
			return err
		}
		log.Infof("wrote %d features to %s", len(ctx.features), path)
	}
	if path := ctx.config.Output.OBJ; path != "" {
		if err := writeFile(path, func(f *os.File) error {
			return output.WriteOBJ(f, ctx.meshes)
		}); err != nil {
			return err
		}
		log.Infof("wrote %d meshes to %s", len(ctx.meshes), path)
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.WithMessage(err, path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
