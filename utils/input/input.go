package input

import (
	"context"
	"os"

	"git.fiblab.net/general/common/v2/mongoutil"
	"github.com/pkg/errors"
	"github.com/tsinghua-fib-lab/lanegeom/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v2"
)

// file YAML道路描述文件的根结构
type file struct {
	Roads []RoadDescription `yaml:"roads"`
}

// Load 下载数据
// 功能：根据配置加载全部道路描述
// 参数：ctx-上下文，c-输入配置
// 返回：道路描述列表
// 说明：File非空时从YAML文件加载，否则从MongoDB加载
func Load(ctx context.Context, c config.Input) ([]RoadDescription, error) {
	if c.File != "" {
		return LoadFile(c.File)
	}
	return LoadMongo(ctx, c.URI, c.Roads)
}

// LoadFile 从YAML文件加载道路描述
func LoadFile(path string) ([]RoadDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read road file %s", path)
	}
	return Parse(data)
}

// Parse 解析YAML道路描述，未知字段视为错误
func Parse(data []byte) ([]RoadDescription, error) {
	var f file
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "road file unmarshal")
	}
	return f.Roads, nil
}

// LoadMongo 从MongoDB加载道路描述
// 功能：连接uri指定的MongoDB，读取集合中的全部道路文档，按id升序返回
// 参数：ctx-上下文，uri-连接字符串，path-数据库与集合
func LoadMongo(ctx context.Context, uri string, path config.InputPath) ([]RoadDescription, error) {
	client := mongoutil.NewClient(uri)
	defer client.Disconnect(context.Background())

	coll := client.Database(path.GetDb()).Collection(path.GetColl())
	log.Infof("start fetching from %s.%s", path.DB, path.Col)
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrapf(err, "find roads in %s.%s", path.DB, path.Col)
	}
	var roads []RoadDescription
	if err := cursor.All(ctx, &roads); err != nil {
		return nil, errors.Wrapf(err, "decode roads in %s.%s", path.DB, path.Col)
	}
	log.Infof("finish fetching %d roads from %s.%s", len(roads), path.DB, path.Col)
	return roads, nil
}
