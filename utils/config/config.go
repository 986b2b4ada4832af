package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// 默认值
const (
	DefaultEps        = 0.1
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
)

// Parse 解析YAML配置
// 功能：严格解析配置数据，补全默认值并检查有效性
// 参数：data-YAML数据
// 返回：配置对象；存在未知字段、输入来源缺失或采样参数无效时返回错误
// 算法说明：
// 1. 使用UnmarshalStrict解析，未知字段视为错误
// 2. 设置默认值：Eps为0时取DefaultEps，MeshEps为0时取Eps，日志文件轮转参数为0时取默认值
// 3. 检查输入来源：File与URI至少设置一个，使用URI时必须指定db与col
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "config unmarshal")
	}

	if c.Sample.Eps == 0 {
		c.Sample.Eps = DefaultEps
	}
	if c.Sample.Eps < 0 || c.Sample.MeshEps < 0 {
		return Config{}, errors.Errorf("sample eps must be positive, got eps=%v mesh_eps=%v", c.Sample.Eps, c.Sample.MeshEps)
	}
	if c.Sample.MeshEps == 0 {
		c.Sample.MeshEps = c.Sample.Eps
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultMaxBackups
	}

	if c.Input.File == "" {
		if c.Input.URI == "" {
			return Config{}, errors.New("input file or input uri must be specified")
		}
		if c.Input.Roads.DB == "" || c.Input.Roads.Col == "" {
			return Config{}, errors.Errorf("input roads db and col must be specified, got %+v", c.Input.Roads)
		}
	}
	return c, nil
}
