package config

// InputPath 指定MongoDB中道路描述所在集合的配置
// 功能：定义数据库名与集合名
type InputPath struct {
	DB  string `yaml:"db"`  // 数据库名
	Col string `yaml:"col"` // 集合名
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// Input 指定道路描述来源的配置项
// 功能：定义道路描述的数据来源
// 说明：File非空时从YAML文件加载，否则从URI指定的MongoDB加载Roads集合
type Input struct {
	File  string    `yaml:"file,omitempty"` // YAML文件路径（优先级高于MongoDB）
	URI   string    `yaml:"uri,omitempty"`  // MongoDB连接字符串
	Roads InputPath `yaml:"roads"`          // 道路集合
}

// Sample 采样配置
// 功能：定义边界线与网格的采样方式
type Sample struct {
	Eps   float64 `yaml:"eps"`             // 固定间距模式下为采样间距，自适应模式下为容差
	Fixed bool    `yaml:"fixed,omitempty"` // 是否使用固定间距采样
	// 自适应模式下道路网格的容差，为0则使用Eps
	MeshEps float64 `yaml:"mesh_eps,omitempty"`
	// 只采样指定的道路，为空则采样全部道路
	RoadIDs []int32 `yaml:"road_ids,omitempty"`
}

// Output 输出配置
// 功能：定义输出文件路径，为空则不输出对应内容
type Output struct {
	GeoJSON string `yaml:"geojson,omitempty"` // 车道边界线与标线（GeoJSON）
	OBJ     string `yaml:"obj,omitempty"`     // 车道表面网格（Wavefront OBJ）
}

// Log 日志配置
type Log struct {
	File       string `yaml:"file,omitempty"`        // 日志文件路径，为空则只输出到标准错误
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"` // 单个日志文件的最大大小
	MaxBackups int    `yaml:"max_backups,omitempty"` // 保留的旧日志文件数
}

// Config YAML配置文件的根结构
// 功能：定义整个程序的配置结构
// 说明：包含输入、采样、输出、日志等所有配置项
type Config struct {
	Input  Input  `yaml:"input"`         // 输入
	Sample Sample `yaml:"sample"`        // 采样
	Output Output `yaml:"output"`        // 输出
	Log    Log    `yaml:"log,omitempty"` // 日志
}
