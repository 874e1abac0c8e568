package caseid

// Shape 表示用例描述符可用的信息类型，按优先级排列
type Shape int

const (
	ShapePath     Shape = iota // 文件路径 + 类名 + 用例名
	ShapeNodeID                // 完整的 node id
	ShapeLocation              // (相对路径, 行号, 点分名称)
)

func (s Shape) String() string {
	switch s {
	case ShapePath:
		return "path"
	case ShapeNodeID:
		return "node_id"
	case ShapeLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Location 是执行引擎提供的位置三元组，Line 不参与转换
type Location struct {
	Path string `yaml:"path"`
	Line int    `yaml:"line,omitempty"`
	Name string `yaml:"name"`
}

// Item 描述执行引擎收集到的一个用例
type Item struct {
	Path     string   `yaml:"path,omitempty"`
	Class    string   `yaml:"class,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	NodeID   string   `yaml:"node_id,omitempty"`
	Location Location `yaml:"location,omitempty"`
}

// Shape 返回转换时使用的信息类型：Path 优先，其次 NodeID，最后 Location
func (i Item) Shape() Shape {
	if i.Path != "" {
		return ShapePath
	}
	if i.NodeID != "" {
		return ShapeNodeID
	}
	return ShapeLocation
}
