package engine

import "github.com/glesirok/pytestid/pkg/caseid"

// ActionType 定义转换方向
type ActionType string

const (
	ActionToNative   ActionType = "to_native"   // 选择器 -> node id
	ActionToSelector ActionType = "to_selector" // 用例描述符 -> 选择器
	ActionNormalize  ActionType = "normalize"   // node id -> 选择器
)

// Request 表示一条转换请求
type Request struct {
	Action   ActionType   `yaml:"action"`
	Selector string       `yaml:"selector,omitempty"` // 用于 to_native
	NodeID   string       `yaml:"node_id,omitempty"`  // 用于 normalize
	Item     *caseid.Item `yaml:"item,omitempty"`     // 用于 to_selector
}

// Input 返回请求的输入，用于结果和日志
func (r *Request) Input() string {
	switch r.Action {
	case ActionToNative:
		return r.Selector
	case ActionNormalize:
		return r.NodeID
	case ActionToSelector:
		if r.Item == nil {
			return ""
		}
		return describeItem(r.Item)
	default:
		return ""
	}
}

// Result 表示一条转换结果
type Result struct {
	Action ActionType `yaml:"action"`
	Input  string     `yaml:"input"`
	Output string     `yaml:"output,omitempty"`
	Error  string     `yaml:"error,omitempty"`

	// Selector 是结果的选择器形式，用于过滤
	Selector string `yaml:"-"`
}
