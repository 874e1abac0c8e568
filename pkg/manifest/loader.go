package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/glesirok/pytestid/pkg/engine"
	"github.com/glesirok/pytestid/pkg/filter"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Manifest 表示一个批量转换清单
type Manifest struct {
	ProjectRoot string            `yaml:"project_root,omitempty"`
	Requests    []*engine.Request `yaml:"requests"`
	Where       *filter.Where     `yaml:"where,omitempty"`
}

// LoadFromFile 从文件加载清单
// project_root 为空时使用清单所在目录，project_root 和 item.path 的相对路径都以清单所在目录为基准
func LoadFromFile(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	m, err := Load(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filePath)
	if !filepath.IsAbs(m.ProjectRoot) {
		m.ProjectRoot = filepath.Join(dir, m.ProjectRoot)
	}

	// 用例的相对路径同样以清单所在目录为基准
	for _, req := range m.Requests {
		if req.Item != nil && req.Item.Path != "" && !filepath.IsAbs(req.Item.Path) {
			req.Item.Path = filepath.Join(dir, req.Item.Path)
		}
	}

	return m, nil
}

// Load 解析清单内容，JSON 也可以按 YAML 解析
func Load(data []byte) (*Manifest, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// 校验请求
	for i, req := range m.Requests {
		if req == nil {
			return nil, fmt.Errorf("request %d: empty request", i)
		}
		if err := Validate(req); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
	}

	if m.Where != nil {
		if err := m.Where.Compile(); err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
	}

	return &m, nil
}

// Validate 校验请求的合法性
func Validate(req *engine.Request) error {
	switch req.Action {
	case engine.ActionToNative:
		if req.Selector == "" {
			return fmt.Errorf("selector is required for action %s", req.Action)
		}

	case engine.ActionNormalize:
		if req.NodeID == "" {
			return fmt.Errorf("node_id is required for action %s", req.Action)
		}

	case engine.ActionToSelector:
		if req.Item == nil {
			return fmt.Errorf("item is required for action %s", req.Action)
		}
		if req.Item.Path != "" && req.Item.Name == "" {
			return fmt.Errorf("item.name is required when item.path is set")
		}
		if req.Item.Path == "" && req.Item.NodeID == "" && req.Item.Location.Path == "" {
			return fmt.Errorf("item needs one of path, node_id or location")
		}

	default:
		return fmt.Errorf("unknown action: %s", req.Action)
	}

	return nil
}
