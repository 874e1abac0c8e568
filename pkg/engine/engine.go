package engine

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/glesirok/pytestid/pkg/caseid"
)

// Engine 执行用例标识转换
type Engine struct {
	projectRoot string
}

func NewEngine(projectRoot string) *Engine {
	return &Engine{projectRoot: projectRoot}
}

// ProjectRoot 返回计算相对路径使用的项目根目录
func (e *Engine) ProjectRoot() string {
	return e.projectRoot
}

// Apply 执行一条转换请求
func (e *Engine) Apply(req *Request) (*Result, error) {
	switch req.Action {
	case ActionToNative:
		return e.toNative(req)
	case ActionToSelector:
		return e.toSelector(req)
	case ActionNormalize:
		return e.normalize(req)
	default:
		return nil, fmt.Errorf("unknown action: %s", req.Action)
	}
}

// toNative 选择器转换为 node id
func (e *Engine) toNative(req *Request) (*Result, error) {
	if req.Selector == "" {
		return nil, fmt.Errorf("selector is required for action %s", req.Action)
	}

	nodeID := caseid.ToNative(req.Selector)
	log.Debugf("to_native: %q -> %q", req.Selector, nodeID)

	return &Result{
		Action:   req.Action,
		Input:    req.Selector,
		Output:   nodeID,
		Selector: req.Selector,
	}, nil
}

// normalize node id 转换为选择器
func (e *Engine) normalize(req *Request) (*Result, error) {
	if req.NodeID == "" {
		return nil, fmt.Errorf("node_id is required for action %s", req.Action)
	}

	selector, err := caseid.NormalizeNodeID(req.NodeID)
	if err != nil {
		return nil, err
	}
	log.Debugf("normalize: %q -> %q", req.NodeID, selector)

	return &Result{
		Action:   req.Action,
		Input:    req.NodeID,
		Output:   selector,
		Selector: selector,
	}, nil
}

// toSelector 用例描述符转换为选择器
func (e *Engine) toSelector(req *Request) (*Result, error) {
	if req.Item == nil {
		return nil, fmt.Errorf("item is required for action %s", req.Action)
	}

	selector, err := caseid.FromItem(*req.Item, e.projectRoot)
	if err != nil {
		return nil, err
	}
	log.Debugf("to_selector (%s): %q -> %q", req.Item.Shape(), req.Input(), selector)

	return &Result{
		Action:   req.Action,
		Input:    req.Input(),
		Output:   selector,
		Selector: selector,
	}, nil
}

// describeItem 用可读的形式描述用例，作为结果的 input
func describeItem(item *caseid.Item) string {
	switch item.Shape() {
	case caseid.ShapePath:
		parts := []string{item.Path}
		if item.Class != "" {
			parts = append(parts, item.Class)
		}
		return strings.Join(append(parts, item.Name), "::")
	case caseid.ShapeNodeID:
		return item.NodeID
	default:
		return fmt.Sprintf("%s:%d:%s", item.Location.Path, item.Location.Line, item.Location.Name)
	}
}
