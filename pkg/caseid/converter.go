package caseid

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	selectorSep = "?"
	nativeSep   = "::"
	nameAttr    = "name="
)

// ErrMalformedNodeID 表示 node id 中缺少 :: 分隔符
var ErrMalformedNodeID = errors.New("not a well-formed native id")

// ToNative 把用例选择器转换为执行引擎的 node id
// 例如: "tests/test_a.py?TestA/test_x/[1-2]" -> "tests/test_a.py::TestA::test_x[1-2]"
func ToNative(selector string) string {
	path, testcase, _ := strings.Cut(selector, selectorSep)
	if testcase == "" {
		// 只有路径时选中整个文件
		return path
	}

	testcase = caseName(testcase)

	name, dataDrive := SplitDataDrive(testcase)
	if dataDrive != "" {
		dataDrive = EncodeDataDrive(dataDrive)
	}

	// 数据驱动里面的 / 不用替换为 ::
	name = strings.ReplaceAll(name, "/", nativeSep)

	return path + nativeSep + name + dataDrive
}

// caseName 从选择器的用例部分取出用例名称
// 含有 & 时按顺序扫描属性，第一个 name= 属性或第一个不含 = 的属性胜出
func caseName(testcase string) string {
	if !strings.Contains(testcase, "&") {
		return strings.TrimPrefix(testcase, nameAttr)
	}

	for _, attr := range strings.Split(testcase, "&") {
		if strings.HasPrefix(attr, nameAttr) {
			return attr[len(nameAttr):]
		}
		if !strings.Contains(attr, "=") {
			return attr
		}
	}

	return ""
}

// NormalizeNodeID 把 node id 转换为用例选择器
// 例如: "dir/mod.py::Cls::test_z[1-2]" -> "dir/mod.py?Cls/test_z/[1-2]"
func NormalizeNodeID(nodeID string) (string, error) {
	path, rest, found := strings.Cut(nodeID, nativeSep)
	if !found {
		return "", fmt.Errorf("%w: %q", ErrMalformedNodeID, nodeID)
	}

	// 第一个分隔符后面是文件，后续的分隔符是测试用例名称
	name := path + selectorSep + strings.ReplaceAll(rest, nativeSep, "/")
	return DecodeDataDrive(name), nil
}

// FromItem 把执行引擎的用例描述符转换为用例选择器
// projectRoot 用于计算文件的相对路径
func FromItem(item Item, projectRoot string) (string, error) {
	switch item.Shape() {
	case ShapePath:
		rel, err := relPath(item.Path, projectRoot)
		if err != nil {
			return "", fmt.Errorf("relative path: %w", err)
		}
		name := item.Name
		if item.Class != "" {
			name = item.Class + "/" + name
		}
		return rel + selectorSep + DecodeDataDrive(name), nil

	case ShapeNodeID:
		return NormalizeNodeID(item.NodeID)

	default:
		name := strings.ReplaceAll(item.Location.Name, ".", "/")
		return item.Location.Path + selectorSep + DecodeDataDrive(name), nil
	}
}

func relPath(path, root string) (string, error) {
	if root == "" {
		root = "."
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
