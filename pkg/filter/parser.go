package filter

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"
)

// Parse 解析过滤表达式
// 支持语法：
//   - tests/**/*.py          (只按路径过滤)
//   - tests/**/*.py?*        (同上)
//   - tests/test_a.py?TestA/ (用例名称前缀)
//   - **/*.py?@^Test.*/[?]@  (用例名称正则，@...@ 内部可以包含 ? 和 /)
//
// 第一个 @ 之外的 ? 分隔路径和用例名称，因此路径部分不能使用 ? 通配符
func Parse(expr string) (*Filter, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty filter")
	}

	pathGlob, namePart := splitFilter(expr)
	if pathGlob == "" {
		pathGlob = "**"
	}

	if !doublestar.ValidatePattern(pathGlob) {
		return nil, fmt.Errorf("invalid path glob '%s'", pathGlob)
	}

	name, err := parseName(namePart)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern '%s': %w", namePart, err)
	}

	return &Filter{PathGlob: pathGlob, Name: name}, nil
}

// splitFilter 在第一个不在 @...@ 中的 ? 处分割
func splitFilter(expr string) (string, string) {
	inRegex := false

	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '@':
			inRegex = !inRegex
		case '?':
			if !inRegex {
				return expr[:i], expr[i+1:]
			}
		}
	}

	return expr, ""
}

// parseName 解析用例名称条件
//   - 空或 * : 匹配所有
//   - @pattern@ : 正则
//   - 其他 : 前缀
func parseName(s string) (*NameMatcher, error) {
	if s == "" || s == "*" {
		return &NameMatcher{Type: NameMatchAny}, nil
	}

	if len(s) >= 2 && strings.HasPrefix(s, "@") && strings.HasSuffix(s, "@") {
		pattern := s[1 : len(s)-1]
		if pattern == "" {
			return nil, fmt.Errorf("regex pattern cannot be empty")
		}

		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}

		return &NameMatcher{Type: NameMatchRegex, Value: pattern, re: re}, nil
	}

	if strings.Contains(s, "@") {
		return nil, fmt.Errorf("unterminated regex")
	}

	return &NameMatcher{Type: NameMatchPrefix, Value: s}, nil
}

// Compile 校验 where 条件并编译正则
func (w *Where) Compile() error {
	if w.Path != "" && !doublestar.ValidatePattern(w.Path) {
		return fmt.Errorf("invalid path glob '%s'", w.Path)
	}

	if w.NameRegex != "" {
		re, err := regexp2.Compile(w.NameRegex, regexp2.None)
		if err != nil {
			return fmt.Errorf("invalid name_regex: %w", err)
		}
		w.re = re
	}

	return nil
}
