package filter

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"

	"github.com/glesirok/pytestid/pkg/caseid"
)

// splitSelector 拆出选择器的路径和用例名称，用例名称不含数据驱动
func splitSelector(selector string) (string, string) {
	path, testcase, _ := strings.Cut(selector, "?")
	name, _ := caseid.SplitDataDrive(testcase)
	return path, name
}

// Match 检查选择器是否匹配过滤表达式
func (f *Filter) Match(selector string) bool {
	path, name := splitSelector(selector)

	if matched, err := doublestar.Match(f.PathGlob, path); err != nil || !matched {
		return false
	}

	if f.Name == nil {
		return true
	}
	return f.Name.Match(name)
}

// Match 检查用例名称是否匹配
func (m *NameMatcher) Match(name string) bool {
	switch m.Type {
	case NameMatchAny:
		return true
	case NameMatchPrefix:
		return strings.HasPrefix(name, m.Value)
	case NameMatchRegex:
		return matchRegex(m.re, m.Value, name)
	default:
		return false
	}
}

// MatchAny 任一过滤器匹配即返回 true，没有过滤器时匹配所有
func MatchAny(filters []*Filter, selector string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if f.Match(selector) {
			return true
		}
	}
	return false
}

// Match 检查选择器是否满足 where 条件
func (w *Where) Match(selector string) bool {
	path, name := splitSelector(selector)

	if w.Path != "" {
		if matched, err := doublestar.Match(w.Path, path); err != nil || !matched {
			return false
		}
	}

	if w.NameRegex == "" && len(w.NameIn) == 0 && len(w.NameNotIn) == 0 {
		return true
	}

	// 有名称条件时，只有路径的选择器不匹配
	if name == "" {
		return false
	}

	if w.NameRegex != "" && !matchRegex(w.re, w.NameRegex, name) {
		return false
	}

	if slices.Contains(w.NameNotIn, name) {
		return false
	}

	if len(w.NameIn) > 0 && !slices.Contains(w.NameIn, name) {
		return false
	}

	return true
}

func matchRegex(re *regexp2.Regexp, pattern, s string) bool {
	if re == nil {
		var err error
		if re, err = regexp2.Compile(pattern, regexp2.None); err != nil {
			return false
		}
	}
	matched, err := re.MatchString(s)
	return err == nil && matched
}
