package filter

import "github.com/dlclark/regexp2"

// NameMatchType 用例名称的匹配方式
type NameMatchType int

const (
	NameMatchAny    NameMatchType = iota // 空或 * 匹配所有用例
	NameMatchPrefix                      // 字面量前缀
	NameMatchRegex                       // @pattern@ 正则
)

// NameMatcher 表示用例名称匹配条件
type NameMatcher struct {
	Type  NameMatchType
	Value string // 前缀或正则

	re *regexp2.Regexp
}

// Filter 表示解析后的过滤表达式，如 tests/**/*.py?@^TestA/@
type Filter struct {
	PathGlob string       // doublestar 通配符
	Name     *NameMatcher // 用例名称条件
}

// Where 表示清单中的 where 条件
type Where struct {
	Path      string   `yaml:"path,omitempty"`        // 路径通配符
	NameRegex string   `yaml:"name_regex,omitempty"`  // 正则匹配
	NameIn    []string `yaml:"name_in,omitempty"`     // 包含列表
	NameNotIn []string `yaml:"name_not_in,omitempty"` // 排除列表

	re *regexp2.Regexp
}
