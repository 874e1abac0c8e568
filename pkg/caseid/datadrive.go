package caseid

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// escapeSequence 检测 \uXXXX 形式的转义，\w 按 Unicode 语义匹配
var escapeSequence = regexp2.MustCompile(`\\u\w{4}`, regexp2.None)

// SplitDataDrive 从用例名称中拆分用例和数据驱动
// 数据驱动必须是最后一个 / 之后的完整 [...] 片段，否则返回空
// 例如: "test_x/[1-2]" -> ("test_x", "[1-2]")
func SplitDataDrive(caseSelector string) (string, string) {
	idx := strings.LastIndex(caseSelector, "/")
	if idx == -1 {
		return caseSelector, ""
	}

	tail := caseSelector[idx+1:]
	if isDataDriveTag(tail) {
		return caseSelector[:idx], tail
	}

	return caseSelector, ""
}

// EncodeDataDrive 把数据驱动中的非 ASCII 字符转义为 \uXXXX，与执行引擎的 id 保持一致
// 同时去掉拆分时引入的 / 分隔符
func EncodeDataDrive(name string) string {
	if !hasBracketSuffix(name) {
		return name
	}

	name = unicodeEscape(name)
	return strings.ReplaceAll(name, "/[", "[")
}

// DecodeDataDrive 将数据驱动转换为 UTF-8 字符，对用户来说可读性更好
//
// 执行引擎默认会转义参数化 id 中的非 ASCII 字符：
//
//	test_include[\u4e2d\u6587-\u4e2d\u6587\u6c49\u5b57] -> test_include/[中文-中文汉字]
//
// 只有检测到 \uXXXX 序列时才反转义，否则只补回 / 分隔符
func DecodeDataDrive(name string) string {
	if !hasBracketSuffix(name) {
		return name
	}

	name = strings.ReplaceAll(name, "[", "/[")
	if matched, err := escapeSequence.MatchString(name); err == nil && matched {
		name = unicodeUnescape(name)
	}

	return name
}

func hasBracketSuffix(name string) bool {
	return strings.HasSuffix(name, "]") && strings.Contains(name, "[")
}

func isDataDriveTag(s string) bool {
	return s != "" && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}
