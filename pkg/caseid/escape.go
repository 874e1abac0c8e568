package caseid

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// unicodeEscape 把可打印 ASCII 以外的字符写成转义序列
// 规则：\ 写成 \\，\t \n \r 使用短格式，其余控制字符和 Latin-1 写成 \xhh，
// BMP 内写成 \uXXXX，BMP 外写成 \UXXXXXXXX
func unicodeEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r < 0x100:
			writeHex(&b, 'x', r, 2)
		case r < 0x10000:
			writeHex(&b, 'u', r, 4)
		default:
			writeHex(&b, 'U', r, 8)
		}
	}

	return b.String()
}

func writeHex(b *strings.Builder, prefix byte, r rune, width int) {
	b.WriteByte('\\')
	b.WriteByte(prefix)
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>uint(shift))&0xf])
	}
}

// unicodeUnescape 是 unicodeEscape 的逆操作
// 无法识别或不完整的转义序列按原文保留，非 ASCII 的原始字符也原样保留
func unicodeUnescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			_, size := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		c := s[i+1]
		switch c {
		case '\\', '\'', '"':
			b.WriteByte(c)
			i += 2
		case 'a':
			b.WriteByte('\a')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case '\n':
			// 续行
			i += 2
		case 'x', 'u', 'U':
			width := escapeWidth(c)
			r, ok := parseHex(s, i+2, width)
			if !ok {
				b.WriteString(s[i : i+2])
				i += 2
				continue
			}
			i += 2 + width

			if utf16.IsSurrogate(r) {
				// 代理对：\ud83d\ude00
				if low, ok := parseLowSurrogate(s, i); ok && r < 0xdc00 {
					r = utf16.DecodeRune(r, low)
					i += 6
				} else {
					b.WriteString(s[i-2-width : i])
					continue
				}
			}
			if !utf8.ValidRune(r) {
				b.WriteString(s[i-2-width : i])
				continue
			}
			b.WriteRune(r)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i + 1
			for end < len(s) && end < i+4 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i+1:end], 8, 32)
			b.WriteRune(rune(v))
			i = end
		default:
			// 未知转义保留反斜杠
			b.WriteByte('\\')
			i++
		}
	}

	return b.String()
}

func escapeWidth(c byte) int {
	switch c {
	case 'x':
		return 2
	case 'u':
		return 4
	default:
		return 8
	}
}

func parseHex(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func parseLowSurrogate(s string, i int) (rune, bool) {
	if !strings.HasPrefix(s[i:], `\u`) {
		return 0, false
	}
	low, ok := parseHex(s, i+2, 4)
	if !ok || low < 0xdc00 || low > 0xdfff {
		return 0, false
	}
	return low, true
}
