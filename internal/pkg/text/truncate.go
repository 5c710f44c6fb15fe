package text

import (
	"fmt"
	"unicode/utf8"
)

// Truncate 截断到 max 字节以内（不切断 UTF-8 字符），并标注被省略的字节数。
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s...(+%d bytes)", s[:cut], len(s)-cut)
}
