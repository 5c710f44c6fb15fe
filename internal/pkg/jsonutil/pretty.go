package jsonutil

import (
	"bytes"
	"encoding/json"
)

// Pretty 缩进 JSON 并保留原有字段顺序；非法 JSON 原样返回。
func Pretty(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
