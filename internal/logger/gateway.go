package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"brqwen/internal/pkg/jsonutil"
	"brqwen/internal/pkg/text"
)

// 图片 data URI 在转储中只保留前缀，避免日志被 base64 撑爆。
const imagePreviewBytes = 96

var (
	dumpMu      sync.Mutex
	dumpLog     *log.Logger
	dumpPayload bool
)

// SetGatewayWriter 设置网关往返转储的输出；nil 表示关闭。
func SetGatewayWriter(w io.Writer) {
	dumpMu.Lock()
	defer dumpMu.Unlock()
	if w == nil {
		dumpLog = nil
		return
	}
	dumpLog = log.New(w, "", log.LstdFlags)
}

// EnableGatewayPayloadDump 控制是否附带完整请求体。
func EnableGatewayPayloadDump(enabled bool) {
	dumpMu.Lock()
	dumpPayload = enabled
	dumpMu.Unlock()
}

type dumpSection struct {
	Title string
	Body  string
}

// GatewayRequest describes one outbound exchange for the dump.
type GatewayRequest struct {
	Op        string
	RequestID string
	URL       string
	Model     string
	Prompts   []string
	Images    []string
	Payload   []byte
}

func LogGatewayRequest(req GatewayRequest) {
	dumpMu.Lock()
	withPayload := dumpPayload
	dumpMu.Unlock()

	sections := []dumpSection{
		{Title: "URL", Body: req.URL},
		{Title: "MODEL", Body: req.Model},
	}
	for i, p := range req.Prompts {
		sections = append(sections, dumpSection{Title: fmt.Sprintf("PROMPT#%d", i+1), Body: p})
	}
	for i, img := range req.Images {
		sections = append(sections, dumpSection{Title: fmt.Sprintf("IMAGE#%d", i+1), Body: text.Truncate(img, imagePreviewBytes)})
	}
	if withPayload && len(req.Payload) > 0 {
		sections = append(sections, dumpSection{Title: "PAYLOAD", Body: jsonutil.Pretty(req.Payload)})
	}
	writeDump(req.Op+"-request", req.RequestID, sections)
}

func LogGatewayResponse(op, requestID string, status int, raw []byte) {
	sections := []dumpSection{
		{Title: "STATUS", Body: fmt.Sprintf("%d", status)},
		{Title: "RAW", Body: string(raw)},
	}
	writeDump(op+"-response", requestID, sections)
}

func writeDump(kind, requestID string, sections []dumpSection) {
	dumpMu.Lock()
	out := dumpLog
	dumpMu.Unlock()
	if out == nil {
		return
	}
	var b strings.Builder
	b.WriteString("[GATEWAY]")
	for _, tag := range []string{kind, requestID} {
		if tag == "" {
			continue
		}
		b.WriteString("[")
		b.WriteString(tag)
		b.WriteString("]")
	}
	b.WriteString("\n")
	for _, sec := range sections {
		t := strings.TrimSpace(sec.Title)
		if t == "" {
			t = "CONTENT"
		}
		b.WriteString("--- ")
		b.WriteString(t)
		b.WriteString(" ---\n")
		b.WriteString(sec.Body)
		if !strings.HasSuffix(sec.Body, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("=====\n")
	out.Print(b.String())
}
