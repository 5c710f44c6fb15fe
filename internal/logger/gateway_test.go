package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayDumpDisabledWithNilWriter(t *testing.T) {
	var buf bytes.Buffer
	SetGatewayWriter(&buf)
	SetGatewayWriter(nil)

	LogGatewayRequest(GatewayRequest{Op: "chat", URL: "http://gw/chat"})
	LogGatewayResponse("chat", "req-0", 200, []byte(`{"content":"x"}`))

	assert.Zero(t, buf.Len())
}

func TestGatewayDumpTruncatesImages(t *testing.T) {
	var buf bytes.Buffer
	SetGatewayWriter(&buf)
	EnableGatewayPayloadDump(false)
	t.Cleanup(func() { SetGatewayWriter(nil) })

	image := "data:image/png;base64," + strings.Repeat("A", 4096)
	LogGatewayRequest(GatewayRequest{
		Op:        "vision",
		RequestID: "req-1",
		URL:       "http://gw/chat",
		Model:     "qwen2-vl:7b",
		Prompts:   []string{"what is this"},
		Images:    []string{image},
		Payload:   []byte(`{"model":"qwen2-vl:7b"}`),
	})

	out := buf.String()
	assert.Contains(t, out, "[GATEWAY][vision-request][req-1]")
	assert.Contains(t, out, "--- PROMPT#1 ---\nwhat is this")
	assert.Contains(t, out, "--- IMAGE#1 ---")
	assert.NotContains(t, out, image)
	assert.NotContains(t, out, "--- PAYLOAD ---")
}

func TestGatewayDumpPayload(t *testing.T) {
	var buf bytes.Buffer
	SetGatewayWriter(&buf)
	EnableGatewayPayloadDump(true)
	t.Cleanup(func() {
		SetGatewayWriter(nil)
		EnableGatewayPayloadDump(false)
	})

	LogGatewayRequest(GatewayRequest{Op: "embed", Payload: []byte(`{"texts":["a"]}`)})
	LogGatewayResponse("embed", "req-2", 200, []byte(`{"embeddings":[[1]]}`))

	out := buf.String()
	assert.Contains(t, out, "--- PAYLOAD ---")
	assert.Contains(t, out, "\"texts\": [")
	assert.Contains(t, out, "[GATEWAY][embed-response][req-2]")
	assert.Contains(t, out, "--- STATUS ---\n200")
}
