package qwen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"brqwen/internal/logger"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8787"
	// GatewayURLEnv overrides DefaultBaseURL.
	GatewayURLEnv = "BLACKROAD_GATEWAY_URL"

	DefaultModel = "qwen2.5:7b"
	VisionModel  = "qwen2-vl:7b"
	EmbedModel   = "nomic-embed-text"

	DefaultTemperature = 0.7
	CodeTemperature    = 0.1
	DefaultLanguage    = "python"
	CodeSystemPrompt   = "You are an expert programmer. Output only clean, well-commented code."

	chatPath  = "/chat"
	embedPath = "/embed"

	opChat   = "chat"
	opVision = "vision"
	opEmbed  = "embed"

	requestIDHeader = "X-Request-ID"
)

// Gateway is the model surface the CLI and other callers depend on.
type Gateway interface {
	Chat(ctx context.Context, message string, opts ...ChatOption) (string, error)
	Vision(ctx context.Context, imagePath, prompt string) (string, error)
	Code(ctx context.Context, task, language string) (string, error)
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Ask(ctx context.Context, question string) (string, error)
	AnalyzeImage(ctx context.Context, path, question string) (string, error)
}

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Timeouts bounds each operation kind.
type Timeouts struct {
	Chat   time.Duration
	Vision time.Duration
	Embed  time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Chat:   60 * time.Second,
		Vision: 120 * time.Second,
		Embed:  60 * time.Second,
	}
}

// Client 是网关的同步客户端；构造后只读，可被多个 goroutine 共享。
type Client struct {
	model    string
	baseURL  string
	doer     Doer
	timeouts Timeouts
}

var _ Gateway = (*Client)(nil)

type Option func(*Client)

// WithBaseURL overrides the base URL taken from the environment.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if strings.TrimSpace(u) != "" {
			c.baseURL = strings.TrimSpace(u)
		}
	}
}

// WithHTTPClient replaces the transport, e.g. with a test double.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithTimeouts overrides the per-operation bounds; zero fields keep defaults.
func WithTimeouts(t Timeouts) Option {
	return func(c *Client) {
		if t.Chat > 0 {
			c.timeouts.Chat = t.Chat
		}
		if t.Vision > 0 {
			c.timeouts.Vision = t.Vision
		}
		if t.Embed > 0 {
			c.timeouts.Embed = t.Embed
		}
	}
}

// BaseURLFromEnv returns $BLACKROAD_GATEWAY_URL or DefaultBaseURL.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(GatewayURLEnv)); v != "" {
		return v
	}
	return DefaultBaseURL
}

// New builds a client for model (DefaultModel when empty).
func New(model string, opts ...Option) *Client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	c := &Client{
		model:    model,
		baseURL:  BaseURLFromEnv(),
		doer:     newHTTPClient(),
		timeouts: DefaultTimeouts(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// newHTTPClient 不跟随重定向：3xx 必须作为非 2xx 状态交给调用方。
func newHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (c *Client) Model() string   { return c.model }
func (c *Client) BaseURL() string { return c.baseURL }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type embedRequest struct {
	Model string   `json:"model"`
	Texts []string `json:"texts"`
}

type chatOptions struct {
	system      string
	temperature float64
}

type ChatOption func(*chatOptions)

// WithSystem prepends a system message when s is non-empty.
func WithSystem(s string) ChatOption {
	return func(o *chatOptions) { o.system = s }
}

func WithTemperature(t float64) ChatOption {
	return func(o *chatOptions) { o.temperature = t }
}

// Chat sends [system?, user] to /chat and returns the reply's content field,
// or "" when the gateway omits it.
func (c *Client) Chat(ctx context.Context, message string, opts ...ChatOption) (string, error) {
	o := chatOptions{temperature: DefaultTemperature}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	msgs := make([]Message, 0, 2)
	if o.system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: Text(o.system)})
	}
	msgs = append(msgs, Message{Role: RoleUser, Content: Text(message)})

	temperature := o.temperature
	req := chatRequest{Model: c.model, Messages: msgs, Temperature: &temperature}
	body, err := c.post(ctx, opChat, chatPath, c.timeouts.Chat, req, msgs)
	if err != nil {
		return "", err
	}
	return extractContent(opChat, body)
}

// Vision sends the image at imagePath plus prompt to VisionModel. The
// client's own model is not used and no temperature is sent. File errors
// are returned as-is.
func (c *Client) Vision(ctx context.Context, imagePath, prompt string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}
	msgs := []Message{{
		Role: RoleUser,
		Content: Parts{
			ImagePart{URL: ImageDataURI(imagePath, data)},
			TextPart{Text: prompt},
		},
	}}
	req := chatRequest{Model: VisionModel, Messages: msgs}
	body, err := c.post(ctx, opVision, chatPath, c.timeouts.Vision, req, msgs)
	if err != nil {
		return "", err
	}
	return extractContent(opVision, body)
}

// CodePrompt is the user message Code sends.
func CodePrompt(task, language string) string {
	return fmt.Sprintf("Write %s code for: %s", language, task)
}

// Code asks for code in language (DefaultLanguage when empty) at a low temperature.
func (c *Client) Code(ctx context.Context, task, language string) (string, error) {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return c.Chat(ctx, CodePrompt(task, language),
		WithSystem(CodeSystemPrompt),
		WithTemperature(CodeTemperature),
	)
}

// Embed returns one vector per text as reported by the gateway. The
// embeddings field is required; index alignment with texts is not checked.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if texts == nil {
		texts = []string{}
	}
	req := embedRequest{Model: EmbedModel, Texts: texts}
	body, err := c.post(ctx, opEmbed, embedPath, c.timeouts.Embed, req, nil)
	if err != nil {
		return nil, err
	}
	return extractEmbeddings(opEmbed, body)
}

func (c *Client) post(ctx context.Context, op, path string, timeout time.Duration, payload any, msgs []Message) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("qwen: %s: encode request: %w", op, err)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("qwen: %s: build request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)

	dump := logger.GatewayRequest{
		Op:        op,
		RequestID: reqID,
		URL:       url,
		Model:     modelOf(payload),
		Payload:   b,
	}
	dump.Prompts, dump.Images = promptTexts(msgs)
	logger.LogGatewayRequest(dump)
	logger.Debugf("[qwen] %s 请求: POST %s, model=%s, request_id=%s, bytes=%d", op, url, dump.Model, reqID, len(b))

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		logger.Debugf("[qwen] %s 请求失败: request_id=%s, elapsed=%s, err=%v", op, reqID, time.Since(start), err)
		return nil, fmt.Errorf("qwen: %s: POST %s: %w", op, url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("qwen: %s: read response: %w", op, err)
	}
	logger.LogGatewayResponse(op, reqID, resp.StatusCode, raw)
	logger.Debugf("[qwen] %s 响应: request_id=%s, status=%d, elapsed=%s, bytes=%d", op, reqID, resp.StatusCode, time.Since(start), len(raw))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status := resp.Status
		if status == "" {
			status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, &HTTPStatusError{Op: op, URL: url, StatusCode: resp.StatusCode, Status: status}
	}
	return raw, nil
}

func modelOf(payload any) string {
	switch p := payload.(type) {
	case chatRequest:
		return p.Model
	case embedRequest:
		return p.Model
	default:
		return ""
	}
}
