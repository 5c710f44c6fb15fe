package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"brqwen/internal/config"
	"brqwen/internal/gatewaystub"
	"brqwen/internal/qwen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Chat(ctx context.Context, message string, opts ...qwen.ChatOption) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Vision(ctx context.Context, imagePath, prompt string) (string, error) {
	args := m.Called(ctx, imagePath, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Code(ctx context.Context, task, language string) (string, error) {
	args := m.Called(ctx, task, language)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Ask(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) AnalyzeImage(ctx context.Context, path, question string) (string, error) {
	args := m.Called(ctx, path, question)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), args.Error(1)
}

func TestRunDemoPrintsInOrder(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Ask", mock.Anything, DemoQuestion).Return("4", nil).Once()
	gw.On("Code", mock.Anything, DemoTask, "").Return("def fib(n): ...", nil).Once()

	a := provideApp(&config.Config{}, gw, nil)
	var out bytes.Buffer
	require.NoError(t, a.RunDemo(context.Background(), &out))

	assert.Equal(t, "4\ndef fib(n): ...\n", out.String())
	gw.AssertExpectations(t)
}

func TestRunDemoStopsWhenAskFails(t *testing.T) {
	boom := errors.New("gateway down")
	gw := new(MockGateway)
	gw.On("Ask", mock.Anything, DemoQuestion).Return("", boom)

	a := provideApp(&config.Config{}, gw, nil)
	var out bytes.Buffer
	err := a.RunDemo(context.Background(), &out)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out.String())
	gw.AssertNotCalled(t, "Code", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunDemoPrintsAnswerBeforeCodeFails(t *testing.T) {
	boom := errors.New("gateway down")
	gw := new(MockGateway)
	gw.On("Ask", mock.Anything, DemoQuestion).Return("4", nil)
	gw.On("Code", mock.Anything, DemoTask, "").Return("", boom)

	a := provideApp(&config.Config{}, gw, nil)
	var out bytes.Buffer
	err := a.RunDemo(context.Background(), &out)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "4\n", out.String())
}

func TestNewAppWiresClientFromConfig(t *testing.T) {
	stub := gatewaystub.New()
	t.Cleanup(stub.Close)
	stub.OnChat(gatewaystub.Reply{Body: `{"content":"pong"}`})

	dumpPath := filepath.Join(t.TempDir(), "logs", "gateway.log")
	t.Setenv(qwen.GatewayURLEnv, stub.URL())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Model.Default = "qwen2.5:0.5b"
	cfg.App.GatewayLogPath = dumpPath

	a, err := NewApp(cfg)
	require.NoError(t, err)
	defer a.Close()

	client, ok := a.Gateway().(*qwen.Client)
	require.True(t, ok)
	assert.Equal(t, "qwen2.5:0.5b", client.Model())
	assert.Equal(t, stub.URL(), client.BaseURL())

	got, err := a.Gateway().Chat(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", got)

	raw, err := os.ReadFile(dumpPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[GATEWAY][chat-request]")
	assert.Contains(t, string(raw), "[GATEWAY][chat-response]")
}

func TestNewAppRejectsNilConfig(t *testing.T) {
	_, err := NewApp(nil)
	assert.Error(t, err)
}

func TestStartupSummary(t *testing.T) {
	cfg := &config.Config{
		Gateway: config.GatewayConfig{BaseURL: "http://gw", ChatTimeoutSeconds: 1, VisionTimeoutSeconds: 2, EmbedTimeoutSeconds: 3},
		Model:   config.ModelConfig{Default: "m"},
	}
	s := newStartupSummary(cfg).String()
	assert.Contains(t, s, "网关：http://gw")
	assert.Contains(t, s, "vision="+qwen.VisionModel)
	assert.Contains(t, s, "chat=1s, vision=2s, embed=3s")
	assert.Contains(t, s, "往返转储：-")
}
