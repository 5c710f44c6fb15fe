package qwen

import (
	"context"
	"strings"
)

const DefaultImageQuestion = "Describe this image"

// Ask is Chat with default system prompt and temperature.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	return c.Chat(ctx, question)
}

// AnalyzeImage is Vision with question defaulting to DefaultImageQuestion.
func (c *Client) AnalyzeImage(ctx context.Context, path, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		question = DefaultImageQuestion
	}
	return c.Vision(ctx, path, question)
}
