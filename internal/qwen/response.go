package qwen

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

const (
	contentField    = "content"
	embeddingsField = "embeddings"
)

var embeddingsSchema = jsonschema.MustCompileString("embeddings.json", `{
	"type": "array",
	"items": {
		"type": "array",
		"items": {"type": "number"}
	}
}`)

func parseObject(op string, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s: body is not valid JSON", ErrMalformedResponse, op)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: %s: body is not a JSON object", ErrMalformedResponse, op)
	}
	return root, nil
}

// extractContent 读取 content 字段，缺失时返回空串（与 embeddings 的严格处理不同）。
func extractContent(op string, body []byte) (string, error) {
	root, err := parseObject(op, body)
	if err != nil {
		return "", err
	}
	return root.Get(contentField).String(), nil
}

// extractEmbeddings requires the embeddings field; absence is an error.
func extractEmbeddings(op string, body []byte) ([][]float64, error) {
	root, err := parseObject(op, body)
	if err != nil {
		return nil, err
	}
	field := root.Get(embeddingsField)
	if !field.Exists() {
		return nil, &MissingFieldError{Op: op, Field: embeddingsField}
	}
	var generic any
	if err := json.Unmarshal([]byte(field.Raw), &generic); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op, err)
	}
	if err := embeddingsSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op, err)
	}
	var out [][]float64
	if err := json.Unmarshal([]byte(field.Raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op, err)
	}
	if out == nil {
		out = [][]float64{}
	}
	return out, nil
}
