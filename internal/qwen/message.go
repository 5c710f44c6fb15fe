package qwen

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Content is either Text or Parts. The set is closed; see isContent.
type Content interface {
	isContent()
}

// Text is plain string content.
type Text string

// Parts is ordered multimodal content.
type Parts []Part

func (Text) isContent()  {}
func (Parts) isContent() {}

// Part is one element of Parts: TextPart or ImagePart.
type Part interface {
	isPart()
}

type TextPart struct {
	Text string
}

// ImagePart references an image by URL, usually a data URI.
type ImagePart struct {
	URL string
}

func (TextPart) isPart()  {}
func (ImagePart) isPart() {}

type Message struct {
	Role    Role
	Content Content
}

type wireMessage struct {
	Role    Role `json:"role"`
	Content any  `json:"content"`
}

type wireTextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wireImagePart struct {
	Type     string       `json:"type"`
	ImageURL wireImageURL `json:"image_url"`
}

type wireImageURL struct {
	URL string `json:"url"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	content, err := encodeContent(m.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireMessage{Role: m.Role, Content: content})
}

func encodeContent(c Content) (any, error) {
	switch v := c.(type) {
	case Text:
		return string(v), nil
	case Parts:
		out := make([]any, 0, len(v))
		for i, p := range v {
			switch part := p.(type) {
			case TextPart:
				out = append(out, wireTextPart{Type: "text", Text: part.Text})
			case ImagePart:
				out = append(out, wireImagePart{Type: "image_url", ImageURL: wireImageURL{URL: part.URL}})
			default:
				return nil, fmt.Errorf("qwen: unsupported content part #%d (%T)", i, p)
			}
		}
		return out, nil
	case nil:
		return "", nil
	default:
		return nil, fmt.Errorf("qwen: unsupported message content %T", c)
	}
}

// ImageSubtype returns the lower-cased extension of path without the dot.
// No check is made that it names a real image type.
func ImageSubtype(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ImageDataURI builds data:image/<subtype>;base64,<data>.
func ImageDataURI(path string, data []byte) string {
	return "data:image/" + ImageSubtype(path) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// promptTexts collects the text portions of msgs for the exchange dump.
func promptTexts(msgs []Message) (prompts, images []string) {
	for _, m := range msgs {
		switch v := m.Content.(type) {
		case Text:
			prompts = append(prompts, string(m.Role)+": "+string(v))
		case Parts:
			for _, p := range v {
				switch part := p.(type) {
				case TextPart:
					prompts = append(prompts, string(m.Role)+": "+part.Text)
				case ImagePart:
					images = append(images, part.URL)
				}
			}
		}
	}
	return prompts, images
}
