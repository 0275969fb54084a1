package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"breedlens/internal/breed"
	"breedlens/internal/util"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

type Engine struct {
	APIKey string
	Model  string

	httpc   *http.Client
	baseURL string
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey:  key,
		Model:   model,
		httpc:   &http.Client{},
		baseURL: completionsURL,
	}
}

func (e *Engine) Name() string     { return "openai" }
func (e *Engine) GetModel() string { return e.Model }

// Identify sends the image as a data URL through chat/completions in JSON
// mode. The reply schema rides in the system prompt since json_object mode
// takes no schema parameter. Strictly one attempt per invocation.
func (e *Engine) Identify(ctx context.Context, image []byte, mimeType string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}
	b64 := base64.StdEncoding.EncodeToString(image)
	dataURL := util.MakeDataURL(mimeType, b64)

	system := breed.Instruction + "\n\nReturn only JSON matching this schema (all fields optional):\n" + breed.ResponseShape

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": system},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": "Identify the breed of the cow in this image."},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
				},
			},
		},
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", e.baseURL, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai identify %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("openai identify: empty response")
	}
	return strings.TrimSpace(raw.Choices[0].Message.Content), nil
}
