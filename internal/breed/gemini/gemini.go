package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"breedlens/internal/breed"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// responseSchema mirrors breed.ResponseShape for the native structured-output
// mode. No field is listed as required; the model may omit any of them.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"breed":       {Type: genai.TypeString, Description: "The identified cow breed, common or scientific name."},
		"description": {Type: genai.TypeString, Description: "One paragraph about the breed, including the regions where it is commonly found."},
		"confidence":  {Type: genai.TypeNumber, Description: "Confidence in the identification, from 0.0 to 1.0."},
		"error":       {Type: genai.TypeString, Description: "Set only when the image does not clearly contain a cow."},
	},
}

// Identify sends the instruction and the image in a single generateContent
// call. Strictly one attempt per invocation.
func (e *Engine) Identify(ctx context.Context, image []byte, mimeType string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(breed.Instruction)},
	}

	parts := []genai.Part{
		genai.Text("Identify the breed of the cow in this image."),
		&genai.Blob{MIMEType: mimeType, Data: image},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini identify: empty response")
	}
	return txt, nil
}

// --------------------------- helpers ---------------------------

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
