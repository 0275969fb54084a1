package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema(t *testing.T) {
	require.Equal(t, genai.TypeObject, responseSchema.Type)

	for name, typ := range map[string]genai.Type{
		"breed":       genai.TypeString,
		"description": genai.TypeString,
		"confidence":  genai.TypeNumber,
		"error":       genai.TypeString,
	} {
		p, ok := responseSchema.Properties[name]
		require.True(t, ok, "schema misses %q", name)
		assert.Equal(t, typ, p.Type)
	}

	// every field stays optional so the model can answer with either arm
	assert.Empty(t, responseSchema.Required)
}

func TestNew_TrimsInput(t *testing.T) {
	e := New("  key  ", " gemini-2.5-flash ")
	assert.Equal(t, "key", e.APIKey)
	assert.Equal(t, "gemini-2.5-flash", e.GetModel())
	assert.Equal(t, "gemini", e.Name())
}

func TestIdentify_MissingKey(t *testing.T) {
	e := New("", "gemini-2.5-flash")
	_, err := e.Identify(context.Background(), []byte("img"), "image/jpeg")
	assert.EqualError(t, err, "GEMINI_API_KEY is empty")
}
