package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentify(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  {\"breed\":\"Jersey\"}  "}}]}`))
	}))
	defer srv.Close()

	e := New("test-key", "gpt-4o-mini")
	e.baseURL = srv.URL

	out, err := e.Identify(context.Background(), []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, `{"breed":"Jersey"}`, out)

	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.Equal(t, float64(0), gotBody["temperature"])
	rf := gotBody["response_format"].(map[string]any)
	assert.Equal(t, "json_object", rf["type"])

	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	user := msgs[1].(map[string]any)
	parts := user["content"].([]any)
	imgPart := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.True(t, strings.HasPrefix(imgPart["url"].(string), "data:image/jpeg;base64,"))
	assert.Equal(t, "high", imgPart["detail"])
}

func TestIdentify_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	e := New("test-key", "gpt-4o-mini")
	e.baseURL = srv.URL

	_, err := e.Identify(context.Background(), []byte("img"), "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai identify 500")
}

func TestIdentify_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	e := New("test-key", "gpt-4o-mini")
	e.baseURL = srv.URL

	_, err := e.Identify(context.Background(), []byte("img"), "image/jpeg")
	assert.EqualError(t, err, "openai identify: empty response")
}

func TestIdentify_MissingKey(t *testing.T) {
	e := New("", "gpt-4o-mini")
	_, err := e.Identify(context.Background(), []byte("img"), "image/jpeg")
	assert.EqualError(t, err, "OPENAI_API_KEY is empty")
}
