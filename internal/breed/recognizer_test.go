package breed

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	resp string
	err  error

	calls    int
	gotImage []byte
	gotMIME  string
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-model" }

func (f *fakeEngine) Identify(_ context.Context, image []byte, mimeType string) (string, error) {
	f.calls++
	f.gotImage = image
	f.gotMIME = mimeType
	return f.resp, f.err
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestRecognize_Success(t *testing.T) {
	eng := &fakeEngine{resp: `{"breed":"Holstein Friesian","description":"Distinctive black and white patched coat.","confidence":0.92}`}

	res := Recognize(context.Background(), eng, b64("photo"), "image/jpeg")

	require.True(t, res.OK())
	assert.Equal(t, "Holstein Friesian", res.Breed)
	assert.Equal(t, "Distinctive black and white patched coat.", res.Description)
	assert.Equal(t, 0.92, res.Confidence)
	assert.Equal(t, 1, eng.calls)
	assert.Equal(t, []byte("photo"), eng.gotImage)
	assert.Equal(t, "image/jpeg", eng.gotMIME)
}

func TestRecognize_ModelError(t *testing.T) {
	eng := &fakeEngine{resp: `{"error":"No cow was detected in the provided image."}`}

	res := Recognize(context.Background(), eng, b64("dog"), "image/jpeg")

	require.False(t, res.OK())
	assert.Equal(t, "No cow was detected in the provided image.", res.Err)
}

func TestRecognize_ErrorWinsOverBreed(t *testing.T) {
	// the error field takes precedence even when a breed is also present
	eng := &fakeEngine{resp: `{"breed":"Jersey","confidence":0.8,"error":"Image too blurry to analyze."}`}

	res := Recognize(context.Background(), eng, b64("blur"), "image/jpeg")

	require.False(t, res.OK())
	assert.Equal(t, "Image too blurry to analyze.", res.Err)
	assert.Empty(t, res.Breed)
}

func TestRecognize_MissingBreedFallback(t *testing.T) {
	for name, resp := range map[string]string{
		"absent": `{"description":"some text","confidence":0.4}`,
		"empty":  `{"breed":"","confidence":0.4}`,
		"blank":  `{"breed":"   "}`,
		"bare":   `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			eng := &fakeEngine{resp: resp}
			res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

			require.False(t, res.OK())
			assert.Equal(t, "Could not determine the breed. The image may not contain a cow.", res.Err)
		})
	}
}

func TestRecognize_ConfidenceNotClamped(t *testing.T) {
	eng := &fakeEngine{resp: `{"breed":"Angus","confidence":1.7}`}

	res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

	require.True(t, res.OK())
	assert.Equal(t, 1.7, res.Confidence)
}

func TestRecognize_ConfidenceAbsent(t *testing.T) {
	eng := &fakeEngine{resp: `{"breed":"Hereford","description":"Red body, white face."}`}

	res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

	require.True(t, res.OK())
	assert.Equal(t, "Hereford", res.Breed)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestRecognize_EngineError(t *testing.T) {
	eng := &fakeEngine{err: errors.New("status 503: upstream unavailable")}

	res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

	require.False(t, res.OK())
	assert.Equal(t, "API Error: status 503: upstream unavailable", res.Err)
}

func TestRecognize_EngineErrorBlankMessage(t *testing.T) {
	eng := &fakeEngine{err: errors.New("   ")}

	res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

	require.False(t, res.OK())
	assert.Equal(t, "An unknown error occurred while identifying the breed.", res.Err)
}

func TestRecognize_MalformedJSON(t *testing.T) {
	eng := &fakeEngine{resp: `the breed is probably Jersey`}

	res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

	require.False(t, res.OK())
	assert.Contains(t, res.Err, "API Error: ")
}

func TestRecognize_CodeFencedJSON(t *testing.T) {
	eng := &fakeEngine{resp: "```json\n{\"breed\":\"Jersey\",\"confidence\":0.75}\n```"}

	res := Recognize(context.Background(), eng, b64("img"), "image/jpeg")

	require.True(t, res.OK())
	assert.Equal(t, "Jersey", res.Breed)
}

func TestRecognize_BadBase64(t *testing.T) {
	eng := &fakeEngine{resp: `{"breed":"Jersey"}`}

	res := Recognize(context.Background(), eng, "not-base64!!!", "image/jpeg")

	require.False(t, res.OK())
	assert.Contains(t, res.Err, "API Error: ")
	assert.Zero(t, eng.calls)
}

func TestRecognize_EmptyPayload(t *testing.T) {
	eng := &fakeEngine{resp: `{"breed":"Jersey"}`}

	res := Recognize(context.Background(), eng, "", "image/jpeg")

	require.False(t, res.OK())
	assert.Equal(t, "API Error: empty image payload", res.Err)
	assert.Zero(t, eng.calls)
}

func TestRecognize_DataURLInput(t *testing.T) {
	eng := &fakeEngine{resp: `{"breed":"Jersey","confidence":0.6}`}
	in := "data:image/png;base64," + b64("png-bytes")

	res := Recognize(context.Background(), eng, in, "")

	require.True(t, res.OK())
	assert.Equal(t, "image/png", eng.gotMIME)
	assert.Equal(t, []byte("png-bytes"), eng.gotImage)
}

func TestResult_MarshalSuccess(t *testing.T) {
	out, err := json.Marshal(Success("Holstein Friesian", "patched coat", 0.92))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "Holstein Friesian", m["breed"])
	assert.Equal(t, "patched coat", m["description"])
	assert.Equal(t, 0.92, m["confidence"])
	assert.NotContains(t, m, "error")
}

func TestResult_MarshalFailure(t *testing.T) {
	out, err := json.Marshal(Failure("No cow was detected in the provided image."))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, "No cow was detected in the provided image.", m["error"])
	assert.NotContains(t, m, "breed")
	assert.NotContains(t, m, "confidence")
}
