package breed

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/apex/log"

	"breedlens/internal/util"
)

const (
	apiErrPrefix = "API Error: "

	fallbackNoBreed = "Could not determine the breed. The image may not contain a cow."
	fallbackGeneric = "An unknown error occurred while identifying the breed."
)

// reply is the decoded model response. Every field is optional; the model may
// omit any of them.
type reply struct {
	Breed       string  `json:"breed"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Error       string  `json:"error"`
}

// Recognize runs one identification round trip through eng and collapses the
// outcome into a Result. It never returns an error: decode, transport and
// model faults all end up in the error arm. Confidence is surfaced exactly as
// the model reported it, even outside [0,1].
func Recognize(ctx context.Context, eng Engine, imageB64, mimeType string) Result {
	res := recognize(ctx, eng, imageB64, mimeType)
	if !res.OK() {
		log.WithFields(log.Fields{
			"engine": eng.Name(),
			"model":  eng.GetModel(),
		}).Warnf("recognition failed: %s", res.Err)
	}
	return res
}

func recognize(ctx context.Context, eng Engine, imageB64, mimeType string) Result {
	img, hintMIME, err := util.DecodeBase64MaybeDataURL(imageB64)
	if err != nil {
		return apiFailure(err)
	}
	if len(img) == 0 {
		return apiFailure(errors.New("empty image payload"))
	}
	mime := util.PickMIME(mimeType, hintMIME, img)

	raw, err := eng.Identify(ctx, img, mime)
	if err != nil {
		return apiFailure(err)
	}

	var rep reply
	if err := json.Unmarshal([]byte(util.StripCodeFences(raw)), &rep); err != nil {
		return apiFailure(err)
	}

	if strings.TrimSpace(rep.Error) != "" {
		return Failure(rep.Error)
	}
	if strings.TrimSpace(rep.Breed) == "" {
		return Failure(fallbackNoBreed)
	}
	return Success(rep.Breed, rep.Description, rep.Confidence)
}

// apiFailure wraps an upstream fault into the error arm, prefixed so callers
// can tell transport faults from model verdicts.
func apiFailure(err error) Result {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return Failure(fallbackGeneric)
	}
	return Failure(apiErrPrefix + msg)
}
