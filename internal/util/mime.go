package util

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strings"
)

var (
	jpegMagic = []byte{0xFF, 0xD8}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// SniffMimeHTTP reports the media type of an image by its magic bytes.
func SniffMimeHTTP(b []byte) string {
	switch {
	case bytes.HasPrefix(b, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(b, pngMagic):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func MakeDataURL(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}

// DecodeBase64MaybeDataURL decodes a base64 payload that may arrive wrapped
// as a data:URI. The MIME named in the prefix, if any, is returned alongside
// the bytes.
func DecodeBase64MaybeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)

	var hintMIME string
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		if meta, payload, found := strings.Cut(rest, ","); found {
			hintMIME, _, _ = strings.Cut(meta, ";")
			s = payload
		}
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, hintMIME, nil
	}
	// URL-safe alphabet as a fallback for clients that send it
	if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, hintMIME, nil
	}
	return nil, "", err
}

// PickMIME resolves the media type to declare upstream: the explicit value
// wins, then the data:URI hint, then detection from the bytes.
func PickMIME(explicit, hint string, data []byte) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if v := strings.TrimSpace(hint); v != "" {
		return v
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "image/jpeg"
}
