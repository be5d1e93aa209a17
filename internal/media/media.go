// Package media handles the base64 image payloads the backend embeds in its
// JSON responses.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEGIF  = "image/gif"
	MIMEWEBP = "image/webp"
)

// ErrUnsupportedFormat is returned for payloads that cannot be decoded
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrEmpty is returned when there is no payload at all
var ErrEmpty = errors.New("empty image payload")

// signatures of base64-encoded magic bytes
var signatures = []struct {
	prefix string
	mime   string
}{
	{"iVBOR", MIMEPNG},
	{"/9j/", MIMEJPEG},
	{"R0lGOD", MIMEGIF},
	{"UklGR", MIMEWEBP},
}

// DetectMIME guesses the image type from the base64 text. Unknown payloads
// are reported as JPEG.
func DetectMIME(b64 string) string {
	s := strings.TrimSpace(b64)
	for _, sig := range signatures {
		if strings.HasPrefix(s, sig.prefix) {
			return sig.mime
		}
	}
	return MIMEJPEG
}

// DataURL turns a raw base64 payload into a data URL. Payloads that already
// are data URLs are returned unchanged.
func DataURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "data:image") {
		return s
	}
	return fmt.Sprintf("data:%s;base64,%s", DetectMIME(s), s)
}

// Split separates a payload into its MIME type and base64 body. It accepts
// both data URLs and raw base64.
func Split(raw string) (mime, body string) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "data:") {
		header, data, ok := strings.Cut(s, ",")
		if ok {
			header = strings.TrimPrefix(header, "data:")
			header = strings.TrimSuffix(header, ";base64")
			if header == "" {
				header = DetectMIME(data)
			}
			return header, data
		}
	}
	return DetectMIME(s), s
}

// Bytes decodes the payload
func Bytes(raw string) ([]byte, error) {
	_, body := Split(raw)
	if body == "" {
		return nil, ErrEmpty
	}
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		// some encoders drop the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "="))
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 image: %w", err)
		}
	}
	return data, nil
}

// Decode returns the image contained in the payload. WEBP is recognised but
// not decoded.
func Decode(raw string) (image.Image, string, error) {
	mime, _ := Split(raw)
	if mime == MIMEWEBP {
		return nil, mime, ErrUnsupportedFormat
	}
	data, err := Bytes(raw)
	if err != nil {
		return nil, mime, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mime, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return img, mime, nil
}
