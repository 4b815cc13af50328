package code

import (
	"encoding/base64"
	"fmt"
)

// EncodeForTransport base64-encodes text so arbitrary bytes survive JSON.
func EncodeForTransport(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeFromTransport reverses EncodeForTransport. A nil input is returned
// unchanged. Judge0 wraps its base64 output at 60 columns; the line breaks
// are ignored by the decoder.
func DecodeFromTransport(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}
	dec, err := base64.StdEncoding.DecodeString(*text)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	s := string(dec)
	return &s, nil
}
