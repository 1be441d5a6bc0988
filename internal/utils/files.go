package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Uploaded files are embedded in incident records as self-contained data URLs
// (data:<mime>;base64,<payload>), so no blob storage exists outside the
// incident collection.

const base64Marker = ";base64,"

// EncodeDataURL builds a data URL from raw file bytes.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + base64Marker + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URL back into its MIME type and raw bytes.
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	mimeType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return "", nil, fmt.Errorf("missing base64 payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return mimeType, data, nil
}
