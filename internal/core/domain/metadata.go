package domain

import (
	"bytes"
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Record is the persisted form of a chunk.
type Record struct {
	PageContent string         `json:"page_content"`
	Metadata    map[string]any `json:"metadata"`
}

// ContentHash returns the stable identifier of a chunk's text.
// Identical text always yields the identical hash.
func ContentHash(content string) string {
	sum := md5.Sum([]byte(content)) //nolint:gosec // content addressing
	return hex.EncodeToString(sum[:])
}

// CopyMetadata creates a shallow copy of metadata.
func CopyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// QualityScore returns the chunk's quality score, or 0 when absent.
func QualityScore(metadata map[string]any) float64 {
	f, _ := ToFloat(metadata[MetaQualityScore])
	return f
}

// MeetsQuality reports whether a chunk's score is at or above min.
func MeetsQuality(metadata map[string]any, minQuality float64) bool {
	return QualityScore(metadata) >= minQuality
}

// ToFloat converts numeric metadata values to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// CoerceMetadata converts metadata values to primitive form for persistence.
// nil, strings, booleans and numbers pass through; lists become
// comma-joined strings; maps and other composites become JSON text.
func CoerceMetadata(metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		out[k] = coerceValue(v)
	}
	return out
}

func coerceValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, json.Number:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringOf(item)
		}
		return strings.Join(parts, ", ")
	default:
		return encodeJSON(val)
	}
}

// stringOf renders a list item: strings as they are, anything else as JSON.
func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return encodeJSON(v)
}

// encodeJSON returns compact JSON for v without HTML escaping, falling back
// to its Go form for values JSON cannot represent.
func encodeJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
