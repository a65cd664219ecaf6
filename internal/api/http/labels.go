package http

import (
	"encoding/json"
	"strings"
)

// parseLabels flattens the three shapes clients send the labels field in:
// repeated form fields, one comma-separated string, or one JSON-encoded
// array string. The core only ever sees a plain list.
func parseLabels(values []string) []string {
	switch len(values) {
	case 0:
		return nil
	case 1:
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			return nil
		}
		if strings.HasPrefix(raw, "[") {
			var decoded []string
			if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
				return decoded
			}
			// fall through: treat a malformed JSON array as a plain value
		}
		if strings.Contains(raw, ",") {
			parts := strings.Split(raw, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
		return []string{raw}
	default:
		return values
	}
}
