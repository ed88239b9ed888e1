package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeToken creates an opaque cursor from any number of string fields.
func EncodeToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeToken parses a cursor back into exactly want fields.
func DecodeToken(token string, want int) ([]string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decoded), "|")
	if len(parts) != want {
		return nil, fmt.Errorf("invalid pagination token format (expected %d fields, got %d)", want, len(parts))
	}
	return parts, nil
}

// Page returns up to limit items following the item whose key was encoded in
// token, plus the token for the next page ("" on the last page). An empty
// token starts at the beginning; a limit of zero or less returns the rest.
func Page[T any](items []T, key func(T) string, token string, limit int) ([]T, string, error) {
	start := 0
	if token != "" {
		fields, err := DecodeToken(token, 1)
		if err != nil {
			return nil, "", err
		}
		start = -1
		for i, item := range items {
			if key(item) == fields[0] {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", fmt.Errorf("pagination token refers to an item that no longer exists")
		}
	}

	rest := items[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, "", nil
	}
	page := rest[:limit]
	return page, EncodeToken(key(page[len(page)-1])), nil
}
