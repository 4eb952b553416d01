// Package utils provides small helpers shared by Ember's binaries.
package utils

import (
	"errors"
	"sort"
	"strings"
)

// ParseKeyValues parses KEY=VALUE pairs separated by commas, semicolons,
// or newlines. Used for webhook header lists in config.
func ParseKeyValues(input string) (map[string]string, error) {
	result := make(map[string]string)
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return result, nil
	}

	for _, part := range splitKeyValueInput(trimmed) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, errors.New("invalid key=value pair: " + part)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, errors.New("invalid key=value pair: " + part)
		}
		result[key] = strings.TrimSpace(value)
	}

	return result, nil
}

// FormatKeyValues formats pairs as a comma-separated KEY=VALUE list,
// keys sorted.
func FormatKeyValues(pairs map[string]string) string {
	if len(pairs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+pairs[k])
	}
	return strings.Join(parts, ", ")
}

func splitKeyValueInput(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		switch r {
		case ',', ';', '\n':
			return true
		default:
			return false
		}
	})
}
