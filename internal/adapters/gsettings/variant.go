// SPDX-FileCopyrightText: 2025 The Ordna Authors
// SPDX-License-Identifier: EUPL-1.2

// Package gsettings implements the settings-store port on top of the
// gsettings command-line tool.
package gsettings

import (
	"errors"
	"strings"
)

// ErrMalformedValue is returned when gsettings output cannot be parsed.
var ErrMalformedValue = errors.New("malformed gsettings value")

// stripTypeAnnotation removes a leading GVariant type hint such as
// "@as " from serialized output.
func stripTypeAnnotation(raw string) string {
	if strings.HasPrefix(raw, "@") {
		if _, rest, found := strings.Cut(raw, " "); found {
			return rest
		}
	}

	return raw
}

// ParseString parses a serialized GVariant string value: 'foo' or "foo".
func ParseString(raw string) (string, error) {
	raw = stripTypeAnnotation(strings.TrimSpace(raw))

	if len(raw) >= 2 {
		if (raw[0] == '\'' && raw[len(raw)-1] == '\'') ||
			(raw[0] == '"' && raw[len(raw)-1] == '"') {
			inner := raw[1 : len(raw)-1]
			inner = strings.ReplaceAll(inner, `\'`, `'`)
			inner = strings.ReplaceAll(inner, `\"`, `"`)
			inner = strings.ReplaceAll(inner, `\\`, `\`)

			return inner, nil
		}
	}

	return "", ErrMalformedValue
}

// ParseBool parses a serialized GVariant boolean.
func ParseBool(raw string) (bool, error) {
	switch strings.TrimSpace(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ErrMalformedValue
	}
}

// ParseStrv parses a serialized GVariant string array: ['a', 'b'] or
// @as [].
func ParseStrv(raw string) ([]string, error) {
	raw = stripTypeAnnotation(strings.TrimSpace(raw))

	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, ErrMalformedValue
	}

	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return []string{}, nil
	}

	values := make([]string, 0)
	var current strings.Builder

	inString := false
	quote := byte(0)
	escaped := false

	for i := 0; i < len(inner); i++ {
		c := inner[i]

		switch {
		case escaped:
			current.WriteByte(c)

			escaped = false
		case inString && c == '\\':
			escaped = true
		case inString && c == quote:
			values = append(values, current.String())
			current.Reset()

			inString = false
		case inString:
			current.WriteByte(c)
		case c == '\'' || c == '"':
			inString = true
			quote = c
		default:
			// Separators and whitespace between elements.
		}
	}

	if inString {
		return nil, ErrMalformedValue
	}

	return values, nil
}

// FormatStrv serializes a string slice as a GVariant string array.
func FormatStrv(values []string) string {
	if len(values) == 0 {
		return "[]"
	}

	quoted := make([]string, 0, len(values))
	for _, value := range values {
		escaped := strings.ReplaceAll(value, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `'`, `\'`)
		quoted = append(quoted, "'"+escaped+"'")
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
