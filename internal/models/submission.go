package models

import "strings"

// Submission is the raw vendor application as received from the web form:
// field name to one or more string values. Multi-select inputs (services,
// service lines, secondary markets) arrive as repeated values under one key.
type Submission map[string][]string

// Get returns the first value for field, trimmed. Empty string when absent.
func (s Submission) Get(field string) string {
	values := s[field]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// All returns every non-empty value for field, trimmed, in form order.
func (s Submission) All(field string) []string {
	values := s[field]
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ValidationError describes one violated rule on one form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
