package questionnaire

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Template is one entry of the authoritative question list. Descriptions and
// ids are externally assigned and never rewritten here.
type Template struct {
	Description string `json:"questionDescription"`
	ID          int    `json:"questionId"`
}

// Answered is the upstream wire format for a single answered question.
type Answered struct {
	Description string `json:"questionDescription"`
	ID          int    `json:"questionId"`
	Response    string `json:"questionResponse"`
}

// missing marks an absent caller answer so it lowers to "na".
const missing = "na"

// Match reconciles the caller's free-text answers with the authoritative
// template list. Matching is positional: the i-th answer value in the
// caller's JSON object (document order, keys ignored) answers the i-th
// template. Templates are the single source of truth for cardinality,
// wording, and ids; missing or blank answers become "na". Malformed answer
// JSON is treated as an empty object. Never fails.
func Match(templates []Template, answers json.RawMessage) []Answered {
	matched := make([]Answered, 0, len(templates))
	if len(templates) == 0 {
		return matched
	}

	values := answerValues(answers)

	for i, tmpl := range templates {
		response := missing
		if i < len(values) && strings.TrimSpace(values[i]) != "" {
			response = strings.ToLower(values[i])
		}
		matched = append(matched, Answered{
			Description: tmpl.Description,
			ID:          tmpl.ID,
			Response:    response,
		})
	}

	return matched
}

// ParseTemplates decodes a serialized template list. Malformed or empty
// input yields no templates rather than an error.
func ParseTemplates(raw string) []Template {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var templates []Template
	if err := json.Unmarshal([]byte(raw), &templates); err != nil {
		return nil
	}
	return templates
}

// answerValues extracts the values of a JSON object in document order.
// encoding/json maps lose insertion order, and the caller's insertion order
// is the only ordering signal available, so the object is walked token by
// token. Any malformed input yields the values decoded so far.
func answerValues(answers json.RawMessage) []string {
	if len(answers) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(answers))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var values []string
	for dec.More() {
		// Key token; its text is ignored on purpose.
		if _, err := dec.Token(); err != nil {
			return values
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return values
		}
		values = append(values, scalarText(raw))
	}

	return values
}

// scalarText renders a JSON value as the response text. Strings decode
// normally; null becomes empty (absent); other scalars keep their JSON
// rendering; arrays and objects count positionally but carry no usable text.
func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return ""
	}
	return string(trimmed)
}
