package questionnaire

import (
	"encoding/json"
	"testing"
)

func fiveTemplates() []Template {
	return []Template{
		{Description: "Gated community or controlled access?", ID: 1},
		{Description: "More than 2 flights of stairs?", ID: 2},
		{Description: "Certificate of Insurance required?", ID: 3},
		{Description: "Obstacles needing more than a 2-man team?", ID: 4},
		{Description: "Merchandise exchange on delivery?", ID: 5},
	}
}

func TestMatch_PositionalFill(t *testing.T) {
	// Three answers for five templates: the caller's keys never influence
	// the output, and the short tail fills with "na".
	answers := json.RawMessage(`{"Any gates?": "Y", "Stairs": "", "coi question": "no"}`)

	matched := Match(fiveTemplates(), answers)

	if len(matched) != 5 {
		t.Fatalf("Match() returned %d entries, want 5", len(matched))
	}

	wantResponses := []string{"y", "na", "no", "na", "na"}
	for i, want := range wantResponses {
		if matched[i].Response != want {
			t.Errorf("entry %d response = %q, want %q", i, matched[i].Response, want)
		}
	}

	for i, tmpl := range fiveTemplates() {
		if matched[i].Description != tmpl.Description {
			t.Errorf("entry %d description = %q, want template description %q", i, matched[i].Description, tmpl.Description)
		}
		if matched[i].ID != tmpl.ID {
			t.Errorf("entry %d id = %d, want %d", i, matched[i].ID, tmpl.ID)
		}
	}
}

func TestMatch_AnswerOrderPreserved(t *testing.T) {
	// Document order decides position even when keys would sort otherwise.
	answers := json.RawMessage(`{"z last key": "first", "a first key": "second"}`)

	matched := Match(fiveTemplates()[:2], answers)

	if matched[0].Response != "first" || matched[1].Response != "second" {
		t.Errorf("responses = [%q, %q], want document order [first, second]",
			matched[0].Response, matched[1].Response)
	}
}

func TestMatch_NoTemplates(t *testing.T) {
	answers := json.RawMessage(`{"q1": "yes", "q2": "no"}`)

	matched := Match(nil, answers)
	if matched == nil {
		t.Fatal("Match() returned nil, want empty slice")
	}
	if len(matched) != 0 {
		t.Errorf("Match() returned %d entries, want 0", len(matched))
	}

	matched = Match([]Template{}, answers)
	if len(matched) != 0 {
		t.Errorf("Match() with empty templates returned %d entries, want 0", len(matched))
	}
}

func TestMatch_MalformedAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers json.RawMessage
	}{
		{"malformed json", json.RawMessage(`{"q1": "yes"`)},
		{"not an object", json.RawMessage(`["yes", "no"]`)},
		{"empty input", nil},
		{"empty object", json.RawMessage(`{}`)},
		{"json null", json.RawMessage(`null`)},
	}

	templates := fiveTemplates()[:2]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := Match(templates, tt.answers)
			if len(matched) != 2 {
				t.Fatalf("Match() returned %d entries, want 2", len(matched))
			}
			for i, m := range matched {
				if m.Response != "na" {
					t.Errorf("entry %d response = %q, want na", i, m.Response)
				}
			}
		})
	}
}

func TestMatch_TruncatedAnswersKeepPrefix(t *testing.T) {
	// Values decoded before the syntax error still count positionally.
	answers := json.RawMessage(`{"q1": "Yes", "q2": bad`)

	matched := Match(fiveTemplates()[:3], answers)

	if matched[0].Response != "yes" {
		t.Errorf("entry 0 response = %q, want yes", matched[0].Response)
	}
	if matched[1].Response != "na" || matched[2].Response != "na" {
		t.Errorf("tail responses = [%q, %q], want [na, na]", matched[1].Response, matched[2].Response)
	}
}

func TestMatch_NonStringValues(t *testing.T) {
	answers := json.RawMessage(`{"a": true, "b": 2, "c": null}`)

	matched := Match(fiveTemplates()[:3], answers)

	if matched[0].Response != "true" {
		t.Errorf("bool value response = %q, want true", matched[0].Response)
	}
	if matched[1].Response != "2" {
		t.Errorf("number value response = %q, want 2", matched[1].Response)
	}
	if matched[2].Response != "na" {
		t.Errorf("null value response = %q, want na", matched[2].Response)
	}
}

func TestMatch_ResponsesLowercased(t *testing.T) {
	answers := json.RawMessage(`{"q": "YES"}`)

	matched := Match(fiveTemplates()[:1], answers)
	if matched[0].Response != "yes" {
		t.Errorf("response = %q, want yes", matched[0].Response)
	}
}

func TestParseTemplates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"valid list", `[{"questionDescription": "Gated?", "questionId": 1}, {"questionDescription": "Stairs?", "questionId": 2}]`, 2},
		{"empty list", `[]`, 0},
		{"blank input", "", 0},
		{"whitespace input", "   ", 0},
		{"malformed json", `[{"questionDescription": `, 0},
		{"wrong shape", `{"questions": []}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTemplates(tt.raw)
			if len(got) != tt.want {
				t.Errorf("ParseTemplates() returned %d templates, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseTemplates_FieldsDecoded(t *testing.T) {
	got := ParseTemplates(`[{"questionDescription": "Gated?", "questionId": 7}]`)
	if len(got) != 1 {
		t.Fatalf("ParseTemplates() returned %d templates, want 1", len(got))
	}
	if got[0].Description != "Gated?" || got[0].ID != 7 {
		t.Errorf("template = %+v, want {Gated? 7}", got[0])
	}
}
