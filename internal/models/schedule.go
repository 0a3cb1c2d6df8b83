package models

import (
	"encoding/json"

	"github.com/erin-happyrobot/ryder-RLM/internal/questionnaire"
)

// ScheduleRequest represents an incoming appointment confirmation request.
// Questions stays raw because the caller's key insertion order is the only
// ordering signal for positional matching and must survive decoding.
type ScheduleRequest struct {
	ClientCode        string          `json:"clientCode"`
	ClientOrderNumber string          `json:"clientOrderNumber"`
	ScheduledDate     string          `json:"scheduledDate"`
	ConsigneeName     string          `json:"consigneeName"`
	PhoneNumber       string          `json:"phoneNumber"`
	AIConsent         string          `json:"aiConsent"`
	ConsentDateTime   string          `json:"consentDateTime"`
	Questions         json.RawMessage `json:"questions,omitempty"`
	GroupID           string          `json:"groupId,omitempty"`
	QuestionsJSON     string          `json:"questionsJson,omitempty"`
}

// UpstreamPayload is the normalized record forwarded to the RLM API.
// Schema matches the AIScheduleConfirmation contract.
type UpstreamPayload struct {
	ClientCode        string                   `json:"clientCode"`
	ClientOrderNumber string                   `json:"clientOrderNumber"`
	ScheduledDate     string                   `json:"scheduledDate"`
	ConsigneeName     string                   `json:"consigneeName"`
	PhoneNumber       string                   `json:"phoneNumber"`
	AIConsent         string                   `json:"aiConsent"`
	ConsentDateTime   string                   `json:"consentDateTime"`
	Questions         []questionnaire.Answered `json:"questions"`
	GroupID           string                   `json:"groupId,omitempty"`
}

// ScheduleResponse is the relay envelope returned to the caller. The
// upstream status and body are preserved verbatim; success means the
// upstream answered 200.
type ScheduleResponse struct {
	Success      bool           `json:"success"`
	StatusCode   int            `json:"status_code"`
	ResponseData map[string]any `json:"response_data"`
	ErrorMessage *string        `json:"error_message"`
}
