package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/erin-happyrobot/ryder-RLM/internal/models"
	"github.com/erin-happyrobot/ryder-RLM/internal/normalize"
	"github.com/erin-happyrobot/ryder-RLM/internal/questionnaire"
	"github.com/erin-happyrobot/ryder-RLM/internal/upstream"
)

// ErrMissingCredential means the upstream subscription key is not
// configured. Surfaced before any upstream call is attempted.
var ErrMissingCredential = errors.New("API_HEADER_KEY is not configured")

// Forwarder posts a JSON body to the scheduling endpoint.
type Forwarder interface {
	Post(ctx context.Context, body any) (*upstream.Result, error)
}

// ScheduleService normalizes an inbound request and relays it upstream.
type ScheduleService struct {
	forwarder       Forwarder
	source          questionnaire.TemplateSource
	normalizer      *normalize.Normalizer
	subscriptionKey string
	log             *slog.Logger
}

// NewScheduleService creates a schedule relay service.
func NewScheduleService(forwarder Forwarder, source questionnaire.TemplateSource, normalizer *normalize.Normalizer, subscriptionKey string, log *slog.Logger) *ScheduleService {
	return &ScheduleService{
		forwarder:       forwarder,
		source:          source,
		normalizer:      normalizer,
		subscriptionKey: subscriptionKey,
		log:             log,
	}
}

// BuildPayload derives the upstream payload from the raw request: every
// scalar field goes through the normalizer and the questions array comes
// from positional matching against the configured template source. Always
// succeeds; a failed template source counts as having no templates.
func (s *ScheduleService) BuildPayload(ctx context.Context, req models.ScheduleRequest) models.UpstreamPayload {
	templates, err := s.source.Templates(ctx, req.QuestionsJSON)
	if err != nil {
		s.log.Warn("template source failed, matching against empty list", "error", err)
		templates = nil
	}

	n := s.normalizer
	return models.UpstreamPayload{
		ClientCode:        n.Blank(req.ClientCode, ""),
		ClientOrderNumber: n.Blank(req.ClientOrderNumber, ""),
		ScheduledDate:     n.ScheduleDate(req.ScheduledDate),
		ConsigneeName:     n.Blank(req.ConsigneeName, ""),
		PhoneNumber:       n.Blank(req.PhoneNumber, ""),
		AIConsent:         n.Consent(req.AIConsent),
		ConsentDateTime:   n.DateTime(req.ConsentDateTime),
		Questions:         questionnaire.Match(templates, req.Questions),
		GroupID:           n.Blank(req.GroupID, ""),
	}
}

// Schedule normalizes req and forwards it to the scheduling endpoint.
// Returns ErrMissingCredential before contacting upstream when the
// subscription key is absent; transport failures propagate as errors. Any
// upstream HTTP status, 200 or not, is a normal ScheduleResponse.
func (s *ScheduleService) Schedule(ctx context.Context, req models.ScheduleRequest) (*models.ScheduleResponse, error) {
	if s.subscriptionKey == "" {
		return nil, ErrMissingCredential
	}

	payload := s.BuildPayload(ctx, req)
	return s.forward(ctx, payload)
}

// ScheduleCustom forwards a caller-built payload verbatim, with the same
// envelope and failure semantics as Schedule.
func (s *ScheduleService) ScheduleCustom(ctx context.Context, payload map[string]any) (*models.ScheduleResponse, error) {
	if s.subscriptionKey == "" {
		return nil, ErrMissingCredential
	}

	return s.forward(ctx, payload)
}

func (s *ScheduleService) forward(ctx context.Context, body any) (*models.ScheduleResponse, error) {
	result, err := s.forwarder.Post(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("error making request to RLM API: %w", err)
	}

	resp := &models.ScheduleResponse{
		Success:      result.StatusCode == http.StatusOK,
		StatusCode:   result.StatusCode,
		ResponseData: decodeUpstreamBody(result.Body),
	}
	if !resp.Success {
		msg := fmt.Sprintf("HTTP %d: %s", result.StatusCode, result.Body)
		resp.ErrorMessage = &msg
	}

	return resp, nil
}

// decodeUpstreamBody parses the upstream body as a JSON object; anything
// else is preserved verbatim under "raw_response".
func decodeUpstreamBody(body []byte) map[string]any {
	if len(body) == 0 {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return map[string]any{"raw_response": string(body)}
	}
	return data
}
