package questionnaire

import (
	"context"
	"log/slog"
)

// TemplateSource supplies the authoritative question list for a request.
// The list travels inline with the request in the current API revision, but
// earlier revisions fetched it from the upstream availability lookup, so the
// source stays pluggable.
type TemplateSource interface {
	Templates(ctx context.Context, inlineJSON string) ([]Template, error)
}

// Fetcher performs an outbound JSON GET. Implemented by the upstream client.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, out any) error
}

// InlineSource reads the template list from the serialized JSON text the
// caller supplies with the request. Malformed or absent text means no
// templates.
type InlineSource struct{}

func (InlineSource) Templates(_ context.Context, inlineJSON string) ([]Template, error) {
	return ParseTemplates(inlineJSON), nil
}

// StaticSource serves the built-in RLM delivery questionnaire.
type StaticSource struct{}

func (StaticSource) Templates(context.Context, string) ([]Template, error) {
	return defaultTemplates(), nil
}

func defaultTemplates() []Template {
	return []Template{
		{
			ID:          1,
			Description: "Is this delivery being made within a gated community, a military installation, or any location with controlled or limited access?",
		},
		{
			ID:          2,
			Description: "If your order is set for Deluxe, White Glove, or Room of Choice service level, will the delivery team be going up or down MORE THAN 2 flights of stairs?  If you have any other service level please respond No as stairs will not apply.",
		},
		{
			ID:          3,
			Description: "Do you reside in a building or complex that requires a Certificate of Insurance for deliveries?",
		},
		{
			ID:          4,
			Description: "Are there any obstacles or tight turns that would require more than a 2-man team to complete your delivery?.",
		},
		{
			ID:          5,
			Description: "Does your order require an exchange of merchandise where we would be both delivering and picking up product from your home?",
		},
	}
}

// LookupSource fetches the template list from the upstream availability
// endpoint. A failed lookup degrades to an empty list so the relay itself
// never fails on it.
type LookupSource struct {
	fetcher Fetcher
	url     string
	log     *slog.Logger
}

// NewLookupSource creates a lookup-backed template source.
func NewLookupSource(fetcher Fetcher, url string, log *slog.Logger) *LookupSource {
	return &LookupSource{
		fetcher: fetcher,
		url:     url,
		log:     log,
	}
}

// lookupResponse is the relevant slice of the availability lookup body.
type lookupResponse struct {
	Questions []Template `json:"questions"`
}

func (s *LookupSource) Templates(ctx context.Context, _ string) ([]Template, error) {
	var resp lookupResponse
	if err := s.fetcher.FetchJSON(ctx, s.url, &resp); err != nil {
		s.log.Warn("question template lookup failed, continuing without templates", "error", err)
		return nil, nil
	}
	return resp.Questions, nil
}
