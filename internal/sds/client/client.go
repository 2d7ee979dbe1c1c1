// Package client issues SDS lookups against a generative search service and
// parses a structured record out of its free-form response.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"hazcom/internal/platform/config"
	"hazcom/internal/sds/models"
	dErrors "hazcom/pkg/domain-errors"
)

// completer is the single operation the client needs from the generative
// service. Kept narrow so tests can stub responses without the network.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client resolves safety-document references. Fails hard on service or parse
// errors; retry policy belongs to callers (currently: none).
type Client struct {
	llm    completer
	logger *slog.Logger
}

// New constructs a Client from resolver configuration. The API key is checked
// lazily at call time so the service can boot without one configured.
func New(cfg config.Resolver, logger *slog.Logger) (*Client, error) {
	var llm completer
	if cfg.APIKey != "" {
		model, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("construct lookup client: %w", err)
		}
		llm = llmCompleter{model: model}
	}
	return &Client{llm: llm, logger: logger}, nil
}

// newWithCompleter wires a stub completer for tests.
func newWithCompleter(c completer, logger *slog.Logger) *Client {
	return &Client{llm: c, logger: logger}
}

// Resolve asks the generative service for an official SDS reference for the
// product. Returns the parsed record plus the service's free-form notes.
func (c *Client) Resolve(ctx context.Context, productName, manufacturer string) (*models.Record, string, error) {
	if c.llm == nil {
		return nil, "", dErrors.New(dErrors.CodeConfiguration, "SDS lookup service is not configured")
	}

	text, err := c.llm.Complete(ctx, buildPrompt(productName, manufacturer))
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeExternalService, "SDS lookup service request failed")
	}

	payload, err := extractPayload(text)
	if err != nil {
		c.logger.WarnContext(ctx, "unparseable SDS lookup response",
			"product_name", productName,
			"response_text", text,
		)
		return nil, "", dErrors.Wrap(err, dErrors.CodeUnparseable, "SDS lookup response was not parseable")
	}

	record := &models.Record{
		ProductName:           productName,
		Manufacturer:          manufacturer,
		SDSURL:                payload.SDSURL,
		SDSSource:             payload.SDSSource,
		ManufacturerPortalURL: payload.ManufacturerSDSPortal,
		Confidence:            clamp01(payload.Confidence),
		LookupDate:            time.Now(),
	}
	return record, payload.Notes, nil
}

type payload struct {
	SDSURL                string  `json:"sds_url"`
	SDSSource             string  `json:"sds_source"`
	ManufacturerSDSPortal string  `json:"manufacturer_sds_portal"`
	Confidence            float64 `json:"confidence"`
	Notes                 string  `json:"notes"`
}

func buildPrompt(productName, manufacturer string) string {
	return fmt.Sprintf(`Find the official Safety Data Sheet (SDS) for the chemical product %q made by %q.

Prefer the manufacturer's own SDS document. If you cannot find a direct document URL, provide the manufacturer's SDS portal or search page instead.

Respond with a single JSON object only, no markdown and no surrounding text, using exactly this schema:
{"sds_url": "direct URL to the SDS document or empty string", "sds_source": "name of the site hosting the document", "manufacturer_sds_portal": "URL of the manufacturer's SDS portal or empty string", "confidence": 0.0, "notes": "one sentence about how the reference was found"}

confidence is your certainty, between 0 and 1, that sds_url points at the correct current SDS for this exact product.`,
		productName, manufacturer)
}

// extractPayload cleans the response text before parsing. The service may
// wrap the JSON object in markdown fences or prose, so fence markers are
// dropped and the substring from the first '{' to the last '}' is parsed.
func extractPayload(text string) (*payload, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var p payload
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &p); err != nil {
		return nil, fmt.Errorf("decode response object: %w", err)
	}
	return &p, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// llmCompleter adapts a langchaingo model to the completer interface.
type llmCompleter struct {
	model llms.Model
}

func (l llmCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, l.model, prompt, llms.WithTemperature(0))
}
