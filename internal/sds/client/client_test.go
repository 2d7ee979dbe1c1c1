package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"hazcom/internal/platform/config"
	dErrors "hazcom/pkg/domain-errors"
)

// stubCompleter returns a canned response or error.
type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type ClientSuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *ClientSuite) clientFor(stub *stubCompleter) *Client {
	return newWithCompleter(stub, s.logger)
}

func (s *ClientSuite) TestResolve() {
	s.Run("bare JSON response parses into a record", func() {
		stub := &stubCompleter{response: `{"sds_url": "https://sds.example/acetone.pdf", "sds_source": "manufacturer website", "manufacturer_sds_portal": "https://example.com/sds", "confidence": 0.92, "notes": "Found on the manufacturer site."}`}

		record, notes, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().NoError(err)
		s.Equal("Acetone", record.ProductName)
		s.Equal("Sunnyside", record.Manufacturer)
		s.Equal("https://sds.example/acetone.pdf", record.SDSURL)
		s.Equal("manufacturer website", record.SDSSource)
		s.Equal("https://example.com/sds", record.ManufacturerPortalURL)
		s.Equal(0.92, record.Confidence)
		s.False(record.LookupDate.IsZero())
		s.Equal("Found on the manufacturer site.", notes)
	})

	s.Run("markdown-fenced response parses", func() {
		stub := &stubCompleter{response: "```json\n{\"sds_url\": \"https://sds.example/a.pdf\", \"confidence\": 0.8}\n```"}

		record, _, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().NoError(err)
		s.Equal("https://sds.example/a.pdf", record.SDSURL)
		s.Equal(0.8, record.Confidence)
	})

	s.Run("prose around the object is tolerated", func() {
		stub := &stubCompleter{response: "Here is what I found:\n{\"sds_url\": \"https://sds.example/b.pdf\", \"confidence\": 0.7}\nLet me know if you need more."}

		record, _, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().NoError(err)
		s.Equal("https://sds.example/b.pdf", record.SDSURL)
	})

	s.Run("confidence is clamped into the unit interval", func() {
		stub := &stubCompleter{response: `{"sds_url": "https://sds.example/c.pdf", "confidence": 1.7}`}

		record, _, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().NoError(err)
		s.Equal(1.0, record.Confidence)

		stub.response = `{"sds_url": "https://sds.example/c.pdf", "confidence": -0.4}`
		record, _, err = s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().NoError(err)
		s.Equal(0.0, record.Confidence)
	})

	s.Run("prompt carries product and manufacturer", func() {
		stub := &stubCompleter{response: `{"confidence": 0.1}`}

		_, _, err := s.clientFor(stub).Resolve(s.ctx, "Brake Cleaner", "CRC")
		s.Require().NoError(err)
		s.Require().Len(stub.prompts, 1)
		s.Contains(stub.prompts[0], `"Brake Cleaner"`)
		s.Contains(stub.prompts[0], `"CRC"`)
	})

	s.Run("service failure maps to an external service error", func() {
		stub := &stubCompleter{err: errors.New("connection refused")}

		_, _, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeExternalService))
	})

	s.Run("response without a JSON object maps to unparseable", func() {
		stub := &stubCompleter{response: "I could not find an SDS for that product."}

		_, _, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeUnparseable))
	})

	s.Run("malformed JSON maps to unparseable", func() {
		stub := &stubCompleter{response: `{"sds_url": "https://sds.example/d.pdf", "confidence": }`}

		_, _, err := s.clientFor(stub).Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeUnparseable))
	})

	s.Run("missing API key maps to a configuration error", func() {
		client, err := New(config.Resolver{}, s.logger)
		s.Require().NoError(err)

		_, _, err = client.Resolve(s.ctx, "Acetone", "Sunnyside")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeConfiguration))
	})
}

func (s *ClientSuite) TestExtractPayload() {
	s.Run("truncated object fails", func() {
		_, err := extractPayload(`{"sds_url": "https://sds.example`)
		s.Error(err)
	})

	s.Run("empty string fails", func() {
		_, err := extractPayload("")
		s.Error(err)
	})
}
