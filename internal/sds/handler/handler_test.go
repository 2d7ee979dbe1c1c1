package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"hazcom/internal/sds/handler/mocks"
	"hazcom/internal/sds/models"
	dErrors "hazcom/pkg/domain-errors"
	"hazcom/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) TestHandleResolve() {
	s.Run("valid request returns the resolved reference", func() {
		s.service.EXPECT().
			Resolve(gomock.Any(), "Acetone", "Sunnyside").
			Return(&models.Resolution{
				Record: models.Record{
					SDSURL:                "https://sds.example/acetone.pdf",
					SDSSource:             "manufacturer website",
					ManufacturerPortalURL: "https://example.com/sds",
					Confidence:            0.92,
				},
				Notes: "Found on the manufacturer site.",
			}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/sds/resolve", models.ResolveRequest{
			ProductName:  "Acetone",
			Manufacturer: "Sunnyside",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[models.ResolveResponse](s.T(), rr)
		s.Equal("https://sds.example/acetone.pdf", resp.SDSURL)
		s.Equal("manufacturer website", resp.SDSSource)
		s.Equal("https://example.com/sds", resp.ManufacturerSDSPortal)
		s.Equal(0.92, resp.Confidence)
		s.Equal("Found on the manufacturer site.", resp.Notes)
	})

	s.Run("malformed body returns 400", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/sds/resolve", "{not json")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorMessage(s.T(), rr, "invalid request body")
	})

	s.Run("missing product_name returns 400", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/sds/resolve", models.ResolveRequest{
			Manufacturer: "Sunnyside",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorMessage(s.T(), rr, "product_name is required")
	})

	s.Run("missing manufacturer returns 400", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/sds/resolve", models.ResolveRequest{
			ProductName: "Acetone",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertErrorMessage(s.T(), rr, "manufacturer is required")
	})

	s.Run("external service failure maps to 502", func() {
		s.service.EXPECT().
			Resolve(gomock.Any(), "Acetone", "Sunnyside").
			Return(nil, dErrors.New(dErrors.CodeExternalService, "SDS lookup service request failed"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/sds/resolve", models.ResolveRequest{
			ProductName:  "Acetone",
			Manufacturer: "Sunnyside",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadGateway)
		testutil.AssertErrorMessage(s.T(), rr, "SDS lookup service request failed")
	})

	s.Run("missing lookup configuration maps to 500", func() {
		s.service.EXPECT().
			Resolve(gomock.Any(), "Acetone", "Sunnyside").
			Return(nil, dErrors.New(dErrors.CodeConfiguration, "SDS lookup service is not configured"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/sds/resolve", models.ResolveRequest{
			ProductName:  "Acetone",
			Manufacturer: "Sunnyside",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	})
}

func (s *HandlerSuite) TestGuard() {
	s.Run("guard middleware wraps the resolve route", func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		blocked := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			})
		}

		router := chi.NewRouter()
		New(s.service, logger, WithGuard(blocked)).Register(router)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/sds/resolve", models.ResolveRequest{
			ProductName:  "Acetone",
			Manufacturer: "Sunnyside",
		})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusTooManyRequests)
	})
}
