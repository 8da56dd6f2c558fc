package server

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiYAML []byte

// requestValidator checks boundary requests against the embedded OpenAPI
// document before any handler logic runs.
type requestValidator struct {
	router routers.Router
}

func newRequestValidator(ctx context.Context) (*requestValidator, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("server: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("server: validate openapi document: %w", err)
	}
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("server: build openapi router: %w", err)
	}
	return &requestValidator{router: router}, nil
}

// validate matches the request against the document and checks its body.
// The body is restored afterwards so handlers can decode it again.
func (v *requestValidator) validate(r *http.Request, body []byte) error {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("find route: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return nil
}

// validEmail reports whether raw is a syntactically plausible address. The
// OpenAPI schema only guards structure; address syntax is checked here.
func validEmail(raw string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	return err == nil && addr.Address == strings.TrimSpace(raw)
}

// validHTTPURL reports whether raw parses as an absolute http(s) URL.
func validHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
