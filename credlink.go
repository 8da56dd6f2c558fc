// Package credlink ties the pipeline together: build a shareable wizard link
// from a form configuration, parse one back, and process a finished
// submission into an encrypted report plus its outbound emails. The heavier
// machinery lives in the pkg packages; this facade exists so callers can
// drive the whole flow with a handful of calls.
package credlink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-credlink/pkg/codec"
	"github.com/goliatone/go-credlink/pkg/document"
	"github.com/goliatone/go-credlink/pkg/mail"
	"github.com/goliatone/go-credlink/pkg/model"
)

// LinkParam is the query parameter carrying the codec token on wizard links.
const LinkParam = "data"

// BuildLink encodes a config and attaches it to the wizard path under
// baseURL.
func BuildLink(baseURL string, config model.FormConfig) (string, error) {
	token, err := codec.Encode(config)
	if err != nil {
		return "", err
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("credlink: parse base url: %w", err)
	}
	base.Path += "/form"
	query := base.Query()
	query.Set(LinkParam, token)
	base.RawQuery = query.Encode()
	return base.String(), nil
}

// ParseLink extracts and decodes the config token from a wizard link. A
// missing token is a malformed link.
func ParseLink(link string) (model.FormConfig, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return model.FormConfig{}, fmt.Errorf("%w: invalid url: %v", codec.ErrMalformedLink, err)
	}
	token := parsed.Query().Get(LinkParam)
	if token == "" {
		return model.FormConfig{}, fmt.Errorf("%w: missing %q parameter", codec.ErrMalformedLink, LinkParam)
	}
	return codec.Decode(token)
}

// Service coordinates submission processing: document generation followed by
// dispatch of the receipt and the optional self-copy.
type Service struct {
	generator  *document.Generator
	dispatcher *mail.Dispatcher
	password   string
}

// NewService constructs a Service. The password encrypts the operator-facing
// report; it is required so the service can never produce an unencrypted
// document.
func NewService(generator *document.Generator, dispatcher *mail.Dispatcher, pdfPassword string) (*Service, error) {
	if generator == nil {
		return nil, errors.New("credlink: generator is required")
	}
	if dispatcher == nil {
		return nil, errors.New("credlink: dispatcher is required")
	}
	if strings.TrimSpace(pdfPassword) == "" {
		return nil, errors.New("credlink: pdf password is required")
	}
	return &Service{generator: generator, dispatcher: dispatcher, password: pdfPassword}, nil
}

// ProcessSubmission renders the payload into an encrypted report and emails
// it to the return address; when the respondent opted in, a second copy
// encrypted with their own password goes to them. The two sends are
// independent: a failed self-copy never rolls back an already-sent receipt,
// so errors from both are joined.
func (s *Service) ProcessSubmission(ctx context.Context, payload model.SubmissionPayload) error {
	pdfBytes, err := s.generator.Render(
		payload.BusinessName, payload.ClientName, payload.Credentials, s.password, payload.Uploads)
	if err != nil {
		return fmt.Errorf("credlink: render report: %w", err)
	}

	var errs []error
	if err := s.dispatcher.SendSubmissionReceipt(
		ctx, payload.ReturnEmail, payload.BusinessName, payload.ClientName, pdfBytes, payload.Uploads); err != nil {
		errs = append(errs, fmt.Errorf("credlink: dispatch receipt: %w", err))
	}

	if cc := payload.ClientCopy; cc != nil {
		copyBytes, err := s.generator.Render(
			payload.BusinessName, payload.ClientName, payload.Credentials, cc.Password, payload.Uploads)
		if err != nil {
			errs = append(errs, fmt.Errorf("credlink: render self-copy: %w", err))
		} else if err := s.dispatcher.SendSelfCopy(
			ctx, cc.Email, payload.BusinessName, payload.ClientName, copyBytes); err != nil {
			errs = append(errs, fmt.Errorf("credlink: dispatch self-copy: %w", err))
		}
	}
	return errors.Join(errs...)
}

// SendInvite dispatches the invite email carrying a wizard link.
func (s *Service) SendInvite(ctx context.Context, toEmail, clientName, businessName, link string) error {
	if err := s.dispatcher.SendInviteLink(ctx, toEmail, clientName, businessName, link); err != nil {
		return fmt.Errorf("credlink: dispatch invite: %w", err)
	}
	return nil
}
