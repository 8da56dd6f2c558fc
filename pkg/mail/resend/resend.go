// Package resend implements the mail.Sender seam with the Resend
// transactional email API.
package resend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	resendpkg "github.com/resend/resend-go/v2"

	"github.com/goliatone/go-credlink/pkg/mail"
)

// Sender delivers messages through Resend.
type Sender struct {
	client *resendpkg.Client
	from   string
}

// Ensure the adapter satisfies the dispatcher seam.
var _ mail.Sender = (*Sender)(nil)

// New constructs a Sender. Both the API key and the from address are
// required.
func New(apiKey, from string) (*Sender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("resend: api key is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, errors.New("resend: from address is required")
	}
	return &Sender{
		client: resendpkg.NewClient(apiKey),
		from:   from,
	}, nil
}

// Send delivers one message.
func (s *Sender) Send(ctx context.Context, msg mail.Message) error {
	params := &resendpkg.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	for _, att := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resendpkg.Attachment{
			Filename: att.Filename,
			Content:  att.Content,
		})
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend: send: %w", err)
	}
	return nil
}
