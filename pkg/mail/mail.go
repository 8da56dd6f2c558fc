// Package mail dispatches the system's outbound email: the invite link, the
// submission receipt with the encrypted report attached, and the
// respondent's optional self-copy. Each send is independent and
// fire-and-forget; a failure never blocks or rolls back another
// already-initiated send. HTML bodies come from embedded pongo2 templates;
// actual delivery sits behind the Sender seam.
package mail

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-credlink/pkg/document"
	"github.com/goliatone/go-credlink/pkg/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Attachment is one file attached to an outbound message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully rendered outbound email handed to a Sender.
type Message struct {
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender is the transactional email collaborator.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithBrand overrides the brand name used in subjects and template bodies.
func WithBrand(brand string) Option {
	return func(d *Dispatcher) {
		if strings.TrimSpace(brand) != "" {
			d.brand = brand
		}
	}
}

// WithInviteReplyTo sets the reply-to address stamped on invite emails.
func WithInviteReplyTo(addr string) Option {
	return func(d *Dispatcher) {
		d.inviteReplyTo = strings.TrimSpace(addr)
	}
}

// WithTemplateFS overrides the embedded template set, e.g. for callers that
// ship their own email styling.
func WithTemplateFS(fsys fs.FS) Option {
	return func(d *Dispatcher) {
		if fsys != nil {
			d.templates = fsys
		}
	}
}

// Dispatcher renders and sends the three outbound email kinds.
type Dispatcher struct {
	sender        Sender
	brand         string
	inviteReplyTo string
	templates     fs.FS

	mu       sync.Mutex
	set      *pongo2.TemplateSet
	compiled map[string]*pongo2.Template
}

// NewDispatcher constructs a Dispatcher around a Sender.
func NewDispatcher(sender Sender, options ...Option) (*Dispatcher, error) {
	if sender == nil {
		return nil, errors.New("mail: sender is required")
	}
	d := &Dispatcher{
		sender:   sender,
		brand:    "DigitalNova Studio",
		compiled: make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	if d.templates == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("mail: embedded templates: %w", err)
		}
		d.templates = sub
	}
	d.set = pongo2.NewSet("mail", pongo2.NewFSLoader(d.templates))
	return d, nil
}

// SendInviteLink transmits the wizard URL to the client contact.
func (d *Dispatcher) SendInviteLink(ctx context.Context, toEmail, clientName, businessName, link string) error {
	html, err := d.render("invite.html", pongo2.Context{
		"brand":        d.brand,
		"clientName":   clientName,
		"businessName": businessName,
		"link":         link,
	})
	if err != nil {
		return err
	}
	return d.send(ctx, Message{
		To:      toEmail,
		ReplyTo: d.inviteReplyTo,
		Subject: fmt.Sprintf("%s — Credential Request for %s", d.brand, businessName),
		HTML:    html,
	})
}

// SendSubmissionReceipt transmits the generated report to the operator's
// return address, with uploaded-file links inlined in the body.
func (d *Dispatcher) SendSubmissionReceipt(ctx context.Context, toEmail, businessName, clientName string, pdfBytes []byte, uploads []model.UploadedFile) error {
	html, err := d.render("receipt.html", pongo2.Context{
		"brand":        d.brand,
		"clientName":   clientName,
		"businessName": businessName,
		"uploads":      uploads,
	})
	if err != nil {
		return err
	}
	return d.send(ctx, Message{
		To:      toEmail,
		Subject: fmt.Sprintf("Credentials Received — %s", clientName),
		HTML:    html,
		Attachments: []Attachment{{
			Filename: document.Filename(clientName),
			Content:  pdfBytes,
		}},
	})
}

// SendSelfCopy transmits the respondent's own encrypted copy of the report.
func (d *Dispatcher) SendSelfCopy(ctx context.Context, toEmail, businessName, clientName string, pdfBytes []byte) error {
	html, err := d.render("selfcopy.html", pongo2.Context{
		"brand":        d.brand,
		"clientName":   clientName,
		"businessName": businessName,
	})
	if err != nil {
		return err
	}
	return d.send(ctx, Message{
		To:      toEmail,
		Subject: fmt.Sprintf("Your Credential Copy — %s", businessName),
		HTML:    html,
		Attachments: []Attachment{{
			Filename: document.Filename(clientName),
			Content:  pdfBytes,
		}},
	})
}

func (d *Dispatcher) send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("mail: recipient is required")
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("mail: send %q: %w", msg.Subject, err)
	}
	return nil
}

func (d *Dispatcher) render(name string, data pongo2.Context) (string, error) {
	tmpl, err := d.template(name)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("mail: execute template %q: %w", name, err)
	}
	return out, nil
}

func (d *Dispatcher) template(name string) (*pongo2.Template, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if tmpl, ok := d.compiled[name]; ok {
		return tmpl, nil
	}
	tmpl, err := d.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("mail: load template %q: %w", name, err)
	}
	d.compiled[name] = tmpl
	return tmpl, nil
}
