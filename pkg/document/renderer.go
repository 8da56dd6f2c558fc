// Package document renders a finalized submission payload into an encrypted,
// paginated report. The layout is deterministic and single-pass; page breaks
// belong to the underlying engine. The engine itself is a seam so the layout
// can be exercised without producing real PDF bytes.
package document

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-credlink/pkg/catalog"
	"github.com/goliatone/go-credlink/pkg/model"
)

// NotProvided is rendered for every blank field value. Requested fields
// always appear in the document, even when left empty.
const NotProvided = "(not provided)"

// Canvas is the paginated rendering primitive the layout draws on. One
// canvas produces one encrypted document.
type Canvas interface {
	// Title draws the brand header line.
	Title(text string)
	// Label draws a muted label line under the title.
	Label(text string)
	// Strong draws an emphasized body line.
	Strong(text string)
	// Text draws a regular body line.
	Text(text string)
	// Section draws a section heading.
	Section(text string)
	// Row draws one "label: value" field line.
	Row(label, value string)
	// Link draws a clickable line pointing at url.
	Link(text, url string)
	// Space advances the cursor by a multiple of the body line height.
	Space(lines float64)
	// Output finalizes the document and returns its bytes.
	Output() ([]byte, error)
}

// Engine hands out canvases locked to a password. Both user and owner access
// open with it; permissions allow printing and accessibility extraction only.
type Engine interface {
	NewCanvas(password string) (Canvas, error)
}

// Option customises a Generator.
type Option func(*Generator)

// WithBrand overrides the brand name drawn in the document header.
func WithBrand(brand string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(brand) != "" {
			g.brand = brand
		}
	}
}

// WithReportLabel overrides the report label under the brand header.
func WithReportLabel(label string) Option {
	return func(g *Generator) {
		if strings.TrimSpace(label) != "" {
			g.reportLabel = label
		}
	}
}

// WithNow overrides the clock used for the generation-date line.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator lays out credential reports on canvases produced by an Engine.
type Generator struct {
	engine      Engine
	brand       string
	reportLabel string
	now         func() time.Time
}

// New constructs a Generator with the given engine.
func New(engine Engine, options ...Option) (*Generator, error) {
	if engine == nil {
		return nil, errors.New("document: engine is required")
	}
	g := &Generator{
		engine:      engine,
		brand:       "DigitalNova Studio",
		reportLabel: "Credential Report",
		now:         time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Render produces the encrypted report: header, business/contact/date block,
// one section per credential group in input order, and a trailing uploaded
// files section when uploads are present.
func (g *Generator) Render(
	businessName, clientName string,
	credentials []model.CredentialGroupValue,
	password string,
	uploads []model.UploadedFile,
) ([]byte, error) {
	if password == "" {
		return nil, errors.New("document: password is required")
	}

	canvas, err := g.engine.NewCanvas(password)
	if err != nil {
		return nil, fmt.Errorf("document: new canvas: %w", err)
	}

	canvas.Title(g.brand)
	canvas.Label(g.reportLabel)
	canvas.Space(0.5)

	canvas.Strong(fmt.Sprintf("Business: %s", businessName))
	canvas.Text(fmt.Sprintf("Contact: %s", clientName))
	canvas.Text(fmt.Sprintf("Generated: %s", g.now().Format("January 2, 2006")))
	canvas.Space(1.5)

	for _, group := range credentials {
		canvas.Section(group.Platform)
		if group.LoginURL != "" {
			canvas.Link(group.LoginURL, group.LoginURL)
		}
		canvas.Space(0.3)

		for _, field := range group.Fields {
			value := field.Value
			if value == "" {
				value = NotProvided
			}
			canvas.Row(catalog.FieldLabel(field.Type), value)
		}
		canvas.Space(1)
	}

	if len(uploads) > 0 {
		canvas.Section("Uploaded Files")
		canvas.Space(0.3)
		for _, file := range uploads {
			canvas.Link(file.Name, file.URL)
		}
		canvas.Space(1)
	}

	out, err := canvas.Output()
	if err != nil {
		return nil, fmt.Errorf("document: finalize: %w", err)
	}
	return out, nil
}

var nonKebab = regexp.MustCompile(`\s+`)

// Filename returns the attachment name for a client's report,
// "credentials-<kebab-cased-client>.pdf".
func Filename(clientName string) string {
	kebab := nonKebab.ReplaceAllString(strings.ToLower(strings.TrimSpace(clientName)), "-")
	return fmt.Sprintf("credentials-%s.pdf", kebab)
}
