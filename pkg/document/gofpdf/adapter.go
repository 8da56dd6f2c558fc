// Package gofpdf adapts github.com/phpdave11/gofpdf to the document.Canvas
// contract: A4 portrait, Helvetica, automatic page breaks, and RC4
// protection with printing as the only granted action.
package gofpdf

import (
	"bytes"

	gofpdfpkg "github.com/phpdave11/gofpdf"

	"github.com/goliatone/go-credlink/pkg/document"
)

const lineHeight = 5.5

// Engine produces gofpdf-backed canvases.
type Engine struct{}

// Ensure the adapter satisfies the engine seam.
var _ document.Engine = (*Engine)(nil)

// New constructs an Engine.
func New() *Engine {
	return &Engine{}
}

// NewCanvas starts an encrypted A4 document opened with password for both
// user and owner access.
func (e *Engine) NewCanvas(password string) (document.Canvas, error) {
	pdf := gofpdfpkg.New("P", "mm", "A4", "")
	pdf.SetProtection(gofpdfpkg.CnProtectPrint, password, password)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	return &canvas{pdf: pdf}, nil
}

type canvas struct {
	pdf *gofpdfpkg.Fpdf
}

func (c *canvas) Title(text string) {
	c.pdf.SetFont("Helvetica", "B", 20)
	c.pdf.SetTextColor(0x22, 0x22, 0x22)
	c.writeLine(8, text)
}

func (c *canvas) Label(text string) {
	c.pdf.SetFont("Helvetica", "", 12)
	c.pdf.SetTextColor(0x99, 0x99, 0x99)
	c.writeLine(6, text)
}

func (c *canvas) Strong(text string) {
	c.pdf.SetFont("Helvetica", "B", 12)
	c.pdf.SetTextColor(0x33, 0x33, 0x33)
	c.writeLine(6, text)
}

func (c *canvas) Text(text string) {
	c.pdf.SetFont("Helvetica", "", 10)
	c.pdf.SetTextColor(0x55, 0x55, 0x55)
	c.writeLine(lineHeight, text)
}

func (c *canvas) Section(text string) {
	c.pdf.SetFont("Helvetica", "B", 14)
	c.pdf.SetTextColor(0x33, 0x33, 0x33)
	c.writeLine(7, text)
}

func (c *canvas) Row(label, value string) {
	c.pdf.SetFont("Helvetica", "", 10)
	c.pdf.SetTextColor(0x55, 0x55, 0x55)
	c.pdf.Write(lineHeight, label+": ")
	c.pdf.SetTextColor(0x22, 0x22, 0x22)
	c.pdf.Write(lineHeight, value)
	c.pdf.Ln(lineHeight)
}

func (c *canvas) Link(text, url string) {
	c.pdf.SetFont("Helvetica", "U", 9)
	c.pdf.SetTextColor(0x25, 0x63, 0xeb)
	c.pdf.WriteLinkString(lineHeight, text, url)
	c.pdf.Ln(lineHeight)
}

func (c *canvas) Space(lines float64) {
	c.pdf.Ln(lineHeight * lines)
}

func (c *canvas) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *canvas) writeLine(height float64, text string) {
	c.pdf.Write(height, text)
	c.pdf.Ln(height)
}
