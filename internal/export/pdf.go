package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/straye-as/estimate-api/internal/domain"
)

// Page geometry in points, US Letter
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginLeft   = 48.0
	marginTop    = 32.0
	lineHeight   = 14.0
	bottomLimit  = pageHeight - 80
	maxListItems = 12
)

// proposal draws one page top to bottom
type proposal struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (p *proposal) text(s string, bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	p.pdf.SetFont("Helvetica", style, size)
	p.pdf.SetXY(marginLeft, p.y)
	p.pdf.CellFormat(pageWidth-2*marginLeft, lineHeight, p.tr(s), "", 0, "L", false, 0, "")
	p.y += lineHeight
}

func (p *proposal) gap(h float64) {
	p.y += h
}

func (p *proposal) full() bool {
	return p.y > bottomLimit
}

// wrapped draws s split to the text width, stopping at the page bottom
func (p *proposal) wrapped(s string, size float64) {
	p.pdf.SetFont("Helvetica", "", size)
	for _, line := range p.pdf.SplitText(p.tr(s), pageWidth-2*marginLeft) {
		if p.full() {
			return
		}
		p.pdf.SetXY(marginLeft, p.y)
		p.pdf.CellFormat(pageWidth-2*marginLeft, lineHeight, line, "", 0, "L", false, 0, "")
		p.y += lineHeight
	}
}

func (p *proposal) list(title string, items []string) {
	p.text(title, true, 13)
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	for _, item := range items {
		if p.full() {
			return
		}
		p.wrapped("- "+item, 11)
	}
}

// WriteProposalPDF renders a one-page proposal for rec
func WriteProposalPDF(w io.Writer, rec *domain.EstimateRecord) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle(rec.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &proposal{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		y:   marginTop,
	}

	p.text(rec.Title, true, 18)
	p.gap(6)
	p.text(fmt.Sprintf("Trade: %s   ZIP: %s   Created: %s",
		rec.Trade, rec.Zip, rec.CreatedAt.UTC().Format("Jan 2, 2006 3:04 PM MST")), false, 10)
	p.gap(8)

	p.text("Customer", true, 13)
	p.wrapped(customerLine(rec.Customer), 11)
	p.gap(6)

	t := rec.Outputs.Totals
	p.text("Price Summary", true, 13)
	p.text(fmt.Sprintf("Labor: %s   Travel: %s   Materials: %s   Overhead: %s",
		Money(t.LaborCost), Money(t.TravelCost), Money(t.MaterialsCost), Money(t.OverheadCost)), false, 11)
	p.text(fmt.Sprintf("Cost Subtotal: %s   Profit: %s   Price: %s   Margin: %s",
		Money(t.SubtotalCost), Money(t.Profit), Money(t.Price), Percent(t.Margin)), false, 11)
	p.gap(6)

	p.text("Scope of Work", true, 13)
	p.wrapped(rec.Outputs.ScopeOfWork, 11)
	p.gap(6)

	p.list("Assumptions", rec.Outputs.Assumptions)
	p.gap(6)
	p.list("Exclusions", rec.Outputs.Exclusions)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render proposal: %w", err)
	}
	return pdf.Output(w)
}

func customerLine(c domain.Customer) string {
	addr := c.Address1
	if c.Address2 != "" {
		addr += ", " + c.Address2
	}
	place := strings.TrimSpace(fmt.Sprintf("%s, %s %s", c.City, c.State, c.Zip))
	return strings.Join([]string{c.Name, addr, place}, " | ")
}
