// Package export renders stored estimates as downloadable files: the bill of
// materials as CSV and a one-page customer proposal as PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/straye-as/estimate-api/internal/domain"
)

const (
	ContentTypeCSV = "text/csv; charset=utf-8"
	ContentTypePDF = "application/pdf"

	maxFilenameLength = 40
	fallbackFilename  = "proposal"
)

var bomHeader = []string{"name", "qty", "unit", "notes"}

// WriteBOMCSV writes the bill of materials with a name,qty,unit,notes header
func WriteBOMCSV(w io.Writer, bom []domain.BOMItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(bomHeader); err != nil {
		return err
	}
	for _, item := range bom {
		row := []string{
			item.Name,
			strconv.FormatFloat(item.Qty, 'f', -1, 64),
			item.Unit,
			item.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BOMFilename is the download name of an estimate's CSV
func BOMFilename(id string) string {
	return "BOM-" + id + ".csv"
}

// ProposalFilename turns an estimate title into a PDF download name. Only
// ASCII letters, digits, '-', '_' and spaces survive, cut to 40 characters.
func ProposalFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		if b.Len() == maxFilenameLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == ' ':
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = fallbackFilename
	}
	return name + ".pdf"
}

// Money formats an amount as dollars with two decimals
func Money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// Percent formats a percentage with one decimal
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// ContentDisposition is the attachment header value for filename
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
