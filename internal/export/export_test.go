package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/export"
)

// ============================================================================
// CSV
// ============================================================================

func TestWriteBOMCSV(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteBOMCSV(&buf, []domain.BOMItem{
		{Name: "2x6 joist, 12ft", Qty: 20, Unit: "ea"},
		{Name: "Deck screws", Qty: 2.5, Unit: "box", Notes: `"star" drive`},
		{Name: "Flashing"},
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "qty", "unit", "notes"},
		{"2x6 joist, 12ft", "20", "ea", ""},
		{"Deck screws", "2.5", "box", `"star" drive`},
		{"Flashing", "0", "", ""},
	}, rows)
}

func TestWriteBOMCSV_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteBOMCSV(&buf, nil))
	assert.Equal(t, "name,qty,unit,notes\n", buf.String())
}

func TestBOMFilename(t *testing.T) {
	assert.Equal(t, "BOM-est-123456.csv", export.BOMFilename("est-123456"))
}

// ============================================================================
// Filenames and formatting
// ============================================================================

func TestProposalFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Kitchen Remodel", "Kitchen Remodel.pdf"},
		{"Deck: phase #2 (rear)", "Deck phase 2 rear.pdf"},
		{"snake_case-and-dash", "snake_case-and-dash.pdf"},
		{"!!!", "proposal.pdf"},
		{"", "proposal.pdf"},
		{"Café renovation", "Caf renovation.pdf"},
		{strings.Repeat("a", 60), strings.Repeat("a", 40) + ".pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, export.ProposalFilename(tt.title))
		})
	}
}

func TestMoneyAndPercent(t *testing.T) {
	assert.Equal(t, "$2030.93", export.Money(2030.93))
	assert.Equal(t, "$0.00", export.Money(0))
	assert.Equal(t, "$1200.50", export.Money(1200.5))
	assert.Equal(t, "25.0%", export.Percent(25))
	assert.Equal(t, "33.3%", export.Percent(100.0/3))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="BOM-abc123.csv"`, export.ContentDisposition("BOM-abc123.csv"))
}

// ============================================================================
// PDF
// ============================================================================

func proposalRecord() *domain.EstimateRecord {
	assumptions := make([]string, 30)
	for i := range assumptions {
		assumptions[i] = "Owner provides clear access to the work area during normal business hours each day"
	}
	return &domain.EstimateRecord{
		ID:        "est-123456",
		CreatedAt: time.Date(2024, 5, 1, 15, 4, 0, 0, time.UTC),
		Title:     "Kitchen Remodel – Smith résidence",
		Zip:       "78701",
		Trade:     domain.TradeRemodelGC,
		Customer: domain.Customer{
			Name: "Dana Smith", Address1: "1 Main St", Address2: "Unit 4",
			City: "Austin", State: "TX", Zip: "78701",
		},
		Outputs: domain.Output{
			Totals:      domain.Totals{LaborCost: 1360, Price: 2030.93, Margin: 25},
			ScopeOfWork: strings.Repeat("Remove existing cabinets and install new units. ", 40),
			Assumptions: assumptions,
			Exclusions:  []string{"Permit fees"},
		},
	}
}

func TestWriteProposalPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteProposalPDF(&buf, proposalRecord()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestWriteProposalPDF_EmptyOutputs(t *testing.T) {
	var buf bytes.Buffer
	rec := &domain.EstimateRecord{ID: "est-000000", Title: ""}
	require.NoError(t, export.WriteProposalPDF(&buf, rec))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
