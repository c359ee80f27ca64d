package generation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/straye-as/estimate-api/internal/domain"
	"github.com/straye-as/estimate-api/internal/generation"
)

const completeAnswer = `{
  "scopeOfWork": "Demo and replace vanity.\n- Remove existing\n- Install new",
  "assumptions": ["Normal working hours", "Clear access"],
  "exclusions": ["Permit fees"],
  "bom": [{"name": "Vanity", "qty": 1, "unit": "ea", "notes": "36 in"}],
  "ahjGuidance": ["Verify permit need with AHJ"]
}`

func TestParseResponse_Recovers(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScope string
	}{
		{
			name:      "plain object",
			raw:       completeAnswer,
			wantScope: "Demo and replace vanity.\n- Remove existing\n- Install new",
		},
		{
			name:      "fenced json",
			raw:       "```json\n{\"scopeOfWork\": \"Fenced\"}\n```",
			wantScope: "Fenced",
		},
		{
			name:      "bare fence",
			raw:       "```\n{\"scopeOfWork\": \"Bare\"}\n```",
			wantScope: "Bare",
		},
		{
			name:      "leading prose",
			raw:       "Sure! Here is the estimate:\n{\"scopeOfWork\": \"After prose\"}",
			wantScope: "After prose",
		},
		{
			name:      "prose on both sides",
			raw:       "Here you go: {\"scopeOfWork\": \"Middle\"} Let me know if you need changes.",
			wantScope: "Middle",
		},
		{
			name:      "example braces before the answer",
			raw:       "The format is {like this}. Answer:\n{\"scopeOfWork\": \"Real\"}",
			wantScope: "Real",
		},
		{
			name:      "braces inside strings",
			raw:       "Example {bad}. Final: {\"scopeOfWork\": \"a } b { c\"}",
			wantScope: "a } b { c",
		},
		{
			name:      "two objects picks the last",
			raw:       "{\"scopeOfWork\": \"draft\"}\n\nRevised:\n{\"scopeOfWork\": \"final\"}",
			wantScope: "final",
		},
		{
			name:      "quoted brace in prose",
			raw:       "Use \"{\" carefully. {\"scopeOfWork\": \"Quoted\"}",
			wantScope: "Quoted",
		},
		{
			name:      "last object has nested entries",
			raw:       "Draft {\"scopeOfWork\": \"old\"} final {\"scopeOfWork\": \"new\", \"bom\": [{\"name\": \"A\"}]}",
			wantScope: "new",
		},
		{
			name:      "nested objects",
			raw:       "Result: {\"scopeOfWork\": \"Nested\", \"bom\": [{\"name\": \"A\", \"qty\": 2}]} done",
			wantScope: "Nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generation.ParseResponse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScope, got.ScopeOfWork)
			assert.NotNil(t, got.Assumptions)
			assert.NotNil(t, got.Exclusions)
			assert.NotNil(t, got.BOM)
			assert.NotNil(t, got.AHJGuidance)
		})
	}
}

func TestParseResponse_ContractFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace", raw: "  \n\t "},
		{name: "plain refusal", raw: "I'm sorry, I can't produce that estimate."},
		{name: "truncated object", raw: `{"scopeOfWork": "x", "assumptions": [`},
		{name: "top-level array", raw: `[{"scopeOfWork": "x"}]`},
		{name: "top-level string", raw: `"just a string"`},
		{name: "top-level number", raw: `42`},
		{name: "top-level null", raw: `null`},
		{name: "only broken braces", raw: "use {this and {that"},
		{name: "invalid object", raw: "{scopeOfWork: 'single quotes'}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generation.ParseResponse(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrGenerationContract))

			var cerr *generation.ContractError
			require.True(t, errors.As(err, &cerr))
			assert.NotEmpty(t, cerr.Reason)
			assert.Equal(t, domain.GenerationResult{}, got)
		})
	}
}

func TestParseResponse_CompleteAnswer(t *testing.T) {
	got, err := generation.ParseResponse(completeAnswer)
	require.NoError(t, err)

	assert.Equal(t, []string{"Normal working hours", "Clear access"}, got.Assumptions)
	assert.Equal(t, []string{"Permit fees"}, got.Exclusions)
	assert.Equal(t, []domain.BOMItem{{Name: "Vanity", Qty: 1, Unit: "ea", Notes: "36 in"}}, got.BOM)
	assert.Equal(t, []string{"Verify permit need with AHJ"}, got.AHJGuidance)
}

func TestParseResponse_MissingFieldsNormalizeToEmpty(t *testing.T) {
	got, err := generation.ParseResponse(`{"scopeOfWork": "Only scope"}`)
	require.NoError(t, err)

	assert.Equal(t, "Only scope", got.ScopeOfWork)
	assert.Equal(t, []string{}, got.Exclusions)
	assert.Equal(t, []string{}, got.Assumptions)
	assert.Equal(t, []domain.BOMItem{}, got.BOM)
	assert.Equal(t, []string{}, got.AHJGuidance)

	got, err = generation.ParseResponse(`{}`)
	require.NoError(t, err)
	assert.Equal(t, domain.EmptyGenerationResult(), got)
}

func TestParseResponse_WrongTypes(t *testing.T) {
	raw := `{
		"scopeOfWork": 42,
		"assumptions": "not a list",
		"exclusions": ["a", 3, 2.5, true, null, {"x": 1}, ["y"]],
		"bom": {"name": "not a list"},
		"ahjGuidance": null
	}`

	got, err := generation.ParseResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, "", got.ScopeOfWork)
	assert.Equal(t, []string{}, got.Assumptions)
	assert.Equal(t, []string{"a", "3", "2.5", "true"}, got.Exclusions)
	assert.Equal(t, []domain.BOMItem{}, got.BOM)
	assert.Equal(t, []string{}, got.AHJGuidance)
}

func TestParseResponse_BOMCoercion(t *testing.T) {
	raw := `{"bom": [
		{"name": "Tile", "qty": "12.5", "unit": "sqft"},
		"junk",
		{"name": "Grout", "qty": "lots"},
		{"qty": 2, "unit": 7},
		{"name": "Sealer", "qty": "NaN"},
		{"name": "Screws", "qty": 1e400},
		null
	]}`

	got, err := generation.ParseResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, []domain.BOMItem{
		{Name: "Tile", Qty: 12.5, Unit: "sqft"},
		{Name: "Grout", Qty: 0},
		{Name: "", Qty: 2},
		{Name: "Sealer", Qty: 0},
		{Name: "Screws", Qty: 0},
	}, got.BOM)
}
