package domain

// Totals is the deterministic cost and price breakdown of one set of Inputs.
// Values are kept unrounded; rounding belongs to presentation.
type Totals struct {
	LaborCost     float64 `json:"laborCost"`
	TravelCost    float64 `json:"travelCost"`
	MaterialsCost float64 `json:"materialsCost"`
	OverheadCost  float64 `json:"overheadCost"`
	SubtotalCost  float64 `json:"subtotalCost"`
	Profit        float64 `json:"profit"`
	Price         float64 `json:"price"`
	// Margin is profit as a percentage of price
	Margin float64 `json:"margin"`
}

// BOMItem is one suggested bill-of-materials line
type BOMItem struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Unit  string  `json:"unit,omitempty"`
	Notes string  `json:"notes,omitempty"`
}

// GenerationResult is the normalized narrative content returned by the model
type GenerationResult struct {
	ScopeOfWork string    `json:"scopeOfWork"`
	Assumptions []string  `json:"assumptions"`
	Exclusions  []string  `json:"exclusions"`
	BOM         []BOMItem `json:"bom"`
	AHJGuidance []string  `json:"ahjGuidance"`
}

// EmptyGenerationResult returns a result whose lists are empty but non-nil
func EmptyGenerationResult() GenerationResult {
	return GenerationResult{
		Assumptions: []string{},
		Exclusions:  []string{},
		BOM:         []BOMItem{},
		AHJGuidance: []string{},
	}
}

// LocationGuess is a best-effort place for a postal code. Every field may be empty.
type LocationGuess struct {
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	County string `json:"county,omitempty"`
}

// IsZero reports whether nothing was resolved
func (g LocationGuess) IsZero() bool {
	return g.City == "" && g.State == "" && g.County == ""
}

// SearchLink is a labelled web search the estimator can follow to confirm
// permit and code requirements with the local authority
type SearchLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// AHJ groups everything the estimate says about the authority having jurisdiction
type AHJ struct {
	LocationGuess LocationGuess `json:"locationGuess"`
	Guidance      []string      `json:"guidance"`
	SearchLinks   []SearchLink  `json:"searchLinks"`
}

// Output is the assembled estimate. It is built once per run and never
// patched afterwards; all list fields are non-nil.
type Output struct {
	Totals      Totals    `json:"totals"`
	ScopeOfWork string    `json:"scopeOfWork"`
	Assumptions []string  `json:"assumptions"`
	Exclusions  []string  `json:"exclusions"`
	BOM         []BOMItem `json:"bom"`
	AHJ         AHJ       `json:"ahj"`
}
