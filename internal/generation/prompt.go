// Package generation owns the contract with the language model: what we ask
// for, how the answer is parsed, and how a broken answer is reported.
package generation

import (
	"encoding/json"
	"strings"

	"github.com/straye-as/estimate-api/internal/domain"
)

// Temperature is fixed low so repeated runs stay close to each other
const Temperature = 0.3

const schemaHint = "Return JSON ONLY with keys: scopeOfWork (string), assumptions (string[]), " +
	"exclusions (string[]), bom ({name:string,qty:number,unit?:string,notes?:string}[]), ahjGuidance (string[])."

var systemPrompt = strings.Join([]string{
	"You are a veteran US-based General Contractor and estimator with deep knowledge across trades (GC remodel, HVAC, electrical, plumbing, decks/fencing, concrete).",
	"Your job is to produce practical, contractor-grade deliverables: estimate narrative, scope of work, assumptions, exclusions, and a build-of-materials suggestion list.",
	"Always use the ZIP code and treat code guidance as AHJ-dependent. Provide safe reminders, inspection/permit checklists, and 'verify with AHJ' disclaimers.",
	"Be concise, action-oriented, and prioritize profitability and risk control (change orders, allowances, exclusions).",
	"Never claim certainty about code requirements; present as best-effort guidance and next steps.",
}, "\n")

// RequiredSections names the five sections the model must return, in the
// wording sent to it
var RequiredSections = []string{
	"scopeOfWork (well-formatted paragraphs + bullets)",
	"assumptions (bullet list, 6-12 items)",
	"exclusions (bullet list, 6-12 items)",
	"bom (materials suggestions list with qty + unit when possible, based on description and trade)",
	"ahjGuidance (permit/code reminders based on trade, expressed as checklists)",
}

// RequestContext is the project description sent to the model
type RequestContext struct {
	Inputs           domain.Inputs        `json:"inputs"`
	ComputedTotals   domain.Totals        `json:"computedTotals"`
	ZipInfo          domain.LocationGuess `json:"zipInfo"`
	RequiredBehavior RequiredBehavior     `json:"requiredBehavior"`
}

type RequiredBehavior struct {
	Include []string `json:"include"`
}

// BuildRequestContext bundles everything the model needs about one job
func BuildRequestContext(in domain.Inputs, totals domain.Totals, guess domain.LocationGuess) RequestContext {
	include := make([]string, len(RequiredSections))
	copy(include, RequiredSections)

	return RequestContext{
		Inputs:           in,
		ComputedTotals:   totals,
		ZipInfo:          guess,
		RequiredBehavior: RequiredBehavior{Include: include},
	}
}

// SystemPrompt fixes the estimator persona and the defer-to-the-AHJ posture
func SystemPrompt() string {
	return systemPrompt
}

// UserMessage renders the schema instruction followed by the indented project JSON
func UserMessage(rc RequestContext) (string, error) {
	details, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return "", err
	}
	return schemaHint + "\n\nProject details:\n" + string(details), nil
}
