package estimate

// Phase is a step of one pipeline run
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseComputingTotals
	PhaseResolvingLocation
	PhaseBuildingLinks
	PhaseGeneratingContent
	PhaseAssembled
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseIdle:              "idle",
	PhaseComputingTotals:   "computing_totals",
	PhaseResolvingLocation: "resolving_location",
	PhaseBuildingLinks:     "building_links",
	PhaseGeneratingContent: "generating_content",
	PhaseAssembled:         "assembled",
	PhaseFailed:            "failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Terminal reports whether no transition leaves p
func (p Phase) Terminal() bool {
	return p == PhaseAssembled || p == PhaseFailed
}

// PhaseObserver is told about every transition. It is called synchronously
// from the run's goroutine and must not block.
type PhaseObserver interface {
	OnPhase(from, to Phase)
}

// PhaseObserverFunc adapts a function to PhaseObserver
type PhaseObserverFunc func(from, to Phase)

func (f PhaseObserverFunc) OnPhase(from, to Phase) { f(from, to) }
