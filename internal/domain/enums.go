package domain

import (
	"encoding/json"
	"fmt"
)

// Trade is the fixed set of trades an estimate can be written for
type Trade string

const (
	TradeRemodelGC    Trade = "Residential Remodel GC"
	TradeHVAC         Trade = "HVAC"
	TradeElectrical   Trade = "Electrical"
	TradePlumbing     Trade = "Plumbing"
	TradeDecksFencing Trade = "Decks/Fencing"
	TradeConcrete     Trade = "Concrete"
	TradeOther        Trade = "Other"
)

// Trades lists every valid trade in display order
var Trades = []Trade{
	TradeRemodelGC,
	TradeHVAC,
	TradeElectrical,
	TradePlumbing,
	TradeDecksFencing,
	TradeConcrete,
	TradeOther,
}

// IsValid reports whether t is one of the known trades
func (t Trade) IsValid() bool {
	for _, known := range Trades {
		if t == known {
			return true
		}
	}
	return false
}

func (t *Trade) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "trade", t)
}

// LaborMode selects how labor cost is computed
type LaborMode string

const (
	LaborModeHourly LaborMode = "hourly"
	LaborModeCrew   LaborMode = "crew"
)

// IsValid reports whether m is a known labor mode
func (m LaborMode) IsValid() bool {
	return m == LaborModeHourly || m == LaborModeCrew
}

func (m *LaborMode) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "labor mode", m)
}

// OverheadMode selects how overhead is applied on top of direct cost
type OverheadMode string

const (
	OverheadModePercent OverheadMode = "percent"
	OverheadModePerDay  OverheadMode = "per_day"
	OverheadModeBlended OverheadMode = "blended"
)

// IsValid reports whether m is a known overhead mode
func (m OverheadMode) IsValid() bool {
	switch m {
	case OverheadModePercent, OverheadModePerDay, OverheadModeBlended:
		return true
	}
	return false
}

func (m *OverheadMode) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "overhead mode", m)
}

// ProfitMode selects whether the profit target is a margin on price or a markup on cost
type ProfitMode string

const (
	ProfitModeMargin ProfitMode = "margin"
	ProfitModeMarkup ProfitMode = "markup"
)

// IsValid reports whether m is a known profit mode
func (m ProfitMode) IsValid() bool {
	return m == ProfitModeMargin || m == ProfitModeMarkup
}

func (m *ProfitMode) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "profit mode", m)
}

type enum interface {
	~string
	IsValid() bool
}

// unmarshalEnum decodes a JSON string into a closed enum, rejecting values
// outside the set so an unknown mode can never reach the pricing engine.
func unmarshalEnum[T enum](data []byte, kind string, dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s must be a string: %w", kind, err)
	}
	v := T(s)
	if !v.IsValid() {
		return fmt.Errorf("unknown %s %q", kind, s)
	}
	*dst = v
	return nil
}
