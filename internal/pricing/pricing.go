// Package pricing computes the deterministic cost and price of a job.
package pricing

import (
	"fmt"
	"math"

	"github.com/straye-as/estimate-api/internal/domain"
)

const (
	// MileageRate is the fixed per-mile reimbursement in USD
	MileageRate = 0.67

	// NightlyHotelRate is the fixed lodging cost per night in USD
	NightlyHotelRate = 175.0

	// marginCapTarget is the margin target at which price stops following
	// subtotal / (1 - m) and is pinned to subtotal * marginCapMultiplier
	marginCapTarget     = 95.0
	marginCapMultiplier = 20.0

	hoursPerDay = 8.0
)

// ComputeTotals prices in. It never fails on validated input and returns
// bit-identical results for identical Inputs. A mode outside its closed set
// is a caller bug and panics.
func ComputeTotals(in domain.Inputs) domain.Totals {
	labor := laborCost(in.Labor)
	travel := travelCost(in.Travel, in.Labor.HourlyRate)
	materials := materialsCost(in.Materials)
	overhead := overheadCost(in.Overhead, in.Labor, labor+travel+materials)

	subtotal := labor + travel + materials + overhead
	price, profit := priceAndProfit(in.Profit, subtotal)

	margin := 0.0
	if price > 0 {
		margin = profit / price * 100
	}

	return domain.Totals{
		LaborCost:     labor,
		TravelCost:    travel,
		MaterialsCost: materials,
		OverheadCost:  overhead,
		SubtotalCost:  subtotal,
		Profit:        profit,
		Price:         price,
		Margin:        margin,
	}
}

func laborCost(l domain.LaborConfig) float64 {
	switch l.Mode {
	case domain.LaborModeHourly:
		return l.EstimatedHours * l.HourlyRate
	case domain.LaborModeCrew:
		return l.EstimatedDays * l.CrewDayRate
	default:
		panic(fmt.Sprintf("pricing: unknown labor mode %q", l.Mode))
	}
}

// travelCost bills drive time at the burdened hourly rate whatever the labor
// mode. Per diem accrues only for hotel nights, not for every day on site.
func travelCost(t domain.TravelConfig, hourlyRate float64) float64 {
	driveTime := t.DriveHoursRoundTrip * t.Trips * hourlyRate
	mileage := t.MileageRoundTrip * t.Trips * MileageRate
	hotel := t.HotelNights * NightlyHotelRate
	perDiem := t.PerDiemRate * t.Travelers * t.HotelNights
	return driveTime + mileage + hotel + perDiem
}

func materialsCost(m domain.MaterialsConfig) float64 {
	base := 0.0
	for _, item := range m.Items {
		if item.UnitCost == nil {
			continue
		}
		base += item.Qty * *item.UnitCost
	}
	return base * (1 + m.WastePercent/100)
}

// EffectiveDays is the number of billable site days used by per-day overhead
func EffectiveDays(l domain.LaborConfig) float64 {
	if l.Mode == domain.LaborModeCrew {
		return math.Ceil(l.EstimatedDays)
	}
	return math.Max(1, math.Ceil(l.EstimatedHours/hoursPerDay))
}

func overheadCost(o domain.OverheadConfig, l domain.LaborConfig, direct float64) float64 {
	switch o.Mode {
	case domain.OverheadModePercent:
		return direct * (o.Percent / 100)
	case domain.OverheadModePerDay:
		return EffectiveDays(l) * o.PerDay
	case domain.OverheadModeBlended:
		return direct * (o.BlendedBurdenPercent / 100)
	default:
		panic(fmt.Sprintf("pricing: unknown overhead mode %q", o.Mode))
	}
}

func priceAndProfit(p domain.ProfitConfig, subtotal float64) (price, profit float64) {
	switch p.Mode {
	case domain.ProfitModeMarkup:
		profit = subtotal * (p.Target / 100)
		return subtotal + profit, profit
	case domain.ProfitModeMargin:
		if p.Target >= marginCapTarget {
			price = subtotal * marginCapMultiplier
		} else {
			price = subtotal / (1 - p.Target/100)
		}
		return price, price - subtotal
	default:
		panic(fmt.Sprintf("pricing: unknown profit mode %q", p.Mode))
	}
}
