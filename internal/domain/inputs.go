package domain

// Inputs describes one job to be estimated. It is treated as an immutable
// value: the pipeline copies it and never writes back into it.
type Inputs struct {
	Trade          Trade  `json:"trade" validate:"enum"`
	Zip            string `json:"zip" validate:"required,min=5,max=10"`
	JobTitle       string `json:"jobTitle" validate:"required,max=200"`
	JobDescription string `json:"jobDescription"`
	Constraints    string `json:"constraints"`
	Inclusions     string `json:"inclusions"`
	Exclusions     string `json:"exclusions"`

	Labor     LaborConfig     `json:"labor"`
	Travel    TravelConfig    `json:"travel"`
	Overhead  OverheadConfig  `json:"overhead"`
	Profit    ProfitConfig    `json:"profit"`
	Materials MaterialsConfig `json:"materials"`
	Schedule  ScheduleConfig  `json:"schedule"`
}

type LaborConfig struct {
	Mode LaborMode `json:"mode" validate:"enum"`
	// HourlyRate is the burdened rate; drive time is billed at it too
	HourlyRate     float64 `json:"hourlyRate" validate:"gte=0,finite"`
	CrewDayRate    float64 `json:"crewDayRate" validate:"gte=0,finite"`
	EstimatedHours float64 `json:"estimatedHours" validate:"gte=0,finite"`
	EstimatedDays  float64 `json:"estimatedDays" validate:"gte=0,finite"`
	CrewSize       float64 `json:"crewSize" validate:"gte=0,finite"`
}

type TravelConfig struct {
	DriveHoursRoundTrip float64 `json:"driveHoursRoundTrip" validate:"gte=0,finite"`
	MileageRoundTrip    float64 `json:"mileageRoundTrip" validate:"gte=0,finite"`
	Trips               float64 `json:"trips" validate:"gte=0,finite"`
	HotelNights         float64 `json:"hotelNights" validate:"gte=0,finite"`
	PerDiemRate         float64 `json:"perDiemPerPersonPerDay" validate:"gte=0,finite"`
	Travelers           float64 `json:"people" validate:"gte=0,finite"`
}

type OverheadConfig struct {
	Mode                 OverheadMode `json:"mode" validate:"enum"`
	Percent              float64      `json:"percent" validate:"gte=0,finite"`
	PerDay               float64      `json:"perDay" validate:"gte=0,finite"`
	BlendedBurdenPercent float64      `json:"blendedBurdenPercent" validate:"gte=0,finite"`
}

type ProfitConfig struct {
	Mode ProfitMode `json:"mode" validate:"enum"`
	// Target is a percentage (25 means 25%)
	Target float64 `json:"target" validate:"gte=0,finite"`
}

type MaterialsConfig struct {
	WastePercent float64    `json:"wastePercentDefault" validate:"gte=0,finite"`
	Items        []LineItem `json:"items" validate:"dive"`
}

// LineItem is a material the estimator entered by hand. UnitCost is optional
// and counts as zero when absent.
type LineItem struct {
	Name     string   `json:"name" validate:"max=500"`
	Unit     string   `json:"unit,omitempty"`
	Qty      float64  `json:"qty" validate:"gte=0,finite"`
	UnitCost *float64 `json:"unitCost,omitempty" validate:"omitempty,gte=0,finite"`
	Notes    string   `json:"notes,omitempty"`
}

type ScheduleConfig struct {
	StartWindow  string  `json:"startWindow"`
	DurationDays float64 `json:"durationDays" validate:"gte=0,finite"`
}

// Customer is the customer block stored next to a saved estimate
type Customer struct {
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone,omitempty" validate:"max=50"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Address1 string `json:"address1" validate:"required,max=500"`
	Address2 string `json:"address2,omitempty" validate:"max=500"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"required,max=50"`
	Zip      string `json:"zip" validate:"max=10"`
}

// DefaultInputs returns the starting point offered by the estimate wizard
func DefaultInputs() Inputs {
	zero := 0.0
	return Inputs{
		Trade:    TradeRemodelGC,
		JobTitle: "Estimate",
		Labor: LaborConfig{
			Mode:           LaborModeHourly,
			HourlyRate:     85,
			CrewDayRate:    900,
			EstimatedHours: 16,
			EstimatedDays:  2,
			CrewSize:       2,
		},
		Travel: TravelConfig{
			Trips:     1,
			Travelers: 2,
		},
		Overhead: OverheadConfig{
			Mode:                 OverheadModePercent,
			Percent:              12,
			PerDay:               250,
			BlendedBurdenPercent: 18,
		},
		Profit: ProfitConfig{
			Mode:   ProfitModeMargin,
			Target: 25,
		},
		Materials: MaterialsConfig{
			WastePercent: 10,
			Items: []LineItem{
				{Name: "Example material line item (edit/remove)", Unit: "ea", Qty: 1, UnitCost: &zero},
			},
		},
		Schedule: ScheduleConfig{
			StartWindow:  "Within 2-3 weeks",
			DurationDays: 2,
		},
	}
}
