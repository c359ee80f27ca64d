package domain

import (
	"time"
)

// EstimateRecord is a saved estimate. The customer, inputs and outputs are
// stored as JSON documents next to a few indexed columns used for listing.
type EstimateRecord struct {
	ID        string    `gorm:"type:varchar(100);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updatedAt"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Zip       string    `gorm:"type:varchar(10);not null" json:"zip"`
	Trade     Trade     `gorm:"type:varchar(50);not null" json:"trade"`
	Customer  Customer  `gorm:"column:customer_json;type:text;not null;serializer:json" json:"customer"`
	Inputs    Inputs    `gorm:"column:inputs_json;type:text;not null;serializer:json" json:"inputs"`
	Outputs   Output    `gorm:"column:outputs_json;type:text;not null;serializer:json" json:"outputs"`
}

// TableName overrides the default table name to match the migration
func (EstimateRecord) TableName() string {
	return "estimates"
}

// Summary returns the listing view of the record
func (r EstimateRecord) Summary() EstimateSummary {
	return EstimateSummary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Title:     r.Title,
		Zip:       r.Zip,
		Trade:     r.Trade,
	}
}

// EstimateSummary is the row shape returned when listing estimates
type EstimateSummary struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Zip       string
	Trade     Trade
}
