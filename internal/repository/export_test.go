package repository

import "time"

// SetClock replaces the timestamp source used by Upsert
func (r *EstimateRepository) SetClock(now func() time.Time) {
	r.now = now
}
