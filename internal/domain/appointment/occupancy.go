package appointment

import "time"

// Occupancy is the "occupied now" snapshot of a company's workers.
type Occupancy struct {
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`
	Occupied     int64     `json:"occupied"`
	TotalWorkers int64     `json:"total_workers"`
	Percent      float64   `json:"percent"`
}

// OccupancyWindow returns the window of half-width around now.
func OccupancyWindow(now time.Time, half time.Duration) (time.Time, time.Time) {
	return now.Add(-half), now.Add(half)
}

// OccupancyPercent is occupied/total*100 rounded to two places; zero when
// there are no workers.
func OccupancyPercent(occupied, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(occupied) / float64(total) * 100
	return float64(int64(p*100+0.5)) / 100
}
