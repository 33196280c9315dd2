package appointment

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var dayLabels = map[int]string{
	-2: "Anteontem",
	-1: "Ontem",
	0:  "Hoje",
	1:  "Amanhã",
	2:  "Depois de amanhã",
}

// DayLabel names a signed day offset relative to today.
func DayLabel(offset int) string {
	if label, ok := dayLabels[offset]; ok {
		return label
	}
	if offset < 0 {
		return fmt.Sprintf("Há %d dias", -offset)
	}
	return fmt.Sprintf("Em %d dias", offset)
}

// DailySheet is one day of appointments split by status.
type DailySheet struct {
	Date      time.Time            `json:"date"`
	Offset    int                  `json:"offset"`
	Label     string               `json:"label"`
	Pending   []models.Appointment `json:"pending"`
	Executing []models.Appointment `json:"executing"`
	Finished  []models.Appointment `json:"finished"`
	Cancelled []models.Appointment `json:"cancelled"`
}

// NewDailySheet partitions appointments by status, keeping input order
// inside each bucket.
func NewDailySheet(date time.Time, offset int, appointments []models.Appointment) (*DailySheet, error) {
	sheet := &DailySheet{
		Date:      date,
		Offset:    offset,
		Label:     DayLabel(offset),
		Pending:   []models.Appointment{},
		Executing: []models.Appointment{},
		Finished:  []models.Appointment{},
		Cancelled: []models.Appointment{},
	}

	for _, ap := range appointments {
		bucket := sheet.Bucket(Status(ap.Status))
		if bucket == nil {
			return nil, ErrUnknownCurrentStatus
		}
		*bucket = append(*bucket, ap)
	}
	return sheet, nil
}

// Bucket returns the slice holding status s, or nil for an unknown status.
func (s *DailySheet) Bucket(status Status) *[]models.Appointment {
	switch status {
	case StatusPending:
		return &s.Pending
	case StatusExecuting:
		return &s.Executing
	case StatusFinished:
		return &s.Finished
	case StatusCancelled:
		return &s.Cancelled
	}
	return nil
}

// SortBucket orders one bucket by scheduled time.
func (s *DailySheet) SortBucket(status Status, desc bool) {
	bucket := s.Bucket(status)
	if bucket == nil {
		return
	}
	items := *bucket
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return items[i].ScheduledAt.After(items[j].ScheduledAt)
		}
		return items[i].ScheduledAt.Before(items[j].ScheduledAt)
	})
}

// Total counts appointments across all buckets.
func (s *DailySheet) Total() int {
	return len(s.Pending) + len(s.Executing) + len(s.Finished) + len(s.Cancelled)
}
