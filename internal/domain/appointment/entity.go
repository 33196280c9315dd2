package appointment

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrUnknownCurrentStatus means a stored status is missing from the canonical
// order. The enum column should make it unreachable.
var ErrUnknownCurrentStatus = errors.New("appointment: current status not in cycle order")

var (
	ErrInvalidStatusCode = httperr.ErrBusiness("invalid_status_code")
	ErrEndOfCycle        = httperr.ErrBusiness("already_at_end_of_cycle")
	ErrStartOfCycle      = httperr.ErrBusiness("already_at_start_of_cycle")
)

// Transition records a status change applied to an appointment.
type Transition struct {
	From Status `json:"from"`
	To   Status `json:"to"`
}

// Next returns the first in-cycle status after current.
func Next(current Status) (Status, error) {
	i := position(current)
	if i < 0 {
		return "", ErrUnknownCurrentStatus
	}
	for j := i + 1; j < len(statuses); j++ {
		if statuses[j].InCycle {
			return statuses[j].Code, nil
		}
	}
	return "", ErrEndOfCycle
}

// Previous returns the nearest in-cycle status before current.
func Previous(current Status) (Status, error) {
	i := position(current)
	if i < 0 {
		return "", ErrUnknownCurrentStatus
	}
	for j := i - 1; j >= 0; j-- {
		if statuses[j].InCycle {
			return statuses[j].Code, nil
		}
	}
	return "", ErrStartOfCycle
}

// ===============================
// Domain Actions
// ===============================

func Advance(ap *models.Appointment) (Transition, error) {
	from := Status(ap.Status)
	to, err := Next(from)
	if err != nil {
		return Transition{}, err
	}
	ap.Status = string(to)
	return Transition{From: from, To: to}, nil
}

func Revert(ap *models.Appointment) (Transition, error) {
	from := Status(ap.Status)
	to, err := Previous(from)
	if err != nil {
		return Transition{}, err
	}
	ap.Status = string(to)
	return Transition{From: from, To: to}, nil
}

// SetStatus assigns any recognized code, cancelled included, regardless of
// the current status.
func SetStatus(ap *models.Appointment, code string) (Transition, error) {
	to, ok := ParseStatus(code)
	if !ok {
		return Transition{}, ErrInvalidStatusCode
	}
	from := Status(ap.Status)
	ap.Status = string(to)
	return Transition{From: from, To: to}, nil
}
