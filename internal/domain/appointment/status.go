package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "P"
	StatusExecuting Status = "E"
	StatusFinished  Status = "F"
	StatusCancelled Status = "C"
)

// StatusDef describes one status. The declaration order of statuses is the
// canonical transition order; InCycle=false keeps a status out of
// advance/revert while still allowing a direct set.
type StatusDef struct {
	Code    Status `json:"code"`
	Label   string `json:"label"`
	InCycle bool   `json:"in_cycle"`
}

var statuses = []StatusDef{
	{Code: StatusPending, Label: "Pendente", InCycle: true},
	{Code: StatusExecuting, Label: "Executando", InCycle: true},
	{Code: StatusFinished, Label: "Finalizado", InCycle: true},
	{Code: StatusCancelled, Label: "Cancelado", InCycle: false},
}

// Statuses returns every status in canonical order.
func Statuses() []StatusDef {
	out := make([]StatusDef, len(statuses))
	copy(out, statuses)
	return out
}

// ParseStatus returns the status for a persisted code.
func ParseStatus(code string) (Status, bool) {
	for _, s := range statuses {
		if string(s.Code) == code {
			return s.Code, true
		}
	}
	return "", false
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

func (s Status) Label() string {
	for _, def := range statuses {
		if def.Code == s {
			return def.Label
		}
	}
	return string(s)
}

func position(s Status) int {
	for i, def := range statuses {
		if def.Code == s {
			return i
		}
	}
	return -1
}

// InitialStatus is the status of a new appointment when the form omits one.
func InitialStatus() Status {
	return StatusPending
}

// FinalizableStatuses are the statuses eligible for finalize-by-selection.
func FinalizableStatuses() []Status {
	return []Status{StatusPending, StatusExecuting}
}
