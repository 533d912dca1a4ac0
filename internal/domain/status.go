package domain

import "strings"

// Status is the lifecycle state of an appointment. The graph is cyclic:
// every non-scheduled status can be reset back to scheduled.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFinished  Status = "finished"
	StatusCanceled  Status = "canceled"
	StatusNoShow    Status = "noshow"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, true
	case StatusFinished:
		return StatusFinished, true
	case StatusCanceled:
		return StatusCanceled, true
	case StatusNoShow:
		return StatusNoShow, true
	}
	return "", false
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusFinished, StatusCanceled, StatusNoShow:
		return true
	}
	return false
}

// CanTransition reports whether a status change is allowed. Scheduled can
// move to any other status, and any status can be reset to scheduled.
// Finished appointments cannot be canceled or marked no-show directly.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if from == StatusScheduled || to == StatusScheduled {
		return true
	}
	return false
}
