package game

import "time"

type Phase uint8

const (
	PhasePending Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "pending"
	}
}

// Classify decides the phase at now. An end time or an empty clock means the
// game is over; otherwise it is live once the start time has passed.
func Classify(s Snapshot, now time.Time) Phase {
	if s.EndTime != nil || s.Clock == "" {
		return PhaseEnded
	}
	if !s.StartTime.After(now) {
		return PhaseActive
	}
	return PhasePending
}
