package domain

import (
	"slices"
	"time"
)

// TimeEvent is a single open/close transition within a working schedule.
type TimeEvent struct {
	Date time.Time `json:"date"`
	Type string    `json:"type"`
}

// WorkingSchedule is a trading-hours schedule. Instruments reference it by ID,
// which makes it the join key between an instrument and its exchange.
type WorkingSchedule struct {
	ID         int64       `json:"id"`
	TimeEvents []TimeEvent `json:"timeEvents,omitempty"`
}

// Exchange is a trading venue as listed by the broker.
type Exchange struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	WorkingSchedules []WorkingSchedule `json:"workingSchedules"`
}

// Clone returns a copy that shares no slices with e.
func (e Exchange) Clone() Exchange {
	out := e
	out.WorkingSchedules = make([]WorkingSchedule, len(e.WorkingSchedules))
	for i, ws := range e.WorkingSchedules {
		ws.TimeEvents = slices.Clone(ws.TimeEvents)
		out.WorkingSchedules[i] = ws
	}
	return out
}

// ScheduleIDs returns the IDs of every working schedule of the exchange, in order.
func (e Exchange) ScheduleIDs() []int64 {
	ids := make([]int64, 0, len(e.WorkingSchedules))
	for _, ws := range e.WorkingSchedules {
		ids = append(ids, ws.ID)
	}
	return ids
}

// HasSchedule reports whether the exchange owns the given working schedule.
func (e Exchange) HasSchedule(scheduleID int64) bool {
	for _, ws := range e.WorkingSchedules {
		if ws.ID == scheduleID {
			return true
		}
	}
	return false
}
