package domain

import "testing"

func TestInstrument_IsPreferenceShare(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"Bristol & West PRF", true},
		{"Acme (Preference)", true},
		{"Santander 10.375% PRF", true},
		{"Acme Preference Holdings", false},
		{"PRFX Corp", false},
		{"Acme (preference)", false},
		{"Alphabet (Class A)", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inst := NewInstrument("X_EQ", "X", tc.name, InstrumentTypeStock, 1, "GBX")
			if got := inst.IsPreferenceShare(); got != tc.expected {
				t.Errorf("IsPreferenceShare(%q) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestExchange_Schedules(t *testing.T) {
	exch := Exchange{
		ID:   42,
		Name: "London Stock Exchange",
		WorkingSchedules: []WorkingSchedule{
			{ID: 88},
			{ID: 100},
		},
	}

	ids := exch.ScheduleIDs()
	if len(ids) != 2 || ids[0] != 88 || ids[1] != 100 {
		t.Errorf("unexpected schedule ids: %v", ids)
	}
	if !exch.HasSchedule(100) {
		t.Error("expected schedule 100 to belong to exchange")
	}
	if exch.HasSchedule(101) {
		t.Error("did not expect schedule 101 to belong to exchange")
	}
}

func TestExchange_Clone(t *testing.T) {
	orig := Exchange{
		ID:   1,
		Name: "NASDAQ",
		WorkingSchedules: []WorkingSchedule{
			{ID: 40, TimeEvents: []TimeEvent{{Type: "OPEN"}}},
		},
	}

	clone := orig.Clone()
	clone.WorkingSchedules[0].ID = 99
	clone.WorkingSchedules[0].TimeEvents[0].Type = "CLOSE"

	if orig.WorkingSchedules[0].ID != 40 {
		t.Errorf("clone shares schedules: got id %d", orig.WorkingSchedules[0].ID)
	}
	if orig.WorkingSchedules[0].TimeEvents[0].Type != "OPEN" {
		t.Errorf("clone shares time events: got %s", orig.WorkingSchedules[0].TimeEvents[0].Type)
	}
}
