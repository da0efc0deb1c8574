package pdt

import "testing"

func TestUnitOfTimeSeconds(t *testing.T) {
	tests := []struct {
		unit   UnitOfTime
		want   int64
		wantOK bool
	}{
		{UnitOfTimeMinute, 60, true},
		{UnitOfTimeHour, 3600, true},
		{UnitOfTimeDay, 86400, true},
		{UnitOfTimeMonth, 86400, true},
		{UnitOfTimeYear, 365 * 86400, true},
		{UnitOfTimeDecade, 3652 * 86400, true},
		{UnitOfTimeNormal, 10957 * 86400, true},
		{UnitOfTimeCentury, 36524 * 86400, true},
		{UnitOfTime3Hours, 3 * 3600, true},
		{UnitOfTime6Hours, 6 * 3600, true},
		{UnitOfTime12Hours, 12 * 3600, true},
		{UnitOfTimeSecond, 1, true},
		{UnitOfTimeSecond2, 1, true},
		{8, 0, false},
		{UnitOfTimeMissing, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.unit.Seconds()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("UnitOfTime(%d).Seconds() = %d, %v; want %d, %v", tt.unit, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestUnitOfTimeLabel(t *testing.T) {
	tests := []struct {
		unit UnitOfTime
		n    int64
		want string
	}{
		{UnitOfTimeMinute, 15, "15Min"},
		{UnitOfTimeHour, 3, "3Hr"},
		{UnitOfTimeDay, 1, "1Day"},
		{UnitOfTimeMonth, 1, "1Mon"},
		{UnitOfTimeYear, 2, "2Yr"},
		{UnitOfTimeDecade, 2, "20Yr"},
		{UnitOfTimeNormal, 1, "30Yr"},
		{UnitOfTimeCentury, 1, "100Yr"},
		{UnitOfTime3Hours, 2, "6Hr"},
		{UnitOfTime6Hours, 2, "12Hr"},
		{UnitOfTime12Hours, 2, "24Hr"},
		{UnitOfTimeSecond, 30, "30Sec"},
		{UnitOfTimeSecond2, 30, "30Sec"},
		{9, 4, "4Unk"},
	}
	for _, tt := range tests {
		if got := tt.unit.Label(tt.n); got != tt.want {
			t.Errorf("UnitOfTime(%d).Label(%d) = %q, want %q", tt.unit, tt.n, got, tt.want)
		}
	}
}

func TestUnitOfTimeString(t *testing.T) {
	if got := UnitOfTimeNormal.String(); got != "Normals (30 Years)" {
		t.Errorf("String() = %q", got)
	}
	if got := UnitOfTime(9).String(); got != "Unknown units" {
		t.Errorf("String() = %q", got)
	}
}
