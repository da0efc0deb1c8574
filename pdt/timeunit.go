package pdt

import "strconv"

// UnitOfTime is code table 4.4, the indicator of unit of time range. See
// https://apps.ecmwf.int/codes/grib/format/grib2/ctables/4/4/
type UnitOfTime uint8

// Units of time from code table 4.4.
const (
	UnitOfTimeMinute  UnitOfTime = 0
	UnitOfTimeHour    UnitOfTime = 1
	UnitOfTimeDay     UnitOfTime = 2
	UnitOfTimeMonth   UnitOfTime = 3
	UnitOfTimeYear    UnitOfTime = 4
	UnitOfTimeDecade  UnitOfTime = 5
	UnitOfTimeNormal  UnitOfTime = 6
	UnitOfTimeCentury UnitOfTime = 7
	UnitOfTime3Hours  UnitOfTime = 10
	UnitOfTime6Hours  UnitOfTime = 11
	UnitOfTime12Hours UnitOfTime = 12
	UnitOfTimeSecond  UnitOfTime = 13
	UnitOfTimeSecond2 UnitOfTime = 254
	UnitOfTimeMissing UnitOfTime = 255
)

const secondsPerDay = 24 * 60 * 60

// Seconds returns the length of one unit in seconds. Months count as one day
// and years as 365 days; the tables carry no calendar. ok is false for codes
// that are reserved or missing.
func (u UnitOfTime) Seconds() (seconds int64, ok bool) {
	switch u {
	case UnitOfTimeMinute:
		return 60, true
	case UnitOfTimeHour:
		return 60 * 60, true
	case UnitOfTimeDay, UnitOfTimeMonth:
		return secondsPerDay, true
	case UnitOfTimeYear:
		return secondsPerDay * 365, true
	case UnitOfTimeDecade:
		return secondsPerDay * 3652, true
	case UnitOfTimeNormal:
		return secondsPerDay * 10957, true
	case UnitOfTimeCentury:
		return secondsPerDay * 36524, true
	case UnitOfTime3Hours:
		return 3 * 60 * 60, true
	case UnitOfTime6Hours:
		return 6 * 60 * 60, true
	case UnitOfTime12Hours:
		return 12 * 60 * 60, true
	case UnitOfTimeSecond, UnitOfTimeSecond2:
		return 1, true
	default:
		return 0, false
	}
}

// Label formats n units compactly for summary names, e.g. "3Hr" or "30Yr".
// Multi-hour and multi-year units are expanded into hours and years.
func (u UnitOfTime) Label(n int64) string {
	name := "Unk"
	switch u {
	case UnitOfTimeMinute:
		name = "Min"
	case UnitOfTimeHour:
		name = "Hr"
	case UnitOfTimeDay:
		name = "Day"
	case UnitOfTimeMonth:
		name = "Mon"
	case UnitOfTimeYear:
		name = "Yr"
	case UnitOfTimeDecade:
		name, n = "Yr", n*10
	case UnitOfTimeNormal:
		name, n = "Yr", n*30
	case UnitOfTimeCentury:
		name, n = "Yr", n*100
	case UnitOfTime3Hours:
		name, n = "Hr", n*3
	case UnitOfTime6Hours:
		name, n = "Hr", n*6
	case UnitOfTime12Hours:
		name, n = "Hr", n*12
	case UnitOfTimeSecond, UnitOfTimeSecond2:
		name = "Sec"
	}
	return strconv.FormatInt(n, 10) + name
}

func (u UnitOfTime) String() string {
	switch u {
	case UnitOfTimeMinute:
		return "Minutes"
	case UnitOfTimeHour:
		return "Hours"
	case UnitOfTimeDay:
		return "Days"
	case UnitOfTimeMonth:
		return "Months"
	case UnitOfTimeYear:
		return "Years"
	case UnitOfTimeDecade:
		return "Decades"
	case UnitOfTimeNormal:
		return "Normals (30 Years)"
	case UnitOfTimeCentury:
		return "Centurys"
	case UnitOfTime3Hours:
		return "3 hour periods"
	case UnitOfTime6Hours:
		return "6 hours periods"
	case UnitOfTime12Hours:
		return "12 hours periods"
	case UnitOfTimeSecond, UnitOfTimeSecond2:
		return "Seconds"
	default:
		return "Unknown units"
	}
}
