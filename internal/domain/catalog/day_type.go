package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// DayType selects which recommended-quantity column applies to a session.
// The string values are the keys used in persisted override documents.
type DayType string

const (
	DayTypeWeekday     DayType = "WEEKDAYS"
	DayTypeWeekend     DayType = "WEEKENDS"
	DayTypeLongWeekend DayType = "LONG WEEKENDS"
)

var dayTypeLabels = map[DayType]string{
	DayTypeWeekday:     "Weekday",
	DayTypeWeekend:     "Weekend",
	DayTypeLongWeekend: "Long Weekend",
}

// AllDayTypes returns the day types in display order
func AllDayTypes() []DayType {
	return []DayType{DayTypeWeekday, DayTypeWeekend, DayTypeLongWeekend}
}

// ParseDayType accepts the storage key, the label, or a loose spelling of either
// ("weekday", "long_weekend", "Long Weekends").
func ParseDayType(raw string) (DayType, bool) {
	needle := normalizeDayType(raw)
	if needle == "" {
		return "", false
	}
	for _, dt := range AllDayTypes() {
		if needle == normalizeDayType(string(dt)) || needle == normalizeDayType(dayTypeLabels[dt]) {
			return dt, true
		}
	}
	return "", false
}

func normalizeDayType(raw string) string {
	s := cases.Fold().String(strings.TrimSpace(raw))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSuffix(s, "s")
}

// IsValid reports whether the day type is one of the three known values
func (d DayType) IsValid() bool {
	_, ok := dayTypeLabels[d]
	return ok
}

// Label returns the human-readable name of the day type
func (d DayType) Label() string {
	if label, ok := dayTypeLabels[d]; ok {
		return label
	}
	return string(d)
}

// String returns the storage key
func (d DayType) String() string {
	return string(d)
}
