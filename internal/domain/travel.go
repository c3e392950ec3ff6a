// Package domain contains the core data types for the travel calendar.
// This package has zero external dependencies and is imported by every other
// internal package (calendar, store, service, planner, handler).
package domain

import "time"

// TravelType is the kind of trip. Unknown values are kept as-is and rendered
// with the default glyph.
type TravelType string

const (
	TypeVacation  TravelType = "vacation"
	TypeBusiness  TravelType = "business"
	TypeAdventure TravelType = "adventure"
	TypeCultural  TravelType = "cultural"
	TypeFamily    TravelType = "family"
	TypeOther     TravelType = "other"
)

// TravelTypes lists the known types in form order.
var TravelTypes = []TravelType{TypeVacation, TypeBusiness, TypeAdventure, TypeCultural, TypeFamily, TypeOther}

// DefaultGlyph is shown for unknown travel types.
const DefaultGlyph = "✈️"

var glyphs = map[TravelType]string{
	TypeVacation:  "🏖️",
	TypeBusiness:  "💼",
	TypeAdventure: "🏔️",
	TypeCultural:  "🎭",
	TypeFamily:    "👨‍👩‍👧‍👦",
	TypeOther:     DefaultGlyph,
}

// Glyph returns the display emoji for the type.
func (t TravelType) Glyph() string {
	if g, ok := glyphs[t]; ok {
		return g
	}
	return DefaultGlyph
}

// Known reports whether t is one of TravelTypes.
func (t TravelType) Known() bool {
	_, ok := glyphs[t]
	return ok
}

// Travel is one travel plan. It is the only persisted entity; the whole
// collection is serialized as a JSON array under a single storage key.
// JSON names match the browser-storage format so existing data loads as-is.
type Travel struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"` // day originally clicked, informational only
	Location       string     `json:"location"`
	Type           TravelType `json:"type"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	Accommodation  string     `json:"accommodation"`
	Transportation string     `json:"transportation"`
	Budget         string     `json:"budget"`
	Notes          string     `json:"notes"`
}

// DateRange parses StartDate and EndDate. ok is false when either is unparsable.
func (t Travel) DateRange() (start, end time.Time, ok bool) {
	start, err := ParseDate(t.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = ParseDate(t.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Contains reports whether the calendar date d lies in [StartDate, EndDate].
// A record with an unparsable range never contains anything.
func (t Travel) Contains(d time.Time) bool {
	start, end, ok := t.DateRange()
	if !ok {
		return false
	}
	d = DateOf(d)
	return !d.Before(start) && !d.After(end)
}

// DurationDays is the inclusive trip length: (end - start in days) + 1.
// It can be zero or negative for inverted ranges loaded from storage.
func (t Travel) DurationDays() (int, bool) {
	start, end, ok := t.DateRange()
	if !ok {
		return 0, false
	}
	return DaysBetween(start, end) + 1, true
}

// Glyph returns the display emoji for the record's type.
func (t Travel) Glyph() string {
	return t.Type.Glyph()
}
