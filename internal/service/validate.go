package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// Normalize trims every text field, defaults an empty type to "other" and an
// empty travel date to the start date.
func Normalize(t domain.Travel) domain.Travel {
	t.Date = strings.TrimSpace(t.Date)
	t.Location = strings.TrimSpace(t.Location)
	t.Type = domain.TravelType(strings.TrimSpace(string(t.Type)))
	t.StartDate = strings.TrimSpace(t.StartDate)
	t.EndDate = strings.TrimSpace(t.EndDate)
	t.Accommodation = strings.TrimSpace(t.Accommodation)
	t.Transportation = strings.TrimSpace(t.Transportation)
	t.Budget = strings.TrimSpace(t.Budget)
	t.Notes = strings.TrimSpace(t.Notes)
	if t.Type == "" {
		t.Type = domain.TypeOther
	}
	if t.Date == "" {
		t.Date = t.StartDate
	}
	return t
}

// Validate enforces the input rules for a travel record. It returns every
// failing field joined together; each one is a *domain.FieldError, so
// errors.Is(err, domain.ErrValidation) holds.
//   - Location must be non-empty.
//   - Date, StartDate and EndDate must be YYYY-MM-DD calendar dates.
//   - EndDate must not be before StartDate (a one-day trip is valid).
//   - Budget, if set, must be a non-negative number.
//
// Unknown types are accepted and displayed with the default glyph.
func Validate(t domain.Travel) error {
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, &domain.FieldError{Field: field, Message: msg})
	}

	if t.Location == "" {
		fail("location", "is required")
	}
	if t.Date != "" {
		if _, err := domain.ParseDate(t.Date); err != nil {
			fail("date", "must be a date (YYYY-MM-DD)")
		}
	}
	start, startErr := domain.ParseDate(t.StartDate)
	if startErr != nil {
		fail("startDate", "must be a date (YYYY-MM-DD)")
	}
	end, endErr := domain.ParseDate(t.EndDate)
	if endErr != nil {
		fail("endDate", "must be a date (YYYY-MM-DD)")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		fail("endDate", "must not be before startDate")
	}
	if t.Budget != "" {
		if !validBudget(t.Budget) {
			fail("budget", "must be a non-negative number")
		}
	}

	return errors.Join(errs...)
}

// validBudget accepts plain non-negative decimals such as "1250" or "99.5".
// Signs, exponents, hex floats, NaN and Inf are rejected.
func validBudget(s string) bool {
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot && len(s) > 1:
			dot = true
		default:
			return false
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && n >= 0 && !math.IsInf(n, 0) && !math.IsNaN(n)
}

// FieldErrors flattens err into per-field messages, keyed by field name.
// Non-field errors are ignored.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if fe, ok := e.(*domain.FieldError); ok {
			if _, seen := out[fe.Field]; !seen {
				out[fe.Field] = fe.Message
			}
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
