package user

import "time"

// SearchOptions carries the caller-supplied search axes. Username matching is
// case-insensitive containment; the age bounds are in full years.
type SearchOptions struct {
	Username *string
	MinAge   *int
	MaxAge   *int
}

// birthdateWindow translates an age range into a birthdate window.
// minAge bounds the latest acceptable birthdate, maxAge the earliest.
// An inverted range (minAge > maxAge) drops the age predicate entirely.
func birthdateWindow(minAge, maxAge *int, now time.Time) (bornAfter, bornBefore *time.Time) {
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return nil, nil
	}
	if maxAge != nil {
		t := now.AddDate(-*maxAge, 0, 0)
		bornAfter = &t
	}
	if minAge != nil {
		t := now.AddDate(-*minAge, 0, 0)
		bornBefore = &t
	}
	return bornAfter, bornBefore
}
