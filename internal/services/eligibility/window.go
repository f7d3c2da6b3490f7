// Package eligibility decides which of a merchant's orders belong to a
// settlement run for a given reference date.
package eligibility

import (
	"errors"
	"fmt"
	"time"

	"disburser/internal/models"
)

var ErrUnknownFrequency = errors.New("unknown disbursement frequency")

// Window is a half-open interval of order creation times: [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowFor computes the settlement window for one merchant and reference
// date. Daily merchants settle the single calendar day before the reference
// date. Weekly merchants settle the 7 days ending the day before the
// reference date, and only on the weekday matching their live_on date; on
// any other weekday ok is false and no window applies.
func WindowFor(merchant models.Merchant, referenceDate time.Time) (Window, bool, error) {
	end := StartOfDay(referenceDate)

	switch merchant.DisbursementFrequency {
	case models.FrequencyDaily:
		return Window{Start: end.AddDate(0, 0, -1), End: end}, true, nil
	case models.FrequencyWeekly:
		if referenceDate.Weekday() != merchant.LiveOn.Weekday() {
			return Window{}, false, nil
		}
		return Window{Start: end.AddDate(0, 0, -7), End: end}, true, nil
	default:
		return Window{}, false, fmt.Errorf("%w: %q", ErrUnknownFrequency, merchant.DisbursementFrequency)
	}
}

// ClampToLiveOn raises the window start so orders created before the
// merchant went live are never selected.
func ClampToLiveOn(w Window, liveOn time.Time) Window {
	liveStart := StartOfDay(liveOn)
	if liveStart.After(w.Start) {
		w.Start = liveStart
	}
	return w
}
