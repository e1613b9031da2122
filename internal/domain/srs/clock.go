// Package srs implements the spaced-repetition scheduling engine: the
// schedule clock, the tunable rating policy, and the pure algorithm that
// turns a rating into a card's next review schedule.
package srs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimezone is returned when a time zone identifier is blank or
// not recognized by the platform zone database.
var ErrInvalidTimezone = errors.New("invalid time zone")

// Today converts a UTC instant into the calendar date in the given zone,
// normalized to midnight UTC for storage and comparison.
//
// The result is written to a card's NextReviewDate whenever its schedule
// changes, and computed again at selection time to decide whether the card is
// due. Storing the precomputed date keeps the due check a cheap date
// comparison instead of an instant comparison vulnerable to time-zone skew
// across a user's day boundary.
func Today(nowUTC time.Time, timezoneID string) (time.Time, error) {
	// time.LoadLocation("") silently means Local, so reject blanks explicitly.
	if strings.TrimSpace(timezoneID) == "" {
		return time.Time{}, fmt.Errorf("%w: blank zone identifier", ErrInvalidTimezone)
	}

	loc, err := time.LoadLocation(timezoneID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, timezoneID)
	}

	y, m, d := nowUTC.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
