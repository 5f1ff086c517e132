package consts

import "time"

const (
	// ONSET_WINDOW_DAYS is the half-width of the infectious window
	// around a positive report's onset date, inclusive on both ends.
	ONSET_WINDOW_DAYS = 15

	// COORDINATE_DIGITS truncates latitude/longitude for co-presence
	// matching; four decimal places is roughly 11 meters.
	COORDINATE_DIGITS = 4

	// RECONCILE_TIME_DELTA widens a visit's time span when a report
	// correction re-scans historical co-located visits.
	RECONCILE_TIME_DELTA = 3 * time.Hour

	// TAGGING_MERGE_DELTA is the gap within which a new ping is folded
	// into an existing visit instead of opening a new one.
	TAGGING_MERGE_DELTA = 10 * time.Minute

	// CROSSING_TIME_DELTA widens an infected visit's span when a fresh
	// check-in is tested against it.
	CROSSING_TIME_DELTA = 8 * time.Minute
)
