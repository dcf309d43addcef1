package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Financial year helpers. The government accounting year runs April 1 to
// March 31 and is written "2025-26".

var fyPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// CurrentFinancialYear returns the financial year containing now.
func CurrentFinancialYear(now time.Time) string {
	year := now.Year()
	if now.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// FinancialYearBounds returns the inclusive start and end of the financial
// year label, or an error when the label is malformed.
func FinancialYearBounds(fy string) (time.Time, time.Time, error) {
	m := fyPattern.FindStringSubmatch(fy)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid financial year %q, expected YYYY-YY", fy)
	}

	startYear, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	suffix, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if (startYear+1)%100 != suffix {
		return time.Time{}, time.Time{}, fmt.Errorf("financial year %q is not consecutive", fy)
	}

	start := time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(startYear+1, time.March, 31, 23, 59, 59, 0, time.UTC)
	return start, end, nil
}

// ResolveFinancialYear validates the requested financial year and falls back
// to the current one when the query parameter is absent.
func ResolveFinancialYear(requested string, now time.Time) (string, time.Time, time.Time, error) {
	fy := requested
	if fy == "" {
		fy = CurrentFinancialYear(now)
	}
	start, end, err := FinancialYearBounds(fy)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return fy, start, end, nil
}
