package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Day of 2000-01-01 12:00 TT.
const J2000 = 2451545.0

// JulianDay converts an instant to a Julian Day on the UTC scale. Callers pass
// UTC midnight for date-only work and the exact birth instant for charts.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year := u.Year()
	month := int(u.Month())
	dayFraction := (float64(u.Hour()) +
		float64(u.Minute())/60 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/3600) / 24
	day := float64(u.Day()) + dayFraction

	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		day + b - 1524.5
}

// Centuries returns Julian centuries elapsed since J2000.
func Centuries(jd float64) float64 {
	return (jd - J2000) / 36525
}
