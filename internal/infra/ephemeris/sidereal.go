package ephemeris

import (
	"math"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

func sinD(x float64) float64 { return math.Sin(x * deg2rad) }
func cosD(x float64) float64 { return math.Cos(x * deg2rad) }
func tanD(x float64) float64 { return math.Tan(x * deg2rad) }

func atan2D(y, x float64) float64 { return math.Atan2(y, x) * rad2deg }
func asinD(x float64) float64     { return math.Asin(clamp(x, -1, 1)) * rad2deg }

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func norm360(x float64) float64 {
	out := math.Mod(x, 360)
	if out < 0 {
		out += 360
	}
	if out >= 360 {
		out = 0
	}
	return out
}

// wrap180 folds an angle difference into (-180, 180].
func wrap180(x float64) float64 {
	out := norm360(x)
	if out > 180 {
		out -= 360
	}
	return out
}

// obliquity of the ecliptic, degrees.
func obliquity(jd float64) float64 {
	return 23.439291 - 0.0130042*astro.Centuries(jd)
}

// gmst is Greenwich mean sidereal time in degrees.
func gmst(jd float64) float64 {
	t := astro.Centuries(jd)
	return norm360(280.46061837 + 360.98564736629*(jd-astro.J2000) + 0.000387933*t*t - t*t*t/38710000)
}

// localSiderealTime in degrees; east longitude positive.
func localSiderealTime(jd, longitude float64) float64 {
	return norm360(gmst(jd) + longitude)
}

// eclipticToEquatorial converts ecliptic (lon, lat) to (right ascension, declination).
func eclipticToEquatorial(lon, lat, eps float64) (ra, dec float64) {
	ra = norm360(atan2D(sinD(lon)*cosD(eps)-tanD(lat)*sinD(eps), cosD(lon)))
	dec = asinD(sinD(lat)*cosD(eps) + cosD(lat)*sinD(eps)*sinD(lon))
	return ra, dec
}

// equatorialToEcliptic is the inverse of eclipticToEquatorial.
func equatorialToEcliptic(ra, dec, eps float64) (lon, lat float64) {
	lon = norm360(atan2D(sinD(ra)*cosD(eps)+tanD(dec)*sinD(eps), cosD(ra)))
	lat = asinD(sinD(dec)*cosD(eps) - cosD(dec)*sinD(eps)*sinD(ra))
	return lon, lat
}
