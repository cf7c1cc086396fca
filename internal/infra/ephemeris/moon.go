package ephemeris

import (
	"math"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// moonEcliptic returns the geocentric ecliptic longitude, latitude and
// horizontal parallax of the Moon (low-precision almanac series, ~0.3°).
func moonEcliptic(jd float64) (lon, lat, parallax float64) {
	t := astro.Centuries(jd)
	lon = 218.32 + 481267.881*t +
		6.29*sinD(135.0+477198.87*t) -
		1.27*sinD(259.3-413335.36*t) +
		0.66*sinD(235.7+890534.22*t) +
		0.21*sinD(269.9+954397.74*t) -
		0.19*sinD(357.5+35999.05*t) -
		0.11*sinD(186.5+966404.03*t)
	lat = 5.13*sinD(93.3+483202.03*t) +
		0.28*sinD(228.2+960400.87*t) -
		0.28*sinD(318.3+6003.18*t) -
		0.17*sinD(217.6-407332.20*t)
	parallax = 0.9508 +
		0.0518*cosD(135.0+477198.87*t) +
		0.0095*cosD(259.3-413335.38*t) +
		0.0078*cosD(235.7+890534.23*t) +
		0.0028*cosD(269.9+954397.70*t)
	return norm360(lon), lat, parallax
}

// topocentricMoon shifts the geocentric Moon to an observer on the surface.
// Parallax is the only body where the shift exceeds a few arcseconds.
func topocentricMoon(jd, lon, lat, parallax, latitude, longitude float64) float64 {
	eps := obliquity(jd)
	ra, dec := eclipticToEquatorial(lon, lat, eps)
	r := 1 / sinD(parallax)

	x := r*cosD(dec)*cosD(ra) - cosD(latitude)*cosD(localSiderealTime(jd, longitude))
	y := r*cosD(dec)*sinD(ra) - cosD(latitude)*sinD(localSiderealTime(jd, longitude))
	z := r*sinD(dec) - sinD(latitude)

	topoRA := norm360(atan2D(y, x))
	topoDec := atan2D(z, math.Hypot(x, y))
	out, _ := equatorialToEcliptic(topoRA, topoDec, eps)
	return out
}
