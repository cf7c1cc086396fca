package ephemeris

import (
	"errors"
	"math"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

var errPlacidusUndefined = errors.New("placidus undefined at this latitude")

// angles returns the midheaven and ascendant for a sidereal time and latitude.
func angles(ramc, latitude, eps float64) (mc, asc float64) {
	mc = norm360(atan2D(sinD(ramc), cosD(ramc)*cosD(eps)))
	asc = norm360(atan2D(cosD(ramc), -(sinD(ramc)*cosD(eps) + tanD(latitude)*sinD(eps))))
	return mc, asc
}

// raToLongitude projects a right ascension onto the ecliptic.
func raToLongitude(ra, eps float64) float64 {
	return norm360(atan2D(sinD(ra), cosD(ra)*cosD(eps)))
}

func computeHouses(jd float64, observer astro.Observer, system astro.HouseSystem) astro.HouseResult {
	eps := obliquity(jd)
	ramc := localSiderealTime(jd, observer.Longitude)
	mc, asc := angles(ramc, observer.Latitude, eps)

	var cusps []float64
	switch system {
	case astro.HouseEqual:
		cusps = equalCusps(asc)
	case astro.HouseWholeSign:
		cusps = equalCusps(math.Floor(asc/30) * 30)
	case astro.HousePorphyry:
		cusps = porphyryCusps(mc, asc)
	default:
		var err error
		cusps, err = placidusCusps(ramc, observer.Latitude, eps, mc, asc)
		if err != nil {
			cusps = porphyryCusps(mc, asc)
		}
	}
	return astro.HouseResult{Cusps: cusps, Ascendant: asc}
}

func equalCusps(start float64) []float64 {
	cusps := make([]float64, 12)
	for i := range cusps {
		cusps[i] = norm360(start + float64(i)*30)
	}
	return cusps
}

// fromQuadrants lays out the twelve cusps from the angles and the four
// intermediate cusps 11, 12, 2 and 3.
func fromQuadrants(mc, asc, c11, c12, c2, c3 float64) []float64 {
	return []float64{
		norm360(asc), norm360(c2), norm360(c3),
		norm360(mc + 180), norm360(c11 + 180), norm360(c12 + 180),
		norm360(asc + 180), norm360(c2 + 180), norm360(c3 + 180),
		norm360(mc), norm360(c11), norm360(c12),
	}
}

func porphyryCusps(mc, asc float64) []float64 {
	upper := norm360(asc - mc)
	lower := norm360(mc + 180 - asc)
	return fromQuadrants(mc, asc,
		mc+upper/3, mc+2*upper/3,
		asc+lower/3, asc+2*lower/3,
	)
}

func placidusCusps(ramc, latitude, eps, mc, asc float64) ([]float64, error) {
	c11, err := placidusCusp(ramc, latitude, eps, 1.0/3, true)
	if err != nil {
		return nil, err
	}
	c12, err := placidusCusp(ramc, latitude, eps, 2.0/3, true)
	if err != nil {
		return nil, err
	}
	c2, err := placidusCusp(ramc, latitude, eps, 2.0/3, false)
	if err != nil {
		return nil, err
	}
	c3, err := placidusCusp(ramc, latitude, eps, 1.0/3, false)
	if err != nil {
		return nil, err
	}
	return fromQuadrants(mc, asc, c11, c12, c2, c3), nil
}

// placidusCusp iterates the trisection of the semi-arc of the cusp's own
// declination. Diurnal cusps (11, 12) trisect the day arc east of the MC;
// nocturnal cusps (2, 3) the night arc west of the IC.
func placidusCusp(ramc, latitude, eps, fraction float64, diurnal bool) (float64, error) {
	ra := ramc + fraction*90
	if !diurnal {
		ra = ramc + 180 - fraction*90
	}
	lon := raToLongitude(ra, eps)
	for range 50 {
		dec := asinD(sinD(eps) * sinD(lon))
		x := tanD(latitude) * tanD(dec)
		if math.Abs(x) > 1 {
			return 0, errPlacidusUndefined
		}
		ad := asinD(x)
		if diurnal {
			ra = ramc + fraction*(90+ad)
		} else {
			ra = ramc + 180 - fraction*(90-ad)
		}
		next := raToLongitude(ra, eps)
		if math.Abs(wrap180(next-lon)) < 1e-8 {
			return next, nil
		}
		lon = next
	}
	return lon, nil
}
