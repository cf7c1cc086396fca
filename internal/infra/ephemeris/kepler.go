package ephemeris

import (
	"math"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

// orbitalElements are J2000 mean elements and their rates per Julian century,
// valid 1800-2050 (Standish, JPL approximate positions of the planets).
type orbitalElements struct {
	a, e, i, l, peri, node                   float64
	aDot, eDot, iDot, lDot, periDot, nodeDot float64
}

var (
	mercuryElements = orbitalElements{
		0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081,
	}
	venusElements = orbitalElements{
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	}
	earthMoonElements = orbitalElements{
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0,
	}
	marsElements = orbitalElements{
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	}
	jupiterElements = orbitalElements{
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	}
	saturnElements = orbitalElements{
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	}
	uranusElements = orbitalElements{
		19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589,
	}
	neptuneElements = orbitalElements{
		30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664,
	}
	plutoElements = orbitalElements{
		39.48211675, 0.24882730, 17.14001206, 238.92903833, 224.06891629, 110.30393684,
		-0.00031596, 0.00005170, 0.00004818, 145.20780515, -0.04062942, -0.01183482,
	}
)

// precessionRate is general precession in longitude, degrees per century.
const precessionRate = 1.396971

type vector struct{ x, y, z float64 }

func (v vector) sub(o vector) vector { return vector{v.x - o.x, v.y - o.y, v.z - o.z} }

// heliocentric returns J2000 ecliptic rectangular coordinates in AU.
func (el orbitalElements) heliocentric(t float64) vector {
	a := el.a + el.aDot*t
	e := el.e + el.eDot*t
	inc := el.i + el.iDot*t
	l := el.l + el.lDot*t
	peri := el.peri + el.periDot*t
	node := el.node + el.nodeDot*t

	omega := peri - node
	m := wrap180(l - peri)
	ecc := solveKepler(m, e)

	xp := a * (cosD(ecc) - e)
	yp := a * math.Sqrt(1-e*e) * sinD(ecc)

	cw, sw := cosD(omega), sinD(omega)
	cn, sn := cosD(node), sinD(node)
	ci, si := cosD(inc), sinD(inc)

	return vector{
		x: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		z: sw*si*xp + cw*si*yp,
	}
}

// solveKepler solves M = E - e sin E for the eccentric anomaly, all in degrees.
func solveKepler(m, e float64) float64 {
	eStar := e * rad2deg
	ecc := m + eStar*sinD(m)
	for range 12 {
		dm := m - (ecc - eStar*sinD(ecc))
		de := dm / (1 - e*cosD(ecc))
		ecc += de
		if math.Abs(de) < 1e-9 {
			break
		}
	}
	return ecc
}

// geocentricLongitude returns the apparent-of-date ecliptic longitude of a
// planet, or of the Sun when el is nil.
func geocentricLongitude(el *orbitalElements, jd float64) float64 {
	t := astro.Centuries(jd)
	earth := earthMoonElements.heliocentric(t)
	var v vector
	if el == nil {
		v = vector{-earth.x, -earth.y, -earth.z}
	} else {
		v = el.heliocentric(t).sub(earth)
	}
	return norm360(atan2D(v.y, v.x) + precessionRate*t)
}
