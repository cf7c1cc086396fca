package astro

import "strings"

// MsgPassportUnavailable is reported when Sun or Moon positions are missing.
const MsgPassportUnavailable = "Cosmic passport is not available yet: the natal chart needs the Sun and Moon positions, so add full birth data to the profile."

// ComposePassport derives the Sun/Moon sign capsule. It never fails: missing
// data produces a passport carrying only an error message.
func ComposePassport(chart *NatalChart) CosmicPassport {
	sun, okSun := chart.Position(Sun)
	moon, okMoon := chart.Position(Moon)
	if !okSun || !okMoon {
		return CosmicPassport{Error: MsgPassportUnavailable}
	}
	return CosmicPassport{
		Sun:  placement(Sun, sun.Longitude),
		Moon: placement(Moon, moon.Longitude),
	}
}

func placement(body Body, longitude float64) *SignPlacement {
	sign := SignOf(longitude)
	return &SignPlacement{
		Sign:     sign.Name,
		Symbol:   sign.Symbol,
		GuideKey: string(body) + "." + strings.ToLower(sign.Name),
	}
}
