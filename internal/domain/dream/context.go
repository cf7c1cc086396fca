package dream

import (
	"fmt"
	"strings"
)

const (
	MsgAtmosphereUnavailable = "The sky for this night could not be calculated."
	MsgTransitsUnavailable   = "Personal transits for this night could not be calculated."
)

// renderContext flattens the astrology into the plain-text block that prompt
// assembly embeds.
func renderContext(a Astrology) string {
	var b strings.Builder
	if a.Atmosphere != nil {
		fmt.Fprintf(&b, "Moon phase: %s [%s]\n", a.Atmosphere.MoonPhase.Name, a.Atmosphere.MoonPhase.GuideKey)
		fmt.Fprintf(&b, "Moon sign: %s %s [%s]\n", a.Atmosphere.MoonSign.Name, a.Atmosphere.MoonSign.Symbol, a.Atmosphere.MoonSign.GuideKey)
	} else {
		fmt.Fprintf(&b, "Moon: %s\n", a.AtmosphereNote)
	}

	if a.Passport.Available() {
		fmt.Fprintf(&b, "Sun sign: %s [%s]\n", a.Passport.Sun.Sign, a.Passport.Sun.GuideKey)
		fmt.Fprintf(&b, "Moon natal sign: %s [%s]\n", a.Passport.Moon.Sign, a.Passport.Moon.GuideKey)
	} else {
		fmt.Fprintf(&b, "Passport: %s\n", a.Passport.Error)
	}

	switch {
	case a.Transits.Insufficient():
		fmt.Fprintf(&b, "Transits: %s\n", a.Transits.Error)
	case len(a.Transits.Insights) == 0:
		b.WriteString("Transits: no major contacts\n")
	default:
		b.WriteString("Transits:\n")
		for _, in := range a.Transits.Insights {
			fmt.Fprintf(&b, "- %s %s natal %s (orb %.1f°, score %d)\n",
				title(string(in.TransitBody)), in.AspectType, title(string(in.NatalBody)), in.Orb, in.Score)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
