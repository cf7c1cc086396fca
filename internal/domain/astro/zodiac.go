package astro

import (
	"math"
	"strings"
)

// ZodiacSign is one of the twelve 30° ecliptic segments.
type ZodiacSign struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// GuideKey is the narrative lookup key for the sign.
func (z ZodiacSign) GuideKey() string {
	return "sign." + strings.ToLower(z.Name)
}

var zodiacSigns = [12]ZodiacSign{
	{Index: 0, Name: "Aries", Symbol: "♈"},
	{Index: 1, Name: "Taurus", Symbol: "♉"},
	{Index: 2, Name: "Gemini", Symbol: "♊"},
	{Index: 3, Name: "Cancer", Symbol: "♋"},
	{Index: 4, Name: "Leo", Symbol: "♌"},
	{Index: 5, Name: "Virgo", Symbol: "♍"},
	{Index: 6, Name: "Libra", Symbol: "♎"},
	{Index: 7, Name: "Scorpio", Symbol: "♏"},
	{Index: 8, Name: "Sagittarius", Symbol: "♐"},
	{Index: 9, Name: "Capricorn", Symbol: "♑"},
	{Index: 10, Name: "Aquarius", Symbol: "♒"},
	{Index: 11, Name: "Pisces", Symbol: "♓"},
}

// Normalize folds any angle into [0, 360).
func Normalize(deg float64) float64 {
	out := math.Mod(deg, 360)
	if out < 0 {
		out += 360
	}
	if out >= 360 {
		out = 0
	}
	return out
}

// SignOf classifies an ecliptic longitude. 360° wraps to Aries.
func SignOf(longitude float64) ZodiacSign {
	idx := int(math.Floor(Normalize(longitude)/30)) % 12
	return zodiacSigns[idx]
}
