package dream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
	apperrors "github.com/FILIWILY/morpheus-dream-app-sub000/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubRepo struct {
	dreams   []Dream
	err      error
	lastList ListFilter
}

func (r *stubRepo) Create(_ context.Context, d Dream) (Dream, error) {
	if r.err != nil {
		return Dream{}, r.err
	}
	r.dreams = append(r.dreams, d)
	return d, nil
}

func (r *stubRepo) Get(_ context.Context, userID, id string) (Dream, bool, error) {
	if r.err != nil {
		return Dream{}, false, r.err
	}
	for _, d := range r.dreams {
		if d.UserID == userID && d.ID == id {
			return d, true, nil
		}
	}
	return Dream{}, false, nil
}

func (r *stubRepo) List(_ context.Context, userID string, filter ListFilter) ([]Dream, error) {
	r.lastList = filter
	if r.err != nil {
		return nil, r.err
	}
	var out []Dream
	for _, d := range r.dreams {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type stubProfiles struct {
	profiles map[string]profile.Profile
	err      error
}

func (p stubProfiles) Get(_ context.Context, userID string) (profile.Profile, bool, error) {
	if p.err != nil {
		return profile.Profile{}, false, p.err
	}
	pr, ok := p.profiles[userID]
	return pr, ok, nil
}

type stubAstro struct {
	atmosphereErr error
	transitErr    error
	transitDate   time.Time
}

func (s *stubAstro) NatalChart(context.Context, astro.BirthData) *astro.NatalChart { return nil }

func (s *stubAstro) Transits(_ context.Context, chart *astro.NatalChart, date time.Time) (astro.TransitReport, error) {
	s.transitDate = date
	if s.transitErr != nil {
		return astro.TransitReport{}, s.transitErr
	}
	if chart == nil {
		return astro.TransitReport{Error: astro.MsgInsufficientNatalData}, nil
	}
	return astro.TransitReport{
		Insights: []astro.TransitAspect{
			{TransitBody: astro.Pluto, NatalBody: astro.Sun, AspectType: astro.Trine, Orb: 0.77, Score: 69},
		},
		Explanation: astro.TransitExplanation,
	}, nil
}

func (s *stubAstro) Atmosphere(_ context.Context, date time.Time) (astro.Atmosphere, error) {
	if s.atmosphereErr != nil {
		return astro.Atmosphere{}, s.atmosphereErr
	}
	return astro.AtmosphereOf(date,
		astro.CelestialPosition{Body: astro.Moon, Longitude: 100},
		astro.CelestialPosition{Body: astro.Sun, Longitude: 10}), nil
}

func (s *stubAstro) Passport(chart *astro.NatalChart) astro.CosmicPassport {
	return astro.ComposePassport(chart)
}

func withChart() stubProfiles {
	return stubProfiles{profiles: map[string]profile.Profile{
		"u1": {UserID: "u1", NatalChart: &astro.NatalChart{Planets: map[astro.Body]astro.CelestialPosition{
			astro.Sun:  {Body: astro.Sun, Longitude: 62},
			astro.Moon: {Body: astro.Moon, Longitude: 48},
		}}},
	}}
}

func newTestService(repo Repository, profiles ProfileReader, engine astro.Service) *service {
	svc := NewService(Config{}, repo, profiles, engine, newTestLogger()).(*service)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC) }
	svc.newID = func() string { return "dream-1" }
	return svc
}

func TestCreateAttachesAstrology(t *testing.T) {
	repo := &stubRepo{}
	engine := &stubAstro{}
	svc := newTestService(repo, withChart(), engine)

	d, err := svc.Create(context.Background(), "u1", CreateDreamRequest{Date: "2024-03-09", Narrative: "  I was flying over water.  "})
	require.NoError(t, err)
	require.Equal(t, "dream-1", d.ID)
	require.Equal(t, "2024-03-09", d.Date)
	require.Equal(t, "Dream of 2024-03-09", d.Title)
	require.Equal(t, "I was flying over water.", d.Narrative)
	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), engine.transitDate)

	require.NotNil(t, d.Astrology.Atmosphere)
	require.Equal(t, "First Quarter", d.Astrology.Atmosphere.MoonPhase.Name)
	require.Len(t, d.Astrology.Transits.Insights, 1)
	require.True(t, d.Astrology.Passport.Available())
	require.Contains(t, d.Astrology.Context, "Moon phase: First Quarter [moon_phase.first_quarter]")
	require.Contains(t, d.Astrology.Context, "Sun sign: Gemini [sun.gemini]")
	require.Contains(t, d.Astrology.Context, "- Pluto trine natal Sun (orb 0.8°, score 69)")
	require.Len(t, repo.dreams, 1)
}

func TestCreateDefaultsDateToToday(t *testing.T) {
	svc := newTestService(&stubRepo{}, withChart(), &stubAstro{})

	d, err := svc.Create(context.Background(), "u1", CreateDreamRequest{Title: "Sea", Narrative: "waves"})
	require.NoError(t, err)
	require.Equal(t, "2024-03-10", d.Date)
	require.Equal(t, "Sea", d.Title)
}

func TestCreateDegradesAstrologyFailures(t *testing.T) {
	engine := &stubAstro{
		atmosphereErr: apperrors.Wrap(apperrors.CodeEphemerisUnavailable, "ephemeris query failed", astro.ErrEphemerisUnavailable),
		transitErr:    apperrors.Wrap(apperrors.CodeEphemerisUnavailable, "ephemeris query failed", astro.ErrEphemerisUnavailable),
	}
	svc := newTestService(&stubRepo{}, stubProfiles{err: errors.New("db down")}, engine)

	d, err := svc.Create(context.Background(), "u1", CreateDreamRequest{Narrative: "a locked door"})
	require.NoError(t, err)
	require.Nil(t, d.Astrology.Atmosphere)
	require.Equal(t, MsgAtmosphereUnavailable, d.Astrology.AtmosphereNote)
	require.Equal(t, MsgTransitsUnavailable, d.Astrology.Transits.Error)
	require.False(t, d.Astrology.Passport.Available())
	require.Contains(t, d.Astrology.Context, MsgAtmosphereUnavailable)
	require.Contains(t, d.Astrology.Context, MsgTransitsUnavailable)
}

func TestCreateWithoutProfile(t *testing.T) {
	svc := newTestService(&stubRepo{}, stubProfiles{}, &stubAstro{})

	d, err := svc.Create(context.Background(), "u2", CreateDreamRequest{Narrative: "a garden"})
	require.NoError(t, err)
	require.True(t, d.Astrology.Transits.Insufficient())
	require.Equal(t, astro.MsgPassportUnavailable, d.Astrology.Passport.Error)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(&stubRepo{}, stubProfiles{}, &stubAstro{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateDreamRequest{Narrative: "   "})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Create(ctx, "u1", CreateDreamRequest{Narrative: "x", Date: "10/03/2024"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Create(ctx, "", CreateDreamRequest{Narrative: "x"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Create(ctx, "u1", CreateDreamRequest{Narrative: strings.Repeat("z", maxNarrative+1)})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestCreateStorageFailure(t *testing.T) {
	svc := newTestService(&stubRepo{err: errors.New("disk full")}, stubProfiles{}, &stubAstro{})

	_, err := svc.Create(context.Background(), "u1", CreateDreamRequest{Narrative: "x"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func TestGetAndList(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo, stubProfiles{}, &stubAstro{})
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", CreateDreamRequest{Narrative: "x", Date: "2024-03-01"})
	require.NoError(t, err)

	d, err := svc.Get(ctx, "u1", "dream-1")
	require.NoError(t, err)
	require.Equal(t, "2024-03-01", d.Date)

	_, err = svc.Get(ctx, "u2", "dream-1")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	dreams, err := svc.List(ctx, "u1", ListFilter{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, dreams, 1)
	require.Equal(t, maxListLimit, repo.lastList.Limit)

	dreams, err = svc.List(ctx, "nobody", ListFilter{})
	require.NoError(t, err)
	require.NotNil(t, dreams)
	require.Empty(t, dreams)
	require.Equal(t, defaultListLimit, repo.lastList.Limit)

	_, err = svc.List(ctx, "u1", ListFilter{From: "2024-03-05", To: "2024-03-01"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	_, err = svc.List(ctx, "u1", ListFilter{From: "yesterday"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}
