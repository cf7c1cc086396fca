package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/util"
)

const defaultCacheTTL = time.Hour

var errNoChart = errors.New("natal chart could not be computed from the supplied birth data")

type birthFlags struct {
	date     string
	time     string
	timezone string
	lat      float64
	lon      float64
}

func (b *birthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.date, "date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&b.time, "time", "", "birth time, HH:MM local")
	cmd.Flags().StringVar(&b.timezone, "tz", "", "IANA timezone of the birth time (default UTC)")
	cmd.Flags().Float64Var(&b.lat, "lat", 0, "birth latitude, degrees north")
	cmd.Flags().Float64Var(&b.lon, "lon", 0, "birth longitude, degrees east")
	for _, name := range []string{"date", "time", "lat", "lon"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (b *birthFlags) birthData() astro.BirthData {
	lat, lon := b.lat, b.lon
	return astro.BirthData{
		Date:      b.date,
		Time:      b.time,
		Timezone:  b.timezone,
		Latitude:  &lat,
		Longitude: &lon,
	}
}

// parseDay reads an optional YYYY-MM-DD value, defaulting to today (UTC).
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return util.MidnightUTC(util.NowUTC()), nil
	}
	return util.ParseDate(raw)
}

func (c *cli) natalCmd() *cobra.Command {
	var birth birthFlags
	cmd := &cobra.Command{
		Use:   "natal",
		Short: "Compute a natal chart and its cosmic passport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := c.engine()
			if err != nil {
				return err
			}
			chart := engine.NatalChart(cmd.Context(), birth.birthData())
			if chart == nil {
				return errNoChart
			}
			return c.print(struct {
				Chart    *astro.NatalChart    `json:"chart"`
				Passport astro.CosmicPassport `json:"passport"`
			}{chart, engine.Passport(chart)})
		},
	}
	birth.register(cmd)
	return cmd
}

func (c *cli) transitsCmd() *cobra.Command {
	var (
		birth  birthFlags
		target string
	)
	cmd := &cobra.Command{
		Use:   "transits",
		Short: "Rank the strongest transits to a natal chart on a target date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(target)
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			chart := engine.NatalChart(cmd.Context(), birth.birthData())
			report, err := engine.Transits(cmd.Context(), chart, day)
			if err != nil {
				return err
			}
			return c.print(report)
		},
	}
	birth.register(cmd)
	cmd.Flags().StringVar(&target, "target", "", "target date, YYYY-MM-DD (default today)")
	return cmd
}

func (c *cli) passportCmd() *cobra.Command {
	var birth birthFlags
	cmd := &cobra.Command{
		Use:   "passport",
		Short: "Print the Sun/Moon cosmic passport for a birth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := c.engine()
			if err != nil {
				return err
			}
			return c.print(engine.Passport(engine.NatalChart(cmd.Context(), birth.birthData())))
		},
	}
	birth.register(cmd)
	return cmd
}

func (c *cli) atmosphereCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "atmosphere",
		Short: "Print the moon phase and moon sign of a dream date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			atmosphere, err := engine.Atmosphere(cmd.Context(), day)
			if err != nil {
				return err
			}
			return c.print(atmosphere)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "dream date, YYYY-MM-DD (default today)")
	return cmd
}
