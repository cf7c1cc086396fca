package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/ephemcache"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/ephemeris"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/infra/scoring"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/logger"
)

// cli carries the state shared by every subcommand. Settings resolve from
// flags, then MORPHEUS_* environment variables, then the optional config file.
type cli struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "astro",
		Short:         "Run the Morpheus astrology engine from the command line",
		Long:          "astro computes natal charts, transit rankings, cosmic passports and dream atmospheres in-process and prints them as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initConfig()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml)")
	flags.String("house-system", string(astro.HousePlacidus), "house system: placidus, porphyry, equal or whole_sign")
	flags.Int("top", astro.DefaultTopTransits, "number of transit insights to keep")
	flags.String("scoring-file", "", "YAML scoring table overriding the built-in weights")
	flags.String("log-level", "warn", "log level written to stderr")
	for _, name := range []string{"config", "house-system", "top", "scoring-file", "log-level"} {
		_ = c.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		c.natalCmd(),
		c.transitsCmd(),
		c.passportCmd(),
		c.atmosphereCmd(),
	)
	return root
}

func (c *cli) initConfig() error {
	c.v.SetEnvPrefix("MORPHEUS")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	system := astro.HouseSystem(strings.ToLower(c.v.GetString("house-system")))
	if !system.Valid() {
		return fmt.Errorf("unsupported house system %q", system)
	}
	return nil
}

func (c *cli) logger() *slog.Logger {
	return logger.NewWithWriter(c.errOut, c.v.GetString("log-level"))
}

// engine assembles the same stack the HTTP service uses, minus the remote
// cache and metrics.
func (c *cli) engine() (astro.Service, error) {
	log := c.logger()
	table := astro.DefaultScoring()
	if path := strings.TrimSpace(c.v.GetString("scoring-file")); path != "" {
		loaded, err := scoring.Load(path, table)
		if err != nil {
			return nil, err
		}
		table = loaded
	}
	model := ephemeris.NewAnalytical()
	positions := ephemeris.NewCached(model, ephemcache.NewMemoryCache(), defaultCacheTTL, log)
	cfg := astro.Config{
		HouseSystem:         astro.HouseSystem(strings.ToLower(c.v.GetString("house-system"))),
		TopTransits:         c.v.GetInt("top"),
		DefaultTimezone:     "UTC",
		ValidateCoordinates: true,
	}
	return astro.NewService(cfg, positions, model, astro.NewStaticScoring(table), nil, log), nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
