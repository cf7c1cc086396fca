package astro

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/metrics"
)

const tracerName = "github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"

// Service exposes the astrology engine to the rest of the application.
type Service interface {
	// NatalChart returns nil when the chart cannot be computed.
	NatalChart(ctx context.Context, in BirthData) *NatalChart
	Transits(ctx context.Context, chart *NatalChart, date time.Time) (TransitReport, error)
	Atmosphere(ctx context.Context, date time.Time) (Atmosphere, error)
	Passport(chart *NatalChart) CosmicPassport
}

type service struct {
	cfg     Config
	natal   *NatalChartBuilder
	transit *TransitEngine
	query   positionQuerier
	metrics *metrics.Astro
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewService wires up the astrology domain.
func NewService(cfg Config, ephemeris EphemerisProvider, houses HouseProvider, scoring ScoringSource, m *metrics.Astro, logger *slog.Logger) Service {
	if cfg.TopTransits <= 0 {
		cfg.TopTransits = DefaultTopTransits
	}
	return &service{
		cfg:     cfg,
		natal:   NewNatalChartBuilder(ephemeris, houses, cfg, m),
		transit: NewTransitEngine(ephemeris, scoring, m),
		query:   positionQuerier{provider: ephemeris, metrics: m},
		metrics: m,
		logger:  logger.With("component", "astro.service"),
		tracer:  otel.Tracer(tracerName),
	}
}

func (s *service) NatalChart(ctx context.Context, in BirthData) *NatalChart {
	ctx, span := s.tracer.Start(ctx, "astro.NatalChart")
	defer span.End()

	chart, err := s.natal.Build(ctx, in)
	switch {
	case err == nil:
		s.metrics.NatalChart(metrics.ResultOK)
		span.SetAttributes(attribute.Int("astro.planets", len(chart.Planets)))
		return chart
	case errors.Is(err, ErrInsufficientBirthData):
		s.metrics.NatalChart(metrics.ResultInsufficient)
		s.logger.Debug("natal chart skipped", "reason", err.Error())
		span.SetAttributes(attribute.Bool("astro.insufficient", true))
		return nil
	default:
		s.metrics.NatalChart(metrics.ResultFailed)
		s.logger.Warn("natal chart computation failed", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "natal chart failed")
		return nil
	}
}

func (s *service) Transits(ctx context.Context, chart *NatalChart, date time.Time) (TransitReport, error) {
	ctx, span := s.tracer.Start(ctx, "astro.Transits", trace.WithAttributes(
		attribute.String("astro.date", date.UTC().Format("2006-01-02")),
	))
	defer span.End()

	report, err := s.transit.Rank(ctx, chart, date, s.cfg.TopTransits)
	if err != nil {
		s.metrics.TransitRanking(metrics.ResultFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transit ranking failed")
		return TransitReport{}, err
	}
	if report.Insufficient() {
		s.metrics.TransitRanking(metrics.ResultInsufficient)
		return report, nil
	}
	s.metrics.TransitRanking(metrics.ResultOK)
	span.SetAttributes(attribute.Int("astro.insights", len(report.Insights)))
	return report, nil
}

func (s *service) Atmosphere(ctx context.Context, date time.Time) (Atmosphere, error) {
	ctx, span := s.tracer.Start(ctx, "astro.Atmosphere")
	defer span.End()

	atmosphere, err := s.query.atmosphere(ctx, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "atmosphere failed")
		return Atmosphere{}, err
	}
	return atmosphere, nil
}

func (s *service) Passport(chart *NatalChart) CosmicPassport {
	return ComposePassport(chart)
}
