package dream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	apperrors "github.com/FILIWILY/morpheus-dream-app-sub000/pkg/errors"
	"github.com/FILIWILY/morpheus-dream-app-sub000/pkg/util"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxNarrative     = 20000
)

// Service records dreams together with their astrological context.
type Service interface {
	Create(ctx context.Context, userID string, req CreateDreamRequest) (Dream, error)
	Get(ctx context.Context, userID, id string) (Dream, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]Dream, error)
}

type service struct {
	cfg      Config
	repo     Repository
	profiles ProfileReader
	astro    astro.Service
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires up the dream domain.
func NewService(cfg Config, repo Repository, profiles ProfileReader, engine astro.Service, logger *slog.Logger) Service {
	if cfg.DefaultListLimit <= 0 {
		cfg.DefaultListLimit = defaultListLimit
	}
	if cfg.MaxListLimit <= 0 {
		cfg.MaxListLimit = maxListLimit
	}
	if cfg.MaxNarrative <= 0 {
		cfg.MaxNarrative = maxNarrative
	}
	return &service{
		cfg:      cfg,
		repo:     repo,
		profiles: profiles,
		astro:    engine,
		logger:   logger.With("component", "dream.service"),
		now:      util.NowUTC,
		newID:    uuid.NewString,
	}
}

// Create validates and stores a dream. Astrology failures are logged and
// replaced by placeholder text; they never block the save.
func (s *service) Create(ctx context.Context, userID string, req CreateDreamRequest) (Dream, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dream{}, apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}
	narrative := strings.TrimSpace(req.Narrative)
	if narrative == "" {
		return Dream{}, apperrors.Wrap(apperrors.CodeInvalidInput, "narrative is required", nil)
	}
	if utf8.RuneCountInString(narrative) > s.cfg.MaxNarrative {
		return Dream{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("narrative exceeds %d characters", s.cfg.MaxNarrative), nil)
	}

	now := s.now()
	date := util.MidnightUTC(now)
	if raw := strings.TrimSpace(req.Date); raw != "" {
		parsed, err := util.ParseDate(raw)
		if err != nil {
			return Dream{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
		}
		date = parsed
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Dream of " + date.Format(util.DateLayout)
	}

	d := Dream{
		ID:        s.newID(),
		UserID:    userID,
		Date:      date.Format(util.DateLayout),
		Title:     title,
		Narrative: narrative,
		Astrology: s.astrology(ctx, userID, date),
		CreatedAt: now,
	}
	saved, err := s.repo.Create(ctx, d)
	if err != nil {
		return Dream{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save dream", err)
	}
	s.logger.Info("dream recorded", "user_id", userID, "dream_id", saved.ID, "date", saved.Date)
	return saved, nil
}

func (s *service) astrology(ctx context.Context, userID string, date time.Time) Astrology {
	var chart *astro.NatalChart
	p, found, err := s.profiles.Get(ctx, userID)
	switch {
	case err != nil:
		s.logger.Warn("profile lookup failed, continuing without natal chart", "user_id", userID, "error", err)
	case found:
		chart = p.NatalChart
	}

	var out Astrology
	var g errgroup.Group
	g.Go(func() error {
		atmosphere, err := s.astro.Atmosphere(ctx, date)
		if err != nil {
			s.logger.Warn("dream atmosphere unavailable", "user_id", userID, "error", err)
			out.AtmosphereNote = MsgAtmosphereUnavailable
			return nil
		}
		out.Atmosphere = &atmosphere
		return nil
	})
	g.Go(func() error {
		report, err := s.astro.Transits(ctx, chart, date)
		if err != nil {
			s.logger.Warn("transit ranking failed", "user_id", userID, "error", err)
			report = astro.TransitReport{Error: MsgTransitsUnavailable}
		}
		out.Transits = report
		return nil
	})
	_ = g.Wait()

	out.Passport = s.astro.Passport(chart)
	out.Context = renderContext(out)
	return out
}

func (s *service) Get(ctx context.Context, userID, id string) (Dream, error) {
	d, found, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Dream{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load dream", err)
	}
	if !found {
		return Dream{}, apperrors.Wrap(apperrors.CodeNotFound, "dream not found", nil)
	}
	return d, nil
}

// List returns dreams newest first.
func (s *service) List(ctx context.Context, userID string, filter ListFilter) ([]Dream, error) {
	for _, raw := range []string{filter.From, filter.To} {
		if raw == "" {
			continue
		}
		if _, err := util.ParseDate(raw); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "date filters must be formatted as YYYY-MM-DD", err)
		}
	}
	filter.From = strings.TrimSpace(filter.From)
	filter.To = strings.TrimSpace(filter.To)
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "from must not be after to", nil)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = s.cfg.DefaultListLimit
	case filter.Limit > s.cfg.MaxListLimit:
		filter.Limit = s.cfg.MaxListLimit
	}

	dreams, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list dreams", err)
	}
	if dreams == nil {
		dreams = []Dream{}
	}
	return dreams, nil
}
