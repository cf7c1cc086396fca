package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	apperrors "github.com/FILIWILY/morpheus-dream-app-sub000/pkg/errors"
)

// Service manages user profiles and the astrology derived from them.
type Service interface {
	Save(ctx context.Context, userID string, req UpdateProfileRequest) (Profile, error)
	Get(ctx context.Context, userID string) (Profile, error)
	Passport(ctx context.Context, userID string) (astro.CosmicPassport, error)
	Transits(ctx context.Context, userID string, date time.Time) (astro.TransitReport, error)
}

type service struct {
	repo   Repository
	astro  astro.Service
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the profile domain.
func NewService(repo Repository, engine astro.Service, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		astro:  engine,
		logger: logger.With("component", "profile.service"),
		now:    time.Now,
	}
}

// Save merges the update, recomputes the natal chart and persists. A chart
// that cannot be computed is stored as nil and never fails the save.
func (s *service) Save(ctx context.Context, userID string, req UpdateProfileRequest) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}

	current, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load profile", err)
	}
	now := s.now().UTC()
	if !found {
		current = Profile{UserID: userID, CreatedAt: now}
	}

	merged := merge(current, req)
	merged.UpdatedAt = now
	merged.NatalChart = s.astro.NatalChart(ctx, merged.Birth)
	if merged.NatalChart == nil {
		s.logger.Info("profile saved without natal chart", "user_id", userID)
	}

	saved, err := s.repo.Save(ctx, merged)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeStorage, "failed to save profile", err)
	}
	return saved, nil
}

func (s *service) Get(ctx context.Context, userID string) (Profile, error) {
	p, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load profile", err)
	}
	if !found {
		return Profile{}, apperrors.Wrap(apperrors.CodeNotFound, "profile not found", nil)
	}
	return p, nil
}

// Passport never fails for missing data; an unknown user gets the
// unavailable passport.
func (s *service) Passport(ctx context.Context, userID string) (astro.CosmicPassport, error) {
	chart, err := s.chart(ctx, userID)
	if err != nil {
		return astro.CosmicPassport{}, err
	}
	return s.astro.Passport(chart), nil
}

func (s *service) Transits(ctx context.Context, userID string, date time.Time) (astro.TransitReport, error) {
	chart, err := s.chart(ctx, userID)
	if err != nil {
		return astro.TransitReport{}, err
	}
	return s.astro.Transits(ctx, chart, date)
}

func (s *service) chart(ctx context.Context, userID string) (*astro.NatalChart, error) {
	p, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load profile", err)
	}
	if !found {
		return nil, nil
	}
	return p.NatalChart, nil
}

func merge(p Profile, req UpdateProfileRequest) Profile {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.BirthDate != nil {
		p.Birth.Date = strings.TrimSpace(*req.BirthDate)
	}
	if req.BirthTime != nil {
		p.Birth.Time = strings.TrimSpace(*req.BirthTime)
	}
	if req.Timezone != nil {
		p.Birth.Timezone = strings.TrimSpace(*req.Timezone)
	}
	if req.ClearLocation {
		p.Birth.Latitude = nil
		p.Birth.Longitude = nil
	}
	if req.Latitude != nil {
		lat := *req.Latitude
		p.Birth.Latitude = &lat
	}
	if req.Longitude != nil {
		lon := *req.Longitude
		p.Birth.Longitude = &lon
	}
	return p
}
