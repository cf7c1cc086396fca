package profilerepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/profile"
)

// Schema creates the profiles table.
const Schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id     TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	birth_date  TEXT NOT NULL DEFAULT '',
	birth_time  TEXT NOT NULL DEFAULT '',
	timezone    TEXT NOT NULL DEFAULT '',
	latitude    DOUBLE PRECISION,
	longitude   DOUBLE PRECISION,
	natal_chart JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresRepository persists profiles in Postgres. The natal chart is
// stored as JSONB next to the birth data it was derived from.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

// Get fetches a profile by user id.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (profile.Profile, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, name, birth_date, birth_time, timezone, latitude, longitude,
		       natal_chart, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, nil
}

// Save upserts a profile row.
func (r *PostgresRepository) Save(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	var chart []byte
	if p.NatalChart != nil {
		encoded, err := json.Marshal(p.NatalChart)
		if err != nil {
			return profile.Profile{}, err
		}
		chart = encoded
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, name, birth_date, birth_time, timezone, latitude, longitude,
		                      natal_chart, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			birth_date = EXCLUDED.birth_date,
			birth_time = EXCLUDED.birth_time,
			timezone = EXCLUDED.timezone,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			natal_chart = EXCLUDED.natal_chart,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, name, birth_date, birth_time, timezone, latitude, longitude,
		          natal_chart, created_at, updated_at
	`, p.UserID, p.Name, p.Birth.Date, p.Birth.Time, p.Birth.Timezone, p.Birth.Latitude, p.Birth.Longitude,
		chart, p.CreatedAt, p.UpdatedAt)
	return scanProfile(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (profile.Profile, error) {
	var (
		p                profile.Profile
		chart            []byte
		created, updated time.Time
	)
	if err := row.Scan(&p.UserID, &p.Name, &p.Birth.Date, &p.Birth.Time, &p.Birth.Timezone,
		&p.Birth.Latitude, &p.Birth.Longitude, &chart, &created, &updated); err != nil {
		return profile.Profile{}, err
	}
	if len(chart) > 0 {
		var natal astro.NatalChart
		if err := json.Unmarshal(chart, &natal); err != nil {
			return profile.Profile{}, err
		}
		p.NatalChart = &natal
	}
	p.CreatedAt = created.UTC()
	p.UpdatedAt = updated.UTC()
	return p, nil
}

var _ profile.Repository = (*PostgresRepository)(nil)
