package dreamrepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/dream"
)

// Schema creates the dreams table.
const Schema = `
CREATE TABLE IF NOT EXISTS dreams (
	id         UUID PRIMARY KEY,
	user_id    TEXT NOT NULL,
	dream_date DATE NOT NULL,
	title      TEXT NOT NULL,
	narrative  TEXT NOT NULL,
	astrology  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS dreams_user_date_idx ON dreams (user_id, dream_date DESC, created_at DESC)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var dreamColumns = []string{
	"id::text", "user_id", "to_char(dream_date, 'YYYY-MM-DD')", "title", "narrative", "astrology", "created_at",
}

// PostgresRepository persists dreams in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the table and index when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

func (r *PostgresRepository) Create(ctx context.Context, d dream.Dream) (dream.Dream, error) {
	astrology, err := json.Marshal(d.Astrology)
	if err != nil {
		return dream.Dream{}, err
	}
	query, args, err := insertQuery(d, astrology)
	if err != nil {
		return dream.Dream{}, err
	}
	return scanDream(r.pool.QueryRow(ctx, query, args...))
}

// Get reports ids that are not UUIDs as missing; the id column would reject them.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (dream.Dream, bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return dream.Dream{}, false, nil
	}
	query, args, err := getQuery(userID, id)
	if err != nil {
		return dream.Dream{}, false, err
	}
	d, err := scanDream(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return dream.Dream{}, false, nil
	}
	if err != nil {
		return dream.Dream{}, false, err
	}
	return d, true, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, filter dream.ListFilter) ([]dream.Dream, error) {
	query, args, err := listQuery(userID, filter)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dream.Dream, 0)
	for rows.Next() {
		d, err := scanDream(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func insertQuery(d dream.Dream, astrology []byte) (string, []interface{}, error) {
	return psql.Insert("dreams").
		Columns("id", "user_id", "dream_date", "title", "narrative", "astrology", "created_at").
		Values(d.ID, d.UserID, d.Date, d.Title, d.Narrative, astrology, d.CreatedAt).
		Suffix("RETURNING " + strings.Join(dreamColumns, ", ")).
		ToSql()
}

func getQuery(userID, id string) (string, []interface{}, error) {
	return psql.Select(dreamColumns...).
		From("dreams").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
}

func listQuery(userID string, filter dream.ListFilter) (string, []interface{}, error) {
	builder := psql.Select(dreamColumns...).
		From("dreams").
		Where(sq.Eq{"user_id": userID})
	if filter.From != "" {
		builder = builder.Where(sq.GtOrEq{"dream_date": filter.From})
	}
	if filter.To != "" {
		builder = builder.Where(sq.LtOrEq{"dream_date": filter.To})
	}
	builder = builder.OrderBy("dream_date DESC", "created_at DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	return builder.ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDream(row rowScanner) (dream.Dream, error) {
	var (
		d         dream.Dream
		astrology []byte
		created   time.Time
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Date, &d.Title, &d.Narrative, &astrology, &created); err != nil {
		return dream.Dream{}, err
	}
	if err := json.Unmarshal(astrology, &d.Astrology); err != nil {
		return dream.Dream{}, err
	}
	d.CreatedAt = created.UTC()
	return d, nil
}

var _ dream.Repository = (*PostgresRepository)(nil)
