package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clipgen/internal/httpkit"
	"clipgen/internal/jobs"
	"clipgen/internal/pkg/errors"
)

// PostgresJobRepository is the durable jobs.Store used when the API and a
// standalone worker process share state through the redis queue.
type PostgresJobRepository struct {
	db *pgxpool.Pool
}

func NewPostgresJobRepository(db *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// EnsureSchema creates the jobs table when it does not exist yet. The seq
// column preserves insertion order for List.
func (r *PostgresJobRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id              TEXT PRIMARY KEY,
			seq             BIGSERIAL,
			status          TEXT NOT NULL,
			image_filename  TEXT NOT NULL DEFAULT '',
			image_url       TEXT NOT NULL,
			current_variant TEXT NOT NULL DEFAULT '',
			progress        TEXT NOT NULL DEFAULT '',
			results         JSONB NOT NULL DEFAULT '{}',
			errors          JSONB NOT NULL DEFAULT '{}',
			created_at      TIMESTAMPTZ NOT NULL,
			completed_at    TIMESTAMPTZ
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure jobs schema: %w", err)
	}
	return nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, job *jobs.Job) error {
	results, err := json.Marshal(job.Results)
	if err != nil {
		return err
	}
	errMap, err := json.Marshal(job.Errors)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO jobs (id, status, image_filename, image_url, current_variant, progress, results, errors, created_at, completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, job.ID, string(job.Status), job.ImageFilename, job.ImageURL, string(job.CurrentVariant),
		job.Progress, results, errMap, job.CreatedAt, job.CompletedAt)
	if err != nil {
		if httpkit.IsUniqueViolation(err) {
			return errors.AlreadyExists("job", job.ID)
		}
		return err
	}
	return nil
}

func (r *PostgresJobRepository) Get(ctx context.Context, id string) (*jobs.Job, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, status, image_filename, image_url, current_variant, progress, results, errors, created_at, completed_at
		FROM jobs WHERE id=$1
	`, id)

	j, err := scanJob(row)
	if err != nil {
		return nil, mapGetError(id, err)
	}
	return j, nil
}

// mapGetError keeps NOT_FOUND for absent rows only; anything else (outage,
// scan failure) surfaces as an internal error, not a 404.
func mapGetError(id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.NotFound("job", id)
	}
	return errors.Wrap(err, "repo.get", "failed to load job")
}

func (r *PostgresJobRepository) List(ctx context.Context) ([]*jobs.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, status, image_filename, image_url, current_variant, progress, results, errors, created_at, completed_at
		FROM jobs ORDER BY seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*jobs.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// Update is a read-modify-write. Each job has a single writer for its whole
// lifetime, so there is no competing updater to race against.
func (r *PostgresJobRepository) Update(ctx context.Context, id string, mutate func(*jobs.Job)) (*jobs.Job, error) {
	j, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(j)

	results, err := json.Marshal(j.Results)
	if err != nil {
		return nil, err
	}
	errMap, err := json.Marshal(j.Errors)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		UPDATE jobs
		SET status=$2, current_variant=$3, progress=$4, results=$5, errors=$6, completed_at=$7
		WHERE id=$1
	`, j.ID, string(j.Status), string(j.CurrentVariant), j.Progress, results, errMap, j.CompletedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*jobs.Job, error) {
	var (
		j                     jobs.Job
		status, variant       string
		resultsRaw, errorsRaw []byte
	)
	err := row.Scan(&j.ID, &status, &j.ImageFilename, &j.ImageURL, &variant,
		&j.Progress, &resultsRaw, &errorsRaw, &j.CreatedAt, &j.CompletedAt)
	if err != nil {
		return nil, err
	}
	j.Status = jobs.Status(status)
	j.CurrentVariant = jobs.Variant(variant)
	if err := json.Unmarshal(resultsRaw, &j.Results); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(errorsRaw, &j.Errors); err != nil {
		return nil, err
	}
	return &j, nil
}

var _ jobs.Store = (*PostgresJobRepository)(nil)
