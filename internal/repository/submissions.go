package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvanroy/permit-validator/internal/common"
	"github.com/mvanroy/permit-validator/internal/match"
	"github.com/mvanroy/permit-validator/internal/pipeline"
)

const submissionsSchema = `
CREATE TABLE IF NOT EXISTS submissions (
	id           UUID PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	company_name TEXT NOT NULL,
	company_nr   TEXT NOT NULL,
	report       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS submissions_company_nr_idx ON submissions (company_nr);
CREATE INDEX IF NOT EXISTS submissions_created_at_idx ON submissions (created_at);
`

// SubmissionStore records each validated submission with its full report.
type SubmissionStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSubmissionStore(pool *pgxpool.Pool, logger *slog.Logger) *SubmissionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionStore{pool: pool, logger: logger}
}

// EnsureSchema creates the submissions table when it does not exist yet.
func (s *SubmissionStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, submissionsSchema); err != nil {
		return common.WrapError(err, "ensure submissions schema")
	}
	return nil
}

// SaveReport persists one submission's declared facts and report JSON.
func (s *SubmissionStore) SaveReport(ctx context.Context, facts match.Facts, report *pipeline.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return common.WrapError(err, "marshal report")
	}

	const q = `
		INSERT INTO submissions (id, first_name, last_name, company_name, company_nr, report)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.pool.Exec(ctx, q,
		report.SubmissionID, facts.FirstName, facts.LastName,
		facts.CompanyName, facts.CompanyNumber, body,
	); err != nil {
		return common.WrapError(err, "insert submission")
	}

	s.logger.Debug("submission persisted", "submission_id", report.SubmissionID)
	return nil
}

// StoredSubmission is one persisted report row.
type StoredSubmission struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	CompanyName string
	CompanyNr   string
	Report      json.RawMessage
	CreatedAt   time.Time
}

// ListByCompanyNumber returns the stored submissions for one company,
// newest first.
func (s *SubmissionStore) ListByCompanyNumber(ctx context.Context, companyNr string, limit int) ([]StoredSubmission, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
		SELECT id, first_name, last_name, company_name, company_nr, report, created_at
		FROM submissions
		WHERE company_nr = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := s.pool.Query(ctx, q, companyNr, limit)
	if err != nil {
		return nil, common.WrapError(err, "query submissions")
	}
	defer rows.Close()

	var out []StoredSubmission
	for rows.Next() {
		var sub StoredSubmission
		if err := rows.Scan(&sub.ID, &sub.FirstName, &sub.LastName,
			&sub.CompanyName, &sub.CompanyNr, &sub.Report, &sub.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan submission")
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}
