package postgres

import (
	"context"
	"database/sql"
	"errors"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// JobPostgres reads job postings from the jobs table owned by the job subsystem.
type JobPostgres struct {
	db *sql.DB
}

func NewJobPostgres(db *sql.DB) *JobPostgres {
	return &JobPostgres{db: db}
}

var _ repository.JobProvider = (*JobPostgres)(nil)

// GetJob returns the job or an apperr.KindNotFound error.
func (r *JobPostgres) GetJob(ctx context.Context, id string) (*model.Job, error) {
	const q = `
		SELECT id, employer_id, title, status, deadline
		FROM jobs
		WHERE id = $1
	`
	var (
		job      model.Job
		deadline sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&job.ID, &job.EmployerID, &job.Title, &job.ApprovalStatus, &deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, apperr.Persistence("failed to load job", err)
	}
	if deadline.Valid {
		job.Deadline = deadline.Time
	}
	return &job, nil
}
