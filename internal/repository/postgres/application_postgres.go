package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

const uniqueViolation = "23505"

// applicationColumns excludes resume_data so list queries never pull attachment bytes.
const applicationColumns = `a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_key, a.resume_content_type,
		a.resume_filename, a.resume_size, a.status, a.notes, a.applied_at, a.updated_at`

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

// FindDuplicate returns the application already submitted for the pair, or nil.
func (r *ApplicationPostgres) FindDuplicate(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	const q = `
		SELECT ` + applicationColumns + `
		FROM applications a
		WHERE a.job_id = $1 AND a.applicant_id = $2
		LIMIT 1
	`
	app, err := scanApplication(r.db.QueryRowContext(ctx, q, jobID, applicantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Persistence("failed to check existing application", err)
	}
	return app, nil
}

// Create inserts a new application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO applications AS a (id, job_id, applicant_id, cover_letter, resume_data, resume_key,
			resume_content_type, resume_filename, resume_size, status, notes, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + applicationColumns + `
	`
	att := app.Attachment
	row := r.db.QueryRowContext(ctx, q,
		app.ID,
		app.JobID,
		app.ApplicantID,
		app.CoverLetter,
		att.InlineData(),
		nullString(att.StorageKey),
		att.ContentType,
		att.Filename,
		att.Size,
		string(app.Status),
		app.Notes,
		app.AppliedAt,
		app.UpdatedAt,
	)
	out, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.Duplicate("you have already applied for this job", err)
		}
		return nil, apperr.Persistence("failed to create application", err)
	}
	out.Attachment.Data = att.Data
	return out, nil
}

// FindByID fetches a single application, attachment bytes included.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	const q = `
		SELECT ` + applicationColumns + `, a.resume_data
		FROM applications a
		WHERE a.id = $1
	`
	var data []byte
	app, err := scanApplication(r.db.QueryRowContext(ctx, q, id), &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("application not found")
		}
		return nil, apperr.Persistence("failed to load application", err)
	}
	app.Attachment.Data = data
	return app, nil
}

// FindByJob lists a job's applications joined with the applicant's public profile.
func (r *ApplicationPostgres) FindByJob(ctx context.Context, jobID string, pq repository.PageQuery) ([]model.Application, error) {
	const q = `
		SELECT ` + applicationColumns + `, u.id, u.name, u.email, u.photo, u.skills
		FROM applications a
		LEFT JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	query, args := withPage(q, []any{jobID}, pq)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence("failed to list job applications", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		var (
			uID, uName, uEmail, uPhoto sql.NullString
			uSkills                    []byte
		)
		app, err := scanApplication(rows, &uID, &uName, &uEmail, &uPhoto, &uSkills)
		if err != nil {
			return nil, apperr.Persistence("failed to scan application", err)
		}
		if uID.Valid {
			app.Applicant = &model.ApplicantProfile{
				ID:     uID.String,
				Name:   uName.String,
				Email:  uEmail.String,
				Photo:  uPhoto.String,
				Skills: decodeSkills(uSkills),
			}
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("failed to list job applications", err)
	}
	return items, nil
}

// FindByApplicant lists an applicant's applications, newest first, with job and employer context.
func (r *ApplicationPostgres) FindByApplicant(ctx context.Context, applicantID string, pq repository.PageQuery) ([]model.Application, error) {
	const q = `
		SELECT ` + applicationColumns + `, j.id, j.title, j.employer_id, j.status, j.deadline, e.name, e.company_name
		FROM applications a
		LEFT JOIN jobs j ON j.id = a.job_id
		LEFT JOIN users e ON e.id = j.employer_id
		WHERE a.applicant_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	query, args := withPage(q, []any{applicantID}, pq)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence("failed to list applicant applications", err)
	}
	defer rows.Close()

	items := make([]model.Application, 0)
	for rows.Next() {
		var (
			jID, jTitle, jEmployer, jStatus sql.NullString
			jDeadline                       sql.NullTime
			eName, eCompany                 sql.NullString
		)
		app, err := scanApplication(rows, &jID, &jTitle, &jEmployer, &jStatus, &jDeadline, &eName, &eCompany)
		if err != nil {
			return nil, apperr.Persistence("failed to scan application", err)
		}
		if jID.Valid {
			summary := &model.JobSummary{
				ID:           jID.String,
				Title:        jTitle.String,
				EmployerID:   jEmployer.String,
				Status:       jStatus.String,
				EmployerName: eName.String,
				CompanyName:  eCompany.String,
			}
			if jDeadline.Valid {
				d := jDeadline.Time
				summary.Deadline = &d
			}
			app.Job = summary
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("failed to list applicant applications", err)
	}
	return items, nil
}

// SetStatus updates the review state. updated_at never moves before applied_at.
func (r *ApplicationPostgres) SetStatus(ctx context.Context, id string, status model.Status, notes *string, updatedAt time.Time) (*model.Application, error) {
	const q = `
		UPDATE applications AS a
		SET status = $1, notes = COALESCE($2, a.notes), updated_at = GREATEST($3, a.applied_at)
		WHERE a.id = $4
		RETURNING ` + applicationColumns + `
	`
	var n sql.NullString
	if notes != nil {
		n = sql.NullString{String: *notes, Valid: true}
	}
	app, err := scanApplication(r.db.QueryRowContext(ctx, q, string(status), n, updatedAt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("application not found")
		}
		return nil, apperr.Persistence("failed to update application", err)
	}
	return app, nil
}

func scanApplication(s scanner, extra ...any) (*model.Application, error) {
	var (
		app model.Application
		att model.Attachment
		key sql.NullString
	)
	dest := []any{
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.CoverLetter,
		&key,
		&att.ContentType,
		&att.Filename,
		&att.Size,
		&app.Status,
		&app.Notes,
		&app.AppliedAt,
		&app.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	att.StorageKey = key.String
	app.Attachment = &att
	return &app, nil
}

func withPage(q string, args []any, pq repository.PageQuery) (string, []any) {
	if !pq.Bounded() {
		return q, args
	}
	offset := pq.Offset
	if offset < 0 {
		offset = 0
	}
	q += fmt.Sprintf("\n\t\tLIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	return q, append(args, pq.Limit, offset)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func decodeSkills(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil
	}
	return skills
}
