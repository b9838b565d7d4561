// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, mongo) inside this directory.
//
// Lookups that do not resolve return an apperr.KindNotFound error; driver failures are
// wrapped as apperr.KindPersistence. FindDuplicate is the exception: it returns (nil, nil)
// when no application exists for the pair.
package repository

import (
	"context"
	"time"

	"applyapi/internal/model"
)

// ApplicationRepository persists applications. No business logic here.
type ApplicationRepository interface {
	// FindDuplicate returns the application for (jobID, applicantID), or nil when none exists.
	FindDuplicate(ctx context.Context, jobID, applicantID string) (*model.Application, error)

	// Create inserts a new application. The caller assigns ID, Status and timestamps.
	// Fails with apperr.KindValidation when the cover letter or attachment is missing and with
	// apperr.KindDuplicate when the store already holds an application for the same pair.
	Create(ctx context.Context, app *model.Application) (*model.Application, error)

	// FindByID returns the full application, attachment bytes included.
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// FindByJob returns the applications for a job, each with the applicant's public profile.
	// Attachment bytes are not loaded.
	FindByJob(ctx context.Context, jobID string, pq PageQuery) ([]model.Application, error)

	// FindByApplicant returns an applicant's applications, newest first, each with job and
	// employer context. Attachment bytes are not loaded.
	FindByApplicant(ctx context.Context, applicantID string, pq PageQuery) ([]model.Application, error)

	// SetStatus updates status, notes (when notes is non-nil) and updated_at.
	SetStatus(ctx context.Context, id string, status model.Status, notes *string, updatedAt time.Time) (*model.Application, error)
}

// NotificationRepository persists notification records.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
}

// JobProvider reads job postings owned by the job subsystem.
type JobProvider interface {
	GetJob(ctx context.Context, id string) (*model.Job, error)
}

// UserProvider reads accounts owned by the user directory.
type UserProvider interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// PageQuery holds limit/offset pagination parameters. A zero Limit means no limit.
type PageQuery struct {
	Limit  int
	Offset int
}

// Bounded reports whether a LIMIT clause applies.
func (pq PageQuery) Bounded() bool { return pq.Limit > 0 }
