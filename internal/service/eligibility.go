package service

import (
	"context"
	"errors"
	"time"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// EligibilityChecker decides whether a job currently accepts applications.
type EligibilityChecker interface {
	Check(ctx context.Context, jobID string, now time.Time) (*model.Job, error)
}

// JobEligibilityChecker reads the job from the JobProvider. A job accepts applications when it
// is approved and its deadline, if any, is still in the future.
type JobEligibilityChecker struct {
	jobs repository.JobProvider
}

func NewJobEligibilityChecker(jobs repository.JobProvider) *JobEligibilityChecker {
	return &JobEligibilityChecker{jobs: jobs}
}

// Check returns the job when it is open, otherwise an apperr.KindNotEligible error.
func (c *JobEligibilityChecker) Check(ctx context.Context, jobID string, now time.Time) (*model.Job, error) {
	job, err := c.jobs.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotEligible("job is not available for application")
		}
		return nil, err
	}
	return job, Eligible(job, now)
}

// Eligible applies the approval and deadline rules to a loaded job.
func Eligible(job *model.Job, now time.Time) error {
	if job == nil || job.ApprovalStatus != model.JobApproved {
		return apperr.NotEligible("job is not available for application")
	}
	if !job.Deadline.IsZero() && !now.Before(job.Deadline) {
		return apperr.NotEligible("application deadline has passed")
	}
	return nil
}
