package model

import (
	"strings"

	"applyapi/internal/apperr"
)

// Validate checks the fields required before an application can be persisted.
func (a *Application) Validate() error {
	if strings.TrimSpace(a.JobID) == "" {
		return apperr.Validation("job is required")
	}
	if strings.TrimSpace(a.ApplicantID) == "" {
		return apperr.Validation("applicant is required")
	}
	if strings.TrimSpace(a.CoverLetter) == "" {
		return apperr.Validation("cover letter is required")
	}
	if !a.Attachment.Present() {
		return apperr.Validation("resume is required")
	}
	if a.Status != "" && !a.Status.Valid() {
		return apperr.Validation("invalid status")
	}
	return nil
}
