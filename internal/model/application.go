package model

import (
	"strings"
	"time"
)

// Status is the review state of an application.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusViewed      Status = "viewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

// Statuses lists every known status.
var Statuses = []Status{StatusApplied, StatusViewed, StatusShortlisted, StatusRejected, StatusHired}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusViewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes raw input (case, surrounding spaces) into a known Status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Attachment is the resume document submitted with an application.
// Data is never serialized; it is served only through the resume endpoint.
type Attachment struct {
	Data        []byte `json:"-"`
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	// StorageKey is set when the bytes live in object storage instead of the record.
	StorageKey string `json:"-"`
}

// Present reports whether the attachment carries (or references) a binary payload.
func (a *Attachment) Present() bool {
	return a != nil && (len(a.Data) > 0 || a.StorageKey != "")
}

// InlineData returns the bytes that belong in the application record itself.
func (a *Attachment) InlineData() []byte {
	if a == nil || a.StorageKey != "" {
		return nil
	}
	return a.Data
}

// Application is a job seeker's submission against one job posting.
type Application struct {
	ID          string      `json:"id"`
	JobID       string      `json:"job_id"`
	ApplicantID string      `json:"applicant_id"`
	CoverLetter string      `json:"cover_letter"`
	Attachment  *Attachment `json:"resume,omitempty"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes"`
	AppliedAt   time.Time   `json:"applied_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Read projections filled by list queries.
	Applicant *ApplicantProfile `json:"applicant,omitempty"`
	Job       *JobSummary       `json:"job,omitempty"`
}

// ApplicantProfile is the public part of an applicant's profile that employers may see.
type ApplicantProfile struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Photo  string   `json:"photo,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// JobSummary is the job context shown next to an applicant's own applications.
type JobSummary struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	EmployerID   string     `json:"employer_id"`
	Status       string     `json:"status"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	EmployerName string     `json:"employer_name,omitempty"`
	CompanyName  string     `json:"company_name,omitempty"`
}
