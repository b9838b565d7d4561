package model

import "time"

// JobApproved is the approval status a job needs before it accepts applications.
const JobApproved = "approved"

// Job is the subset of a job posting this service reads.
type Job struct {
	ID             string
	EmployerID     string
	Title          string
	ApprovalStatus string
	// Deadline is the zero time when the posting has no deadline.
	Deadline time.Time
}
