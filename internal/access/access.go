// Package access decides whether an actor may perform an operation on an application or job.
//
// All ownership rules live here so every call site delegates to one function; callers supply
// the resource owners they loaded and never re-derive the rules inline.
package access

import (
	"strings"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
)

// Operation tags the action being authorized.
type Operation string

const (
	OpSubmitApplication       Operation = "submit_application"
	OpUpdateStatus            Operation = "update_status"
	OpViewApplicationsForJob  Operation = "view_applications_for_job"
	OpViewOwnApplications     Operation = "view_own_applications"
	OpViewResume              Operation = "view_resume"
	OpViewApplicationsByEmail Operation = "view_applications_by_email"
)

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Owners identifies who owns the resource under check. Unknown owners are left empty.
type Owners struct {
	ApplicantID string
	EmployerID  string
}

// Evaluator is the access control decision function.
type Evaluator struct {
	// RestrictLookupByEmail limits OpViewApplicationsByEmail to admins and the looked-up user.
	RestrictLookupByEmail bool
}

// Authorize returns Allow or Deny. An unauthenticated actor is always denied.
func (e Evaluator) Authorize(actor model.Actor, owners Owners, op Operation) Decision {
	if !actor.Authenticated() {
		return Deny
	}

	isEmployer := owners.EmployerID != "" && actor.ID == owners.EmployerID
	isApplicant := owners.ApplicantID != "" && actor.ID == owners.ApplicantID

	switch op {
	case OpSubmitApplication:
		return Allow
	case OpUpdateStatus, OpViewApplicationsForJob:
		return Decision(actor.IsAdmin() || isEmployer)
	case OpViewOwnApplications, OpViewResume:
		return Decision(actor.IsAdmin() || isApplicant || isEmployer)
	case OpViewApplicationsByEmail:
		if !e.RestrictLookupByEmail {
			return Allow
		}
		return Decision(actor.IsAdmin() || isApplicant)
	default:
		return Deny
	}
}

// Require converts a Deny into an apperr.KindForbidden error carrying message.
func (e Evaluator) Require(actor model.Actor, owners Owners, op Operation, message string) error {
	if e.Authorize(actor, owners, op) == Allow {
		return nil
	}
	return apperr.Forbidden(message)
}

// AuthorizeEmailLookup decides a lookup by email before the user directory is consulted, so a
// denied caller cannot tell registered emails from unknown ones. Under the restriction only
// admins and actors whose token carries the queried email pass.
func (e Evaluator) AuthorizeEmailLookup(actor model.Actor, email string) Decision {
	if !actor.Authenticated() {
		return Deny
	}
	if !e.RestrictLookupByEmail || actor.IsAdmin() {
		return Allow
	}
	return Decision(actor.Email != "" && strings.EqualFold(strings.TrimSpace(actor.Email), strings.TrimSpace(email)))
}
