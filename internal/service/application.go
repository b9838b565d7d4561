package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"applyapi/internal/access"
	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
	"applyapi/internal/storage"
)

var tracer = otel.Tracer("applyapi/internal/service")

// SubmitInput carries a job seeker's submission.
type SubmitInput struct {
	JobID       string
	CoverLetter string
	Attachment  *model.Attachment
}

// Resume is the stored attachment returned for byte-exact delivery.
type Resume struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ApplicationsByEmail is the result of a lookup by applicant email.
type ApplicationsByEmail struct {
	Applications []model.Application `json:"applications"`
	User         model.UserSummary   `json:"user"`
}

// ApplicationService defines the application lifecycle use cases.
// Every method takes the acting user explicitly.
type ApplicationService interface {
	// Submit checks job eligibility and duplicates, stores the application with its resume and
	// notifies the job's employer.
	Submit(ctx context.Context, actor model.Actor, in SubmitInput) (*model.Application, error)

	// UpdateStatus moves an application to status and notifies the applicant. notes replaces the
	// stored notes only when non-empty.
	UpdateStatus(ctx context.Context, actor model.Actor, applicationID, status, notes string) (*model.Application, error)

	// ListForJob returns a job's applications with applicant profiles. limit 0 means no limit.
	ListForJob(ctx context.Context, actor model.Actor, jobID string, limit, offset int) ([]model.Application, error)

	// ListOwn returns the actor's own applications, newest first.
	ListOwn(ctx context.Context, actor model.Actor, limit, offset int) ([]model.Application, error)

	// ListByEmail returns the applications of the user registered under email.
	ListByEmail(ctx context.Context, actor model.Actor, email string, limit, offset int) (*ApplicationsByEmail, error)

	// FetchResume returns the resume attached to an application.
	FetchResume(ctx context.Context, actor model.Actor, applicationID string) (*Resume, error)
}

type applicationService struct {
	apps        repository.ApplicationRepository
	jobs        repository.JobProvider
	users       repository.UserProvider
	notifier    Notifier
	eligibility EligibilityChecker
	attachments storage.AttachmentStore
	eval        access.Evaluator
	metrics     *Metrics
	log         logrus.FieldLogger
	now         func() time.Time
}

// Option configures the application service.
type Option func(*applicationService)

func WithClock(now func() time.Time) Option {
	return func(s *applicationService) { s.now = now }
}

func WithMetrics(m *Metrics) Option {
	return func(s *applicationService) { s.metrics = m }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *applicationService) { s.log = l }
}

func WithEvaluator(e access.Evaluator) Option {
	return func(s *applicationService) { s.eval = e }
}

// WithAttachments selects where resume bytes are kept. Defaults to the application record.
func WithAttachments(a storage.AttachmentStore) Option {
	return func(s *applicationService) { s.attachments = a }
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(
	apps repository.ApplicationRepository,
	jobs repository.JobProvider,
	users repository.UserProvider,
	notifier Notifier,
	opts ...Option,
) ApplicationService {
	s := &applicationService{
		apps:        apps,
		jobs:        jobs,
		users:       users,
		notifier:    notifier,
		eligibility: NewJobEligibilityChecker(jobs),
		attachments: storage.InlineAttachments{},
		log:         logrus.StandardLogger(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *applicationService) Submit(ctx context.Context, actor model.Actor, in SubmitInput) (app *model.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Submit", trace.WithAttributes(attribute.String("job.id", in.JobID)))
	defer func() { s.finish(span, "submit", err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	if !in.Attachment.Present() {
		return nil, apperr.New(apperr.KindMissingAttachment, "resume is required", nil)
	}
	if err = s.eval.Require(actor, access.Owners{ApplicantID: actor.ID}, access.OpSubmitApplication, "not allowed to apply"); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	job, err := s.eligibility.Check(ctx, in.JobID, now)
	if err != nil {
		return nil, err
	}

	existing, err := s.apps.FindDuplicate(ctx, in.JobID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Duplicate("you have already applied for this job", nil)
	}

	att := *in.Attachment
	att.Size = int64(len(att.Data))
	candidate := &model.Application{
		ID:          uuid.NewString(),
		JobID:       in.JobID,
		ApplicantID: actor.ID,
		CoverLetter: in.CoverLetter,
		Attachment:  &att,
		Status:      model.StatusApplied,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err = candidate.Validate(); err != nil {
		return nil, err
	}

	if err = s.attachments.Stash(ctx, candidate.ID, &att); err != nil {
		return nil, err
	}
	app, err = s.apps.Create(ctx, candidate)
	if err != nil {
		if dErr := s.attachments.Discard(ctx, &att); dErr != nil {
			s.log.WithError(dErr).WithField("application_id", candidate.ID).Warn("resume rollback failed")
		}
		return nil, err
	}
	span.SetAttributes(attribute.String("application.id", app.ID))
	s.metrics.submitted()

	s.notify(ctx, "submit", job.EmployerID, fmt.Sprintf("New application for your job: %s", job.Title), app.ID)
	return app, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, actor model.Actor, applicationID, status, notes string) (app *model.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.UpdateStatus", trace.WithAttributes(attribute.String("application.id", applicationID)))
	defer func() { s.finish(span, "update_status", err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	next, ok := model.ParseStatus(status)
	if !ok {
		return nil, apperr.Validation("invalid status")
	}

	current, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	owners, err := s.ownersOf(ctx, current)
	if err != nil {
		return nil, err
	}
	if err = s.eval.Require(actor, owners, access.OpUpdateStatus, "not authorized to update this application"); err != nil {
		return nil, err
	}

	var n *string
	if notes != "" {
		n = &notes
	}
	app, err = s.apps.SetStatus(ctx, applicationID, next, n, s.now().UTC())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("application.status", string(next)))
	s.metrics.transitioned(next)

	s.notify(ctx, "update_status", app.ApplicantID, fmt.Sprintf("Your application status has been updated to %s", next), app.ID)
	return app, nil
}

func (s *applicationService) ListForJob(ctx context.Context, actor model.Actor, jobID string, limit, offset int) (items []model.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.ListForJob", trace.WithAttributes(attribute.String("job.id", jobID)))
	defer func() { s.finish(span, "list_for_job", err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err = s.eval.Require(actor, access.Owners{EmployerID: job.EmployerID}, access.OpViewApplicationsForJob, "not authorized to view these applications"); err != nil {
		return nil, err
	}
	return s.apps.FindByJob(ctx, jobID, page(limit, offset))
}

func (s *applicationService) ListOwn(ctx context.Context, actor model.Actor, limit, offset int) (items []model.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.ListOwn")
	defer func() { s.finish(span, "list_own", err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	if err = s.eval.Require(actor, access.Owners{ApplicantID: actor.ID}, access.OpViewOwnApplications, "not authorized to view these applications"); err != nil {
		return nil, err
	}
	return s.apps.FindByApplicant(ctx, actor.ID, page(limit, offset))
}

func (s *applicationService) ListByEmail(ctx context.Context, actor model.Actor, email string, limit, offset int) (res *ApplicationsByEmail, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.ListByEmail")
	defer func() { s.finish(span, "list_by_email", err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if s.eval.AuthorizeEmailLookup(actor, email) == access.Deny {
		return nil, apperr.Forbidden("not authorized to view these applications")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err = s.eval.Require(actor, access.Owners{ApplicantID: user.ID}, access.OpViewApplicationsByEmail, "not authorized to view these applications"); err != nil {
		return nil, err
	}
	items, err := s.apps.FindByApplicant(ctx, user.ID, page(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ApplicationsByEmail{
		Applications: items,
		User:         model.UserSummary{Name: user.Name, Email: user.Email},
	}, nil
}

func (s *applicationService) FetchResume(ctx context.Context, actor model.Actor, applicationID string) (res *Resume, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.FetchResume", trace.WithAttributes(attribute.String("application.id", applicationID)))
	defer func() { s.finish(span, "fetch_resume", err) }()

	if err = requireActor(actor); err != nil {
		return nil, err
	}
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !app.Attachment.Present() {
		return nil, apperr.NotFound("resume not found")
	}
	owners, err := s.ownersOf(ctx, app)
	if err != nil {
		return nil, err
	}
	if err = s.eval.Require(actor, owners, access.OpViewResume, "not authorized to view this resume"); err != nil {
		return nil, err
	}

	data, err := s.attachments.Open(ctx, app.Attachment)
	if err != nil {
		return nil, err
	}
	return &Resume{
		Data:        data,
		ContentType: app.Attachment.ContentType,
		Filename:    app.Attachment.Filename,
	}, nil
}

// ownersOf resolves the applicant and the employer of the application's job. A job that no
// longer exists leaves the employer empty, so only the applicant or an admin match.
func (s *applicationService) ownersOf(ctx context.Context, app *model.Application) (access.Owners, error) {
	owners := access.Owners{ApplicantID: app.ApplicantID}
	job, err := s.jobs.GetJob(ctx, app.JobID)
	switch {
	case err == nil:
		owners.EmployerID = job.EmployerID
	case errors.Is(err, apperr.ErrNotFound):
	default:
		return owners, err
	}
	return owners, nil
}

// notify records a notification. Failures are logged and counted, never returned.
func (s *applicationService) notify(ctx context.Context, op, recipientID, message, relatedItem string) {
	if _, err := s.notifier.Emit(ctx, recipientID, message, model.NotificationApplication, relatedItem); err != nil {
		s.metrics.notificationFailed(op)
		s.log.WithError(err).WithFields(logrus.Fields{
			"operation":    op,
			"recipient_id": recipientID,
			"related_item": relatedItem,
		}).Warn("notification not recorded")
	}
}

func (s *applicationService) finish(span trace.Span, op string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperr.KindOf(err)))
		s.metrics.failed(op, err)
	}
	span.End()
}

func requireActor(actor model.Actor) error {
	if !actor.Authenticated() {
		return apperr.New(apperr.KindUnauthorized, "authentication required", nil)
	}
	return nil
}

func page(limit, offset int) repository.PageQuery {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
