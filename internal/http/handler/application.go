package handler

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"applyapi/internal/apperr"
	"applyapi/internal/http/middleware"
	"applyapi/internal/model"
	"applyapi/internal/service"
)

// applicationResponse wraps a single application.
type applicationResponse struct {
	Message     string             `json:"message"`
	Application *model.Application `json:"application"`
}

// applicationListResponse wraps a list of applications. User is set only by the lookup by email.
type applicationListResponse struct {
	Message      string              `json:"message"`
	Applications []model.Application `json:"applications"`
	User         *model.UserSummary  `json:"user,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// SubmitApplication godoc
// @Summary Apply for a job
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param jobId path string true "Job ID"
// @Param coverLetter formData string false "Cover letter"
// @Param resume formData file true "Resume document"
// @Success 201 {object} applicationResponse
// @Router /api/applications/{jobId} [post]
func SubmitApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobID, err := pathID(c, "jobId")
		if err != nil {
			return err
		}

		att, err := readResume(c)
		if err != nil {
			return err
		}

		actor, _ := middleware.ActorFromCtx(c)
		app, err := svc.Submit(c.UserContext(), actor, service.SubmitInput{
			JobID:       jobID,
			CoverLetter: utils.CopyString(c.FormValue("coverLetter")),
			Attachment:  att,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(applicationResponse{
			Message:     "application submitted successfully",
			Application: app,
		})
	}
}

// UpdateApplicationStatus godoc
// @Summary Change the review status of an application
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationId path string true "Application ID"
// @Param body body updateStatusRequest true "New status and optional notes"
// @Success 200 {object} applicationResponse
// @Router /api/applications/status/{applicationId} [put]
func UpdateApplicationStatus(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "applicationId")
		if err != nil {
			return err
		}
		var req updateStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest("INVALID_BODY", "invalid request body")
		}

		actor, _ := middleware.ActorFromCtx(c)
		app, err := svc.UpdateStatus(c.UserContext(), actor, id, req.Status, req.Notes)
		if err != nil {
			return err
		}
		return c.JSON(applicationResponse{
			Message:     "application status updated successfully",
			Application: app,
		})
	}
}

// ListJobApplications godoc
// @Summary List the applications of a job
// @Tags applications
// @Produce json
// @Param jobId path string true "Job ID"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} applicationListResponse
// @Router /api/applications/job/{jobId} [get]
func ListJobApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		jobID, err := pathID(c, "jobId")
		if err != nil {
			return err
		}
		limit, offset, err := pageParams(c)
		if err != nil {
			return err
		}

		actor, _ := middleware.ActorFromCtx(c)
		items, err := svc.ListForJob(c.UserContext(), actor, jobID, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(applicationListResponse{
			Message:      "applications retrieved successfully",
			Applications: items,
		})
	}
}

// ListOwnApplications godoc
// @Summary List the caller's applications
// @Tags applications
// @Produce json
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} applicationListResponse
// @Router /api/applications/my-applications [get]
func ListOwnApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return err
		}

		actor, _ := middleware.ActorFromCtx(c)
		items, err := svc.ListOwn(c.UserContext(), actor, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(applicationListResponse{
			Message:      "your applications retrieved successfully",
			Applications: items,
		})
	}
}

// ListApplicationsByEmail godoc
// @Summary List the applications of the user registered under an email
// @Tags applications
// @Produce json
// @Param email path string true "Applicant email"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} applicationListResponse
// @Router /api/applications/by-email/{email} [get]
func ListApplicationsByEmail(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := url.PathUnescape(c.Params("email"))
		if err != nil {
			return badRequest("INVALID_EMAIL", "invalid email encoding")
		}
		if strings.TrimSpace(email) == "" {
			return apperr.Validation("email is required")
		}
		limit, offset, err := pageParams(c)
		if err != nil {
			return err
		}

		actor, _ := middleware.ActorFromCtx(c)
		res, err := svc.ListByEmail(c.UserContext(), actor, email, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(applicationListResponse{
			Message:      "applications retrieved successfully by email",
			Applications: res.Applications,
			User:         &res.User,
		})
	}
}

// GetResume godoc
// @Summary Download the resume attached to an application
// @Tags applications
// @Produce application/octet-stream
// @Param applicationId path string true "Application ID"
// @Success 200 {file} binary
// @Router /api/applications/resume/{applicationId} [get]
func GetResume(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "applicationId")
		if err != nil {
			return err
		}

		actor, _ := middleware.ActorFromCtx(c)
		res, err := svc.FetchResume(c.UserContext(), actor, id)
		if err != nil {
			return err
		}

		contentType := res.ContentType
		if contentType == "" {
			contentType = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, dispositionName(res.Filename)))
		return c.Send(res.Data)
	}
}

// pathID reads a UUID path parameter; malformed ids answer 400 INVALID_ID.
// The value is copied out of the request buffer because it outlives the handler in span attributes.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", badRequest("INVALID_ID", "invalid id format")
	}
	return utils.CopyString(id), nil
}

func pageParams(c *fiber.Ctx) (int, int, error) {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil || limit < 0 {
		return 0, 0, badRequest("INVALID_LIMIT", "invalid limit")
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, badRequest("INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, nil
}

// readResume loads the uploaded "resume" part. A missing part yields a nil attachment,
// which the lifecycle rejects as MISSING_ATTACHMENT.
func readResume(c *fiber.Ctx) (*model.Attachment, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, badRequest("FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, badRequest("FILE_OPEN_ERROR", "cannot read uploaded file")
	}
	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = fiber.MIMEOctetStream
	}
	return &model.Attachment{
		Data:        data,
		ContentType: ct,
		Filename:    fh.Filename,
		Size:        int64(len(data)),
	}, nil
}

func dispositionName(name string) string {
	if name == "" {
		return "resume"
	}
	return strings.NewReplacer(`"`, "'", "\r", "", "\n", "", `\`, "_").Replace(name)
}
