package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"applyapi/internal/apperr"
	"applyapi/internal/http/middleware"
	"applyapi/internal/model"
	"applyapi/internal/service"
	serviceMocks "applyapi/internal/service/mocks"
)

var seeker = model.Actor{ID: "u-seeker", Role: model.RoleJobSeeker, Email: "ana@example.com"}

// newTestApp installs the global error handler and a fixed actor in place of token auth.
func newTestApp(actor *model.Actor) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	if actor != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(middleware.ActorLocalKey, *actor)
			return c.Next()
		})
	}
	return app
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func multipartBody(t *testing.T, coverLetter string, file []byte, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if coverLetter != "" {
		require.NoError(t, w.WriteField("coverLetter", coverLetter))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	t.Run("ping func", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(PingFunc(func(ctx context.Context) error { return nil })))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubmitApplication(t *testing.T) {
	jobID := uuid.NewString()
	pdf := []byte("%PDF-1.4 resume")

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Post("/applications/:jobId", SubmitApplication(mockSvc))

		stored := &model.Application{ID: uuid.NewString(), JobID: jobID, ApplicantID: seeker.ID, Status: model.StatusApplied}
		mockSvc.On("Submit", mock.Anything, seeker, mock.MatchedBy(func(in service.SubmitInput) bool {
			return in.JobID == jobID &&
				in.CoverLetter == "hello" &&
				bytes.Equal(in.Attachment.Data, pdf) &&
				in.Attachment.ContentType == "application/pdf" &&
				in.Attachment.Filename == "cv.pdf" &&
				in.Attachment.Size == int64(len(pdf))
		})).Return(stored, nil).Once()

		body, ct := multipartBody(t, "hello", pdf, "cv.pdf", "application/pdf")
		req := httptest.NewRequest(http.MethodPost, "/applications/"+jobID, body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var res applicationResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, stored.ID, res.Application.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing resume is passed through as nil", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Post("/applications/:jobId", SubmitApplication(mockSvc))

		mockSvc.On("Submit", mock.Anything, seeker, mock.MatchedBy(func(in service.SubmitInput) bool {
			return in.Attachment == nil
		})).Return(nil, apperr.New(apperr.KindMissingAttachment, "resume is required", nil)).Once()

		body, ct := multipartBody(t, "hello", nil, "", "")
		req := httptest.NewRequest(http.MethodPost, "/applications/"+jobID, body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "RESUME_REQUIRED", res.Error.Code)
		assert.Equal(t, "resume is required", res.Error.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("default content type", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Post("/applications/:jobId", SubmitApplication(mockSvc))

		mockSvc.On("Submit", mock.Anything, seeker, mock.MatchedBy(func(in service.SubmitInput) bool {
			return in.Attachment != nil && in.Attachment.ContentType == fiber.MIMEOctetStream
		})).Return(&model.Application{ID: "a"}, nil).Once()

		body, ct := multipartBody(t, "", pdf, "cv.bin", "")
		req := httptest.NewRequest(http.MethodPost, "/applications/"+jobID, body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid job id", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Post("/applications/:jobId", SubmitApplication(mockSvc))

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/applications/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
		mockSvc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("domain errors map to status codes", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{"not eligible", apperr.NotEligible("job is not accepting applications"), http.StatusBadRequest, "JOB_NOT_ELIGIBLE"},
			{"duplicate", apperr.Duplicate("you have already applied for this job", nil), http.StatusConflict, "DUPLICATE_APPLICATION"},
			{"validation", apperr.Validation("cover letter too long"), http.StatusBadRequest, "VALIDATION_ERROR"},
			{"forbidden", apperr.Forbidden("only job seekers can apply"), http.StatusForbidden, "FORBIDDEN"},
			{"unauthorized", apperr.New(apperr.KindUnauthorized, "authentication required", nil), http.StatusUnauthorized, "UNAUTHORIZED"},
			{"persistence", apperr.Persistence("failed to create application", errors.New("conn reset")), http.StatusInternalServerError, "INTERNAL_ERROR"},
			{"raw", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockSvc := new(serviceMocks.MockApplicationService)
				app := newTestApp(&seeker)
				app.Post("/applications/:jobId", SubmitApplication(mockSvc))
				mockSvc.On("Submit", mock.Anything, seeker, mock.Anything).Return(nil, tt.err).Once()

				body, ct := multipartBody(t, "hello", pdf, "cv.pdf", "application/pdf")
				req := httptest.NewRequest(http.MethodPost, "/applications/"+jobID, body)
				req.Header.Set("Content-Type", ct)
				resp, _ := app.Test(req)

				assert.Equal(t, tt.status, resp.StatusCode)
				res := decodeError(t, resp)
				assert.Equal(t, tt.code, res.Error.Code)
				if tt.status == http.StatusInternalServerError {
					assert.Equal(t, "internal server error", res.Error.Message)
				}
			})
		}
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	employer := model.Actor{ID: "u-emp", Role: model.RoleEmployer}
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&employer)
		app.Put("/status/:applicationId", UpdateApplicationStatus(mockSvc))

		mockSvc.On("UpdateStatus", mock.Anything, employer, id, "shortlisted", "strong").
			Return(&model.Application{ID: id, Status: model.StatusShortlisted, Notes: "strong"}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/status/"+id, strings.NewReader(`{"status":"shortlisted","notes":"strong"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var res applicationResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, model.StatusShortlisted, res.Application.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&employer)
		app.Put("/status/:applicationId", UpdateApplicationStatus(mockSvc))

		req := httptest.NewRequest(http.MethodPut, "/status/"+id, strings.NewReader(`{"status":`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&employer)
		app.Put("/status/:applicationId", UpdateApplicationStatus(mockSvc))

		mockSvc.On("UpdateStatus", mock.Anything, employer, id, "hired", "").
			Return(nil, apperr.NotFound("application not found")).Once()

		req := httptest.NewRequest(http.MethodPut, "/status/"+id, strings.NewReader(`{"status":"hired"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestListJobApplications(t *testing.T) {
	employer := model.Actor{ID: "u-emp", Role: model.RoleEmployer}
	jobID := uuid.NewString()

	t.Run("success with paging", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&employer)
		app.Get("/job/:jobId", ListJobApplications(mockSvc))

		items := []model.Application{{ID: "a1", JobID: jobID}, {ID: "a2", JobID: jobID}}
		mockSvc.On("ListForJob", mock.Anything, employer, jobID, 10, 20).Return(items, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/job/"+jobID+"?limit=10&offset=20", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var res applicationListResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Len(t, res.Applications, 2)
		assert.Nil(t, res.User)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid paging", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&employer)
		app.Get("/job/:jobId", ListJobApplications(mockSvc))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/job/"+jobID+"?limit=abc", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)

		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/job/"+jobID+"?offset=-1", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&employer)
		app.Get("/job/:jobId", ListJobApplications(mockSvc))

		mockSvc.On("ListForJob", mock.Anything, employer, jobID, 0, 0).
			Return(nil, apperr.Forbidden("not authorized to view these applications")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/job/"+jobID, nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})
}

func TestListOwnApplications(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(&seeker)
	app.Get("/my-applications", ListOwnApplications(mockSvc))

	mockSvc.On("ListOwn", mock.Anything, seeker, 0, 0).Return([]model.Application{}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/my-applications", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"applications":[]`)
	mockSvc.AssertExpectations(t)
}

func TestListApplicationsByEmail(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(&seeker)
	app.Get("/by-email/:email", ListApplicationsByEmail(mockSvc))

	mockSvc.On("ListByEmail", mock.Anything, seeker, "ana@example.com", 5, 0).Return(&service.ApplicationsByEmail{
		Applications: []model.Application{{ID: "a1"}},
		User:         model.UserSummary{Name: "Ana", Email: "ana@example.com"},
	}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/by-email/ana@example.com?limit=5", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var res applicationListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.NotNil(t, res.User)
	assert.Equal(t, "Ana", res.User.Name)
	assert.Len(t, res.Applications, 1)
	mockSvc.AssertExpectations(t)
}

func TestListApplicationsByEmail_PercentEncoded(t *testing.T) {
	t.Run("decoded before lookup", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Get("/by-email/:email", ListApplicationsByEmail(mockSvc))

		mockSvc.On("ListByEmail", mock.Anything, seeker, "a+b@example.com", 0, 0).Return(&service.ApplicationsByEmail{
			Applications: []model.Application{},
			User:         model.UserSummary{Name: "A B", Email: "a+b@example.com"},
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/by-email/a%2Bb%40example.com", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed escape", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Get("/by-email/:email", ListApplicationsByEmail(mockSvc))

		// httptest.NewRequest cannot parse a malformed escape; send the raw URI as-is.
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RequestURI = "/by-email/a%ZZb"
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_EMAIL", decodeError(t, resp).Error.Code)
		mockSvc.AssertNotCalled(t, "ListByEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPathIDSurvivesLaterRequests(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(&seeker)
	app.Get("/job/:jobId", ListJobApplications(mockSvc))

	firstID := uuid.NewString()
	secondID := uuid.NewString()
	var captured []string
	mockSvc.On("ListForJob", mock.Anything, seeker, mock.Anything, 0, 0).
		Run(func(args mock.Arguments) { captured = append(captured, args.String(2)) }).
		Return([]model.Application{}, nil)

	app.Test(httptest.NewRequest(http.MethodGet, "/job/"+firstID, nil))
	app.Test(httptest.NewRequest(http.MethodGet, "/job/"+secondID, nil))

	require.Len(t, captured, 2)
	assert.Equal(t, firstID, captured[0])
	assert.Equal(t, secondID, captured[1])
}

func TestGetResume(t *testing.T) {
	id := uuid.NewString()

	t.Run("serves stored bytes", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Get("/resume/:applicationId", GetResume(mockSvc))

		data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}
		mockSvc.On("FetchResume", mock.Anything, seeker, id).
			Return(&service.Resume{Data: data, ContentType: "application/pdf", Filename: `my "cv".pdf`}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/resume/"+id, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t, `inline; filename="my 'cv'.pdf"`, resp.Header.Get("Content-Disposition"))

		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, data, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := newTestApp(&seeker)
		app.Get("/resume/:applicationId", GetResume(mockSvc))

		mockSvc.On("FetchResume", mock.Anything, seeker, id).
			Return(nil, apperr.Forbidden("not authorized to view this resume")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/resume/"+id, nil))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})
}

func TestErrorHandler_LogsInternalErrors(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(middleware.RequestID())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperr.Persistence("failed to load application", errors.New("connection refused"))
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(middleware.RequestIDHeader, "rid-1")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	res := decodeError(t, resp)
	assert.Equal(t, "rid-1", res.RequestID)
	assert.NotContains(t, res.Error.Message, "connection refused")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "rid-1", hook.LastEntry().Data["request_id"])
	assert.Contains(t, hook.LastEntry().Data["error"].(error).Error(), "connection refused")
}

func TestErrorHandler_BodyLimit(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil), BodyLimit: 16})
	app.Post("/upload", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", 64))))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(nil),
	})

	mockSvc := new(serviceMocks.MockApplicationService)
	rejectAll := func(c *fiber.Ctx) error {
		return apperr.New(apperr.KindUnauthorized, "missing authorization header", nil)
	}
	RegisterRoutes(app, nil, mockSvc, RouteOptions{Auth: rejectAll, Metrics: promhttp.Handler()})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("api routes require auth", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/applications/my-applications", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("health without store", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRouting_StaticSegmentsBeforeJobID(t *testing.T) {
	app := newTestApp(&seeker)
	mockSvc := new(serviceMocks.MockApplicationService)
	RegisterRoutes(app, nil, mockSvc, RouteOptions{})

	mockSvc.On("ListOwn", mock.Anything, seeker, 0, 0).Return([]model.Application{}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/applications/my-applications", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}
