package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"applyapi/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// RouteOptions carries the optional pieces of the route table.
type RouteOptions struct {
	// Auth guards every /api route. Nil leaves them open.
	Auth fiber.Handler
	// SubmitLimit throttles submissions; it runs after Auth so it can key on the actor.
	SubmitLimit fiber.Handler
	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, pinger Pinger, svc service.ApplicationService, opts RouteOptions) {
	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics))
	}

	api := app.Group("/api/applications")
	if opts.Auth != nil {
		api.Use(opts.Auth)
	}

	// Static segments are registered before /:jobId so they are never read as a job id.
	api.Get("/my-applications", ListOwnApplications(svc))
	api.Get("/job/:jobId", ListJobApplications(svc))
	api.Get("/by-email/:email", ListApplicationsByEmail(svc))
	api.Get("/resume/:applicationId", GetResume(svc))
	api.Put("/status/:applicationId", UpdateApplicationStatus(svc))

	submit := []fiber.Handler{}
	if opts.SubmitLimit != nil {
		submit = append(submit, opts.SubmitLimit)
	}
	submit = append(submit, SubmitApplication(svc))
	api.Post("/:jobId", submit...)
}

// HealthCheck pings the store.
func HealthCheck(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if p == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		if err := p.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
