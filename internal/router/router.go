package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/rapor-go-api/internal/config"
	"github.com/noah-isme/rapor-go-api/internal/handler"
	"github.com/noah-isme/rapor-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ClassHandler        *handler.ClassHandler
	StudentHandler      *handler.StudentHandler
	SubjectHandler      *handler.SubjectHandler
	ExamHandler         *handler.ExamHandler
	MarkHandler         *handler.MarkHandler
	ResultHandler       *handler.ResultHandler
	PublicResultHandler *handler.PublicResultHandler
	ActivityHandler     *handler.ActivityHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Share-token lookups stay outside the JWT group.
	if deps.PublicResultHandler != nil {
		deps.PublicResultHandler.Register(api.Group("/public"))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(api.Group("/classes", jwtMiddleware))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", jwtMiddleware))
	}
	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(api.Group("/subjects", jwtMiddleware))
	}
	if deps.ExamHandler != nil {
		deps.ExamHandler.Register(api.Group("/exams", jwtMiddleware))
	}
	if deps.MarkHandler != nil {
		deps.MarkHandler.Register(api.Group("/marks", jwtMiddleware))
	}
	if deps.ResultHandler != nil {
		deps.ResultHandler.Register(api.Group("/results", jwtMiddleware))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activity", jwtMiddleware))
	}
}
