package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
)

const apiPrefix = "/api/v1"

type Handlers struct {
	Session *SessionHandler
	Page    *PageHandler
	Resume  *ResumeHandler
	Match   *MatchHandler
	Notify  *NotifyHandler
}

// RegisterRoutes mounts the form pages at the root and the JSON API under
// /api/v1. Both share the session middleware and cookie.
func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group(apiPrefix)

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Use(h.Session.Middleware)
	api.Get("/session", h.Session.HandleGetSession)
	api.Delete("/session", h.Session.HandleResetAPI)
	api.Post("/resume", h.Resume.HandleSelectAPI)
	api.Delete("/resume", h.Resume.HandleRemoveAPI)
	api.Post("/match", h.Match.HandleMatchAPI)
	api.Post("/notify", h.Notify.HandleNotifyAPI)

	withSession := h.Session.Middleware
	app.Get("/", withSession, h.Page.HandleIndex)
	app.Post("/resume", withSession, h.Resume.HandleSelect)
	app.Post("/resume/remove", withSession, h.Resume.HandleRemove)
	app.Post("/match", withSession, h.Match.HandleMatch)
	app.Post("/notify", withSession, h.Notify.HandleNotify)
	app.Post("/reset", withSession, h.Session.HandleReset)
}

// ErrorHandler answers errors as JSON. A form upload refused by the body
// limit never reaches its handler, so it is recorded on the visitor's
// session and redirected like any other refused selection.
func (h Handlers) ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code == fiber.StatusRequestEntityTooLarge && !strings.HasPrefix(c.Path(), apiPrefix) {
		if h.Resume.rejectOversized(c) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}
