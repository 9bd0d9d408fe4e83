package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

const (
	SessionCookie = "rm_session"
	sessionLocal  = "session"
)

type SessionHandler struct {
	orchestrator services.Orchestrator
	ttl          time.Duration
	logger       *zap.Logger
}

func NewSessionHandler(orchestrator services.Orchestrator, ttl time.Duration, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		orchestrator: orchestrator,
		ttl:          ttl,
		logger:       logger,
	}
}

// Middleware attaches the visitor's session to the request, creating one
// when the cookie is missing or points to an ended session. The cookie is
// re-issued on every request so it expires only after ttl of inactivity.
func (h *SessionHandler) Middleware(c *fiber.Ctx) error {
	if id := c.Cookies(SessionCookie); id != "" {
		if session, err := h.orchestrator.GetSession(id); err == nil {
			h.attach(c, session)
			return c.Next()
		}
	}

	session, err := h.orchestrator.NewSession()
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
	}

	h.attach(c, session)
	return c.Next()
}

func (h *SessionHandler) attach(c *fiber.Ctx, session *models.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionLocal, session)
}

// HandleGetSession handles GET /api/v1/session
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(currentSession(c).Snapshot())
}

// HandleReset handles POST /reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	if err := h.end(c); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleResetAPI handles DELETE /api/v1/session
func (h *SessionHandler) HandleResetAPI(c *fiber.Ctx) error {
	if err := h.end(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Session ended",
	})
}

func (h *SessionHandler) end(c *fiber.Ctx) error {
	if err := h.orchestrator.EndSession(currentSession(c)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to end session")
	}
	c.ClearCookie(SessionCookie)
	return nil
}

func currentSession(c *fiber.Ctx) *models.Session {
	return c.Locals(sessionLocal).(*models.Session)
}
