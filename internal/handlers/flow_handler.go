package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type MatchHandler struct {
	orchestrator services.Orchestrator
	resumes      *ResumeHandler
}

func NewMatchHandler(orchestrator services.Orchestrator, resumes *ResumeHandler) *MatchHandler {
	return &MatchHandler{
		orchestrator: orchestrator,
		resumes:      resumes,
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	if err := h.start(c); err != nil && !isFlowError(err) {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleMatchAPI handles POST /api/v1/match
func (h *MatchHandler) HandleMatchAPI(c *fiber.Ctx) error {
	if err := h.start(c); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.AcceptedResponse{
		Message: "Match started",
		Session: currentSession(c).Snapshot(),
	})
}

// start selects a resume sent along with the form, then starts the match
// flow with the submitted job description.
func (h *MatchHandler) start(c *fiber.Ctx) error {
	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return &userError{status: fiber.StatusBadRequest, message: "Invalid request payload"}
	}

	if err := h.resumes.selectOptional(c); err != nil {
		return err
	}

	return h.orchestrator.StartMatch(currentSession(c), req.JobDescription)
}

type NotifyHandler struct {
	orchestrator services.Orchestrator
}

func NewNotifyHandler(orchestrator services.Orchestrator) *NotifyHandler {
	return &NotifyHandler{
		orchestrator: orchestrator,
	}
}

// HandleNotify handles POST /notify
func (h *NotifyHandler) HandleNotify(c *fiber.Ctx) error {
	if err := h.orchestrator.StartNotify(currentSession(c)); err != nil && !isFlowError(err) {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleNotifyAPI handles POST /api/v1/notify
func (h *NotifyHandler) HandleNotifyAPI(c *fiber.Ctx) error {
	if err := h.orchestrator.StartNotify(currentSession(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.AcceptedResponse{
		Message: "Notification started",
		Session: currentSession(c).Snapshot(),
	})
}

// isFlowError reports errors already recorded in the session state, which
// the page shows on the next render.
func isFlowError(err error) bool {
	return isUserError(err) ||
		errors.Is(err, models.ErrFlowBusy) ||
		errors.Is(err, services.ErrMissingDescription) ||
		errors.Is(err, services.ErrMissingResume) ||
		errors.Is(err, services.ErrNoResumeForNotify)
}
