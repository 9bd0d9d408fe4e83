package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

// userError is a request the visitor can fix. HTML routes show it through
// the session state; API routes return it with status.
type userError struct {
	status  int
	message string
}

func (e *userError) Error() string {
	return e.message
}

var errNoFile = &userError{status: fiber.StatusBadRequest, message: "No resume uploaded. Please upload 'resume' as a PDF file."}

func isUserError(err error) bool {
	var ue *userError
	return errors.As(err, &ue)
}

// respondError maps flow and validation errors to API responses; anything
// else goes to the app's error handler.
func respondError(c *fiber.Ctx, err error) error {
	var ue *userError
	switch {
	case errors.As(err, &ue):
		return c.Status(ue.status).JSON(models.ErrorResponse{Error: ue.message, Code: ue.status})
	case errors.Is(err, models.ErrFlowBusy):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: err.Error(), Code: fiber.StatusConflict})
	case errors.Is(err, services.ErrMissingDescription),
		errors.Is(err, services.ErrMissingResume),
		errors.Is(err, services.ErrNoResumeForNotify):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{Error: err.Error(), Code: fiber.StatusUnprocessableEntity})
	default:
		return err
	}
}
