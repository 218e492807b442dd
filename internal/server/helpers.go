package server

import (
	"errors"
	"strings"

	"gigmarket/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "business_user_id" -> "business user ID".
func humanizeParam(param string) string {
	if param == "id" || param == "pk" {
		return "ID"
	}
	if strings.HasSuffix(param, "_id") {
		prefix := param[:len(param)-3]
		return strings.ReplaceAll(prefix, "_", " ") + " ID"
	}
	return param
}

// currentUser loads the authenticated caller from the userID local set by
// AuthRequired. On failure it writes the response and returns
// errResponseWritten.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
		return nil, errResponseWritten
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Account no longer exists"))
			return nil, errResponseWritten
		}
		_ = models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
		return nil, errResponseWritten
	}
	return user, nil
}
