package server

import (
	"gigmarket/internal/cache"
	"gigmarket/internal/models"

	"github.com/gofiber/fiber/v2"
)

// BaseInfo handles GET /api/base-info/
// @Summary Platform aggregate statistics
// @Description Totals over reviews, business profiles, and offers, with the average rating rounded to one decimal
// @Tags info
// @Produce json
// @Success 200 {object} models.BaseInfo
// @Router /base-info/ [get]
func (s *Server) BaseInfo(c *fiber.Ctx) error {
	var info models.BaseInfo
	err := cache.Aside(c.Context(), cache.BaseInfoKey(), &info, cache.BaseInfoTTL, func() error {
		loaded, err := s.statsRepo.BaseInfo(c.Context())
		if err != nil {
			return err
		}
		info = *loaded
		return nil
	})
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(info)
}
