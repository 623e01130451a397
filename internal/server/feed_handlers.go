package server

import (
	"log/slog"

	"plume/internal/middleware"
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /home and renders the feed, newest post first.
func (s *Server) Home(c *fiber.Ctx) error {
	feed, err := s.postService.Feed(c.UserContext())
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to load blogposts",
			slog.String("error", err.Error()))
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := c.Render("home", fiber.Map{"blogposts": feed}); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to render template",
			slog.String("error", err.Error()))
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return nil
}
