package server

import (
	"solace/internal/models"
	"solace/internal/repository"
	"solace/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetEscalations handles GET /api/escalations
func (s *Server) GetEscalations(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	escalations, err := s.escalationService.ListEscalations(c.Context(), repository.EscalationFilter{
		Status: models.EscalationStatus(c.Query("status")),
		Level:  models.EscalationLevel(c.Query("level")),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"escalations": escalations,
		"limit":       p.Limit,
		"offset":      p.Offset,
	})
}

// GetEscalation handles GET /api/escalations/:id
func (s *Server) GetEscalation(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	esc, err := s.escalationService.GetEscalation(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(esc)
}

// UpdateEscalationStatus handles PUT /api/escalations/:id/status
func (s *Server) UpdateEscalationStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	esc, err := s.escalationService.UpdateStatus(c.Context(), service.UpdateEscalationInput{
		EscalationID: id,
		Status:       models.EscalationStatus(req.Status),
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(esc)
}

// GetEscalationAnalytics handles GET /api/escalations/analytics.
//
// The insight service fails open: on engine failure the zero summary is
// still served with HTTP 200 so moderator dashboards keep rendering.
func (s *Server) GetEscalationAnalytics(c *fiber.Ctx) error {
	summary, _ := s.insightService.Analytics(c.Context())
	return c.JSON(summary)
}

// GetPostPrediction handles GET /api/insights/posts/:id/prediction
func (s *Server) GetPostPrediction(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	pred, _ := s.insightService.PredictPost(c.Context(), post)
	return c.JSON(pred)
}

// GetPostInterventions handles GET /api/insights/posts/:id/interventions
func (s *Server) GetPostInterventions(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	steps, _ := s.insightService.SuggestInterventions(c.Context(), post)
	return c.JSON(fiber.Map{
		"post_id":     post.ID,
		"suggestions": steps,
	})
}

// GetPostAnalysis handles GET /api/insights/posts/:id/analysis
func (s *Server) GetPostAnalysis(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post_id":  post.ID,
		"analysis": s.insightService.AnalyzePost(post),
	})
}

// GetUserNeeds handles GET /api/insights/users/:id/needs
func (s *Server) GetUserNeeds(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, lookupErr := s.userRepo.GetByID(c.Context(), id); lookupErr != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", id))
	}

	needs, _ := s.insightService.UserNeeds(c.Context(), id)
	return c.JSON(needs)
}

// GetPeakUsage handles GET /api/insights/peak-usage
func (s *Server) GetPeakUsage(c *fiber.Ctx) error {
	usage, _ := s.insightService.PeakUsage(c.Context())
	return c.JSON(fiber.Map{"peak_usage": usage})
}
