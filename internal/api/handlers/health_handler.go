package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taxi-faq/internal/dto"
	"taxi-faq/internal/service"
)

type HealthHandler struct {
	faqService *service.FAQService
}

func NewHealthHandler(faqService *service.FAQService) *HealthHandler {
	return &HealthHandler{faqService: faqService}
}

// Health godoc
// @Summary Liveness and knowledge base size
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	stats := h.faqService.Stats()
	return c.JSON(dto.HealthResponse{
		Status:       "ok",
		Entries:      stats.Entries,
		Phrases:      stats.Phrases,
		KeywordStems: stats.KeywordStems,
	})
}
