package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taxi-faq/internal/dto"
	"taxi-faq/internal/matcher"
	"taxi-faq/internal/service"
)

type FAQHandler struct {
	faqService *service.FAQService
	logger     *zap.Logger
}

func NewFAQHandler(faqService *service.FAQService, logger *zap.Logger) *FAQHandler {
	return &FAQHandler{
		faqService: faqService,
		logger:     logger,
	}
}

// Match godoc
// @Summary Answer a question
// @Description Find the closest FAQ entry for a free-text question. Questions without a good match get the fallback answer with confidence 0.
// @Tags faq
// @Accept json
// @Produce json
// @Param request body dto.MatchRequest true "Question and optional category scope"
// @Success 200 {object} dto.MatchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/match [post]
func (h *FAQHandler) Match(c *fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	return h.answer(c, req.Question, req.Category)
}

// MatchQuery godoc
// @Summary Answer a question
// @Description Same as POST /match with the question in the query string
// @Tags faq
// @Produce json
// @Param q query string true "Question"
// @Param category query string false "Category scope"
// @Success 200 {object} dto.MatchResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/match [get]
func (h *FAQHandler) MatchQuery(c *fiber.Ctx) error {
	return h.answer(c, c.Query("q"), c.Query("category"))
}

func (h *FAQHandler) answer(c *fiber.Ctx, question, category string) error {
	res, err := h.faqService.Ask(c.UserContext(), question, category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Match failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Match failed",
		})
	}

	return c.JSON(dto.NewMatchResponse(res))
}

// Classify godoc
// @Summary Classify a question
// @Description Map a free-text question onto a category without matching it
// @Tags faq
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "Question"
// @Success 200 {object} dto.ClassifyResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/classify [post]
func (h *FAQHandler) Classify(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	priority := matcher.CategoryPriority()
	names := make([]string, len(priority))
	for i, p := range priority {
		names[i] = string(p)
	}

	return c.JSON(dto.ClassifyResponse{
		Category: string(h.faqService.Classify(req.Question)),
		Priority: names,
	})
}

// Categories godoc
// @Summary List categories
// @Description Categories in classifier priority order with their entry counts
// @Tags faq
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *FAQHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(dto.NewCategoryResponses(h.faqService.Categories()))
}

// ListEntries godoc
// @Summary List knowledge base entries
// @Tags faq
// @Produce json
// @Param category query string false "Only entries of this category"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/entries [get]
func (h *FAQHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.faqService.Entries(c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.NewEntryResponse(e)
	}
	return c.JSON(resp)
}

// GetEntry godoc
// @Summary Get a knowledge base entry
// @Tags faq
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/entries/{id} [get]
func (h *FAQHandler) GetEntry(c *fiber.Ctx) error {
	e, err := h.faqService.Entry(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Entry not found",
		})
	}
	return c.JSON(dto.NewEntryResponse(e))
}

// ListUnmatched godoc
// @Summary Recent unanswered questions
// @Description Questions that got the fallback answer, newest first. Requires the database.
// @Tags faq
// @Produce json
// @Param limit query int false "Maximum number of questions" default(50)
// @Success 200 {array} dto.UnmatchedQueryResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/unmatched [get]
func (h *FAQHandler) ListUnmatched(c *fiber.Ctx) error {
	queries, err := h.faqService.RecentUnmatched(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		if errors.Is(err, service.ErrQueryLogDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Unmatched query log is disabled",
			})
		}
		h.logger.Error("Failed to list unmatched queries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list unmatched queries",
		})
	}

	resp := make([]dto.UnmatchedQueryResponse, len(queries))
	for i, q := range queries {
		resp[i] = dto.NewUnmatchedQueryResponse(q)
	}
	return c.JSON(resp)
}
