package handlers

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/feedback-systems/ai-feedback-backend/internal/database"
	"github.com/feedback-systems/ai-feedback-backend/internal/models"
	"github.com/feedback-systems/ai-feedback-backend/internal/services"
	"github.com/feedback-systems/ai-feedback-backend/utils"
)

const maxReviewLength = 5000

// SubmissionStore is the slice of the store the handlers need.
type SubmissionStore interface {
	Insert(ctx context.Context, sub *models.Submission) (string, error)
	Get(ctx context.Context, id string) (*models.Submission, error)
	List(ctx context.Context, limit, skip int64, ratingFilter int) ([]models.Submission, int64, error)
	Stats(ctx context.Context) (int64, map[int]int64, error)
}

// Generator produces the three AI texts for a submission. Implementations
// absorb provider failures into fallback text and never fail.
type Generator interface {
	GenerateUserResponse(ctx context.Context, rating int, review string) services.Generation
	GenerateSummary(ctx context.Context, review string) services.Generation
	GenerateRecommendedActions(ctx context.Context, rating int, review string) services.Generation
}

type SubmissionHandler struct {
	store SubmissionStore
	llm   Generator
	log   zerolog.Logger
}

func NewSubmissionHandler(store SubmissionStore, llm Generator, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{store: store, llm: llm, log: log}
}

// Register binds all routes. The stats route must come before the :id route.
func (h *SubmissionHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	api := app.Group("/api")
	api.Post("/submissions", h.Create)
	api.Get("/submissions", h.List)
	api.Get("/submissions/stats", h.GetStats)
	api.Get("/submissions/:id", h.Get)
}

func (h *SubmissionHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Create validates the feedback, generates the three AI texts in a fixed
// order, persists the document, and returns the stored submission.
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	var req models.SubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Rating must be between 1 and 5")
	}

	review := strings.TrimSpace(req.Review)
	if review == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Review cannot be empty")
	}
	if utf8.RuneCountInString(review) > maxReviewLength {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Review is too long (max 5000 characters)")
	}

	ctx := context.Background()

	// The three calls are independent but issued sequentially; each one
	// degrades to its fallback text on provider failure.
	userResponse := h.llm.GenerateUserResponse(ctx, req.Rating, review)
	summary := h.llm.GenerateSummary(ctx, review)
	actions := h.llm.GenerateRecommendedActions(ctx, req.Rating, review)

	doc := &models.Submission{
		Rating:             req.Rating,
		Review:             review,
		AIResponse:         userResponse.Text,
		AISummary:          summary.Text,
		RecommendedActions: actions.Text,
		Timestamp:          time.Now().UTC(),
		Status:             models.StatusSuccess,
	}

	id, err := h.store.Insert(ctx, doc)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to insert submission")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process submission. Please try again.")
	}

	// Re-fetch so the response reflects exactly what was stored.
	sub, err := h.store.Get(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("failed to fetch created submission")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process submission. Please try again.")
	}

	h.log.Info().Str("id", id).Int("rating", sub.Rating).Msg("submission created")
	return c.Status(fiber.StatusCreated).JSON(sub.ToResponse())
}

// Get returns the full submission, including the user-facing AI response.
func (h *SubmissionHandler) Get(c *fiber.Ctx) error {
	sub, err := h.store.Get(context.Background(), c.Params("id"))
	if errors.Is(err, database.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Submission not found")
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch submission")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve submission")
	}

	return c.JSON(sub.ToResponse())
}

// List returns a page of submissions for the admin dashboard. List items
// exclude ai_response; that text is only shown on single-item fetch.
func (h *SubmissionHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	rating := c.QueryInt("rating", 0)
	if rating != 0 && (rating < 1 || rating > 5) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Rating filter must be between 1 and 5")
	}

	subs, total, err := h.store.List(context.Background(), int64(limit), int64(skip), rating)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list submissions")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve submissions")
	}

	items := make([]models.AdminSubmission, 0, len(subs))
	for i := range subs {
		items = append(items, subs[i].ToAdmin())
	}

	return c.JSON(models.SubmissionListResponse{
		Total:       total,
		Submissions: items,
	})
}

// GetStats returns aggregate counts for the dashboard.
func (h *SubmissionHandler) GetStats(c *fiber.Ctx) error {
	total, byRating, err := h.store.Stats(context.Background())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to compute stats")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve stats")
	}

	return c.JSON(fiber.Map{
		"total":     total,
		"by_rating": byRating,
	})
}

// ErrorHandler maps uncaught errors to the common {"error": message} shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
