package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rusafidt/Sentiment-Analyzer/internal/middleware"
	"github.com/rusafidt/Sentiment-Analyzer/internal/models"
	"github.com/rusafidt/Sentiment-Analyzer/internal/repository"
	"github.com/rusafidt/Sentiment-Analyzer/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPredictionsLimit = 20
	maxPredictionsLimit     = 500
)

// Handler handles HTTP requests
type Handler struct {
	analyzer *service.Analyzer
	repo     repository.PredictionRepository
	logger   *zap.Logger
}

// NewHandler creates a new API handler. repo may be nil, which disables the
// prediction log endpoints.
func NewHandler(analyzer *service.Analyzer, repo repository.PredictionRepository, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		repo:     repo,
		logger:   logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	// Health and readiness
	r.GET("/healthz", h.HealthCheck)
	r.GET("/readyz", h.ReadinessCheck)

	// Legacy unprefixed endpoints
	r.POST("/predict", h.Predict)
	r.GET("/demo", h.Demo)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/ready", h.ReadinessCheck)

		api.POST("/predict", h.Predict)
		api.POST("/predict/sentences", h.PredictSentences)
		api.GET("/demo", h.Demo)

		api.GET("/model", h.GetModel)

		// Prediction log
		api.GET("/predictions", h.GetPredictions)
		api.GET("/predictions/stats", h.GetPredictionStats)
	}
}

// HealthCheck reports that the process is up
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: "API is ready to analyze sentiment",
	})
}

// ReadinessCheck reports whether the model is trained
func (h *Handler) ReadinessCheck(c *gin.Context) {
	status := h.analyzer.Status()

	resp := models.ReadinessResponse{
		Status: string(status.State),
		Model:  status.Model,
	}
	if status.Err != nil {
		resp.Error = status.Err.Error()
	}

	code := http.StatusOK
	if status.State != service.StateReady {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Predict scores a single text
func (h *Handler) Predict(c *gin.Context) {
	var req models.TextInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := *req.Text

	p, err := h.analyzer.Predict(c.Request.Context(), text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.record(c, text, p)

	c.JSON(http.StatusOK, toResponse(text, p))
}

// PredictSentences scores a text and each of its sentences
func (h *Handler) PredictSentences(c *gin.Context) {
	var req models.TextInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := *req.Text

	whole, parts, err := h.analyzer.PredictSentences(c.Request.Context(), text)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.record(c, text, whole)

	resp := models.SentenceBreakdownResponse{
		SentimentResponse: toResponse(text, whole),
		Sentences:         make([]models.SentimentResponse, 0, len(parts)),
	}
	for _, part := range parts {
		resp.Sentences = append(resp.Sentences, toResponse(part.Text, part.Prediction))
	}
	c.JSON(http.StatusOK, resp)
}

// Demo scores the fixed sample sentences
func (h *Handler) Demo(c *gin.Context) {
	results := make([]models.SentimentResponse, 0, len(models.DemoSamples))
	for _, text := range models.DemoSamples {
		p, err := h.analyzer.Predict(c.Request.Context(), text)
		if err != nil {
			h.respondError(c, err)
			return
		}
		results = append(results, toResponse(text, p))
	}

	c.JSON(http.StatusOK, models.DemoResponse{DemoResults: results})
}

// GetModel describes the trained model
func (h *Handler) GetModel(c *gin.Context) {
	info, err := h.analyzer.ModelInfo()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetPredictions returns the most recent logged predictions
func (h *Handler) GetPredictions(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction log is disabled"})
		return
	}

	limit := defaultPredictionsLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPredictionsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit (must be 1-" + strconv.Itoa(maxPredictionsLimit) + ")"})
			return
		}
		limit = n
	}

	records, err := h.repo.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get predictions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": records,
		"total":       len(records),
	})
}

// GetPredictionStats summarises the prediction log
func (h *Handler) GetPredictionStats(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction log is disabled"})
		return
	}

	stats, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get prediction stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// record logs a served prediction. Storage failures never fail the request.
func (h *Handler) record(c *gin.Context, text string, p service.Prediction) {
	if h.repo == nil {
		return
	}

	modelID := ""
	if info, err := h.analyzer.ModelInfo(); err == nil {
		modelID = info.ID
	}

	rec := &models.PredictionRecord{
		Text:       text,
		Sentiment:  p.Label,
		Confidence: p.Confidence,
		ModelID:    modelID,
		RequestID:  middleware.GetRequestID(c),
	}
	if err := h.repo.Save(c.Request.Context(), rec); err != nil {
		h.logger.Warn("Failed to record prediction", zap.Error(err))
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrModelNotReady) {
		c.JSON(http.StatusServiceUnavailable, models.ErrorDetail{Detail: err.Error()})
		return
	}

	h.logger.Error("Prediction failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorDetail{Detail: err.Error()})
}

func toResponse(text string, p service.Prediction) models.SentimentResponse {
	return models.SentimentResponse{
		Text:       text,
		Sentiment:  p.Label,
		Confidence: p.Confidence,
	}
}
