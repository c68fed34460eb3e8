package handlers

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/core/generator"
	"github.com/jakechorley/nursery-shifts/pkg/core/services"
)

// Version is reported by the index route
const Version = "1.0.0"

// Handler contains dependencies for the route handlers
type Handler struct {
	Logger *zap.Logger
}

// NewRouter registers every route
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.RequestLogger())

	r.GET("/", h.Index)

	api := r.Group("/api")
	{
		api.POST("/generate", h.Generate)
		api.POST("/check", h.Check)
		api.POST("/candidates", h.Candidates)
		api.POST("/shortages", h.Shortages)
		api.POST("/swaps", h.Swaps)
	}

	return r
}

// RequestLogger logs each request at info level
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.Logger.Info("Handled request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Index reports the service name and version
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Nursery Shift API",
		"version": Version,
	})
}

// Generate builds a month's schedule from the request data
func (h *Handler) Generate(c *gin.Context) {
	var input GenerateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := rand.Uint64()
	if input.Seed != nil {
		seed = *input.Seed
	}

	snapshot := input.toSnapshot()
	schedule := generator.Generate(generator.GenerationConfig{
		Staff:      snapshot.Staff,
		Holidays:   snapshot.Holidays,
		Year:       snapshot.Year,
		Month:      snapshot.Month,
		Settings:   snapshot.Settings,
		Existing:   snapshot.Schedule,
		TimeRanges: snapshot.TimeRanges,
		Rand:       rand.New(rand.NewPCG(seed, seed)),
		Logger:     h.Logger,
	})

	shortfalls := services.Shortfalls(snapshot, schedule)
	if shortfalls == nil {
		shortfalls = []services.DayShortfall{}
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Seed:       seed,
		Schedule:   schedule,
		Shortfalls: shortfalls,
	})
}

// Check reviews one proposed cell
func (h *Handler) Check(c *gin.Context) {
	var input CheckRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := services.ParseCode(input.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := input.toSnapshot().ReviewEdit(input.Date, input.StaffID, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, review)
}

// Candidates ranks who could take a band on a day
func (h *Handler) Candidates(c *gin.Context) {
	var input CandidatesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	band, err := services.ParseBand(input.Pattern)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidates, err := input.toSnapshot().Candidates(input.Date, band)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, CandidatesResponse{Date: input.Date, Pattern: band, Candidates: candidates})
}

// Shortages reports understaffed bands on a day
func (h *Handler) Shortages(c *gin.Context) {
	var input ShortagesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := input.toSnapshot().Shortages(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Swaps proposes swaps covering a shortage on a day
func (h *Handler) Swaps(c *gin.Context) {
	var input SwapsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shortage, err := services.ParseCode(input.Shortage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := input.toSnapshot().Swaps(input.Date, shortage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SwapsResponse{Date: input.Date, Shortage: shortage, Suggestions: suggestions})
}
