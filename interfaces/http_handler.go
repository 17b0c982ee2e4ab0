package interfaces

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"job-board/domain"
)

type HTTPHandler struct {
	Store     domain.JobStore
	Publisher domain.JobPublisher
	Log       *zap.Logger
	Limits    domain.PageLimits
}

func NewHTTPHandler(router *gin.Engine, store domain.JobStore, publisher domain.JobPublisher, log *zap.Logger, limits domain.PageLimits) {
	h := &HTTPHandler{Store: store, Publisher: publisher, Log: log, Limits: limits}

	router.GET("/healthz", h.Health)

	jobs := router.Group("/api/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.POST("", h.CreateJob)
	}
}

// ListJobs returns one page of jobs, optionally narrowed to titles containing
// q (or its alias query).
func (h *HTTPHandler) ListJobs(c *gin.Context) {
	req, err := domain.ParsePageRequest(c.Query("page"), c.Query("size"), h.Limits)
	if err != nil {
		h.writeError(c, err)
		return
	}

	filter, ok := c.GetQuery("q")
	if !ok {
		filter = c.Query("query")
	}

	page, err := h.Store.List(c.Request.Context(), filter, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateJob stores a new posting and announces it.
func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var input domain.JobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	job, err := h.Store.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.Publisher.PublishJobCreated(c.Request.Context(), job); err != nil {
		h.Log.Warn("job created but event not published", zap.Uint("job_id", job.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, job)
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrValidation.Error(), "fields": verr.Fields})
	case errors.Is(err, domain.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.Log.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
