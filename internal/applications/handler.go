package applications

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aris-backend/internal/githubmetrics"
	"aris-backend/internal/llm"
	"aris-backend/internal/shared/server/respond"
)

const maxResumeSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications/stats", h.stats)
	rg.POST("/applications", h.create)
	rg.GET("/applications", h.list)
	rg.GET("/applications/:id", h.get)
	rg.POST("/applications/:id/generate-plan", h.generatePlan)
	rg.POST("/applications/:id/modify-plan", h.modifyPlan)
	rg.PATCH("/applications/:id/status", h.updateStatus)
	rg.POST("/applications/:id/verify", h.verify)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeSize)

	input := CreateInput{
		FullName:     strings.TrimSpace(c.PostForm("full_name")),
		Email:        strings.TrimSpace(c.PostForm("email")),
		GitHubURL:    strings.TrimSpace(c.PostForm("github_url")),
		RoleApplied:  strings.TrimSpace(c.PostForm("role_applied")),
		Personal:     formJSON(c, "personal_json"),
		Education:    formJSON(c, "education_json"),
		Experience:   formJSON(c, "experience_json"),
		Professional: formJSON(c, "professional_json"),
		Motivation:   formJSON(c, "motivation_json"),
	}

	if fileHeader, err := c.FormFile("resume_file"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err == nil {
			data, readErr := io.ReadAll(file)
			file.Close()
			if readErr == nil {
				input.ResumeFile = data
				input.ResumeMime = fileHeader.Header.Get("Content-Type")
				input.ResumeName = fileHeader.Filename
			}
		}
	}

	app, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput),
			errors.Is(err, githubmetrics.ErrInvalidURL),
			errors.Is(err, githubmetrics.ErrUserNotFound):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create application", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, app)
}

func (h *Handler) list(c *gin.Context) {
	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	apps, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	if apps == nil {
		apps = []Application{}
	}
	respond.JSON(c, http.StatusOK, apps)
}

func (h *Handler) get(c *gin.Context) {
	c.Set("applicationId", c.Param("id"))
	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		return
	}
	respond.JSON(c, http.StatusOK, app)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		return
	}
	respond.JSON(c, http.StatusOK, stats)
}

type generatePlanRequest struct {
	Weeks      int     `json:"weeks"`
	DailyHours float64 `json:"daily_hours"`
	TargetRole string  `json:"target_role"`
}

func (h *Handler) generatePlan(c *gin.Context) {
	c.Set("applicationId", c.Param("id"))
	var req generatePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	app, err := h.Svc.GeneratePlan(c.Request.Context(), c.Param("id"), PlanOptions{
		Weeks:      req.Weeks,
		DailyHours: req.DailyHours,
		TargetRole: req.TargetRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrNotScored):
			respond.Error(c, http.StatusBadRequest, "validation_error", "scoring not completed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate plan", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, app)
}

type modifyPlanRequest struct {
	Message string `json:"message"`
}

func (h *Handler) modifyPlan(c *gin.Context) {
	c.Set("applicationId", c.Param("id"))
	var req modifyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.ModifyPlan(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNoPlan):
			respond.Error(c, http.StatusBadRequest, "validation_error", "no training plan exists yet, generate one first", nil)
		case errors.Is(err, ErrLLMUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "llm_unavailable", "llm not available, check llm configuration", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to modify plan", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, app)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	c.Set("applicationId", c.Param("id"))
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}

	app, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrInvalidTransition):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid status transition", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, app)
}

func (h *Handler) verify(c *gin.Context) {
	c.Set("applicationId", c.Param("id"))
	app, err := h.Svc.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "llm_unavailable", "llm not available, check llm configuration", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "verification pipeline error", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, app)
}

// formJSON returns a form field as raw JSON, defaulting to an empty object
// and rejecting malformed payloads by falling back to the default.
func formJSON(c *gin.Context, field string) json.RawMessage {
	value := strings.TrimSpace(c.PostForm(field))
	if value == "" || !json.Valid([]byte(value)) {
		return json.RawMessage("{}")
	}
	return json.RawMessage(value)
}
