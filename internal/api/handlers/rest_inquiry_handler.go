package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/api/middleware"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
	"github.com/raf-aleaqarih/raf24-api/internal/tasks"
)

// RestInquiryHandler handles the public lead form and the admin inquiry
// management endpoints.
type RestInquiryHandler struct {
	inquiryService services.IInquiryService
	taskClient     *asynq.Client
	logger         *zap.Logger
}

// NewRestInquiryHandler creates a new RestInquiryHandler. taskClient may be
// nil in tests; conversion forwarding is then skipped.
func NewRestInquiryHandler(inquiryService services.IInquiryService, taskClient *asynq.Client, logger *zap.Logger) *RestInquiryHandler {
	return &RestInquiryHandler{inquiryService: inquiryService, taskClient: taskClient, logger: logger}
}

type createInquiryRequest struct {
	Name         string           `json:"name" binding:"required"`
	Phone        string           `json:"phone" binding:"required"`
	Message      string           `json:"message"`
	Referrer     string           `json:"referrer"`
	LandingQuery string           `json:"landing_query"`
	UTM          models.UTMParams `json:"utm"`
}

// CreatePublic handles POST /api/public/inquiries. The referrer falls back
// to the Referer header when the frontend does not send one.
func (h *RestInquiryHandler) CreatePublic(c *gin.Context) {
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name and phone are required")
		return
	}

	referrer := req.Referrer
	if referrer == "" {
		referrer = c.GetHeader("Referer")
	}

	inquiry, err := h.inquiryService.Create(c.Request.Context(), services.NewInquiryInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Message:      req.Message,
		Referrer:     referrer,
		LandingQuery: req.LandingQuery,
		UTM:          req.UTM,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.enqueueForward(c, inquiry.ID, "lead")

	respondData(c, http.StatusCreated, gin.H{"id": inquiry.ID.Hex()})
}

// List handles GET /api/admin/inquiries
func (h *RestInquiryHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := services.InquiryFilter{
		Status:   c.Query("status"),
		Platform: c.Query("platform"),
		Search:   c.Query("search"),
	}

	inquiries, total, err := h.inquiryService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, inquiries, newPagination(page, limit, total))
}

// Get handles GET /api/admin/inquiries/:id
func (h *RestInquiryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, inquiry)
}

type updateStatusRequest struct {
	Status models.InquiryStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/admin/inquiries/:id/status. Moving an
// inquiry to converted reports the conversion to the ad platforms via the
// bg worker.
func (h *RestInquiryHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	inquiry, err := h.inquiryService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.Status == models.InquiryConverted {
		h.enqueueForward(c, id, "lead_converted")
	}

	respondData(c, http.StatusOK, inquiry)
}

// enqueueForward hands the event to the bg worker. Best-effort: a failed
// enqueue is logged and never surfaces to the client.
func (h *RestInquiryHandler) enqueueForward(c *gin.Context, id primitive.ObjectID, event string) {
	if h.taskClient == nil {
		return
	}
	task, err := tasks.NewAnalyticsForwardTask(id, event)
	if err == nil {
		_, err = h.taskClient.EnqueueContext(c.Request.Context(), task)
	}
	if err != nil {
		h.logger.Warn("failed to enqueue analytics forwarding",
			zap.String("inquiry_id", id.Hex()),
			zap.String("event", event),
			zap.Error(err))
	}
}

type addNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddNote handles POST /api/admin/inquiries/:id/notes
func (h *RestInquiryHandler) AddNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "text is required")
		return
	}

	author := c.GetString(middleware.ContextKeyAdminID)
	inquiry, err := h.inquiryService.AddNote(c.Request.Context(), id, req.Text, author)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, inquiry)
}

type addFollowUpRequest struct {
	Date time.Time `json:"date" binding:"required"`
	Note string    `json:"note"`
}

// AddFollowUp handles POST /api/admin/inquiries/:id/follow-ups
func (h *RestInquiryHandler) AddFollowUp(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "date is required (RFC 3339)")
		return
	}

	inquiry, err := h.inquiryService.AddFollowUp(c.Request.Context(), id, req.Date, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, inquiry)
}

// Delete handles DELETE /api/admin/inquiries/:id
func (h *RestInquiryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.inquiryService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Inquiry deleted")
}
