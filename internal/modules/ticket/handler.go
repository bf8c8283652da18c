package ticket

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staylocal/internal/domain"
	"staylocal/internal/pkg/response"
	"staylocal/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tickets", h.Create)
	rg.GET("/tickets", h.ListMine)
	rg.GET("/tickets/:id", h.Get)
	rg.POST("/tickets/:id/messages", h.Reply)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/tickets", h.ListAll)
	rg.PUT("/tickets/:id/status", h.UpdateStatus)
	rg.DELETE("/tickets/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	t, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidPriority):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create ticket")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id)
	if err != nil {
		h.writeError(c, err, "Failed to fetch ticket")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), c.Query("status"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tickets")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tickets": list})
}

func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tickets")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tickets": list})
}

func (h *Handler) Reply(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	t, err := h.service.Reply(c.Request.Context(), c.GetInt64("user_id"), domain.Role(c.GetString("role")), id, req.Message)
	if err != nil {
		h.writeError(c, err, "Failed to add reply")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"ticket": t})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("user_id"), id, domain.TicketStatus(req.Status))
	if err != nil {
		h.writeError(c, err, "Failed to update ticket status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ticket": t})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete ticket")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Ticket deleted"})
}

func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ticket ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this ticket")
	case errors.Is(err, ErrTicketClosed):
		response.Error(c, http.StatusConflict, "TICKET_CLOSED", "Ticket is closed")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown ticket status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
